package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// episodeSchema holds the versioned DDL for the episodes table
// (link primary key, title, filename, published, description).
//
//go:embed migrations/*.sql
var episodeSchema embed.FS

// RunMigrations brings the episodes table up to the latest schema version and
// reports the version and dirty flag. It is run once by the entrypoint before
// a sync; EpisodeRepo never creates tables itself.
func RunMigrations(db *DB) (uint, bool, error) {
	target, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return 0, false, fmt.Errorf("failed to attach episode store to migrator: %w", err)
	}

	schema, err := iofs.New(episodeSchema, "migrations")
	if err != nil {
		return 0, false, fmt.Errorf("failed to read embedded episode schema: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", schema, "sqlite", target)
	if err != nil {
		return 0, false, fmt.Errorf("failed to prepare episode schema migration: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, false, fmt.Errorf("failed to create episodes table: %w", err)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read episode schema version: %w", err)
	}

	return version, dirty, nil
}
