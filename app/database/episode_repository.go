package database

import (
	"context"
	"fmt"
)

var _ EpisodeRepository = (*EpisodeRepo)(nil)

// EpisodeRepo handles database operations for episodes
type EpisodeRepo struct {
	db *DB
}

// NewEpisodeRepository creates a new episode repository
func NewEpisodeRepository(db *DB) *EpisodeRepo {
	return &EpisodeRepo{db: db}
}

// ExistingLinks returns the link of every stored episode
func (r *EpisodeRepo) ExistingLinks(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT link FROM episodes`)
	if err != nil {
		return nil, fmt.Errorf("failed to get episode links: %w", err)
	}
	defer rows.Close()

	links := make(map[string]struct{})
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("failed to scan episode link: %w", err)
		}
		links[link] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating episode rows: %w", err)
	}

	return links, nil
}

// InsertEpisodes appends records in one transaction. A link that is already
// stored is left untouched.
func (r *EpisodeRepo) InsertEpisodes(ctx context.Context, records []EpisodeRecord) error {
	if len(records) == 0 {
		return nil
	}

	if err := r.insertEpisodes(ctx, records); err != nil {
		return &StoreWriteError{Count: len(records), Err: err}
	}

	return nil
}

func (r *EpisodeRepo) insertEpisodes(ctx context.Context, records []EpisodeRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO episodes (link, title, filename, published, description)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (link) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err := stmt.ExecContext(ctx, record.Link, record.Title, record.Filename, record.Published, record.Description)
		if err != nil {
			return fmt.Errorf("failed to insert episode %s: %w", record.Link, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetEpisodeCount returns the number of stored episodes
func (r *EpisodeRepo) GetEpisodeCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM episodes").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get episode count: %w", err)
	}
	return count, nil
}
