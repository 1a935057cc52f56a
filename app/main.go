package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/podcast-sync/app/assets"
	"github.com/lysyi3m/podcast-sync/app/cfg"
	"github.com/lysyi3m/podcast-sync/app/database"
	"github.com/lysyi3m/podcast-sync/app/feed"
	"github.com/lysyi3m/podcast-sync/app/syncer"
	"github.com/lysyi3m/podcast-sync/app/tasks"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Sync failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	appCfg, err := cfg.Load(os.Args[1:])
	if err != nil {
		return err
	}
	if appCfg == nil {
		return nil
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(newLogHandler(os.Stdout, logLevel, appCfg.Location)))

	slog.Info("Starting Podcast Sync", "version", appCfg.Version)

	feedConfig, err := loadFeedConfig(appCfg)
	if err != nil {
		return err
	}

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Database schema ready", "path", appCfg.DBPath, "version", version, "dirty", dirty)

	httpClient := &http.Client{}

	cache, err := assets.NewCache(appCfg.EpisodesDir, httpClient, appCfg.UserAgent,
		time.Duration(feedConfig.Settings.DownloadTimeout)*time.Second)
	if err != nil {
		return err
	}

	fetcher := feed.NewFetcher(feedConfig, httpClient, feed.NewParser(), appCfg.UserAgent)
	episodeRepo := database.NewEpisodeRepository(db)
	engine := syncer.NewEngine(fetcher, episodeRepo, cache, feedConfig.Settings)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tasks.Run(ctx, tasks.NewSyncFeedTask(feedConfig.URL, engine), appCfg.RunTimeout); err != nil {
		return err
	}

	if count, err := episodeRepo.GetEpisodeCount(ctx); err == nil {
		slog.Debug("Episode store", "episodes", count)
	}

	return nil
}

// newLogHandler writes text logs with timestamps rendered in loc.
func newLogHandler(w io.Writer, level slog.Level, loc *time.Location) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey && loc != nil {
				a.Value = slog.TimeValue(a.Value.Time().In(loc))
			}
			return a
		},
	})
}

func loadFeedConfig(appCfg *cfg.Cfg) (*feed.Config, error) {
	if appCfg.FeedConfig == "" {
		return feed.NewConfig(appCfg.FeedURL), nil
	}

	feedConfig, err := feed.LoadConfig(appCfg.FeedConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed config: %w", err)
	}
	return feedConfig, nil
}
