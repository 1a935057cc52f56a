package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

type SyncFeedTask struct {
	Task
	syncer Syncer
}

func NewSyncFeedTask(feedURL string, syncer Syncer) *SyncFeedTask {
	return &SyncFeedTask{
		Task:   NewTask(TaskTypeSyncFeed, feedURL),
		syncer: syncer,
	}
}

func (t *SyncFeedTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := t.syncer.Run(ctx)
	if result == nil {
		return fmt.Errorf("failed to sync feed: %w", err)
	}

	slog.Info("Task completed",
		"type", "SyncFeed",
		"feed", t.FeedURL,
		"duration", t.GetDuration(),
		"fetched", result.Fetched,
		"new", result.New,
		"downloaded", result.Downloaded,
		"present", result.Present,
		"failed", result.Failed())

	if err != nil {
		return fmt.Errorf("failed to sync feed: %w", err)
	}

	return nil
}
