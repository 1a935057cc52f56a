package tasks

import (
	"context"
	"log/slog"
	"time"
)

// Run executes a single task under an optional deadline. A zero timeout means
// the task is bounded only by ctx.
func Run(ctx context.Context, task TaskInterface, timeout time.Duration) error {
	task.Start()

	taskCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err := task.Execute(taskCtx)
	if err != nil {
		slog.Error("Task failed",
			"type", string(task.GetType()),
			"id", task.GetID(),
			"feed", task.GetFeedURL(),
			"duration", task.GetDuration(),
			"error", err)
		return err
	}

	return nil
}
