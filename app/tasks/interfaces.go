package tasks

import (
	"context"

	"github.com/lysyi3m/podcast-sync/app/syncer"
)

// Syncer performs one sync pass over a feed.
// Implemented by *syncer.Engine.
type Syncer interface {
	Run(ctx context.Context) (*syncer.Result, error)
}
