package syncer

import (
	"context"

	"github.com/lysyi3m/podcast-sync/app/feed"
)

type Fetcher interface {
	Fetch(ctx context.Context) ([]feed.Episode, error)
}

type AssetCache interface {
	Exists(filename string) (bool, error)
	Download(ctx context.Context, url, filename string) (int64, error)
}

type Stage string

const (
	StageFilename Stage = "filename"
	StageAsset    Stage = "asset"
)

// EpisodeFailure is a non-fatal problem with a single episode.
type EpisodeFailure struct {
	Link     string
	Filename string
	Stage    Stage
	Err      error
}

// Result summarizes one sync run.
type Result struct {
	Fetched    int // episodes in the feed
	New        int // records inserted into the store
	Downloaded int // assets fetched during this run
	Present    int // assets already in the cache
	Failures   []EpisodeFailure
}

func (r *Result) Failed() int {
	return len(r.Failures)
}
