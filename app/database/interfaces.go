package database

import "context"

type EpisodeRepository interface {
	ExistingLinks(ctx context.Context) (map[string]struct{}, error)
	InsertEpisodes(ctx context.Context, records []EpisodeRecord) error
	GetEpisodeCount(ctx context.Context) (int, error)
}
