package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/podcast-sync/app/database"
	"github.com/lysyi3m/podcast-sync/app/feed"
)

var errNoEnclosure = errors.New("episode has no enclosure URL")

// Engine runs the fetch → diff → write → fill-assets pass. It keeps no state
// between runs: both the store diff and the asset presence check are derived
// fresh every time, so re-running after any failure is safe.
type Engine struct {
	fetcher Fetcher
	store   database.EpisodeRepository
	assets  AssetCache
	ext     string
	workers int
}

func NewEngine(fetcher Fetcher, store database.EpisodeRepository, assets AssetCache, settings feed.ConfigSettings) *Engine {
	workers := settings.DownloadWorkers
	if workers < 1 {
		workers = 1
	}

	return &Engine{
		fetcher: fetcher,
		store:   store,
		assets:  assets,
		ext:     settings.AudioExtension,
		workers: workers,
	}
}

type plannedEpisode struct {
	episode  feed.Episode
	filename string
}

// Run performs one sync pass. Failures of a single episode are collected in
// the Result; the returned error is reserved for the feed fetch and the store.
// A store failure does not stop the asset step.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	episodes, err := e.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Fetched: len(episodes)}
	if len(episodes) == 0 {
		slog.Info("Feed has no episodes, nothing to sync")
		return result, nil
	}

	planned := e.plan(episodes, result)

	storeErr := e.syncRecords(ctx, planned, result)
	if storeErr != nil {
		slog.Error("Failed to store new episodes", "error", storeErr)
	}

	e.fillAssets(ctx, planned, result)

	if storeErr != nil {
		return result, storeErr
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	return result, nil
}

// plan derives filenames and drops repeated links. Episodes whose filename
// cannot be derived are reported and skipped.
func (e *Engine) plan(episodes []feed.Episode, result *Result) []plannedEpisode {
	seen := make(map[string]struct{}, len(episodes))
	planned := make([]plannedEpisode, 0, len(episodes))

	for _, episode := range episodes {
		filename, err := feed.Filename(episode.Link, e.ext)
		if err != nil {
			slog.Warn("Skipping episode", "link", episode.Link, "title", episode.Title, "error", err)
			result.Failures = append(result.Failures, EpisodeFailure{Link: episode.Link, Stage: StageFilename, Err: err})
			continue
		}

		if _, ok := seen[episode.Link]; ok {
			slog.Debug("Duplicate link in feed", "link", episode.Link)
			continue
		}
		seen[episode.Link] = struct{}{}

		planned = append(planned, plannedEpisode{episode: episode, filename: filename})
	}

	return planned
}

func (e *Engine) syncRecords(ctx context.Context, planned []plannedEpisode, result *Result) error {
	existing, err := e.store.ExistingLinks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stored episodes: %w", err)
	}

	var records []database.EpisodeRecord
	for _, p := range planned {
		if _, ok := existing[p.episode.Link]; ok {
			continue
		}
		records = append(records, database.EpisodeRecord{
			Link:        p.episode.Link,
			Title:       p.episode.Title,
			Filename:    p.filename,
			Published:   p.episode.Published,
			Description: p.episode.Description,
		})
	}

	if len(records) == 0 {
		slog.Debug("No new episodes")
		return nil
	}

	if err := e.store.InsertEpisodes(ctx, records); err != nil {
		return err
	}

	result.New = len(records)
	for _, record := range records {
		slog.Debug("Stored episode", "link", record.Link, "filename", record.Filename)
	}

	return nil
}

// fillAssets downloads every missing asset, new episode or not. Episodes are
// grouped by filename since distinct links may share a last path segment; each
// group is tried in feed order until one candidate fills the file. A failure
// is recorded and the other episodes continue.
func (e *Engine) fillAssets(ctx context.Context, planned []plannedEpisode, result *Result) {
	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	g.SetLimit(e.workers)

	for _, group := range groupByFilename(planned) {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			status, failures := e.fillGroup(ctx, group)

			mu.Lock()
			defer mu.Unlock()

			result.Failures = append(result.Failures, failures...)
			switch status {
			case assetDownloaded:
				result.Downloaded++
			case assetPresent:
				result.Present++
			}
			return nil
		})
	}

	g.Wait()
}

type assetStatus int

const (
	assetMissing assetStatus = iota
	assetPresent
	assetDownloaded
)

// fillGroup fills one filename from the first candidate that can provide it.
func (e *Engine) fillGroup(ctx context.Context, group []plannedEpisode) (assetStatus, []EpisodeFailure) {
	var failures []EpisodeFailure

	fail := func(p plannedEpisode, err error) {
		slog.Error("Failed to download episode", "link", p.episode.Link, "filename", p.filename, "error", err)
		failures = append(failures, EpisodeFailure{
			Link:     p.episode.Link,
			Filename: p.filename,
			Stage:    StageAsset,
			Err:      err,
		})
	}

	exists, err := e.assets.Exists(group[0].filename)
	if err != nil {
		fail(group[0], err)
		return assetMissing, failures
	}
	if exists {
		return assetPresent, nil
	}

	for _, p := range group {
		if ctx.Err() != nil {
			break
		}
		if err := e.fillAsset(ctx, p); err != nil {
			fail(p, err)
			continue
		}
		return assetDownloaded, failures
	}

	return assetMissing, failures
}

func groupByFilename(planned []plannedEpisode) [][]plannedEpisode {
	index := make(map[string]int, len(planned))
	var groups [][]plannedEpisode

	for _, p := range planned {
		i, ok := index[p.filename]
		if !ok {
			i = len(groups)
			index[p.filename] = i
			groups = append(groups, nil)
		} else {
			slog.Debug("Episodes share a filename", "link", p.episode.Link, "filename", p.filename)
		}
		groups[i] = append(groups[i], p)
	}

	return groups
}

func (e *Engine) fillAsset(ctx context.Context, p plannedEpisode) error {
	if p.episode.EnclosureURL == "" {
		return errNoEnclosure
	}

	slog.Info("Downloading", "filename", p.filename, "url", p.episode.EnclosureURL)

	written, err := e.assets.Download(ctx, p.episode.EnclosureURL, p.filename)
	if err != nil {
		return err
	}

	slog.Info("Downloaded", "filename", p.filename, "size", humanize.Bytes(uint64(written)))
	return nil
}
