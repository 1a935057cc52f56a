package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Fetcher retrieves the configured feed and turns it into episodes.
type Fetcher struct {
	feedConfig *Config
	httpClient *http.Client
	parser     *Parser
	userAgent  string
}

func NewFetcher(feedConfig *Config, httpClient *http.Client, parser *Parser, userAgent string) *Fetcher {
	return &Fetcher{
		feedConfig: feedConfig,
		httpClient: httpClient,
		parser:     parser,
		userAgent:  userAgent,
	}
}

// Fetch downloads and parses the feed. Any failure is returned as a *FetchError.
// No retries happen here.
func (f *Fetcher) Fetch(ctx context.Context) ([]Episode, error) {
	data, err := f.fetchFeed(ctx, f.feedConfig.URL)
	if err != nil {
		return nil, &FetchError{URL: f.feedConfig.URL, Err: err}
	}

	metadata, episodes, err := f.parser.Run(data)
	if err != nil {
		return nil, &FetchError{URL: f.feedConfig.URL, Err: err}
	}

	slog.Info("Found episodes", "feed", metadata.Title, "count", len(episodes))

	return episodes, nil
}

func (f *Fetcher) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(f.feedConfig.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
