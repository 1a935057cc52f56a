package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Cache is a directory of downloaded audio files keyed by filename. A file's
// presence is the only record that its episode has been downloaded.
type Cache struct {
	dir             string
	httpClient      *http.Client
	userAgent       string
	downloadTimeout time.Duration
}

func NewCache(dir string, httpClient *http.Client, userAgent string, downloadTimeout time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create episodes directory: %w", err)
	}

	return &Cache{
		dir:             dir,
		httpClient:      httpClient,
		userAgent:       userAgent,
		downloadTimeout: downloadTimeout,
	}, nil
}

func (c *Cache) Dir() string {
	return c.dir
}

// Exists reports whether filename is already present in the cache.
func (c *Cache) Exists(filename string) (bool, error) {
	path, err := c.path(filename)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", filename, err)
}

// Fetch opens the remote asset. The caller must close the returned body.
func (c *Cache) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.downloadTimeout)

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		cancel()
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, &FetchError{URL: url, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, &FetchError{URL: url, Err: fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)}
	}

	return &cancelBody{ReadCloser: resp.Body, cancel: cancel}, nil
}

// Store writes r to filename. Data goes to a temporary file that is renamed
// into place once complete, so an interrupted write never leaves a partial
// file behind under the final name.
func (c *Cache) Store(filename string, r io.Reader) (int64, error) {
	path, err := c.path(filename)
	if err != nil {
		return 0, &WriteError{Filename: filename, Err: err}
	}

	tmp, err := os.CreateTemp(c.dir, ".download-*.part")
	if err != nil {
		return 0, &WriteError{Filename: filename, Err: err}
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, r)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		os.Remove(tmpPath)
		return 0, &WriteError{Filename: filename, Err: err}
	}

	return written, nil
}

// Download fetches url and stores it as filename. Read failures on the remote
// body surface as *FetchError, local failures as *WriteError.
func (c *Cache) Download(ctx context.Context, url, filename string) (int64, error) {
	body, err := c.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	src := &sourceReader{r: body}
	written, err := c.Store(filename, src)
	if err != nil {
		if src.err != nil {
			return 0, &FetchError{URL: url, Err: src.err}
		}
		return 0, err
	}

	return written, nil
}

func (c *Cache) path(filename string) (string, error) {
	if filename == "" || filename == "." || filename == ".." || strings.ContainsAny(filename, `/\`) {
		return "", fmt.Errorf("invalid asset filename %q", filename)
	}
	return filepath.Join(c.dir, filename), nil
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

// sourceReader remembers the first read error so Download can tell network
// failures apart from disk failures.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF && s.err == nil {
		s.err = err
	}
	return n, err
}
