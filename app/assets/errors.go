package assets

import "fmt"

// FetchError reports a failed download of an episode's audio.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch asset %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// WriteError reports a failure to write an asset into the cache directory.
type WriteError struct {
	Filename string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write asset %s: %v", e.Filename, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
