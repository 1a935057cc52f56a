package feed

import "fmt"

// FetchError reports a failure to retrieve or parse the feed document.
// Nothing is known about the feed yet, so it is fatal to a sync run.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch feed %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FilenameError reports an episode link from which no asset filename can be derived.
type FilenameError struct {
	Link   string
	Reason string
}

func (e *FilenameError) Error() string {
	return fmt.Sprintf("derive filename from link %q: %s", e.Link, e.Reason)
}
