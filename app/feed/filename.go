package feed

import (
	"net/url"
	"strings"
	"unicode"
)

const DefaultAudioExtension = ".mp3"

// Filename derives the asset filename for an episode link: the last non-empty
// segment of the link's URL path followed by ext, so "https://x/show/a/" and
// "https://x/show/a" both give "a"+ext. The result depends on nothing but the
// link and the extension, so the store and the asset cache always agree on the
// key of a given episode. Segments holding path separators or control
// characters are rejected.
func Filename(link, ext string) (string, error) {
	if strings.TrimSpace(link) == "" {
		return "", &FilenameError{Link: link, Reason: "link is empty"}
	}

	u, err := url.Parse(link)
	if err != nil {
		return "", &FilenameError{Link: link, Reason: err.Error()}
	}

	path := strings.TrimRight(u.EscapedPath(), "/")
	segment := path[strings.LastIndex(path, "/")+1:]
	if segment == "" || segment == "." || segment == ".." {
		return "", &FilenameError{Link: link, Reason: "no path segment"}
	}

	segment, err = url.PathUnescape(segment)
	if err != nil {
		return "", &FilenameError{Link: link, Reason: err.Error()}
	}
	if segment == "" || segment == "." || segment == ".." ||
		strings.ContainsAny(segment, `/\`) || strings.ContainsFunc(segment, unicode.IsControl) {
		return "", &FilenameError{Link: link, Reason: "path segment is not a valid file name"}
	}

	if ext == "" {
		ext = DefaultAudioExtension
	}
	return segment + ext, nil
}
