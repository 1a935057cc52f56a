package feed

import (
	"time"
)

// Feed processing types

type Metadata struct {
	Title           string
	Link            string
	Description     string
	ImageURL        string
	Language        string
	FeedPublishedAt *time.Time
}

type Episode struct {
	Link        string // Primary key of the episode store
	Title       string
	Published   string // Raw pubDate as provided by the feed, never reparsed
	Description string

	EnclosureURL    string // RSS enclosure URL
	EnclosureLength int64  // RSS enclosure length in bytes
	EnclosureType   string // RSS enclosure MIME type
}

// Configuration types

type Config struct {
	URL      string         `yaml:"url"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Timeout         int    `yaml:"timeout"`          // seconds
	DownloadTimeout int    `yaml:"download_timeout"` // seconds
	AudioExtension  string `yaml:"audio_extension"`
	DownloadWorkers int    `yaml:"download_workers"`
}
