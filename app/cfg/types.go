package cfg

import "time"

type Cfg struct {
	// Feed configuration
	FeedURL    string
	FeedConfig string

	// Storage configuration
	DBPath      string
	EpisodesDir string

	// Application metadata
	UserAgent string
	Timezone  string
	Location  *time.Location // zone for log timestamps, resolved from Timezone
	Debug     bool
	Version   string

	// Run limits
	RunTimeout time.Duration // zero means no limit
}
