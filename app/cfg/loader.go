package cfg

import (
	"cmp"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

const DefaultFeedURL = "https://www.marketplace.org/feed/podcast/marketplace/"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Feed configuration
	FeedURL    string `long:"feed-url" env:"FEED_URL" default:"https://www.marketplace.org/feed/podcast/marketplace/" description:"URL of the podcast RSS feed"`
	FeedConfig string `long:"feed-config" env:"FEED_CONFIG" description:"Optional YAML feed definition (overrides --feed-url)"`

	// Storage configuration
	DBPath      string `long:"db-path" env:"DB_PATH" default:"./episodes.db" description:"Path to the SQLite episode database"`
	EpisodesDir string `long:"episodes-dir" env:"EPISODES_DIR" default:"./episodes" description:"Directory holding downloaded audio files"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Podcast Sync/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	// Run limits
	RunTimeout int `long:"run-timeout" env:"RUN_TIMEOUT" default:"0" description:"Abort the sync run after this many seconds (0 disables the limit)"`
}

// Load parses command-line arguments and environment variables.
// A nil config with a nil error means help was requested.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedURL:     raw.FeedURL,
		FeedConfig:  raw.FeedConfig,
		DBPath:      raw.DBPath,
		EpisodesDir: raw.EpisodesDir,
		UserAgent:   raw.UserAgent,
		Timezone:    raw.Timezone,
		Debug:       raw.Debug,
		RunTimeout:  time.Duration(raw.RunTimeout) * time.Second,
		Location:    time.Local,
		Version:     GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	} else {
		cfg.Location = loc
	}

	return cfg, nil
}

func (c *Cfg) validate() error {
	required := map[string]string{
		"feed URL":           c.FeedURL,
		"database path":      c.DBPath,
		"episodes directory": c.EpisodesDir,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if c.RunTimeout < 0 {
		return fmt.Errorf("run timeout must not be negative")
	}
	return nil
}

// loadLocation resolves the zone used for log timestamps. An empty name
// keeps the system zone.
func loadLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}
