package feed

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// NewConfig returns a feed definition for url with default settings.
func NewConfig(url string) *Config {
	feedConfig := &Config{URL: url}
	setDefaults(feedConfig)
	return feedConfig
}

// LoadConfig reads a YAML feed definition from configFile.
func LoadConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var feedConfig Config
	if err := yaml.Unmarshal(data, &feedConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&feedConfig)

	if err := validateConfig(&feedConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	slog.Debug("Configuration loaded", "file", configFile, "url", feedConfig.URL,
		"timeout", feedConfig.Settings.Timeout, "download_workers", feedConfig.Settings.DownloadWorkers)

	return &feedConfig, nil
}

func setDefaults(feedConfig *Config) {
	if feedConfig.Settings.Timeout == 0 {
		feedConfig.Settings.Timeout = 30
	}
	if feedConfig.Settings.DownloadTimeout == 0 {
		feedConfig.Settings.DownloadTimeout = 600
	}
	if feedConfig.Settings.DownloadWorkers == 0 {
		feedConfig.Settings.DownloadWorkers = 1
	}

	ext := strings.TrimSpace(feedConfig.Settings.AudioExtension)
	if ext == "" {
		ext = DefaultAudioExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	feedConfig.Settings.AudioExtension = ext
}

func validateConfig(feedConfig *Config) error {
	if feedConfig == nil {
		return fmt.Errorf("feedConfig is nil")
	}

	if feedConfig.URL == "" {
		return fmt.Errorf("feed URL is required")
	}

	nonNegativeFields := map[string]int{
		"timeout":          feedConfig.Settings.Timeout,
		"download timeout": feedConfig.Settings.DownloadTimeout,
		"download workers": feedConfig.Settings.DownloadWorkers,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	if strings.ContainsAny(feedConfig.Settings.AudioExtension, `/\`) {
		return fmt.Errorf("invalid audio extension: %s", feedConfig.Settings.AudioExtension)
	}

	return nil
}
