// Package config handles TOML-based configuration: defaults, the config
// file, and validation. CLI flags are merged on top by the command layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds everything the engine needs at construction time.
type Config struct {
	// DownloadDir is where acquired media lands. Created on demand.
	DownloadDir string `toml:"download_dir"`
	// CookiesDir holds the credential files (*.txt) the pool rotates over.
	CookiesDir string `toml:"cookies_dir"`
	// AuditLog is the append-only record of credential selections.
	AuditLog string `toml:"audit_log"`
	// MaxWorkers bounds concurrent external operations.
	MaxWorkers int `toml:"max_workers"`
	// DegradeAfter is the consecutive-failure count that marks the
	// credential pool degraded. Zero disables the detector.
	DegradeAfter int `toml:"degrade_after"`
	// AudioFormat/AudioBitrate are the fixed transcode target for
	// format-specific audio downloads.
	AudioFormat  string `toml:"audio_format"`
	AudioBitrate string `toml:"audio_bitrate"`
	// MaxHeight caps the plain-video profile.
	MaxHeight int `toml:"max_height"`
	// DirectStream seeds the prefer-direct-stream feature flag.
	DirectStream bool `toml:"direct_stream"`
	// CacheSize bounds each memoization cache.
	CacheSize int `toml:"cache_size"`
	// TimeoutSec is the HTTP timeout for the search client.
	TimeoutSec int  `toml:"timeout_sec"`
	Debug      bool `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DownloadDir:  "downloads",
		CookiesDir:   "cookies",
		AuditLog:     filepath.Join("cookies", "logs.csv"),
		MaxWorkers:   4,
		DegradeAfter: 5,
		AudioFormat:  "mp3",
		AudioBitrate: "192",
		MaxHeight:    720,
		DirectStream: false,
		CacheSize:    256,
		TimeoutSec:   30,
		Debug:        false,
	}
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "maythusharmusic"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "maythusharmusic"), nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges it over the defaults. A missing
// file is not an error: defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, nil
	}
	return loadFrom(path, cfg)
}

func loadFrom(path string, cfg *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks that values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.DownloadDir == "" {
		return fmt.Errorf("download_dir cannot be empty")
	}
	if c.CookiesDir == "" {
		return fmt.Errorf("cookies_dir cannot be empty")
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1, got %d", c.MaxWorkers)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cache_size must be at least 1, got %d", c.CacheSize)
	}
	if c.MaxHeight < 144 {
		return fmt.Errorf("max_height %d is below any real encoding", c.MaxHeight)
	}

	switch c.AudioFormat {
	case "mp3", "m4a", "opus", "vorbis":
	default:
		return fmt.Errorf("unsupported audio_format %q (valid: mp3, m4a, opus, vorbis)", c.AudioFormat)
	}
	return nil
}
