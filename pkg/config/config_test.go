package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "nope.toml"), Default())
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}
	if cfg.DownloadDir != "downloads" {
		t.Errorf("DownloadDir = %q, want defaults", cfg.DownloadDir)
	}
}

func TestLoadFromMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
download_dir = "/tmp/media"
max_workers = 8
direct_stream = true
audio_bitrate = "320"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom(path, Default())
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}

	if cfg.DownloadDir != "/tmp/media" {
		t.Errorf("DownloadDir = %q, want /tmp/media", cfg.DownloadDir)
	}
	if cfg.MaxWorkers != 8 {
		t.Errorf("MaxWorkers = %d, want 8", cfg.MaxWorkers)
	}
	if !cfg.DirectStream {
		t.Error("DirectStream = false, want true")
	}
	// Untouched keys keep their defaults.
	if cfg.AudioFormat != "mp3" {
		t.Errorf("AudioFormat = %q, want mp3", cfg.AudioFormat)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty download dir", func(c *Config) { c.DownloadDir = "" }, "download_dir"},
		{"zero workers", func(c *Config) { c.MaxWorkers = 0 }, "max_workers"},
		{"bad audio format", func(c *Config) { c.AudioFormat = "flac9000" }, "audio_format"},
		{"tiny max height", func(c *Config) { c.MaxHeight = 1 }, "max_height"},
		{"zero cache", func(c *Config) { c.CacheSize = 0 }, "cache_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadFromRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("download_dir = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFrom(path, Default()); err == nil {
		t.Fatal("loadFrom() = nil error for malformed toml")
	}
}
