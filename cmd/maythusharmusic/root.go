// Command maythusharmusic resolves and acquires media for the music bot:
// link classification, metadata lookup, format catalogs, playlist
// enumeration, direct stream URLs and local downloads.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/config"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/logger"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/youtube"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagDownloadDir  string
	flagCookiesDir   string
	flagAudioFormat  string
	flagMaxHeight    int
	flagDirectStream bool
	flagJSON         bool
	flagDebug        bool
)

// cfg and engine are populated by loadConfig (merged: defaults < config
// file < flags) before any subcommand runs.
var (
	cfg    *config.Config
	engine *youtube.Client
)

var rootCmd = &cobra.Command{
	Use:   "maythusharmusic",
	Short: "Media resolution and acquisition engine for the music bot",
	Long: `maythusharmusic turns YouTube links, bare video ids and free-text queries
into metadata, format catalogs, playable stream URLs and local media files,
rotating through a pool of cookie credentials as it goes.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDownloadDir, "download-dir", "o", "", "Directory for downloaded media")
	rootCmd.PersistentFlags().StringVar(&flagCookiesDir, "cookies-dir", "", "Directory holding cookie credential files")
	rootCmd.PersistentFlags().StringVar(&flagAudioFormat, "audio-format", "", "Transcode target for song audio: mp3 | m4a | opus | vorbis")
	rootCmd.PersistentFlags().IntVar(&flagMaxHeight, "max-height", 0, "Resolution cap for video profiles")
	rootCmd.PersistentFlags().BoolVar(&flagDirectStream, "direct-stream", false, "Prefer directly playable URLs over local video downloads")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(sliderCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(playlistCmd)
	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration, then assembles the engine.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagDownloadDir != "" {
		cfg.DownloadDir = flagDownloadDir
	}
	if flagCookiesDir != "" {
		cfg.CookiesDir = flagCookiesDir
	}
	if flagAudioFormat != "" {
		cfg.AudioFormat = flagAudioFormat
	}
	if flagMaxHeight > 0 {
		cfg.MaxHeight = flagMaxHeight
	}
	if flagDirectStream {
		cfg.DirectStream = true
	}
	if flagDebug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.SetupGlobal(cfg.Debug, cfg.Debug)

	engine, err = youtube.New(cfg)
	if err != nil {
		return fmt.Errorf("bootstrapping engine: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	// The engine bootstrap (and its config validation) is pointless here.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("maythusharmusic", Version)
	},
}
