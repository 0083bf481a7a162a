// Package youtube is the media resolution and acquisition engine: it turns
// a link or query into canonical metadata, rotates credentials, picks a
// download profile for the requested media kind, and drives the extraction
// tool with idempotent skip-if-exists behavior.
package youtube

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/cache"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/client"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/config"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/cookies"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/ffmpeg"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/flags"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/models"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/runner"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/search"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/workers"
)

type memoKey struct {
	link    string
	videoID bool
}

type sliderKey struct {
	link    string
	index   int
	videoID bool
}

// Client is the engine facade. Construct it with New; the zero value is not
// usable.
type Client struct {
	downloadDir  string
	audioFormat  string
	audioBitrate string
	maxHeight    int

	pool   cookies.Pool
	run    runner.Runner
	ex     extractor
	search search.Provider
	flags  *flags.Store
	work   *workers.Pool

	details *cache.Memo[memoKey, models.VideoMetadata]
	tracks  *cache.Memo[memoKey, models.TrackInfo]
	formats *cache.Memo[memoKey, []models.FormatEntry]
	sliders *cache.Memo[sliderKey, models.SliderEntry]
}

// New assembles a production engine from the configuration: download
// directory, HTTP search client, credential pool, worker pool, and the
// extraction tool (self-provisioned when missing from PATH).
func New(cfg *config.Config) (*Client, error) {
	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		return nil, err
	}

	httpClient, err := client.New(cfg.TimeoutSec)
	if err != nil {
		return nil, err
	}

	ffmpegPath, err := ffmpeg.Ensure("")
	if err != nil {
		slog.Warn("ffmpeg unavailable, merged video and transcoded audio profiles will fail", "err", err)
		ffmpegPath = ""
	}

	if _, err := ytdlp.Install(context.Background(), &ytdlp.InstallOptions{}); err != nil {
		slog.Warn("could not provision yt-dlp, relying on PATH", "err", err)
	}

	featureFlags := flags.NewStore(map[int]bool{
		flags.DirectStream: cfg.DirectStream,
	})

	c := &Client{
		downloadDir:  cfg.DownloadDir,
		audioFormat:  cfg.AudioFormat,
		audioBitrate: cfg.AudioBitrate,
		maxHeight:    cfg.MaxHeight,
		pool:         cookies.NewDirPool(cfg.CookiesDir, cfg.AuditLog, cfg.DegradeAfter),
		run:          runner.Exec{},
		ex:           &ytdlpExtractor{ffmpegPath: ffmpegPath},
		search:       search.New(httpClient),
		flags:        featureFlags,
		work:         workers.New(int64(cfg.MaxWorkers)),
		details:      cache.New[memoKey, models.VideoMetadata](cfg.CacheSize),
		tracks:       cache.New[memoKey, models.TrackInfo](cfg.CacheSize),
		formats:      cache.New[memoKey, []models.FormatEntry](cfg.CacheSize),
		sliders:      cache.New[sliderKey, models.SliderEntry](cfg.CacheSize),
	}
	return c, nil
}

// Flags exposes the feature-flag store so the host can toggle behavior at
// runtime.
func (c *Client) Flags() *flags.Store { return c.flags }

// selectCookie picks one credential for a request. The same handle is
// reused for every sub-call of that request. A degraded pool yields no
// cookie so the unauthenticated path is used instead.
func (c *Client) selectCookie() (cookies.Handle, bool, error) {
	if c.pool == nil || c.pool.Degraded() {
		return cookies.Handle{}, false, nil
	}
	h, err := c.pool.Next()
	if err != nil {
		return cookies.Handle{}, false, err
	}
	return h, true, nil
}

// markOutcome feeds the degradation detector after an authenticated call.
func (c *Client) markOutcome(h cookies.Handle, ok bool, failed bool) {
	if !ok || c.pool == nil {
		return
	}
	if failed {
		c.pool.MarkFailed(h)
	} else {
		c.pool.MarkOK(h)
	}
}

// Clean removes files older than ttl from the download directory, skipping
// in-progress artifacts. Returns the number of files removed.
func (c *Client) Clean(ttl time.Duration) (int, error) {
	entries, err := os.ReadDir(c.downloadDir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasSuffix(name, ".part") || strings.Contains(name, "_tmp") {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) <= ttl {
			continue
		}

		full := filepath.Join(c.downloadDir, name)
		if err := os.Remove(full); err != nil {
			slog.Warn("could not remove stale download", "file", name, "err", err)
			continue
		}
		slog.Debug("removed stale download", "file", name)
		removed++
	}
	return removed, nil
}

// errNoMetadata keeps failed resolutions out of the memo caches.
var errNoMetadata = errors.New("youtube: metadata unavailable")
