package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/flags"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/models"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/utils"
)

// Download acquires media for one request. The profile is chosen by the
// request kind (song video > song audio > video > audio); a plain-video
// request first tries a directly playable URL when the prefer-direct-stream
// flag is on. An existing output file short-circuits the tool entirely.
//
// Unexpected tool failures come back as *ExtractionError, never a panic or
// an unclassified error. Partial output is deleted before the failure is
// reported.
func (c *Client) Download(ctx context.Context, req models.DownloadRequest) (models.DownloadResult, error) {
	ref, err := c.Ref(req.Link, req.VideoID)
	if err != nil {
		return models.DownloadResult{}, err
	}

	if err := os.MkdirAll(c.downloadDir, 0o755); err != nil {
		return models.DownloadResult{}, err
	}

	// One credential per request, reused by every sub-call.
	handle, authed, err := c.selectCookie()
	if err != nil {
		return models.DownloadResult{}, err
	}
	cookieFile := ""
	if authed {
		cookieFile = handle.Path
	}

	kind := req.Kind()
	slog.Debug("download requested", "id", ref.ID, "kind", kind.String())

	var res models.DownloadResult
	switch kind {
	case models.KindSongVideo:
		res, err = c.downloadSongVideo(ctx, ref, req, cookieFile)
	case models.KindSongAudio:
		res, err = c.downloadSongAudio(ctx, ref, req, cookieFile)
	case models.KindVideo:
		res, err = c.downloadVideo(ctx, ref, cookieFile)
	default:
		res, err = c.downloadAudio(ctx, ref, cookieFile)
	}

	c.markOutcome(handle, authed, err != nil)
	if err != nil {
		return models.DownloadResult{}, err
	}
	return res, nil
}

func (c *Client) downloadSongVideo(ctx context.Context, ref models.VideoRef, req models.DownloadRequest, cookieFile string) (models.DownloadResult, error) {
	if req.FormatID == "" {
		return models.DownloadResult{}, fmt.Errorf("youtube: format id required for a format-specific download")
	}

	path := filepath.Join(c.downloadDir, outputBase(req.Title, ref.ID)+".mp4")
	if fileExists(path) {
		slog.Debug("output already present, skipping download", "path", path)
		return models.DownloadResult{Location: path, Local: true}, nil
	}

	p := profile{
		// The requested video encoding plus a companion audio-only track.
		format:      req.FormatID + "+140",
		output:      path,
		cookieFile:  cookieFile,
		mergeFormat: "mp4",
	}
	return c.execute(ctx, ref.URL, p, path)
}

func (c *Client) downloadSongAudio(ctx context.Context, ref models.VideoRef, req models.DownloadRequest, cookieFile string) (models.DownloadResult, error) {
	if req.FormatID == "" {
		return models.DownloadResult{}, fmt.Errorf("youtube: format id required for a format-specific download")
	}

	base := outputBase(req.Title, ref.ID)
	path := filepath.Join(c.downloadDir, base+"."+c.audioFormat)
	if fileExists(path) {
		slog.Debug("output already present, skipping download", "path", path)
		return models.DownloadResult{Location: path, Local: true}, nil
	}

	p := profile{
		format:         req.FormatID,
		output:         filepath.Join(c.downloadDir, base+".%(ext)s"),
		cookieFile:     cookieFile,
		extractAudio:   true,
		audioFormat:    c.audioFormat,
		audioQuality:   c.audioBitrate,
		embedThumbnail: true,
		embedMetadata:  true,
	}
	return c.execute(ctx, ref.URL, p, path)
}

func (c *Client) downloadVideo(ctx context.Context, ref models.VideoRef, cookieFile string) (models.DownloadResult, error) {
	if c.flags.IsOn(flags.DirectStream) {
		url, err := c.streamURL(ctx, ref.URL, cookieFile)
		if err == nil && url != "" {
			return models.DownloadResult{Location: url, Local: false}, nil
		}
		slog.Debug("direct stream unavailable, falling back to local download", "id", ref.ID, "err", err)
	}

	path := filepath.Join(c.downloadDir, ref.ID+".mp4")
	if fileExists(path) {
		slog.Debug("output already present, skipping download", "path", path)
		return models.DownloadResult{Location: path, Local: true}, nil
	}

	p := profile{
		format:      fmt.Sprintf("(bestvideo[height<=%d][ext=mp4])+(bestaudio[ext=m4a])", c.maxHeight),
		output:      filepath.Join(c.downloadDir, "%(id)s.%(ext)s"),
		cookieFile:  cookieFile,
		mergeFormat: "mp4",
	}
	return c.execute(ctx, ref.URL, p, path)
}

func (c *Client) downloadAudio(ctx context.Context, ref models.VideoRef, cookieFile string) (models.DownloadResult, error) {
	// The best-audio extension is only known after inspection, so the
	// idempotence probe needs the metadata dump first.
	var info *extractInfo
	err := c.work.Do(ctx, func() error {
		var ierr error
		info, ierr = c.ex.Inspect(ctx, ref.URL, cookieFile)
		return ierr
	})
	if err != nil {
		return models.DownloadResult{}, extractionFailed("inspecting before audio download", err)
	}

	ext := info.Ext
	if ext == "" {
		ext = "m4a"
	}
	path := filepath.Join(c.downloadDir, ref.ID+"."+ext)
	if fileExists(path) {
		slog.Debug("output already present, skipping download", "path", path)
		return models.DownloadResult{Location: path, Local: true}, nil
	}

	p := profile{
		format:     "bestaudio/best",
		output:     filepath.Join(c.downloadDir, "%(id)s.%(ext)s"),
		cookieFile: cookieFile,
	}
	return c.execute(ctx, ref.URL, p, path)
}

// execute runs the download profile and converts any failure into the
// reported form, removing partial output first.
func (c *Client) execute(ctx context.Context, target string, p profile, expectPath string) (models.DownloadResult, error) {
	err := c.work.Do(ctx, func() error {
		return c.ex.Download(ctx, target, p)
	})
	if err != nil {
		cleanupPartial(expectPath)
		return models.DownloadResult{}, extractionFailed("downloading media", err)
	}
	return models.DownloadResult{Location: expectPath, Local: true}, nil
}

// outputBase names title-carrying outputs "<title> [<id>]" so two requests
// sharing a title cannot collide; without a title the id alone is used.
func outputBase(title, id string) string {
	if title == "" {
		return id
	}
	return utils.SanitizeFilename(title) + " [" + id + "]"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func cleanupPartial(path string) {
	for _, p := range []string{path, path + ".part"} {
		if err := os.Remove(p); err == nil {
			slog.Debug("removed partial output", "path", p)
		}
	}
}
