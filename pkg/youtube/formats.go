package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/models"
)

// Formats lists the available encodings for a link, in provider order so
// index-based pickers stay stable within a session. Entries without a
// format identifier are skipped. Failure yields an empty catalog, never an
// error; catalog unavailability is not fatal to metadata display.
func (c *Client) Formats(ctx context.Context, link string, videoID bool) []models.FormatEntry {
	entries, err := c.formats.Do(memoKey{link, videoID}, func() ([]models.FormatEntry, error) {
		return c.resolveFormats(ctx, link, videoID)
	})
	if err != nil {
		slog.Warn("format catalog unavailable", "link", link, "err", err)
		return nil
	}
	return entries
}

func (c *Client) resolveFormats(ctx context.Context, link string, videoID bool) ([]models.FormatEntry, error) {
	target := canonical(link, videoID)

	handle, authed, _ := c.selectCookie()
	cookieFile := ""
	if authed {
		cookieFile = handle.Path
	}

	var info *extractInfo
	err := c.work.Do(ctx, func() error {
		var ierr error
		info, ierr = c.ex.Inspect(ctx, target, cookieFile)
		return ierr
	})
	if err != nil {
		c.markOutcome(handle, authed, true)
		return nil, err
	}
	c.markOutcome(handle, authed, false)

	entries := make([]models.FormatEntry, 0, len(info.Formats))
	for _, f := range info.Formats {
		if f.FormatID == "" {
			continue
		}
		entries = append(entries, models.FormatEntry{
			Format:   f.Format,
			Filesize: firstSize(f.Filesize, f.FilesizeApprox),
			FormatID: f.FormatID,
			Ext:      f.Ext,
			Note:     f.FormatNote,
			URL:      target,
		})
	}
	return entries, nil
}

func firstSize(sizes ...*int64) *int64 {
	for _, s := range sizes {
		if s != nil {
			return s
		}
	}
	return nil
}

// ProbeFilesize asks the tool for the byte size of one specific format via
// the external-process mode. Used when the catalog entry carries no size.
func (c *Client) ProbeFilesize(ctx context.Context, link string, videoID bool, formatID string) (int64, error) {
	target := canonical(link, videoID)

	handle, authed, _ := c.selectCookie()
	args := []string{"-J", "--skip-download"}
	if authed {
		args = append(args, "--cookies", handle.Path)
	}
	args = append(args, target)

	var out string
	err := c.work.Do(ctx, func() error {
		res, rerr := c.run.Run(ctx, "yt-dlp", args...)
		if rerr != nil {
			return rerr
		}
		var oerr error
		out, oerr = res.Output()
		return oerr
	})
	if err != nil {
		c.markOutcome(handle, authed, true)
		return 0, extractionFailed("probing filesize", err)
	}
	c.markOutcome(handle, authed, false)

	var info extractInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return 0, extractionFailed("decoding filesize probe", err)
	}

	for _, f := range info.Formats {
		if f.FormatID != formatID {
			continue
		}
		if s := firstSize(f.Filesize, f.FilesizeApprox); s != nil {
			return *s, nil
		}
		return 0, fmt.Errorf("format %s reports no size", formatID)
	}
	return 0, fmt.Errorf("format %s not found for %s", formatID, target)
}
