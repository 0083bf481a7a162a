package youtube

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/cookies"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/models"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/search"
)

const titlePlaceholder = "Unknown Title"

// Details resolves metadata for a link or bare id. The fast search path is
// tried first, then the extraction tool with a search pseudo-query. Both
// failing yields the all-zero sentinel, never an error; successes are
// memoized for the process lifetime.
func (c *Client) Details(ctx context.Context, link string, videoID bool) models.VideoMetadata {
	md, err := c.details.Do(memoKey{link, videoID}, func() (models.VideoMetadata, error) {
		md := c.resolveDetails(ctx, link, videoID)
		if md.Empty() {
			return md, errNoMetadata
		}
		return md, nil
	})
	if err != nil {
		return models.VideoMetadata{}
	}
	return md
}

func (c *Client) resolveDetails(ctx context.Context, link string, videoID bool) models.VideoMetadata {
	target := stripQuery(canonical(link, videoID))

	if res, ok := c.primaryLookup(ctx, target); ok {
		duration := res.Duration
		if duration == "" {
			duration = "0:00"
		}
		title := res.Title
		if title == "" {
			title = titlePlaceholder
		}
		return models.VideoMetadata{
			Title:           title,
			DurationText:    duration,
			DurationSeconds: TimeToSeconds(duration),
			Thumbnail:       stripThumbQuery(res.Thumbnail),
			ID:              res.ID,
		}
	}

	entry, ok := c.fallbackLookup(ctx, target)
	if !ok {
		return models.VideoMetadata{}
	}

	duration := "0:00"
	seconds := int(entry.Duration)
	if seconds > 0 {
		duration = SecondsToMin(seconds)
	}
	title := entry.Title
	if title == "" {
		title = titlePlaceholder
	}
	return models.VideoMetadata{
		Title:           title,
		DurationText:    duration,
		DurationSeconds: seconds,
		Thumbnail:       stripThumbQuery(entry.Thumbnail),
		ID:              entry.ID,
	}
}

// Track resolves a search query (or bare id) into the shape queue callers
// consume. Failure on both paths yields the zero TrackInfo.
func (c *Client) Track(ctx context.Context, query string, videoID bool) models.TrackInfo {
	info, err := c.tracks.Do(memoKey{query, videoID}, func() (models.TrackInfo, error) {
		info := c.resolveTrack(ctx, query, videoID)
		if info == (models.TrackInfo{}) {
			return info, errNoMetadata
		}
		return info, nil
	})
	if err != nil {
		return models.TrackInfo{}
	}
	return info
}

func (c *Client) resolveTrack(ctx context.Context, query string, videoID bool) models.TrackInfo {
	target := canonical(query, videoID)

	if res, ok := c.primaryLookup(ctx, target); ok {
		return models.TrackInfo{
			Title:       res.Title,
			Link:        res.Link,
			VidID:       res.ID,
			DurationMin: res.Duration,
			Thumb:       stripThumbQuery(res.Thumbnail),
		}
	}

	entry, ok := c.fallbackLookup(ctx, target)
	if !ok {
		return models.TrackInfo{}
	}

	duration := ""
	if s := int(entry.Duration); s > 0 {
		duration = SecondsToMin(s)
	}
	return models.TrackInfo{
		Title:       entry.Title,
		Link:        watchBase + entry.ID,
		VidID:       entry.ID,
		DurationMin: duration,
		Thumb:       stripThumbQuery(entry.Thumbnail),
	}
}

// Slider returns the index-th entry of a limit-10 related lookup. Out of
// range or failed lookups yield the zero entry.
func (c *Client) Slider(ctx context.Context, link string, index int, videoID bool) models.SliderEntry {
	entry, err := c.sliders.Do(sliderKey{link, index, videoID}, func() (models.SliderEntry, error) {
		target := stripQuery(canonical(link, videoID))

		var results []search.Result
		err := c.work.Do(ctx, func() error {
			var serr error
			results, serr = c.search.Search(ctx, target, 10)
			return serr
		})
		if err != nil {
			slog.Warn("slider lookup failed", "err", err)
			return models.SliderEntry{}, errNoMetadata
		}
		if index < 0 || index >= len(results) {
			return models.SliderEntry{}, errNoMetadata
		}

		res := results[index]
		return models.SliderEntry{
			Title:        res.Title,
			DurationText: res.Duration,
			Thumb:        stripThumbQuery(res.Thumbnail),
			ID:           res.ID,
		}, nil
	})
	if err != nil {
		return models.SliderEntry{}
	}
	return entry
}

// primaryLookup runs the fast search-provider path.
func (c *Client) primaryLookup(ctx context.Context, target string) (search.Result, bool) {
	var results []search.Result
	err := c.work.Do(ctx, func() error {
		var serr error
		results, serr = c.search.Search(ctx, target, 1)
		return serr
	})
	if err != nil {
		slog.Debug("primary metadata path failed", "target", target, "err", err)
		return search.Result{}, false
	}
	if len(results) == 0 {
		return search.Result{}, false
	}
	return results[0], true
}

// fallbackLookup asks the extraction tool with a search pseudo-query,
// authenticated when the pool can supply a credential.
func (c *Client) fallbackLookup(ctx context.Context, target string) (*extractInfo, bool) {
	handle, authed, err := c.selectCookie()
	if err != nil && !errors.Is(err, cookies.ErrPoolEmpty) {
		slog.Warn("credential selection failed", "err", err)
	}

	cookieFile := ""
	if authed {
		cookieFile = handle.Path
	}

	var info *extractInfo
	err = c.work.Do(ctx, func() error {
		var ierr error
		info, ierr = c.ex.Inspect(ctx, "ytsearch:"+target, cookieFile)
		return ierr
	})
	if err != nil {
		slog.Warn("fallback metadata path failed", "target", target, "err", err)
		c.markOutcome(handle, authed, true)
		return nil, false
	}
	c.markOutcome(handle, authed, false)

	entry := info
	if len(info.Entries) > 0 {
		entry = info.Entries[0]
	}
	if entry == nil || entry.ID == "" {
		return nil, false
	}
	return entry, true
}

// stripThumbQuery drops the sizing query string from a thumbnail URL.
func stripThumbQuery(u string) string {
	if i := strings.Index(u, "?"); i >= 0 {
		return u[:i]
	}
	return u
}
