package youtube

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/models"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/search"
)

func TestDetailsPrimaryPath(t *testing.T) {
	c, fs, fe, _, _ := newTestClient(t)
	fs.results = []search.Result{{
		ID:        testID,
		Title:     "Never Gonna Give You Up",
		Duration:  "3:33",
		Thumbnail: "https://i.ytimg.com/vi/" + testID + "/hq720.jpg?sqp=abc",
		Link:      watchBase + testID,
	}}

	md := c.Details(context.Background(), watchBase+testID, false)

	if md.Title != "Never Gonna Give You Up" {
		t.Errorf("Title = %q", md.Title)
	}
	if md.DurationText != "3:33" || md.DurationSeconds != 213 {
		t.Errorf("duration = %q / %d, want 3:33 / 213", md.DurationText, md.DurationSeconds)
	}
	if strings.Contains(md.Thumbnail, "?") {
		t.Errorf("Thumbnail = %q, query string not stripped", md.Thumbnail)
	}
	if md.ID != testID {
		t.Errorf("ID = %q, want %q", md.ID, testID)
	}
	if fe.inspects != 0 {
		t.Errorf("fallback ran %d times on a healthy primary path", fe.inspects)
	}
}

func TestDetailsMemoized(t *testing.T) {
	c, fs, _, _, _ := newTestClient(t)
	fs.results = []search.Result{{ID: testID, Title: "Cached", Duration: "1:00"}}

	c.Details(context.Background(), watchBase+testID, false)
	c.Details(context.Background(), watchBase+testID, false)

	if fs.calls != 1 {
		t.Errorf("search calls = %d, want 1 (memoized)", fs.calls)
	}
}

func TestDetailsPrimaryDefaults(t *testing.T) {
	c, fs, _, _, _ := newTestClient(t)
	fs.results = []search.Result{{ID: testID}}

	md := c.Details(context.Background(), watchBase+testID, false)

	if md.Title != titlePlaceholder {
		t.Errorf("Title = %q, want placeholder", md.Title)
	}
	if md.DurationText != "0:00" || md.DurationSeconds != 0 {
		t.Errorf("duration = %q / %d, want 0:00 / 0", md.DurationText, md.DurationSeconds)
	}
}

func TestDetailsFallbackPath(t *testing.T) {
	c, fs, fe, fp, _ := newTestClient(t)
	fs.err = errors.New("search down")
	fe.info = &extractInfo{
		Entries: []*extractInfo{{
			ID:        testID,
			Title:     "From Fallback",
			Duration:  225,
			Thumbnail: "https://i.ytimg.com/vi/x/hq720.jpg?rs=z",
		}},
	}

	md := c.Details(context.Background(), watchBase+testID, false)

	if md.Title != "From Fallback" {
		t.Errorf("Title = %q", md.Title)
	}
	if md.DurationText != "3:45" || md.DurationSeconds != 225 {
		t.Errorf("duration = %q / %d, want 3:45 / 225", md.DurationText, md.DurationSeconds)
	}
	if !strings.HasPrefix(fe.lastTarget, "ytsearch:") {
		t.Errorf("fallback target = %q, want ytsearch: prefix", fe.lastTarget)
	}
	if fe.lastCookie != fp.handle.Path {
		t.Errorf("fallback cookie = %q, want pool handle %q", fe.lastCookie, fp.handle.Path)
	}
	if fp.ok != 1 || fp.failed != 0 {
		t.Errorf("pool outcome ok=%d failed=%d, want 1/0", fp.ok, fp.failed)
	}
}

func TestDetailsFallbackDegradedPoolSkipsCookie(t *testing.T) {
	c, fs, fe, fp, _ := newTestClient(t)
	fs.err = errors.New("search down")
	fp.degraded = true
	fe.info = &extractInfo{ID: testID, Title: "No Auth", Duration: 60}

	md := c.Details(context.Background(), watchBase+testID, false)

	if md.Empty() {
		t.Fatal("Details() returned the sentinel on a working fallback")
	}
	if fe.lastCookie != "" {
		t.Errorf("fallback cookie = %q, want none on a degraded pool", fe.lastCookie)
	}
	if fp.nexts != 0 {
		t.Errorf("pool consulted %d times while degraded", fp.nexts)
	}
}

func TestDetailsTotalFailureSentinel(t *testing.T) {
	c, fs, fe, fp, _ := newTestClient(t)
	fs.err = errors.New("search down")
	fe.inspectErr = errors.New("extraction down")

	md := c.Details(context.Background(), watchBase+testID, false)

	if !md.Empty() {
		t.Errorf("Details() = %+v, want all-zero sentinel", md)
	}
	if fp.failed != 1 {
		t.Errorf("pool failures = %d, want 1", fp.failed)
	}

	// Failures must not be memoized: the next call retries both paths.
	c.Details(context.Background(), watchBase+testID, false)
	if fs.calls != 2 || fe.inspects != 2 {
		t.Errorf("retry calls search=%d inspect=%d, want 2/2", fs.calls, fe.inspects)
	}
}

func TestTrackFallbackBuildsWatchLink(t *testing.T) {
	c, fs, fe, _, _ := newTestClient(t)
	fs.err = errors.New("search down")
	fe.info = &extractInfo{ID: testID, Title: "Song", Duration: 90}

	info := c.Track(context.Background(), "some song query", false)

	if info.Link != watchBase+testID {
		t.Errorf("Link = %q, want watch url", info.Link)
	}
	if info.DurationMin != "1:30" {
		t.Errorf("DurationMin = %q, want 1:30", info.DurationMin)
	}
	if info.VidID != testID {
		t.Errorf("VidID = %q", info.VidID)
	}
}

func TestTrackPrimaryPath(t *testing.T) {
	c, fs, _, _, _ := newTestClient(t)
	fs.results = []search.Result{{
		ID:       testID,
		Title:    "Song",
		Duration: "2:00",
		Link:     watchBase + testID,
	}}

	info := c.Track(context.Background(), "some song query", false)

	if info.Title != "Song" || info.Link != watchBase+testID || info.DurationMin != "2:00" {
		t.Errorf("Track() = %+v", info)
	}
}

func TestSlider(t *testing.T) {
	c, fs, _, _, _ := newTestClient(t)
	fs.results = []search.Result{
		{ID: "aaaaaaaaaaa", Title: "First", Duration: "1:00"},
		{ID: "bbbbbbbbbbb", Title: "Second", Duration: "2:00"},
		{ID: "ccccccccccc", Title: "Third", Duration: "3:00"},
	}

	entry := c.Slider(context.Background(), "related query", 1, false)
	if entry.Title != "Second" || entry.ID != "bbbbbbbbbbb" {
		t.Errorf("Slider(1) = %+v, want the second result", entry)
	}

	out := c.Slider(context.Background(), "related query", 9, false)
	if out != (models.SliderEntry{}) {
		t.Errorf("Slider(out of range) = %+v, want zero entry", out)
	}
}

func TestSliderFailure(t *testing.T) {
	c, fs, _, _, _ := newTestClient(t)
	fs.err = errors.New("search down")

	if got := c.Slider(context.Background(), "related query", 0, false); got != (models.SliderEntry{}) {
		t.Errorf("Slider() = %+v, want zero entry", got)
	}
}
