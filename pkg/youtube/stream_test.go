package youtube

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/runner"
)

func TestVideoURL(t *testing.T) {
	c, _, _, fp, sr := newTestClient(t)
	sr.res = runner.Result{Stdout: "https://cdn.example/video\nhttps://cdn.example/audio\n"}

	url, err := c.VideoURL(context.Background(), watchBase+testID, false)
	if err != nil {
		t.Fatalf("VideoURL() error: %v", err)
	}
	if url != "https://cdn.example/video" {
		t.Errorf("url = %q, want the first output line", url)
	}

	joined := strings.Join(sr.lastArgs, " ")
	if !strings.Contains(joined, "-g") || !strings.Contains(joined, "best[height<=?720][width<=?1280]") {
		t.Errorf("args = %v, want -g with the capped selector", sr.lastArgs)
	}
	if fp.ok != 1 {
		t.Errorf("pool ok marks = %d, want 1", fp.ok)
	}
}

func TestVideoURLEmptyOutput(t *testing.T) {
	c, _, _, fp, sr := newTestClient(t)
	sr.res = runner.Result{Stdout: "\n"}

	_, err := c.VideoURL(context.Background(), watchBase+testID, false)
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("error = %v, want *ExtractionError", err)
	}
	if fp.failed != 1 {
		t.Errorf("pool failures = %d, want 1", fp.failed)
	}
}

func TestVideoURLInvalidLink(t *testing.T) {
	c, _, _, _, _ := newTestClient(t)

	if _, err := c.VideoURL(context.Background(), "https://example.com/clip", false); err != ErrInvalidLink {
		t.Errorf("error = %v, want ErrInvalidLink", err)
	}
}
