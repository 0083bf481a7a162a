package youtube

import (
	"context"
	"errors"
	"testing"

	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/runner"
)

func int64p(v int64) *int64 { return &v }

func TestFormatsMapping(t *testing.T) {
	c, _, fe, _, _ := newTestClient(t)
	fe.info = &extractInfo{
		ID: testID,
		Formats: []extractFmt{
			{Format: "storyboard", FormatID: ""}, // no id, must be skipped
			{Format: "137 - 1920x1080", FormatID: "137", Ext: "mp4", FormatNote: "1080p", FilesizeApprox: int64p(900)},
			{Format: "140 - audio only", FormatID: "140", Ext: "m4a", FormatNote: "medium", Filesize: int64p(300)},
		},
	}

	target := watchBase + testID
	entries := c.Formats(context.Background(), target, false)

	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 (id-less entry skipped)", len(entries))
	}
	if entries[0].FormatID != "137" || entries[1].FormatID != "140" {
		t.Errorf("provider order not preserved: %q, %q", entries[0].FormatID, entries[1].FormatID)
	}
	if entries[0].Filesize == nil || *entries[0].Filesize != 900 {
		t.Error("approximate size not used when the exact size is absent")
	}
	if entries[1].Filesize == nil || *entries[1].Filesize != 300 {
		t.Error("exact size not carried through")
	}
	for _, e := range entries {
		if e.URL != target {
			t.Errorf("entry URL = %q, want the request target", e.URL)
		}
	}
}

func TestFormatsMemoized(t *testing.T) {
	c, _, fe, _, _ := newTestClient(t)
	fe.info = &extractInfo{Formats: []extractFmt{{FormatID: "18", Ext: "mp4"}}}

	c.Formats(context.Background(), watchBase+testID, false)
	c.Formats(context.Background(), watchBase+testID, false)

	if fe.inspects != 1 {
		t.Errorf("inspects = %d, want 1 (memoized)", fe.inspects)
	}
}

func TestFormatsFailureYieldsEmptyCatalog(t *testing.T) {
	c, _, fe, fp, _ := newTestClient(t)
	fe.inspectErr = errors.New("throttled")

	if got := c.Formats(context.Background(), watchBase+testID, false); got != nil {
		t.Errorf("Formats() = %v, want nil on failure", got)
	}
	if fp.failed != 1 {
		t.Errorf("pool failures = %d, want 1", fp.failed)
	}
}

func TestProbeFilesize(t *testing.T) {
	c, _, _, _, sr := newTestClient(t)
	sr.res = runner.Result{Stdout: `{"id":"` + testID + `","formats":[{"format_id":"137","filesize":12345},{"format_id":"140","filesize_approx":678}]}`}

	size, err := c.ProbeFilesize(context.Background(), watchBase+testID, false, "137")
	if err != nil {
		t.Fatalf("ProbeFilesize() error: %v", err)
	}
	if size != 12345 {
		t.Errorf("size = %d, want 12345", size)
	}

	size, err = c.ProbeFilesize(context.Background(), watchBase+testID, false, "140")
	if err != nil {
		t.Fatalf("ProbeFilesize(approx) error: %v", err)
	}
	if size != 678 {
		t.Errorf("approx size = %d, want 678", size)
	}

	if _, err := c.ProbeFilesize(context.Background(), watchBase+testID, false, "999"); err == nil {
		t.Error("ProbeFilesize(unknown format) succeeded")
	}
}

func TestProbeFilesizeToolFailure(t *testing.T) {
	c, _, _, _, sr := newTestClient(t)
	sr.res = runner.Result{Stderr: "ERROR: video unavailable", ExitCode: 1}

	_, err := c.ProbeFilesize(context.Background(), watchBase+testID, false, "137")
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Errorf("error = %v, want *ExtractionError", err)
	}
}
