package cookies

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestPool(t *testing.T, cookieNames ...string) (*DirPool, string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range cookieNames {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# Netscape HTTP Cookie File\n"), 0o644); err != nil {
			t.Fatalf("writing cookie fixture: %v", err)
		}
	}
	audit := filepath.Join(t.TempDir(), "logs.csv")
	return NewDirPool(dir, audit, 3), audit
}

func TestNextSelectsFromPool(t *testing.T) {
	pool, _ := newTestPool(t, "a.txt", "b.txt", "c.txt")

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		h, err := pool.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if filepath.Ext(h.Name) != ".txt" {
			t.Fatalf("Next() selected %q, want a .txt file", h.Name)
		}
		seen[h.Name] = true
	}
	if len(seen) < 2 {
		t.Errorf("50 selections hit %d distinct files, want at least 2", len(seen))
	}
}

func TestNextIgnoresNonCredentialFiles(t *testing.T) {
	pool, _ := newTestPool(t, "a.txt")
	other := filepath.Join(pool.dir, "notes.md")
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		h, err := pool.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if h.Name != "a.txt" {
			t.Fatalf("Next() = %q, want a.txt", h.Name)
		}
	}
}

func TestNextEmptyPool(t *testing.T) {
	pool := NewDirPool(t.TempDir(), filepath.Join(t.TempDir(), "logs.csv"), 3)
	_, err := pool.Next()
	if !errors.Is(err, ErrPoolEmpty) {
		t.Fatalf("Next() error = %v, want ErrPoolEmpty", err)
	}
}

func TestNextMissingDirIsEmptyPool(t *testing.T) {
	pool := NewDirPool(filepath.Join(t.TempDir(), "gone"), filepath.Join(t.TempDir(), "logs.csv"), 3)
	_, err := pool.Next()
	if !errors.Is(err, ErrPoolEmpty) {
		t.Fatalf("Next() error = %v, want ErrPoolEmpty", err)
	}
}

func TestAuditRecordsEverySelection(t *testing.T) {
	pool, audit := newTestPool(t, "a.txt")

	const n = 5
	for i := 0; i < n; i++ {
		if _, err := pool.Next(); err != nil {
			t.Fatalf("Next() error: %v", err)
		}
	}

	f, err := os.Open(audit)
	if err != nil {
		t.Fatalf("opening audit log: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("audit log is not well-formed csv: %v", err)
	}
	if len(records) != n {
		t.Fatalf("audit log has %d records, want %d", len(records), n)
	}
	for _, rec := range records {
		if len(rec) != 3 {
			t.Fatalf("audit record has %d fields, want 3: %v", len(rec), rec)
		}
		if rec[1] != "a.txt" {
			t.Errorf("audit record file = %q, want a.txt", rec[1])
		}
	}
}

func TestDegradationDetector(t *testing.T) {
	pool, _ := newTestPool(t, "a.txt")

	h, err := pool.Next()
	if err != nil {
		t.Fatal(err)
	}

	pool.MarkFailed(h)
	pool.MarkFailed(h)
	if pool.Degraded() {
		t.Fatal("Degraded() = true below threshold")
	}

	pool.MarkFailed(h)
	if !pool.Degraded() {
		t.Fatal("Degraded() = false after reaching threshold")
	}
}

func TestMarkOKResetsCounter(t *testing.T) {
	pool, _ := newTestPool(t, "a.txt")

	h, _ := pool.Next()
	pool.MarkFailed(h)
	pool.MarkFailed(h)
	pool.MarkOK(h)
	pool.MarkFailed(h)
	pool.MarkFailed(h)

	if pool.Degraded() {
		t.Fatal("Degraded() = true even though failures were not consecutive")
	}
}
