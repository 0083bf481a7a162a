// Package cookies selects one credential file per request from a pool of
// exported browser cookies and keeps an audit trail of every selection.
package cookies

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrPoolEmpty is returned when no credential files are discoverable.
var ErrPoolEmpty = errors.New("cookies: no credential files available")

// Handle references one selected credential file. It is borrowed for the
// duration of a single request and never retained.
type Handle struct {
	Path string
	Name string
}

// Pool hands out credential handles and tracks their health. Implementations
// must be safe for concurrent use.
type Pool interface {
	// Next selects a credential for one request. Selection is recorded in
	// the audit log.
	Next() (Handle, error)
	// MarkFailed records that the handle failed upstream. Enough
	// consecutive failures flip the pool into the degraded state.
	MarkFailed(Handle)
	// MarkOK resets the consecutive-failure counter. The degradation
	// detector needs the success signal, not only the failures.
	MarkOK(Handle)
	// Degraded reports whether callers should prefer an unauthenticated
	// path where one exists.
	Degraded() bool
}

// DirPool discovers .txt credential files in a directory at selection time
// and picks uniformly at random, so no single identity absorbs the whole
// request volume and the rotation pattern stays unpredictable.
type DirPool struct {
	dir       string
	auditPath string
	threshold int

	mu       sync.Mutex // guards audit appends and the failure counter
	failures int
	degraded bool
}

// NewDirPool returns a pool over dir, appending selections to auditPath.
// threshold is the number of consecutive failures that marks the pool
// degraded; zero or negative disables the detector.
func NewDirPool(dir, auditPath string, threshold int) *DirPool {
	return &DirPool{dir: dir, auditPath: auditPath, threshold: threshold}
}

func (p *DirPool) Next() (Handle, error) {
	files, err := p.scan()
	if err != nil {
		return Handle{}, err
	}
	if len(files) == 0 {
		return Handle{}, ErrPoolEmpty
	}

	chosen := files[rand.IntN(len(files))]
	h := Handle{Path: chosen, Name: filepath.Base(chosen)}

	if err := p.audit(h); err != nil {
		slog.Warn("cookie audit append failed", "err", err)
	}
	return h, nil
}

func (p *DirPool) MarkFailed(h Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures++
	if p.threshold > 0 && p.failures >= p.threshold && !p.degraded {
		p.degraded = true
		slog.Warn("credential pool degraded, unauthenticated fallback enabled",
			"consecutive_failures", p.failures)
	}
}

func (p *DirPool) MarkOK(h Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures = 0
}

func (p *DirPool) Degraded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.degraded
}

func (p *DirPool) scan() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cookies: scanning %s: %w", p.dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		files = append(files, filepath.Join(p.dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// audit appends one selection record: timestamp, file name, correlation id.
// The append happens under the pool mutex with a single flushed write so
// concurrent requests never interleave partial lines.
func (p *DirPool) audit(h Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p.auditPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p.auditPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		time.Now().UTC().Format(time.RFC3339),
		h.Name,
		uuid.NewString(),
	}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
