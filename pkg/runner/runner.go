// Package runner executes external commands and classifies their outcome.
// It never fails on a non-zero exit by itself: the raw result is returned
// and Output applies the benign-warning classification in one place.
package runner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// benignStderr marks the extraction tool's warning for playlists with
// deleted entries. The partial stdout is still usable in that case.
const benignStderr = "unavailable videos are hidden"

// Result is the captured outcome of one command invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner abstracts command execution so call sites can be tested with a
// fake or a spy instead of a real subprocess.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// Exec is the production Runner backed by os/exec. Both streams are
// captured fully; nothing is streamed to the caller.
type Exec struct{}

func (Exec) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: decode(stdout.Bytes()),
		Stderr: decode(stderr.Bytes()),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			slog.Debug("command exited non-zero", "name", name, "code", res.ExitCode)
			return res, nil
		}
		// The command could not be started at all.
		return res, err
	}
	return res, nil
}

// Output applies the classification rule: exit zero returns stdout, a
// non-zero exit with the known benign stderr still returns stdout, any
// other non-zero exit surfaces the stderr text as the error payload.
func (r Result) Output() (string, error) {
	if r.ExitCode == 0 {
		return r.Stdout, nil
	}
	if Benign(r.Stderr) {
		return r.Stdout, nil
	}
	msg := strings.TrimSpace(r.Stderr)
	if msg == "" {
		msg = "command failed with no stderr output"
	}
	return "", errors.New(msg)
}

// Benign reports whether stderr indicates the hidden-entries warning.
func Benign(stderr string) bool {
	return strings.Contains(strings.ToLower(stderr), benignStderr)
}

// decode turns raw process output into a string, preserving bytes that are
// not valid UTF-8 by falling back to a Latin-1 style byte-to-rune mapping.
func decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}
