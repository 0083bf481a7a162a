// Package ffmpeg locates the ffmpeg binary the extraction tool needs for
// stream merging and audio transcoding.
package ffmpeg

import (
	"fmt"
	"log/slog"
	"os/exec"
)

// Ensure verifies that the requested ffmpeg binary works, falling back to a
// PATH lookup. The returned path is what the extraction tool should use.
func Ensure(requestedPath string) (string, error) {
	if requestedPath == "" {
		requestedPath = "ffmpeg"
	}

	if isWorking(requestedPath) {
		slog.Debug("ffmpeg found and working", "path", requestedPath)
		return requestedPath, nil
	}

	found, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg: %q not working and none found in PATH: %w", requestedPath, err)
	}
	if !isWorking(found) {
		return "", fmt.Errorf("ffmpeg: binary at %q is not working", found)
	}

	slog.Debug("using ffmpeg from PATH", "path", found)
	return found, nil
}

func isWorking(path string) bool {
	return exec.Command(path, "-version").Run() == nil
}
