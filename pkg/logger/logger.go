package logger

import (
	"log/slog"
	"os"
)

// SetupGlobal installs the process-wide slog default. Components log through
// the slog package-level functions, so this must run before the engine is
// constructed.
func SetupGlobal(debug bool, showSource bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: showSource,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	slog.SetDefault(slog.New(handler))
}
