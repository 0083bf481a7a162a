// Package utils holds small helpers shared by the engine and the CLI.
package utils

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename strips directory components and characters that are
// problematic on common filesystems from a caller-supplied title.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))

	replacer := strings.NewReplacer(
		"..", "_",
		"/", "_",
		"\\", "_",
		"\x00", "",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	name = replacer.Replace(name)

	if name == "" || name == "." || name == ".." {
		return "untitled"
	}
	return name
}
