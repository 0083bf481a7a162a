package utils

import (
	"regexp"
	"strings"
)

var (
	watchRe = regexp.MustCompile(`(?:https?://)?(?:www\.|m\.)?(?:youtube|youtu|youtube-nocookie)\.(?:com|be)/(?:watch\?v=|embed/|v/|.+\?v=|shorts/|live/)?([^&=%\?/]{11})`)
	idRe    = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ExtractVideoID pulls the 11-character video id out of any of the accepted
// URL shapes, or validates a bare id. Returns "" when nothing matches.
func ExtractVideoID(input string) string {
	input = strings.TrimSpace(input)

	if m := watchRe.FindStringSubmatch(input); len(m) >= 2 {
		return m[1]
	}

	if idRe.MatchString(input) {
		return input
	}

	return ""
}
