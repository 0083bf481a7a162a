package youtube

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeToSeconds converts "H:MM:SS" or "MM:SS" duration text to elapsed
// seconds. Malformed input yields 0, never an error.
func TimeToSeconds(text string) int {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) == 0 || len(parts) > 3 {
		return 0
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// SecondsToMin renders a second count as duration text, zero-padding the
// minute component only when hours are present.
func SecondsToMin(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
