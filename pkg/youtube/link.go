package youtube

import (
	"regexp"
	"strings"

	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/models"
	"github.com/maythusharfavemygirlv1/maythusharmusic/pkg/utils"
)

const (
	watchBase    = "https://www.youtube.com/watch?v="
	playlistBase = "https://youtube.com/playlist?list="
)

// hostRe accepts the two host forms of the platform.
var hostRe = regexp.MustCompile(`(?:youtube\.com|youtu\.be)`)

// IsVideoLink reports whether link (or, when videoID is set, the watch URL
// built from it) points at the platform.
func (c *Client) IsVideoLink(link string, videoID bool) bool {
	if videoID {
		link = watchBase + link
	}
	return hostRe.MatchString(link)
}

// canonical expands a bare id into the watch URL. URLs pass through.
func canonical(link string, videoID bool) string {
	if videoID {
		return watchBase + link
	}
	return link
}

// canonicalList expands a bare playlist id into the playlist URL.
func canonicalList(link string, videoID bool) string {
	if videoID {
		return playlistBase + link
	}
	return link
}

// stripQuery drops everything after the first '&', the way the search
// provider expects its input. The '?v=' part stays.
func stripQuery(link string) string {
	if i := strings.Index(link, "&"); i >= 0 {
		return link[:i]
	}
	return link
}

// Ref validates the input and returns the canonical reference for it.
func (c *Client) Ref(link string, videoID bool) (models.VideoRef, error) {
	full := canonical(link, videoID)
	if !hostRe.MatchString(full) {
		return models.VideoRef{}, ErrInvalidLink
	}

	id := utils.ExtractVideoID(full)
	if id == "" {
		return models.VideoRef{}, ErrInvalidLink
	}
	return models.VideoRef{ID: id, URL: watchBase + id}, nil
}
