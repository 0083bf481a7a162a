package youtube

import (
	"context"
	"strconv"
	"strings"
)

// Playlist enumerates up to limit video ids of a playlist through the
// external-process mode. The hidden-entries warning from playlists with
// deleted videos is tolerated; the visible ids are still returned.
func (c *Client) Playlist(ctx context.Context, link string, videoID bool, limit int) ([]string, error) {
	target := stripQuery(canonicalList(link, videoID))
	if limit <= 0 {
		limit = 25
	}

	handle, authed, err := c.selectCookie()
	if err != nil {
		return nil, err
	}

	args := []string{"-i", "--get-id", "--flat-playlist", "--playlist-end", strconv.Itoa(limit)}
	if authed {
		args = append(args, "--cookies", handle.Path)
	}
	args = append(args, target)

	var out string
	err = c.work.Do(ctx, func() error {
		res, rerr := c.run.Run(ctx, "yt-dlp", args...)
		if rerr != nil {
			return rerr
		}
		var oerr error
		out, oerr = res.Output()
		return oerr
	})
	if err != nil {
		c.markOutcome(handle, authed, true)
		return nil, extractionFailed("enumerating playlist", err)
	}
	c.markOutcome(handle, authed, false)

	var ids []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ids = append(ids, line)
		}
	}
	return ids, nil
}
