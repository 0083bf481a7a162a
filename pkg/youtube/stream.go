package youtube

import (
	"context"
	"fmt"
	"strings"
)

// VideoURL asks the tool for a directly playable URL without downloading.
// Adaptive-only sources yield empty output, reported as an error here; the
// download path treats that as the cue to fall back to a local copy.
func (c *Client) VideoURL(ctx context.Context, link string, videoID bool) (string, error) {
	ref, err := c.Ref(link, videoID)
	if err != nil {
		return "", err
	}

	handle, authed, err := c.selectCookie()
	if err != nil {
		return "", err
	}
	cookieFile := ""
	if authed {
		cookieFile = handle.Path
	}

	url, err := c.streamURL(ctx, ref.URL, cookieFile)
	c.markOutcome(handle, authed, err != nil)
	return url, err
}

// streamURL runs the -g extraction with the already-selected credential.
func (c *Client) streamURL(ctx context.Context, target, cookieFile string) (string, error) {
	args := []string{"-g", "-f", fmt.Sprintf("best[height<=?%d][width<=?1280]", c.maxHeight)}
	if cookieFile != "" {
		args = append(args, "--cookies", cookieFile)
	}
	args = append(args, target)

	var out string
	err := c.work.Do(ctx, func() error {
		res, rerr := c.run.Run(ctx, "yt-dlp", args...)
		if rerr != nil {
			return rerr
		}
		var oerr error
		out, oerr = res.Output()
		return oerr
	})
	if err != nil {
		return "", extractionFailed("resolving direct stream", err)
	}

	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", extractionFailed("resolving direct stream", fmt.Errorf("empty output for %s", target))
}
