package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// extractInfo is the slice of the tool's JSON dump the engine reads. A
// search pseudo-query yields Entries; a single link fills the top level.
type extractInfo struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Duration  float64        `json:"duration"`
	Thumbnail string         `json:"thumbnail"`
	Ext       string         `json:"ext"`
	Formats   []extractFmt   `json:"formats"`
	Entries   []*extractInfo `json:"entries"`
}

type extractFmt struct {
	Format         string `json:"format"`
	FormatID       string `json:"format_id"`
	Ext            string `json:"ext"`
	FormatNote     string `json:"format_note"`
	Filesize       *int64 `json:"filesize"`
	FilesizeApprox *int64 `json:"filesize_approx"`
	URL            string `json:"url"`
}

// profile is one download configuration handed to the extraction tool.
type profile struct {
	format         string
	output         string
	cookieFile     string
	mergeFormat    string
	extractAudio   bool
	audioFormat    string
	audioQuality   string
	embedThumbnail bool
	embedMetadata  bool
}

// extractor is the library-style invocation surface of the extraction tool.
// Tests substitute a fake; production uses ytdlpExtractor.
type extractor interface {
	// Inspect dumps metadata for a link or search pseudo-query without
	// downloading anything.
	Inspect(ctx context.Context, target, cookieFile string) (*extractInfo, error)
	// Download acquires media for target under the given profile.
	Download(ctx context.Context, target string, p profile) error
}

// ytdlpExtractor drives yt-dlp through go-ytdlp.
type ytdlpExtractor struct {
	ffmpegPath string
}

func (e *ytdlpExtractor) base(cookieFile string) *ytdlp.Command {
	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		GeoBypass().
		NoCheckCertificates()
	if cookieFile != "" {
		cmd = cmd.Cookies(cookieFile)
	}
	if e.ffmpegPath != "" {
		cmd = cmd.FFmpegLocation(e.ffmpegPath)
	}
	return cmd
}

func (e *ytdlpExtractor) Inspect(ctx context.Context, target, cookieFile string) (*extractInfo, error) {
	cmd := e.base(cookieFile).
		SkipDownload().
		DumpSingleJSON()

	res, err := cmd.Run(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("inspecting %q: %w", target, err)
	}

	var info extractInfo
	if err := json.Unmarshal([]byte(strings.TrimSpace(res.Stdout)), &info); err != nil {
		return nil, fmt.Errorf("decoding metadata for %q: %w", target, err)
	}
	return &info, nil
}

func (e *ytdlpExtractor) Download(ctx context.Context, target string, p profile) error {
	cmd := e.base(p.cookieFile).
		Format(p.format).
		Output(p.output)

	if p.mergeFormat != "" {
		cmd = cmd.MergeOutputFormat(p.mergeFormat)
	}
	if p.extractAudio {
		cmd = cmd.ExtractAudio().AudioFormat(p.audioFormat)
		if p.audioQuality != "" {
			cmd = cmd.AudioQuality(p.audioQuality)
		}
	}
	if p.embedThumbnail {
		cmd = cmd.EmbedThumbnail()
	}
	if p.embedMetadata {
		cmd = cmd.EmbedMetadata()
	}

	if _, err := cmd.Run(ctx, target); err != nil {
		return fmt.Errorf("downloading %q: %w", target, err)
	}
	return nil
}
