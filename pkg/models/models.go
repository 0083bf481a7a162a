// Package models defines the shared types passed between the resolution
// engine, its collaborators and the CLI.
package models

// VideoRef is a validated reference to a single video: the bare id plus the
// canonical watch URL derived from it. A VideoRef only exists after the link
// classifier has accepted the input.
type VideoRef struct {
	ID  string
	URL string
}

// VideoMetadata holds the resolved description of a video. A zero value
// means resolution failed on both paths; fields are never partially
// populated. Callers must check Empty before using the fields.
type VideoMetadata struct {
	Title           string
	DurationText    string
	DurationSeconds int
	Thumbnail       string
	ID              string
}

// Empty reports whether the metadata is the total-failure sentinel.
func (m VideoMetadata) Empty() bool {
	return m == VideoMetadata{}
}

// FormatEntry describes one encoding of a video as reported by the
// extraction tool. Filesize is nil when the provider does not report one.
type FormatEntry struct {
	Format   string
	Filesize *int64
	FormatID string
	Ext      string
	Note     string
	URL      string
}

// TrackInfo is the search-result shape consumed by queue/search callers.
type TrackInfo struct {
	Title       string
	Link        string
	VidID       string
	DurationMin string
	Thumb       string
}

// SliderEntry is one related-video entry from a limit-10 lookup.
type SliderEntry struct {
	Title        string
	DurationText string
	Thumb        string
	ID           string
}

// DownloadRequest carries one acquisition request. The mode flags are
// mutually exclusive from the caller's point of view; when several are set
// the selector applies a fixed precedence (song video, song audio, video,
// audio). FormatID and Title are only meaningful for the format-specific
// modes.
type DownloadRequest struct {
	Link      string
	VideoID   bool // Link is a bare video id, not a URL
	Video     bool
	SongAudio bool
	SongVideo bool
	FormatID  string
	Title     string
}

// MediaKind is the download profile chosen by the strategy selector.
type MediaKind int

const (
	KindAudio MediaKind = iota
	KindVideo
	KindSongAudio
	KindSongVideo
)

func (k MediaKind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	case KindSongAudio:
		return "song_audio"
	case KindSongVideo:
		return "song_video"
	default:
		return "unknown"
	}
}

// Kind resolves the request flags into one profile. Format-specific modes
// win over plain ones; plain audio is the default.
func (r DownloadRequest) Kind() MediaKind {
	switch {
	case r.SongVideo:
		return KindSongVideo
	case r.SongAudio:
		return KindSongAudio
	case r.Video:
		return KindVideo
	default:
		return KindAudio
	}
}

// DownloadResult is the terminal outcome of one acquisition. Local reports
// whether Location is a file path under the download directory (true) or a
// directly streamable URL (false).
type DownloadResult struct {
	Location string
	Local    bool
}
