package models

import (
	"regexp"
	"strings"
)

type Kind string

const (
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

// ParseKind maps a requested output keyword to a Kind. mp3 and mp4 are
// accepted as aliases for audio and video.
func ParseKind(format string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "mp3", "audio":
		return KindAudio, true
	case "mp4", "video":
		return KindVideo, true
	}
	return "", false
}

type QualityHint string

const (
	QualityHigh   QualityHint = "high"
	QualityMedium QualityHint = "medium"
	QualityLow    QualityHint = "low"
)

// ParseQualityHint never fails: anything unrecognized selects QualityHigh.
func ParseQualityHint(q string) QualityHint {
	switch QualityHint(strings.ToLower(strings.TrimSpace(q))) {
	case QualityMedium:
		return QualityMedium
	case QualityLow:
		return QualityLow
	}
	return QualityHigh
}

type InfoRequest struct {
	URL string `json:"url"`
}

type DownloadRequest struct {
	URL     string `json:"url"`
	Format  string `json:"format"`
	Quality string `json:"quality,omitempty"`
}

// WithDefaults fills in the values an empty request body falls back to.
func (r DownloadRequest) WithDefaults() DownloadRequest {
	if strings.TrimSpace(r.Format) == "" {
		r.Format = "mp3"
	}
	if strings.TrimSpace(r.Quality) == "" {
		r.Quality = string(QualityHigh)
	}
	return r
}

// Metadata is what the extractor knows about one video. Source is an
// extractor-owned handle handed back to OpenStream; callers never inspect it.
type Metadata struct {
	VideoID         string
	Title           string
	Author          string
	DurationSeconds int
	Thumbnails      []string
	Formats         []SourceFormat
	Source          any
}

type VideoSummary struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Duration  int    `json:"duration"`
	Author    string `json:"author"`
}

func SummaryFromMetadata(m *Metadata) *VideoSummary {
	s := &VideoSummary{
		Title:    m.Title,
		Duration: m.DurationSeconds,
		Author:   m.Author,
	}
	if len(m.Thumbnails) > 0 {
		s.Thumbnail = m.Thumbnails[0]
	}
	return s
}

type InfoResponse struct {
	VideoDetails *VideoSummary `json:"videoDetails"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// StreamedFile is a fully buffered download ready to be written out in one
// response.
type StreamedFile struct {
	Data        []byte
	ContentType string
	Extension   string
	Title       string
}

var unsafeTitleChars = regexp.MustCompile(`[^\w\s-]`)

// SanitizeTitle drops everything except ASCII word characters, whitespace
// and hyphens, then trims.
func SanitizeTitle(title string) string {
	return strings.TrimSpace(unsafeTitleChars.ReplaceAllString(title, ""))
}

func (f *StreamedFile) FileName() string {
	name := SanitizeTitle(f.Title)
	if name == "" {
		name = "download"
	}
	return name + "." + f.Extension
}
