package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog/log"

	"github.com/imbecility/tubesave/pkg/models"
)

var (
	ErrForeignMetadata = errors.New("metadata was not produced by this extractor")
	ErrFormatNotFound  = errors.New("format not found in metadata")
)

// YouTube fetches metadata and streams with github.com/kkdai/youtube.
type YouTube struct {
	client *youtube.Client
}

func NewYouTube(httpClient *http.Client) *YouTube {
	return &YouTube{client: &youtube.Client{HTTPClient: httpClient}}
}

func (y *YouTube) Name() string { return "youtube" }

func (y *YouTube) FetchMetadata(ctx context.Context, videoURL string) (*models.Metadata, error) {
	video, err := y.client.GetVideoContext(ctx, videoURL)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("op", "extractor/metadata").Str("id", video.ID).
		Int("formats", len(video.Formats)).Msg("Video metadata fetched")
	return convertVideo(video), nil
}

// OpenStream starts the ranged download of format. The returned stream owns a
// child context: Close cancels it, tearing down in-flight chunk requests.
func (y *YouTube) OpenStream(ctx context.Context, meta *models.Metadata, format models.SourceFormat) (io.ReadCloser, int64, error) {
	video, ok := meta.Source.(*youtube.Video)
	if !ok || video == nil {
		return nil, 0, ErrForeignMetadata
	}
	f := video.Formats.Itag(format.Itag)
	if len(f) == 0 {
		return nil, 0, fmt.Errorf("%w: itag %d", ErrFormatNotFound, format.Itag)
	}

	streamCtx, cancel := context.WithCancel(ctx)
	stream, size, err := y.client.GetStreamContext(streamCtx, video, &f[0])
	if err != nil {
		cancel()
		return nil, 0, err
	}
	log.Debug().Str("op", "extractor/stream").Str("id", video.ID).
		Int("itag", format.Itag).Int64("size", size).Msg("Stream opened")
	return &cancelOnClose{ReadCloser: stream, cancel: cancel}, size, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	c.cancel()
	return c.ReadCloser.Close()
}

func convertVideo(video *youtube.Video) *models.Metadata {
	meta := &models.Metadata{
		VideoID:         video.ID,
		Title:           video.Title,
		Author:          video.Author,
		DurationSeconds: int(video.Duration.Seconds()),
		Thumbnails:      make([]string, 0, len(video.Thumbnails)),
		Formats:         make([]models.SourceFormat, 0, len(video.Formats)),
		Source:          video,
	}
	for _, t := range video.Thumbnails {
		meta.Thumbnails = append(meta.Thumbnails, t.URL)
	}
	for _, f := range video.Formats {
		meta.Formats = append(meta.Formats, convertFormat(f))
	}
	return meta
}

func convertFormat(f youtube.Format) models.SourceFormat {
	hasVideo := f.QualityLabel != "" || f.Height > 0 || f.Width > 0
	hasAudio := f.AudioChannels > 0 || f.AudioQuality != ""
	if !hasVideo && !hasAudio {
		hasVideo = strings.HasPrefix(f.MimeType, "video/")
		hasAudio = strings.HasPrefix(f.MimeType, "audio/")
	}
	return models.SourceFormat{
		Itag:          f.ItagNo,
		MimeType:      f.MimeType,
		QualityLabel:  f.QualityLabel,
		HasVideo:      hasVideo,
		HasAudio:      hasAudio,
		Width:         f.Width,
		Height:        f.Height,
		FPS:           f.FPS,
		Bitrate:       f.Bitrate,
		AudioQuality:  f.AudioQuality,
		ContentLength: f.ContentLength,
	}
}
