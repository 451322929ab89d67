package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/imbecility/tubesave/pkg/downloader"
	"github.com/imbecility/tubesave/pkg/extractor"
	"github.com/imbecility/tubesave/pkg/models"
	"github.com/imbecility/tubesave/pkg/selector"
	"github.com/imbecility/tubesave/pkg/utils"
)

type Service struct {
	Extractor       extractor.Extractor
	Downloader      *downloader.Downloader
	MetadataTimeout time.Duration
}

func NewService(ex extractor.Extractor, dl *downloader.Downloader, metadataTimeout time.Duration) *Service {
	if metadataTimeout <= 0 {
		metadataTimeout = 30 * time.Second
	}
	return &Service{
		Extractor:       ex,
		Downloader:      dl,
		MetadataTimeout: metadataTimeout,
	}
}

// Info resolves the summary shown before a download. Nothing is cached:
// every call hits the extractor.
func (s *Service) Info(ctx context.Context, rawURL string) (*models.VideoSummary, error) {
	meta, err := s.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return models.SummaryFromMetadata(meta), nil
}

// Download runs one request through validate, fetch, classify, acquire and
// buffer. Each step either advances or returns; there are no retries.
func (s *Service) Download(ctx context.Context, req models.DownloadRequest) (*models.StreamedFile, error) {
	req = req.WithDefaults()

	meta, err := s.fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	kind, ok := models.ParseKind(req.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, req.Format)
	}

	var (
		format      models.SourceFormat
		contentType string
		ext         string
	)
	switch kind {
	case models.KindAudio:
		format, err = selector.ChooseAudio(meta.Formats)
		if err != nil {
			return nil, err
		}
		contentType = selector.AudioContentType(format)
		ext = selector.AudioExtension(format.MimeType)
	case models.KindVideo:
		format, err = selector.ChooseVideo(meta.Formats, models.ParseQualityHint(req.Quality))
		if err != nil {
			return nil, err
		}
		contentType = selector.VideoContentType
		ext = selector.VideoExtension
	}

	log.Debug().Str("op", "gateway/download").Str("id", meta.VideoID).Str("kind", string(kind)).
		Int("itag", format.Itag).Str("mime", format.MimeType).Msg("Format selected")

	stream, size, err := s.Extractor.OpenStream(ctx, meta, format)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream: %w", err)
	}

	data, err := s.Downloader.Buffer(ctx, stream, size, meta.VideoID)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	log.Info().Str("id", meta.VideoID).Str("kind", string(kind)).Int("bytes", len(data)).Msg("Download buffered")

	return &models.StreamedFile{
		Data:        data,
		ContentType: contentType,
		Extension:   ext,
		Title:       meta.Title,
	}, nil
}

func (s *Service) fetch(ctx context.Context, rawURL string) (*models.Metadata, error) {
	id, err := utils.ExtractVideoID(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.MetadataTimeout)
	defer cancel()

	meta, err := s.Extractor.FetchMetadata(fetchCtx, utils.CanonicalURL(id))
	if err != nil {
		log.Warn().Str("id", id).Str("extractor", s.Extractor.Name()).Err(err).Msg("Metadata fetch failed")
		return nil, fmt.Errorf("%w: %v", ErrFetchInfo, err)
	}
	if meta.VideoID == "" {
		meta.VideoID = id
	}
	return meta, nil
}
