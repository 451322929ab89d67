package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/imbecility/tubesave/pkg/downloader"
	"github.com/imbecility/tubesave/pkg/selector"
)

var (
	ErrInvalidURL    = errors.New("invalid YouTube URL")
	ErrInvalidFormat = errors.New("invalid format specified")
	ErrFetchInfo     = errors.New("failed to fetch video info")
	ErrEmptyFile     = errors.New("download resulted in empty file")
)

// StatusCode maps a service error to the HTTP status the API answers with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidURL), errors.Is(err, ErrInvalidFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Reason is a short, bounded label for metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, ErrFetchInfo):
		return "metadata"
	case errors.Is(err, selector.ErrNoAudioFormat), errors.Is(err, selector.ErrNoVideoFormat):
		return "no_format"
	case errors.Is(err, downloader.ErrTimeout):
		return "timeout"
	case errors.Is(err, downloader.ErrTooLarge):
		return "too_large"
	case errors.Is(err, ErrEmptyFile):
		return "empty"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "stream"
	}
}
