package selector

import (
	"errors"
	"strings"

	"github.com/imbecility/tubesave/pkg/models"
)

var (
	ErrNoAudioFormat = errors.New("no audio format available")
	ErrNoVideoFormat = errors.New("no video format available")
)

const (
	VideoContentType  = "video/mp4"
	VideoExtension    = "mp4"
	fallbackAudioMime = "audio/webm"
)

// Tier is the concrete ranking a quality hint maps to.
type Tier int

const (
	TierHighest Tier = iota
	TierHighestVideo
	TierLowestVideo
)

func TierFor(hint models.QualityHint) Tier {
	switch hint {
	case models.QualityMedium:
		return TierHighestVideo
	case models.QualityLow:
		return TierLowestVideo
	}
	return TierHighest
}

// ChooseAudio returns the audio-only format with the best audio rank. Ties
// keep the first one in list order.
func ChooseAudio(formats []models.SourceFormat) (models.SourceFormat, error) {
	candidates := filter(formats, models.SourceFormat.IsAudioOnly)
	if len(candidates) == 0 {
		return models.SourceFormat{}, ErrNoAudioFormat
	}
	return best(candidates, compareAudio), nil
}

// ChooseVideo prefers formats carrying both tracks and falls back to
// video-only ones, ranking whichever set it ends up with by tier.
func ChooseVideo(formats []models.SourceFormat, hint models.QualityHint) (models.SourceFormat, error) {
	candidates := filter(formats, models.SourceFormat.IsCombined)
	if len(candidates) == 0 {
		candidates = filter(formats, models.SourceFormat.IsVideoOnly)
	}
	if len(candidates) == 0 {
		return models.SourceFormat{}, ErrNoVideoFormat
	}

	switch TierFor(hint) {
	case TierHighestVideo:
		return best(candidates, compareVideo), nil
	case TierLowestVideo:
		return best(candidates, func(a, b models.SourceFormat) int { return -compareVideo(a, b) }), nil
	default:
		return best(candidates, compareOverall), nil
	}
}

// AudioContentType returns the declared MIME type, or audio/webm if the
// extractor did not provide one.
func AudioContentType(f models.SourceFormat) string {
	if f.MimeType == "" {
		return fallbackAudioMime
	}
	return f.MimeType
}

// AudioExtension guesses a file extension from a MIME type. It only knows
// two containers; anything not mentioning mp4 is reported as webm.
func AudioExtension(mimeType string) string {
	if strings.Contains(mimeType, "mp4") {
		return "m4a"
	}
	return "webm"
}

func filter(formats []models.SourceFormat, keep func(models.SourceFormat) bool) []models.SourceFormat {
	var out []models.SourceFormat
	for _, f := range formats {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// best returns the maximum under cmp; only a strictly greater element
// replaces the current pick.
func best(candidates []models.SourceFormat, cmp func(a, b models.SourceFormat) int) models.SourceFormat {
	pick := candidates[0]
	for _, f := range candidates[1:] {
		if cmp(f, pick) > 0 {
			pick = f
		}
	}
	return pick
}

func compareVideo(a, b models.SourceFormat) int {
	if c := compareInt(a.Height, b.Height); c != 0 {
		return c
	}
	if c := compareInt(a.FPS, b.FPS); c != 0 {
		return c
	}
	return compareInt(a.Bitrate, b.Bitrate)
}

func compareAudio(a, b models.SourceFormat) int {
	if c := compareInt(a.AudioLevel(), b.AudioLevel()); c != 0 {
		return c
	}
	return compareInt(a.Bitrate, b.Bitrate)
}

func compareOverall(a, b models.SourceFormat) int {
	if c := compareVideo(a, b); c != 0 {
		return c
	}
	return compareInt(a.AudioLevel(), b.AudioLevel())
}

func compareInt(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}
