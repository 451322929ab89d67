package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imbecility/tubesave/pkg/models"
)

func audioOnly(itag int, quality string, bitrate int, mime string) models.SourceFormat {
	return models.SourceFormat{Itag: itag, HasAudio: true, AudioQuality: quality, Bitrate: bitrate, MimeType: mime}
}

func videoOnly(itag, height, fps int) models.SourceFormat {
	return models.SourceFormat{Itag: itag, HasVideo: true, Height: height, FPS: fps, MimeType: "video/webm"}
}

func combined(itag, height int, quality string) models.SourceFormat {
	return models.SourceFormat{Itag: itag, HasVideo: true, HasAudio: true, Height: height, FPS: 30, AudioQuality: quality, MimeType: "video/mp4"}
}

func TestChooseAudio_PicksHighestRank(t *testing.T) {
	formats := []models.SourceFormat{
		combined(18, 360, "AUDIO_QUALITY_HIGH"),
		audioOnly(139, "AUDIO_QUALITY_LOW", 48000, "audio/mp4"),
		audioOnly(251, "AUDIO_QUALITY_MEDIUM", 160000, "audio/webm"),
		audioOnly(140, "AUDIO_QUALITY_MEDIUM", 128000, "audio/mp4"),
		videoOnly(137, 1080, 30),
	}

	f, err := ChooseAudio(formats)
	require.NoError(t, err)
	assert.Equal(t, 251, f.Itag)
}

func TestChooseAudio_TiesKeepFirst(t *testing.T) {
	formats := []models.SourceFormat{
		audioOnly(140, "AUDIO_QUALITY_MEDIUM", 128000, "audio/mp4"),
		audioOnly(251, "AUDIO_QUALITY_MEDIUM", 128000, "audio/webm"),
	}

	for i := 0; i < 10; i++ {
		f, err := ChooseAudio(formats)
		require.NoError(t, err)
		assert.Equal(t, 140, f.Itag)
	}
}

func TestChooseAudio_NoneAvailable(t *testing.T) {
	_, err := ChooseAudio([]models.SourceFormat{combined(18, 360, "AUDIO_QUALITY_LOW"), videoOnly(137, 1080, 30)})
	assert.ErrorIs(t, err, ErrNoAudioFormat)

	_, err = ChooseAudio(nil)
	assert.ErrorIs(t, err, ErrNoAudioFormat)
}

func TestChooseVideo_PrefersCombined(t *testing.T) {
	formats := []models.SourceFormat{
		videoOnly(137, 1080, 30),
		combined(18, 360, "AUDIO_QUALITY_LOW"),
		combined(22, 720, "AUDIO_QUALITY_MEDIUM"),
		audioOnly(140, "AUDIO_QUALITY_MEDIUM", 128000, "audio/mp4"),
	}

	tests := []struct {
		hint models.QualityHint
		itag int
	}{
		{models.QualityHigh, 22},
		{models.QualityMedium, 22},
		{models.QualityLow, 18},
		{models.ParseQualityHint("bogus"), 22},
	}
	for _, tt := range tests {
		f, err := ChooseVideo(formats, tt.hint)
		require.NoError(t, err)
		assert.Equal(t, tt.itag, f.Itag, string(tt.hint))
	}
}

func TestChooseVideo_LowFallsBackToLowestVideoOnly(t *testing.T) {
	formats := []models.SourceFormat{
		videoOnly(137, 1080, 30),
		videoOnly(160, 144, 30),
		videoOnly(133, 240, 30),
		audioOnly(140, "AUDIO_QUALITY_MEDIUM", 128000, "audio/mp4"),
	}

	f, err := ChooseVideo(formats, models.QualityLow)
	require.NoError(t, err)
	assert.Equal(t, 160, f.Itag)

	f, err = ChooseVideo(formats, models.QualityHigh)
	require.NoError(t, err)
	assert.Equal(t, 137, f.Itag)
}

func TestChooseVideo_HighUsesAudioAsTieBreak(t *testing.T) {
	formats := []models.SourceFormat{
		combined(1, 720, "AUDIO_QUALITY_LOW"),
		combined(2, 720, "AUDIO_QUALITY_MEDIUM"),
	}

	f, err := ChooseVideo(formats, models.QualityHigh)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Itag)

	f, err = ChooseVideo(formats, models.QualityMedium)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Itag)
}

func TestChooseVideo_NoneAvailable(t *testing.T) {
	_, err := ChooseVideo([]models.SourceFormat{audioOnly(140, "AUDIO_QUALITY_MEDIUM", 1, "audio/mp4")}, models.QualityHigh)
	assert.ErrorIs(t, err, ErrNoVideoFormat)
}

func TestAudioExtension(t *testing.T) {
	assert.Equal(t, "m4a", AudioExtension(`audio/mp4; codecs="mp4a.40.2"`))
	assert.Equal(t, "webm", AudioExtension(`audio/webm; codecs="opus"`))
	assert.Equal(t, "webm", AudioExtension("audio/ogg"))
	assert.Equal(t, "webm", AudioExtension(""))
}

func TestAudioContentType(t *testing.T) {
	assert.Equal(t, "audio/webm", AudioContentType(models.SourceFormat{}))
	assert.Equal(t, "audio/mp4", AudioContentType(models.SourceFormat{MimeType: "audio/mp4"}))
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierHighest, TierFor(models.QualityHigh))
	assert.Equal(t, TierHighestVideo, TierFor(models.QualityMedium))
	assert.Equal(t, TierLowestVideo, TierFor(models.QualityLow))
}
