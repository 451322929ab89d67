package models

import "strings"

// SourceFormat describes one retrievable stream variant as reported by the
// extractor. It is read-only for everything outside the extractor.
type SourceFormat struct {
	Itag          int
	MimeType      string
	QualityLabel  string
	HasVideo      bool
	HasAudio      bool
	Width         int
	Height        int
	FPS           int
	Bitrate       int
	AudioQuality  string
	ContentLength int64
}

func (f SourceFormat) IsAudioOnly() bool { return f.HasAudio && !f.HasVideo }
func (f SourceFormat) IsVideoOnly() bool { return f.HasVideo && !f.HasAudio }
func (f SourceFormat) IsCombined() bool  { return f.HasVideo && f.HasAudio }

var audioQualityLevels = map[string]int{
	"AUDIO_QUALITY_ULTRALOW": 1,
	"AUDIO_QUALITY_LOW":      2,
	"AUDIO_QUALITY_MEDIUM":   3,
	"AUDIO_QUALITY_HIGH":     4,
}

// AudioLevel ranks the declared audio quality; 0 means unknown or absent.
func (f SourceFormat) AudioLevel() int {
	return audioQualityLevels[strings.ToUpper(f.AudioQuality)]
}
