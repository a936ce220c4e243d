package indexing

import (
	"slate/internal/analysis"
	"slate/internal/search"
	"slate/internal/textutil"
)

const (
	// hesitantThreshold separates a natural beat from a hesitant delivery.
	hesitantThreshold = 1.0
	// defaultSpeechRate is used when the audio analyzer reported neither a
	// rate nor a quality score to approximate one from.
	defaultSpeechRate = 150
	// emotionIntensity is a fixed constant until analyzers report intensity.
	emotionIntensity = 60
)

// ShapeAudioFeatures maps behavioral audio markers onto the embedding
// feature record.
func ShapeAudioFeatures(audio analysis.Result) search.AudioFeatures {
	markers := audio.Map(analysis.KeyBehavioralMarkers)
	hesitation := markers.Float(analysis.KeyHesitation, 0)

	rate := audio.Float("speech_rate", 0)
	if rate <= 0 {
		// Approximate with the quality score when no rate was measured.
		rate = audio.Float(analysis.KeyQualityScore, defaultSpeechRate)
	}

	return search.AudioFeatures{
		HasPauseBefore:      hesitation > 0,
		PauseBeforeDuration: hesitation,
		LaughterDetected:    markers.Bool(analysis.KeyLaughter, false),
		SpeechRate:          rate,
	}
}

// ShapeTiming maps hesitation markers onto the delivery timing record.
func ShapeTiming(audio analysis.Result) search.TimingData {
	markers := audio.Map(analysis.KeyBehavioralMarkers)
	hesitation := markers.Float(analysis.KeyHesitation, 0)

	pattern := "normal"
	if hesitation > hesitantThreshold {
		pattern = "hesitant"
	}
	return search.TimingData{
		Pattern:       pattern,
		ReactionDelay: hesitation,
	}
}

// Snippet truncates a transcript for the embedding request.
func Snippet(transcript string, limit int) string {
	return textutil.Truncate(transcript, limit)
}
