package indexing

import (
	"strings"

	"slate/internal/analysis"
)

// Labels assigned by the heuristic branches.
const (
	EmotionThoughtful = "thoughtful"
	EmotionAnalytical = "analytical"
	EmotionNeutral    = "neutral"
)

// emotionVocabulary is scanned in order against the lowercased file name;
// the first substring match wins.
var emotionVocabulary = []string{
	"angry", "happy", "sad", "surprised", "fear",
	"disgust", "joy", "neutral", "excited", "tense",
}

// DetectEmotion derives an emotion label for a take. Branches are evaluated
// in strict priority order: detected visual objects, capture-tool file names,
// emotion keywords in the file name, then the neutral default.
func DetectEmotion(cv analysis.Result, fileName string) string {
	if len(cv.List(analysis.KeyObjects)) > 0 {
		return EmotionThoughtful
	}
	lowered := strings.ToLower(fileName)
	if strings.Contains(lowered, "screen recording") || strings.Contains(lowered, "screenshot") {
		return EmotionAnalytical
	}
	for _, emotion := range emotionVocabulary {
		if strings.Contains(lowered, emotion) {
			return emotion
		}
	}
	return EmotionNeutral
}
