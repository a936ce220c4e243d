package analysis

import "context"

// Common keys produced by the analyzers. Every lookup through these keys is
// defaulted; analyzers are free to omit any of them.
const (
	KeyDuration          = "duration"
	KeyTechnicalScore    = "technical_score"
	KeyObjects           = "objects"
	KeyReasoning         = "reasoning"
	KeyVideoDescription  = "video_description"
	KeyQualityScore      = "quality_score"
	KeyTranscript        = "transcript"
	KeyBehavioralMarkers = "behavioral_markers"
	KeyAudioDescription  = "audio_description"
	KeySimilarity        = "similarity"
	KeyAdLibs            = "ad_libs"
	KeyHesitation        = "hesitation_duration"
	KeyLaughter          = "laughter_detected"
)

// VisualAnalyzer inspects the frames of a recorded clip.
type VisualAnalyzer interface {
	Analyze(ctx context.Context, filePath string) (Result, error)
}

// AudioAnalyzer inspects the audio track of a recorded clip.
type AudioAnalyzer interface {
	Analyze(ctx context.Context, filePath string) (Result, error)
}

// ScriptAligner compares a transcript against the target script line.
type ScriptAligner interface {
	Align(ctx context.Context, transcript, targetScript string) (Result, error)
}
