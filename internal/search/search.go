package search

import (
	"context"
	"fmt"
)

// MomentKey identifies one indexed moment of a take. The key is composite
// (take + sequence) so additional moments per take can be indexed later
// without colliding; today the pipeline only ever emits sequence 0.
type MomentKey struct {
	TakeID   int64 `json:"take_id"`
	Sequence int   `json:"sequence"`
}

// String renders the key in the stable form used by the index.
func (k MomentKey) String() string {
	return fmt.Sprintf("take-%d/moment-%d", k.TakeID, k.Sequence)
}

// EmotionData accompanies an embedding request.
type EmotionData struct {
	PrimaryEmotion string  `json:"primary_emotion"`
	Intensity      float64 `json:"intensity"`
}

// AudioFeatures captures behavioral audio markers shaped for indexing.
type AudioFeatures struct {
	HasPauseBefore      bool    `json:"has_pause_before"`
	PauseBeforeDuration float64 `json:"pause_before_duration"`
	LaughterDetected    bool    `json:"laughter_detected"`
	SpeechRate          float64 `json:"speech_rate"`
}

// TimingData captures delivery timing shaped for indexing.
type TimingData struct {
	Pattern       string  `json:"pattern"`
	ReactionDelay float64 `json:"reaction_delay"`
}

// EmbeddingRequest is the input to the embedding generator.
type EmbeddingRequest struct {
	TranscriptSnippet string
	Emotion           EmotionData
	AudioFeatures     AudioFeatures
	Timing            TimingData
	ScriptContext     string
}

// Moment is the payload stored in the similarity index alongside its vector.
type Moment struct {
	Key               MomentKey     `json:"key"`
	TakeID            int64         `json:"take_id"`
	StartTime         float64       `json:"start_time"`
	EndTime           float64       `json:"end_time"`
	Embedding         []float32     `json:"embedding"`
	TranscriptSnippet string        `json:"transcript_snippet"`
	EmotionLabel      string        `json:"emotion_label"`
	FileName          string        `json:"file_name"`
	FilePath          string        `json:"file_path"`
	AudioFeatures     AudioFeatures `json:"audio_features"`
	Timing            TimingData    `json:"timing"`
}

// EmbeddingGenerator produces a vector for one moment of a take.
type EmbeddingGenerator interface {
	Generate(ctx context.Context, req EmbeddingRequest) ([]float32, error)
}

// SimilarityIndex stores moment vectors for semantic retrieval. Persist
// flushes the index to durable storage and is called synchronously after
// every successful moment insert.
type SimilarityIndex interface {
	Index(ctx context.Context, moment Moment) error
	Persist(ctx context.Context) error
}
