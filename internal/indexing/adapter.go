package indexing

import (
	"context"
	"fmt"
	"log/slog"

	"slate/internal/analysis"
	"slate/internal/logging"
	"slate/internal/search"
	"slate/internal/takes"
)

// Result keys returned by the adapter.
const (
	KeyIndexed  = "indexed"
	KeyMomentID = "moment_id"
	KeyError    = "error"
)

// defaultEndTime bounds the indexed time range when duration is unmeasured.
const defaultEndTime = 10

// Store is the subset of the take store the adapter needs for the early
// emotion commit.
type Store interface {
	Update(ctx context.Context, take *takes.Take) error
}

// Adapter drives the semantic indexing handoff for one take.
type Adapter struct {
	generator    search.EmbeddingGenerator
	index        search.SimilarityIndex
	store        Store
	snippetLimit int
	logger       *slog.Logger
}

// NewAdapter wires the indexing collaborators.
func NewAdapter(generator search.EmbeddingGenerator, index search.SimilarityIndex, store Store, snippetLimit int, logger *slog.Logger) *Adapter {
	if snippetLimit <= 0 {
		snippetLimit = 200
	}
	return &Adapter{
		generator:    generator,
		index:        index,
		store:        store,
		snippetLimit: snippetLimit,
		logger:       logging.NewComponentLogger(logger, "indexing"),
	}
}

// IndexTake derives the emotion label and embedding features for a take and
// hands the moment to the similarity index. Failures are captured and
// reported in the returned result; IndexTake never propagates an error.
//
// note receives human-readable progress lines for the take's progress log.
func (a *Adapter) IndexTake(ctx context.Context, take *takes.Take, cv, audio analysis.Result, transcript string, note func(string)) analysis.Result {
	if note == nil {
		note = func(string) {}
	}
	log := logging.WithContext(ctx, a.logger)

	note("Building multimodal context description...")

	emotion := DetectEmotion(cv, take.FileName)

	// Persist the label as soon as it is known, in its own commit, so the
	// review UI can show it even when a later indexing step fails.
	if !take.HasMetadata(takes.NamespaceEmotion) {
		take.SetMetadata(takes.NamespaceEmotion, emotion)
		if err := a.store.Update(ctx, take); err != nil {
			return a.soften(log, note, fmt.Errorf("persist emotion label: %w", err))
		}
	}

	audioFeatures := ShapeAudioFeatures(audio)
	timing := ShapeTiming(audio)
	snippet := Snippet(transcript, a.snippetLimit)

	note("Detected primary intent: " + emotion)
	note("Generating semantic embedding vectors...")

	embedding, err := a.generator.Generate(ctx, search.EmbeddingRequest{
		TranscriptSnippet: snippet,
		Emotion:           search.EmotionData{PrimaryEmotion: emotion, Intensity: emotionIntensity},
		AudioFeatures:     audioFeatures,
		Timing:            timing,
		ScriptContext:     "",
	})
	if err != nil {
		return a.soften(log, note, fmt.Errorf("generate embedding: %w", err))
	}

	note("Moment embedding generated successfully.")
	note("Adding moment to similarity index...")

	endTime := take.Duration()
	if endTime == 0 {
		endTime = defaultEndTime
	}
	key := search.MomentKey{TakeID: take.ID, Sequence: 0}
	moment := search.Moment{
		Key:               key,
		TakeID:            take.ID,
		StartTime:         0,
		EndTime:           endTime,
		Embedding:         embedding,
		TranscriptSnippet: snippet,
		EmotionLabel:      emotion,
		FileName:          take.FileName,
		FilePath:          take.FilePath,
		AudioFeatures:     audioFeatures,
		Timing:            timing,
	}
	if err := a.index.Index(ctx, moment); err != nil {
		return a.soften(log, note, fmt.Errorf("index moment: %w", err))
	}

	note("Saving moment index to persistent storage...")
	if err := a.index.Persist(ctx); err != nil {
		return a.soften(log, note, fmt.Errorf("persist moment index: %w", err))
	}

	note("Intent indexing and search integration complete!")
	log.Info("indexed take for semantic search",
		logging.String("moment_key", key.String()),
		logging.String("emotion", emotion),
	)
	return analysis.Result{KeyIndexed: true, KeyMomentID: key.String()}
}

func (a *Adapter) soften(log *slog.Logger, note func(string), err error) analysis.Result {
	msg := fmt.Sprintf("Intent indexing failed: %s", err)
	note("ERROR: " + msg)
	log.Warn("intent indexing failed", logging.Error(err))
	return analysis.Result{KeyIndexed: false, KeyError: msg}
}
