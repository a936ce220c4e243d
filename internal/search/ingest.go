package search

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
)

// ExportedMoment is one entry of an external analysis export, for example a
// batch annotation run done off-box. Exports carry their own embeddings.
type ExportedMoment struct {
	ClipID       string    `json:"clip_id"`
	StartTime    float64   `json:"start_time"`
	EndTime      float64   `json:"end_time"`
	Embedding    []float32 `json:"embedding"`
	Transcript   string    `json:"transcript"`
	EmotionLabel string    `json:"emotion_label"`
	Description  string    `json:"description"`
}

// IngestExport loads an export file into the index and persists it. Exported
// moments do not belong to a registered take, so they are keyed under take 0
// with a sequence derived from the clip ID; re-ingesting the same export
// replaces rather than duplicates. Items without an embedding are skipped.
func IngestExport(ctx context.Context, path string, index *FileIndex, logger *slog.Logger) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read export: %w", err)
	}
	var items []ExportedMoment
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("decode export %s: %w", path, err)
	}

	ingested := 0
	for _, item := range items {
		if len(item.Embedding) == 0 {
			logger.Warn("skipping exported moment without embedding", "clip_id", item.ClipID)
			continue
		}
		emotion := item.EmotionLabel
		if emotion == "" {
			emotion = "neutral"
		}
		moment := Moment{
			Key:               MomentKey{TakeID: 0, Sequence: clipSequence(item.ClipID)},
			StartTime:         item.StartTime,
			EndTime:           item.EndTime,
			Embedding:         item.Embedding,
			TranscriptSnippet: item.Transcript,
			EmotionLabel:      emotion,
			FileName:          item.ClipID,
		}
		if err := index.Index(ctx, moment); err != nil {
			return ingested, fmt.Errorf("index exported moment %s: %w", item.ClipID, err)
		}
		ingested++
	}
	if err := index.Persist(ctx); err != nil {
		return ingested, err
	}
	logger.Info("ingested moment export", "path", path, "moments", ingested)
	return ingested, nil
}

func clipSequence(clipID string) int {
	h := fnv.New32a()
	h.Write([]byte(clipID))
	return int(h.Sum32() % 1_000_000)
}
