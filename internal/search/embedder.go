package search

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"slate/internal/textutil"
)

// defaultEmbeddingDim keeps local vectors small; retrieval quality over a
// single production's takes does not need more buckets.
const defaultEmbeddingDim = 64

// LocalEmbedder derives a deterministic embedding from the moment's own
// features: transcript tokens, emotion, and timing buckets hashed into a
// fixed-width vector. No external model is involved, so identical inputs
// always map to identical vectors.
type LocalEmbedder struct {
	dim int
}

// NewLocalEmbedder builds an embedder with the given dimensionality.
// Non-positive dims fall back to the default.
func NewLocalEmbedder(dim int) *LocalEmbedder {
	if dim <= 0 {
		dim = defaultEmbeddingDim
	}
	return &LocalEmbedder{dim: dim}
}

// Generate hashes the request's features into an L2-normalized vector.
func (e *LocalEmbedder) Generate(ctx context.Context, req EmbeddingRequest) ([]float32, error) {
	vec := make([]float64, e.dim)

	add := func(token string, weight float64) {
		token = strings.TrimSpace(strings.ToLower(token))
		if token == "" {
			return
		}
		h := fnv.New32a()
		h.Write([]byte(token))
		sum := h.Sum32()
		bucket := int(sum % uint32(e.dim))
		sign := 1.0
		if sum&0x80000000 != 0 {
			sign = -1.0
		}
		vec[bucket] += sign * weight
	}

	for _, token := range textutil.Tokens(req.TranscriptSnippet) {
		add(token, 1.0)
	}
	for _, token := range textutil.Tokens(req.ScriptContext) {
		add(token, 0.5)
	}
	if req.Emotion.PrimaryEmotion != "" {
		add("emotion:"+req.Emotion.PrimaryEmotion, 2.0)
		add(fmt.Sprintf("intensity:%d", int(req.Emotion.Intensity)/10), 1.0)
	}
	if req.Timing.Pattern != "" {
		add("timing:"+req.Timing.Pattern, 1.5)
	}
	if req.AudioFeatures.LaughterDetected {
		add("audio:laughter", 1.0)
	}
	if req.AudioFeatures.HasPauseBefore {
		add("audio:pause", 1.0)
	}
	if req.AudioFeatures.SpeechRate > 0 {
		add(fmt.Sprintf("rate:%d", int(req.AudioFeatures.SpeechRate)/25), 0.5)
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	out := make([]float32, e.dim)
	if norm == 0 {
		// Degenerate empty request; emit a unit vector on the first axis so
		// downstream cosine math stays defined.
		out[0] = 1
		return out, nil
	}
	norm = math.Sqrt(norm)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}
