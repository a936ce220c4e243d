package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileIndex is a similarity index persisted as a single JSON file. It holds
// every moment vector in memory; take counts for one production stay small
// enough that a linear scan beats maintaining an external vector store.
type FileIndex struct {
	mu      sync.RWMutex
	path    string
	moments map[string]Moment
}

// Match pairs a moment with its similarity to a query vector.
type Match struct {
	Moment Moment
	Score  float64
}

// NewFileIndex opens the index at path, loading any previously persisted
// moments. A missing file yields an empty index.
func NewFileIndex(path string) (*FileIndex, error) {
	idx := &FileIndex{
		path:    path,
		moments: map[string]Moment{},
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return idx, nil
		}
		return nil, fmt.Errorf("read moment index: %w", err)
	}
	var stored []Moment
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode moment index %s: %w", path, err)
	}
	for _, moment := range stored {
		idx.moments[moment.Key.String()] = moment
	}
	return idx, nil
}

// Index inserts or replaces the moment under its key.
func (f *FileIndex) Index(ctx context.Context, moment Moment) error {
	if len(moment.Embedding) == 0 {
		return errors.New("moment has no embedding")
	}
	f.mu.Lock()
	f.moments[moment.Key.String()] = moment
	f.mu.Unlock()
	return nil
}

// Persist writes the index to disk through a temp-file rename so a crash
// mid-write never truncates the previous snapshot.
func (f *FileIndex) Persist(ctx context.Context) error {
	f.mu.RLock()
	stored := f.sortedLocked()
	f.mu.RUnlock()

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("encode moment index: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".moments-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp index file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write moment index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp index file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace moment index: %w", err)
	}
	return nil
}

// Search returns up to limit moments ranked by cosine similarity.
func (f *FileIndex) Search(vector []float32, limit int) []Match {
	f.mu.RLock()
	defer f.mu.RUnlock()
	matches := make([]Match, 0, len(f.moments))
	for _, moment := range f.moments {
		matches = append(matches, Match{Moment: moment, Score: cosine(vector, moment.Embedding)})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Moment.Key.String() < matches[j].Moment.Key.String()
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Len reports the number of indexed moments.
func (f *FileIndex) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.moments)
}

// Path returns the backing file location.
func (f *FileIndex) Path() string {
	return f.path
}

func (f *FileIndex) sortedLocked() []Moment {
	stored := make([]Moment, 0, len(f.moments))
	for _, moment := range f.moments {
		stored = append(stored, moment)
	}
	sort.Slice(stored, func(i, j int) bool {
		if stored[i].Key.TakeID != stored[j].Key.TakeID {
			return stored[i].Key.TakeID < stored[j].Key.TakeID
		}
		return stored[i].Key.Sequence < stored[j].Key.Sequence
	})
	return stored
}

func cosine(a []float32, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
