package testsupport

import (
	"context"
	"errors"
	"sync"

	"slate/internal/analysis"
	"slate/internal/search"
)

// StubVisual returns a canned visual analysis result or error.
type StubVisual struct {
	Result analysis.Result
	Err    error
}

func (s *StubVisual) Analyze(ctx context.Context, filePath string) (analysis.Result, error) {
	return s.Result, s.Err
}

// StubAudio returns a canned audio analysis result or error.
type StubAudio struct {
	Result analysis.Result
	Err    error
}

func (s *StubAudio) Analyze(ctx context.Context, filePath string) (analysis.Result, error) {
	return s.Result, s.Err
}

// StubAligner returns a canned alignment result and records its inputs.
type StubAligner struct {
	Result analysis.Result
	Err    error

	GotTranscript string
	GotTarget     string
}

func (s *StubAligner) Align(ctx context.Context, transcript, target string) (analysis.Result, error) {
	s.GotTranscript = transcript
	s.GotTarget = target
	return s.Result, s.Err
}

// StubEmbedder produces a fixed vector and records requests.
type StubEmbedder struct {
	Vector []float32
	Err    error

	mu       sync.Mutex
	Requests []search.EmbeddingRequest
}

func (s *StubEmbedder) Generate(ctx context.Context, req search.EmbeddingRequest) ([]float32, error) {
	s.mu.Lock()
	s.Requests = append(s.Requests, req)
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Vector != nil {
		return s.Vector, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

// StubIndex records indexed moments and persist calls.
type StubIndex struct {
	IndexErr   error
	PersistErr error

	mu       sync.Mutex
	Moments  []search.Moment
	Persists int
}

func (s *StubIndex) Index(ctx context.Context, moment search.Moment) error {
	if s.IndexErr != nil {
		return s.IndexErr
	}
	s.mu.Lock()
	s.Moments = append(s.Moments, moment)
	s.mu.Unlock()
	return nil
}

func (s *StubIndex) Persist(ctx context.Context) error {
	if s.PersistErr != nil {
		return s.PersistErr
	}
	s.mu.Lock()
	s.Persists++
	s.mu.Unlock()
	return nil
}

// ErrStubFailure is a reusable failure for stub collaborators.
var ErrStubFailure = errors.New("stub failure")
