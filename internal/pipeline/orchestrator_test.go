package pipeline_test

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"slate/internal/analysis"
	"slate/internal/config"
	"slate/internal/indexing"
	"slate/internal/pipeline"
	"slate/internal/scoring"
	"slate/internal/takes"
	"slate/internal/testsupport"
)

type fixture struct {
	cfg      *config.Config
	store    *takes.Store
	take     *takes.Take
	tracker  *pipeline.Tracker
	visual   *testsupport.StubVisual
	audio    *testsupport.StubAudio
	aligner  *testsupport.StubAligner
	embedder *testsupport.StubEmbedder
	index    *testsupport.StubIndex
	orch     *pipeline.Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		visual: &testsupport.StubVisual{Result: analysis.Result{
			"duration":        12.0,
			"technical_score": 90.0,
			"objects":         []any{},
			"reasoning":       "Sharp frames throughout.",
		}},
		audio: &testsupport.StubAudio{Result: analysis.Result{
			"quality_score": 90.0,
			"transcript":    "I told you we shouldn't have come here.",
			"reasoning":     "Clean signal.",
		}},
		aligner: &testsupport.StubAligner{Result: analysis.Result{
			"similarity": 0.9,
			"ad_libs":    []any{},
			"reasoning":  "Close match to the target line.",
		}},
		embedder: &testsupport.StubEmbedder{},
		index:    &testsupport.StubIndex{},
	}
	f.cfg = testsupport.NewConfig(t, testsupport.WithTargetLine("The perimeter is compromised."))
	f.store = testsupport.MustOpenStore(t, f.cfg)
	f.take = testsupport.NewTake(t, f.store, "IMG_happy_take1.mp4", "/media/takes/IMG_happy_take1.mp4")
	f.tracker = pipeline.NewTracker(time.Hour, 16)
	adapter := indexing.NewAdapter(f.embedder, f.index, f.store, 200, nil)
	f.orch = pipeline.New(f.store, f.cfg, f.tracker, pipeline.Dependencies{
		Visual:  f.visual,
		Audio:   f.audio,
		Aligner: f.aligner,
		Indexer: adapter,
	}, nil)
	return f
}

func (f *fixture) reload(t *testing.T) *takes.Take {
	t.Helper()
	take, err := f.store.GetByID(context.Background(), f.take.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if take == nil {
		t.Fatal("take vanished")
	}
	return take
}

func TestProcessTakeFullRun(t *testing.T) {
	f := newFixture(t)

	if err := f.orch.ProcessTake(context.Background(), f.take.ID); err != nil {
		t.Fatalf("ProcessTake: %v", err)
	}

	rec, ok := f.tracker.Snapshot(f.take.ID)
	if !ok || rec.Status != pipeline.StatusCompleted || rec.Percent != 100 || rec.CurrentStage != "" {
		t.Fatalf("unexpected progress record: %+v", rec)
	}
	for name, state := range rec.Stages {
		if state != pipeline.StageCompleted {
			t.Fatalf("stage %q = %v", name, state)
		}
	}

	take := f.reload(t)
	if take.Duration() != 12.0 {
		t.Fatalf("duration = %v", take.Duration())
	}
	// 0.3*90 + 0.25*90 + 0.25*90 + 0.2*80
	if math.Abs(take.Confidence()-88.0) > 1e-9 {
		t.Fatalf("confidence = %v", take.Confidence())
	}
	summary := take.Reasoning(takes.ReasoningSummary)
	if !strings.Contains(summary, "Overall score: 88.0") {
		t.Fatalf("unexpected summary: %q", summary)
	}
	for _, want := range []string{"Sharp focus and stable frame", "Crystal clear audio"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing trait %q: %q", want, summary)
		}
	}

	for _, ns := range []string{takes.NamespaceCV, takes.NamespaceAudio, takes.NamespaceNLP, takes.NamespaceScoreBreakdown, takes.NamespaceEmotion} {
		if !take.HasMetadata(ns) {
			t.Fatalf("metadata namespace %q missing: %#v", ns, take.AIMetadata)
		}
	}
	if take.AIMetadata[takes.NamespaceEmotion] != "happy" {
		t.Fatalf("emotion = %v", take.AIMetadata[takes.NamespaceEmotion])
	}
	if got := take.Metadata(takes.NamespaceCV)["video_description"]; got != scoring.FallbackVideoDescription {
		t.Fatalf("cv backstop missing: %v", got)
	}
	if got := take.Metadata(takes.NamespaceAudio)["audio_description"]; got != scoring.FallbackAudioDescription {
		t.Fatalf("audio backstop missing: %v", got)
	}
	if take.Reasoning(takes.NamespaceCV) != "Sharp frames throughout." {
		t.Fatalf("cv reasoning = %q", take.Reasoning(takes.NamespaceCV))
	}

	// The aligner consumed the hoisted transcript and the configured target.
	if f.aligner.GotTranscript != "I told you we shouldn't have come here." {
		t.Fatalf("aligner transcript = %q", f.aligner.GotTranscript)
	}
	if f.aligner.GotTarget != "The perimeter is compromised." {
		t.Fatalf("aligner target = %q", f.aligner.GotTarget)
	}

	joined := strings.Join(rec.Logs, "\n")
	for _, want := range []string{
		"Starting Frame & Data Analysis...",
		"Starting Audio Processing...",
		"Starting Script Alignment...",
		"Starting Intelligence Scoring...",
		"Starting Intent Indexing...",
		"Intent indexing and search integration complete!",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("progress log missing %q:\n%s", want, joined)
		}
	}
	if len(f.index.Moments) != 1 || f.index.Persists != 1 {
		t.Fatalf("indexing side effects: %d moments, %d persists", len(f.index.Moments), f.index.Persists)
	}
}

func TestProcessTakeFatalAudioFailureRetainsPartialState(t *testing.T) {
	f := newFixture(t)
	f.audio.Err = testsupport.ErrStubFailure

	if err := f.orch.ProcessTake(context.Background(), f.take.ID); err != nil {
		t.Fatalf("ProcessTake: %v", err)
	}

	rec, _ := f.tracker.Snapshot(f.take.ID)
	if rec.Status != pipeline.StatusError {
		t.Fatalf("status = %v", rec.Status)
	}
	// Only the frame stage completed: floor(2/6*100).
	if rec.Percent != 33 {
		t.Fatalf("percent = %d", rec.Percent)
	}
	joined := strings.Join(rec.Logs, "\n")
	if !strings.Contains(joined, "ERROR: ") || !strings.Contains(joined, "Audio analysis failed") {
		t.Fatalf("failure not logged:\n%s", joined)
	}

	take := f.reload(t)
	if !take.HasMetadata(takes.NamespaceCV) || take.Reasoning(takes.NamespaceCV) == "" {
		t.Fatalf("committed cv state lost: %#v", take.AIMetadata)
	}
	if take.HasMetadata(takes.NamespaceNLP) || take.ConfidenceScore != nil {
		t.Fatalf("later stages must not run: %#v", take.AIMetadata)
	}
	if len(f.embedder.Requests) != 0 {
		t.Fatal("indexing must not run after a fatal failure")
	}
}

func TestProcessTakeFatalAlignmentFailurePercent(t *testing.T) {
	f := newFixture(t)
	f.aligner.Err = testsupport.ErrStubFailure

	if err := f.orch.ProcessTake(context.Background(), f.take.ID); err != nil {
		t.Fatalf("ProcessTake: %v", err)
	}
	rec, _ := f.tracker.Snapshot(f.take.ID)
	if rec.Status != pipeline.StatusError || rec.Percent != 66 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestProcessTakeSoftIndexingFailureStaysCompleted(t *testing.T) {
	f := newFixture(t)
	f.embedder.Err = testsupport.ErrStubFailure

	if err := f.orch.ProcessTake(context.Background(), f.take.ID); err != nil {
		t.Fatalf("ProcessTake: %v", err)
	}

	rec, _ := f.tracker.Snapshot(f.take.ID)
	if rec.Status != pipeline.StatusCompleted || rec.Percent != 100 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	joined := strings.Join(rec.Logs, "\n")
	if !strings.Contains(joined, "ERROR: Intent indexing failed") {
		t.Fatalf("soft failure not logged:\n%s", joined)
	}

	take := f.reload(t)
	if take.Confidence() == 0 {
		t.Fatal("scoring results lost")
	}
	if take.AIMetadata[takes.NamespaceEmotion] != "happy" {
		t.Fatalf("early emotion commit lost: %#v", take.AIMetadata)
	}
}

func TestProcessTakeMissingTake(t *testing.T) {
	f := newFixture(t)

	if err := f.orch.ProcessTake(context.Background(), 999); err != nil {
		t.Fatalf("ProcessTake: %v", err)
	}
	rec, ok := f.tracker.Snapshot(999)
	if !ok || rec.Status != pipeline.StatusError {
		t.Fatalf("unexpected record: %+v ok=%v", rec, ok)
	}
	joined := strings.Join(rec.Logs, "\n")
	if !strings.Contains(joined, "take 999 not found") {
		t.Fatalf("missing-take message absent:\n%s", joined)
	}
}

func TestProcessTakeIsIdempotentOnNamespaceShape(t *testing.T) {
	f := newFixture(t)

	if err := f.orch.ProcessTake(context.Background(), f.take.ID); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := f.reload(t)

	if err := f.orch.ProcessTake(context.Background(), f.take.ID); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := f.reload(t)

	if len(first.AIMetadata) != len(second.AIMetadata) {
		t.Fatalf("metadata namespaces diverged: %d vs %d", len(first.AIMetadata), len(second.AIMetadata))
	}
	for ns := range first.AIMetadata {
		if !second.HasMetadata(ns) {
			t.Fatalf("namespace %q lost on reprocess", ns)
		}
	}
	if first.Confidence() != second.Confidence() {
		t.Fatalf("confidence drifted: %v vs %v", first.Confidence(), second.Confidence())
	}
}
