package scoring_test

import (
	"math"
	"strings"
	"testing"

	"slate/internal/analysis"
	"slate/internal/scoring"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeEmptyInputs(t *testing.T) {
	got := scoring.Compute(analysis.Result{}, analysis.Result{}, analysis.Result{})
	// 0.3*50 + 0.25*50 + 0.25*50 + 0.2*0
	if !almostEqual(got.Total, 40.0) {
		t.Fatalf("total = %v, want 40.0", got.Total)
	}
	if got.Breakdown.Performance != 0 {
		t.Fatalf("performance = %v, want 0", got.Breakdown.Performance)
	}
	if got.Breakdown.Acting != 0 {
		t.Fatalf("acting alias = %v, want 0", got.Breakdown.Acting)
	}
	if !strings.Contains(got.Summary, "Average performance with minor technical variances.") {
		t.Fatalf("unexpected summary: %q", got.Summary)
	}
}

func TestComputeStrongTake(t *testing.T) {
	cv := analysis.Result{"technical_score": 90.0}
	audio := analysis.Result{"quality_score": 90.0}
	nlp := analysis.Result{"similarity": 0.9}

	got := scoring.Compute(cv, audio, nlp)
	if got.Breakdown.Performance != 80 {
		t.Fatalf("performance = %v, want 80", got.Breakdown.Performance)
	}
	// 0.3*90 + 0.25*90 + 0.25*90 + 0.2*80
	if !almostEqual(got.Total, 88.0) {
		t.Fatalf("total = %v, want 88.0", got.Total)
	}
	for _, trait := range []string{"Sharp focus and stable frame", "Crystal clear audio"} {
		if !strings.Contains(got.Summary, trait) {
			t.Fatalf("summary missing trait %q: %q", trait, got.Summary)
		}
	}
	if strings.Contains(got.Summary, "Perfect script adherence") {
		t.Fatalf("script trait gated at >90, summary: %q", got.Summary)
	}
	if !almostEqual(got.Breakdown.Timing, 90.0) {
		t.Fatalf("timing = %v, want 90", got.Breakdown.Timing)
	}
}

func TestComputePerformanceFallbacks(t *testing.T) {
	// Alignment ran but weakly: mid-band performance.
	got := scoring.Compute(analysis.Result{}, analysis.Result{}, analysis.Result{"similarity": 0.4})
	if got.Breakdown.Performance != 60 {
		t.Fatalf("performance = %v, want 60", got.Breakdown.Performance)
	}

	// No alignment, but visual analysis produced a signal: baseline 50.
	got = scoring.Compute(analysis.Result{"technical_score": 70.0}, analysis.Result{}, analysis.Result{})
	if got.Breakdown.Performance != 50 {
		t.Fatalf("performance = %v, want 50", got.Breakdown.Performance)
	}
}

func TestComputeAdLibTrait(t *testing.T) {
	nlp := analysis.Result{
		"similarity": 0.95,
		"ad_libs":    []any{"line one", "line two", "line three"},
	}
	got := scoring.Compute(analysis.Result{}, analysis.Result{}, nlp)
	if !strings.Contains(got.Summary, "Significant creative ad-libs detected") {
		t.Fatalf("summary missing ad-lib trait: %q", got.Summary)
	}
	if !strings.Contains(got.Summary, "Perfect script adherence") {
		t.Fatalf("summary missing adherence trait: %q", got.Summary)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	cv := analysis.Result{"technical_score": 82.0}
	audio := analysis.Result{"quality_score": 77.5}
	nlp := analysis.Result{"similarity": 0.65}

	first := scoring.Compute(cv, audio, nlp)
	for i := 0; i < 5; i++ {
		again := scoring.Compute(cv, audio, nlp)
		if again != first {
			t.Fatalf("non-deterministic result: %#v vs %#v", again, first)
		}
	}
}

func TestBackstopDescriptions(t *testing.T) {
	metadata := map[string]any{
		"cv":    map[string]any{"technical_score": 90.0},
		"audio": map[string]any{"audio_description": "clean dialogue"},
	}
	scoring.BackstopDescriptions(metadata)

	cv := metadata["cv"].(map[string]any)
	if cv["video_description"] != scoring.FallbackVideoDescription {
		t.Fatalf("expected video fallback, got %#v", cv["video_description"])
	}
	audio := metadata["audio"].(map[string]any)
	if audio["audio_description"] != "clean dialogue" {
		t.Fatalf("existing description overwritten: %#v", audio["audio_description"])
	}

	// Absent namespaces stay absent.
	empty := map[string]any{}
	scoring.BackstopDescriptions(empty)
	if len(empty) != 0 {
		t.Fatalf("backstop invented namespaces: %#v", empty)
	}
}
