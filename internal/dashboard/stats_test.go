package dashboard_test

import (
	"testing"

	"slate/internal/dashboard"
	"slate/internal/takes"
)

func ptr(v float64) *float64 { return &v }

func TestAggregateEmpty(t *testing.T) {
	got := dashboard.Aggregate(nil)
	want := dashboard.Stats{TotalFootage: "0h 0m"}
	if got != want {
		t.Fatalf("empty stats = %+v, want %+v", got, want)
	}
}

func TestAggregateFootageAndProgress(t *testing.T) {
	list := []*takes.Take{
		{
			DurationSeconds: ptr(3725), // 1h 2m
			ConfidenceScore: ptr(80),
			AIMetadata:      map[string]any{"cv": map[string]any{}},
		},
		{
			DurationSeconds: ptr(95), // 1m
			ConfidenceScore: ptr(60),
			AIMetadata:      map[string]any{"cv": map[string]any{}},
		},
		{}, // unprocessed, no duration
	}

	got := dashboard.Aggregate(list)
	if got.TotalFootage != "1h 3m" {
		t.Fatalf("footage = %q", got.TotalFootage)
	}
	if got.ProcessingProgress != 66.7 {
		t.Fatalf("progress = %v", got.ProcessingProgress)
	}
	if got.AIConfidenceHealth != 70.0 {
		t.Fatalf("confidence health = %v", got.AIConfidenceHealth)
	}
	if got.TotalTakes != 3 {
		t.Fatalf("total takes = %d", got.TotalTakes)
	}
}

func TestAggregateSkipsZeroConfidence(t *testing.T) {
	list := []*takes.Take{
		{ConfidenceScore: ptr(0)},
		{ConfidenceScore: ptr(90)},
		{},
	}
	if got := dashboard.Aggregate(list); got.AIConfidenceHealth != 90.0 {
		t.Fatalf("confidence health = %v", got.AIConfidenceHealth)
	}
}

func TestAggregateIssueTallies(t *testing.T) {
	list := []*takes.Take{
		{AIMetadata: map[string]any{
			"cv":    map[string]any{"focus_issues": []any{"soft focus at 3s"}},
			"audio": map[string]any{"issues": []any{}},
			"nlp": map[string]any{
				"continuity_breaks": []any{"prop moved"},
				"narrative_gaps":    []any{},
			},
		}},
		{AIMetadata: map[string]any{
			"audio": map[string]any{"issues": []any{"clipping"}},
			"nlp":   map[string]any{"narrative_gaps": []any{"missing reaction"}},
		}},
	}

	got := dashboard.Aggregate(list)
	want := dashboard.Issues{Focus: 1, Audio: 1, Continuity: 1, Narrative: 1}
	if got.Issues != want {
		t.Fatalf("issues = %+v, want %+v", got.Issues, want)
	}
}

func TestAggregateAcceptanceCounts(t *testing.T) {
	list := []*takes.Take{
		{AcceptStatus: takes.AcceptAccepted},
		{AcceptStatus: takes.AcceptAccepted},
		{AcceptStatus: takes.AcceptPending},
		{AcceptStatus: takes.AcceptRejected},
		{},
	}
	got := dashboard.Aggregate(list)
	if got.ApprovedCount != 2 || got.PendingReviewCount != 1 {
		t.Fatalf("counts = %d approved / %d pending", got.ApprovedCount, got.PendingReviewCount)
	}
}
