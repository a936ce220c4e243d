package api

import (
	"testing"
	"time"

	"slate/internal/takes"
)

func TestFromTake(t *testing.T) {
	duration := 12.5
	confidence := 88.0
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	take := &takes.Take{
		ID:              7,
		ProjectID:       1,
		FileName:        "slate_007.mp4",
		FilePath:        "/media/slate_007.mp4",
		DurationSeconds: &duration,
		ConfidenceScore: &confidence,
		AcceptStatus:    takes.AcceptAccepted,
		AIMetadata:      map[string]any{"emotion": "neutral"},
		CreatedAt:       created,
	}

	got := FromTake(take)
	if got.ID != 7 || got.FileName != "slate_007.mp4" {
		t.Fatalf("unexpected conversion: %+v", got)
	}
	if got.DurationSeconds == nil || *got.DurationSeconds != 12.5 {
		t.Fatalf("duration = %v", got.DurationSeconds)
	}
	if got.AcceptStatus != "accepted" {
		t.Fatalf("accept status = %q", got.AcceptStatus)
	}
	if got.CreatedAt != "2026-03-14T09:26:53.000Z" {
		t.Fatalf("created at = %q", got.CreatedAt)
	}
	if got.UpdatedAt != "" {
		t.Fatalf("zero time must render empty, got %q", got.UpdatedAt)
	}
}

func TestFromTakeNil(t *testing.T) {
	if got := FromTake(nil); got.ID != 0 || got.FileName != "" {
		t.Fatalf("unexpected zero value: %+v", got)
	}
	if got := FromTakes(nil); got != nil {
		t.Fatalf("expected nil slice, got %#v", got)
	}
}

func TestFromProject(t *testing.T) {
	project := &takes.Project{
		ID:          1,
		Name:        "The Perimeter",
		Description: "Sci-fi short film set in an abandoned outpost.",
		Settings:    map[string]any{"aspect_ratio": "2.39:1"},
	}
	got := FromProject(project)
	if got.Name != "The Perimeter" || got.Settings["aspect_ratio"] != "2.39:1" {
		t.Fatalf("unexpected conversion: %+v", got)
	}
}
