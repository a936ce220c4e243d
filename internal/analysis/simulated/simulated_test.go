package simulated

import (
	"context"
	"testing"

	"slate/internal/analysis"
)

func TestVisualIsDeterministic(t *testing.T) {
	var v Visual
	first, err := v.Analyze(context.Background(), "/media/takes/slate_001.mp4")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, _ := v.Analyze(context.Background(), "/media/takes/slate_001.mp4")
	if first.Float(analysis.KeyTechnicalScore, 0) != second.Float(analysis.KeyTechnicalScore, 0) {
		t.Fatal("technical score drifted between runs")
	}
	if d := first.Float(analysis.KeyDuration, 0); d < 6 || d > 45 {
		t.Fatalf("duration out of range: %v", d)
	}
	if first.String(analysis.KeyReasoning, "") == "" {
		t.Fatal("reasoning missing")
	}
}

func TestVisualDetectsNamedObjects(t *testing.T) {
	var v Visual
	result, _ := v.Analyze(context.Background(), "/media/console_room_take2.mp4")
	found := false
	for _, obj := range result.List(analysis.KeyObjects) {
		if obj == "console" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected console object, got %#v", result.List(analysis.KeyObjects))
	}
}

func TestAudioProducesTranscriptAndMarkers(t *testing.T) {
	var a Audio
	result, err := a.Analyze(context.Background(), "/media/takes/slate_002.mp4")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.String(analysis.KeyTranscript, "") == "" {
		t.Fatal("transcript missing")
	}
	markers := result.Map(analysis.KeyBehavioralMarkers)
	if !markers.Has(analysis.KeyHesitation) || !markers.Has(analysis.KeyLaughter) {
		t.Fatalf("behavioral markers incomplete: %#v", markers)
	}
}

func TestAlignerSimilarity(t *testing.T) {
	var al Aligner
	target := "I told you we shouldn't have come here, Marcus."

	perfect, err := al.Align(context.Background(), target, target)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got := perfect.Float(analysis.KeySimilarity, 0); got != 1.0 {
		t.Fatalf("identical lines similarity = %v", got)
	}
	if len(perfect.List(analysis.KeyAdLibs)) != 0 {
		t.Fatalf("unexpected ad-libs: %#v", perfect.List(analysis.KeyAdLibs))
	}

	partial, _ := al.Align(context.Background(), "I told you about the perimeter breach", target)
	sim := partial.Float(analysis.KeySimilarity, 0)
	if sim <= 0 || sim >= 1 {
		t.Fatalf("partial similarity = %v", sim)
	}
	if len(partial.List(analysis.KeyAdLibs)) == 0 {
		t.Fatal("expected off-script tokens")
	}

	empty, _ := al.Align(context.Background(), "", target)
	if got := empty.Float(analysis.KeySimilarity, -1); got != 0 {
		t.Fatalf("empty transcript similarity = %v", got)
	}
}
