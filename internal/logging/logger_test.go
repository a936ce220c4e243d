package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"slate/internal/services"
)

func TestPrettyHandlerPromotesComponent(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl, false))

	logger.Info("stage started", String(FieldComponent, "pipeline"), String(FieldStage, "Audio Processing"))

	line := buf.String()
	if !strings.Contains(line, "pipeline: stage started") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, `stage="Audio Processing"`) {
		t.Fatalf("expected quoted stage attr, got %q", line)
	}
}

func TestPrettyHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newPrettyHandler(&buf, lvl, false))

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("expected info below warn threshold to be dropped, got %q", buf.String())
	}
	logger.Warn("kept")
	if !strings.Contains(buf.String(), "WARN kept") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestWithContextCarriesTakeFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	base := slog.New(newPrettyHandler(&buf, lvl, false))

	ctx := services.WithTakeID(context.Background(), 42)
	ctx = services.WithStage(ctx, "Intent Indexing")
	WithContext(ctx, base).Info("hello")

	line := buf.String()
	if !strings.Contains(line, "take_id=42") {
		t.Fatalf("expected take_id attr, got %q", line)
	}
	if !strings.Contains(line, `stage="Intent Indexing"`) {
		t.Fatalf("expected stage attr, got %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
