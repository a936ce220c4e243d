package services_test

import (
	"errors"
	"fmt"
	"testing"

	"slate/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("probe exited 1")
	err := services.Wrap(services.ErrExternalTool, "Audio Processing", "analyze", "probe failed", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatal("expected wrapped cause to survive")
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestMessageStripsSentinelPrefix(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{services.Wrap(services.ErrValidation, "Script Alignment", "align", "empty transcript", nil), "Script Alignment: align: empty transcript"},
		{fmt.Errorf("plain failure"), "plain failure"},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := services.Message(tc.err); got != tc.want {
			t.Fatalf("Message(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
