package textutil

import (
	"reflect"
	"testing"
)

func TestTokensKeepsContractions(t *testing.T) {
	got := Tokens("I told you we shouldn't have come here, Marcus!")
	want := []string{"i", "told", "you", "we", "shouldn't", "have", "come", "here", "marcus"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: %v", got)
	}
}

func TestTokensEmptyInput(t *testing.T) {
	if got := Tokens("  ... !!! "); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 4); got != "abcd" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := Truncate("abcdef", 0); got != "abcdef" {
		t.Fatalf("zero limit should not truncate, got %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("short input should pass through, got %q", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"scene 4/take 2: final*.mp4": "scene 4-take 2- final-.mp4",
		"  IMG_0042.mp4  ":           "IMG_0042.mp4",
		"what?<>|.mov":               "what.mov",
		"":                           "",
	}
	for input, want := range cases {
		if got := SanitizeFileName(input); got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", input, got, want)
		}
	}
}
