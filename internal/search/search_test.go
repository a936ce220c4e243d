package search_test

import (
	"testing"

	"slate/internal/search"
)

func TestMomentKeyString(t *testing.T) {
	key := search.MomentKey{TakeID: 7, Sequence: 0}
	if got := key.String(); got != "take-7/moment-0" {
		t.Fatalf("unexpected key rendering: %s", got)
	}
	other := search.MomentKey{TakeID: 7, Sequence: 1}
	if key == other {
		t.Fatal("distinct sequences must not collide")
	}
}
