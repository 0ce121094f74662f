package teamnames

import (
	"strings"
	"testing"
)

func TestRandom_TwoWords(t *testing.T) {
	for i := 0; i < 50; i++ {
		name := Random()
		parts := strings.Fields(name)
		if len(parts) != 2 {
			t.Fatalf("expected two words, got %q", name)
		}
	}
}
