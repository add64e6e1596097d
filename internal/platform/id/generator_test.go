package id

import (
	"strings"
	"testing"
)

func TestRandomGenerator(t *testing.T) {
	t.Parallel()

	a, err := NewRandomGenerator().NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(a) != 32 {
		t.Fatalf("expected 32 hex chars, got %q", a)
	}

	b, err := NewPrefixedGenerator("off").NewID()
	if err != nil {
		t.Fatalf("new prefixed id: %v", err)
	}
	if !strings.HasPrefix(b, "off_") || len(b) != 36 {
		t.Fatalf("unexpected prefixed id %q", b)
	}
}
