package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	first := g.Generate()
	second := g.Generate()

	parsed, err := uuid.Parse(first)
	if err != nil {
		t.Fatalf("expected a valid uuid, got %v", err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
	if first == second {
		t.Error("expected distinct ids")
	}
	if first >= second {
		t.Error("expected time-ordered ids")
	}
}
