package store

import (
	"context"
	"errors"
	"testing"

	"github.com/kipackjeong/wordbingo-server/internal/round"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	rd := &round.Round{ID: "r-1", Rule: "ㄱ"}
	if err := s.Save(ctx, rd); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Get(ctx, "r-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != rd {
		t.Fatal("store should hand back the same round instance")
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, round.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
