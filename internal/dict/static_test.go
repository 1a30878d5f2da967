package dict

import (
	"context"
	"testing"
)

func TestStaticLookup(t *testing.T) {
	s := NewStatic()

	res, err := s.Lookup(context.Background(), "가수")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !res.Exists || res.Definition == "" {
		t.Fatalf("가수 should exist with a definition, got %+v", res)
	}

	// Padding is trimmed before matching.
	res, err = s.Lookup(context.Background(), "  나무  ")
	if err != nil || !res.Exists {
		t.Fatalf("padded 나무 should exist, got %+v err=%v", res, err)
	}

	res, err = s.Lookup(context.Background(), "으하하하")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if res.Exists {
		t.Fatal("으하하하 should not be in the bundled dictionary")
	}

	if s.Size() == 0 {
		t.Fatal("embedded dictionary should not be empty")
	}
}
