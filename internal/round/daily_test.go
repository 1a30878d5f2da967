package round

import (
	"context"
	"testing"
	"time"

	"github.com/kipackjeong/wordbingo-server/internal/hangul"
)

func TestRuleOfDayIsDeterministic(t *testing.T) {
	day := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	a := RuleOfDay(day, "salt")
	b := RuleOfDay(day, "salt")
	if a != b {
		t.Fatalf("same day and salt gave %q and %q", a, b)
	}
	if !hangul.IsValidRule(a) {
		t.Fatalf("rule of day %q is not a valid rule", a)
	}

	// Time of day must not matter, only the date.
	evening := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	if RuleOfDay(evening, "salt") != a {
		t.Fatal("rule changed within the same day")
	}
}

func TestRuleOfDayRotates(t *testing.T) {
	seen := make(map[string]struct{})
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		seen[RuleOfDay(day.AddDate(0, 0, i), "salt")] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("60 days produced %d distinct rules", len(seen))
	}
}

func TestCreateDaily(t *testing.T) {
	m, _ := newTestManager(&fakeDict{})

	rd, err := m.CreateDaily(context.Background(), "player-1", 0)
	if err != nil {
		t.Fatalf("create daily: %v", err)
	}
	if !rd.Daily {
		t.Fatal("round not marked daily")
	}
	if rd.Rule != RuleOfDay(time.Now(), "test-salt") {
		t.Fatalf("rule %q is not today's rule", rd.Rule)
	}
	if rd.Player != "player-1" {
		t.Fatalf("player = %q", rd.Player)
	}
}
