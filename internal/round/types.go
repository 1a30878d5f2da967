// internal/round/types.go
//
// Types shared across the round package.
// Defines:
//   - Event and its payloads: what the server pushes to round watchers.
//   - State: the full observable snapshot of a round.
//   - Summary: what gets persisted when a round finishes.
//   - The Store / Notifier / ResultWriter interfaces the manager consumes,
//     implemented by internal/store, internal/httpserver (the ws hub) and
//     internal/results respectively.

package round

import (
	"context"
	"errors"
	"time"

	"github.com/kipackjeong/wordbingo-server/internal/board"
)

var (
	ErrNotFound  = errors.New("round not found")
	ErrRoundOver = errors.New("round is over")
	ErrBadCell   = errors.New("cell out of range")
	ErrBadRule   = errors.New("invalid consonant rule")
)

// Event is one message pushed to everyone watching a round.
// Types: "cell_update", "round_expired", "round_completed", "board_state".
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// CellUpdate describes one cell after a state change, plus the derived
// board counts so clients never recompute them.
type CellUpdate struct {
	Key         string     `json:"key"`
	Row         int        `json:"row"`
	Col         int        `json:"col"`
	Cell        board.Cell `json:"cell"`
	FilledCount int        `json:"filledCount"`
	ValidCount  int        `json:"validCount"`
}

// State is the complete observable snapshot of a round.
type State struct {
	ID            string                             `json:"id"`
	Rule          string                             `json:"rule"`
	Player        string                             `json:"player,omitempty"`
	Daily         bool                               `json:"daily"`
	Cells         [board.Size][board.Size]board.Cell `json:"cells"`
	FilledCount   int                                `json:"filledCount"`
	ValidCount    int                                `json:"validCount"`
	HasDuplicates bool                               `json:"hasDuplicates"`
	Complete      bool                               `json:"complete"`
	Expired       bool                               `json:"expired"`
	CreatedAt     time.Time                          `json:"createdAt"`
	Deadline      time.Time                          `json:"deadline"`
}

// ExpiredPayload accompanies a "round_expired" event.
type ExpiredPayload struct {
	Reason        string   `json:"reason"`
	RevertedCells []string `json:"revertedCells"`
	State         State    `json:"state"`
}

// CompletedPayload accompanies a "round_completed" event.
type CompletedPayload struct {
	State      State `json:"state"`
	DurationMs int64 `json:"durationMs"`
}

// Summary is the persisted record of a finished round.
type Summary struct {
	RoundID       string
	Rule          string
	Player        string
	Daily         bool
	Completed     bool
	FilledCount   int
	ValidCount    int
	RevertedCells int
	DurationMs    int64
	FinishedAt    time.Time
}

// Store persists live rounds. Implementations may be backed by memory,
// Redis, SQL, etc.
type Store interface {
	// Save persists or updates a round.
	Save(ctx context.Context, rd *Round) error

	// Get retrieves a round by ID; ErrNotFound when missing.
	Get(ctx context.Context, id string) (*Round, error)
}

// Notifier fans an event out to everyone watching a round.
type Notifier interface {
	Publish(roundID string, e Event)
}

// ResultWriter records the summary of a finished round.
type ResultWriter interface {
	SaveSummary(ctx context.Context, s Summary) error
}
