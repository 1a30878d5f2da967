// internal/round/round.go
//
// A Round is one live board session: the 5x5 grid, its consonant rule, the
// per-cell debounce timers and the deadline. It is the package's
// concurrency boundary — one mutex serializes every board mutation, and
// dictionary lookups run outside the lock so a slow dictionary never
// freezes editing.
//
// Edit lifecycle:
//  1. EditCell writes the word optimistically and (re)arms the cell's
//     debounce timer. An empty word resets the cell and disarms the timer.
//  2. When the timer fires, the cell is re-checked for duplicates, flagged
//     as validating, and the pipeline runs off-lock.
//  3. The verdict re-enters under the lock. It only lands if the cell
//     still holds the word it was computed for; otherwise it is discarded.
//
// Expiry and completion both finish the round exactly once: later edits
// are rejected with ErrRoundOver and in-flight verdicts are dropped.

package round

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kipackjeong/wordbingo-server/internal/board"
	"github.com/kipackjeong/wordbingo-server/internal/debounce"
	"github.com/kipackjeong/wordbingo-server/internal/validate"
)

const lookupBudget = 5 * time.Second

// Round is a single board session. Exported fields are immutable after
// creation; everything else is guarded by mu.
type Round struct {
	ID        string
	Rule      string
	Player    string
	Daily     bool
	CreatedAt time.Time
	Deadline  time.Time

	pipeline *validate.Pipeline
	notifier Notifier
	sched    *debounce.Scheduler
	onFinish func(Summary)

	mu         sync.Mutex
	board      *board.Board
	expired    bool
	completed  bool
	finishedAt time.Time
}

func (r *Round) overLocked() bool { return r.expired || r.completed }

// EditCell applies one edit to a cell: optimistic write, inline duplicate
// warning, debounced validation. Empty input resets the cell silently and
// cancels any pending validation for it.
func (r *Round) EditCell(row, col int, word string) (CellUpdate, error) {
	word = strings.TrimSpace(word)
	key := board.CellKey(row, col)

	r.mu.Lock()
	if r.overLocked() {
		r.mu.Unlock()
		return CellUpdate{}, ErrRoundOver
	}
	if !r.board.SetWord(row, col, word) {
		r.mu.Unlock()
		return CellUpdate{}, ErrBadCell
	}

	if word == "" {
		r.sched.Cancel(key)
	} else {
		if r.board.IsDuplicate(word, row, col) {
			d := validate.Duplicate(word)
			r.board.SetError(row, col, d.Code, d.Error)
		}
		r.sched.Schedule(key, func() { r.fire(row, col, word) })
	}
	upd := r.cellUpdateLocked(row, col)
	r.mu.Unlock()

	r.publish("cell_update", upd)
	return upd, nil
}

// Focus marks the cell as being edited; any previously focused cell blurs.
func (r *Round) Focus(row, col int) (CellUpdate, error) {
	r.mu.Lock()
	if r.overLocked() {
		r.mu.Unlock()
		return CellUpdate{}, ErrRoundOver
	}
	if !r.board.Focus(row, col) {
		r.mu.Unlock()
		return CellUpdate{}, ErrBadCell
	}
	upd := r.cellUpdateLocked(row, col)
	r.mu.Unlock()

	r.publish("cell_update", upd)
	return upd, nil
}

// Blur clears focus from the cell. Pending validation is unaffected.
func (r *Round) Blur(row, col int) (CellUpdate, error) {
	r.mu.Lock()
	if r.overLocked() {
		r.mu.Unlock()
		return CellUpdate{}, ErrRoundOver
	}
	if !r.board.Blur(row, col) {
		r.mu.Unlock()
		return CellUpdate{}, ErrBadCell
	}
	upd := r.cellUpdateLocked(row, col)
	r.mu.Unlock()

	r.publish("cell_update", upd)
	return upd, nil
}

// fire runs when a cell's debounce timer elapses. word is the text the
// timer was armed for; if the cell has moved on since, nothing happens.
func (r *Round) fire(row, col int, word string) {
	r.mu.Lock()
	if r.overLocked() {
		r.mu.Unlock()
		return
	}
	c, ok := r.board.Cell(row, col)
	if !ok || c.Word != word {
		r.mu.Unlock()
		return
	}

	// Authoritative duplicate check: blocks the dictionary call entirely.
	if r.board.IsDuplicate(word, row, col) {
		r.board.ApplyVerdict(row, col, validate.Duplicate(word))
		upd := r.cellUpdateLocked(row, col)
		r.mu.Unlock()
		r.publish("cell_update", upd)
		return
	}

	r.board.SetValidating(row, col, true)
	upd := r.cellUpdateLocked(row, col)
	rule := r.Rule
	r.mu.Unlock()
	r.publish("cell_update", upd)

	ctx, cancel := context.WithTimeout(context.Background(), lookupBudget)
	v := r.pipeline.Verify(ctx, word, rule)
	cancel()

	r.applyVerdict(row, col, v)
}

// applyVerdict lands a pipeline verdict, unless the round finished or the
// cell was edited while the lookup ran.
func (r *Round) applyVerdict(row, col int, v validate.Verdict) {
	r.mu.Lock()
	if r.overLocked() {
		r.mu.Unlock()
		return
	}
	if !r.board.ApplyVerdict(row, col, v) {
		r.mu.Unlock()
		log.Debug().
			Str("round", r.ID).
			Str("cell", board.CellKey(row, col)).
			Str("word", v.Word).
			Msg("stale verdict discarded")
		return
	}

	completedNow := false
	if v.Valid && r.board.Complete() {
		r.completed = true
		r.finishedAt = time.Now()
		completedNow = true
	}
	upd := r.cellUpdateLocked(row, col)
	var done CompletedPayload
	var summary Summary
	if completedNow {
		done = CompletedPayload{
			State:      r.stateLocked(),
			DurationMs: r.finishedAt.Sub(r.CreatedAt).Milliseconds(),
		}
		summary = r.summaryLocked()
	}
	r.mu.Unlock()

	r.publish("cell_update", upd)
	if completedNow {
		log.Info().
			Str("round", r.ID).
			Str("rule", r.Rule).
			Int64("durationMs", done.DurationMs).
			Msg("round completed")
		r.publish("round_completed", done)
		r.finish(summary)
	}
}

// ExpireNow ends the round at its deadline (or on demand): every pending
// timer is dropped and cells caught mid-edit revert to their last valid
// word. Safe to call any number of times; only the first call does work.
func (r *Round) ExpireNow(reason string) (ExpiredPayload, bool) {
	r.mu.Lock()
	if r.overLocked() {
		r.mu.Unlock()
		return ExpiredPayload{}, false
	}
	r.expired = true
	r.finishedAt = time.Now()
	cancelled := r.sched.CancelAll()
	reverted := r.board.Expire()
	payload := ExpiredPayload{
		Reason:        reason,
		RevertedCells: reverted,
		State:         r.stateLocked(),
	}
	summary := r.summaryLocked()
	summary.RevertedCells = len(reverted)
	r.mu.Unlock()

	log.Info().
		Str("round", r.ID).
		Str("reason", reason).
		Int("cancelledTimers", cancelled).
		Int("revertedCells", len(reverted)).
		Msg("round expired")
	r.publish("round_expired", payload)
	r.finish(summary)
	return payload, true
}

// Status returns the current snapshot.
func (r *Round) Status() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

// PendingValidations reports how many cells have a timer armed.
func (r *Round) PendingValidations() int {
	return r.sched.Pending()
}

func (r *Round) cellUpdateLocked(row, col int) CellUpdate {
	c, _ := r.board.Cell(row, col)
	return CellUpdate{
		Key:         board.CellKey(row, col),
		Row:         row,
		Col:         col,
		Cell:        *c,
		FilledCount: r.board.FilledCount(),
		ValidCount:  r.board.ValidCount(),
	}
}

func (r *Round) stateLocked() State {
	return State{
		ID:            r.ID,
		Rule:          r.Rule,
		Player:        r.Player,
		Daily:         r.Daily,
		Cells:         r.board.Snapshot(),
		FilledCount:   r.board.FilledCount(),
		ValidCount:    r.board.ValidCount(),
		HasDuplicates: r.board.HasDuplicates(),
		Complete:      r.completed,
		Expired:       r.expired,
		CreatedAt:     r.CreatedAt,
		Deadline:      r.Deadline,
	}
}

func (r *Round) summaryLocked() Summary {
	return Summary{
		RoundID:     r.ID,
		Rule:        r.Rule,
		Player:      r.Player,
		Daily:       r.Daily,
		Completed:   r.completed,
		FilledCount: r.board.FilledCount(),
		ValidCount:  r.board.ValidCount(),
		DurationMs:  r.finishedAt.Sub(r.CreatedAt).Milliseconds(),
		FinishedAt:  r.finishedAt,
	}
}

func (r *Round) publish(typ string, data interface{}) {
	if r.notifier == nil {
		return
	}
	r.notifier.Publish(r.ID, Event{Type: typ, Data: data})
}

func (r *Round) finish(s Summary) {
	if r.onFinish != nil {
		r.onFinish(s)
	}
}
