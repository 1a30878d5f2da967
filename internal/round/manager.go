// internal/round/manager.go
//
// The Manager creates rounds, hands them out by ID and finishes them.
// Responsibilities:
//   - Validate the consonant rule and stamp each round with a UUID.
//   - Arm the deadline: when it elapses the round expires itself. The
//     timer is never stopped; firing on an already-finished round is a
//     no-op, so completion needs no timer bookkeeping.
//   - Persist finished-round summaries, best-effort: a failed write is
//     logged and never blocks the round lifecycle.

package round

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kipackjeong/wordbingo-server/internal/board"
	"github.com/kipackjeong/wordbingo-server/internal/debounce"
	"github.com/kipackjeong/wordbingo-server/internal/hangul"
	"github.com/kipackjeong/wordbingo-server/internal/validate"
)

// DefaultDuration is how long a round runs when the caller does not say.
const DefaultDuration = 3 * time.Minute

// Config carries the manager-wide knobs.
type Config struct {
	DebounceDelay time.Duration // per-cell quiet period before validation
	RoundDuration time.Duration // default deadline; 0 means DefaultDuration
	DailySalt     string        // seed for the rule-of-the-day rotation
}

// Manager owns round creation and lookup.
type Manager struct {
	store    Store
	notifier Notifier
	results  ResultWriter
	pipeline *validate.Pipeline
	cfg      Config
}

// NewManager wires a manager. notifier and results may be nil; rounds then
// run silently and summaries are not persisted.
func NewManager(st Store, n Notifier, rw ResultWriter, p *validate.Pipeline, cfg Config) *Manager {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = debounce.DefaultDelay
	}
	if cfg.RoundDuration <= 0 {
		cfg.RoundDuration = DefaultDuration
	}
	return &Manager{store: st, notifier: n, results: rw, pipeline: p, cfg: cfg}
}

// CreateOptions describe a new round. Duration <= 0 uses the configured
// default.
type CreateOptions struct {
	Rule     string
	Player   string
	Duration time.Duration
	Daily    bool
}

// Create validates the rule, builds the round and arms its deadline.
func (m *Manager) Create(ctx context.Context, opts CreateOptions) (*Round, error) {
	rule := strings.TrimSpace(opts.Rule)
	if !hangul.IsValidRule(rule) {
		return nil, ErrBadRule
	}
	dur := opts.Duration
	if dur <= 0 {
		dur = m.cfg.RoundDuration
	}

	now := time.Now()
	rd := &Round{
		ID:        uuid.NewString(),
		Rule:      rule,
		Player:    strings.TrimSpace(opts.Player),
		Daily:     opts.Daily,
		CreatedAt: now,
		Deadline:  now.Add(dur),
		pipeline:  m.pipeline,
		notifier:  m.notifier,
		sched:     debounce.New(m.cfg.DebounceDelay),
		board:     board.New(),
		onFinish:  m.persist,
	}
	if err := m.store.Save(ctx, rd); err != nil {
		return nil, err
	}
	time.AfterFunc(dur, func() { rd.ExpireNow("deadline") })

	log.Info().
		Str("round", rd.ID).
		Str("rule", rd.Rule).
		Bool("daily", rd.Daily).
		Time("deadline", rd.Deadline).
		Msg("round created")
	return rd, nil
}

// CreateDaily builds a round on today's rule.
func (m *Manager) CreateDaily(ctx context.Context, player string, dur time.Duration) (*Round, error) {
	return m.Create(ctx, CreateOptions{
		Rule:     RuleOfDay(time.Now(), m.cfg.DailySalt),
		Player:   player,
		Duration: dur,
		Daily:    true,
	})
}

// Get returns the round with the given ID.
func (m *Manager) Get(ctx context.Context, id string) (*Round, error) {
	return m.store.Get(ctx, id)
}

func (m *Manager) persist(s Summary) {
	if m.results == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := m.results.SaveSummary(ctx, s); err != nil {
		log.Warn().Err(err).Str("round", s.RoundID).Msg("failed to persist round summary")
	}
}
