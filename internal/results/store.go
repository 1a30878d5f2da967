// internal/results/store.go
//
// SQLite persistence for finished rounds. Live rounds stay in memory; once
// a round completes or expires its summary lands here, which is what the
// recent-results and daily leaderboard endpoints read.

package results

import (
	"context"
	"database/sql"
	"time"

	"github.com/kipackjeong/wordbingo-server/internal/round"
)

const defaultLimit = 20

// Store reads and writes the round_results table.
type Store struct{ db *sql.DB }

// NewStore wraps db. The table is created by the sql/ migrations.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// SaveSummary implements round.ResultWriter. Re-saving the same round
// replaces its row, so a retried write cannot duplicate results.
func (s *Store) SaveSummary(ctx context.Context, sum round.Summary) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO round_results
		    (round_id, rule, player, date, daily, completed,
		     filled_count, valid_count, reverted_cells, duration_ms, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.RoundID, sum.Rule, sum.Player, round.DateKey(sum.FinishedAt),
		sum.Daily, sum.Completed,
		sum.FilledCount, sum.ValidCount, sum.RevertedCells,
		sum.DurationMs, sum.FinishedAt.UTC(),
	)
	return err
}

// Row is one persisted round summary.
type Row struct {
	RoundID       string    `json:"roundId"`
	Rule          string    `json:"rule"`
	Player        string    `json:"player,omitempty"`
	Date          string    `json:"date"`
	Daily         bool      `json:"daily"`
	Completed     bool      `json:"completed"`
	FilledCount   int       `json:"filledCount"`
	ValidCount    int       `json:"validCount"`
	RevertedCells int       `json:"revertedCells"`
	DurationMs    int64     `json:"durationMs"`
	FinishedAt    time.Time `json:"finishedAt"`
}

const rowColumns = `round_id, rule, player, date, daily, completed,
	filled_count, valid_count, reverted_cells, duration_ms, finished_at`

func scanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(
			&r.RoundID, &r.Rule, &r.Player, &r.Date, &r.Daily, &r.Completed,
			&r.FilledCount, &r.ValidCount, &r.RevertedCells, &r.DurationMs, &r.FinishedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Recent returns the most recently finished rounds, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Row, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+rowColumns+`
		 FROM round_results
		 ORDER BY finished_at DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

// DailyLeaderboard lists completed daily rounds for a date (YYYY-MM-DD),
// fastest first.
func (s *Store) DailyLeaderboard(ctx context.Context, date string, limit int) ([]Row, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+rowColumns+`
		 FROM round_results
		 WHERE daily = 1 AND completed = 1 AND date = ?
		 ORDER BY duration_ms ASC, finished_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}
