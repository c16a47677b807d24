// Package store persists the outcomes of finished solving sessions.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kbsweep/minesweeper-solver/session"
)

var ErrNotFound = errors.New("no outcomes recorded")

// Stats aggregates recorded outcomes.
type Stats struct {
	Games      int     `json:"games" db:"games"`
	Wins       int     `json:"wins" db:"wins"`
	WinRate    float64 `json:"win_rate" db:"-"`
	AvgMoves   float64 `json:"avg_moves" db:"avg_moves"`
	AvgGuesses float64 `json:"avg_guesses" db:"avg_guesses"`
}

// Store records outcomes in an embedded sqlite database, used by the
// CLI runner for local result files. The server records to Postgres
// instead, see [Postgres].
type Store struct {
	db *sql.DB
}

const createOutcomeTable = `
CREATE TABLE IF NOT EXISTS outcome (
	height		integer NOT NULL,
	width		integer NOT NULL,
	mine_count	integer NOT NULL,
	won			boolean NOT NULL,
	moves		integer NOT NULL,
	guesses		integer NOT NULL,
	started_at	timestamp NOT NULL,
	duration_ms	integer NOT NULL
);`

func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(createOutcomeTable); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Record(ctx context.Context, o session.Outcome) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO outcome (height, width, mine_count, won, moves, guesses, started_at, duration_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		o.Height, o.Width, o.MineCount, o.Won, o.Moves, o.Guesses,
		o.StartedAt, o.Duration.Milliseconds(),
	)
	return err
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*)
	, COALESCE(SUM(CASE WHEN won THEN 1 ELSE 0 END), 0)
	, COALESCE(AVG(moves), 0)
	, COALESCE(AVG(guesses), 0)
FROM outcome;`).Scan(&st.Games, &st.Wins, &st.AvgMoves, &st.AvgGuesses)
	if err != nil {
		return Stats{}, err
	}
	if st.Games > 0 {
		st.WinRate = float64(st.Wins) / float64(st.Games)
	}
	return st, nil
}

// Recent returns up to n of the latest recorded outcomes, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]session.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT height, width, mine_count, won, moves, guesses, started_at, duration_ms
FROM outcome
ORDER BY started_at DESC
LIMIT ?;`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []session.Outcome
	for rows.Next() {
		var (
			o  session.Outcome
			ms int64
		)
		if err := rows.Scan(
			&o.Height, &o.Width, &o.MineCount, &o.Won,
			&o.Moves, &o.Guesses, &o.StartedAt, &ms,
		); err != nil {
			return nil, err
		}
		o.Duration = time.Duration(ms) * time.Millisecond
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(outcomes) == 0 {
		return nil, ErrNotFound
	}
	return outcomes, nil
}
