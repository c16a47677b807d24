package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kbsweep/minesweeper-solver/session"
)

const createPgOutcomeTable = `
CREATE TABLE IF NOT EXISTS outcome (
	outcome_id	bigint	GENERATED ALWAYS AS IDENTITY
						PRIMARY KEY,
	height		integer	NOT NULL,
	width		integer	NOT NULL,
	mine_count	integer	NOT NULL,
	won			boolean	NOT NULL,
	moves		integer	NOT NULL,
	guesses		integer	NOT NULL,
	started_at	timestamp with time zone NOT NULL,
	duration_ms	bigint	NOT NULL,
	created_at	timestamp with time zone
						DEFAULT now()
						NOT NULL
);`

// Postgres records outcomes in a Postgres database shared by server
// replicas.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(ctx context.Context, dbUrl string) (*Postgres, error) {
	dbconfig, err := pgxpool.ParseConfig(dbUrl)
	if err != nil {
		return nil, err
	}
	db, err := pgxpool.NewWithConfig(ctx, dbconfig)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(ctx, createPgOutcomeTable); err != nil {
		db.Close()
		return nil, err
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func (p *Postgres) Close() {
	p.db.Close()
}

func (p *Postgres) Record(ctx context.Context, o session.Outcome) error {
	_, err := p.db.Exec(ctx, `
INSERT INTO outcome (height, width, mine_count, won, moves, guesses, started_at, duration_ms)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		o.Height, o.Width, o.MineCount, o.Won, o.Moves, o.Guesses,
		o.StartedAt, o.Duration.Milliseconds(),
	)
	return err
}

func (p *Postgres) Stats(ctx context.Context) (Stats, error) {
	rows, err := p.db.Query(ctx, `
SELECT COUNT(*) games
	, COALESCE(SUM(CASE WHEN won THEN 1 ELSE 0 END), 0) wins
	, COALESCE(AVG(moves), 0) avg_moves
	, COALESCE(AVG(guesses), 0) avg_guesses
FROM outcome;`)
	if err != nil {
		return Stats{}, err
	}
	st, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[Stats])
	if err != nil {
		return Stats{}, err
	}
	if st.Games > 0 {
		st.WinRate = float64(st.Wins) / float64(st.Games)
	}
	return st, nil
}

// BoardRecord is one row of the per-board leaderboard: how a given board
// shape has fared across sessions.
type BoardRecord struct {
	Height    int     `json:"height" db:"height"`
	Width     int     `json:"width" db:"width"`
	MineCount int     `json:"mine_count" db:"mine_count"`
	Games     int     `json:"games" db:"games"`
	Wins      int     `json:"wins" db:"wins"`
	BestMs    int64   `json:"best_ms" db:"best_ms"`
	AvgMoves  float64 `json:"avg_moves" db:"avg_moves"`
}

func (p *Postgres) BoardRecords(ctx context.Context) ([]BoardRecord, error) {
	rows, err := p.db.Query(ctx, `
SELECT height
	, width
	, mine_count
	, COUNT(*) games
	, SUM(CASE WHEN won THEN 1 ELSE 0 END) wins
	, MIN(duration_ms) best_ms
	, AVG(moves) avg_moves
FROM outcome
GROUP BY height, width, mine_count
ORDER BY height, width, mine_count;`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[BoardRecord])
}
