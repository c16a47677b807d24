package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbsweep/minesweeper-solver/session"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	f, err := os.CreateTemp("", "sqlite-outcomes-")
	require.NoError(t, err, "failed to create temp file")

	db, err := sql.Open("sqlite3", f.Name())
	require.NoError(t, err, "failed to connect sqlite db")

	s, err := New(db)
	require.NoError(t, err, "failed to create store")

	t.Cleanup(func() {
		db.Close()
		f.Close()
		os.Remove(f.Name())
	})
	return s
}

func outcome(won bool, moves, guesses int, at time.Time) session.Outcome {
	return session.Outcome{
		Height:    8,
		Width:     8,
		MineCount: 10,
		Won:       won,
		Moves:     moves,
		Guesses:   guesses,
		StartedAt: at,
		Duration:  1200 * time.Millisecond,
	}
}

func TestStatsEmpty(t *testing.T) {
	s := setupTestStore(t)

	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)
}

func TestRecordAndStats(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Record(ctx, outcome(true, 54, 1, now)))
	require.NoError(t, s.Record(ctx, outcome(true, 50, 2, now.Add(time.Second))))
	require.NoError(t, s.Record(ctx, outcome(false, 10, 3, now.Add(2*time.Second))))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Games)
	assert.Equal(t, 2, st.Wins)
	assert.InDelta(t, 2.0/3.0, st.WinRate, 1e-9)
	assert.InDelta(t, 38.0, st.AvgMoves, 1e-9)
	assert.InDelta(t, 2.0, st.AvgGuesses, 1e-9)
}

func TestRecentEmpty(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Recent(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, s.Record(ctx, outcome(false, 5, 1, now)))
	require.NoError(t, s.Record(ctx, outcome(true, 60, 1, now.Add(time.Minute))))

	recent, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.True(t, recent[0].Won)
	assert.Equal(t, 60, recent[0].Moves)
	assert.Equal(t, 1200*time.Millisecond, recent[0].Duration)
}
