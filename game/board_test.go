package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestNewBoardPlacesExactMineCount(t *testing.T) {
	b, err := NewBoard(8, 8, 10, testRand())
	require.NoError(t, err)

	count := 0
	for i := range 8 {
		for j := range 8 {
			if b.IsMine(Cell{Row: i, Col: j}) {
				count++
			}
		}
	}
	assert.Equal(t, 10, count)
	assert.Equal(t, 10, b.MineCount())
}

func TestNewBoardRejectsBadParams(t *testing.T) {
	r := testRand()

	_, err := NewBoard(0, 8, 1, r)
	assert.Error(t, err)

	_, err = NewBoard(3, 3, 10, r)
	assert.ErrorIs(t, err, ErrTooManyMines)

	_, err = NewBoard(3, 3, -1, r)
	assert.ErrorIs(t, err, ErrTooManyMines)
}

func TestNearbyMines(t *testing.T) {
	// Saturated board: every cell is a mine.
	b, err := NewBoard(3, 3, 9, testRand())
	require.NoError(t, err)

	testCases := []struct {
		cell Cell
		want int
	}{
		{Cell{Row: 1, Col: 1}, 8}, // center
		{Cell{Row: 0, Col: 0}, 3}, // corner
		{Cell{Row: 0, Col: 1}, 5}, // edge
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, b.NearbyMines(tc.cell), "cell %s", tc.cell)
	}
}

func TestIsMineOutOfBounds(t *testing.T) {
	b, err := NewBoard(2, 2, 4, testRand())
	require.NoError(t, err)

	assert.False(t, b.IsMine(Cell{Row: -1, Col: 0}))
	assert.False(t, b.IsMine(Cell{Row: 0, Col: 2}))
}

func TestWon(t *testing.T) {
	b, err := NewBoard(4, 4, 3, testRand())
	require.NoError(t, err)
	assert.False(t, b.Won())

	flagged := 0
	for i := range 4 {
		for j := range 4 {
			c := Cell{Row: i, Col: j}
			if b.IsMine(c) {
				b.Flag(c)
				flagged++
			}
		}
	}
	require.Equal(t, 3, flagged)
	assert.True(t, b.Won())
}

func TestWonRequiresExactFlagSet(t *testing.T) {
	b, err := NewBoard(2, 2, 1, testRand())
	require.NoError(t, err)

	for i := range 2 {
		for j := range 2 {
			b.Flag(Cell{Row: i, Col: j})
		}
	}
	assert.False(t, b.Won(), "flagging everything must not count as a win")
}
