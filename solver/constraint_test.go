package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbsweep/minesweeper-solver/game"
)

func cells(pairs ...[2]int) []game.Cell {
	cs := make([]game.Cell, len(pairs))
	for i, p := range pairs {
		cs[i] = game.Cell{Row: p[0], Col: p[1]}
	}
	return cs
}

func TestConstraintEqualIgnoresOrder(t *testing.T) {
	a := NewConstraint(cells([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1}), 2)
	b := NewConstraint(cells([2]int{1, 1}, [2]int{0, 0}, [2]int{0, 1}), 2)
	c := NewConstraint(cells([2]int{1, 1}, [2]int{0, 0}, [2]int{0, 1}), 1)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
}

func TestConstraintKnownMines(t *testing.T) {
	full := NewConstraint(cells([2]int{0, 0}, [2]int{0, 1}), 2)
	mines, ok := full.KnownMines()
	require.True(t, ok)
	assert.Equal(t, cells([2]int{0, 0}, [2]int{0, 1}), mines)

	partial := NewConstraint(cells([2]int{0, 0}, [2]int{0, 1}), 1)
	_, ok = partial.KnownMines()
	assert.False(t, ok)

	empty := NewConstraint(nil, 0)
	_, ok = empty.KnownMines()
	assert.False(t, ok)
}

func TestConstraintKnownSafes(t *testing.T) {
	clear := NewConstraint(cells([2]int{2, 2}, [2]int{2, 3}), 0)
	safes, ok := clear.KnownSafes()
	require.True(t, ok)
	assert.Equal(t, cells([2]int{2, 2}, [2]int{2, 3}), safes)

	partial := NewConstraint(cells([2]int{2, 2}, [2]int{2, 3}), 1)
	_, ok = partial.KnownSafes()
	assert.False(t, ok)
}

func TestConstraintMarkMine(t *testing.T) {
	c := NewConstraint(cells([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}), 2)

	c.MarkMine(game.Cell{Row: 0, Col: 1})
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 2, c.Len())
	assert.False(t, c.Has(game.Cell{Row: 0, Col: 1}))

	// non-member is a no-op
	c.MarkMine(game.Cell{Row: 5, Col: 5})
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 2, c.Len())
}

func TestConstraintMarkSafe(t *testing.T) {
	c := NewConstraint(cells([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}), 1)

	c.MarkSafe(game.Cell{Row: 0, Col: 0})
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 2, c.Len())

	c.MarkSafe(game.Cell{Row: 9, Col: 9})
	assert.Equal(t, 2, c.Len())
}

func TestConstraintDifference(t *testing.T) {
	sub := NewConstraint(cells([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}), 2)
	super := NewConstraint(cells([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}), 3)
	require.True(t, sub.SubsetOf(super))

	d := super.Difference(sub)
	assert.Equal(t, cells([2]int{0, 3}), d.Cells())
	assert.Equal(t, 1, d.Count())
}

func TestConstraintDifferenceWithoutSubsetPanics(t *testing.T) {
	a := NewConstraint(cells([2]int{0, 0}), 1)
	b := NewConstraint(cells([2]int{0, 0}, [2]int{0, 1}), 0)

	assert.PanicsWithError(t, "malformed constraint {(0,1)} = -1", func() {
		b.Difference(a)
	})
}

func TestConstraintTrivial(t *testing.T) {
	c := NewConstraint(cells([2]int{0, 0}), 1)
	assert.False(t, c.Trivial())

	c.MarkMine(game.Cell{Row: 0, Col: 0})
	assert.True(t, c.Trivial())
	assert.Equal(t, 0, c.Count())
}

func TestConstraintString(t *testing.T) {
	c := NewConstraint(cells([2]int{1, 0}, [2]int{0, 1}), 1)
	assert.Equal(t, "{(0,1) (1,0)} = 1", c.String())
}
