package solver

import (
	"cmp"
	"slices"

	"github.com/kbsweep/minesweeper-solver/game"
)

type void struct{}

type set[T comparable] map[T]void

func (s set[T]) add(v T) {
	s[v] = void{}
}

func (s set[T]) has(v T) bool {
	_, ok := s[v]
	return ok
}

func (s set[T]) remove(v T) {
	delete(s, v)
}

func (s set[T]) subsetOf(x set[T]) bool {
	if len(s) > len(x) {
		return false
	}
	for v := range s {
		if _, ok := x[v]; !ok {
			return false
		}
	}
	return true
}

func (s set[T]) equal(x set[T]) bool {
	return len(s) == len(x) && s.subsetOf(x)
}

func (s set[T]) clone() set[T] {
	c := make(set[T], len(s))
	for v := range s {
		c[v] = void{}
	}
	return c
}

func cellCmp(a, b game.Cell) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

// sortedCells returns the members of s in row-then-column order.
func sortedCells(s set[game.Cell]) []game.Cell {
	cells := make([]game.Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, cellCmp)
	return cells
}
