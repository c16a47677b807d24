package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Cell identifies a board position. Cells are compared by value and are
// usable as map keys.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

var ErrTooManyMines = errors.New("mine count exceeds board size")

// Board is the hidden game state: a grid of mines plus the set of cells
// the player has flagged so far. The solver never sees the grid directly,
// only the answers to IsMine and NearbyMines.
type Board struct {
	Height int
	Width  int
	grid   [][]bool
	mines  map[Cell]struct{}
	found  map[Cell]struct{}
}

// NewBoard places mineCount mines uniformly at random.
func NewBoard(height, width, mineCount int, r *rand.Rand) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid board dimensions %dx%d", height, width)
	}
	if mineCount < 0 || mineCount > height*width {
		return nil, ErrTooManyMines
	}

	b := &Board{
		Height: height,
		Width:  width,
		grid:   make([][]bool, height),
		mines:  make(map[Cell]struct{}, mineCount),
		found:  make(map[Cell]struct{}),
	}
	for i := range b.grid {
		b.grid[i] = make([]bool, width)
	}

	for len(b.mines) != mineCount {
		cell := Cell{Row: r.IntN(height), Col: r.IntN(width)}
		if !b.grid[cell.Row][cell.Col] {
			b.grid[cell.Row][cell.Col] = true
			b.mines[cell] = struct{}{}
		}
	}
	return b, nil
}

// NewBoardWithMines builds a board with a fixed mine layout.
func NewBoardWithMines(height, width int, mines []Cell) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid board dimensions %dx%d", height, width)
	}
	b := &Board{
		Height: height,
		Width:  width,
		grid:   make([][]bool, height),
		mines:  make(map[Cell]struct{}, len(mines)),
		found:  make(map[Cell]struct{}),
	}
	for i := range b.grid {
		b.grid[i] = make([]bool, width)
	}
	for _, c := range mines {
		if !b.InBounds(c) {
			return nil, fmt.Errorf("mine %s out of bounds", c)
		}
		b.grid[c.Row][c.Col] = true
		b.mines[c] = struct{}{}
	}
	return b, nil
}

func (b *Board) InBounds(c Cell) bool {
	return 0 <= c.Row && c.Row < b.Height && 0 <= c.Col && c.Col < b.Width
}

func (b *Board) IsMine(c Cell) bool {
	return b.InBounds(c) && b.grid[c.Row][c.Col]
}

func (b *Board) MineCount() int {
	return len(b.mines)
}

// NearbyMines counts the mines within one row and column of c, not
// including c itself.
func (b *Board) NearbyMines(c Cell) int {
	count := 0
	for i := c.Row - 1; i <= c.Row+1; i++ {
		for j := c.Col - 1; j <= c.Col+1; j++ {
			n := Cell{Row: i, Col: j}
			if n == c {
				continue
			}
			if b.IsMine(n) {
				count++
			}
		}
	}
	return count
}

// Flag marks a cell the player believes to be a mine. Flagging a non-mine
// cell is recorded but can never satisfy Won.
func (b *Board) Flag(c Cell) {
	b.found[c] = struct{}{}
}

// Won reports whether the flagged set equals the mine set exactly.
func (b *Board) Won() bool {
	if len(b.found) != len(b.mines) {
		return false
	}
	for c := range b.mines {
		if _, ok := b.found[c]; !ok {
			return false
		}
	}
	return true
}

func (b *Board) String() string {
	var sb strings.Builder
	for i := range b.Height {
		for j := range b.Width {
			if b.grid[i][j] {
				sb.WriteString("* ")
			} else {
				sb.WriteString("- ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
