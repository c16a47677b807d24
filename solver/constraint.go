package solver

import (
	"fmt"
	"strings"

	"github.com/kbsweep/minesweeper-solver/game"
)

// Constraint is a logical statement about the board: exactly count of the
// member cells are mines. Constraints shrink in place as cells are proven
// safe or mined; one with an empty cell set carries no information.
type Constraint struct {
	cells set[game.Cell]
	count int
}

func NewConstraint(cells []game.Cell, count int) *Constraint {
	c := &Constraint{
		cells: make(set[game.Cell], len(cells)),
		count: count,
	}
	for _, cell := range cells {
		c.cells.add(cell)
	}
	c.check()
	return c
}

// check panics if the count has drifted outside [0, |cells|]. That can
// only happen when Difference is invoked without a true subset relation
// or a mark operation violated its precondition.
func (c *Constraint) check() {
	if c.count < 0 || c.count > len(c.cells) {
		panic(AssertionError{fmt.Sprintf("malformed constraint %s", c)})
	}
}

func (c *Constraint) Count() int {
	return c.count
}

func (c *Constraint) Len() int {
	return len(c.cells)
}

func (c *Constraint) Has(cell game.Cell) bool {
	return c.cells.has(cell)
}

// Cells returns the member cells in row-then-column order.
func (c *Constraint) Cells() []game.Cell {
	return sortedCells(c.cells)
}

// Trivial reports whether the cell set is empty.
func (c *Constraint) Trivial() bool {
	return len(c.cells) == 0
}

// Equal depends only on the cell set and count, independent of how or
// when either constraint was built.
func (c *Constraint) Equal(other *Constraint) bool {
	return c.count == other.count && c.cells.equal(other.cells)
}

func (c *Constraint) SubsetOf(other *Constraint) bool {
	return c.cells.subsetOf(other.cells)
}

// Difference returns a new constraint over the cells of c not in sub,
// holding exactly c.count-sub.count mines. Only meaningful when sub's
// cell set is a subset of c's; callers must establish that first.
func (c *Constraint) Difference(sub *Constraint) *Constraint {
	d := &Constraint{
		cells: make(set[game.Cell], len(c.cells)-len(sub.cells)),
		count: c.count - sub.count,
	}
	for cell := range c.cells {
		if !sub.cells.has(cell) {
			d.cells.add(cell)
		}
	}
	d.check()
	return d
}

// KnownMines returns the full cell set iff every member must be a mine.
func (c *Constraint) KnownMines() ([]game.Cell, bool) {
	if len(c.cells) == 0 || len(c.cells) != c.count {
		return nil, false
	}
	return sortedCells(c.cells), true
}

// KnownSafes returns the full cell set iff no member can be a mine.
func (c *Constraint) KnownSafes() ([]game.Cell, bool) {
	if len(c.cells) == 0 || c.count != 0 {
		return nil, false
	}
	return sortedCells(c.cells), true
}

// MarkMine removes a known mine from the constraint. An exact-count set
// that loses a mine requires exactly one fewer among the rest.
func (c *Constraint) MarkMine(cell game.Cell) {
	if c.cells.has(cell) {
		c.cells.remove(cell)
		c.count--
		c.check()
	}
}

// MarkSafe removes a known safe cell; the count is unchanged.
func (c *Constraint) MarkSafe(cell game.Cell) {
	if c.cells.has(cell) {
		c.cells.remove(cell)
		c.check()
	}
}

func (c *Constraint) String() string {
	cells := sortedCells(c.cells)
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = cell.String()
	}
	return fmt.Sprintf("{%s} = %d", strings.Join(parts, " "), c.count)
}
