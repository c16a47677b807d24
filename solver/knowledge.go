package solver

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/kbsweep/minesweeper-solver/game"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
}

// SetLogger replaces the package logger. Binaries use it to route solver
// output through their configured logger.
func SetLogger(l *logrus.Logger) {
	log = l
}

// KnowledgeBase accumulates everything the solver has proven about a
// board: which cells were probed, which are certainly safe, which are
// certainly mines, and the live constraints that are not yet resolved.
//
// A KnowledgeBase belongs to a single solving session. All public
// methods serialize under one mutex, so a shared instance stays
// consistent even if a host drives it from several goroutines; closure
// reads and writes the whole constraint collection as one unit and must
// never be observed mid-flight.
type KnowledgeBase struct {
	mu sync.Mutex

	height int
	width  int

	movesMade   set[game.Cell]
	safes       set[game.Cell]
	mines       set[game.Cell]
	constraints []*Constraint
}

func NewKnowledgeBase(height, width int) *KnowledgeBase {
	return &KnowledgeBase{
		height:    height,
		width:     width,
		movesMade: make(set[game.Cell]),
		safes:     make(set[game.Cell]),
		mines:     make(set[game.Cell]),
	}
}

// MarkMine records cell as a certain mine and propagates the fact into
// every live constraint. Idempotent.
func (kb *KnowledgeBase) MarkMine(cell game.Cell) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.markMine(cell)
}

// MarkSafe records cell as certainly safe and propagates the fact into
// every live constraint. Idempotent.
func (kb *KnowledgeBase) MarkSafe(cell game.Cell) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.markSafe(cell)
}

// markMine records the fact and shrinks every live constraint holding
// the cell. It returns the constraints it touched so the closure can
// re-examine them; nil when the fact was already known.
func (kb *KnowledgeBase) markMine(cell game.Cell) (touched []*Constraint) {
	if kb.mines.has(cell) {
		return nil
	}
	if kb.safes.has(cell) {
		panic(AssertionError{"cell " + cell.String() + " marked both safe and mine"})
	}
	kb.mines.add(cell)
	for _, c := range kb.constraints {
		if c.Has(cell) {
			c.MarkMine(cell)
			touched = append(touched, c)
		}
	}
	return touched
}

func (kb *KnowledgeBase) markSafe(cell game.Cell) (touched []*Constraint) {
	if kb.safes.has(cell) {
		return nil
	}
	if kb.mines.has(cell) {
		panic(AssertionError{"cell " + cell.String() + " marked both mine and safe"})
	}
	kb.safes.add(cell)
	for _, c := range kb.constraints {
		if c.Has(cell) {
			c.MarkSafe(cell)
			touched = append(touched, c)
		}
	}
	return touched
}

// AddKnowledge ingests a clue: the board reported count mines among the
// neighbors of a just-probed cell. It records the move, derives a new
// constraint over the still-undetermined neighbors, and runs inference
// to a fixpoint.
func (kb *KnowledgeBase) AddKnowledge(cell game.Cell, count int) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	kb.movesMade.add(cell)
	kb.markSafe(cell)

	neighbors := kb.neighbors(cell)
	c := NewConstraint(neighbors, count)
	for _, n := range neighbors {
		if kb.mines.has(n) {
			c.MarkMine(n)
		}
		if kb.safes.has(n) {
			c.MarkSafe(n)
		}
	}

	if kb.addConstraint(c) {
		log.Debugf("learned %s from clue %s=%d", c, cell, count)
	}
	kb.infer()
}

// neighbors lists the in-bounds cells within one row and column of cell,
// excluding cell itself and any cell already probed.
func (kb *KnowledgeBase) neighbors(cell game.Cell) []game.Cell {
	var cells []game.Cell
	for i := cell.Row - 1; i <= cell.Row+1; i++ {
		for j := cell.Col - 1; j <= cell.Col+1; j++ {
			n := game.Cell{Row: i, Col: j}
			if n == cell {
				continue
			}
			if i < 0 || i >= kb.height || j < 0 || j >= kb.width {
				continue
			}
			if kb.movesMade.has(n) {
				continue
			}
			cells = append(cells, n)
		}
	}
	return cells
}

// addConstraint appends c unless it is trivial or a duplicate of a live
// constraint. Duplicates are a no-op, not an error.
func (kb *KnowledgeBase) addConstraint(c *Constraint) bool {
	if c.Trivial() {
		return false
	}
	for _, existing := range kb.constraints {
		if existing.Equal(c) {
			return false
		}
	}
	kb.constraints = append(kb.constraints, c)
	return true
}

// infer runs the closure. Every constraint that was added or shrank
// since the last fixpoint sits on an explicit work queue; processing one
// promotes it to facts if fully determined and scans it against the live
// collection for subset pairs. New facts re-enqueue the constraints they
// shrank and new derived constraints enqueue themselves, so the queue
// drains exactly when a full pass would change nothing. Each scan walks
// a stable snapshot and stages its additions, so constraints may shrink
// mid-scan without invalidating iteration.
func (kb *KnowledgeBase) infer() {
	var queue deque.Deque[*Constraint]
	for _, c := range kb.constraints {
		queue.PushBack(c)
	}

	for queue.Len() > 0 {
		c := queue.PopFront()
		if c.Trivial() {
			kb.compact()
			continue
		}

		// Promote a fully-determined constraint to facts. Marking
		// mutates other constraints; those must be looked at again.
		if cells, ok := c.KnownMines(); ok {
			for _, cell := range cells {
				for _, touched := range kb.markMine(cell) {
					queue.PushBack(touched)
				}
				log.Debugf("inferred mine at %s", cell)
			}
		}
		if cells, ok := c.KnownSafes(); ok {
			for _, cell := range cells {
				for _, touched := range kb.markSafe(cell) {
					queue.PushBack(touched)
				}
				log.Debugf("inferred safe at %s", cell)
			}
		}
		kb.compact()
		if c.Trivial() {
			continue
		}

		// Subset rule: if A's cells are contained in B's, the cells of B
		// outside A hold exactly B.count-A.count mines. Derived
		// constraints are staged and committed after the scan.
		var derived []*Constraint
		for _, other := range slices.Clone(kb.constraints) {
			if other == c {
				continue
			}
			var d *Constraint
			switch {
			case c.SubsetOf(other):
				d = other.Difference(c)
			case other.SubsetOf(c):
				d = c.Difference(other)
			default:
				continue
			}
			if !d.Trivial() {
				derived = append(derived, d)
			}
		}
		for _, d := range derived {
			if kb.addConstraint(d) {
				log.Debugf("derived %s", d)
				queue.PushBack(d)
			}
		}
	}
}

// compact removes constraints whose cell sets have emptied out, along
// with any that shrank into a duplicate of an earlier one.
func (kb *KnowledgeBase) compact() {
	var kept []*Constraint
	for _, c := range kb.constraints {
		if c.Trivial() {
			continue
		}
		dup := false
		for _, k := range kept {
			if k.Equal(c) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, c)
		}
	}
	kb.constraints = kept
}

// SafeMove returns a cell proven safe that has not been probed yet,
// choosing the lowest row-then-column candidate so runs are
// reproducible. It reports false when no certain move exists.
func (kb *KnowledgeBase) SafeMove() (game.Cell, bool) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	var best game.Cell
	found := false
	for cell := range kb.safes {
		if kb.movesMade.has(cell) {
			continue
		}
		if !found || cellCmp(cell, best) < 0 {
			best, found = cell, true
		}
	}
	return best, found
}

// RandomMove returns a uniformly chosen cell that is neither probed nor
// a known mine. Callers fall back to it only after SafeMove reports no
// move; it reports false when every cell is exhausted.
func (kb *KnowledgeBase) RandomMove(r *rand.Rand) (game.Cell, bool) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	var candidates []game.Cell
	for i := range kb.height {
		for j := range kb.width {
			cell := game.Cell{Row: i, Col: j}
			if kb.movesMade.has(cell) || kb.mines.has(cell) {
				continue
			}
			candidates = append(candidates, cell)
		}
	}
	if len(candidates) == 0 {
		return game.Cell{}, false
	}
	return candidates[r.IntN(len(candidates))], true
}

// Mines returns a sorted snapshot of the cells proven to be mines.
func (kb *KnowledgeBase) Mines() []game.Cell {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return sortedCells(kb.mines)
}

// Safes returns a sorted snapshot of the cells proven safe.
func (kb *KnowledgeBase) Safes() []game.Cell {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return sortedCells(kb.safes)
}

// ConstraintCount reports how many live constraints remain unresolved.
func (kb *KnowledgeBase) ConstraintCount() int {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return len(kb.constraints)
}
