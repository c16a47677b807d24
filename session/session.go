// Package session drives a solving session: it couples a board with a
// knowledge base, repeatedly asks the solver for a move, probes the
// board, and feeds the resulting clue back in until the game ends.
package session

import (
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kbsweep/minesweeper-solver/game"
	"github.com/kbsweep/minesweeper-solver/solver"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
}

func SetLogger(l *logrus.Logger) {
	log = l
}

type Status int

const (
	On Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "on"
	}
}

// Move describes one probe made by the solver.
type Move struct {
	Cell  game.Cell `json:"cell"`
	Guess bool      `json:"guess"`
	Count int       `json:"count"`
	Mined bool      `json:"mined"`
}

// Outcome summarizes a finished session.
type Outcome struct {
	Height    int           `json:"height"`
	Width     int           `json:"width"`
	MineCount int           `json:"mine_count"`
	Won       bool          `json:"won"`
	Moves     int           `json:"moves"`
	Guesses   int           `json:"guesses"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

type Session struct {
	board   *game.Board
	kb      *solver.KnowledgeBase
	rnd     *rand.Rand
	status  Status
	moves   int
	guesses int
	started time.Time
}

func New(board *game.Board, r *rand.Rand) *Session {
	return &Session{
		board:   board,
		kb:      solver.NewKnowledgeBase(board.Height, board.Width),
		rnd:     r,
		started: time.Now().UTC(),
	}
}

func (s *Session) Status() Status {
	return s.status
}

// Step makes one move: a certain safe cell when the knowledge base has
// one, otherwise a uniform guess over the remaining candidates. It
// reports false when the session ended without a probe, either because
// it was already over or because no candidate cells remain.
func (s *Session) Step() (Move, bool) {
	if s.status != On {
		return Move{}, false
	}

	cell, ok := s.kb.SafeMove()
	guess := false
	if !ok {
		cell, ok = s.kb.RandomMove(s.rnd)
		guess = true
	}
	if !ok {
		// Every unprobed cell is a known mine: flag them and finish.
		s.flagKnownMines()
		s.status = Won
		return Move{}, false
	}

	s.moves++
	if guess {
		s.guesses++
	}

	if s.board.IsMine(cell) {
		log.WithFields(logrus.Fields{
			"cell": cell.String(), "guess": guess,
		}).Debug("stepped on a mine")
		s.status = Lost
		return Move{Cell: cell, Guess: guess, Mined: true}, true
	}

	count := s.board.NearbyMines(cell)
	s.kb.AddKnowledge(cell, count)
	log.WithFields(logrus.Fields{
		"cell": cell.String(), "count": count, "guess": guess,
	}).Debug("probed")

	if s.flagKnownMines() && s.board.Won() {
		s.status = Won
	}
	return Move{Cell: cell, Guess: guess, Count: count}, true
}

// flagKnownMines flags every cell the solver has proven to be a mine.
// Returns true when all of the board's mines are accounted for.
func (s *Session) flagKnownMines() bool {
	mines := s.kb.Mines()
	for _, c := range mines {
		s.board.Flag(c)
	}
	return len(mines) == s.board.MineCount()
}

// Play runs the session to completion. observe, when non-nil, is called
// with every move as it happens.
func (s *Session) Play(observe func(Move)) Outcome {
	for s.status == On {
		move, probed := s.Step()
		if probed && observe != nil {
			observe(move)
		}
	}
	return Outcome{
		Height:    s.board.Height,
		Width:     s.board.Width,
		MineCount: s.board.MineCount(),
		Won:       s.status == Won,
		Moves:     s.moves,
		Guesses:   s.guesses,
		StartedAt: s.started,
		Duration:  time.Since(s.started),
	}
}
