package main

import (
	"context"
	"database/sql"
	"flag"
	"math/rand/v2"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/kbsweep/minesweeper-solver/game"
	"github.com/kbsweep/minesweeper-solver/internal/logging"
	"github.com/kbsweep/minesweeper-solver/session"
	"github.com/kbsweep/minesweeper-solver/solver"
	"github.com/kbsweep/minesweeper-solver/store"
)

var log = logrus.New()

var (
	height      int
	width       int
	mineCount   int
	games       int
	seed        uint64
	debug       bool
	resultsPath string
	logPath     string
)

func init() {
	flag.IntVar(&height, "height", 8, "board height")
	flag.IntVar(&width, "width", 8, "board width")
	flag.IntVar(&mineCount, "mines", 8, "number of mines")
	flag.IntVar(&games, "games", 1, "number of games to play")
	flag.Uint64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	flag.BoolVar(&debug, "debug", false, "log every move and inference")
	flag.StringVar(&resultsPath, "results", "", "sqlite file to record outcomes in")
	flag.StringVar(&logPath, "log", "", "rotated log file path")
}

func main() {
	flag.Parse()

	if err := logging.Setup(log, debug, logPath); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}
	solver.SetLogger(log)
	session.SetLogger(log)

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1))
	log.Infof("playing %d game(s) on %dx%d with %d mines, seed %d",
		games, height, width, mineCount, seed)

	var results *store.Store
	if resultsPath != "" {
		db, err := sql.Open("sqlite3", resultsPath)
		if err != nil {
			log.Fatal("unable to open results db: ", err)
		}
		defer db.Close()
		if results, err = store.New(db); err != nil {
			log.Fatal("unable to create results store: ", err)
		}
	}

	ctx := context.Background()
	wins := 0
	for i := range games {
		board, err := game.NewBoard(height, width, mineCount, rng)
		if err != nil {
			log.Fatal("unable to generate board: ", err)
		}
		log.Debugf("board %d:\n%s", i+1, board)

		outcome := session.New(board, rng).Play(nil)
		if outcome.Won {
			wins++
		}
		log.WithFields(logrus.Fields{
			"game":    i + 1,
			"won":     outcome.Won,
			"moves":   outcome.Moves,
			"guesses": outcome.Guesses,
			"took":    outcome.Duration.Round(time.Microsecond).String(),
		}).Info("game over")

		if results != nil {
			if err := results.Record(ctx, outcome); err != nil {
				log.Error("unable to record outcome: ", err)
			}
		}
	}

	log.Infof("won %d of %d (%.1f%%)", wins, games, 100*float64(wins)/float64(games))
}
