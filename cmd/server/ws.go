package main

import (
	"math/rand/v2"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/kbsweep/minesweeper-solver/game"
	"github.com/kbsweep/minesweeper-solver/session"
)

var upgrader websocket.Upgrader

// wsMessage is one frame of a watched game: a move while the solver is
// playing, then a final outcome frame.
type wsMessage struct {
	Type    string           `json:"type"` // move | outcome
	Move    *session.Move    `json:"move,omitempty"`
	Outcome *session.Outcome `json:"outcome,omitempty"`
}

// handleWatchGame upgrades to a websocket and streams the solver's run
// of the requested game. The first watcher drives the session; anyone
// connecting later just receives the stored outcome.
func handleWatchGame(w http.ResponseWriter, r *http.Request) {
	entry, ok := games.get(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()

	if !entry.claim() {
		snap := entry.snapshot()
		if snap.Outcome != nil {
			writeMessage(c, wsMessage{Type: "outcome", Outcome: snap.Outcome})
		}
		return
	}

	params := entry.Params
	rng := rand.New(rand.NewPCG(params.Seed, params.Seed>>1))
	board, err := game.NewBoard(params.Height, params.Width, params.MineCount, rng)
	if err != nil {
		// params were validated at creation; this is unreachable with a
		// well-formed entry
		log.Error("unable to generate board: ", err)
		entry.finish(session.Outcome{})
		return
	}

	outcome := session.New(board, rng).Play(func(m session.Move) {
		writeMessage(c, wsMessage{Type: "move", Move: &m})
	})
	entry.finish(outcome)
	writeMessage(c, wsMessage{Type: "outcome", Outcome: &outcome})

	if err := pg.Record(r.Context(), outcome); err != nil {
		log.Error("unable to record outcome: ", err)
	}
}

func writeMessage(c *websocket.Conn, msg wsMessage) {
	if err := c.WriteJSON(msg); err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			log.Warn("write: ", err)
		}
	}
}
