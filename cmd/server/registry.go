package main

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/kbsweep/minesweeper-solver/session"
)

// gameEntry tracks one requested game from creation through the end of
// its (single) solver run.
type gameEntry struct {
	mu      sync.Mutex
	ID      string           `json:"id"`
	Params  GameParams       `json:"params"`
	Status  string           `json:"status"` // pending | running | done
	Outcome *session.Outcome `json:"outcome,omitempty"`
}

// claim marks the entry running. Only the first caller gets to drive
// the session; later watchers receive the stored outcome instead.
func (e *gameEntry) claim() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Status != "pending" {
		return false
	}
	e.Status = "running"
	return true
}

func (e *gameEntry) finish(o session.Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Status = "done"
	e.Outcome = &o
}

func (e *gameEntry) snapshot() gameEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gameEntry{ID: e.ID, Params: e.Params, Status: e.Status, Outcome: e.Outcome}
}

// registry is the in-memory session index. Games are not persisted; the
// knowledge base lives only for the duration of one run and only
// outcomes reach the database.
type registry struct {
	mu      sync.Mutex
	entries map[string]*gameEntry
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]*gameEntry)}
}

func (r *registry) create(params GameParams) *gameEntry {
	buf := make([]byte, 8)
	rand.Read(buf)
	e := &gameEntry{
		ID:     hex.EncodeToString(buf),
		Params: params,
		Status: "pending",
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.ID] = e
	return e
}

func (r *registry) get(id string) (*gameEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e, ok
}
