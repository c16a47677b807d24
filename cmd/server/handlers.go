package main

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"

	"github.com/rs/cors"
)

func buildHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /games", handleNewGame)
	mux.HandleFunc("GET /games/{id}", handleFetchGame)
	mux.HandleFunc("GET /games/{id}/watch", handleWatchGame)
	mux.HandleFunc("GET /stats", handleStats)
	mux.HandleFunc("GET /records", handleRecords)
	mux.HandleFunc("GET /status", handleStatus)
	return useMiddleware(mux, loggingMiddleware, corsMiddleware())
}

func corsMiddleware() Middleware {
	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"*"},
	}).Handler
}

func replyWithJSON(w http.ResponseWriter, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("failed to marshal json: ", err)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err = w.Write(payload); err != nil {
		log.Error("failed to send payload: ", err)
	}
}

func handleNewGame(w http.ResponseWriter, r *http.Request) {
	params, err := decodeGameParams(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}
	if !params.Valid() {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("mine count must fit the board"))
		return
	}
	if params.Seed == 0 {
		params.Seed = rand.Uint64()
	}

	entry := games.create(params)
	log.WithField("id", entry.ID).
		Debugf("created %dx%d game", params.Height, params.Width)
	w.WriteHeader(http.StatusCreated)
	replyWithJSON(w, entry.snapshot())
}

func handleFetchGame(w http.ResponseWriter, r *http.Request) {
	entry, ok := games.get(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	replyWithJSON(w, entry.snapshot())
}

func handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := pg.Stats(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	replyWithJSON(w, stats)
}

func handleRecords(w http.ResponseWriter, r *http.Request) {
	records, err := pg.BoardRecords(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	replyWithJSON(w, records)
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
