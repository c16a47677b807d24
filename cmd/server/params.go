package main

import "github.com/gorilla/schema"

type GameParams struct {
	Height    int    `schema:"height,required" json:"height"`
	Width     int    `schema:"width,required" json:"width"`
	MineCount int    `schema:"mines,required" json:"mines"`
	Seed      uint64 `schema:"seed" json:"seed"`
}

func (p GameParams) Valid() bool {
	return p.Height > 0 && p.Width > 0 &&
		p.MineCount >= 0 && p.MineCount <= p.Height*p.Width
}

func decodeGameParams(src map[string][]string) (GameParams, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var dto GameParams
	err := dec.Decode(&dto, src)
	return dto, err
}
