package api

import (
	"time"

	"github.com/schlac/mazepath/repo"
)

// SolveRequest is the body of POST /solve.
type SolveRequest struct {
	Maze string `json:"maze" binding:"required"`
}

// SolveResponse describes one answered solve.
type SolveResponse struct {
	ID        string    `json:"id"`
	Hash      string    `json:"maze_hash"`
	MinCost   int64     `json:"min_cost"`
	TileCount int       `json:"tile_count"`
	NoRoute   bool      `json:"no_route"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Cached    bool      `json:"cached"`
	CreatedAt time.Time `json:"created_at"`
	ElapsedUS int64     `json:"elapsed_us"`
}

func newSolveResponse(r *repo.Record) SolveResponse {
	return SolveResponse{
		ID:        r.ID.String(),
		Hash:      r.Hash,
		MinCost:   r.MinCost,
		TileCount: r.TileCount,
		NoRoute:   r.NoRoute,
		Width:     r.Width,
		Height:    r.Height,
		Cached:    r.Cached,
		CreatedAt: r.CreatedAt,
		ElapsedUS: r.ElapsedMicros,
	}
}
