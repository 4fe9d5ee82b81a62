// Package repo persists the history of solves: one Record per request,
// in MongoDB or in memory.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record matches the lookup.
var ErrNotFound = errors.New("repo: record not found")

// Record is one answered solve request.
type Record struct {
	ID            uuid.UUID `json:"id"`
	Hash          string    `json:"maze_hash"`
	MinCost       int64     `json:"min_cost"`
	TileCount     int       `json:"tile_count"`
	NoRoute       bool      `json:"no_route"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Cached        bool      `json:"cached"`
	CreatedAt     time.Time `json:"created_at"`
	ElapsedMicros int64     `json:"elapsed_us"`
}

// Store is the persistence contract used by the solve service.
type Store interface {
	Save(ctx context.Context, r *Record) error
	ByID(ctx context.Context, id uuid.UUID) (*Record, error)
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]*Record, error)
}
