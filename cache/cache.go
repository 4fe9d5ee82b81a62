// Package cache stores finished solves keyed by the hash of the normalized
// maze text, and serializes concurrent solves of the same maze.
//
// Two backends are provided: Memory for a single process and Redis for a
// fleet of mazepathd instances sharing one Redis server.
package cache

import (
	"context"
	"errors"
)

// ErrLockFailed is returned when a per-maze lock cannot be acquired.
var ErrLockFailed = errors.New("cache: could not acquire lock")

// Solution is the cached outcome of one solve.
type Solution struct {
	MinCost   int64 `json:"min_cost"`
	TileCount int   `json:"tile_count"`
	NoRoute   bool  `json:"no_route"`
	Width     int   `json:"width"`
	Height    int   `json:"height"`
}

// Cache maps maze hashes to solutions.
type Cache interface {
	// Get returns the cached solution and true, or false on a miss.
	Get(ctx context.Context, hash string) (Solution, bool, error)
	// Set stores s under hash, replacing any previous value.
	Set(ctx context.Context, hash string, s Solution) error
}

// Locker hands out one exclusive lock per maze hash.
type Locker interface {
	// Lock blocks until the lock for hash is held or ctx is done. The
	// returned func releases it.
	Lock(ctx context.Context, hash string) (unlock func() error, err error)
}

// Backend is a cache that also provides per-hash locking.
type Backend interface {
	Cache
	Locker
}
