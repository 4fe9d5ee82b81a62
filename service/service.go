// Package service answers solve requests: it normalizes the maze text,
// reuses cached answers, solves on a miss and records every request.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/schlac/mazepath/cache"
	"github.com/schlac/mazepath/maze"
	"github.com/schlac/mazepath/optimal"
	"github.com/schlac/mazepath/repo"
)

// Sentinel errors returned to the transport layer.
var (
	// ErrMazeTooLarge indicates the request exceeds the configured size.
	ErrMazeTooLarge = errors.New("service: maze exceeds size limit")
	// ErrInvalidID indicates a record id that is not a UUID.
	ErrInvalidID = errors.New("service: invalid record id")
)

// Solver is the contract the HTTP layer depends on.
type Solver interface {
	Solve(ctx context.Context, text string) (*repo.Record, error)
	ByID(ctx context.Context, id string) (*repo.Record, error)
	Recent(ctx context.Context, limit int) ([]*repo.Record, error)
}

// Config holds the dependencies of a SolveService.
type Config struct {
	Backend      cache.Backend
	Store        repo.Store
	Logger       *logrus.Logger
	MaxMazeBytes int
}

// SolveService implements Solver.
type SolveService struct {
	backend  cache.Backend
	store    repo.Store
	log      *logrus.Logger
	maxBytes int
	now      func() time.Time
}

// New builds a SolveService. A nil Backend or Store falls back to the
// in-memory implementations.
func New(cfg Config) *SolveService {
	s := &SolveService{
		backend:  cfg.Backend,
		store:    cfg.Store,
		log:      cfg.Logger,
		maxBytes: cfg.MaxMazeBytes,
		now:      time.Now,
	}
	if s.backend == nil {
		s.backend = cache.NewMemory(0)
	}
	if s.store == nil {
		s.store = repo.NewMemoryStore()
	}
	if s.log == nil {
		s.log = logrus.New()
	}

	return s
}

// Solve answers one request.
//
// Steps:
//  1. Reject text above the size limit (ErrMazeTooLarge).
//  2. Normalize and hash the maze.
//  3. Serve a cache hit directly.
//  4. On a miss, take the per-hash lock, re-check, solve and cache.
//  5. Persist a Record for the request.
//
// Malformed mazes are returned as maze errors and never cached. A maze
// without a route is a normal answer with NoRoute set.
func (s *SolveService) Solve(ctx context.Context, text string) (*repo.Record, error) {
	started := s.now()

	// 1) Size limit.
	if s.maxBytes > 0 && len(text) > s.maxBytes {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrMazeTooLarge, len(text), s.maxBytes)
	}

	// 2) Canonical form and its hash.
	norm, err := maze.Normalize(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	hash := Hash(norm)
	log := s.log.WithFields(logrus.Fields{"maze_hash": hash[:12]})

	// 3) Fast path.
	sol, hit, err := s.backend.Get(ctx, hash)
	if err != nil {
		log.WithError(err).Warn("cache lookup failed")
	}

	// 4) Slow path under the lock.
	if !hit {
		sol, hit, err = s.solveLocked(ctx, hash, norm, log)
		if err != nil {
			return nil, err
		}
	}

	// 5) Record.
	rec := &repo.Record{
		ID:            uuid.New(),
		Hash:          hash,
		MinCost:       sol.MinCost,
		TileCount:     sol.TileCount,
		NoRoute:       sol.NoRoute,
		Width:         sol.Width,
		Height:        sol.Height,
		Cached:        hit,
		CreatedAt:     started.UTC(),
		ElapsedMicros: s.now().Sub(started).Microseconds(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	log.WithFields(logrus.Fields{
		"solve_id": rec.ID,
		"min_cost": rec.MinCost,
		"tiles":    rec.TileCount,
		"no_route": rec.NoRoute,
		"cached":   rec.Cached,
		"elapsed":  time.Duration(rec.ElapsedMicros) * time.Microsecond,
	}).Info("solve answered")

	return rec, nil
}

// solveLocked solves norm while holding the lock for hash. The returned
// bool reports whether another holder had already cached the answer. A
// backend that cannot lock is logged and skipped unless ctx is done.
func (s *SolveService) solveLocked(ctx context.Context, hash, norm string, log *logrus.Entry) (cache.Solution, bool, error) {
	unlock, err := s.backend.Lock(ctx, hash)
	if err != nil {
		if ctx.Err() != nil {
			return cache.Solution{}, false, fmt.Errorf("service: %w", err)
		}
		// The lock only dedupes work; like a failed Get, it degrades.
		log.WithError(err).Warn("solve lock unavailable, solving unlocked")
		unlock = func() error { return nil }
	}
	defer func() {
		if err := unlock(); err != nil {
			log.WithError(err).Warn("releasing solve lock")
		}
	}()

	if sol, ok, err := s.backend.Get(ctx, hash); err == nil && ok {
		return sol, true, nil
	}

	g, err := maze.Parse(norm)
	if err != nil {
		return cache.Solution{}, false, err
	}

	sol := cache.Solution{Width: g.Width(), Height: g.Height()}
	res, err := optimal.Solve(g)
	switch {
	case errors.Is(err, optimal.ErrNoRoute):
		sol.NoRoute = true
	case err != nil:
		return cache.Solution{}, false, fmt.Errorf("service: %w", err)
	default:
		sol.MinCost = res.MinCost
		sol.TileCount = res.TileCount
		log.WithField("settled", res.Settled).Debug("solved")
	}

	if err := s.backend.Set(ctx, hash, sol); err != nil {
		log.WithError(err).Warn("cache store failed")
	}

	return sol, false, nil
}

// ByID returns a stored record.
func (s *SolveService) ByID(ctx context.Context, id string) (*repo.Record, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	return s.store.ByID(ctx, uid)
}

// Recent returns up to limit records, newest first.
func (s *SolveService) Recent(ctx context.Context, limit int) ([]*repo.Record, error) {
	return s.store.Recent(ctx, limit)
}

// Hash returns the hex sha256 of normalized maze text.
func Hash(norm string) string {
	sum := sha256.Sum256([]byte(norm))
	return hex.EncodeToString(sum[:])
}
