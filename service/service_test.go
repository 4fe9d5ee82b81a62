package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/schlac/mazepath/cache"
	"github.com/schlac/mazepath/logging"
	"github.com/schlac/mazepath/maze"
	"github.com/schlac/mazepath/repo"
	"github.com/schlac/mazepath/service"
)

const mazeTest = `
###############
#.......#....E#
#.#.###.#.###.#
#.....#.#...#.#
#.###.#####.#.#
#.#.#.......#.#
#.#.#####.###.#
#...........#.#
###.#.#####.#.#
#...#.....#.#.#
#.#.#.###.#.#.#
#.....#...#.#.#
#.###.#.#.#.#.#
#S..#.....#...#
###############
`

// countingBackend counts Set calls on top of a Memory backend.
type countingBackend struct {
	*cache.Memory
	sets int32
}

func (c *countingBackend) Set(ctx context.Context, hash string, s cache.Solution) error {
	atomic.AddInt32(&c.sets, 1)
	return c.Memory.Set(ctx, hash, s)
}

// unlockableBackend is a Memory backend whose Lock always fails.
type unlockableBackend struct {
	*cache.Memory
}

func (unlockableBackend) Lock(context.Context, string) (func() error, error) {
	return nil, cache.ErrLockFailed
}

type SolveServiceSuite struct {
	suite.Suite
	backend *countingBackend
	store   *repo.MemoryStore
	svc     *service.SolveService
}

func (s *SolveServiceSuite) SetupTest() {
	s.backend = &countingBackend{Memory: cache.NewMemory(0)}
	s.store = repo.NewMemoryStore()
	s.svc = service.New(service.Config{
		Backend:      s.backend,
		Store:        s.store,
		Logger:       logging.Discard(),
		MaxMazeBytes: 4096,
	})
}

func (s *SolveServiceSuite) TestSolveAndCache() {
	ctx := context.Background()
	first, err := s.svc.Solve(ctx, mazeTest)
	s.Require().NoError(err)
	s.Require().Equal(int64(7036), first.MinCost)
	s.Require().Equal(45, first.TileCount)
	s.Require().Equal(15, first.Width)
	s.Require().False(first.Cached)

	// Same maze with different blank lines and trailing spaces.
	again, err := s.svc.Solve(ctx, strings.ReplaceAll(mazeTest, "\n", "  \n\n"))
	s.Require().NoError(err)
	s.Require().True(again.Cached)
	s.Require().Equal(first.Hash, again.Hash)
	s.Require().Equal(first.MinCost, again.MinCost)
	s.Require().NotEqual(first.ID, again.ID)
	s.Require().Equal(int32(1), atomic.LoadInt32(&s.backend.sets))

	recent, err := s.svc.Recent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
}

func (s *SolveServiceSuite) TestByID() {
	ctx := context.Background()
	rec, err := s.svc.Solve(ctx, "###\n#E#\n#S#\n###")
	s.Require().NoError(err)
	s.Require().Equal(int64(1001), rec.MinCost)

	got, err := s.svc.ByID(ctx, rec.ID.String())
	s.Require().NoError(err)
	s.Require().Equal(rec.ID, got.ID)

	_, err = s.svc.ByID(ctx, "nope")
	s.Require().ErrorIs(err, service.ErrInvalidID)

	_, err = s.svc.ByID(ctx, "5f1c1d1e-0000-4000-8000-000000000000")
	s.Require().ErrorIs(err, repo.ErrNotFound)
}

func (s *SolveServiceSuite) TestNoRoute() {
	rec, err := s.svc.Solve(context.Background(), "#####\n#S#E#\n#####")
	s.Require().NoError(err)
	s.Require().True(rec.NoRoute)
	s.Require().Zero(rec.TileCount)
}

func (s *SolveServiceSuite) TestRejects() {
	ctx := context.Background()
	cases := []struct {
		name string
		text string
		want error
	}{
		{"Ragged", "####\n#SE\n####", maze.ErrMalformedMaze},
		{"NoStart", "###\n#E#\n###", maze.ErrMissingStartOrEnd},
		{"Empty", "\n\n", maze.ErrEmptyMaze},
		{"TooLarge", strings.Repeat("#", 5000), service.ErrMazeTooLarge},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.svc.Solve(ctx, tc.text)
			s.Require().True(errors.Is(err, tc.want), "got %v", err)
		})
	}
	s.Require().Zero(s.backend.Len(), "errors are never cached")
}

func (s *SolveServiceSuite) TestConcurrentSolvesShareWork() {
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := s.svc.Solve(ctx, mazeTest)
			s.NoError(err)
			if rec != nil {
				s.Equal(int64(7036), rec.MinCost)
			}
		}()
	}
	wg.Wait()
	s.Require().Equal(int32(1), atomic.LoadInt32(&s.backend.sets))
}

func (s *SolveServiceSuite) TestLockFailureDegrades() {
	backend := unlockableBackend{Memory: cache.NewMemory(0)}
	svc := service.New(service.Config{
		Backend: backend,
		Store:   s.store,
		Logger:  logging.Discard(),
	})

	rec, err := svc.Solve(context.Background(), mazeTest)
	s.Require().NoError(err)
	s.Require().Equal(int64(7036), rec.MinCost)
	s.Require().Equal(45, rec.TileCount)
	s.Require().Equal(1, backend.Len(), "the answer is still cached")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Solve(ctx, "#####\n#S.E#\n#####")
	s.Require().ErrorIs(err, cache.ErrLockFailed)
}

func TestSolveServiceSuite(t *testing.T) {
	suite.Run(t, new(SolveServiceSuite))
}

func TestHash_Stable(t *testing.T) {
	a, b := service.Hash("#S.E#"), service.Hash("#S.E#")
	if a != b || len(a) != 64 {
		t.Fatalf("unstable hash %q %q", a, b)
	}
}
