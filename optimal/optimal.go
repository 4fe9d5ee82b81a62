package optimal

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/schlac/mazepath/dijkstra"
	"github.com/schlac/mazepath/maze"
	"github.com/schlac/mazepath/statespace"
)

// SolveText parses text and solves the resulting maze.
func SolveText(text string, opts ...Option) (*Result, error) {
	g, err := maze.Parse(text)
	if err != nil {
		return nil, err
	}

	return Solve(g, opts...)
}

// Solve finds the minimum route cost from Start to End of g and the set of
// tiles on any minimum-cost route.
//
// Steps:
//  0. Reject options that recorded an error (ErrOptionViolation).
//  1. Fail fast with ErrNoRoute if End is not connected to Start.
//  2. Forward pass from (Start, StartHeading), predecessors kept.
//  3. MinCost = min over the four End headings.
//  4. Backward pass over the transposed graph from all four End states.
//  5. Collect every open state with fwd+bwd == MinCost, project to cells.
func Solve(g *maze.Grid, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	sp, err := statespace.New(g)
	if err != nil {
		return nil, err
	}

	// 1) Connectivity ignores heading, so a miss here is final.
	if !g.Connected(g.Start(), g.End()) {
		return nil, fmt.Errorf("%w: %v → %v", ErrNoRoute, g.Start(), g.End())
	}

	// 2) Forward pass.
	start := statespace.State{Cell: g.Start(), Heading: cfg.StartHeading}
	fwd, err := dijkstra.Run(sp,
		dijkstra.Source(sp.Index(start)),
		dijkstra.WithReturnPath(),
		dijkstra.WithOnSettle(settleHook(sp, Forward, cfg.Trace)),
	)
	if err != nil {
		return nil, fmt.Errorf("optimal: forward pass: %w", err)
	}

	// 3) Best cost over all arrival headings.
	minCost := dijkstra.Unreached
	ends := make([]int, 0, statespace.NumHeadings)
	for _, h := range statespace.Headings() {
		i := sp.Index(statespace.State{Cell: g.End(), Heading: h})
		ends = append(ends, i)
		if fwd.Dist[i] < minCost {
			minCost = fwd.Dist[i]
		}
	}
	if minCost == dijkstra.Unreached {
		return nil, fmt.Errorf("%w: %v → %v", ErrNoRoute, g.Start(), g.End())
	}

	// 4) Backward pass, one multi-seed run.
	bwd, err := dijkstra.Run(sp.Reverse(),
		dijkstra.Sources(ends...),
		dijkstra.WithMaxDistance(minCost),
		dijkstra.WithOnSettle(settleHook(sp, Backward, cfg.Trace)),
	)
	if err != nil {
		return nil, fmt.Errorf("optimal: backward pass: %w", err)
	}

	res := &Result{
		MinCost:  minCost,
		Tiles:    mapset.New[maze.Cell](),
		Start:    start,
		Forward:  fwd.Dist,
		Backward: bwd.Dist,
		Space:    sp,
		Settled:  fwd.Settled + bwd.Settled,
		prev:     fwd.Prev,
	}
	for _, h := range statespace.Headings() {
		if fwd.Dist[ends[h]] == minCost {
			res.EndHeadings = append(res.EndHeadings, h)
		}
	}

	// 5) Join.
	for i := range fwd.Dist {
		f, b := fwd.Dist[i], bwd.Dist[i]
		if f == dijkstra.Unreached || b == dijkstra.Unreached {
			continue
		}
		if f+b == minCost {
			res.Tiles.Put(sp.State(i).Cell)
		}
	}
	res.TileCount = res.Tiles.Size()

	return res, nil
}

// BestPath returns one minimum-cost state sequence from the start state to
// End, arriving in EndHeadings[0]. Consecutive states differ by exactly one
// move: an advance or a quarter turn.
func (r *Result) BestPath() ([]statespace.State, error) {
	if len(r.EndHeadings) == 0 {
		return nil, ErrNoRoute
	}
	end := statespace.State{Cell: r.Space.Grid().End(), Heading: r.EndHeadings[0]}
	fr := dijkstra.Result{Dist: r.Forward, Prev: r.prev}
	idx, err := fr.PathTo(r.Space.Index(end))
	if err != nil {
		return nil, fmt.Errorf("optimal: rebuilding path: %w", err)
	}
	out := make([]statespace.State, len(idx))
	for i, u := range idx {
		out[i] = r.Space.State(u)
	}

	return out, nil
}

// Cells projects a state sequence to the cells it visits, dropping the
// repeats produced by in-place turns.
func Cells(states []statespace.State) []maze.Cell {
	out := make([]maze.Cell, 0, len(states))
	for _, s := range states {
		if n := len(out); n > 0 && out[n-1] == s.Cell {
			continue
		}
		out = append(out, s.Cell)
	}

	return out
}

func settleHook(sp *statespace.Space, p Pass, trace func(Pass, statespace.State, int64)) func(int, int64) {
	if trace == nil {
		return nil
	}
	return func(u int, d int64) {
		trace(p, sp.State(u), d)
	}
}
