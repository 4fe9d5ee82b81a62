package optimal

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/schlac/mazepath/dijkstra"
	"github.com/schlac/mazepath/maze"
	"github.com/schlac/mazepath/statespace"
)

// Sentinel errors returned by Solve.
var (
	// ErrNoRoute is returned when no route connects Start to End.
	ErrNoRoute = errors.New("optimal: end is not reachable from start")

	// ErrOptionViolation indicates an option was given an invalid argument.
	ErrOptionViolation = errors.New("optimal: invalid option supplied")
)

// Pass names the search a trace event belongs to.
type Pass uint8

const (
	// Forward is the search from the start state.
	Forward Pass = iota
	// Backward is the search over the transposed graph from the end states.
	Backward
)

// String implements fmt.Stringer.
func (p Pass) String() string {
	if p == Forward {
		return "forward"
	}
	return "backward"
}

// Options configures Solve.
type Options struct {
	StartHeading statespace.Heading
	Trace        func(p Pass, s statespace.State, dist int64)

	// err records the first invalid option, surfaced by Solve.
	err error
}

// Option is a functional option for Solve.
type Option func(*Options)

// DefaultOptions starts facing East with no trace hook.
func DefaultOptions() Options {
	return Options{StartHeading: statespace.East}
}

// WithStartHeading overrides the initial heading at Start. A heading
// outside North..West is recorded as ErrOptionViolation.
func WithStartHeading(h statespace.Heading) Option {
	return func(o *Options) {
		if !h.Valid() {
			if o.err == nil {
				o.err = fmt.Errorf("%w: start heading %v: %w", ErrOptionViolation, h, statespace.ErrBadHeading)
			}
			return
		}
		o.StartHeading = h
	}
}

// WithTrace registers fn to observe every settled state of both passes.
func WithTrace(fn func(p Pass, s statespace.State, dist int64)) Option {
	return func(o *Options) {
		o.Trace = fn
	}
}

// TileSet is the set of cells on at least one optimal route.
type TileSet = mapset.Set[maze.Cell]

// Result is the outcome of Solve. The distance maps are owned by the
// caller; nothing else holds them.
type Result struct {
	MinCost     int64
	TileCount   int
	Tiles       TileSet
	EndHeadings []statespace.Heading // headings in which End is reached at MinCost
	Start       statespace.State

	Forward  dijkstra.DistanceMap
	Backward dijkstra.DistanceMap
	Space    *statespace.Space

	// Settled counts states finalized across both passes.
	Settled int

	prev []int
}

// OnOptimalPath reports whether s lies on some minimum-cost route.
func (r *Result) OnOptimalPath(s statespace.State) bool {
	if !r.Space.Contains(s) {
		return false
	}
	i := r.Space.Index(s)
	f, b := r.Forward[i], r.Backward[i]
	if f == dijkstra.Unreached || b == dijkstra.Unreached {
		return false
	}

	return f+b == r.MinCost
}

// SortedTiles returns Tiles ordered by row, then column.
func (r *Result) SortedTiles() []maze.Cell {
	out := make([]maze.Cell, 0, r.Tiles.Size())
	r.Tiles.Each(func(c maze.Cell) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})

	return out
}
