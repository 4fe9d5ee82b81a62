// Package dijkstra defines the graph contract, configuration options and
// result types for the shortest-path runner.
package dijkstra

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by Run.
var (
	// ErrNilGraph indicates that a nil Graph was passed to Run.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrNoSource indicates that Run was called without any source node.
	ErrNoSource = errors.New("dijkstra: no source node given")

	// ErrSourceOutOfRange indicates a source index outside [0, Order()).
	ErrSourceOutOfRange = errors.New("dijkstra: source node out of range")

	// ErrOptionViolation indicates an option was given an invalid argument.
	ErrOptionViolation = errors.New("dijkstra: invalid option supplied")

	// ErrNegativeWeight indicates that Successors reported a negative weight.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrNoPathRecorded indicates PathTo was called on a Result computed
	// without WithReturnPath.
	ErrNoPathRecorded = errors.New("dijkstra: predecessors were not recorded")

	// ErrUnreachable indicates PathTo was asked for a node that was not reached.
	ErrUnreachable = errors.New("dijkstra: node not reached")
)

// Unreached is the distance recorded for nodes the search never reached.
const Unreached int64 = math.MaxInt64

// Graph is a directed graph over nodes 0..Order()-1 whose edges are
// enumerated on demand.
type Graph interface {
	// Order returns the number of nodes.
	Order() int
	// Successors calls fn once per edge u→v with its weight w.
	Successors(u int, fn func(v int, w int64))
}

// DistanceMap holds one distance per node, Unreached where unset.
type DistanceMap []int64

// Reached reports whether node i has a finite distance.
func (d DistanceMap) Reached(i int) bool { return d[i] != Unreached }

// Count returns how many nodes have a finite distance.
func (d DistanceMap) Count() int {
	n := 0
	for _, v := range d {
		if v != Unreached {
			n++
		}
	}

	return n
}

// Options configures the behavior of Run.
//
// Sources: nodes seeded at distance 0 (at least one required).
// ReturnPath: if true, Result.Prev is filled for path reconstruction.
// MaxDistance: nodes farther than this are not settled. Default math.MaxInt64.
// OnSettle: called once per settled node with its final distance.
type Options struct {
	Sources     []int
	ReturnPath  bool
	MaxDistance int64
	OnSettle    func(u int, dist int64)

	// err records the first invalid option, surfaced by Run.
	err error
}

// Option represents a functional option for configuring Run.
type Option func(*Options)

// DefaultOptions returns Options with no sources, no predecessor map, no
// distance cap and a no-op OnSettle hook.
func DefaultOptions() Options {
	return Options{
		MaxDistance: math.MaxInt64,
		OnSettle:    func(int, int64) {},
	}
}

// Source adds u to the set of source nodes.
func Source(u int) Option {
	return Sources(u)
}

// Sources adds every given node to the set of source nodes.
func Sources(us ...int) Option {
	return func(o *Options) {
		o.Sources = append(o.Sources, us...)
	}
}

// WithReturnPath enables the predecessor slice in the Result.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance caps exploration: nodes whose distance would exceed max
// are left Unreached. A negative max is recorded as ErrOptionViolation.
func WithMaxDistance(max int64) Option {
	return func(o *Options) {
		if max < 0 {
			o.err = fmt.Errorf("%w: MaxDistance cannot be negative (%d)", ErrOptionViolation, max)
			return
		}
		o.MaxDistance = max
	}
}

// WithOnSettle registers a hook called when a node's distance becomes final.
func WithOnSettle(fn func(u int, dist int64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSettle = fn
		}
	}
}

// Result holds the outcome of one Run.
//
//   - Dist:    distance from the nearest source, Unreached if not reached.
//   - Prev:    predecessor on one shortest path, -1 for sources and
//     unreached nodes. Nil unless WithReturnPath was given.
//   - Settled: number of nodes whose distance was finalized.
type Result struct {
	Dist    DistanceMap
	Prev    []int
	Settled int
}

// PathTo rebuilds one shortest path from a source to v, sources first.
func (r *Result) PathTo(v int) ([]int, error) {
	if r.Prev == nil {
		return nil, ErrNoPathRecorded
	}
	if v < 0 || v >= len(r.Dist) || !r.Dist.Reached(v) {
		return nil, fmt.Errorf("%w: %d", ErrUnreachable, v)
	}
	path := []int{}
	for cur := v; cur >= 0; cur = r.Prev[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
