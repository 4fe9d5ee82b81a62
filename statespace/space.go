package statespace

import (
	"fmt"

	"github.com/schlac/mazepath/maze"
)

// Space is the forward state graph over a grid. It holds no per-search
// state and may be shared by concurrent searches.
type Space struct {
	grid *maze.Grid
}

// New returns the state space of g.
func New(g *maze.Grid) (*Space, error) {
	if g == nil {
		return nil, ErrNilGrid
	}

	return &Space{grid: g}, nil
}

// Grid returns the underlying grid.
func (sp *Space) Grid() *maze.Grid { return sp.grid }

// Order returns the number of state indices, 4×W×H. Wall states are
// counted but have no edges.
func (sp *Space) Order() int {
	return sp.grid.Size() * NumHeadings
}

// Index maps s to its dense index. It panics if s.Cell is out of bounds
// or s.Heading is not valid.
func (sp *Space) Index(s State) int {
	if !s.Heading.Valid() {
		panic(fmt.Sprintf("statespace: index of %v: %v", s.Cell, s.Heading))
	}
	return sp.grid.Index(s.Cell)*NumHeadings + int(s.Heading)
}

// State is the inverse of Index.
func (sp *Space) State(i int) State {
	return State{
		Cell:    sp.grid.Coordinate(i / NumHeadings),
		Heading: Heading(i % NumHeadings),
	}
}

// Contains reports whether s names a walkable cell of the grid.
func (sp *Space) Contains(s State) bool {
	return s.Heading.Valid() && sp.grid.IsOpen(s.Cell)
}

// Successors calls fn for every edge leaving state u: the advance edge
// first (when the cell ahead is walkable), then rotate-left and
// rotate-right. States on walls have no edges.
func (sp *Space) Successors(u int, fn func(v int, w int64)) {
	s := sp.State(u)
	if !sp.grid.IsOpen(s.Cell) {
		return
	}
	if next := s.Advanced(); sp.grid.IsOpen(next.Cell) {
		fn(sp.Index(next), StepCost)
	}
	fn(sp.Index(State{Cell: s.Cell, Heading: s.Heading.Left()}), RotateCost)
	fn(sp.Index(State{Cell: s.Cell, Heading: s.Heading.Right()}), RotateCost)
}

// Edges returns the edges leaving s, in the same order as Successors.
func (sp *Space) Edges(s State) []Edge {
	if !sp.Contains(s) {
		return nil
	}
	out := make([]Edge, 0, 3)
	if next := s.Advanced(); sp.grid.IsOpen(next.Cell) {
		out = append(out, Edge{Kind: Advance, From: s, To: next, Cost: StepCost})
	}
	out = append(out,
		Edge{Kind: RotateLeft, From: s, To: State{Cell: s.Cell, Heading: s.Heading.Left()}, Cost: RotateCost},
		Edge{Kind: RotateRight, From: s, To: State{Cell: s.Cell, Heading: s.Heading.Right()}, Cost: RotateCost},
	)

	return out
}

// Reverse returns the transpose of sp: an edge u→v of sp appears as v→u.
func (sp *Space) Reverse() *Reversed {
	return &Reversed{sp: sp}
}

// Reversed is the transposed state graph. Distances computed over it from a
// set of goal states are distances *to* those goals in the forward graph.
type Reversed struct {
	sp *Space
}

// Order matches the forward space.
func (r *Reversed) Order() int { return r.sp.Order() }

// Space returns the forward space this view transposes.
func (r *Reversed) Space() *Space { return r.sp }

// Successors calls fn for every edge entering state u in the forward graph:
// the state one cell behind with the same heading (if walkable), then the
// two rotations, which are their own inverses.
func (r *Reversed) Successors(u int, fn func(v int, w int64)) {
	sp := r.sp
	s := sp.State(u)
	if !sp.grid.IsOpen(s.Cell) {
		return
	}
	dx, dy := s.Heading.Delta()
	if prev := s.Cell.Add(-dx, -dy); sp.grid.IsOpen(prev) {
		fn(sp.Index(State{Cell: prev, Heading: s.Heading}), StepCost)
	}
	fn(sp.Index(State{Cell: s.Cell, Heading: s.Heading.Left()}), RotateCost)
	fn(sp.Index(State{Cell: s.Cell, Heading: s.Heading.Right()}), RotateCost)
}

// RouteCost prices a route given as a sequence of adjacent cells, starting
// at start.Cell facing start.Heading. Each step costs StepCost plus the
// rotations needed to face it, so a route with k steps and t quarter turns
// costs k + 1000t. The route's final heading is returned alongside.
func RouteCost(start State, cells []maze.Cell) (int64, Heading, error) {
	if !start.Heading.Valid() {
		return 0, start.Heading, fmt.Errorf("%w: %v", ErrBadHeading, start.Heading)
	}
	if len(cells) == 0 {
		return 0, start.Heading, ErrEmptyRoute
	}
	if cells[0] != start.Cell {
		return 0, start.Heading, fmt.Errorf("%w: route starts at %v, state at %v", ErrNotAdjacent, cells[0], start.Cell)
	}

	var cost int64
	h := start.Heading
	for i := 1; i < len(cells); i++ {
		next, ok := HeadingBetween(cells[i-1], cells[i])
		if !ok {
			return 0, h, fmt.Errorf("%w: %v → %v", ErrNotAdjacent, cells[i-1], cells[i])
		}
		cost += h.TurnCost(next) + StepCost
		h = next
	}

	return cost, h, nil
}
