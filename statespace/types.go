// Package statespace declares headings, states, edge kinds and costs.
package statespace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/schlac/mazepath/maze"
)

// Edge costs.
const (
	// StepCost is the cost of advancing one cell.
	StepCost int64 = 1
	// RotateCost is the cost of one 90° rotation in place.
	RotateCost int64 = 1000
)

// Sentinel errors for state-space operations.
var (
	// ErrNilGrid indicates New was called with a nil grid.
	ErrNilGrid = errors.New("statespace: grid is nil")

	// ErrEmptyRoute indicates RouteCost was given no cells.
	ErrEmptyRoute = errors.New("statespace: route has no cells")

	// ErrNotAdjacent indicates two consecutive route cells are not 4-neighbours.
	ErrNotAdjacent = errors.New("statespace: route cells are not adjacent")

	// ErrBadHeading indicates a heading string could not be parsed, or a
	// Heading value lies outside North..West.
	ErrBadHeading = errors.New("statespace: unknown heading")
)

// Heading is one of the four cardinal facings, in clockwise order.
type Heading uint8

const (
	North Heading = iota
	East
	South
	West
)

// NumHeadings is the number of distinct headings.
const NumHeadings = 4

// Headings returns all headings in clockwise order starting at North.
func Headings() [NumHeadings]Heading {
	return [NumHeadings]Heading{North, East, South, West}
}

// headingDelta holds the (dx, dy) unit step for each heading.
var headingDelta = [NumHeadings][2]int{
	North: {0, -1},
	East:  {1, 0},
	South: {0, 1},
	West:  {-1, 0},
}

// Valid reports whether h is one of North, East, South or West.
func (h Heading) Valid() bool { return h < NumHeadings }

// Delta returns the unit step taken when advancing with heading h. An
// invalid heading does not move.
func (h Heading) Delta() (dx, dy int) {
	if !h.Valid() {
		return 0, 0
	}
	d := headingDelta[h]
	return d[0], d[1]
}

// Left returns h rotated 90° counter-clockwise.
func (h Heading) Left() Heading { return (h + NumHeadings - 1) % NumHeadings }

// Right returns h rotated 90° clockwise.
func (h Heading) Right() Heading { return (h + 1) % NumHeadings }

// Opposite returns h rotated 180°.
func (h Heading) Opposite() Heading { return (h + 2) % NumHeadings }

// Turns returns the minimum number of 90° rotations from h to to: 0, 1 or 2.
func (h Heading) Turns(to Heading) int {
	d := (int(to) - int(h) + NumHeadings) % NumHeadings
	if d == 3 {
		return 1
	}

	return d
}

// TurnCost returns the cost of rotating from h to to: 0, 1000 or 2000.
func (h Heading) TurnCost(to Heading) int64 {
	return int64(h.Turns(to)) * RotateCost
}

// Rune returns an arrow for h: '^', '>', 'v' or '<', and '?' when h is
// not valid.
func (h Heading) Rune() rune {
	if !h.Valid() {
		return '?'
	}
	return [NumHeadings]rune{'^', '>', 'v', '<'}[h]
}

// String returns the single-letter name "N", "E", "S" or "W".
func (h Heading) String() string {
	if !h.Valid() {
		return fmt.Sprintf("Heading(%d)", uint8(h))
	}

	return [NumHeadings]string{"N", "E", "S", "W"}[h]
}

// ParseHeading accepts a letter (N/E/S/W), a full name (north, ...) or an
// arrow (^ > v <), case-insensitively.
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north", "^":
		return North, nil
	case "e", "east", ">":
		return East, nil
	case "s", "south", "v":
		return South, nil
	case "w", "west", "<":
		return West, nil
	}

	return North, fmt.Errorf("%w: %q", ErrBadHeading, s)
}

// HeadingBetween returns the heading that advances from a to b. ok is false
// unless b is one of a's 4-neighbours.
func HeadingBetween(a, b maze.Cell) (h Heading, ok bool) {
	for _, h = range Headings() {
		dx, dy := h.Delta()
		if a.Add(dx, dy) == b {
			return h, true
		}
	}

	return North, false
}

// State is a (cell, heading) pair, the node type of the search graph.
type State struct {
	Cell    maze.Cell
	Heading Heading
}

// String formats the state as "(x,y)>" using the heading arrow.
func (s State) String() string {
	return s.Cell.String() + string(s.Heading.Rune())
}

// Advanced returns the state one cell ahead, without any wall check.
func (s State) Advanced() State {
	dx, dy := s.Heading.Delta()
	return State{Cell: s.Cell.Add(dx, dy), Heading: s.Heading}
}

// EdgeKind distinguishes the three edge kinds leaving a state.
type EdgeKind uint8

const (
	Advance EdgeKind = iota
	RotateLeft
	RotateRight
)

// String implements fmt.Stringer.
func (k EdgeKind) String() string {
	switch k {
	case Advance:
		return "advance"
	case RotateLeft:
		return "rotate-left"
	case RotateRight:
		return "rotate-right"
	}

	return fmt.Sprintf("EdgeKind(%d)", uint8(k))
}

// Edge is a materialized view of one transition, for inspection and tests.
type Edge struct {
	Kind     EdgeKind
	From, To State
	Cost     int64
}
