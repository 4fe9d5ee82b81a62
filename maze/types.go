// Package maze defines the cell kinds, coordinates and sentinel errors
// shared by the grid parser and the search packages built on it.
package maze

import (
	"errors"
	"fmt"
)

// Sentinel errors for maze parsing.
var (
	// ErrMalformedMaze is the family of errors for a maze whose shape or
	// content cannot be interpreted. Test with errors.Is.
	ErrMalformedMaze = errors.New("maze: malformed maze")

	// ErrEmptyMaze indicates the input has no rows or no columns.
	ErrEmptyMaze = fmt.Errorf("%w: maze must have at least one row and one column", ErrMalformedMaze)

	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = fmt.Errorf("%w: all rows must have the same length", ErrMalformedMaze)

	// ErrUnknownCell indicates a character outside the maze alphabet.
	ErrUnknownCell = fmt.Errorf("%w: unknown cell character", ErrMalformedMaze)

	// ErrMissingStartOrEnd indicates zero or more than one Start or End marker.
	ErrMissingStartOrEnd = errors.New("maze: exactly one start and one end are required")
)

// CellKind classifies a grid cell. The set is closed: Parse rejects any
// character that does not map to one of these kinds.
type CellKind uint8

const (
	// Wall blocks movement. Out-of-bounds lookups also report Wall.
	Wall CellKind = iota
	// Open is walkable floor.
	Open
	// Start is the unique walkable start cell.
	Start
	// End is the unique walkable goal cell.
	End
)

// Rune returns the character used for k in the text format.
func (k CellKind) Rune() rune {
	switch k {
	case Wall:
		return '#'
	case Open:
		return '.'
	case Start:
		return 'S'
	case End:
		return 'E'
	}
	panic(fmt.Sprintf("maze: invalid cell kind %d", k))
}

// String implements fmt.Stringer.
func (k CellKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Open:
		return "open"
	case Start:
		return "start"
	case End:
		return "end"
	}
	return fmt.Sprintf("CellKind(%d)", k)
}

// Walkable reports whether a cell of kind k can be entered.
func (k CellKind) Walkable() bool {
	return k != Wall
}

// KindOf maps a text character to its CellKind. ok is false for any
// character outside "#.SE".
func KindOf(r rune) (kind CellKind, ok bool) {
	switch r {
	case '#':
		return Wall, true
	case '.':
		return Open, true
	case 'S':
		return Start, true
	case 'E':
		return End, true
	}
	return Wall, false
}

// Cell is an integer grid coordinate. X grows east, Y grows south.
// Cells are plain values and compare with ==.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// String formats the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// neighborOffsets lists the 4-neighbourhood in N, E, S, W order.
var neighborOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Grid is an immutable rectangular maze. It is safe for concurrent readers.
// kinds holds the cells in row-major order: kinds[y*width+x].
type Grid struct {
	width, height int
	kinds         []CellKind
	start, end    Cell
}
