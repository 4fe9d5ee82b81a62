// Package maze provides the immutable Grid built from maze text.
//
// Cells outside the grid are reported as Wall; callers can probe any
// coordinate without a bounds check of their own.
package maze

import (
	"fmt"
	"strings"
)

// Parse builds a Grid from text. Every line is one row; a single trailing
// newline is ignored and "\r\n" line endings are accepted.
//
// Validation (in order):
//  1. At least one non-empty row (ErrEmptyMaze).
//  2. All rows have the same length (ErrNonRectangular).
//  3. Every character is one of "#.SE" (ErrUnknownCell).
//  4. Exactly one 'S' and one 'E' (ErrMissingStartOrEnd).
//
// Complexity: O(W×H) time and memory.
func Parse(text string) (*Grid, error) {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, ErrEmptyMaze
	}
	lines := strings.Split(text, "\n")

	// 1) Determine width from the first row.
	rows := make([][]rune, len(lines))
	for y, line := range lines {
		rows[y] = []rune(strings.TrimSuffix(line, "\r"))
	}
	w, h := len(rows[0]), len(rows)
	if w == 0 {
		return nil, ErrEmptyMaze
	}

	g := &Grid{
		width:  w,
		height: h,
		kinds:  make([]CellKind, w*h),
	}

	// 2) Classify every cell, counting start and end markers.
	var starts, ends int
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, y, len(row), w)
		}
		for x, r := range row {
			kind, ok := KindOf(r)
			if !ok {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownCell, r, x, y)
			}
			g.kinds[y*w+x] = kind
			switch kind {
			case Start:
				starts++
				g.start = Cell{X: x, Y: y}
			case End:
				ends++
				g.end = Cell{X: x, Y: y}
			case Wall, Open:
			}
		}
	}

	// 3) Exactly one of each marker.
	if starts != 1 || ends != 1 {
		return nil, fmt.Errorf("%w: found %d start and %d end markers", ErrMissingStartOrEnd, starts, ends)
	}

	return g, nil
}

// MustParse is like Parse but panics on error. Intended for fixtures.
func MustParse(text string) *Grid {
	g, err := Parse(text)
	if err != nil {
		panic(err)
	}

	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Start returns the unique start cell.
func (g *Grid) Start() Cell { return g.start }

// End returns the unique end cell.
func (g *Grid) End() Cell { return g.end }

// InBounds reports whether c lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// KindAt returns the kind of cell c, or Wall if c is out of bounds.
// Complexity: O(1).
func (g *Grid) KindAt(c Cell) CellKind {
	if !g.InBounds(c) {
		return Wall
	}

	return g.kinds[c.Y*g.width+c.X]
}

// IsOpen reports whether c is inside the grid and walkable.
func (g *Grid) IsOpen(c Cell) bool {
	return g.KindAt(c).Walkable()
}

// Neighbors returns the walkable 4-neighbours of c in N, E, S, W order.
// Complexity: O(1).
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := c.Add(d[0], d[1])
		if g.IsOpen(n) {
			out = append(out, n)
		}
	}

	return out
}

// Index maps c to its row-major index y*Width + x.
// It panics if c is out of bounds: callers index arenas with the result.
func (g *Grid) Index(c Cell) int {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("maze: cell %v out of bounds %dx%d", c, g.width, g.height))
	}

	return c.Y*g.width + c.X
}

// Coordinate converts a row-major index back to a Cell.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Cell {
	return Cell{X: idx % g.width, Y: idx / g.width}
}

// Size returns the number of cells, W×H.
func (g *Grid) Size() int { return g.width * g.height }

// OpenCells counts the walkable cells, start and end included.
func (g *Grid) OpenCells() int {
	n := 0
	for _, k := range g.kinds {
		if k.Walkable() {
			n++
		}
	}

	return n
}
