package maze

import "strings"

// String renders g back to its text form, one row per line, without a
// trailing newline.
func (g *Grid) String() string {
	return g.Render(nil)
}

// Render draws g with marks overlaid: a cell present in marks is printed
// with the mapped rune instead of its kind. Start and End are never
// overwritten so the markers stay visible.
func (g *Grid) Render(marks map[Cell]rune) string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			c := Cell{X: x, Y: y}
			kind := g.kinds[y*g.width+x]
			if r, ok := marks[c]; ok && kind != Start && kind != End {
				b.WriteRune(r)
				continue
			}
			b.WriteRune(kind.Rune())
		}
	}

	return b.String()
}
