package maze

// Reachable returns every walkable cell connected to from through
// 4-neighbour moves, from itself included, in BFS order. Heading and turn
// costs play no part; a cell missing from the result cannot lie on any
// route from `from`. Returns nil if from is not walkable.
//
// Time:   O(W·H).
// Memory: O(W·H) for visited flags and output.
func (g *Grid) Reachable(from Cell) []Cell {
	if !g.IsOpen(from) {
		return nil
	}
	seen := make([]bool, g.Size())
	i0 := g.Index(from)
	seen[i0] = true
	queue := []int{i0}

	for qi := 0; qi < len(queue); qi++ {
		u := g.Coordinate(queue[qi])
		for _, d := range neighborOffsets {
			v := u.Add(d[0], d[1])
			if !g.IsOpen(v) {
				continue
			}
			vi := g.Index(v)
			if !seen[vi] {
				seen[vi] = true
				queue = append(queue, vi)
			}
		}
	}

	out := make([]Cell, len(queue))
	for i, idx := range queue {
		out[i] = g.Coordinate(idx)
	}

	return out
}

// Connected reports whether b can be reached from a by 4-neighbour moves.
func (g *Grid) Connected(a, b Cell) bool {
	if !g.IsOpen(b) {
		return false
	}
	for _, c := range g.Reachable(a) {
		if c == b {
			return true
		}
	}

	return false
}
