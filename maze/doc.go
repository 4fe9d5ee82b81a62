// Package maze parses a character maze into an immutable grid and answers
// point queries against it.
//
// What:
//
//   - Grid wraps a rectangular block of cells, each one of the closed set of
//     kinds Wall ('#'), Open ('.'), Start ('S') and End ('E').
//   - Exactly one Start and one End must be present.
//   - Lookups outside the grid report Wall, so searches never special-case
//     the border.
//   - Reachable floods the open cells connected to a given cell (heading is
//     ignored) and is used as a cheap connectivity pre-check.
//
// Complexity:
//
//   - Parse:     O(W×H) time and memory.
//   - KindAt:    O(1).
//   - Reachable: O(W×H) time and memory.
//
// Errors:
//
//   - ErrMalformedMaze:     family sentinel for every shape/content problem.
//   - ErrEmptyMaze:         no rows or no columns (wraps ErrMalformedMaze).
//   - ErrNonRectangular:    rows of differing lengths (wraps ErrMalformedMaze).
//   - ErrUnknownCell:       a rune outside "#.SE" (wraps ErrMalformedMaze).
//   - ErrMissingStartOrEnd: zero or several 'S' or 'E' markers.
//
// Example:
//
//	g, err := maze.Parse("####\n#.E#\n#S.#\n####")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(g.Start(), g.End()) // (1,2) (2,1)
package maze
