// Package statespace defines the implicit directed graph searched by the
// solver: nodes are (cell, heading) pairs, edges are "advance" and "rotate".
//
// Overview:
//
//   - Advance: (c, h) → (c+h.Delta(), h), cost StepCost (1). Only valid when
//     the target cell is walkable.
//   - RotateLeft / RotateRight: (c, h) → (c, h∓90°), cost RotateCost (1000).
//     Always valid; turning in place never hits a wall.
//
// Nothing is materialized. Space enumerates successors on demand from the
// underlying *maze.Grid.
//
// States are numbered densely: Index(State) = gridIndex(cell)*4 + heading.
// This lets the solver keep distances in flat slices instead of maps.
//
// Reverse returns the transposed graph (advance edges walked backwards,
// rotations unchanged), used to compute distances *to* a goal.
//
// Complexity:
//
//   - Order:      O(1)
//   - Successors: O(1), at most three edges per state.
package statespace
