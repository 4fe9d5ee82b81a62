// Package optimal joins a forward and a backward shortest-path pass over a
// maze's state space to find the minimum route cost from Start to End and
// every tile that lies on at least one minimum-cost route.
//
// A state s = (cell, heading) is on an optimal route iff
//
//	fwd[s] + bwd[s] == MinCost
//
// where fwd is the cost from (Start, East) to s and bwd is the cost from s
// to End under any final heading. The backward pass runs once, seeded from
// all four End states, over the transposed state graph.
//
// Error handling:
//
//   - maze errors from Parse are returned unchanged (SolveText only).
//   - ErrNoRoute: End cannot be reached. This is a normal outcome, not a bug.
//
// Complexity: two Dijkstra runs over 4·W·H states, O(W·H·log(W·H)).
package optimal
