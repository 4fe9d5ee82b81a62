// Package dijkstra implements Dijkstra's shortest-path algorithm over
// implicit, densely numbered graphs with non-negative edge weights.
//
// Overview:
//
//   - A Graph exposes only Order() and Successors(u, fn); edges are produced
//     on demand, so a search never materializes an adjacency list.
//   - Run computes the minimum-cost distance from a set of source nodes (all
//     seeded at cost 0) to every reachable node, using a min-heap (priority
//     queue) and a "lazy decrease-key" strategy.
//   - A node is settled the first time it is popped; its recorded distance is
//     then final. Relaxation only accepts strictly lower costs.
//
// Key features:
//
//   - Multi-source: pass Source(...) repeatedly or Sources(...). A backward
//     search seeded from every goal state is one call.
//   - WithReturnPath: keep a predecessor slice so one shortest path to any
//     node can be rebuilt with Result.PathTo.
//   - WithMaxDistance: stop once the cheapest frontier node exceeds a cap.
//   - WithOnSettle: observe every settled node (tracing, statistics).
//
// Performance and complexity:
//
//   - Time:  O((V + E) log V). Each node is settled at most once; each
//     relaxation may push one heap entry.
//   - Space: O(V) for the distance/predecessor slices, O(E) worst case for
//     stale heap entries.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph:         Run was given a nil Graph.
//   - ErrNoSource:         no Source option was supplied.
//   - ErrSourceOutOfRange: a source index is outside [0, Order()).
//   - ErrOptionViolation:  an option was given an invalid argument.
//   - ErrNegativeWeight:   Successors produced a negative weight.
//
// Thread safety:
//
//   - Each Run owns its heap, distances and predecessors. The Graph is only
//     read, so one Graph may serve concurrent Runs if its Successors is
//     itself safe for concurrent use.
package dijkstra
