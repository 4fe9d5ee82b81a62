package dijkstra

import (
	"container/heap"
	"fmt"
)

// Run computes shortest distances from the configured sources to every node
// of g reachable from them.
//
// Preconditions and validation (in order):
//  1. No option recorded an error (ErrOptionViolation).
//  2. g must be non-nil (ErrNilGraph).
//  3. At least one source (ErrNoSource).
//  4. Every source lies in [0, g.Order()) (ErrSourceOutOfRange).
//
// Negative weights cannot be pre-scanned on an implicit graph; they are
// detected during relaxation and reported as ErrNegativeWeight.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Run(g Graph, opts ...Option) (*Result, error) {
	// 1) Build Options and surface any recorded option error.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	// 2) Validate graph is non-nil.
	if g == nil {
		return nil, ErrNilGraph
	}

	// 3) Validate at least one source.
	if len(cfg.Sources) == 0 {
		return nil, ErrNoSource
	}

	// 4) Validate every source index.
	n := g.Order()
	for _, s := range cfg.Sources {
		if s < 0 || s >= n {
			return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrSourceOutOfRange, s, n)
		}
	}

	// 5) Allocate the arenas. prev is only kept on request.
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make(DistanceMap, n),
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, len(cfg.Sources)),
	}
	if cfg.ReturnPath {
		r.prev = make([]int, n)
	}

	// 6) Seed sources and run the main loop.
	r.init()
	if err := r.process(); err != nil {
		return nil, err
	}

	return &Result{Dist: r.dist, Prev: r.prev, Settled: r.settled}, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       Graph       // read-only input
	options Options     // sources, caps, hooks
	dist    DistanceMap // best known distance per node
	prev    []int       // predecessor per node; nil unless ReturnPath
	visited []bool      // true once a node is settled
	pq      nodePQ      // lazy min-heap
	settled int
	err     error // first relaxation error, checked after each settle
}

// init sets every distance to Unreached and pushes each source at 0.
func (r *runner) init() {
	// 1) dist[v] = ∞, prev[v] = -1.
	for i := range r.dist {
		r.dist[i] = Unreached
		if r.prev != nil {
			r.prev[i] = -1
		}
	}

	// 2) Sources at zero. Duplicates are harmless: the second push is stale.
	heap.Init(&r.pq)
	for _, s := range r.options.Sources {
		if r.dist[s] == 0 {
			continue
		}
		r.dist[s] = 0
		heap.Push(&r.pq, &nodeItem{id: s, dist: 0})
	}
}

// process pops nodes in order of increasing distance and relaxes their
// outgoing edges until the heap is empty or MaxDistance is exceeded.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		// 1) Pop the smallest-distance entry.
		item := heap.Pop(&r.pq).(*nodeItem)
		u, d := item.id, item.dist

		// 2) Skip stale entries.
		if r.visited[u] || d > r.dist[u] {
			continue
		}

		// 3) Beyond the cap nothing further can be settled.
		if d > r.options.MaxDistance {
			break
		}

		// 4) u is final.
		r.visited[u] = true
		r.settled++
		r.options.OnSettle(u, d)

		// 5) Relax u's edges.
		r.relax(u, d)
		if r.err != nil {
			return r.err
		}
	}

	return nil
}

// relax offers d+w to every successor v of u, keeping strictly smaller
// distances only.
func (r *runner) relax(u int, d int64) {
	r.g.Successors(u, func(v int, w int64) {
		if r.err != nil {
			return
		}
		if w < 0 {
			r.err = fmt.Errorf("%w: edge %d→%d weight=%d", ErrNegativeWeight, u, v, w)
			return
		}
		if r.visited[v] {
			return
		}

		nd := d + w
		if nd > r.options.MaxDistance || nd >= r.dist[v] {
			return
		}

		r.dist[v] = nd
		if r.prev != nil {
			r.prev[v] = u
		}
		heap.Push(&r.pq, &nodeItem{id: v, dist: nd})
	})
}

// nodeItem is one heap entry: a node and the distance it was pushed with.
type nodeItem struct {
	id   int
	dist int64
}

// nodePQ is a min-heap of *nodeItem ordered by dist. Outdated entries stay
// in the heap and are dropped when popped.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by distance, then by node index for deterministic ties.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].id < pq[j].id
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x, which must be a *nodeItem.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
