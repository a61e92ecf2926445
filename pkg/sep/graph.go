// Package sep implements a multilevel 2-way edge separator: coarsening,
// initial partitioning, Fiduccia-Mattheyses refinement and quadratic
// programming refinement over a CSC sparse graph.
package sep

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Graph is a CSC-form undirected weighted graph with mutable matching and
// partition state attached, per spec §3. A Graph is owned by exactly one
// level of the multilevel stack at a time; nothing outside that level
// retains a reference to its backing arrays.
type Graph struct {
	N  int     // vertex count
	P  []int   // column pointers, length N+1
	Idx []int  // adjacency (row) indices, length P[N]     -- spec "i"
	Ex []float64 // per-edge weights, length P[N]            -- spec "x"
	Wt []float64 // per-vertex weights, length N              -- spec "w"
	Nz int     // P[N], number of directed (half-)entries

	TotalNodeWeight float64 // W = Sum(Wt)
	EdgeWeightSum   float64 // X, each undirected edge counted once
	H               float64 // 2X

	// Matching state, populated by match() and consumed by coarsen().
	Singleton   int
	Matching    []int
	MatchMap    []int
	InvMatchMap []int
	Cn          int

	// Partition state, populated by guess/FM/QP.
	Partition      []int
	CutCost        float64
	Imbalance      float64
	VertexGains    []float64
	ExternalDegree []int
	boundaryList   []int
	boundaryPos    []int // boundaryPos[k] = index into boundaryList, or -1

	builder *coo // staging area for AddEdge/Finalize; nil after FromCSC
}

// NewGraph allocates an empty Graph over n vertices with no edges yet. Use
// AddEdge to build up the adjacency, then Finalize to compute derived sums.
// This constructor path is for tests and small programmatic graphs; bulk
// loaders build P/Idx/Ex directly and call Condition (mtxio) or FromCSC
// (gonumio).
func NewGraph(n int) *Graph {
	return &Graph{
		N:   n,
		P:   make([]int, n+1),
		Wt:  make([]float64, n),
		Singleton: -1,
	}
}

// coo accumulates (row, weight) adjacency pairs per column before Finalize
// compacts them into CSC arrays.
type coo struct {
	nbrs    [][]int
	weights [][]float64
}

func newCOO(n int) *coo {
	return &coo{nbrs: make([][]int, n), weights: make([][]float64, n)}
}

// AddEdge adds an undirected weighted edge (u,v), u != v, to a Graph under
// construction. Call Finalize once all edges are added. Duplicate edges
// accumulate (their weights add), matching the coarsening accumulation rule
// in §4.2.
func (g *Graph) AddEdge(u, v int, w float64) {
	if g.builder == nil {
		g.builder = newCOO(g.N)
	}
	g.builder.nbrs[u] = append(g.builder.nbrs[u], v)
	g.builder.weights[u] = append(g.builder.weights[u], w)
	if u != v {
		g.builder.nbrs[v] = append(g.builder.nbrs[v], u)
		g.builder.weights[v] = append(g.builder.weights[v], w)
	}
	if g.Wt[u] == 0 {
		g.Wt[u] = 1.0
	}
	if g.Wt[v] == 0 {
		g.Wt[v] = 1.0
	}
}

// Finalize compacts edges accumulated via AddEdge into CSC form and computes
// W/X/H. Duplicate (u,v) pairs are merged by summing weights, mirroring the
// coarsening column-merge rule (§4.2) so graphs built incrementally and
// graphs produced by coarsen() share the same accumulation semantics. A
// vertex whose weight is still 0 (e.g. an isolated vertex AddEdge never
// touched) gets the default weight 1, as AddEdge gives its endpoints.
func (g *Graph) Finalize() error {
	if g.builder == nil {
		g.builder = newCOO(g.N)
	}
	for k := range g.Wt {
		if g.Wt[k] == 0 {
			g.Wt[k] = 1.0
		}
	}
	nz := 0
	htable := make([]int, g.N)
	for i := range htable {
		htable[i] = -1
	}
	p := make([]int, g.N+1)
	var idx []int
	var ex []float64
	for k := 0; k < g.N; k++ {
		p[k] = nz
		start := nz
		for i, nb := range g.builder.nbrs[k] {
			w := g.builder.weights[k][i]
			if nb == k {
				continue // self-loops dropped, spec §3
			}
			cp := htable[nb]
			if cp < start {
				htable[nb] = len(idx)
				idx = append(idx, nb)
				ex = append(ex, w)
				nz++
			} else {
				ex[cp] += w
			}
		}
	}
	p[g.N] = nz
	g.P = p
	g.Idx = idx
	g.Ex = ex
	g.Nz = nz

	w := 0.0
	for _, v := range g.Wt {
		w += v
	}
	g.TotalNodeWeight = w

	xs := 0.0
	for k := 0; k < g.N; k++ {
		for pp := g.P[k]; pp < g.P[k+1]; pp++ {
			xs += g.Ex[pp]
		}
	}
	g.EdgeWeightSum = xs / 2.0
	g.H = 2.0 * g.EdgeWeightSum
	return g.Validate()
}

// FromCSC constructs a Graph from caller-supplied CSC arrays (the
// `graph_from_csc` operation of spec §6). It validates the data-model
// invariants of §3 and returns InvalidInput if they do not hold.
func FromCSC(n int, p, idx []int, x, w []float64) (*Graph, error) {
	if n < 1 {
		return nil, errInvalid("graph must have at least one vertex")
	}
	if len(p) != n+1 {
		return nil, errInvalid("p must have length n+1")
	}
	nz := p[n]
	if len(idx) != nz || len(x) != nz {
		return nil, errInvalid("i/x must have length p[n]")
	}
	if len(w) != n {
		return nil, errInvalid("w must have length n")
	}
	g := &Graph{
		N:         n,
		P:         append([]int(nil), p...),
		Idx:       append([]int(nil), idx...),
		Ex:        append([]float64(nil), x...),
		Wt:        append([]float64(nil), w...),
		Nz:        nz,
		Singleton: -1,
	}
	wsum := 0.0
	for _, v := range w {
		wsum += v
	}
	g.TotalNodeWeight = wsum
	xs := 0.0
	for _, v := range x {
		xs += v
	}
	g.EdgeWeightSum = xs / 2.0
	g.H = 2.0 * g.EdgeWeightSum
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks the data-model invariants of spec §3: symmetric pattern
// and weights, no self-edges, strictly positive edge/node weights, W>0.
func (g *Graph) Validate() error {
	if g.N < 1 {
		return errInvalid("graph has no vertices")
	}
	if g.TotalNodeWeight <= 0 {
		return errInvalid("total node weight must be positive")
	}
	for k := 0; k < g.N; k++ {
		if g.Wt[k] <= 0 {
			return errInvalidAt("node weight must be positive", k)
		}
		for p := g.P[k]; p < g.P[k+1]; p++ {
			nb := g.Idx[p]
			if nb == k {
				return errInvalidAt("self-edge not allowed", k)
			}
			if g.Ex[p] <= 0 {
				return errInvalidAt("edge weight must be positive", k)
			}
			rev, ok := g.findEdge(nb, k)
			if !ok {
				return errInvalidAt("adjacency is not symmetric", k)
			}
			if math.Abs(g.Ex[rev]-g.Ex[p]) > 1e-9*math.Max(1, math.Abs(g.Ex[p])) {
				return errInvalidAt("edge weights are not symmetric", k)
			}
		}
	}
	return nil
}

// findEdge returns the CSC offset of edge (from,to) if present.
func (g *Graph) findEdge(from, to int) (int, bool) {
	for p := g.P[from]; p < g.P[from+1]; p++ {
		if g.Idx[p] == to {
			return p, true
		}
	}
	return 0, false
}

// Degree returns the weighted degree (D[k] in §4.6: Sum of edge weights
// around k).
func (g *Graph) Degree(k int) float64 {
	d := 0.0
	for p := g.P[k]; p < g.P[k+1]; p++ {
		d += g.Ex[p]
	}
	return d
}

// Clone makes a deep, independent copy of g, including matching and
// partition state. Each multilevel stack level owns its own Graph; Clone
// exists for tests and for guess strategies that want to try a candidate
// without mutating the level's Graph in place.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		N:               g.N,
		P:               append([]int(nil), g.P...),
		Idx:             append([]int(nil), g.Idx...),
		Ex:              append([]float64(nil), g.Ex...),
		Wt:              append([]float64(nil), g.Wt...),
		Nz:              g.Nz,
		TotalNodeWeight: g.TotalNodeWeight,
		EdgeWeightSum:   g.EdgeWeightSum,
		H:               g.H,
		Singleton:       g.Singleton,
		Cn:              g.Cn,
	}
	if g.Matching != nil {
		c.Matching = append([]int(nil), g.Matching...)
	}
	if g.MatchMap != nil {
		c.MatchMap = append([]int(nil), g.MatchMap...)
	}
	if g.InvMatchMap != nil {
		c.InvMatchMap = append([]int(nil), g.InvMatchMap...)
	}
	if g.Partition != nil {
		c.Partition = append([]int(nil), g.Partition...)
	}
	if g.VertexGains != nil {
		c.VertexGains = append([]float64(nil), g.VertexGains...)
	}
	if g.ExternalDegree != nil {
		c.ExternalDegree = append([]int(nil), g.ExternalDegree...)
	}
	if g.boundaryPos != nil {
		c.boundaryPos = append([]int(nil), g.boundaryPos...)
		c.boundaryList = append([]int(nil), g.boundaryList...)
	}
	c.CutCost = g.CutCost
	c.Imbalance = g.Imbalance
	return c
}

// Laplacian materializes the weighted Laplacian L = Diag(degree) - A as a
// dense gonum matrix. This is for property tests and small-graph
// diagnostics only (spec §8's cross-check of cutCost/QP gradients against
// x^T L x) — a dense N x N matrix is infeasible for the million-vertex
// graphs this engine targets, so nothing on the multilevel driver's hot
// path calls this.
func (g *Graph) Laplacian() *mat.SymDense {
	l := mat.NewSymDense(g.N, nil)
	for k := 0; k < g.N; k++ {
		l.SetSym(k, k, g.Degree(k))
		for p := g.P[k]; p < g.P[k+1]; p++ {
			j := g.Idx[p]
			if j > k {
				l.SetSym(k, j, -g.Ex[p])
			}
		}
	}
	return l
}
