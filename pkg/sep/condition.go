package sep

import "math"

// Condition applies the preprocessing pass of spec §4.7 to a raw CSC input
// before it is handed to ComputeEdgeSeparator: self-edges are dropped, edge
// weights are replaced by their absolute value, missing (zero or negative)
// node weights default to 1, and the adjacency is symmetrized as
// A <- (A + A^T)/2, so any input, including one that carries only one
// triangle, satisfies Validate's symmetry invariant. An entry whose mirror
// is absent ends up with half its weight in both directions.
// Grounded on Mongoose_Conditioning.cpp's fix-up pass.
func Condition(n int, p, idx []int, x, w []float64) (*Graph, error) {
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

	ww := make([]float64, n)
	for k := 0; k < n; k++ {
		if k < len(w) && w[k] > 0 {
			ww[k] = w[k]
		} else {
			ww[k] = 1.0
		}
	}

	// Collect every directed entry (self-edges dropped, weights abs'd) keyed
	// by its unordered pair, then symmetrize: each pair's weight is half the
	// sum of both directions — A <- (A + A^T)/2, so a pair seen in only one
	// direction gets half that weight — and both directions are emitted, so
	// the result satisfies Validate's symmetric-pattern invariant even when
	// the input only carried one triangle.
	type pairKey struct{ a, b int }
	sums := make(map[pairKey]float64)
	for k := 0; k < n; k++ {
		for pp := p[k]; pp < p[k+1]; pp++ {
			to := idx[pp]
			if to == k {
				continue // self-edges dropped
			}
			key := pairKey{k, to}
			if to < k {
				key = pairKey{to, k}
			}
			sums[key] += math.Abs(x[pp])
		}
	}

	g := &Graph{N: n, Singleton: -1}
	adj := make(map[int][]int, n)
	weight := make(map[pairKey]float64, len(sums))
	for key, sum := range sums {
		avg := sum / 2
		weight[key] = avg
		adj[key.a] = append(adj[key.a], key.b)
		adj[key.b] = append(adj[key.b], key.a)
	}

	gp := make([]int, n+1)
	var gidx []int
	var gex []float64
	munch := 0
	for k := 0; k < n; k++ {
		gp[k] = munch
		for _, to := range adj[k] {
			key := pairKey{k, to}
			if to < k {
				key = pairKey{to, k}
			}
			gidx = append(gidx, to)
			gex = append(gex, weight[key])
			munch++
		}
	}
	gp[n] = munch

	g.P = gp
	g.Idx = gidx
	g.Ex = gex
	g.Nz = munch
	g.Wt = ww

	wsum := 0.0
	for _, v := range ww {
		wsum += v
	}
	g.TotalNodeWeight = wsum
	xs := 0.0
	for _, v := range gex {
		xs += v
	}
	g.EdgeWeightSum = xs / 2.0
	g.H = 2.0 * g.EdgeWeightSum

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
