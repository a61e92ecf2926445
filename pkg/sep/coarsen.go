package sep

// coarsen builds the contracted graph C implied by g's matching state, per
// spec §4.2. C.N = g.Cn. Each coarse vertex's adjacency is built from a
// column-local hash array so repeated fine edges into the same coarse
// neighbor accumulate into a single coarse entry.
func coarsen(g *Graph, opt *Options) (*Graph, error) {
	cn := g.Cn
	if cn == 0 {
		return nil, errInvalid("matching produced zero coarse vertices")
	}

	c := &Graph{
		N:         cn,
		P:         make([]int, cn+1),
		Wt:        make([]float64, cn),
		VertexGains: make([]float64, cn),
		Singleton: -1,
	}

	htable := make([]int, cn)
	for i := range htable {
		htable[i] = -1
	}

	var idx []int
	var ex []float64
	munch := 0
	xAccum := 0.0

	for k := 0; k < cn; k++ {
		var v [3]int
		v[0] = g.InvMatchMap[k]
		v[1] = getMatch(g, v[0])
		if v[1] == v[0] {
			v[1] = -1
			v[2] = -1
		} else {
			v[2] = getMatch(g, v[1])
			if v[2] == v[0] {
				v[2] = -1
			}
		}

		ps := munch
		c.P[k] = ps

		nodeWeight := 0.0
		sumEdgeWeights := 0.0
		for i := 0; i < 3 && v[i] != -1; i++ {
			vertex := v[i]
			nodeWeight += g.Wt[vertex]

			for p := g.P[vertex]; p < g.P[vertex+1]; p++ {
				toCoarsened := g.MatchMap[g.Idx[p]]
				if toCoarsened == k {
					continue // self-edge within the coarse vertex, dropped
				}
				edgeWeight := g.Ex[p]
				sumEdgeWeights += edgeWeight

				cp := htable[toCoarsened]
				if cp < ps {
					htable[toCoarsened] = munch
					idx = append(idx, toCoarsened)
					ex = append(ex, edgeWeight)
					munch++
				} else {
					ex[cp] += edgeWeight
				}
			}
		}

		c.Wt[k] = nodeWeight
		xAccum += sumEdgeWeights
		c.VertexGains[k] = -sumEdgeWeights
	}

	c.P[cn] = munch
	c.Idx = idx
	c.Ex = ex
	c.Nz = munch
	c.EdgeWeightSum = xAccum / 2.0
	c.H = 2.0 * c.EdgeWeightSum

	wsum := 0.0
	for _, w := range c.Wt {
		wsum += w
	}
	c.TotalNodeWeight = wsum

	if opt.DoExpensiveChecks {
		for k := 0; k < cn; k++ {
			if c.P[k+1] == c.P[k] && cn > 1 {
				return nil, errInvariant("coarse graph has an isolated vertex")
			}
		}
		if c.TotalNodeWeight != g.TotalNodeWeight {
			return nil, errInvariant("coarse graph total node weight diverged from fine graph")
		}
	}

	return c, nil
}
