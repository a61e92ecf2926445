package sep

// guess produces the initial 0/1 partition on g, per spec §4.4 and the
// GuessCutType option, then runs one FM cleanup pass over the result. Called
// once, on the coarsest graph in the multilevel stack.
func guess(g *Graph, opt *Options) error {
	switch opt.GuessCutType {
	case GuessRandom:
		guessRandom(g, opt)
	case GuessNaturalOrder:
		guessNaturalOrder(g, opt)
	case GuessQP:
		if err := guessQP(g, opt); err != nil {
			return err
		}
	case GuessPseudoperipheralFast:
		guessPseudoperipheralFast(g, opt)
	default:
		return errInvalid("unrecognized guess cut type")
	}
	fmRefine(g, opt)
	return nil
}

// guessNaturalOrder assigns vertices to side 0 in index order until the
// target weight is reached, the rest to side 1. Cheapest possible guess,
// mainly useful as a baseline for comparison against the other strategies.
func guessNaturalOrder(g *Graph, opt *Options) {
	g.Partition = make([]int, g.N)
	target := opt.TargetSplit * g.TotalNodeWeight
	acc := 0.0
	for k := 0; k < g.N; k++ {
		if acc < target {
			g.Partition[k] = 0
			acc += g.Wt[k]
		} else {
			g.Partition[k] = 1
		}
	}
	recomputePartitionState(g, opt.TargetSplit)
}

// guessRandom assigns a deterministically shuffled vertex order to side 0
// until the target weight is reached, then greedily swaps vertices across
// sides to bring any remaining imbalance within tolerance. The shuffle is
// seeded from opt.RandomSeed rather than from the clock, so a given graph
// and seed always produce the same guess (spec §8's reproducibility
// properties depend on this); MatchingStrategy.Random's own non-randomizing
// behavior is unrelated to this seed.
func guessRandom(g *Graph, opt *Options) {
	order := make([]int, g.N)
	for k := range order {
		order[k] = k
	}
	rng := newSplitMix64(uint64(opt.RandomSeed))
	for i := len(order) - 1; i > 0; i-- {
		j := int(rng.next() % uint64(i+1))
		order[i], order[j] = order[j], order[i]
	}

	g.Partition = make([]int, g.N)
	for k := range g.Partition {
		g.Partition[k] = 1
	}
	target := opt.TargetSplit * g.TotalNodeWeight
	acc := 0.0
	for _, k := range order {
		if acc >= target {
			break
		}
		g.Partition[k] = 0
		acc += g.Wt[k]
	}
	recomputePartitionState(g, opt.TargetSplit)
	balanceGreedy(g, opt)
}

// guessQP seeds x_k = TargetSplit for every vertex and runs the full QP
// relaxation/rounding machinery to derive the initial 0/1 partition, per
// spec §4.4's QP-seeded guess.
func guessQP(g *Graph, opt *Options) error {
	x := make([]float64, g.N)
	for k := range x {
		x[k] = opt.TargetSplit
	}
	return qpRefineFrom(g, opt, x)
}

// guessPseudoperipheralFast finds an approximate pseudo-peripheral vertex by
// repeated BFS-to-farthest-vertex (bounded by GuessSearchDepth iterations),
// then layers vertices by BFS distance from that vertex and assigns the
// closest layers to side 0 until the target weight is reached.
func guessPseudoperipheralFast(g *Graph, opt *Options) {
	start := 0
	depth := opt.GuessSearchDepth
	if depth < 1 {
		depth = 1
	}
	var order []int
	for i := 0; i < depth; i++ {
		var dist []int
		dist, order = bfsOrder(g, start)
		start = order[len(order)-1]
		_ = dist
	}

	g.Partition = make([]int, g.N)
	for k := range g.Partition {
		g.Partition[k] = 1
	}
	target := opt.TargetSplit * g.TotalNodeWeight
	acc := 0.0
	for _, k := range order {
		if acc >= target {
			break
		}
		g.Partition[k] = 0
		acc += g.Wt[k]
	}
	recomputePartitionState(g, opt.TargetSplit)
}

// bfsOrder returns vertex distances from start and the vertices ordered by
// non-decreasing distance (ties broken by index), visiting disconnected
// components in index order so every vertex is covered.
func bfsOrder(g *Graph, start int) ([]int, []int) {
	dist := make([]int, g.N)
	for k := range dist {
		dist[k] = -1
	}
	order := make([]int, 0, g.N)
	queue := make([]int, 0, g.N)
	head := 0

	visit := func(root int) {
		dist[root] = 0
		queue = append(queue, root)
		for ; head < len(queue); head++ {
			u := queue[head]
			order = append(order, u)
			for p := g.P[u]; p < g.P[u+1]; p++ {
				v := g.Idx[p]
				if dist[v] == -1 {
					dist[v] = dist[u] + 1
					queue = append(queue, v)
				}
			}
		}
	}
	visit(start)
	for k := 0; k < g.N; k++ {
		if dist[k] == -1 {
			visit(k)
		}
	}
	return dist, order
}

// balanceGreedy flips vertices from the overweight side to the underweight
// side, preferring the smallest-weight vertex on the overweight side each
// step (lowest index on ties; boundary membership is not considered), until
// the imbalance is within tolerance or the overweight side is empty.
// Bounded by g.N iterations as a safety backstop.
func balanceGreedy(g *Graph, opt *Options) {
	changed := false
	for iter := 0; iter < g.N; iter++ {
		imb := computeImbalance(g, opt.TargetSplit)
		if imb <= opt.Tolerance {
			break
		}
		wa := sideWeight(g, 0)
		over := 0
		if wa/g.TotalNodeWeight < opt.TargetSplit {
			over = 1
		}

		best := -1
		bestW := 0.0
		for k := 0; k < g.N; k++ {
			if g.Partition[k] != over {
				continue
			}
			if best == -1 || g.Wt[k] < bestW {
				best = k
				bestW = g.Wt[k]
			}
		}
		if best == -1 {
			break
		}
		g.Partition[best] = 1 - over
		changed = true
	}
	if changed {
		recomputePartitionState(g, opt.TargetSplit)
	}
}

// splitMix64 is a tiny, dependency-free deterministic PRNG used only to
// produce a reproducible vertex shuffle for guessRandom.
type splitMix64 struct{ state uint64 }

func newSplitMix64(seed uint64) *splitMix64 { return &splitMix64{state: seed} }

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
