package sep

import (
	"math/rand"
	"testing"
)

// randomSymmetricGraph builds a random connected-ish positive-weight graph
// for the universal-invariant property tests of spec §8. Uses math/rand
// with a fixed seed purely to make the *test* deterministic across runs;
// this is unrelated to the engine's own GuessRandom determinism.
func randomSymmetricGraph(seed int64, n, extraEdges int) *Graph {
	rng := rand.New(rand.NewSource(seed))
	g := NewGraph(n)
	for i := 1; i < n; i++ {
		j := rng.Intn(i)
		g.AddEdge(i, j, 1+rng.Float64()*3)
	}
	for e := 0; e < extraEdges; e++ {
		u := rng.Intn(n)
		v := rng.Intn(n)
		if u == v {
			continue
		}
		g.AddEdge(u, v, 1+rng.Float64()*3)
	}
	if err := g.Finalize(); err != nil {
		panic(err)
	}
	return g
}

func TestUniversalInvariantsOverRandomGraphs(t *testing.T) {
	for _, tc := range []struct {
		seed       int64
		n          int
		extraEdges int
	}{
		{1, 10, 8},
		{2, 25, 40},
		{3, 50, 90},
		{4, 100, 150},
	} {
		g := randomSymmetricGraph(tc.seed, tc.n, tc.extraEdges)
		opt := NewOptions()
		opt.CoarsenLimit = 8

		if err := ComputeEdgeSeparator(g, &opt); err != nil {
			t.Fatalf("seed %d: ComputeEdgeSeparator: %v", tc.seed, err)
		}

		// Property 1: every vertex partitioned into {0,1}.
		for k, side := range g.Partition {
			if side != 0 && side != 1 {
				t.Fatalf("seed %d: partition[%d] = %d, want 0 or 1", tc.seed, k, side)
			}
		}

		// Property 2: partitioned node weight sums to W.
		sum := 0.0
		for k := range g.Partition {
			sum += g.Wt[k]
		}
		if abs(sum-g.TotalNodeWeight) > 1e-9 {
			t.Fatalf("seed %d: partitioned weight sum = %v, want %v", tc.seed, sum, g.TotalNodeWeight)
		}

		// Property 3: cutCost matches an independent recomputation.
		want := recomputeCutCost(g)
		tol := float64(g.N) * 1e-9 * (g.EdgeWeightSum + 1)
		if abs(g.CutCost-want) > tol {
			t.Fatalf("seed %d: CutCost = %v, independently recomputed = %v", tc.seed, g.CutCost, want)
		}

		// Property 4: imbalance within tolerance (or at least reported honestly).
		wa := sideWeight(g, 0)
		wantImb := abs(wa/g.TotalNodeWeight - opt.TargetSplit)
		if abs(wantImb-g.Imbalance) > 1e-9 {
			t.Fatalf("seed %d: Imbalance field = %v, recomputed = %v", tc.seed, g.Imbalance, wantImb)
		}
	}
}

func TestMatchingLawOverRandomGraphs(t *testing.T) {
	for _, strategy := range []MatchingStrategy{Random, HEM, HEMPA, HEMDavisPA} {
		g := randomSymmetricGraph(7, 30, 50)
		opt := NewOptions()
		opt.MatchingStrategy = strategy
		if err := match(g, &opt); err != nil {
			t.Fatalf("%v: match: %v", strategy, err)
		}
		seenCoarse := make([]bool, g.Cn)
		for k := 0; k < g.N; k++ {
			if !isMatched(g, k) {
				t.Fatalf("%v: vertex %d unmatched", strategy, k)
			}
			length := cycleLength(g, k)
			if length != 1 && length != 2 && length != 3 {
				t.Fatalf("%v: vertex %d has cycle length %d", strategy, k, length)
			}
			seenCoarse[g.MatchMap[k]] = true
		}
		for c, ok := range seenCoarse {
			if !ok {
				t.Fatalf("%v: coarse vertex %d has no fine members", strategy, c)
			}
		}
	}
}

func TestCoarseningLawOverRandomGraphs(t *testing.T) {
	g := randomSymmetricGraph(9, 40, 70)
	opt := NewOptions()
	if err := match(g, &opt); err != nil {
		t.Fatalf("match: %v", err)
	}
	c, err := coarsen(g, &opt)
	if err != nil {
		t.Fatalf("coarsen: %v", err)
	}
	if abs(c.TotalNodeWeight-g.TotalNodeWeight) > 1e-9 {
		t.Fatalf("coarse W = %v, want %v", c.TotalNodeWeight, g.TotalNodeWeight)
	}
	if c.EdgeWeightSum > g.EdgeWeightSum+1e-9 {
		t.Fatalf("coarse X = %v, exceeds fine X = %v", c.EdgeWeightSum, g.EdgeWeightSum)
	}
}
