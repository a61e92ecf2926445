package sep

import "math"

// allocatePartitionState makes fresh Partition/ExternalDegree/VertexGains/
// boundary arrays sized for g, if not already present.
func allocatePartitionState(g *Graph) {
	if g.Partition == nil {
		g.Partition = make([]int, g.N)
	}
	if g.ExternalDegree == nil {
		g.ExternalDegree = make([]int, g.N)
	}
	if g.VertexGains == nil {
		g.VertexGains = make([]float64, g.N)
	}
	g.boundaryPos = make([]int, g.N)
	for i := range g.boundaryPos {
		g.boundaryPos[i] = -1
	}
	g.boundaryList = g.boundaryList[:0]
}

// recomputePartitionState walks the whole graph once to (re)derive
// CutCost, ExternalDegree, VertexGains and the boundary set from
// g.Partition. Used after a guess, after projecting a coarse partition down
// a level, and after QP rounding — all O(nz) events that happen once per
// level, not in FM's inner loop.
func recomputePartitionState(g *Graph, targetSplit float64) {
	allocatePartitionState(g)
	cut := 0.0
	for k := 0; k < g.N; k++ {
		side := g.Partition[k]
		ext := 0
		gain := 0.0
		for p := g.P[k]; p < g.P[k+1]; p++ {
			j := g.Idx[p]
			w := g.Ex[p]
			if g.Partition[j] != side {
				ext++
				gain += w
				if j > k {
					cut += w
				}
			} else {
				gain -= w
			}
		}
		g.ExternalDegree[k] = ext
		g.VertexGains[k] = gain
		if ext > 0 {
			addToBoundary(g, k)
		}
	}
	g.CutCost = cut
	g.Imbalance = computeImbalance(g, targetSplit)
}

func addToBoundary(g *Graph, k int) {
	if g.boundaryPos[k] != -1 {
		return
	}
	g.boundaryPos[k] = len(g.boundaryList)
	g.boundaryList = append(g.boundaryList, k)
}

func removeFromBoundary(g *Graph, k int) {
	pos := g.boundaryPos[k]
	if pos == -1 {
		return
	}
	last := len(g.boundaryList) - 1
	moved := g.boundaryList[last]
	g.boundaryList[pos] = moved
	g.boundaryPos[moved] = pos
	g.boundaryList = g.boundaryList[:last]
	g.boundaryPos[k] = -1
}

func isBoundary(g *Graph, k int) bool { return g.boundaryPos[k] != -1 }

// sideWeight returns the total node weight currently assigned to `side`.
func sideWeight(g *Graph, side int) float64 {
	w := 0.0
	for k := 0; k < g.N; k++ {
		if g.Partition[k] == side {
			w += g.Wt[k]
		}
	}
	return w
}

// computeImbalance returns |(W_A/W) - targetSplit| per spec §3.
func computeImbalance(g *Graph, targetSplit float64) float64 {
	if g.TotalNodeWeight == 0 {
		return 0
	}
	wa := sideWeight(g, 0)
	return math.Abs(wa/g.TotalNodeWeight-targetSplit)
}

// projectPartition sets fine.Partition[k] = coarsePartition[fine.MatchMap[k]]
// for every fine vertex k, per the multilevel driver's uncoarsening step
// (spec §4.3). fine.MatchMap must still be the one that produced the coarse
// graph whose partition is being projected down.
func projectPartition(fine *Graph, coarsePartition []int, targetSplit float64) {
	fine.Partition = make([]int, fine.N)
	for k := 0; k < fine.N; k++ {
		fine.Partition[k] = coarsePartition[fine.MatchMap[k]]
	}
	recomputePartitionState(fine, targetSplit)
}

// recomputeCutCost recomputes CutCost directly from g.Partition without
// touching gains/boundary state; used by property tests (spec §8 property
// 3) as an independent cross-check against the incrementally maintained
// value FM/QP produce.
func recomputeCutCost(g *Graph) float64 {
	cut := 0.0
	for k := 0; k < g.N; k++ {
		for p := g.P[k]; p < g.P[k+1]; p++ {
			j := g.Idx[p]
			if j > k && g.Partition[j] != g.Partition[k] {
				cut += g.Ex[p]
			}
		}
	}
	return cut
}
