package sep

import "math"

// fmRefine improves g's partition by single-vertex flips drawn from the
// boundary, per spec §4.5. It assumes g.Partition/CutCost/Imbalance/
// VertexGains/boundary are already consistent (the caller must have run
// recomputePartitionState or projectPartition first). Returns the number of
// dances that produced an improvement.
func fmRefine(g *Graph, opt *Options) int {
	if !opt.UseFM {
		return 0
	}
	improved := 0
	for d := 0; d < opt.FMMaxNumRefinements; d++ {
		if !fmDance(g, opt) {
			break
		}
		improved++
	}
	return improved
}

// fmDance runs one pass ("dance") of up to FMSearchDepth moves, then rolls
// back to the best state observed during the pass. Returns whether the
// dance's best state strictly improved on the cut at dance start.
func fmDance(g *Graph, opt *Options) bool {
	startCut := g.CutCost
	n := g.N

	locked := make([]bool, n)
	pq := [2]*gainPQ{newGainPQ(), newGainPQ()}
	for _, k := range g.boundaryList {
		pq[g.Partition[k]].insert(k, g.VertexGains[k])
	}

	bestCut := g.CutCost
	bestImb := g.Imbalance
	startPartition := append([]int(nil), g.Partition...)
	bestPartition := startPartition
	nonImproving := 0

	for moves := 0; moves < opt.FMSearchDepth; moves++ {
		k, side, ok := selectCandidate(g, opt, pq)
		if !ok {
			break
		}

		newImb := imbalanceAfterFlip(g, k, side, opt.TargetSplit)
		reduces := newImb < g.Imbalance-1e-12
		if newImb > opt.Tolerance && !reduces {
			pq[side].remove(k)
			locked[k] = true
			continue
		}

		flipVertex(g, pq, locked, k)
		locked[k] = true

		g.Imbalance = computeImbalance(g, opt.TargetSplit)

		if better(g.CutCost, g.Imbalance, bestCut, bestImb, opt.Tolerance) {
			bestCut = g.CutCost
			bestImb = g.Imbalance
			bestPartition = append([]int(nil), g.Partition...)
			nonImproving = 0
		} else {
			nonImproving++
		}
		if nonImproving >= opt.FMConsiderCount {
			break
		}
	}

	g.Partition = bestPartition
	recomputePartitionState(g, opt.TargetSplit)
	return g.CutCost < startCut-1e-12
}

// better reports whether (cutA, imbA) is a preferable FM watermark to
// (cutB, imbB): feasible states (imbalance within tolerance) are ranked by
// cut; an infeasible state is never preferred over a feasible one; between
// two infeasible states, lower imbalance wins.
func better(cutA, imbA, cutB, imbB, tol float64) bool {
	feasA := imbA <= tol
	feasB := imbB <= tol
	switch {
	case feasA && feasB:
		return cutA < cutB-1e-12
	case feasA && !feasB:
		return true
	case !feasA && feasB:
		return false
	default:
		return imbA < imbB-1e-12
	}
}

// selectCandidate peeks the higher-gain vertex across both side buckets,
// breaking ties by preferring the side whose move would reduce imbalance.
func selectCandidate(g *Graph, opt *Options, pq [2]*gainPQ) (int, int, bool) {
	k0, g0, ok0 := pq[0].peekMax()
	k1, g1, ok1 := pq[1].peekMax()
	switch {
	case !ok0 && !ok1:
		return 0, 0, false
	case ok0 && !ok1:
		return k0, 0, true
	case !ok0 && ok1:
		return k1, 1, true
	}
	if g0 > g1 {
		return k0, 0, true
	}
	if g1 > g0 {
		return k1, 1, true
	}
	// tie: prefer the side whose move reduces imbalance.
	side0Reduces := imbalanceAfterFlip(g, k0, 0, opt.TargetSplit) < g.Imbalance
	if side0Reduces {
		return k0, 0, true
	}
	return k1, 1, true
}

// imbalanceAfterFlip projects |(W_A'/W) - targetSplit| as if vertex k
// (currently on `side`) were flipped, without mutating g.
func imbalanceAfterFlip(g *Graph, k, side int, targetSplit float64) float64 {
	wa := sideWeight(g, 0)
	if side == 0 {
		wa -= g.Wt[k]
	} else {
		wa += g.Wt[k]
	}
	return math.Abs(wa/g.TotalNodeWeight - targetSplit)
}

// flipVertex moves k to the opposite side and incrementally updates
// CutCost, each neighbor's ExternalDegree/VertexGains/boundary membership
// and pq entry, per the update rule in spec §4.5 step 3.
func flipVertex(g *Graph, pq [2]*gainPQ, locked []bool, k int) {
	oldSide := g.Partition[k]
	newSide := 1 - oldSide

	pq[oldSide].remove(k)
	g.CutCost -= g.VertexGains[k]
	g.Partition[k] = newSide

	for p := g.P[k]; p < g.P[k+1]; p++ {
		j := g.Idx[p]
		w := g.Ex[p]
		if g.Partition[j] == oldSide {
			// was internal (same as k's old side), becomes external
			g.VertexGains[j] += 2 * w
			g.ExternalDegree[j]++
		} else {
			// was external, becomes internal (same as k's new side)
			g.VertexGains[j] -= 2 * w
			g.ExternalDegree[j]--
		}

		if g.ExternalDegree[j] > 0 {
			if !isBoundary(g, j) {
				addToBoundary(g, j)
			}
			if !locked[j] {
				pq[g.Partition[j]].update(j, g.VertexGains[j])
			}
		} else {
			if isBoundary(g, j) {
				removeFromBoundary(g, j)
			}
			if !locked[j] {
				pq[g.Partition[j]].remove(j)
			}
		}
	}

	degree := g.P[k+1] - g.P[k]
	g.ExternalDegree[k] = degree - g.ExternalDegree[k]
	g.VertexGains[k] = -g.VertexGains[k]
	if g.ExternalDegree[k] > 0 {
		if !isBoundary(g, k) {
			addToBoundary(g, k)
		}
	} else if isBoundary(g, k) {
		removeFromBoundary(g, k)
	}
}
