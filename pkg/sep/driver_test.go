package sep

import "testing"

// TestComputeEdgeSeparatorSingleEdge covers spec §8's single-edge scenario.
func TestComputeEdgeSeparatorSingleEdge(t *testing.T) {
	g := pathGraph(2)
	opt := NewOptions()
	if err := ComputeEdgeSeparator(g, &opt); err != nil {
		t.Fatalf("ComputeEdgeSeparator: %v", err)
	}
	if g.Partition[0] == g.Partition[1] {
		t.Fatalf("single edge graph should split its two vertices, got %v", g.Partition)
	}
	if g.CutCost != 1 {
		t.Errorf("cutCost = %v, want 1", g.CutCost)
	}
	if g.Imbalance != 0 {
		t.Errorf("imbalance = %v, want 0", g.Imbalance)
	}
}

// TestComputeEdgeSeparatorTwoDisconnectedEdges covers spec §8's two
// disconnected edges scenario: cutCost 0, two vertices on each side.
func TestComputeEdgeSeparatorTwoDisconnectedEdges(t *testing.T) {
	g := buildGraph(4, [][2]int{{0, 1}, {2, 3}})
	opt := NewOptions()
	if err := ComputeEdgeSeparator(g, &opt); err != nil {
		t.Fatalf("ComputeEdgeSeparator: %v", err)
	}
	if g.CutCost != 0 {
		t.Errorf("cutCost = %v, want 0", g.CutCost)
	}
	sideCount := [2]int{}
	for _, side := range g.Partition {
		sideCount[side]++
	}
	if sideCount[0] != 2 || sideCount[1] != 2 {
		t.Errorf("side sizes = %v, want 2 and 2", sideCount)
	}
	if g.Partition[0] != g.Partition[1] || g.Partition[2] != g.Partition[3] {
		t.Errorf("each disconnected edge's endpoints should land on the same side, got %v", g.Partition)
	}
}

// TestComputeEdgeSeparatorPath6 covers spec §8's path-of-6 scenario: optimal
// cutCost 1, achieved by the single bisection point between the two halves.
func TestComputeEdgeSeparatorPath6(t *testing.T) {
	g := pathGraph(6)
	opt := NewOptions()
	if err := ComputeEdgeSeparator(g, &opt); err != nil {
		t.Fatalf("ComputeEdgeSeparator: %v", err)
	}
	if g.CutCost != 1 {
		t.Errorf("cutCost = %v, want 1", g.CutCost)
	}
	if g.Imbalance > opt.Tolerance {
		t.Errorf("imbalance = %v, exceeds tolerance %v", g.Imbalance, opt.Tolerance)
	}
}

// TestComputeEdgeSeparatorK4 covers spec §8's complete-graph scenario: every
// balanced 2-2 split of K4 has cutCost 4.
func TestComputeEdgeSeparatorK4(t *testing.T) {
	g := completeGraph(4)
	opt := NewOptions()
	if err := ComputeEdgeSeparator(g, &opt); err != nil {
		t.Fatalf("ComputeEdgeSeparator: %v", err)
	}
	if g.CutCost != 4 {
		t.Errorf("cutCost = %v, want 4", g.CutCost)
	}
	sideCount := [2]int{}
	for _, side := range g.Partition {
		sideCount[side]++
	}
	if sideCount[0] != 2 || sideCount[1] != 2 {
		t.Errorf("K4 should split 2-2, got %v", sideCount)
	}
}

// TestComputeEdgeSeparatorStar5 covers spec §8's star scenario: cutCost 2 or
// 3 depending on which leaves join the center's side, imbalance within the
// scenario's explicit 0.2 tolerance.
func TestComputeEdgeSeparatorStar5(t *testing.T) {
	g := starGraph(5)
	opt := NewOptions()
	opt.TargetSplit = 0.5
	opt.Tolerance = 0.2
	if err := ComputeEdgeSeparator(g, &opt); err != nil {
		t.Fatalf("ComputeEdgeSeparator: %v", err)
	}
	if g.CutCost != 2 && g.CutCost != 3 {
		t.Errorf("cutCost = %v, want 2 or 3", g.CutCost)
	}
	if g.Imbalance > 0.2 {
		t.Errorf("imbalance = %v, exceeds 0.2", g.Imbalance)
	}
}

// TestComputeEdgeSeparatorDeterminism covers spec property 9: two runs with
// identical input/options yield bit-identical partitions and metrics.
func TestComputeEdgeSeparatorDeterminism(t *testing.T) {
	build := func() *Graph { return starGraph(5) }
	opt1 := NewOptions()
	g1 := build()
	if err := ComputeEdgeSeparator(g1, &opt1); err != nil {
		t.Fatalf("run 1: %v", err)
	}

	opt2 := NewOptions()
	g2 := build()
	if err := ComputeEdgeSeparator(g2, &opt2); err != nil {
		t.Fatalf("run 2: %v", err)
	}

	for k := range g1.Partition {
		if g1.Partition[k] != g2.Partition[k] {
			t.Fatalf("partition differs at %d: %d vs %d", k, g1.Partition[k], g2.Partition[k])
		}
	}
	if g1.CutCost != g2.CutCost {
		t.Fatalf("cutCost differs: %v vs %v", g1.CutCost, g2.CutCost)
	}
	if g1.Imbalance != g2.Imbalance {
		t.Fatalf("imbalance differs: %v vs %v", g1.Imbalance, g2.Imbalance)
	}
}

func TestComputeEdgeSeparatorRejectsEmptyGraph(t *testing.T) {
	g := &Graph{N: 0}
	opt := NewOptions()
	if err := ComputeEdgeSeparator(g, &opt); KindOf(err) != KindInvalidInput {
		t.Fatalf("expected InvalidInput for an empty graph, got %v", err)
	}
}
