package sep

import "testing"

func TestFinalizeSumsAndDegree(t *testing.T) {
	g := pathGraph(6)
	if g.N != 6 {
		t.Fatalf("N = %d, want 6", g.N)
	}
	if g.TotalNodeWeight != 6 {
		t.Errorf("TotalNodeWeight = %v, want 6", g.TotalNodeWeight)
	}
	if g.EdgeWeightSum != 5 {
		t.Errorf("EdgeWeightSum = %v, want 5 (5 unit edges)", g.EdgeWeightSum)
	}
	if g.H != 10 {
		t.Errorf("H = %v, want 2*EdgeWeightSum = 10", g.H)
	}
	if d := g.Degree(0); d != 1 {
		t.Errorf("Degree(0) = %v, want 1 (endpoint)", d)
	}
	if d := g.Degree(1); d != 2 {
		t.Errorf("Degree(1) = %v, want 2 (interior)", d)
	}
}

func TestFinalizeMergesDuplicateEdges(t *testing.T) {
	g := NewGraph(2)
	g.AddEdge(0, 1, 1.5)
	g.AddEdge(0, 1, 2.5)
	if err := g.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got := g.Ex[g.P[0]]; got != 4.0 {
		t.Errorf("merged edge weight = %v, want 4.0", got)
	}
}

func TestFromCSCRejectsAsymmetricPattern(t *testing.T) {
	// vertex 0 -> 1 exists, but 1 -> 0 does not.
	p := []int{0, 1, 1}
	idx := []int{1}
	x := []float64{1.0}
	w := []float64{1, 1}
	if _, err := FromCSC(2, p, idx, x, w); KindOf(err) != KindInvalidInput {
		t.Fatalf("expected InvalidInput for asymmetric pattern, got %v", err)
	}
}

func TestFromCSCRejectsSelfEdge(t *testing.T) {
	p := []int{0, 1}
	idx := []int{0}
	x := []float64{1.0}
	w := []float64{1}
	if _, err := FromCSC(1, p, idx, x, w); KindOf(err) != KindInvalidInput {
		t.Fatalf("expected InvalidInput for self-edge, got %v", err)
	}
}

func TestFromCSCRejectsAsymmetricWeight(t *testing.T) {
	p := []int{0, 1, 2}
	idx := []int{1, 0}
	x := []float64{1.0, 2.0}
	w := []float64{1, 1}
	if _, err := FromCSC(2, p, idx, x, w); KindOf(err) != KindInvalidInput {
		t.Fatalf("expected InvalidInput for asymmetric weight, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := pathGraph(4)
	g.Partition = []int{0, 0, 1, 1}
	c := g.Clone()
	c.Partition[0] = 1
	if g.Partition[0] != 0 {
		t.Fatalf("mutating clone's Partition affected the original")
	}
	c.Wt[0] = 99
	if g.Wt[0] == 99 {
		t.Fatalf("mutating clone's Wt affected the original")
	}
}

func TestLaplacianDiagonalIsDegree(t *testing.T) {
	g := starGraph(3)
	l := g.Laplacian()
	if got := l.At(0, 0); got != 3 {
		t.Errorf("Laplacian diagonal at center = %v, want 3", got)
	}
	if got := l.At(1, 1); got != 1 {
		t.Errorf("Laplacian diagonal at a leaf = %v, want 1", got)
	}
	if got := l.At(0, 1); got != -1 {
		t.Errorf("Laplacian off-diagonal (0,1) = %v, want -1", got)
	}
}
