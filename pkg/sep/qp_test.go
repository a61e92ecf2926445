package sep

import "testing"

// TestQPNapsackFeasibility checks spec property 8: the projection always
// lands in [0,1]^n with a'x within [lo,hi] (up to the bisection tolerance).
func TestQPNapsackFeasibility(t *testing.T) {
	y := []float64{1.2, -0.3, 0.7, 0.4, 0.9}
	a := []float64{1, 1, 1, 1, 1}
	lo, hi := 1.8, 2.2

	x, _, _, b, _ := qpNapsack(y, a, lo, hi, 1e-6)
	for k, xk := range x {
		if xk < -1e-9 || xk > 1+1e-9 {
			t.Fatalf("x[%d] = %v outside [0,1]", k, xk)
		}
	}
	if b < lo-1e-6 || b > hi+1e-6 {
		t.Fatalf("a'x = %v outside [%v, %v]", b, lo, hi)
	}
}

func TestQPNapsackNoOpWhenAlreadyFeasible(t *testing.T) {
	y := []float64{0.5, 0.5}
	a := []float64{1, 1}
	x, _, _, b, ib := qpNapsack(y, a, 0.0, 2.0, 1e-6)
	if x[0] != 0.5 || x[1] != 0.5 {
		t.Fatalf("feasible y was altered: got %v", x)
	}
	if ib != 0 {
		t.Fatalf("ib = %d, want 0 (interior) for a feasible point", ib)
	}
	if b != 1.0 {
		t.Fatalf("b = %v, want 1.0", b)
	}
}

// TestQPRefineRoundsToZeroOne checks spec property 1 end to end: after
// qpRefine's rounding every vertex is on side 0 or 1.
func TestQPRefineRoundsToZeroOne(t *testing.T) {
	g := starGraph(5)
	opt := NewOptions()
	g.Partition = make([]int, g.N)
	g.Partition[0] = 0
	for k := 1; k <= 5; k++ {
		g.Partition[k] = 1
	}
	recomputePartitionState(g, opt.TargetSplit)

	if err := qpRefine(g, &opt); err != nil {
		t.Fatalf("qpRefine: %v", err)
	}
	for k, side := range g.Partition {
		if side != 0 && side != 1 {
			t.Fatalf("partition[%d] = %d, want 0 or 1", k, side)
		}
	}
}

func TestQPLinksRejectsOutOfRangeX(t *testing.T) {
	g := pathGraph(3)
	opt := NewOptions()
	x := []float64{0.5, 1.5, 0.0}
	if _, err := qpLinks(g, &opt, x); KindOf(err) != KindInvalidInput {
		t.Fatalf("expected InvalidInput for x outside [0,1], got %v", err)
	}
}
