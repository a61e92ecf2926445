package sep

import "testing"

// TestFMMonotonicity checks spec property 7: the cut after fmRefine never
// exceeds the cut at entry.
func TestFMMonotonicity(t *testing.T) {
	graphs := map[string]*Graph{
		"path6": pathGraph(6),
		"k4":    completeGraph(4),
		"star5": starGraph(5),
	}
	for name, g := range graphs {
		t.Run(name, func(t *testing.T) {
			opt := NewOptions()
			g.Partition = make([]int, g.N)
			for k := 0; k < g.N; k += 2 {
				g.Partition[k] = 1
			}
			recomputePartitionState(g, opt.TargetSplit)
			before := g.CutCost

			fmRefine(g, &opt)

			if g.CutCost > before+1e-9 {
				t.Fatalf("cut increased: before=%v after=%v", before, g.CutCost)
			}
			recomputed := recomputeCutCost(g)
			if abs(recomputed-g.CutCost) > 1e-9 {
				t.Errorf("incrementally maintained CutCost=%v disagrees with recomputed=%v", g.CutCost, recomputed)
			}
		})
	}
}

func TestFMRefineNoOpWhenDisabled(t *testing.T) {
	g := pathGraph(6)
	opt := NewOptions()
	opt.UseFM = false
	g.Partition = []int{0, 1, 0, 1, 0, 1}
	recomputePartitionState(g, opt.TargetSplit)
	before := g.CutCost
	n := fmRefine(g, &opt)
	if n != 0 {
		t.Fatalf("fmRefine with UseFM=false returned %d dances, want 0", n)
	}
	if g.CutCost != before {
		t.Fatalf("fmRefine with UseFM=false mutated CutCost")
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
