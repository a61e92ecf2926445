package sep

import "testing"

// cycleLength follows matching[k] -> ... until it returns to k, returning
// the cycle length (1 for an orphan, 2 for a standard pair, 3 for a
// community match), or -1 if it never returns (a matching bug).
func cycleLength(g *Graph, k int) int {
	cur := getMatch(g, k)
	for length := 1; length <= 4; length++ {
		if cur == k {
			return length
		}
		cur = getMatch(g, cur)
	}
	return -1
}

func testMatchingLaw(t *testing.T, g *Graph, strategy MatchingStrategy) {
	t.Helper()
	opt := NewOptions()
	opt.MatchingStrategy = strategy
	if err := match(g, &opt); err != nil {
		t.Fatalf("match: %v", err)
	}
	for k := 0; k < g.N; k++ {
		if !isMatched(g, k) {
			t.Fatalf("vertex %d left unmatched after match()", k)
		}
		length := cycleLength(g, k)
		if length != 1 && length != 2 && length != 3 {
			t.Fatalf("vertex %d's matching cycle has length %d, want 1, 2 or 3", k, length)
		}
	}
	if g.Cn <= 0 || g.Cn > g.N {
		t.Fatalf("Cn = %d, want in (0, %d]", g.Cn, g.N)
	}
}

func TestMatchingLawAllStrategies(t *testing.T) {
	strategies := []MatchingStrategy{Random, HEM, HEMPA, HEMDavisPA}
	graphs := map[string]func() *Graph{
		"path6":    func() *Graph { return pathGraph(6) },
		"k4":       func() *Graph { return completeGraph(4) },
		"star5":    func() *Graph { return starGraph(5) },
		"single":   func() *Graph { return pathGraph(2) },
	}
	for name, build := range graphs {
		for _, s := range strategies {
			t.Run(name+"/"+s.String(), func(t *testing.T) {
				testMatchingLaw(t, build(), s)
			})
		}
	}
}

func TestMatchingCleanupHandlesIsolatedVertex(t *testing.T) {
	g := NewGraph(3)
	g.AddEdge(0, 1, 1.0)
	if err := g.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	opt := NewOptions()
	if err := match(g, &opt); err != nil {
		t.Fatalf("match: %v", err)
	}
	if !isMatched(g, 2) {
		t.Fatalf("isolated vertex 2 should be self-matched as an orphan")
	}
	if cycleLength(g, 2) != 1 {
		t.Fatalf("isolated vertex should form a length-1 cycle")
	}
}
