package sep

// MatchType documents why a pair (or triple) of vertices were matched. It is
// not persisted on Graph — spec §3's Matching state only records the
// matching/matchmap/invmatchmap arrays — but is threaded through
// createMatch/createCommunityMatch for logging, matching Mongoose's
// MatchType_* constants in spirit.
type MatchType int

const (
	MatchStandard MatchType = iota
	MatchOrphan
	MatchBrotherly
	MatchCommunity
)

// match fills graph.Matching/MatchMap/InvMatchMap/Cn per the dispatch table
// in spec §4.1, then runs the cleanup pass. Every fine vertex is assigned by
// the time match returns.
func match(g *Graph, opt *Options) error {
	n := g.N
	g.Matching = make([]int, n)
	g.MatchMap = make([]int, n)
	g.InvMatchMap = make([]int, n)
	g.Singleton = -1
	g.Cn = 0

	switch opt.MatchingStrategy {
	case Random:
		matchingRandom(g)
	case HEM:
		matchingHEM(g)
	case HEMPA:
		matchingHEM(g)
		matchingPA(g, opt)
	case HEMDavisPA:
		matchingHEM(g)
		matchingDavisPA(g, opt)
	}
	matchingCleanup(g)

	if opt.DoExpensiveChecks {
		for k := 0; k < n; k++ {
			if g.Matching[k] == 0 {
				return errInvariant("vertex left unmatched after cleanup")
			}
		}
		if g.Cn > n {
			return errInvariant("coarse vertex count exceeds fine vertex count")
		}
	}
	return nil
}

func isMatched(g *Graph, k int) bool { return g.Matching[k] != 0 }

// getMatch returns the partner of k (one of up to two other members of its
// group), or -1 if k is unmatched.
func getMatch(g *Graph, k int) int {
	if g.Matching[k] == 0 {
		return -1
	}
	return g.Matching[k] - 1
}

// createMatch pairs a and b (or, if a==b, parks a as an orphan), per spec
// §4.1's createMatch semantic.
func createMatch(g *Graph, a, b int, _ MatchType) {
	if a == b {
		c := g.Cn
		g.Matching[a] = a + 1
		g.MatchMap[a] = c
		g.InvMatchMap[c] = a
		g.Cn++
		return
	}
	c := g.Cn
	g.MatchMap[a] = c
	g.MatchMap[b] = c
	g.Matching[a] = b + 1
	g.Matching[b] = a + 1
	g.InvMatchMap[c] = a
	g.Cn++
}

// createCommunityMatch extends h's existing pair into a 3-cycle h->m->v->h.
// No new coarse id is allocated; v joins h's existing coarse vertex.
func createCommunityMatch(g *Graph, h, v int, _ MatchType) {
	m := getMatch(g, h)
	g.MatchMap[v] = g.MatchMap[h]
	g.Matching[h] = m + 1
	g.Matching[m] = v + 1
	g.Matching[v] = h + 1
}

// matchingCleanup matches any vertex the chosen strategy left unmatched: a
// degree-0 vertex is parked as Singleton (or paired with a previously parked
// one), anything else becomes a self-matched orphan.
func matchingCleanup(g *Graph) {
	n := g.N
	for k := 0; k < n; k++ {
		if isMatched(g, k) {
			continue
		}
		degree := g.P[k+1] - g.P[k]
		if degree == 0 {
			if g.Singleton == -1 {
				g.Singleton = k
			} else {
				createMatch(g, k, g.Singleton, MatchStandard)
				g.Singleton = -1
			}
		} else {
			createMatch(g, k, k, MatchOrphan)
		}
	}
	if g.Singleton != -1 {
		k := g.Singleton
		createMatch(g, k, k, MatchOrphan)
		g.Singleton = -1
	}
}

// matchingRandom matches k with the first unmatched neighbor found in CSC
// order. Deterministic given the input; see the Open Question in spec §9 —
// this strategy does not actually randomize.
func matchingRandom(g *Graph) {
	for k := 0; k < g.N; k++ {
		if isMatched(g, k) {
			continue
		}
		for p := g.P[k]; p < g.P[k+1]; p++ {
			nb := g.Idx[p]
			if isMatched(g, nb) {
				continue
			}
			createMatch(g, k, nb, MatchStandard)
			break
		}
	}
}

// matchingHEM matches k with its heaviest unmatched neighbor.
func matchingHEM(g *Graph) {
	for k := 0; k < g.N; k++ {
		if isMatched(g, k) {
			continue
		}
		heaviest := -1
		heaviestWeight := -1.0
		for p := g.P[k]; p < g.P[k+1]; p++ {
			nb := g.Idx[p]
			if isMatched(g, nb) {
				continue
			}
			if g.Ex[p] > heaviestWeight {
				heaviestWeight = g.Ex[p]
				heaviest = nb
			}
		}
		if heaviest != -1 {
			createMatch(g, k, heaviest, MatchStandard)
		}
	}
}

// matchingPA runs the passive-aggressive brotherly/community pass.
// Precondition: every unmatched vertex has at least one matched neighbor
// (true after a HEM pass for every vertex of nonzero degree). The
// precondition is not verified at run time, even with DoExpensiveChecks.
func matchingPA(g *Graph, opt *Options) {
	for k := 0; k < g.N; k++ {
		if isMatched(g, k) {
			continue
		}
		heaviest := -1
		heaviestWeight := -1.0
		for p := g.P[k]; p < g.P[k+1]; p++ {
			nb := g.Idx[p]
			if g.Ex[p] > heaviestWeight {
				heaviestWeight = g.Ex[p]
				heaviest = nb
			}
		}
		if heaviest == -1 {
			continue
		}
		pairBrotherly(g, opt, heaviest)
	}
}

// matchingDavisPA only triggers brotherly/community matching at matched
// hubs whose degree exceeds the Davis threshold times average degree.
func matchingDavisPA(g *Graph, opt *Options) {
	bt := opt.DavisBrotherlyThreshold * (float64(g.Nz) / float64(g.N))
	for k := 0; k < g.N; k++ {
		if !isMatched(g, k) {
			continue
		}
		degree := g.P[k+1] - g.P[k]
		if float64(degree) > bt {
			pairBrotherly(g, opt, k)
		}
	}
}

// pairBrotherly walks h's unmatched neighbors, pairing them two at a time.
// A leftover odd neighbor becomes a community match with h (if enabled) or
// an orphan.
func pairBrotherly(g *Graph, opt *Options, h int) {
	v := -1
	for p := g.P[h]; p < g.P[h+1]; p++ {
		nb := g.Idx[p]
		if isMatched(g, nb) {
			continue
		}
		if v == -1 {
			v = nb
		} else {
			createMatch(g, v, nb, MatchBrotherly)
			v = -1
		}
	}
	if v != -1 {
		if opt.DoCommunityMatching && isMatched(g, h) {
			createCommunityMatch(g, h, v, MatchCommunity)
		} else {
			createMatch(g, v, v, MatchOrphan)
		}
	}
}
