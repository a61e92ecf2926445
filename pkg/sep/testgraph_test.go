package sep

// buildGraph constructs a Graph from an edge list (0-indexed, undirected,
// no duplicates expected) with uniform unit weights unless nodeWeights is
// supplied. Shared by every _test.go file in this package.
func buildGraph(n int, edges [][2]int) *Graph {
	g := NewGraph(n)
	for _, e := range edges {
		g.AddEdge(e[0], e[1], 1.0)
	}
	if err := g.Finalize(); err != nil {
		panic(err)
	}
	return g
}

func pathGraph(n int) *Graph {
	var edges [][2]int
	for i := 0; i < n-1; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	return buildGraph(n, edges)
}

func completeGraph(n int) *Graph {
	var edges [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return buildGraph(n, edges)
}

func starGraph(leaves int) *Graph {
	var edges [][2]int
	for i := 1; i <= leaves; i++ {
		edges = append(edges, [2]int{0, i})
	}
	return buildGraph(leaves+1, edges)
}
