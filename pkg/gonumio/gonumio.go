// Package gonumio converts between sep.Graph's CSC representation and
// gonum's graph/simple.WeightedUndirectedGraph, for interop with the rest
// of the gonum ecosystem (layout, I/O, analysis) without making sep.Graph
// itself depend on it.
package gonumio

import (
	"gonum.org/v1/gonum/graph/simple"

	"github.com/gilchrisn/edgesep/pkg/sep"
)

// FromWeightedUndirected builds a sep.Graph from a gonum WeightedUndirectedGraph.
// Node weights are taken from weights, keyed by gonum node ID; a node
// missing from the map gets weight 1, and nil defaults every node weight
// to 1.
func FromWeightedUndirected(wg *simple.WeightedUndirectedGraph, weights map[int64]float64) (*sep.Graph, error) {
	nodes := wg.Nodes()
	var ids []int64
	for nodes.Next() {
		ids = append(ids, nodes.Node().ID())
	}
	n := len(ids)

	idOf := make(map[int64]int, n)
	for i, id := range ids {
		idOf[id] = i
	}

	type entry struct {
		to int
		w  float64
	}
	adj := make([][]entry, n)
	for i, id := range ids {
		to := wg.From(id)
		for to.Next() {
			nb := to.Node().ID()
			j := idOf[nb]
			w := wg.WeightedEdge(id, nb).Weight()
			adj[i] = append(adj[i], entry{to: j, w: w})
		}
	}

	p := make([]int, n+1)
	var idx []int
	var x []float64
	munch := 0
	for i := 0; i < n; i++ {
		p[i] = munch
		for _, e := range adj[i] {
			idx = append(idx, e.to)
			x = append(x, e.w)
			munch++
		}
	}
	p[n] = munch

	w := make([]float64, n)
	for i, id := range ids {
		if weights != nil {
			if v, ok := weights[id]; ok {
				w[i] = v
				continue
			}
		}
		w[i] = 1
	}

	return sep.FromCSC(n, p, idx, x, w)
}

// ToWeightedUndirected renders g as a gonum WeightedUndirectedGraph, vertex
// k becoming node ID int64(k). Useful for feeding the result of
// ComputeEdgeSeparator into gonum's layout/drawing/community packages.
func ToWeightedUndirected(g *sep.Graph) *simple.WeightedUndirectedGraph {
	wg := simple.NewWeightedUndirectedGraph(0, 0)
	for k := 0; k < g.N; k++ {
		wg.AddNode(simple.Node(int64(k)))
	}
	for k := 0; k < g.N; k++ {
		for p := g.P[k]; p < g.P[k+1]; p++ {
			j := g.Idx[p]
			if j <= k {
				continue
			}
			wg.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(int64(k)),
				T: simple.Node(int64(j)),
				W: g.Ex[p],
			})
		}
	}
	return wg
}
