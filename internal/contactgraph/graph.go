// Package contactgraph builds the helix contact graph and splits it into
// connected components.
package contactgraph

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/piwi3910/HelixPack/internal/model"
)

// Build returns a weighted undirected graph with one node per helix and one
// edge of the given weight per distinct helix pair named by in.Edges.
// Self edges are ignored.
func Build(in model.Input, weight float64) *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for _, h := range in.Helices {
		g.AddNode(simple.Node(h.Index))
	}
	addEdges(g, in.Edges, weight)
	return g
}

func addEdges(g *simple.WeightedUndirectedGraph, edges []model.Edge, weight float64) {
	for _, e := range edges {
		if e.A == e.B {
			continue
		}
		if g.Node(int64(e.A)) == nil || g.Node(int64(e.B)) == nil {
			continue
		}
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(e.A), simple.Node(e.B), weight))
	}
}

// Components partitions the helices of in into connected components.
//
// Components are ordered by their smallest helix index and helices inside a
// component by index. Edges and contacts are rewritten to component-local
// helix indices. A contact is kept only when both of its residues resolve to
// helices of the same component.
func Components(in model.Input, weight float64) []model.Component {
	g := Build(in, weight)

	groups := topo.ConnectedComponents(g)
	ids := make([][]int, 0, len(groups))
	for _, nodes := range groups {
		members := make([]int, len(nodes))
		for i, n := range nodes {
			members[i] = int(n.ID())
		}
		sort.Ints(members)
		ids = append(ids, members)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i][0] < ids[j][0] })

	byIndex := make(map[int]model.Helix, len(in.Helices))
	for _, h := range in.Helices {
		byIndex[h.Index] = h
	}

	// owner maps a global helix index to its component and local index.
	type slot struct{ comp, local int }
	owner := make(map[int]slot)

	comps := make([]model.Component, len(ids))
	for ci, members := range ids {
		comps[ci].Index = ci
		for li, id := range members {
			comps[ci].Helices = append(comps[ci].Helices, byIndex[id])
			owner[id] = slot{ci, li}
		}
	}

	for _, e := range in.Edges {
		a, okA := owner[e.A]
		b, okB := owner[e.B]
		if !okA || !okB || a.comp != b.comp || e.A == e.B {
			continue
		}
		comps[a.comp].Edges = append(comps[a.comp].Edges, model.Edge{A: a.local, B: b.local})
	}

	for _, c := range in.Contacts {
		a, okA := owner[in.HelixOf(c.ResidueA)]
		b, okB := owner[in.HelixOf(c.ResidueB)]
		if !okA || !okB || a.comp != b.comp {
			continue
		}
		local := c
		local.HelixA = a.local
		local.HelixB = b.local
		comps[a.comp].Contacts = append(comps[a.comp].Contacts, local)
	}

	return comps
}

// Distances returns the weighted shortest path length between every pair of
// helices of comp, indexed by local helix index. Unreachable pairs hold +Inf.
func Distances(comp model.Component, weight float64) [][]float64 {
	n := comp.Total()
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	addEdges(g, comp.Edges, weight)

	paths, _ := path.FloydWarshall(g)

	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := range d[i] {
			d[i][j] = paths.Weight(int64(i), int64(j))
		}
	}
	return d
}
