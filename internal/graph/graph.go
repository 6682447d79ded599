// Package graph builds the weighted adjacency graph over all cell regions.
// Candidate edges come from a fixed-radius centroid query; each candidate
// pair is weighted by the pixel overlap of the two regions' dilated masks.
// Pairs outside the radius are never scored and keep weight zero.
package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/maax3v3/cellgraph/internal/morph"
	"github.com/maax3v3/cellgraph/internal/region"
	"github.com/maax3v3/cellgraph/internal/spatial"
)

// Adjacency is the frozen weighted undirected graph over region ids.
// Every cataloged region is a vertex, including isolated ones; an edge
// exists exactly for the radius-candidate pairs with nonzero overlap.
type Adjacency struct {
	g   *simple.WeightedUndirectedGraph
	ids []int // ascending
}

type pair struct {
	a, b int
}

type scored struct {
	pair
	weight int
}

// Build constructs the adjacency graph. The per-pair overlap counting is
// fanned out over a channel worker pool; workers only read the frozen
// masks, and edges are inserted by this goroutine alone.
func Build(cat *region.Catalog, masks map[int]*morph.Mask, ix *spatial.Index, radius float64, workers int) *Adjacency {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for _, id := range cat.IDs() {
		g.AddNode(simple.Node(int64(id)))
	}

	// Each unordered pair once: only neighbors with a larger id.
	var pairs []pair
	for _, id := range cat.IDs() {
		for _, nid := range ix.WithinRadius(id, radius) {
			if nid > id {
				pairs = append(pairs, pair{a: id, b: nid})
			}
		}
	}

	if workers > len(pairs) {
		workers = len(pairs)
	}
	if workers < 1 {
		workers = 1
	}

	work := make(chan pair, len(pairs))
	for _, p := range pairs {
		work <- p
	}
	close(work)

	ch := make(chan scored, len(pairs))
	for w := 0; w < workers; w++ {
		go func() {
			for p := range work {
				ch <- scored{pair: p, weight: masks[p.a].OverlapCount(masks[p.b])}
			}
		}()
	}

	for range pairs {
		s := <-ch
		if s.weight == 0 {
			continue
		}
		g.SetWeightedEdge(g.NewWeightedEdge(
			simple.Node(int64(s.a)), simple.Node(int64(s.b)), float64(s.weight)))
	}

	ids := make([]int, len(cat.IDs()))
	copy(ids, cat.IDs())
	return &Adjacency{g: g, ids: ids}
}

// Order returns the number of vertices.
func (a *Adjacency) Order() int {
	return len(a.ids)
}

// IDs returns all vertex ids in ascending order (shared slice).
func (a *Adjacency) IDs() []int {
	return a.ids
}

// Weight returns the edge weight between regions i and j. Pairs with no
// edge (including pairs outside the adjacency radius) have weight 0.
func (a *Adjacency) Weight(i, j int) float64 {
	if i == j {
		return 0
	}
	w, ok := a.g.Weight(int64(i), int64(j))
	if !ok {
		return 0
	}
	return w
}

// HasEdge reports whether regions i and j share a nonzero-weight edge.
func (a *Adjacency) HasEdge(i, j int) bool {
	if i == j {
		return false
	}
	return a.g.HasEdgeBetween(int64(i), int64(j))
}

// Neighbors returns the ids adjacent to region i, ascending.
func (a *Adjacency) Neighbors(i int) []int {
	var out []int
	it := a.g.From(int64(i))
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	sort.Ints(out)
	return out
}

// EdgeCount returns the number of undirected edges.
func (a *Adjacency) EdgeCount() int {
	return a.g.WeightedEdges().Len()
}
