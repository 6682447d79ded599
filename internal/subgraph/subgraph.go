// Package subgraph extracts the attributed local neighborhood graph around
// one center region: the induced subgraph on the K nearest regions, with
// per-edge Euclidean distance and angular dissimilarity relative to the
// neighborhood's own centroid of centroids.
package subgraph

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/maax3v3/cellgraph/internal/graph"
	"github.com/maax3v3/cellgraph/internal/region"
	"github.com/maax3v3/cellgraph/internal/spatial"
)

// Edge is one undirected subgraph edge. Row and Col are 0-based positional
// indices into the subgraph's vertex order, with Row < Col.
type Edge struct {
	Row    int
	Col    int
	Angle  float64 // cosine distance of mean-centered endpoint centroids
	Dist   float64 // Euclidean distance between endpoint centroids
	Weight float64 // dilated-mask overlap count from the adjacency graph
}

// Subgraph is the induced neighborhood graph around one center. Vertices
// are identified positionally; the centroid side table maps each position
// back to its region's centroid coordinate.
type Subgraph struct {
	ids    []int    // selected region ids, ascending (the positional order)
	coords []r2.Vec // parallel to ids
	edges  []Edge   // sorted by (Row, Col)
}

// Extract selects the k regions nearest to centerID (including the center,
// ties by ascending id), induces the adjacency subgraph on that set, and
// attaches distance and angle attributes to every edge.
//
// Two selected regions sharing an identical centroid is a degenerate
// segmentation; it is reported as an error rather than letting the two
// vertices collide in the output tables.
func Extract(centerID int, adj *graph.Adjacency, cat *region.Catalog, ix *spatial.Index, k int) (*Subgraph, error) {
	if cat.Len() == 0 {
		return &Subgraph{}, nil
	}

	selected := ix.NearestK(centerID, k)
	ids := make([]int, len(selected))
	copy(ids, selected)
	sort.Ints(ids)

	coords := make([]r2.Vec, len(ids))
	seen := make(map[r2.Vec]int, len(ids))
	for i, id := range ids {
		c := cat.Centroid(id)
		if prev, dup := seen[c]; dup {
			return nil, fmt.Errorf("regions %d and %d share centroid (%g, %g)", prev, id, c.X, c.Y)
		}
		seen[c] = id
		coords[i] = c
	}

	// Mean centroid of the selected set, the origin for angle attributes.
	var mean r2.Vec
	for _, c := range coords {
		mean = mean.Add(c)
	}
	mean = mean.Scale(1 / float64(len(coords)))

	var edges []Edge
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			w := adj.Weight(ids[i], ids[j])
			if w == 0 {
				continue
			}
			edges = append(edges, Edge{
				Row:    i,
				Col:    j,
				Angle:  cosineDistance(coords[i].Sub(mean), coords[j].Sub(mean)),
				Dist:   math.Hypot(coords[i].X-coords[j].X, coords[i].Y-coords[j].Y),
				Weight: w,
			})
		}
	}

	return &Subgraph{ids: ids, coords: coords, edges: edges}, nil
}

// cosineDistance returns 1 - cos(u, v). A zero-norm vector (a centroid
// coinciding with the neighborhood mean) has no direction; its cosine term
// is taken as 0, giving distance 1.
func cosineDistance(u, v r2.Vec) float64 {
	uu := []float64{u.X, u.Y}
	vv := []float64{v.X, v.Y}
	nu := floats.Norm(uu, 2)
	nv := floats.Norm(vv, 2)
	if nu == 0 || nv == 0 {
		return 1
	}
	return 1 - floats.Dot(uu, vv)/(nu*nv)
}

// Len returns the number of vertices.
func (s *Subgraph) Len() int {
	return len(s.ids)
}

// EdgeCount returns the number of undirected edges.
func (s *Subgraph) EdgeCount() int {
	return len(s.edges)
}

// IDs returns the selected region ids in positional order (shared slice).
func (s *Subgraph) IDs() []int {
	return s.ids
}

// Vertices returns the centroid coordinates in positional order
// (shared slice).
func (s *Subgraph) Vertices() []r2.Vec {
	return s.coords
}

// Edges returns the undirected edges sorted by (Row, Col) (shared slice).
func (s *Subgraph) Edges() []Edge {
	return s.edges
}
