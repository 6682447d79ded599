// Package spatial answers fixed-radius and nearest-K queries over region
// centroids. The index buckets centroids into a uniform grid sized to the
// query radius, so a radius query only scans the nine surrounding buckets.
package spatial

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Index is an immutable spatial index over a set of region centroids.
type Index struct {
	ids     []int // ascending
	pos     map[int]r2.Vec
	cell    float64
	buckets map[[2]int][]int
}

// NewIndex builds an index over the given centroids with grid cells of
// cellSize units. cellSize should normally equal the adjacency radius.
func NewIndex(pos map[int]r2.Vec, cellSize float64) *Index {
	ix := &Index{
		ids:     make([]int, 0, len(pos)),
		pos:     pos,
		cell:    cellSize,
		buckets: make(map[[2]int][]int),
	}
	for id := range pos {
		ix.ids = append(ix.ids, id)
	}
	sort.Ints(ix.ids)
	for _, id := range ix.ids {
		k := ix.bucketKey(pos[id])
		ix.buckets[k] = append(ix.buckets[k], id)
	}
	return ix
}

func (ix *Index) bucketKey(v r2.Vec) [2]int {
	return [2]int{int(math.Floor(v.X / ix.cell)), int(math.Floor(v.Y / ix.cell))}
}

// Len returns the number of indexed centroids.
func (ix *Index) Len() int {
	return len(ix.ids)
}

// IDs returns all indexed ids in ascending order (shared slice).
func (ix *Index) IDs() []int {
	return ix.ids
}

// WithinRadius returns the ids whose centroid lies within radius of id's
// centroid, excluding id itself, in ascending id order. radius must not
// exceed the index cell size.
func (ix *Index) WithinRadius(id int, radius float64) []int {
	center := ix.pos[id]
	key := ix.bucketKey(center)

	var out []int
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			for _, nid := range ix.buckets[[2]int{key[0] + dx, key[1] + dy}] {
				if nid == id {
					continue
				}
				if dist(center, ix.pos[nid]) <= radius {
					out = append(out, nid)
				}
			}
		}
	}
	sort.Ints(out)
	return out
}

// NearestK returns the k ids whose centroids are nearest to id's centroid,
// including id itself (distance 0). Ties are broken by ascending id; k is
// clamped to the index size.
func (ix *Index) NearestK(id int, k int) []int {
	if k > len(ix.ids) {
		k = len(ix.ids)
	}
	if k <= 0 {
		return nil
	}

	center := ix.pos[id]
	cand := make([]int, len(ix.ids))
	copy(cand, ix.ids)
	sort.SliceStable(cand, func(i, j int) bool {
		di, dj := dist(center, ix.pos[cand[i]]), dist(center, ix.pos[cand[j]])
		if di != dj {
			return di < dj
		}
		return cand[i] < cand[j]
	})
	return cand[:k]
}

func dist(a, b r2.Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Dist returns the Euclidean distance between two indexed centroids.
func (ix *Index) Dist(i, j int) float64 {
	return dist(ix.pos[i], ix.pos[j])
}
