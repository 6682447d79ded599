// Package region builds the catalog of segmented cell regions from a label
// raster: per-region pixel masks, bounding boxes and float centroids.
package region

import (
	"image"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/maax3v3/cellgraph/internal/imaging"
)

// MinLabel is the smallest label id that names a cell region. Label 0 is
// background and label 1 is reserved by the segmentation step.
const MinLabel = 2

// Region is one labeled connected component of the segmented image.
// Regions are built once from the label raster and never mutated.
type Region struct {
	ID       int
	Pixels   []image.Point // all pixel coordinates carrying this label
	Centroid r2.Vec        // mean of Pixels, sub-pixel precision
	Bounds   image.Rectangle
}

// Catalog maps region ids to their immutable Region records.
type Catalog struct {
	regions map[int]*Region
	ids     []int // ascending
}

// BuildCatalog scans the label raster once and buckets pixels by label id.
// Labels below MinLabel are ignored; label ids with no pixels simply do not
// appear (a sparse label range is expected, not an error).
func BuildCatalog(lm *imaging.LabelMap) *Catalog {
	regions := make(map[int]*Region)

	for y := 0; y < lm.Height; y++ {
		for x := 0; x < lm.Width; x++ {
			label := lm.Labels[y*lm.Width+x]
			if label < MinLabel {
				continue
			}
			r, ok := regions[label]
			if !ok {
				r = &Region{
					ID:     label,
					Bounds: image.Rect(x, y, x+1, y+1),
				}
				regions[label] = r
			}
			p := image.Point{X: x, Y: y}
			r.Pixels = append(r.Pixels, p)
			r.Bounds = r.Bounds.Union(image.Rect(x, y, x+1, y+1))
		}
	}

	ids := make([]int, 0, len(regions))
	for id, r := range regions {
		var sx, sy float64
		for _, p := range r.Pixels {
			sx += float64(p.X)
			sy += float64(p.Y)
		}
		n := float64(len(r.Pixels))
		r.Centroid = r2.Vec{X: sx / n, Y: sy / n}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return &Catalog{regions: regions, ids: ids}
}

// Len returns the number of cataloged regions.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// IDs returns all region ids in ascending order. The returned slice is
// shared; callers must not modify it.
func (c *Catalog) IDs() []int {
	return c.ids
}

// Get returns the region with the given id, or nil if it is not cataloged.
func (c *Catalog) Get(id int) *Region {
	return c.regions[id]
}

// Centroid returns the centroid of region id. The id must be cataloged.
func (c *Catalog) Centroid(id int) r2.Vec {
	return c.regions[id].Centroid
}
