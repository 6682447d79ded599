// Package cellgraph extracts per-cell local neighborhood graphs from a
// segmented microscopy image.
//
// The input is an integer label raster produced by an external segmentation
// step (label 0 = background, labels >= 2 = cells). For every cell near the
// image center, cellgraph builds the induced graph over its nearest
// neighbors — edges weighted by dilated-mask pixel overlap and annotated
// with centroid distance and angular dissimilarity — and writes the graph
// as an edge-table / vertex-table file pair.
//
// Usage as a library:
//
//	img, _ := cellgraph.LoadImage("seg/sample1.tif")
//	n, _ := cellgraph.Run(img, "sample1", "graphs", cellgraph.DefaultOptions())
//
// Or use the file-based convenience:
//
//	n, err := cellgraph.RunFile("seg/sample1.tif", "sample1", "graphs", cellgraph.DefaultOptions())
package cellgraph

import (
	"fmt"
	"image"
	"math"

	"github.com/maax3v3/cellgraph/internal/export"
	"github.com/maax3v3/cellgraph/internal/graph"
	"github.com/maax3v3/cellgraph/internal/imaging"
	"github.com/maax3v3/cellgraph/internal/morph"
	"github.com/maax3v3/cellgraph/internal/region"
	"github.com/maax3v3/cellgraph/internal/spatial"
	"github.com/maax3v3/cellgraph/internal/subgraph"
	"gonum.org/v1/gonum/spatial/r2"
)

// Options configures the graph extraction pipeline.
type Options struct {
	// Radius is the spatial adjacency search radius in pixels. Only region
	// pairs whose centroids lie within Radius of each other are candidates
	// for an adjacency edge.
	// Default: 100.
	Radius float64

	// SubgraphK is the neighborhood size: each extracted subgraph covers
	// the K regions (center included) nearest to the center's centroid.
	// Default: 64.
	SubgraphK int

	// DilationSize is the side of the elliptical structuring element used
	// to dilate region masks before overlap scoring.
	// Default: 6.
	DilationSize int

	// CenterThreshold is the maximum distance (in pixels) from ImageCenter
	// for a region to qualify as a subgraph center.
	// Default: 150.
	CenterThreshold float64

	// ImageCenter is the reference point for center selection.
	// Default: (512, 512), the center of a 1024x1024 frame.
	ImageCenter image.Point

	// Workers is the number of goroutines scoring mask overlaps.
	// Default: 8.
	Workers int
}

// DefaultOptions returns Options with the standard tunables.
func DefaultOptions() Options {
	return Options{
		Radius:          100,
		SubgraphK:       64,
		DilationSize:    6,
		CenterThreshold: 150,
		ImageCenter:     image.Pt(512, 512),
		Workers:         8,
	}
}

// LoadImage reads a segmented label image from disk. Supports TIFF and PNG.
func LoadImage(path string) (image.Image, error) {
	return imaging.Load(path)
}

// Run extracts one neighborhood graph per qualifying center region and
// writes each graph's file pair under outDir, named
// <runID>_<NNN>_ed.csv / <runID>_<NNN>_ve.csv with NNN = 000..M-1.
// It returns the number of file pairs written.
//
// The run aborts on the first failed center; because centers are numbered
// in write order, a failure never leaves a gap in the sequence.
func Run(img image.Image, runID, outDir string, opts Options) (int, error) {
	if img == nil {
		return 0, fmt.Errorf("input image is nil")
	}
	if opts.Radius <= 0 {
		return 0, fmt.Errorf("adjacency radius must be positive, got %g", opts.Radius)
	}
	if opts.SubgraphK <= 0 {
		return 0, fmt.Errorf("subgraph size must be positive, got %d", opts.SubgraphK)
	}
	if opts.DilationSize <= 0 {
		return 0, fmt.Errorf("dilation size must be positive, got %d", opts.DilationSize)
	}

	lm := imaging.FromImage(img)

	// Catalog all labeled regions: pixel masks and centroids.
	cat := region.BuildCatalog(lm)

	// Dilate every mask once; the dilated masks are read-only from here on.
	dilator := morph.NewDilator(opts.DilationSize, lm.Bounds())
	defer dilator.Close()
	masks, err := dilator.DilateAll(cat)
	if err != nil {
		return 0, fmt.Errorf("dilating masks: %w", err)
	}

	pos := make(map[int]r2.Vec, cat.Len())
	for _, id := range cat.IDs() {
		pos[id] = cat.Centroid(id)
	}
	ix := spatial.NewIndex(pos, opts.Radius)

	adj := graph.Build(cat, masks, ix, opts.Radius, opts.Workers)

	centers := selectCenters(cat, opts.ImageCenter, opts.CenterThreshold)
	for seq, id := range centers {
		sg, err := subgraph.Extract(id, adj, cat, ix, opts.SubgraphK)
		if err != nil {
			return seq, fmt.Errorf("extracting subgraph for center %d: %w", id, err)
		}
		if err := export.WritePair(outDir, runID, seq, sg); err != nil {
			return seq, fmt.Errorf("serializing center %d: %w", id, err)
		}
	}
	return len(centers), nil
}

// RunFile is a convenience that loads the label image from inPath and runs
// the pipeline on it.
func RunFile(inPath, runID, outDir string, opts Options) (int, error) {
	img, err := LoadImage(inPath)
	if err != nil {
		return 0, fmt.Errorf("loading label image: %w", err)
	}
	return Run(img, runID, outDir, opts)
}

// selectCenters returns, in ascending id order, the regions whose centroid
// lies within threshold of the image center point.
func selectCenters(cat *region.Catalog, center image.Point, threshold float64) []int {
	var out []int
	for _, id := range cat.IDs() {
		c := cat.Centroid(id)
		if math.Hypot(c.X-float64(center.X), c.Y-float64(center.Y)) < threshold {
			out = append(out, id)
		}
	}
	return out
}
