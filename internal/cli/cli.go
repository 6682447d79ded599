package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the parsed CLI arguments.
type Config struct {
	InPath          string
	RunID           string
	OutDir          string
	Radius          float64
	SubgraphK       int
	DilationSize    int
	CenterThreshold float64
	CenterX         int
	CenterY         int
	Workers         int
}

// Parse parses CLI arguments and returns a validated Config.
func Parse() (Config, error) {
	inPath := flag.String("in", "", "Path to segmented label image (required, supports TIF, TIFF, PNG)")
	runID := flag.String("run-id", "", "Run identifier used to name output files (required)")
	outDir := flag.String("out", "graphs", "Directory for the output graph file pairs")
	radius := flag.Float64("radius", 100, "Spatial adjacency search radius in pixels")
	subgraphK := flag.Int("k", 64, "Neighborhood size: regions per extracted subgraph")
	dilationSize := flag.Int("dilation", 6, "Elliptical structuring element size for mask dilation")
	centerThreshold := flag.Float64("center-threshold", 150, "Max distance from the image center for a region to anchor a subgraph")
	centerX := flag.Int("center-x", 512, "Image center x coordinate")
	centerY := flag.Int("center-y", 512, "Image center y coordinate")
	workers := flag.Int("workers", 8, "Goroutines used for mask overlap scoring")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cellgraph [options]\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n  cellgraph --in=seg/sample1.tif --run-id=sample1 --out=graphs --radius=100 --k=64\n")
	}

	flag.Parse()

	if *inPath == "" {
		return Config{}, fmt.Errorf("--in is required")
	}
	if ext := strings.ToLower(filepath.Ext(*inPath)); ext != ".tif" && ext != ".tiff" && ext != ".png" {
		return Config{}, fmt.Errorf("--in must be a .tif, .tiff or .png file, got %q", ext)
	}
	if *runID == "" {
		return Config{}, fmt.Errorf("--run-id is required")
	}
	if *outDir == "" {
		return Config{}, fmt.Errorf("--out must not be empty")
	}
	if *radius <= 0 {
		return Config{}, fmt.Errorf("--radius must be positive, got %g", *radius)
	}
	if *subgraphK <= 0 {
		return Config{}, fmt.Errorf("--k must be positive, got %d", *subgraphK)
	}
	if *dilationSize <= 0 {
		return Config{}, fmt.Errorf("--dilation must be positive, got %d", *dilationSize)
	}
	if *centerThreshold < 0 {
		return Config{}, fmt.Errorf("--center-threshold must be >= 0, got %g", *centerThreshold)
	}
	if *workers < 1 {
		return Config{}, fmt.Errorf("--workers must be >= 1, got %d", *workers)
	}

	return Config{
		InPath:          *inPath,
		RunID:           *runID,
		OutDir:          *outDir,
		Radius:          *radius,
		SubgraphK:       *subgraphK,
		DilationSize:    *dilationSize,
		CenterThreshold: *centerThreshold,
		CenterX:         *centerX,
		CenterY:         *centerY,
		Workers:         *workers,
	}, nil
}
