package main

import (
	"fmt"
	"image"
	"os"

	"github.com/maax3v3/cellgraph"
	"github.com/maax3v3/cellgraph/internal/cli"
)

func main() {
	cfg, err := cli.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := cellgraph.Options{
		Radius:          cfg.Radius,
		SubgraphK:       cfg.SubgraphK,
		DilationSize:    cfg.DilationSize,
		CenterThreshold: cfg.CenterThreshold,
		ImageCenter:     image.Pt(cfg.CenterX, cfg.CenterY),
		Workers:         cfg.Workers,
	}

	fmt.Printf("Loading label image: %s\n", cfg.InPath)
	img, err := cellgraph.LoadImage(cfg.InPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Label image loaded: %dx%d\n", img.Bounds().Dx(), img.Bounds().Dy())

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Extracting neighborhood graphs (radius=%g, k=%d)...\n", opts.Radius, opts.SubgraphK)
	n, err := cellgraph.Run(img, cfg.RunID, cfg.OutDir, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d graph file pairs to %s\n", n, cfg.OutDir)
	fmt.Println("Done!")
}
