package main

import (
	"context"
	"log"
	"time"

	"github.com/latticefab/scaffold/internal/config"
	"github.com/latticefab/scaffold/strut"
)

func runStrut(ctx context.Context, args []string) error {
	fs := newFlagSet("strut", "")
	var (
		cfgPath = fs.String("config", "", "YAML job file")
		dir     = fs.String("dir", "", "folder with input_dimension.txt and input_path_<i>.txt (overrides config)")
		out     = fs.String("o", "combined_paths.stl", "output STL file")
		bevel   = fs.String("bevel", "", "CIRCLE or RECTANGLE (overrides config)")
		final   = fs.Bool("final-remesh", false, "remesh again at voxel_size_final")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	sc := cfg.Strut
	if *dir != "" {
		sc.Dir = *dir
	}
	if *bevel != "" {
		sc.Bevel = *bevel
	}
	if *final {
		sc.FinalRemesh = true
	}
	start := time.Now()
	res, err := strut.Build(ctx, sc)
	if err != nil {
		return err
	}
	for _, p := range res.Paths {
		log.Printf("path %d: %d points, %d samples, order %d, dimension %g, length %.4f",
			p.Index, p.Points, p.Samples, p.Order, p.Dimension, p.Length)
	}
	log.Printf("cleanup: %d vertices deleted, %d holes filled, %d vertices merged, %d faces flipped",
		res.Deleted, res.HolesFilled, res.Merged, res.Flipped)
	if err := res.Mesh.Save(*out); err != nil {
		return err
	}
	log.Printf("wrote %s: %d vertices, %d faces in %s", *out, len(res.Mesh.Vertices), len(res.Mesh.Faces), time.Since(start).Round(time.Millisecond))
	return nil
}
