package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/latticefab/scaffold/internal/config"
	"github.com/latticefab/scaffold/mesh"
	"github.com/latticefab/scaffold/porosity"
	"github.com/latticefab/scaffold/preview"
	"github.com/latticefab/scaffold/props"
)

func runPorosity(ctx context.Context, args []string) error {
	fs := newFlagSet("porosity", "mesh.stl")
	var (
		cfgPath = fs.String("config", "", "YAML job file")
		out     = fs.String("o", "", "report file (default radius.txt next to the mesh)")
		hist    = fs.String("hist", "", "save a radius histogram to this image file")
		spheres = fs.Bool("spheres", false, "write marker spheres and a preview (overrides config)")
		view    = fs.String("preview", "", "marker preview PNG (default <name>_porosity.png)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("porosity needs exactly one mesh file")
	}
	path := fs.Arg(0)
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	pc := cfg.Porosity
	if *spheres {
		pc.ShowSpheres = true
	}

	m, err := mesh.Load(path)
	if err != nil {
		return err
	}
	bvh, err := mesh.NewBVH(m)
	if err != nil {
		return err
	}
	res, err := porosity.Estimate(ctx, bvh, pc)
	if err != nil {
		return err
	}
	if res.TimedOut {
		log.Println("Script stopped due to timeout")
	}
	log.Printf("sampled %d of %d points in %s, %d outside (pore fraction %.4f)",
		res.Sampled, res.Total, res.Elapsed, res.Outside(), res.PoreFraction())

	reportPath := *out
	if reportPath == "" {
		reportPath = filepath.Join(filepath.Dir(path), "radius.txt")
	}
	if err := writeReport(reportPath, res.Samples); err != nil {
		return err
	}
	if *hist != "" && len(res.Samples) > 0 {
		if err := porosity.PlotHistogram(*hist, res.Samples, 0); err != nil {
			return err
		}
	}

	if pc.ShowSpheres {
		if err := writeMarkers(path, m, res.Top(pc.TopK), *view); err != nil {
			return err
		}
	}
	obj, err := props.Load(path)
	if err != nil {
		return err
	}
	obj.SetAll(res.Properties(pc.TopK))
	if err := obj.Save(); err != nil {
		return err
	}
	log.Printf("Bounding box min: %v", res.Bounds.Min)
	log.Printf("Bounding box max: %v", res.Bounds.Max)
	return nil
}

func writeReport(path string, samples []porosity.Sample) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := porosity.WriteReport(fp, samples); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// writeMarkers saves a sphere mesh with a Diameter property for every
// top sample and a preview of the mesh with the spheres in red.
func writeMarkers(path string, m *mesh.Mesh, top []porosity.Sample, view string) error {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	markers := porosity.Markers(top)
	meshes := make([]*mesh.Mesh, len(markers))
	for i, mk := range markers {
		log.Printf("Top %d sphere center: %v, diameter: %v", i+1, mk.Center, mk.Diameter)
		spherePath := fmt.Sprintf("%s_sphere_%d.stl", base, i+1)
		if err := mk.Mesh.Save(spherePath); err != nil {
			return err
		}
		obj, err := props.Load(spherePath)
		if err != nil {
			return err
		}
		obj.Set("Diameter", mk.Diameter)
		if err := obj.Save(); err != nil {
			return err
		}
		meshes[i] = mk.Mesh
	}
	if view == "" {
		view = base + "_porosity.png"
	}
	return preview.SavePNG(view, m, meshes, preview.DefaultOptions())
}
