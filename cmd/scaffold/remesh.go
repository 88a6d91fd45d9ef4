package main

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"

	"github.com/latticefab/scaffold"
	"github.com/latticefab/scaffold/helpers/matter"
	"github.com/latticefab/scaffold/mesh"
	"github.com/latticefab/scaffold/preview"
	"github.com/latticefab/scaffold/strut"
)

func runRemesh(ctx context.Context, args []string) error {
	fs := newFlagSet("remesh", "mesh.stl")
	var (
		voxel    = fs.Float64("voxel", strut.DefaultConfig().VoxelSizeFinal, "voxel size")
		out      = fs.String("o", "", "output STL file (default <name>_remesh.stl)")
		material = fs.String("material", "", "apply shrink compensation for a print material, e.g. PLA")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("remesh needs exactly one mesh file")
	}
	path := fs.Arg(0)
	m, err := mesh.Load(path)
	if err != nil {
		return err
	}
	s, err := mesh.NewSDF(m)
	if err != nil {
		return err
	}
	model, err := scaled(s, *material)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	rm, err := strut.Remesh(model, *voxel)
	if err != nil {
		return err
	}
	if *out == "" {
		*out = strings.TrimSuffix(path, filepath.Ext(path)) + "_remesh.stl"
	}
	log.Printf("remeshed %s at %g: %d -> %d faces, volume %.4f -> %.4f",
		path, *voxel, len(m.Faces), len(rm.Faces), m.Volume(), rm.Volume())
	return rm.Save(*out)
}

func runPreview(ctx context.Context, args []string) error {
	fs := newFlagSet("preview", "mesh.stl")
	opt := preview.DefaultOptions()
	out := fs.String("o", "", "output PNG (default <name>.png)")
	fs.IntVar(&opt.Width, "width", opt.Width, "image width in pixels")
	fs.IntVar(&opt.Height, "height", opt.Height, "image height in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("preview needs exactly one mesh file")
	}
	path := fs.Arg(0)
	m, err := mesh.Load(path)
	if err != nil {
		return err
	}
	if *out == "" {
		*out = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}
	return preview.SavePNG(*out, m, nil, opt)
}

// scaled applies the shrink compensation of material to s. An empty
// material leaves s unchanged.
func scaled(s scaffold.SDF3, material string) (scaffold.SDF3, error) {
	mat, ok, err := matter.ByName(material)
	if err != nil || !ok {
		return s, err
	}
	return mat.Scale(s), nil
}
