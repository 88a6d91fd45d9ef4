// Package strut builds scaffold struts by sweeping a cross section along
// smooth curves through point paths and remeshing the union into a single
// clean surface.
package strut

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/latticefab/scaffold"
	"github.com/latticefab/scaffold/helpers/matter"
	"github.com/latticefab/scaffold/mesh"
	"github.com/latticefab/scaffold/render"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config controls Build. The zero value is not usable, start from
// DefaultConfig.
type Config struct {
	// Dir holds input_dimension.txt and input_path_<i>.txt.
	Dir            string  `yaml:"dir"`
	Bevel          string  `yaml:"bevel_type"`
	RectangleWidth float64 `yaml:"rectangle_width"`
	// Vertices above ThresholdHigh or below ThresholdLow are deleted
	// after the first remesh.
	ThresholdHigh float64 `yaml:"threshold_high"`
	ThresholdLow  float64 `yaml:"threshold_low"`
	// NumberOfFiles is the number of path files. Zero reads files until
	// the first one missing.
	NumberOfFiles    int     `yaml:"number_of_files"`
	VoxelSizeInitial float64 `yaml:"voxel_size_initial"`
	VoxelSizeFinal   float64 `yaml:"voxel_size_final"`
	FinalRemesh      bool    `yaml:"final_remesh"`
	CurveOrder       int     `yaml:"curve_order"`
	CurveResolution  int     `yaml:"curve_resolution"`
	MergeDistance    float64 `yaml:"merge_distance"`
	// Fillet rounds strut junctions with a polynomial blend of this
	// size. Zero keeps sharp junctions.
	Fillet    float64 `yaml:"fillet"`
	FillHoles bool    `yaml:"fill_holes"`
	// Material enables shrink compensation, e.g. "PLA".
	Material string `yaml:"material"`
	// Workers limits concurrent path loading. Zero uses GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the configuration used for the reference scaffolds.
func DefaultConfig() Config {
	return Config{
		Dir:              ".",
		Bevel:            BevelRectangle,
		RectangleWidth:   0.3,
		ThresholdHigh:    127.5,
		ThresholdLow:     0.5,
		NumberOfFiles:    256,
		VoxelSizeInitial: 0.1,
		VoxelSizeFinal:   0.05,
		CurveOrder:       4,
		CurveResolution:  12,
		MergeDistance:    1e-6,
		FillHoles:        true,
	}
}

// Validate checks the configuration for values Build cannot work with.
func (c Config) Validate() error {
	bevel := strings.ToUpper(c.Bevel)
	switch {
	case bevel != BevelCircle && bevel != BevelRectangle:
		return fmt.Errorf("bevel_type must be %s or %s, got %q", BevelCircle, BevelRectangle, c.Bevel)
	case bevel == BevelRectangle && !(c.RectangleWidth > 0):
		return errors.New("rectangle_width must be positive")
	case c.ThresholdLow >= c.ThresholdHigh:
		return fmt.Errorf("threshold_low %g must be below threshold_high %g", c.ThresholdLow, c.ThresholdHigh)
	case c.NumberOfFiles < 0:
		return errors.New("number_of_files must not be negative")
	case !(c.VoxelSizeInitial > 0):
		return errors.New("voxel_size_initial must be positive")
	case c.FinalRemesh && !(c.VoxelSizeFinal > 0):
		return errors.New("voxel_size_final must be positive")
	case c.CurveOrder < 2 || c.CurveOrder > maxOrder:
		return fmt.Errorf("curve_order must be in [2, %d]", maxOrder)
	case c.CurveResolution < 1:
		return errors.New("curve_resolution must be at least 1")
	case c.MergeDistance < 0:
		return errors.New("merge_distance must not be negative")
	case c.Fillet < 0:
		return errors.New("fillet must not be negative")
	case c.Workers < 0:
		return errors.New("workers must not be negative")
	}
	_, _, err := matter.ByName(c.Material)
	return err
}

// PathStats describes one swept path.
type PathStats struct {
	Index     int
	File      string
	Points    int
	Samples   int
	Order     int
	Dimension float64
	Length    float64
}

// Result is the output of Build.
type Result struct {
	Mesh  *mesh.Mesh
	Paths []PathStats
	// Cleanup counters.
	Deleted     int
	HolesFilled int
	Merged      int
	Flipped     int
}

type sweptPath struct {
	stats PathStats
	prims []scaffold.SDF3
}

// Build reads the dimension and path files in cfg.Dir, sweeps the
// configured profile along every path, remeshes the union and cleans
// the result between the Z thresholds.
func Build(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dims, err := loadDimensions(cfg.Dir)
	if err != nil {
		return nil, err
	}
	n := cfg.NumberOfFiles
	if n == 0 {
		n = discoverPaths(cfg.Dir)
		if n == 0 {
			return nil, fmt.Errorf("no path files in %s", cfg.Dir)
		}
	}
	if len(dims) < n {
		return nil, fmt.Errorf("%d dimensions for %d path files", len(dims), n)
	}

	swept := make([]sweptPath, n)
	g, gctx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sp, err := sweepFile(cfg, i+1, dims[i])
			if err != nil {
				return err
			}
			swept[i] = sp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Paths: make([]PathStats, n)}
	var prims []scaffold.SDF3
	for i, sp := range swept {
		res.Paths[i] = sp.stats
		prims = append(prims, sp.prims...)
	}
	field, err := NewField(prims)
	if err != nil {
		return nil, err
	}
	if cfg.Fillet > 0 {
		field.SetMin(scaffold.PolyMin(cfg.Fillet))
	}
	var model scaffold.SDF3 = field
	if mat, ok, _ := matter.ByName(cfg.Material); ok {
		model = mat.Scale(model)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := Remesh(model, cfg.VoxelSizeInitial)
	if err != nil {
		return nil, err
	}
	res.Deleted = m.DeleteVertices(func(v r3.Vec) bool {
		return v.Z > cfg.ThresholdHigh || v.Z < cfg.ThresholdLow
	})
	if len(m.Faces) == 0 {
		return nil, fmt.Errorf("nothing left between z=%g and z=%g: %w", cfg.ThresholdLow, cfg.ThresholdHigh, mesh.ErrEmpty)
	}
	if cfg.FillHoles {
		res.HolesFilled = m.FillHoles()
	}
	res.Merged = m.MergeByDistance(cfg.MergeDistance)
	res.Flipped = m.MakeNormalsConsistent()
	if cfg.FinalRemesh {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sdf, err := mesh.NewSDF(m)
		if err != nil {
			return nil, err
		}
		m, err = Remesh(sdf, cfg.VoxelSizeFinal)
		if err != nil {
			return nil, err
		}
	}
	res.Mesh = m
	return res, nil
}

func sweepFile(cfg Config, index int, dim float64) (sweptPath, error) {
	file := PathFile(cfg.Dir, index)
	pts, err := loadPath(file)
	if err != nil {
		return sweptPath{}, err
	}
	prof, err := NewProfile(cfg.Bevel, dim, cfg.RectangleWidth)
	if err != nil {
		return sweptPath{}, fmt.Errorf("%s: %w", file, err)
	}
	if len(pts) < 2 {
		return sweptPath{}, fmt.Errorf("%s: a strut needs at least 2 points", file)
	}
	curve, err := NewCurve(pts, cfg.CurveOrder)
	if err != nil {
		return sweptPath{}, fmt.Errorf("%s: %w", file, err)
	}
	samples := curve.Sample(cfg.CurveResolution)
	prims, err := Primitives(samples, prof)
	if err != nil {
		return sweptPath{}, fmt.Errorf("%s: %w", file, err)
	}
	var length float64
	for i := 1; i < len(samples); i++ {
		length += r3.Norm(r3.Sub(samples[i], samples[i-1]))
	}
	return sweptPath{
		stats: PathStats{
			Index:     index,
			File:      file,
			Points:    len(pts),
			Samples:   len(samples),
			Order:     curve.Order(),
			Dimension: dim,
			Length:    length,
		},
		prims: prims,
	}, nil
}

// Remesh rebuilds the surface of s on a uniform voxel grid and welds the
// result into an indexed mesh.
func Remesh(s scaffold.SDF3, voxelSize float64) (*mesh.Mesh, error) {
	vr, err := render.NewVoxelRenderer(s, voxelSize)
	if err != nil {
		return nil, err
	}
	tris, err := render.RenderAll(vr)
	if err != nil {
		return nil, err
	}
	m := mesh.FromTriangles(tris, voxelSize*1e-3)
	if len(m.Faces) == 0 {
		return nil, fmt.Errorf("voxel remesh at %g: %w", voxelSize, mesh.ErrEmpty)
	}
	if m.Volume() < 0 {
		m.FlipNormals()
	}
	return m, nil
}
