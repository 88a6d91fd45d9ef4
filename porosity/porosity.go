// Package porosity estimates the pore space around a scaffold mesh by
// sampling a regular grid, discarding samples inside the solid and
// measuring the distance from every outside sample to the nearest surface.
package porosity

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/latticefab/scaffold/mesh"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config controls Estimate.
type Config struct {
	// Resolution is the number of samples along each axis.
	Resolution int `yaml:"resolution"`
	// X and Y sample range.
	Min float64 `yaml:"linspace_min"`
	Max float64 `yaml:"linspace_max"`
	// Z sample range.
	MinZ         float64    `yaml:"linspace_min_z"`
	MaxZ         float64    `yaml:"linspace_max_z"`
	RayDirection [3]float64 `yaml:"ray_direction"`
	ShowSpheres  bool       `yaml:"show_spheres"`
	// MaxDuration stops sampling once exceeded. Zero disables the limit.
	MaxDuration    time.Duration `yaml:"max_duration"`
	TopK           int           `yaml:"top_k"`
	GridFromBounds bool          `yaml:"grid_from_bounds"`
	// Workers is the number of concurrent X slices. Zero uses GOMAXPROCS.
	Workers    int     `yaml:"workers"`
	RayEpsilon float64 `yaml:"ray_epsilon"`
}

// DefaultConfig returns the sampling setup used for the reference scaffolds.
func DefaultConfig() Config {
	return Config{
		Resolution:   80,
		Min:          0.5,
		Max:          10,
		MinZ:         1,
		MaxZ:         9,
		RayDirection: [3]float64{1, 0, 0},
		MaxDuration:  120 * time.Second,
		TopK:         3,
		RayEpsilon:   1e-6,
	}
}

// Validate checks cfg for values Estimate cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Resolution < 0:
		return errors.New("resolution must not be negative")
	case c.RayDirection == [3]float64{}:
		return errors.New("ray_direction must not be zero")
	case c.MaxDuration < 0:
		return errors.New("max_duration must not be negative")
	case c.TopK < 0:
		return errors.New("top_k must not be negative")
	case c.Workers < 0:
		return errors.New("workers must not be negative")
	case !(c.RayEpsilon > 0):
		return errors.New("ray_epsilon must be positive")
	}
	return nil
}

func (c Config) direction() r3.Vec {
	return r3.Vec{X: c.RayDirection[0], Y: c.RayDirection[1], Z: c.RayDirection[2]}
}

// Sample is a grid point outside the solid and its distance to the
// nearest surface, the radius of the largest empty sphere centred there.
type Sample struct {
	Point    r3.Vec
	Distance float64
}

// Diameter returns twice the sample distance.
func (s Sample) Diameter() float64 { return 2 * s.Distance }

// Result holds the outcome of Estimate.
type Result struct {
	// Samples outside the solid sorted by descending distance. Samples
	// with equal distance keep grid order.
	Samples []Sample
	// Sampled is the number of grid points classified before finishing
	// or timing out. Total is the grid size.
	Sampled, Total int
	// TimedOut is set when MaxDuration expired before the grid was done.
	TimedOut bool
	// Bounds is the bounding box of the mesh.
	Bounds  r3.Box
	Elapsed time.Duration
}

// Outside returns the number of samples outside the solid.
func (r *Result) Outside() int { return len(r.Samples) }

// PoreFraction is the fraction of classified samples outside the solid.
func (r *Result) PoreFraction() float64 {
	if r.Sampled == 0 {
		return 0
	}
	return float64(len(r.Samples)) / float64(r.Sampled)
}

// Top returns up to k samples with the largest distance.
func (r *Result) Top(k int) []Sample {
	if k > len(r.Samples) {
		k = len(r.Samples)
	}
	if k < 0 {
		k = 0
	}
	return r.Samples[:k]
}

// Properties returns the top k diameters keyed Diameter_1..Diameter_k.
func (r *Result) Properties(k int) map[string]float64 {
	top := r.Top(k)
	props := make(map[string]float64, len(top))
	for i, s := range top {
		props[fmt.Sprintf("Diameter_%d", i+1)] = s.Diameter()
	}
	return props
}

// slice is the sampling result of a single X index.
type slice struct {
	samples  []Sample
	sampled  int
	complete bool
}

// Estimate samples the grid configured by cfg against the mesh in bvh.
// X slices of the grid are sampled concurrently and merged in grid order.
// If MaxDuration expires, sampling stops and the result holds the samples
// visited in grid order up to the first unfinished slice with TimedOut set.
// Cancelling ctx aborts with its error.
func Estimate(ctx context.Context, bvh *mesh.BVH, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	res := &Result{Bounds: bvh.Bounds()}
	grid := NewGrid(cfg, res.Bounds)
	res.Total = grid.Len()

	sctx := ctx
	if cfg.MaxDuration > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, cfg.MaxDuration)
		defer cancel()
	}
	dir := cfg.direction()
	slices := make([]slice, len(grid.X))
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(grid.X))
	// Slices are claimed in grid order so that an interrupted run always
	// holds a complete prefix of the grid.
	var (
		g    errgroup.Group
		next atomic.Int64
	)
	for range workers {
		g.Go(func() error {
			for {
				i := int(next.Add(1) - 1)
				if i >= len(grid.X) {
					return nil
				}
				slices[i] = sampleSlice(sctx, bvh, grid, i, dir, cfg.RayEpsilon)
			}
		})
	}
	_ = g.Wait() // slices never fail; timeouts are recorded per slice
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, s := range slices {
		res.Samples = append(res.Samples, s.samples...)
		res.Sampled += s.sampled
		if !s.complete {
			res.TimedOut = true
			break
		}
	}
	sort.SliceStable(res.Samples, func(i, j int) bool {
		return res.Samples[i].Distance > res.Samples[j].Distance
	})
	res.Elapsed = time.Since(start)
	return res, nil
}

func sampleSlice(ctx context.Context, bvh *mesh.BVH, grid Grid, i int, dir r3.Vec, eps float64) (s slice) {
	for j := range grid.Y {
		for k := range grid.Z {
			if ctx.Err() != nil {
				return s
			}
			p := grid.At(i, j, k)
			s.sampled++
			if Inside(bvh, p, dir, eps) {
				continue
			}
			s.samples = append(s.samples, Sample{Point: p, Distance: bvh.FindNearest(p).Distance})
		}
	}
	s.complete = true
	return s
}
