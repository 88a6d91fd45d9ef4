package porosity

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Linspace returns n evenly spaced values from min to max inclusive.
// n=0 yields an empty slice and n=1 yields [min].
func Linspace(min, max float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{min}
	}
	return floats.Span(make([]float64, n), min, max)
}

// Grid is the set of sample coordinates along each axis. Samples are
// visited in x, then y, then z order.
type Grid struct {
	X, Y, Z []float64
}

// Len returns the number of grid points.
func (g Grid) Len() int { return len(g.X) * len(g.Y) * len(g.Z) }

// At returns the grid point with the given axis indices.
func (g Grid) At(i, j, k int) r3.Vec {
	return r3.Vec{X: g.X[i], Y: g.Y[j], Z: g.Z[k]}
}

// NewGrid returns the grid configured by cfg. With GridFromBounds the
// grid spans bb on every axis instead of the configured ranges.
func NewGrid(cfg Config, bb r3.Box) Grid {
	if cfg.GridFromBounds {
		return Grid{
			X: Linspace(bb.Min.X, bb.Max.X, cfg.Resolution),
			Y: Linspace(bb.Min.Y, bb.Max.Y, cfg.Resolution),
			Z: Linspace(bb.Min.Z, bb.Max.Z, cfg.Resolution),
		}
	}
	return Grid{
		X: Linspace(cfg.Min, cfg.Max, cfg.Resolution),
		Y: Linspace(cfg.Min, cfg.Max, cfg.Resolution),
		Z: Linspace(cfg.MinZ, cfg.MaxZ, cfg.Resolution),
	}
}
