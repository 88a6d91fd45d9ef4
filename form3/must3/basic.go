package must3

import (
	"math"

	"github.com/latticefab/scaffold"
	"github.com/latticefab/scaffold/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// sphere is a sphere centered at the origin.
type sphere struct {
	radius float64
	bb     r3.Box
}

// Sphere return an SDF3 for a sphere centered at the origin.
func Sphere(radius float64) scaffold.SDF3 {
	if radius <= 0 {
		panic("radius <= 0")
	}
	d := d3.Elem(radius)
	return &sphere{
		radius: radius,
		bb:     r3.Box{Min: r3.Scale(-1, d), Max: d},
	}
}

func (s *sphere) Evaluate(p r3.Vec) float64 {
	return r3.Norm(p) - s.radius
}

func (s *sphere) Bounds() r3.Box {
	return s.bb
}

// box is an axis aligned box centered at the origin.
type box struct {
	size  r3.Vec // half size, reduced by round
	round float64
	bb    r3.Box
}

// Box return an SDF3 for a 3d box centered at the origin (rounded corners with round > 0).
func Box(size r3.Vec, round float64) scaffold.SDF3 {
	if d3.Min(size) <= 0 {
		panic("size <= 0")
	}
	if round < 0 {
		panic("round < 0")
	}
	size = r3.Scale(0.5, size)
	s := box{
		size:  r3.Sub(size, d3.Elem(round)),
		round: round,
		bb:    r3.Box{Min: r3.Scale(-1, size), Max: size},
	}
	return &s
}

func (s *box) Evaluate(p r3.Vec) float64 {
	return sdfBox3d(p, s.size) - s.round
}

func (s *box) Bounds() r3.Box {
	return s.bb
}

// sdfBox3d is the distance from p to a box of half size s centered at the origin.
func sdfBox3d(p, s r3.Vec) float64 {
	d := r3.Sub(d3.AbsElem(p), s)
	outside := r3.Norm(d3.MaxElem(d, r3.Vec{}))
	inside := math.Min(d3.Max(d), 0)
	return outside + inside
}
