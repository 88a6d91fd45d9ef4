package must3

import (
	"math"

	"github.com/latticefab/scaffold"
	"github.com/latticefab/scaffold/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// segment is a straight extrusion of a 2D profile from a to b with
// flat caps. Evaluation happens in a local frame where the segment
// runs along +Z from the origin.
type segment struct {
	frame  d3.Transform
	length float64
	// profile half extents for rectangles, radius in hx for circles.
	hx, hy float64
	round  bool
	bb     r3.Box
}

// Tube returns an SDF3 for a cylinder of the argument radius with
// its flat caps centered on a and b.
func Tube(a, b r3.Vec, radius float64) scaffold.SDF3 {
	if radius <= 0 {
		panic("radius <= 0")
	}
	s := newSegment(a, b)
	s.hx = radius
	s.round = true
	s.bb = segmentBounds(a, b, radius)
	return s
}

// RectTube returns an SDF3 for a rectangular prism with its end faces
// centered on a and b. width is measured along the profile normal which
// is kept perpendicular to world Z, height along the binormal.
func RectTube(a, b r3.Vec, width, height float64) scaffold.SDF3 {
	if width <= 0 || height <= 0 {
		panic("rectangle width and height must be positive")
	}
	s := newSegment(a, b)
	s.hx = width / 2
	s.hy = height / 2
	s.bb = segmentBounds(a, b, math.Hypot(s.hx, s.hy))
	return s
}

func newSegment(a, b r3.Vec) *segment {
	dir := r3.Sub(b, a)
	length := r3.Norm(dir)
	if length < 1e-12 {
		panic("zero length segment")
	}
	t := r3.Scale(1/length, dir)
	n, bn := scaffold.Orthonormal(t)
	return &segment{
		frame:  d3.NewFrame(a, n, bn, t),
		length: length,
	}
}

func segmentBounds(a, b r3.Vec, reach float64) r3.Box {
	bb := d3.EmptyBox().Include(a).Include(b)
	return r3.Box(bb.Enlarge(d3.Elem(2 * reach)))
}

func (s *segment) Evaluate(p r3.Vec) float64 {
	q := s.frame.Transform(p)
	dz := math.Abs(q.Z-s.length/2) - s.length/2
	if s.round {
		dr := math.Hypot(q.X, q.Y) - s.hx
		return math.Min(math.Max(dr, dz), 0) + math.Hypot(math.Max(dr, 0), math.Max(dz, 0))
	}
	dx := math.Abs(q.X) - s.hx
	dy := math.Abs(q.Y) - s.hy
	outside := r3.Norm(r3.Vec{X: math.Max(dx, 0), Y: math.Max(dy, 0), Z: math.Max(dz, 0)})
	inside := math.Min(math.Max(dx, math.Max(dy, dz)), 0)
	return outside + inside
}

func (s *segment) Bounds() r3.Box {
	return s.bb
}
