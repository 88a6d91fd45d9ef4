package strut

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
)

// Curve is a clamped uniform B-spline through its control points, the
// equivalent of a NURBS curve with unit weights and endpoint knots. It
// starts at the first control point and ends at the last.
type Curve struct {
	ctrl  []r3.Vec
	order int
	knots []float64
}

// NewCurve returns a curve of the given order (degree+1). The order is
// clamped to the number of control points so short paths degrade to
// lower degree curves.
func NewCurve(ctrl []r3.Vec, order int) (*Curve, error) {
	if len(ctrl) < 2 {
		return nil, errors.New("curve needs at least 2 control points")
	}
	if order < 2 {
		return nil, errors.New("curve order must be at least 2")
	}
	if order > maxOrder {
		return nil, errors.New("curve order too large")
	}
	if order > len(ctrl) {
		order = len(ctrl)
	}
	n := len(ctrl)
	knots := make([]float64, n+order)
	for i := range knots {
		switch {
		case i < order:
			knots[i] = 0
		case i < n:
			knots[i] = float64(i - order + 1)
		default:
			knots[i] = float64(n - order + 1)
		}
	}
	return &Curve{ctrl: append([]r3.Vec(nil), ctrl...), order: order, knots: knots}, nil
}

// Order returns the effective order of the curve.
func (c *Curve) Order() int { return c.order }

// Spans returns the number of control point segments of the curve.
func (c *Curve) Spans() int { return len(c.ctrl) - 1 }

// Domain returns the parameter range of the curve.
func (c *Curve) Domain() (u0, u1 float64) {
	return 0, c.knots[len(c.knots)-1]
}

// At evaluates the curve at parameter u using de Boor's algorithm.
// u is clamped to the curve domain.
func (c *Curve) At(u float64) r3.Vec {
	_, umax := c.Domain()
	if u <= 0 {
		return c.ctrl[0]
	}
	if u >= umax {
		return c.ctrl[len(c.ctrl)-1]
	}
	p := c.order - 1
	s := p + int(u)
	if s > len(c.ctrl)-1 {
		s = len(c.ctrl) - 1
	}
	var d [maxOrder]r3.Vec
	for j := 0; j <= p; j++ {
		d[j] = c.ctrl[j+s-p]
	}
	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			lo := c.knots[j+s-p]
			hi := c.knots[j+1+s-r]
			alpha := (u - lo) / (hi - lo)
			d[j] = r3.Add(r3.Scale(1-alpha, d[j-1]), r3.Scale(alpha, d[j]))
		}
	}
	return d[p]
}

const maxOrder = 16

// Sample evaluates the curve at Spans()*resolution+1 evenly spaced
// parameters, endpoints included.
func (c *Curve) Sample(resolution int) []r3.Vec {
	if resolution < 1 {
		resolution = 1
	}
	count := c.Spans()*resolution + 1
	_, umax := c.Domain()
	out := make([]r3.Vec, count)
	for i := range out {
		out[i] = c.At(umax * float64(i) / float64(count-1))
	}
	return out
}
