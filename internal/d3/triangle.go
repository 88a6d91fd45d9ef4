package d3

import "gonum.org/v1/gonum/spatial/r3"

// Feature identifies the part of a triangle closest to a query point.
type Feature int

const (
	FeatureV0 Feature = iota
	FeatureV1
	FeatureV2
	FeatureE0 // edge v0-v1
	FeatureE1 // edge v1-v2
	FeatureE2 // edge v2-v0
	FeatureFace
)

// IsVertex reports whether f is one of the triangle vertices.
func (f Feature) IsVertex() bool { return f <= FeatureV2 }

// IsEdge reports whether f is one of the triangle edges.
func (f Feature) IsEdge() bool { return f >= FeatureE0 && f <= FeatureE2 }

const featureTol = 1e-12

// ClosestOnTriangle returns the point on the solid triangle closest to p
// and the triangle feature that point lies on.
// Based on Geometric Tools' algorithm for the distance between a point and
// a solid triangle, licensed under the Boost Software License.
func ClosestOnTriangle(p r3.Vec, tri [3]r3.Vec) (r3.Vec, Feature) {
	a := tri[0]
	diff := r3.Sub(p, a)
	edge0 := r3.Sub(tri[1], a)
	edge1 := r3.Sub(tri[2], a)

	a00 := r3.Dot(edge0, edge0)
	a01 := r3.Dot(edge0, edge1)
	a11 := r3.Dot(edge1, edge1)
	b0 := -r3.Dot(diff, edge0)
	b1 := -r3.Dot(diff, edge1)

	f00 := b0
	f10 := b0 + a00
	f01 := b0 + a01

	var p0, p1, st [2]float64
	var dt1, h0, h1 float64

	if f00 >= 0 {
		if f01 >= 0 {
			st = minEdge02(a11, b1)
		} else {
			p0[0] = 0
			p0[1] = f00 / (f00 - f01)
			p1[0] = f01 / (f01 - f10)
			p1[1] = 1 - p1[0]
			dt1 = p1[1] - p0[1]
			h0 = dt1 * (a11*p0[1] + b1)
			if h0 >= 0 {
				st = minEdge02(a11, b1)
			} else {
				h1 = dt1 * (a01*p1[0] + a11*p1[1] + b1)
				if h1 <= 0 {
					st = minEdge12(a01, a11, b1, f10, f01)
				} else {
					st = minInterior(p0, h0, p1, h1)
				}
			}
		}
	} else if f01 <= 0 {
		if f10 <= 0 {
			st = minEdge12(a01, a11, b1, f10, f01)
		} else {
			p0[0] = f00 / (f00 - f10)
			p0[1] = 0
			p1[0] = f01 / (f01 - f10)
			p1[1] = 1 - p1[0]
			h0 = p1[1] * (a01*p0[0] + b1)
			if h0 >= 0 {
				st = p0
			} else {
				h1 = p1[1] * (a01*p1[0] + a11*p1[1] + b1)
				if h1 <= 0 {
					st = minEdge12(a01, a11, b1, f10, f01)
				} else {
					st = minInterior(p0, h0, p1, h1)
				}
			}
		}
	} else if f10 <= 0 {
		p0[0] = 0
		p0[1] = f00 / (f00 - f01)
		p1[0] = f01 / (f01 - f10)
		p1[1] = 1 - p1[0]
		dt1 = p1[1] - p0[1]
		h0 = dt1 * (a11*p0[1] + b1)
		if h0 >= 0 {
			st = minEdge02(a11, b1)
		} else {
			h1 = dt1 * (a01*p1[0] + a11*p1[1] + b1)
			if h1 <= 0 {
				st = minEdge12(a01, a11, b1, f10, f01)
			} else {
				st = minInterior(p0, h0, p1, h1)
			}
		}
	} else {
		p0[0] = f00 / (f00 - f10)
		p0[1] = 0
		p1[0] = 0
		p1[1] = f00 / (f00 - f01)
		h0 = p1[1] * (a01*p0[0] + b1)
		if h0 >= 0 {
			st = p0
		} else {
			h1 = p1[1] * (a11*p1[1] + b1)
			if h1 <= 0 {
				st = minEdge02(a11, b1)
			} else {
				st = minInterior(p0, h0, p1, h1)
			}
		}
	}
	closest := r3.Add(a, r3.Add(r3.Scale(st[0], edge0), r3.Scale(st[1], edge1)))
	return closest, barycentricFeature(st[0], st[1])
}

func barycentricFeature(s, t float64) Feature {
	s0 := s <= featureTol
	t0 := t <= featureTol
	u0 := 1-s-t <= featureTol
	switch {
	case s0 && t0:
		return FeatureV0
	case t0 && u0:
		return FeatureV1
	case s0 && u0:
		return FeatureV2
	case t0:
		return FeatureE0
	case u0:
		return FeatureE1
	case s0:
		return FeatureE2
	}
	return FeatureFace
}

func minEdge02(a11, b1 float64) (p [2]float64) {
	p[0] = 0
	if b1 >= 0 {
		p[1] = 0
	} else if a11+b1 <= 0 {
		p[1] = 1
	} else {
		p[1] = -b1 / a11
	}
	return p
}

func minEdge12(a01, a11, b1, f10, f01 float64) (p [2]float64) {
	h0 := a01 + b1 - f10
	if h0 >= 0 {
		p[1] = 0
	} else {
		h1 := a11 + b1 - f01
		if h1 <= 0 {
			p[1] = 1
		} else {
			p[1] = h0 / (h0 - h1)
		}
	}
	p[0] = 1 - p[1]
	return p
}

func minInterior(p0 [2]float64, h0 float64, p1 [2]float64, h1 float64) (p [2]float64) {
	z := h0 / (h0 - h1)
	omz := 1 - z
	p[0] = omz*p0[0] + z*p1[0]
	p[1] = omz*p0[1] + z*p1[1]
	return p
}
