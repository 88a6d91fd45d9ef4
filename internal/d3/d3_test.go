package d3

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBox(t *testing.T) {
	bb := EmptyBox()
	for _, v := range []r3.Vec{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0, Z: 5}, {X: 0, Y: 4, Z: 4}} {
		bb = bb.Include(v)
	}
	want := Box{Min: r3.Vec{X: -1, Y: 0, Z: 3}, Max: r3.Vec{X: 1, Y: 4, Z: 5}}
	if bb != want {
		t.Fatalf("Include: got %v, want %v", bb, want)
	}
	if got := bb.Size(); got != (r3.Vec{X: 2, Y: 4, Z: 2}) {
		t.Errorf("Size %v", got)
	}
	if got := bb.Center(); got != (r3.Vec{X: 0, Y: 2, Z: 4}) {
		t.Errorf("Center %v", got)
	}
	big := bb.Enlarge(Elem(2))
	if want := (Box{Min: r3.Vec{X: -2, Y: -1, Z: 2}, Max: r3.Vec{X: 2, Y: 5, Z: 6}}); !EqualWithin(big.Min, want.Min, 1e-15) || !EqualWithin(big.Max, want.Max, 1e-15) {
		t.Errorf("Enlarge %v", big)
	}
	ext := bb.Extend(Box{Min: r3.Vec{X: 5, Y: 5, Z: 5}, Max: r3.Vec{X: 6, Y: 6, Z: 6}})
	if ext.Max != (r3.Vec{X: 6, Y: 6, Z: 6}) || ext.Min != bb.Min {
		t.Errorf("Extend %v", ext)
	}
	if !bb.Contains(bb.Min) || !bb.Contains(bb.Center()) || bb.Contains(r3.Vec{X: 1.5, Y: 2, Z: 4}) {
		t.Error("Contains")
	}
	if d := bb.MinDist2(bb.Center()); d != 0 {
		t.Errorf("MinDist2 inside = %g", d)
	}
	if d := bb.MinDist2(r3.Vec{X: 4, Y: 8, Z: 4}); d != 9+16 {
		t.Errorf("MinDist2 outside = %g", d)
	}
}

func TestIntersectRay(t *testing.T) {
	bb := Box{Max: Elem(1)}
	inv := func(d r3.Vec) r3.Vec { return r3.Vec{X: 1 / d.X, Y: 1 / d.Y, Z: 1 / d.Z} }

	tmin, tmax, ok := bb.IntersectRay(r3.Vec{X: -1, Y: 0.5, Z: 0.5}, inv(r3.Vec{X: 1}))
	if !ok || tmin != 1 || tmax != 2 {
		t.Errorf("axis ray: %g %g %v", tmin, tmax, ok)
	}
	// Parallel to the X slabs but outside them.
	if _, _, ok := bb.IntersectRay(r3.Vec{X: 2, Y: -1, Z: 0.5}, inv(r3.Vec{Y: 1})); ok {
		t.Error("parallel ray outside slab hit the box")
	}
	if _, _, ok := bb.IntersectRay(r3.Vec{X: -1, Y: 3, Z: 0.5}, inv(r3.Vec{X: 1, Y: 1})); ok {
		t.Error("diagonal ray should miss")
	}
	tmin, tmax, ok = bb.IntersectRay(r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, inv(r3.Vec{Z: -1}))
	if !ok || tmin != -0.5 || tmax != 0.5 {
		t.Errorf("ray from inside: %g %g %v", tmin, tmax, ok)
	}
}

func TestTransform(t *testing.T) {
	p := r3.Vec{X: 1, Y: -2, Z: 0.5}
	if got := (Transform{}).Transform(p); got != p {
		t.Errorf("identity moved %v to %v", p, got)
	}
	if got := (Transform{}).Translate(r3.Vec{X: 1, Y: 1, Z: 1}).Transform(p); got != (r3.Vec{X: 2, Y: -1, Z: 1.5}) {
		t.Errorf("translate gave %v", got)
	}

	origin := r3.Vec{X: 1, Y: 2, Z: 3}
	x, y, z := r3.Vec{Y: 1}, r3.Vec{X: -1}, r3.Vec{Z: 1}
	frame := NewFrame(origin, x, y, z)
	for _, test := range []struct{ world, local r3.Vec }{
		{origin, r3.Vec{}},
		{r3.Add(origin, r3.Scale(2, y)), r3.Vec{Y: 2}},
		{r3.Add(origin, r3.Vec{X: 1, Y: 1, Z: -1}), r3.Vec{X: 1, Y: -1, Z: -1}},
	} {
		if got := frame.Transform(test.world); !EqualWithin(got, test.local, 1e-12) {
			t.Errorf("frame(%v) = %v, want %v", test.world, got, test.local)
		}
	}
	inv := frame.Inv()
	if got := inv.Transform(r3.Vec{Y: 2}); !EqualWithin(got, r3.Add(origin, r3.Scale(2, y)), 1e-12) {
		t.Errorf("inverse frame gave %v", got)
	}
	for _, p := range []r3.Vec{{}, {X: 1, Y: -2, Z: 3}, {X: -4, Y: 0.5, Z: 7}} {
		if got := inv.Transform(frame.Transform(p)); !EqualWithin(got, p, 1e-12) {
			t.Errorf("inverse does not undo frame at %v: got %v", p, got)
		}
	}
	if singular := NewTransform(make([]float64, 16)).Inv(); singular != zeroTransform {
		t.Error("singular transform should invert to zero transform")
	}
}

func TestClosestOnTriangle(t *testing.T) {
	tri := [3]r3.Vec{{}, {X: 1}, {Y: 1}}
	for _, test := range []struct {
		p, want r3.Vec
		feat    Feature
	}{
		{r3.Vec{X: 0.2, Y: 0.2, Z: 1}, r3.Vec{X: 0.2, Y: 0.2}, FeatureFace},
		{r3.Vec{X: -1, Y: -1}, r3.Vec{}, FeatureV0},
		{r3.Vec{X: 2, Y: -1, Z: 0.5}, r3.Vec{X: 1}, FeatureV1},
		{r3.Vec{X: -0.5, Y: 3}, r3.Vec{Y: 1}, FeatureV2},
		{r3.Vec{X: 0.5, Y: -1}, r3.Vec{X: 0.5}, FeatureE0},
		{r3.Vec{X: 1, Y: 1, Z: -2}, r3.Vec{X: 0.5, Y: 0.5}, FeatureE1},
		{r3.Vec{X: -1, Y: 0.5, Z: 0.3}, r3.Vec{Y: 0.5}, FeatureE2},
	} {
		got, feat := ClosestOnTriangle(test.p, tri)
		if !EqualWithin(got, test.want, 1e-12) || feat != test.feat {
			t.Errorf("ClosestOnTriangle(%v) = %v %v, want %v %v", test.p, got, feat, test.want, test.feat)
		}
	}
	if !FeatureV2.IsVertex() || FeatureE0.IsVertex() || !FeatureE2.IsEdge() || FeatureFace.IsEdge() {
		t.Error("feature classification")
	}
}
