package form3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestShapeErrors(t *testing.T) {
	for name, build := range map[string]func() error{
		"sphere radius": func() error { _, err := Sphere(0); return err },
		"box size":      func() error { _, err := Box(r3.Vec{X: 1, Y: -1, Z: 1}, 0); return err },
		"box round":     func() error { _, err := Box(r3.Vec{X: 1, Y: 1, Z: 1}, -0.1); return err },
		"tube radius":   func() error { _, err := Tube(r3.Vec{}, r3.Vec{Z: 1}, -1); return err },
		"tube length":   func() error { _, err := Tube(r3.Vec{Z: 1}, r3.Vec{Z: 1}, 1); return err },
		"rect width":    func() error { _, err := RectTube(r3.Vec{}, r3.Vec{X: 1}, 0, 1); return err },
	} {
		err := build()
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if se, ok := err.(*shapeErr); !ok || se.stack == "" {
			t.Errorf("%s: got %T without stack", name, err)
		}
	}
}

func TestTube(t *testing.T) {
	a, b := r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{X: 1, Y: 1, Z: 3}
	s, err := Tube(a, b, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		p    r3.Vec
		want float64
	}{
		{r3.Vec{X: 1, Y: 1, Z: 2}, -0.5},
		{r3.Vec{X: 2, Y: 1, Z: 2}, 0.5},
		{r3.Vec{X: 1, Y: 1, Z: 4}, 1},
		{r3.Vec{X: 1, Y: 1, Z: 0.75}, 0.25},
		// Beyond the cap rim.
		{r3.Vec{X: 2.5, Y: 1, Z: 0}, math.Sqrt2},
	} {
		if got := s.Evaluate(test.p); math.Abs(got-test.want) > 1e-12 {
			t.Errorf("Evaluate(%v) = %g, want %g", test.p, got, test.want)
		}
	}
	bb := s.Bounds()
	if bb.Min.X > 0.5 || bb.Max.Z < 3.5 || bb.Min.Z > 0.5 {
		t.Errorf("bounds %v do not cover the tube", bb)
	}
}

func TestRectTube(t *testing.T) {
	// Horizontal strut: width lies along Y, height along Z.
	s, err := RectTube(r3.Vec{}, r3.Vec{X: 4}, 1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		p    r3.Vec
		want float64
	}{
		{r3.Vec{X: 2}, -0.25},
		{r3.Vec{X: 2, Y: 1}, 0.5},
		{r3.Vec{X: 2, Z: 1}, 0.75},
		{r3.Vec{X: -1}, 1},
		{r3.Vec{X: 5, Y: 0.5, Z: 0.25}, 1},
	} {
		if got := s.Evaluate(test.p); math.Abs(got-test.want) > 1e-12 {
			t.Errorf("Evaluate(%v) = %g, want %g", test.p, got, test.want)
		}
	}
}

func TestBoxSphere(t *testing.T) {
	b, err := Box(r3.Vec{X: 2, Y: 4, Z: 6}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Evaluate(r3.Vec{}); got != -1 {
		t.Errorf("box center %g", got)
	}
	if got := b.Evaluate(r3.Vec{X: 2, Y: 3, Z: 3}); math.Abs(got-math.Sqrt2) > 1e-12 {
		t.Errorf("box corner %g", got)
	}
	rounded, err := Box(r3.Vec{X: 2, Y: 2, Z: 2}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	// Corner of the unrounded box lies outside the rounded one.
	if got := rounded.Evaluate(r3.Vec{X: 1, Y: 1, Z: 1}); got <= 0 {
		t.Errorf("rounded corner %g", got)
	}
	s, err := Sphere(2)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Evaluate(r3.Vec{X: 3, Y: 4}); got != 3 {
		t.Errorf("sphere %g", got)
	}
	if bb := s.Bounds(); bb.Max != (r3.Vec{X: 2, Y: 2, Z: 2}) {
		t.Errorf("sphere bounds %v", bb)
	}
}
