package matter

import (
	"math"
	"testing"

	"github.com/latticefab/scaffold/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestByName(t *testing.T) {
	m, ok, err := ByName("pla")
	if err != nil || !ok || m.Name() != "PLA" {
		t.Fatalf("got %v %v %v", m, ok, err)
	}
	_, ok, err = ByName("")
	if ok || err != nil {
		t.Error("empty name should select no material")
	}
	_, _, err = ByName("unobtainium")
	if err == nil {
		t.Error("expected error for unknown material")
	}
}

func TestScale(t *testing.T) {
	s := PLA.Scale(must3.Sphere(10))
	k := PLA.ScaleFactor()
	if k <= 1 {
		t.Fatalf("shrink compensation must enlarge, got %g", k)
	}
	got := s.Evaluate(r3.Vec{X: 10 * k})
	if math.Abs(got) > 1e-9 {
		t.Errorf("scaled surface not at %g: distance %g", 10*k, got)
	}
}
