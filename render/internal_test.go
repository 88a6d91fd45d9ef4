package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/latticefab/scaffold/form3/must3"
	"github.com/latticefab/scaffold/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLWriteReadback(t *testing.T) {
	const (
		voxel = 0.1
		tol   = 1e-5
	)
	s0 := must3.Tube(r3.Vec{}, r3.Vec{X: 2, Y: 1, Z: 3}, 0.5)
	size := r3.Norm(d3.Box(s0.Bounds()).Size())
	// calculate relative tolerance
	rtol := tol * size
	vr, err := NewVoxelRenderer(s0, voxel)
	if err != nil {
		t.Fatal(err)
	}
	input, err := RenderAll(vr)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	err = WriteSTL(&b, input)
	if err != nil {
		t.Fatal(err)
	}
	output, err := readBinarySTL(&b, b.Len())
	if err != nil && !errors.Is(err, errCalculatedNormalMismatch) {
		t.Fatal(err)
	}
	if len(output) != len(input) {
		t.Fatal("length of triangles written/read not equal")
	}
	mismatches := 0
	for iface, expect := range input {
		got := output[iface]
		for i := range expect {
			if !d3.EqualWithin(got[i], expect[i], rtol) {
				mismatches++
				t.Errorf("%dth triangle equality out of tolerance. got vertex %0.5g, want %0.5g", iface, got[i], expect[i])
			}
		}
		if mismatches > 10 {
			t.Fatal("too many mismatches")
		}
	}
}

func TestSTLReaderChunks(t *testing.T) {
	model := make([]Triangle3, 2500)
	for i := range model {
		x := float64(i)
		model[i] = Triangle3{{X: x}, {X: x + 1}, {X: x, Y: 1}}
	}
	rd := &stlReader{r: NewSliceRenderer(model)}
	var b bytes.Buffer
	buf := make([]byte, 50*7+13)
	for {
		n, err := rd.Read(buf)
		b.Write(buf[:n])
		if err != nil {
			break
		}
	}
	if b.Len() != 50*len(model) {
		t.Fatalf("wrote %d bytes, want %d", b.Len(), 50*len(model))
	}
	var d stlTriangle
	d.get(b.Bytes()[50*1234:])
	if got := d.toTriangle3(); got != model[1234] {
		t.Errorf("got %v, want %v", got, model[1234])
	}
}

func TestTriangle3(t *testing.T) {
	tri := Triangle3{{}, {X: 1}, {Y: 1}}
	if n := tri.Normal(); n != (r3.Vec{Z: 1}) {
		t.Errorf("normal %v", n)
	}
	if a := tri.Area(); a != 0.5 {
		t.Errorf("area %g", a)
	}
	if !(Triangle3{{}, {}, {Y: 1}}).Degenerate(1e-12) {
		t.Error("expected degenerate")
	}
	if !(Triangle3{{}, {X: 1}, {X: 2}}).Degenerate(1e-12) {
		t.Error("expected collinear triangle to be degenerate")
	}
}
