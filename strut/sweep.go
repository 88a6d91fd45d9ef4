package strut

import (
	"errors"
	"math"

	"github.com/latticefab/scaffold"
	"github.com/latticefab/scaffold/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const minSegment = 1e-9

// Primitives returns the pieces of prof swept along the polyline pts:
// one extrusion per segment plus the profile joints at interior points.
// Repeated points are skipped.
func Primitives(pts []r3.Vec, prof Profile) ([]scaffold.SDF3, error) {
	var prims []scaffold.SDF3
	last := -1
	for i := 1; i < len(pts); i++ {
		a := pts[0]
		if last >= 0 {
			a = pts[last]
		}
		b := pts[i]
		if r3.Norm(r3.Sub(b, a)) < minSegment {
			continue
		}
		if last >= 0 {
			j, err := prof.Joint(a)
			if err != nil {
				return nil, err
			}
			if j != nil {
				prims = append(prims, j)
			}
		}
		seg, err := prof.Segment(a, b)
		if err != nil {
			return nil, err
		}
		prims = append(prims, seg)
		last = i
	}
	if len(prims) == 0 {
		return nil, errors.New("path has zero length")
	}
	return prims, nil
}

// Field is the union of many primitives. Primitives are bucketed into a
// uniform grid of cubic cells so that evaluating a point only visits the
// primitives near it. Far from every primitive the field returns the
// cell size, a lower bound of the true distance.
type Field struct {
	cells  map[scaffold.V3i]scaffold.SDF3Union
	size   float64
	bb     r3.Box
	nprims int
}

// NewField indexes prims. The cell size is the mean bounding box extent
// of the primitives.
func NewField(prims []scaffold.SDF3) (*Field, error) {
	if len(prims) == 0 {
		return nil, errors.New("no primitives to index")
	}
	bb := d3.EmptyBox()
	var mean float64
	for _, p := range prims {
		pb := d3.Box(p.Bounds())
		bb = bb.Extend(pb)
		mean += d3.Max(pb.Size())
	}
	size := math.Max(mean/float64(len(prims)), 1e-6)
	buckets := make(map[scaffold.V3i][]scaffold.SDF3)
	for _, p := range prims {
		pb := d3.Box(p.Bounds())
		lo := scaffold.Cell(r3.Sub(pb.Min, d3.Elem(size)), size)
		hi := scaffold.Cell(r3.Add(pb.Max, d3.Elem(size)), size)
		for i := lo[0]; i <= hi[0]; i++ {
			for j := lo[1]; j <= hi[1]; j++ {
				for k := lo[2]; k <= hi[2]; k++ {
					c := scaffold.V3i{i, j, k}
					buckets[c] = append(buckets[c], p)
				}
			}
		}
	}
	f := &Field{
		cells:  make(map[scaffold.V3i]scaffold.SDF3Union, len(buckets)),
		size:   size,
		bb:     r3.Box(bb),
		nprims: len(prims),
	}
	for c, b := range buckets {
		f.cells[c] = scaffold.Union3D(b...)
	}
	return f, nil
}

// Sweep returns the solid of prof swept along the polyline pts.
func Sweep(pts []r3.Vec, prof Profile) (*Field, error) {
	prims, err := Primitives(pts, prof)
	if err != nil {
		return nil, err
	}
	return NewField(prims)
}

// Evaluate returns the signed distance to the union of primitives.
func (f *Field) Evaluate(p r3.Vec) float64 {
	u, ok := f.cells[scaffold.Cell(p, f.size)]
	if !ok {
		return f.size
	}
	return math.Min(u.Evaluate(p), f.size)
}

// SetMin sets the function joining primitives that share a cell.
// scaffold.PolyMin rounds strut junctions.
func (f *Field) SetMin(min scaffold.MinFunc) {
	for _, u := range f.cells {
		u.SetMin(min)
	}
}

// Bounds returns the bounding box of all primitives.
func (f *Field) Bounds() r3.Box { return f.bb }

// Len returns the number of indexed primitives.
func (f *Field) Len() int { return f.nprims }

// CellSize returns the side of the grid cells.
func (f *Field) CellSize() float64 { return f.size }
