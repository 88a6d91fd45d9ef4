package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	sdfxrender "github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/latticefab/scaffold"
	"github.com/latticefab/scaffold/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// maxVoxelCells caps the number of cells along the longest axis of
// a voxel remesh.
const maxVoxelCells = 4096

// VoxelRenderer rebuilds the surface of an SDF3 on a uniform voxel grid
// using marching cubes. The result is a closed, manifold surface with
// edge lengths on the order of the voxel size.
type VoxelRenderer struct {
	buf triangle3Buffer
}

// sdfxModel adapts a scaffold.SDF3 to the sdfx SDF3 interface.
type sdfxModel struct {
	s  scaffold.SDF3
	bb sdf.Box3
}

func (m sdfxModel) Evaluate(p v3.Vec) float64 {
	return m.s.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (m sdfxModel) BoundingBox() sdf.Box3 { return m.bb }

// NewVoxelRenderer remeshes s with cubic voxels of side voxelSize.
// The bounding box of s is padded by two voxels so the surface
// is closed where it touches the bounds.
func NewVoxelRenderer(s scaffold.SDF3, voxelSize float64) (*VoxelRenderer, error) {
	if s == nil {
		return nil, errors.New("nil SDF3")
	}
	if !(voxelSize > 0) || math.IsInf(voxelSize, 0) {
		return nil, fmt.Errorf("invalid voxel size %g", voxelSize)
	}
	bb := d3.Box(s.Bounds())
	size := bb.Size()
	if !d3.Finite(size) || size.X < 0 || size.Y < 0 || size.Z < 0 {
		return nil, errors.New("SDF3 has invalid bounds")
	}
	bb = bb.Enlarge(d3.Elem(4 * voxelSize))
	size = bb.Size()
	longest := math.Max(size.X, math.Max(size.Y, size.Z))
	cells := int(math.Ceil(longest / voxelSize))
	if cells > maxVoxelCells {
		return nil, fmt.Errorf("voxel size %g too small for model of size %g (%d cells > %d)", voxelSize, longest, cells, maxVoxelCells)
	}
	model := sdfxModel{
		s: s,
		bb: sdf.Box3{
			Min: v3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
			Max: v3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
		},
	}
	tris := sdfxrender.ToTriangles(model, sdfxrender.NewMarchingCubesUniform(cells))
	vr := &VoxelRenderer{}
	vr.buf.buf = make([]Triangle3, 0, len(tris))
	tol := voxelSize * 1e-4
	for _, tri := range tris {
		var t Triangle3
		for j := 0; j < 3; j++ {
			v := tri[j]
			t[j] = r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
		}
		if t.Degenerate(tol) {
			continue
		}
		vr.buf.buf = append(vr.buf.buf, t)
	}
	return vr, nil
}

// ReadTriangles implements the Renderer interface.
func (vr *VoxelRenderer) ReadTriangles(dst []Triangle3) (int, error) {
	if vr.buf.Len() == 0 {
		return 0, io.EOF
	}
	return vr.buf.Read(dst), nil
}

// Len returns the number of triangles not yet read.
func (vr *VoxelRenderer) Len() int { return vr.buf.Len() }
