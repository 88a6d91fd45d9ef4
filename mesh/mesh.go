// Package mesh implements an indexed triangle mesh together with the
// queries and cleanup operators needed to measure and repair scaffold
// geometry.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/latticefab/scaffold/internal/d3"
	"github.com/latticefab/scaffold/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// WeldTolerance is the vertex welding distance used by Load.
const WeldTolerance = 1e-6

// ErrEmpty is returned when an operation requires at least one face.
var ErrEmpty = errors.New("mesh has no faces")

// Mesh is an indexed triangle mesh. Faces index into Vertices and are
// wound counter-clockwise when seen from outside the solid.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
}

// FromTriangles builds an indexed mesh from a triangle soup. A vertex
// within tol of an earlier vertex is welded to the nearest such vertex.
// Faces that collapse after welding are dropped. A tol of zero welds
// only identical vertices.
func FromTriangles(model []render.Triangle3, tol float64) *Mesh {
	m := &Mesh{Faces: make([][3]int, 0, len(model))}
	exact := make(map[r3.Vec]int)
	// Cells are tol wide so every vertex within tol of v lies in the
	// 27 cells around the cell of v.
	grid := make(map[[3]int64][]int)
	key := func(v r3.Vec) [3]int64 {
		return [3]int64{
			int64(math.Floor(v.X / tol)),
			int64(math.Floor(v.Y / tol)),
			int64(math.Floor(v.Z / tol)),
		}
	}
	weld := func(v r3.Vec) (int, bool) {
		c := key(v)
		best, bestDist := -1, tol*tol
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, idx := range grid[[3]int64{c[0] + dx, c[1] + dy, c[2] + dz}] {
						if d := r3.Norm2(r3.Sub(m.Vertices[idx], v)); d <= bestDist {
							best, bestDist = idx, d
						}
					}
				}
			}
		}
		if best >= 0 {
			return best, true
		}
		idx := len(m.Vertices)
		grid[c] = append(grid[c], idx)
		return idx, false
	}
	for _, tri := range model {
		var face [3]int
		for j, v := range tri {
			var idx int
			var ok bool
			if tol > 0 {
				idx, ok = weld(v)
			} else {
				idx, ok = exact[v]
				if !ok {
					idx = len(m.Vertices)
					exact[v] = idx
				}
			}
			if !ok {
				m.Vertices = append(m.Vertices, v)
			}
			face[j] = idx
		}
		if face[0] == face[1] || face[1] == face[2] || face[2] == face[0] {
			continue
		}
		m.Faces = append(m.Faces, face)
	}
	return m
}

// Load reads an STL file into a welded mesh.
func Load(path string) (*Mesh, error) {
	model, err := render.LoadSTL(path)
	if err != nil {
		return nil, err
	}
	m := FromTriangles(model, WeldTolerance)
	if len(m.Faces) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return m, nil
}

// Save writes the mesh as a binary STL file.
func (m *Mesh) Save(path string) error {
	if len(m.Faces) == 0 {
		return ErrEmpty
	}
	return render.CreateSTL(path, render.NewSliceRenderer(m.Triangles()))
}

// Triangle returns the vertices of the ith face.
func (m *Mesh) Triangle(i int) render.Triangle3 {
	f := m.Faces[i]
	return render.Triangle3{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

// Triangles returns the faces of the mesh as a triangle soup.
func (m *Mesh) Triangles() []render.Triangle3 {
	out := make([]render.Triangle3, len(m.Faces))
	for i := range m.Faces {
		out[i] = m.Triangle(i)
	}
	return out
}

// Bounds returns the bounding box of the vertices referenced by faces.
func (m *Mesh) Bounds() r3.Box {
	bb := d3.EmptyBox()
	for _, f := range m.Faces {
		for _, idx := range f {
			bb = bb.Include(m.Vertices[idx])
		}
	}
	return r3.Box(bb)
}

// Volume returns the signed volume enclosed by the mesh using the
// divergence theorem. An inward facing mesh has negative volume. The
// result is only meaningful for closed meshes.
func (m *Mesh) Volume() float64 {
	return facesVolume(m.Vertices, m.Faces)
}

func facesVolume(verts []r3.Vec, faces [][3]int) float64 {
	var vol float64
	for _, f := range faces {
		a, b, c := verts[f[0]], verts[f[1]], verts[f[2]]
		vol += r3.Dot(a, r3.Cross(b, c))
	}
	return vol / 6
}

// Area returns the total surface area of the mesh.
func (m *Mesh) Area() float64 {
	var area float64
	for i := range m.Faces {
		area += m.Triangle(i).Area()
	}
	return area
}

// Append adds the faces of other to m.
func (m *Mesh) Append(other *Mesh) {
	off := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, f := range other.Faces {
		m.Faces = append(m.Faces, [3]int{f[0] + off, f[1] + off, f[2] + off})
	}
}

// compact drops vertices no face references and reindexes faces.
func (m *Mesh) compact() {
	remap := make([]int, len(m.Vertices))
	for i := range remap {
		remap[i] = -1
	}
	verts := make([]r3.Vec, 0, len(m.Vertices))
	for i, f := range m.Faces {
		for j, idx := range f {
			if remap[idx] < 0 {
				remap[idx] = len(verts)
				verts = append(verts, m.Vertices[idx])
			}
			m.Faces[i][j] = remap[idx]
		}
	}
	m.Vertices = verts
}
