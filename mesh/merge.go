package mesh

import (
	"math"

	"github.com/latticefab/scaffold/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// MergeByDistance welds vertices closer than dist to each other into the
// lowest indexed vertex of their neighbourhood. Faces that collapse are
// removed. It returns the number of vertices removed.
func (m *Mesh) MergeByDistance(dist float64) int {
	if len(m.Vertices) == 0 || dist <= 0 {
		return 0
	}
	pts := make(kdVertices, len(m.Vertices))
	for i, v := range m.Vertices {
		pts[i] = kdVertex{V: v, idx: i}
	}
	tree := kdtree.New(pts, true)
	target := make([]int, len(m.Vertices))
	for i := range target {
		target[i] = -1
	}
	d2 := dist * dist
	for i, v := range m.Vertices {
		if target[i] >= 0 {
			continue
		}
		target[i] = i
		keep := kdtree.NewDistKeeper(d2)
		tree.NearestSet(keep, kdVertex{V: v, idx: -1})
		for _, c := range keep.Heap {
			if c.Comparable == nil {
				continue
			}
			j := c.Comparable.(kdVertex).idx
			if target[j] < 0 {
				target[j] = i
			}
		}
	}
	faces := m.Faces[:0]
	for _, f := range m.Faces {
		f = [3]int{target[f[0]], target[f[1]], target[f[2]]}
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			continue
		}
		faces = append(faces, f)
	}
	m.Faces = faces
	before := len(m.Vertices)
	m.compact()
	return before - len(m.Vertices)
}

// kdVertex is a mesh vertex stored in a kd-tree. Distance is squared
// euclidean distance.
type kdVertex struct {
	V   r3.Vec
	idx int
}

func (p kdVertex) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(kdVertex)
	return d3.Component(p.V, int(d)) - d3.Component(q.V, int(d))
}

func (p kdVertex) Dims() int { return 3 }

func (p kdVertex) Distance(c kdtree.Comparable) float64 {
	q := c.(kdVertex)
	return r3.Norm2(r3.Sub(p.V, q.V))
}

type kdVertices []kdVertex

func (p kdVertices) Index(i int) kdtree.Comparable { return p[i] }

func (p kdVertices) Len() int { return len(p) }

// Pivot partitions the list based on the dimension specified.
func (p kdVertices) Pivot(d kdtree.Dim) int {
	pl := kdPlane{dim: int(d), vertices: p}
	return kdtree.Partition(pl, kdtree.MedianOfMedians(pl))
}

func (p kdVertices) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Bounds implements the kdtree.Bounder interface.
func (p kdVertices) Bounds() *kdtree.Bounding {
	min := kdVertex{V: d3.Elem(math.MaxFloat64)}
	max := kdVertex{V: d3.Elem(-math.MaxFloat64)}
	for _, v := range p {
		min.V = d3.MinElem(min.V, v.V)
		max.V = d3.MaxElem(max.V, v.V)
	}
	return &kdtree.Bounding{Min: min, Max: max}
}

type kdPlane struct {
	dim      int
	vertices kdVertices
}

func (p kdPlane) Less(i, j int) bool {
	return p.vertices[i].Compare(p.vertices[j], kdtree.Dim(p.dim)) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}
func (p kdPlane) Len() int {
	return len(p.vertices)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}
