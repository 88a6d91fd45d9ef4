package mesh

import (
	"math"
	"sort"

	"github.com/latticefab/scaffold/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const leafSize = 4

// BVH is a bounding interval hierarchy over the faces of a mesh. Each
// internal node splits its faces along the longest axis of its bounds
// at the median face centroid and stores the two clipping planes that
// bound the children. A BVH is immutable and safe for concurrent use.
type BVH struct {
	verts []r3.Vec
	faces [][3]int
	nodes []bihNode
	bb    d3.Box
	// order maps leaf face slots to face indices of the source mesh.
	order []int

	faceN []r3.Vec
	edgeN map[[2]int]r3.Vec
	vertN []r3.Vec
}

type bihNode struct {
	// axis is the split axis (0,1,2) or -1 for leaves.
	axis int
	// Clip planes of internal nodes: the left child lies below
	// leftClip and the right child above rightClip along axis.
	leftClip, rightClip float64
	// child is the index of the left child; the right child follows it.
	child int
	// Leaf face range into BVH.faces.
	start, end int
}

// Hit is the result of a ray cast.
type Hit struct {
	Location r3.Vec
	Normal   r3.Vec
	Face     int
	Distance float64
}

// Nearest is the result of a closest point query.
type Nearest struct {
	Point    r3.Vec
	Normal   r3.Vec
	Face     int
	Distance float64

	feature d3.Feature
}

// NewBVH builds the hierarchy over the faces of m. The face indices
// reported by queries refer to the faces of m. Later changes to m are
// not seen by the BVH.
func NewBVH(m *Mesh) (*BVH, error) {
	if len(m.Faces) == 0 {
		return nil, ErrEmpty
	}
	b := &BVH{
		verts: append([]r3.Vec(nil), m.Vertices...),
		bb:    d3.Box(m.Bounds()),
	}
	order := make([]int, len(m.Faces))
	centroids := make([]r3.Vec, len(m.Faces))
	for i := range order {
		order[i] = i
		centroids[i] = m.Triangle(i).Centroid()
	}
	b.nodes = make([]bihNode, 1)
	b.subdivide(0, 0, order, m.Faces, centroids, b.bb)
	b.faces = make([][3]int, len(order))
	for i, fi := range order {
		b.faces[i] = m.Faces[fi]
	}
	b.order = order
	b.computePseudonormals()
	return b, nil
}

func (b *BVH) subdivide(node, offset int, order []int, faces [][3]int, centroids []r3.Vec, bb d3.Box) {
	if len(order) <= leafSize {
		b.nodes[node] = bihNode{axis: -1, start: offset, end: offset + len(order)}
		return
	}
	// classical heuristic, the longest axis
	// using the median as the pivot point
	dims := bb.Size()
	axis := 2
	if dims.X >= dims.Y && dims.X >= dims.Z {
		axis = 0
	} else if dims.Y >= dims.Z {
		axis = 1
	}
	sort.Slice(order, func(i, j int) bool {
		return d3.Component(centroids[order[i]], axis) < d3.Component(centroids[order[j]], axis)
	})
	half := len(order) / 2
	leftBB, rightBB := d3.EmptyBox(), d3.EmptyBox()
	for _, fi := range order[:half] {
		for _, idx := range faces[fi] {
			leftBB = leftBB.Include(b.verts[idx])
		}
	}
	for _, fi := range order[half:] {
		for _, idx := range faces[fi] {
			rightBB = rightBB.Include(b.verts[idx])
		}
	}
	// append two new nodes to store the children
	child := len(b.nodes)
	b.nodes = append(b.nodes, bihNode{}, bihNode{})
	b.subdivide(child, offset, order[:half], faces, centroids, leftBB)
	b.subdivide(child+1, offset+half, order[half:], faces, centroids, rightBB)
	b.nodes[node] = bihNode{
		axis:      axis,
		leftClip:  d3.Component(leftBB.Max, axis),
		rightClip: d3.Component(rightBB.Min, axis),
		child:     child,
	}
}

// children returns the bounds of the two children of an internal node.
func (n *bihNode) children(bb d3.Box) (left, right d3.Box) {
	left, right = bb, bb
	switch n.axis {
	case 0:
		left.Max.X = n.leftClip
		right.Min.X = n.rightClip
	case 1:
		left.Max.Y = n.leftClip
		right.Min.Y = n.rightClip
	case 2:
		left.Max.Z = n.leftClip
		right.Min.Z = n.rightClip
	}
	return left, right
}

// Bounds returns the bounding box of the mesh.
func (b *BVH) Bounds() r3.Box { return r3.Box(b.bb) }

// NumFaces returns the number of faces in the hierarchy.
func (b *BVH) NumFaces() int { return len(b.faces) }

func (b *BVH) triangle(i int) [3]r3.Vec {
	f := b.faces[i]
	return [3]r3.Vec{b.verts[f[0]], b.verts[f[1]], b.verts[f[2]]}
}

// RayCast returns the nearest intersection of the ray origin + t*dir
// with t > 0. ok is false if the ray hits nothing or dir is zero.
func (b *BVH) RayCast(origin, dir r3.Vec) (hit Hit, ok bool) {
	n := r3.Norm(dir)
	if n == 0 || math.IsNaN(n) {
		return Hit{}, false
	}
	dir = r3.Scale(1/n, dir)
	inv := r3.Vec{X: 1 / dir.X, Y: 1 / dir.Y, Z: 1 / dir.Z}
	best := -1
	bestT := math.Inf(1)
	b.rayHelper(0, b.bb, origin, dir, inv, &best, &bestT)
	if best < 0 {
		return Hit{}, false
	}
	return Hit{
		Location: r3.Add(origin, r3.Scale(bestT, dir)),
		Normal:   b.faceN[best],
		Face:     b.order[best],
		Distance: bestT,
	}, true
}

func (b *BVH) rayHelper(idx int, bb d3.Box, origin, dir, inv r3.Vec, best *int, bestT *float64) {
	tmin, tmax, ok := bb.IntersectRay(origin, inv)
	if !ok || tmax < 0 || tmin > *bestT {
		return
	}
	node := &b.nodes[idx]
	if node.axis < 0 {
		for i := node.start; i < node.end; i++ {
			t, hit := rayTriangle(origin, dir, b.triangle(i))
			if hit && t > 0 && t < *bestT {
				*bestT = t
				*best = i
			}
		}
		return
	}
	left, right := node.children(bb)
	first, second := node.child, node.child+1
	if d3.Component(dir, node.axis) < 0 {
		first, second = second, first
		left, right = right, left
	}
	b.rayHelper(first, left, origin, dir, inv, best, bestT)
	b.rayHelper(second, right, origin, dir, inv, best, bestT)
}

// rayTriangle is the Möller-Trumbore ray/triangle intersection.
func rayTriangle(origin, dir r3.Vec, tri [3]r3.Vec) (t float64, ok bool) {
	const eps = 1e-14
	e1 := r3.Sub(tri[1], tri[0])
	e2 := r3.Sub(tri[2], tri[0])
	pvec := r3.Cross(dir, e2)
	det := r3.Dot(e1, pvec)
	if math.Abs(det) < eps {
		return 0, false // parallel
	}
	invDet := 1 / det
	tvec := r3.Sub(origin, tri[0])
	u := r3.Dot(tvec, pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	qvec := r3.Cross(tvec, e1)
	v := r3.Dot(dir, qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	return r3.Dot(e2, qvec) * invDet, true
}

// FindNearest returns the point on the mesh surface closest to p.
func (b *BVH) FindNearest(p r3.Vec) Nearest {
	best := Nearest{Face: -1, Distance: math.Inf(1)}
	bestD2 := math.Inf(1)
	b.nearestHelper(0, b.bb, p, &best, &bestD2)
	best.Distance = math.Sqrt(bestD2)
	best.Normal = b.faceN[best.Face]
	best.Face = b.order[best.Face]
	return best
}

func (b *BVH) nearestHelper(idx int, bb d3.Box, p r3.Vec, best *Nearest, bestD2 *float64) {
	node := &b.nodes[idx]
	if node.axis < 0 {
		for i := node.start; i < node.end; i++ {
			q, feat := d3.ClosestOnTriangle(p, b.triangle(i))
			d2 := r3.Norm2(r3.Sub(p, q))
			if d2 < *bestD2 {
				*bestD2 = d2
				*best = Nearest{Point: q, Face: i, feature: feat}
			}
		}
		return
	}
	// see which bounding box is closer to the target and
	// start with that one
	left, right := node.children(bb)
	ld2, rd2 := left.MinDist2(p), right.MinDist2(p)
	first, second := node.child, node.child+1
	if rd2 < ld2 {
		first, second = second, first
		left, right = right, left
		ld2, rd2 = rd2, ld2
	}
	if ld2 < *bestD2 {
		b.nearestHelper(first, left, p, best, bestD2)
	}
	if rd2 < *bestD2 {
		b.nearestHelper(second, right, p, best, bestD2)
	}
}

// SignedDistance returns the distance from p to the mesh surface,
// negative inside. The sign is taken from the angle weighted
// pseudonormal of the closest feature, which is exact for closed
// consistently oriented meshes.
func (b *BVH) SignedDistance(p r3.Vec) float64 {
	best := Nearest{Face: -1}
	bestD2 := math.Inf(1)
	b.nearestHelper(0, b.bb, p, &best, &bestD2)
	n := b.pseudonormal(best.Face, best.feature)
	d := math.Sqrt(bestD2)
	if r3.Dot(n, r3.Sub(p, best.Point)) < 0 {
		return -d
	}
	return d
}
