package mesh

import (
	"math"

	"github.com/latticefab/scaffold/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// computePseudonormals calculates face normals, edge pseudonormals as
// the sum of adjacent face normals and vertex pseudonormals weighted by
// the opening angle of each incident face.
func (b *BVH) computePseudonormals() {
	b.faceN = make([]r3.Vec, len(b.faces))
	b.vertN = make([]r3.Vec, len(b.verts))
	b.edgeN = make(map[[2]int]r3.Vec, 3*len(b.faces)/2)
	for i, f := range b.faces {
		tri := b.triangle(i)
		norm := r3.Cross(r3.Sub(tri[1], tri[0]), r3.Sub(tri[2], tri[0]))
		if l := r3.Norm(norm); l > 0 {
			norm = r3.Scale(1/l, norm)
		} else {
			norm = r3.Vec{}
		}
		b.faceN[i] = norm
		for j, vert := range tri {
			s1, s2 := r3.Sub(tri[(j+1)%3], vert), r3.Sub(tri[(j+2)%3], vert)
			l1, l2 := r3.Norm(s1), r3.Norm(s2)
			if l1 == 0 || l2 == 0 {
				continue
			}
			cos := math.Max(-1, math.Min(1, r3.Dot(s1, s2)/(l1*l2)))
			alpha := math.Acos(cos)
			b.vertN[f[j]] = r3.Add(b.vertN[f[j]], r3.Scale(alpha, norm))
		}
		for j := range f {
			e := undirected(f[j], f[(j+1)%3])
			b.edgeN[e] = r3.Add(b.edgeN[e], norm)
		}
	}
}

// pseudonormal returns the normal used for the inside test of a point
// whose closest surface feature is feat on leaf face slot i.
func (b *BVH) pseudonormal(i int, feat d3.Feature) r3.Vec {
	f := b.faces[i]
	switch {
	case feat.IsVertex():
		return b.vertN[f[feat-d3.FeatureV0]]
	case feat.IsEdge():
		j := int(feat - d3.FeatureE0)
		return b.edgeN[undirected(f[j], f[(j+1)%3])]
	}
	return b.faceN[i]
}
