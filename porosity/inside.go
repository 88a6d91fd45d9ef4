package porosity

import (
	"github.com/latticefab/scaffold/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Inside reports whether p lies inside the closed mesh of bvh by counting
// the surface crossings of a ray from p along dir. After every hit the ray
// restarts eps past the hit point. An odd count means inside. The number of
// casts is bounded by the face count of the mesh.
func Inside(bvh *mesh.BVH, p, dir r3.Vec, eps float64) bool {
	dir = r3.Unit(dir)
	step := r3.Scale(eps, dir)
	origin := p
	hits := 0
	for limit := bvh.NumFaces(); hits <= limit; {
		hit, ok := bvh.RayCast(origin, dir)
		if !ok {
			break
		}
		hits++
		origin = r3.Add(hit.Location, step)
	}
	return hits%2 == 1
}
