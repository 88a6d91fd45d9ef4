package scaffold

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Orthonormal returns two unit vectors n and b such that (n, b, t) is a
// right handed orthonormal basis, where t is the unit vector along dir.
// n is chosen perpendicular to world Z so that profiles swept along a
// curve keep a stable orientation. When dir is parallel to Z world X is used.
func Orthonormal(dir r3.Vec) (n, b r3.Vec) {
	t := r3.Unit(dir)
	up := r3.Vec{Z: 1}
	if math.Abs(r3.Dot(t, up)) > 1-tolerance {
		up = r3.Vec{X: 1}
	}
	n = r3.Unit(r3.Cross(up, t))
	b = r3.Cross(t, n)
	return n, b
}
