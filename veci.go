package scaffold

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// V3i is a 3D integer vector.
type V3i [3]int

// Cell returns the index of the cubic cell of side size containing v.
// Cells are half open: [i*size, (i+1)*size).
func Cell(v r3.Vec, size float64) V3i {
	return V3i{
		int(math.Floor(v.X / size)),
		int(math.Floor(v.Y / size)),
		int(math.Floor(v.Z / size)),
	}
}
