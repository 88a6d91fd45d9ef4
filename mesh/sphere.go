package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// UVSphere returns a closed latitude/longitude sphere with the given
// number of segments around the Z axis and rings from pole to pole.
func UVSphere(center r3.Vec, radius float64, segments, rings int) *Mesh {
	if segments < 3 || rings < 2 {
		panic("UVSphere needs at least 3 segments and 2 rings")
	}
	if radius <= 0 {
		panic("UVSphere radius must be positive")
	}
	m := &Mesh{
		Vertices: make([]r3.Vec, 0, 2+segments*(rings-1)),
		Faces:    make([][3]int, 0, 2*segments*(rings-1)),
	}
	m.Vertices = append(m.Vertices, r3.Add(center, r3.Vec{Z: radius}))
	for i := 1; i < rings; i++ {
		theta := math.Pi * float64(i) / float64(rings)
		z := radius * math.Cos(theta)
		rr := radius * math.Sin(theta)
		for j := 0; j < segments; j++ {
			phi := 2 * math.Pi * float64(j) / float64(segments)
			m.Vertices = append(m.Vertices, r3.Add(center, r3.Vec{X: rr * math.Cos(phi), Y: rr * math.Sin(phi), Z: z}))
		}
	}
	bottom := len(m.Vertices)
	m.Vertices = append(m.Vertices, r3.Add(center, r3.Vec{Z: -radius}))

	ring := func(i, j int) int { return 1 + (i-1)*segments + j%segments }
	for j := 0; j < segments; j++ {
		m.Faces = append(m.Faces, [3]int{0, ring(1, j), ring(1, j+1)})
	}
	for i := 1; i < rings-1; i++ {
		for j := 0; j < segments; j++ {
			a0, a1 := ring(i, j), ring(i, j+1)
			b0, b1 := ring(i+1, j), ring(i+1, j+1)
			m.Faces = append(m.Faces, [3]int{a0, b0, b1}, [3]int{a0, b1, a1})
		}
	}
	for j := 0; j < segments; j++ {
		m.Faces = append(m.Faces, [3]int{bottom, ring(rings-1, j+1), ring(rings-1, j)})
	}
	return m
}
