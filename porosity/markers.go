package porosity

import (
	"github.com/latticefab/scaffold/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Marker sphere tessellation.
const (
	markerSegments = 32
	markerRings    = 16
)

// Marker is a sphere filling the empty space around a sample.
type Marker struct {
	Center   r3.Vec
	Diameter float64
	Mesh     *mesh.Mesh
}

// Markers returns a UV sphere for each sample with radius equal to the
// sample distance. Samples with zero distance are skipped.
func Markers(samples []Sample) []Marker {
	var out []Marker
	for _, s := range samples {
		if !(s.Distance > 0) {
			continue
		}
		out = append(out, Marker{
			Center:   s.Point,
			Diameter: s.Diameter(),
			Mesh:     mesh.UVSphere(s.Point, s.Distance, markerSegments, markerRings),
		})
	}
	return out
}
