package strut

import (
	"fmt"
	"strings"

	"github.com/latticefab/scaffold"
	"github.com/latticefab/scaffold/form3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Bevel names accepted by NewProfile.
const (
	BevelCircle    = "CIRCLE"
	BevelRectangle = "RECTANGLE"
)

// Profile is the 2D cross section swept along a strut. It lives in the
// curve frame: normal kept perpendicular to world Z, then binormal.
type Profile interface {
	// Segment returns the cross section extruded from a to b with flat ends.
	Segment(a, b r3.Vec) (scaffold.SDF3, error)
	// Joint returns the solid that closes the gap between two segments
	// meeting at p, or nil if none is needed.
	Joint(p r3.Vec) (scaffold.SDF3, error)
}

// Circle is a round cross section.
type Circle struct {
	Radius float64
}

func (c Circle) Segment(a, b r3.Vec) (scaffold.SDF3, error) {
	return form3.Tube(a, b, c.Radius)
}

// Joint fills the wedge between two tubes with a sphere so the sweep
// has no seams at bends.
func (c Circle) Joint(p r3.Vec) (scaffold.SDF3, error) {
	s, err := form3.Sphere(c.Radius)
	if err != nil {
		return nil, err
	}
	return scaffold.Translate3D(s, p), nil
}

// Rectangle is a Width by Height cross section. Width lies along the
// horizontal curve normal and Height along the binormal.
type Rectangle struct {
	Width, Height float64
}

func (r Rectangle) Segment(a, b r3.Vec) (scaffold.SDF3, error) {
	return form3.RectTube(a, b, r.Width, r.Height)
}

// Joint returns nil. Gaps at bends are closed by the voxel remesh.
func (r Rectangle) Joint(r3.Vec) (scaffold.SDF3, error) { return nil, nil }

// NewProfile returns the profile for a bevel type. dimension is the circle
// radius or the rectangle height; rectWidth is only used by rectangles.
func NewProfile(bevel string, dimension, rectWidth float64) (Profile, error) {
	if !(dimension > 0) {
		return nil, fmt.Errorf("strut dimension must be positive, got %g", dimension)
	}
	switch strings.ToUpper(bevel) {
	case BevelCircle:
		return Circle{Radius: dimension}, nil
	case BevelRectangle:
		if !(rectWidth > 0) {
			return nil, fmt.Errorf("rectangle width must be positive, got %g", rectWidth)
		}
		return Rectangle{Width: rectWidth, Height: dimension}, nil
	}
	return nil, fmt.Errorf("unknown bevel type %q", bevel)
}
