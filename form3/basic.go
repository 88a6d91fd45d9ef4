package form3

import (
	"fmt"
	"runtime/debug"

	"github.com/latticefab/scaffold"
	"github.com/latticefab/scaffold/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

func recoverShape(err *error) {
	if a := recover(); a != nil {
		*err = &shapeErr{
			panicObj: a,
			stack:    string(debug.Stack()),
		}
	}
}

// Box return an SDF3 for a 3d box (rounded corners with round > 0).
func Box(size r3.Vec, round float64) (s scaffold.SDF3, err error) {
	defer recoverShape(&err)
	return must3.Box(size, round), err
}

// Sphere return an SDF3 for a sphere.
func Sphere(radius float64) (s scaffold.SDF3, err error) {
	defer recoverShape(&err)
	return must3.Sphere(radius), err
}

// Tube returns an SDF3 for a flat capped cylinder running from a to b.
func Tube(a, b r3.Vec, radius float64) (s scaffold.SDF3, err error) {
	defer recoverShape(&err)
	return must3.Tube(a, b, radius), err
}

// RectTube returns an SDF3 for a rectangular prism running from a to b.
func RectTube(a, b r3.Vec, width, height float64) (s scaffold.SDF3, err error) {
	defer recoverShape(&err)
	return must3.RectTube(a, b, width, height), err
}
