// Package preview renders shaded images of meshes for quick inspection.
package preview

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/latticefab/scaffold/internal/d3"
	"github.com/latticefab/scaffold/mesh"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// Options configures the camera and colors of a preview.
type Options struct {
	// Width and Height of the output image in pixels.
	Width, Height int
	// Supersampling factor used for antialiasing.
	Scale int
	// Fovy is the vertical field of view in degrees.
	Fovy      float64
	Near, Far float64
	// Camera position, view center and up direction in the bi-unit cube
	// the scene is fit into.
	Eye, Center, Up r3.Vec
	Background      string
	Color           string
	MarkerColor     string
}

// DefaultOptions returns a three quarter view of the scene with Z up.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Scale:       2,
		Fovy:        30,
		Near:        1,
		Far:         20,
		Eye:         r3.Vec{X: -3, Y: -4, Z: 2.5},
		Up:          r3.Vec{Z: 1},
		Background:  "#FFF8E3",
		Color:       "#468966",
		MarkerColor: "#FF0000",
	}
}

// Render draws model and optional markers. The scene is fit in a
// bi-unit cube centered at the origin before drawing.
func Render(model *mesh.Mesh, markers []*mesh.Mesh, opt Options) (image.Image, error) {
	if model == nil || len(model.Faces) == 0 {
		return nil, mesh.ErrEmpty
	}
	if opt.Width <= 0 || opt.Height <= 0 {
		return nil, errors.New("preview size must be positive")
	}
	if opt.Scale < 1 {
		opt.Scale = 1
	}
	// fit meshes in a bi-unit cube centered at the origin
	bb := d3.Box(model.Bounds())
	for _, m := range markers {
		bb = bb.Extend(d3.Box(m.Bounds()))
	}
	center := bb.Center()
	k := 1.0
	if ext := d3.Max(bb.Size()); ext > 0 {
		k = 2 / ext
	}
	toFaux := func(m *mesh.Mesh) *fauxgl.Mesh {
		tris := make([]*fauxgl.Triangle, len(m.Faces))
		for i := range m.Faces {
			t := m.Triangle(i)
			var p [3]fauxgl.Vector
			for j, v := range t {
				v = r3.Scale(k, r3.Sub(v, center))
				p[j] = fauxgl.V(v.X, v.Y, v.Z)
			}
			tris[i] = fauxgl.NewTriangleForPoints(p[0], p[1], p[2])
		}
		return fauxgl.NewTriangleMesh(tris)
	}

	var (
		width, height = opt.Width, opt.Height
		eye           = fauxgl.V(opt.Eye.X, opt.Eye.Y, opt.Eye.Z)
		lookat        = fauxgl.V(opt.Center.X, opt.Center.Y, opt.Center.Z)
		up            = fauxgl.V(opt.Up.X, opt.Up.Y, opt.Up.Z)
		light         = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	// create a rendering context
	context := fauxgl.NewContext(width*opt.Scale, height*opt.Scale)
	context.ClearColorBufferWith(fauxgl.HexColor(opt.Background))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, lookat, up).Perspective(opt.Fovy, aspect, opt.Near, opt.Far)
	// use builtin phong shader
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(opt.Color)
	context.Shader = shader
	context.DrawMesh(toFaux(model))
	if len(markers) > 0 {
		shader.ObjectColor = fauxgl.HexColor(opt.MarkerColor)
		for _, m := range markers {
			context.DrawMesh(toFaux(m))
		}
	}
	// downsample image for antialiasing
	img := context.Image()
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear), nil
}

// SavePNG renders the scene and writes it to path as PNG.
func SavePNG(path string, model *mesh.Mesh, markers []*mesh.Mesh, opt Options) error {
	img, err := Render(model, markers, opt)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}
