package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/latticefab/scaffold/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestRender(t *testing.T) {
	model := mesh.UVSphere(r3.Vec{X: 5, Y: 5, Z: 5}, 3, 32, 16)
	marker := mesh.UVSphere(r3.Vec{X: 5, Y: 5, Z: 9}, 1, 32, 16)
	opt := DefaultOptions()
	opt.Width, opt.Height = 80, 60
	img, err := Render(model, []*mesh.Mesh{marker}, opt)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() != 80 || b.Dy() != 60 {
		t.Fatalf("image size %v", b)
	}
	// Background #FFF8E3 has a strong blue channel, the model and marker do not.
	var shaded, red int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			r, g, bl = r>>8, g>>8, bl>>8
			if bl < 0xA0 {
				shaded++
			}
			if r > g+80 && r > bl+80 {
				red++
			}
		}
	}
	if shaded == 0 {
		t.Error("model not drawn")
	}
	if red == 0 {
		t.Error("marker not drawn in red")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	opt := DefaultOptions()
	opt.Width, opt.Height, opt.Scale = 32, 32, 1
	if err := SavePNG(path, mesh.UVSphere(r3.Vec{}, 1, 16, 8), nil, opt); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("png not written: %v", err)
	}
	if err := SavePNG(path, &mesh.Mesh{}, nil, opt); err == nil {
		t.Error("expected error for empty mesh")
	}
}
