package strut

import (
	"context"
	"errors"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/latticefab/scaffold/helpers/matter"
	"github.com/latticefab/scaffold/mesh"
)

func writeInputs(t *testing.T, dims string, paths ...string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(DimensionFile(dir), []byte(dims), 0o644); err != nil {
		t.Fatal(err)
	}
	for i, p := range paths {
		if err := os.WriteFile(PathFile(dir, i+1), []byte(p), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testConfig(dir string) Config {
	cfg := DefaultConfig()
	cfg.Dir = dir
	cfg.Bevel = BevelCircle
	cfg.NumberOfFiles = 0
	cfg.ThresholdLow = 0.52
	cfg.ThresholdHigh = 2.47
	return cfg
}

func TestBuild(t *testing.T) {
	dir := writeInputs(t, "0.3\n0.3\n",
		"0 0 0\n0 0 1.5\n0 0 3\n",
		"2 0 0\n2 0 1\n2 0 2\n2 0 3\n",
	)
	cfg := testConfig(dir)
	res, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Paths) != 2 {
		t.Fatalf("got %d paths", len(res.Paths))
	}
	if res.Paths[0].Order != 3 || res.Paths[1].Order != 4 {
		t.Errorf("orders %d %d", res.Paths[0].Order, res.Paths[1].Order)
	}
	if res.Paths[1].Samples != 3*12+1 {
		t.Errorf("samples %d", res.Paths[1].Samples)
	}
	if math.Abs(res.Paths[0].Length-3) > 1e-9 {
		t.Errorf("length %g, want 3", res.Paths[0].Length)
	}
	m := res.Mesh
	if res.Deleted == 0 || res.HolesFilled < 4 {
		t.Errorf("cleanup deleted %d vertices and filled %d holes", res.Deleted, res.HolesFilled)
	}
	if loops := m.BoundaryLoops(); len(loops) != 0 {
		t.Errorf("mesh has %d open boundaries", len(loops))
	}
	bb := m.Bounds()
	if bb.Min.Z < cfg.ThresholdLow || bb.Max.Z > cfg.ThresholdHigh {
		t.Errorf("mesh bounds %+v exceed thresholds", bb)
	}
	// Two cylinders of radius 0.3 cut to a height close to 1.9.
	want := 2 * math.Pi * 0.3 * 0.3 * 1.9
	if vol := m.Volume(); math.Abs(vol-want)/want > 0.15 {
		t.Errorf("volume %g, want about %g", vol, want)
	}
}

func TestBuildMaterialAndFinalRemesh(t *testing.T) {
	dir := writeInputs(t, "0.4\n", "0 0 0\n0 0 3\n")
	cfg := testConfig(dir)
	cfg.Material = "PLA"
	cfg.FinalRemesh = true
	cfg.VoxelSizeFinal = 0.08
	res, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	bb := res.Mesh.Bounds()
	wantR := 0.4 * matter.PLA.ScaleFactor()
	if math.Abs(bb.Max.X-wantR) > 0.1 {
		t.Errorf("radius after shrink compensation %g, want about %g", bb.Max.X, wantR)
	}
	if res.Mesh.Volume() <= 0 {
		t.Error("final remesh must face outwards")
	}
}

func TestBuildErrors(t *testing.T) {
	dir := writeInputs(t, "0.3\n", "0 0 0\n0 0 3\n", "1 0 0\n1 0 3\n")
	cfg := testConfig(dir)
	_, err := Build(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "1 dimensions for 2 path files") {
		t.Errorf("expected dimension count error, got %v", err)
	}

	cfg.NumberOfFiles = 1
	cfg.ThresholdLow, cfg.ThresholdHigh = 10, 20
	_, err = Build(context.Background(), cfg)
	if !errors.Is(err, mesh.ErrEmpty) {
		t.Errorf("expected empty mesh error, got %v", err)
	}

	dir = writeInputs(t, "-0.3\n", "0 0 0\n0 0 3\n")
	_, err = Build(context.Background(), testConfig(dir))
	if err == nil || !strings.Contains(err.Error(), "positive") {
		t.Errorf("expected non-positive dimension error, got %v", err)
	}

	cfg = testConfig(writeInputs(t, "0.3\n0.3\n", "0 0 0\n0 0 3\n"))
	cfg.NumberOfFiles = 2
	_, err = Build(context.Background(), cfg)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected missing file error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Build(ctx, testConfig(writeInputs(t, "0.3\n", "0 0 0\n0 0 3\n")))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
	for name, mod := range map[string]func(*Config){
		"bevel":     func(c *Config) { c.Bevel = "TRIANGLE" },
		"width":     func(c *Config) { c.RectangleWidth = 0 },
		"threshold": func(c *Config) { c.ThresholdLow = c.ThresholdHigh },
		"voxel":     func(c *Config) { c.VoxelSizeInitial = 0 },
		"final":     func(c *Config) { c.FinalRemesh, c.VoxelSizeFinal = true, 0 },
		"order":     func(c *Config) { c.CurveOrder = 1 },
		"material":  func(c *Config) { c.Material = "wood" },
		"files":     func(c *Config) { c.NumberOfFiles = -1 },
	} {
		cfg := DefaultConfig()
		mod(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
