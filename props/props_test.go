package props

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSidecarPath(t *testing.T) {
	for in, want := range map[string]string{
		"part.stl":         "part.props.yaml",
		"dir/a.b/scaf.STL": "dir/a.b/scaf.props.yaml",
		"noext":            "noext.props.yaml",
	} {
		if got := SidecarPath(in); got != want {
			t.Errorf("SidecarPath(%q) = %q, want %q", in, got, want)
		}
	}
	if got := ObjectName("dir/scaffold.stl"); got != "scaffold" {
		t.Errorf("ObjectName %q", got)
	}
}

func TestLoadSetSave(t *testing.T) {
	meshPath := filepath.Join(t.TempDir(), "scaffold.stl")
	obj, err := Load(meshPath)
	if err != nil {
		t.Fatal(err)
	}
	if obj.Name != "scaffold" || len(obj.Properties) != 0 {
		t.Fatalf("fresh object %+v", obj)
	}
	obj.Set("Volume", 12.5)
	obj.SetAll(map[string]float64{"Diameter_1": 1.25, "Diameter_2": 1})
	if err := obj.Save(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(SidecarPath(meshPath)); err != nil {
		t.Fatal(err)
	}

	again, err := Load(meshPath)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"Volume": 12.5, "Diameter_1": 1.25, "Diameter_2": 1}
	if diff := cmp.Diff(want, again.Properties); diff != "" {
		t.Errorf("properties (-want +got):\n%s", diff)
	}
	if v, ok := again.Get("Volume"); !ok || v != 12.5 {
		t.Errorf("Get(Volume) = %v, %v", v, ok)
	}
	if _, ok := again.Get("Missing"); ok {
		t.Error("Get of unset property reported ok")
	}
	if diff := cmp.Diff([]string{"Diameter_1", "Diameter_2", "Volume"}, again.Keys()); diff != "" {
		t.Error(diff)
	}
	// Updating keeps other properties.
	again.Set("Volume", -3)
	if err := again.Save(); err != nil {
		t.Fatal(err)
	}
	last, err := Load(meshPath)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := last.Get("Volume"); v != -3 {
		t.Errorf("Volume %g", v)
	}
	if v, _ := last.Get("Diameter_1"); v != 1.25 {
		t.Errorf("Diameter_1 %g", v)
	}
}

func TestLoadInvalid(t *testing.T) {
	meshPath := filepath.Join(t.TempDir(), "bad.stl")
	if err := os.WriteFile(SidecarPath(meshPath), []byte("properties: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(meshPath); err == nil {
		t.Error("expected YAML error")
	}
}
