// Package props attaches named numeric properties to mesh files. The
// properties of part.stl are stored next to it in part.props.yaml.
package props

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const sidecarExt = ".props.yaml"

// Object is a named object and its custom properties.
type Object struct {
	Name       string             `yaml:"name"`
	Properties map[string]float64 `yaml:"properties"`

	path string
}

// SidecarPath returns the property file that belongs to meshPath.
func SidecarPath(meshPath string) string {
	return strings.TrimSuffix(meshPath, filepath.Ext(meshPath)) + sidecarExt
}

// ObjectName returns the object name of a mesh file, its base name
// without extension.
func ObjectName(meshPath string) string {
	base := filepath.Base(meshPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads the properties of the object stored at meshPath. A missing
// sidecar yields an object without properties.
func Load(meshPath string) (*Object, error) {
	obj := &Object{
		Name:       ObjectName(meshPath),
		Properties: make(map[string]float64),
		path:       SidecarPath(meshPath),
	}
	b, err := os.ReadFile(obj.path)
	if errors.Is(err, fs.ErrNotExist) {
		return obj, nil
	} else if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, obj); err != nil {
		return nil, fmt.Errorf("%s: %w", obj.path, err)
	}
	if obj.Properties == nil {
		obj.Properties = make(map[string]float64)
	}
	if obj.Name == "" {
		obj.Name = ObjectName(meshPath)
	}
	return obj, nil
}

// Set stores a property, replacing any previous value.
func (o *Object) Set(key string, value float64) {
	if o.Properties == nil {
		o.Properties = make(map[string]float64)
	}
	o.Properties[key] = value
}

// SetAll stores every property in props.
func (o *Object) SetAll(props map[string]float64) {
	for k, v := range props {
		o.Set(k, v)
	}
}

// Get returns a property and whether it is set.
func (o *Object) Get(key string) (float64, bool) {
	v, ok := o.Properties[key]
	return v, ok
}

// Keys returns the property names in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.Properties))
	for k := range o.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Path returns the sidecar file of the object.
func (o *Object) Path() string { return o.path }

// Save writes the properties to the sidecar file.
func (o *Object) Save() error {
	if o.path == "" {
		return errors.New("object has no sidecar path")
	}
	b, err := yaml.Marshal(o)
	if err != nil {
		return err
	}
	return os.WriteFile(o.path, b, 0o644)
}
