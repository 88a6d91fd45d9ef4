package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/latticefab/scaffold/mesh"
	"github.com/latticefab/scaffold/props"
)

func runVolume(ctx context.Context, args []string) error {
	fs := newFlagSet("volume", "mesh.stl")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Println("No object is selected.")
		return errSilent
	}
	path := fs.Arg(0)
	name := props.ObjectName(path)
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("Error calculating volume: %v\n", err)
		return errSilent
	}
	m, err := mesh.Load(path)
	if errors.Is(err, mesh.ErrEmpty) {
		fmt.Printf("Error calculating volume: %v\n", err)
		return errSilent
	} else if err != nil {
		fmt.Printf("%s is not a mesh object.\n", name)
		return errSilent
	}
	v, err := storeVolume(path, m)
	if err != nil {
		fmt.Printf("Error calculating volume: %v\n", err)
		return errSilent
	}
	fmt.Printf("Volume of %s: %v cubic units\n", name, v)
	return nil
}

// storeVolume computes the signed volume of m and records it as the
// Volume property of the object at path.
func storeVolume(path string, m *mesh.Mesh) (float64, error) {
	v := m.Volume()
	obj, err := props.Load(path)
	if err != nil {
		return 0, err
	}
	obj.Set("Volume", v)
	return v, obj.Save()
}
