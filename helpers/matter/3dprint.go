// Package matter compensates printed geometry for material shrinkage.
package matter

import (
	"fmt"
	"strings"

	"github.com/latticefab/scaffold"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{name: "PLA", shrink: 0.2e-2} // 0.2% shrinkage
	// PETG shrinks slightly more than PLA on cooling.
	PETG = ViscousMaterial{name: "PETG", shrink: 0.4e-2}
)

var materials = []ViscousMaterial{PLA, PETG}

type ViscousMaterial struct {
	name string
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
}

// ByName looks up a material by case insensitive name. The empty
// name returns ok=false without error so callers can skip compensation.
func ByName(name string) (m ViscousMaterial, ok bool, err error) {
	if name == "" {
		return m, false, nil
	}
	for _, m := range materials {
		if strings.EqualFold(m.name, name) {
			return m, true, nil
		}
	}
	return m, false, fmt.Errorf("unknown material %q", name)
}

func (m ViscousMaterial) Name() string { return m.name }

// ScaleFactor is the uniform scale that undoes thermal shrinkage.
func (m ViscousMaterial) ScaleFactor() float64 {
	return 1 / (1 - m.shrink)
}

// Scale enlarges s so that the printed part shrinks to the modelled size.
// Scaling is about the origin.
func (m ViscousMaterial) Scale(s scaffold.SDF3) scaffold.SDF3 {
	return scaffold.ScaleUniform3D(s, m.ScaleFactor())
}

