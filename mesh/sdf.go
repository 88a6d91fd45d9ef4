package mesh

import "gonum.org/v1/gonum/spatial/r3"

// SDF is a closed triangle mesh viewed as a signed distance function.
// It implements scaffold.SDF3.
type SDF struct {
	bvh *BVH
}

// NewSDF builds a signed distance field over m. m should be closed and
// consistently oriented for the sign to be correct.
func NewSDF(m *Mesh) (*SDF, error) {
	bvh, err := NewBVH(m)
	if err != nil {
		return nil, err
	}
	return &SDF{bvh: bvh}, nil
}

// Evaluate returns the signed distance from p to the mesh surface.
func (s *SDF) Evaluate(p r3.Vec) float64 { return s.bvh.SignedDistance(p) }

// Bounds returns the bounding box of the mesh.
func (s *SDF) Bounds() r3.Box { return s.bvh.Bounds() }
