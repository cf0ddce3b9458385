// Package geometry holds the static primitive and color tables the scene
// variants are built from, and the local-space bounds and wireframes derived
// from them.
package geometry

import (
	"fmt"

	"github.com/Faultbox/sceneview/pkg/math"
)

// Kind identifies a primitive shape.
type Kind int

const (
	KindPlane Kind = iota
	KindBox
	KindCapsule
	KindCircle
	KindCone
	KindOctahedron
	KindTorus
	KindTorusKnot
	KindSphere
	KindTetrahedron
)

var kindNames = [...]string{
	KindPlane:       "plane",
	KindBox:         "box",
	KindCapsule:     "capsule",
	KindCircle:      "circle",
	KindCone:        "cone",
	KindOctahedron:  "octahedron",
	KindTorus:       "torus",
	KindTorusKnot:   "torus_knot",
	KindSphere:      "sphere",
	KindTetrahedron: "tetrahedron",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Spec describes one primitive in local space.
// Meaning of A, B, C depends on Kind:
//
//	plane       A=width  B=height
//	box         A=width  B=height  C=depth
//	capsule     A=radius B=length
//	circle      A=radius
//	cone        A=radius B=height
//	octahedron  A=radius
//	torus       A=radius B=tube
//	torus_knot  A=radius B=tube
//	sphere      A=radius
//	tetrahedron A=radius
type Spec struct {
	Kind     Kind
	A, B, C  float32
	Segments int // ring resolution for round shapes
}

// AABB is a local-space axis-aligned box.
type AABB struct {
	Min, Max math.Vec3
}

// Center returns the middle of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Bounds returns the local bounding box of the primitive. Flat shapes lie in
// the XY plane and have zero depth.
func (s Spec) Bounds() AABB {
	switch s.Kind {
	case KindPlane:
		return symmetric(s.A/2, s.B/2, 0)
	case KindBox:
		return symmetric(s.A/2, s.B/2, s.C/2)
	case KindCapsule:
		return symmetric(s.A, s.B/2+s.A, s.A)
	case KindCircle:
		return symmetric(s.A, s.A, 0)
	case KindCone:
		return symmetric(s.A, s.B/2, s.A)
	case KindTorus:
		r := s.A + s.B
		return symmetric(r, r, s.B)
	case KindTorusKnot:
		// A (2,3) knot swings out to 1.5 radii and half a radius in depth.
		r := 1.5*s.A + s.B
		return symmetric(r, r, 0.5*s.A+s.B)
	case KindOctahedron, KindSphere, KindTetrahedron:
		return symmetric(s.A, s.A, s.A)
	default:
		return AABB{}
	}
}

func symmetric(x, y, z float32) AABB {
	return AABB{
		Min: math.Vec3{X: -x, Y: -y, Z: -z},
		Max: math.Vec3{X: x, Y: y, Z: z},
	}
}
