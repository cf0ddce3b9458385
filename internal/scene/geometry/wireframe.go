package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sceneview/pkg/math"
)

// Wireframe returns line-list vertices (x, y, z per vertex, two vertices per
// edge) in local space. Round shapes get rings; everything else draws its
// bounding box.
func (s Spec) Wireframe() []float32 {
	segs := s.Segments
	if segs < 3 {
		segs = 16
	}
	switch s.Kind {
	case KindCircle:
		return ring(nil, s.A, segs, axisZ, 0)
	case KindTorus:
		v := ring(nil, s.A+s.B, segs, axisZ, 0)
		return ring(v, s.A-s.B, segs, axisZ, 0)
	case KindSphere:
		v := ring(nil, s.A, segs, axisZ, 0)
		v = ring(v, s.A, segs, axisY, 0)
		return ring(v, s.A, segs, axisX, 0)
	case KindPlane:
		b := s.Bounds()
		return planeOutline(b.Min, b.Max)
	default:
		b := s.Bounds()
		return BoxWireframe(b.Min, b.Max)
	}
}

// WireframeVertexCount returns len(Wireframe())/3 without building it.
func (s Spec) WireframeVertexCount() int {
	return len(s.Wireframe()) / 3
}

type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

// ring appends a circle of radius r around the given axis.
func ring(dst []float32, r float32, segs int, around axis, offset float32) []float32 {
	point := func(i int) (float32, float32, float32) {
		a := 2 * math32.Pi * float32(i) / float32(segs)
		u, v := r*math32.Cos(a), r*math32.Sin(a)
		switch around {
		case axisX:
			return offset, u, v
		case axisY:
			return u, offset, v
		default:
			return u, v, offset
		}
	}
	for i := 0; i < segs; i++ {
		x0, y0, z0 := point(i)
		x1, y1, z1 := point(i + 1)
		dst = append(dst, x0, y0, z0, x1, y1, z1)
	}
	return dst
}

func planeOutline(lo, hi math.Vec3) []float32 {
	return []float32{
		lo.X, lo.Y, 0, hi.X, lo.Y, 0,
		hi.X, lo.Y, 0, hi.X, hi.Y, 0,
		hi.X, hi.Y, 0, lo.X, hi.Y, 0,
		lo.X, hi.Y, 0, lo.X, lo.Y, 0,
	}
}

// BoxWireframe returns the 12 edges of an axis-aligned box (24 vertices).
func BoxWireframe(lo, hi math.Vec3) []float32 {
	return []float32{
		// Bottom face
		lo.X, lo.Y, lo.Z, hi.X, lo.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, lo.Y, hi.Z,
		hi.X, lo.Y, hi.Z, lo.X, lo.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, lo.Y, lo.Z,
		// Top face
		lo.X, hi.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, hi.Y, lo.Z, hi.X, hi.Y, hi.Z,
		hi.X, hi.Y, hi.Z, lo.X, hi.Y, hi.Z,
		lo.X, hi.Y, hi.Z, lo.X, hi.Y, lo.Z,
		// Vertical edges
		lo.X, lo.Y, lo.Z, lo.X, hi.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, lo.Y, hi.Z, hi.X, hi.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, hi.Y, hi.Z,
	}
}

// BoxWireframeVertexCount is the number of vertices BoxWireframe returns.
const BoxWireframeVertexCount = 24
