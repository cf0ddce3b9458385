// Package picking converts pointer positions into world rays and resolves
// them to the nearest interactive object.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sceneview/internal/scene/geometry"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// NormalizePointer maps pixel coordinates to normalized device coordinates
// in [-1, 1]. Y is flipped: screen y grows downward, NDC y grows upward.
func NormalizePointer(px, py, viewportW, viewportH float32) math.Vec2 {
	return math.Vec2{
		X: (px/viewportW)*2 - 1,
		Y: -(py/viewportH)*2 + 1,
	}
}

// NDCToRay unprojects a normalized device coordinate through the inverse
// view-projection matrix.
func NDCToRay(ndc math.Vec2, invViewProj math.Mat4) Ray {
	nearWorld := invViewProj.MulVec4(math.Vec4{ndc.X, ndc.Y, -1.0, 1.0})
	farWorld := invViewProj.MulVec4(math.Vec4{ndc.X, ndc.Y, 1.0, 1.0})

	near := perspectiveDivide(nearWorld)
	far := perspectiveDivide(farWorld)

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func perspectiveDivide(v math.Vec4) math.Vec3 {
	if v[3] != 0 {
		return math.Vec3{X: v[0] / v[3], Y: v[1] / v[3], Z: v[2] / v[3]}
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// IntersectPlaneZ intersects the ray with the plane z = planeZ.
func (r Ray) IntersectPlaneZ(planeZ float32) (math.Vec3, bool) {
	if math32.Abs(r.Direction.Z) < 0.001 {
		return math.Vec3{}, false // Ray parallel to plane
	}
	t := (planeZ - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return math.Vec3{}, false // Intersection behind ray origin
	}
	return r.At(t), true
}

// IntersectPlaneY intersects the ray with the plane y = planeY.
func (r Ray) IntersectPlaneY(planeY float32) (math.Vec3, bool) {
	if math32.Abs(r.Direction.Y) < 0.001 {
		return math.Vec3{}, false
	}
	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return math.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box
// using the slab method. It returns the entry distance, or the exit distance
// when the ray starts inside the box.
func (r Ray) IntersectAABB(box geometry.AABB) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := r.Origin.Arr()
	dir := r.Direction.Arr()
	lo := box.Min.Arr()
	hi := box.Max.Arr()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
