package math

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a 4x4 matrix in column-major order, the layout OpenGL and mgl32
// use. Element m[col*4+row].
type Mat4 [16]float32

// Vec4 is a homogeneous 4-component vector.
type Vec4 [4]float32

func (v Vec3) mgl() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4(mgl32.Ident4())
}

// Perspective returns a perspective projection matrix. fovY is in radians,
// aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	return Mat4(mgl32.Perspective(fovY, aspect, near, far))
}

// LookAt returns a view matrix looking from eye to center.
func LookAt(eye, center, up Vec3) Mat4 {
	return Mat4(mgl32.LookAtV(eye.mgl(), center.mgl(), up.mgl()))
}

// Compose builds a model matrix from translation, XYZ Euler rotation and
// scale, applied as T * Rz * Ry * Rx * S.
func Compose(position, rotation, scale Vec3) Mat4 {
	m := mgl32.Translate3D(position.X, position.Y, position.Z).
		Mul4(mgl32.HomogRotate3DZ(rotation.Z)).
		Mul4(mgl32.HomogRotate3DY(rotation.Y)).
		Mul4(mgl32.HomogRotate3DX(rotation.X)).
		Mul4(mgl32.Scale3D(scale.X, scale.Y, scale.Z))
	return Mat4(m)
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	return Mat4(mgl32.Mat4(m).Mul4(mgl32.Mat4(other)))
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4(mgl32.Mat4(m).Mul4x1(mgl32.Vec4(v)))
}

// TransformVec3 transforms a point (w=1), dividing by w when it is not zero.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	p := m.MulVec4(Vec4{v.X, v.Y, v.Z, 1})
	if p[3] != 0 && p[3] != 1 {
		return Vec3{p[0] / p[3], p[1] / p[3], p[2] / p[3]}
	}
	return Vec3{p[0], p[1], p[2]}
}

// Inverse returns the inverse, or identity if m is singular.
func (m Mat4) Inverse() Mat4 {
	g := mgl32.Mat4(m)
	if g.Det() == 0 {
		return Identity()
	}
	return Mat4(g.Inv())
}

// Ptr returns a pointer to the first element for OpenGL uniform calls.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
