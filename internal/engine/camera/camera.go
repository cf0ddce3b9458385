// Package camera provides the perspective camera and the damped orbit
// controls that steer it.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sceneview/pkg/math"
)

// Camera is a perspective camera looking at a target point.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FovY   float32 // Vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32

	projection math.Mat4
}

// New creates a camera with the given field of view (degrees) and aspect.
func New(fovY, aspect float32) *Camera {
	c := &Camera{
		Up:     math.Vec3{Y: 1},
		FovY:   fovY,
		Aspect: aspect,
		Near:   0.1,
		Far:    2000,
	}
	c.UpdateProjection()
	return c
}

// UpdateProjection recomputes the projection matrix. Call after changing
// FovY, Aspect, Near or Far.
func (c *Camera) UpdateProjection() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = math.Perspective(c.FovY*math32.Pi/180, aspect, c.Near, c.Far)
}

// SetAspect updates the aspect ratio from a viewport size.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
	c.UpdateProjection()
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math.Vec3) {
	c.Target = target
}

// View returns the view matrix.
func (c *Camera) View() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// Projection returns the projection matrix.
func (c *Camera) Projection() math.Mat4 {
	return c.projection
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.projection.Mul(c.View())
}

// InverseViewProjection returns the matrix that unprojects NDC to world.
func (c *Camera) InverseViewProjection() math.Mat4 {
	return c.ViewProjection().Inverse()
}

// Project maps a world point to normalized device coordinates.
func (c *Camera) Project(p math.Vec3) math.Vec3 {
	v := c.ViewProjection().MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	if v[3] == 0 {
		return math.Vec3{}
	}
	return math.Vec3{X: v[0] / v[3], Y: v[1] / v[3], Z: v[2] / v[3]}
}
