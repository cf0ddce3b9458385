// Package graph defines the scene graph adapter the controller renders
// through, and an in-memory implementation of it.
package graph

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/scene/geometry"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Handle references a mesh owned by an Adapter. Zero is never a valid handle.
type Handle uint32

// Transform is a node's position, XYZ Euler rotation (radians) and scale.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// Identity returns a transform at the origin with unit scale.
func Identity() Transform {
	return Transform{Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Matrix returns the model matrix.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Position, t.Rotation, t.Scale)
}

// Adapter is the capability set of the 3D engine backing a scene.
// Implementations are driven from a single thread.
type Adapter interface {
	// CreateMesh uploads a primitive and returns its handle. The mesh is not
	// drawn until Add is called.
	CreateMesh(spec geometry.Spec, color colorful.Color) (Handle, error)
	Add(h Handle)
	Remove(h Handle)
	SetTransform(h Handle, t Transform)
	SetColor(h Handle, c colorful.Color)
	SetBackground(c colorful.Color)
	// Resize updates the drawable viewport.
	Resize(width, height int)
	// Render draws one frame from the given camera.
	Render(cam *camera.Camera) error
}
