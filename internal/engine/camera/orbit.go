package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sceneview/pkg/math"
)

// OrbitControls rotate and zoom a Camera around its target. Pointer input
// accumulates a delta; Update applies a fraction of it each frame when
// damping is enabled.
type OrbitControls struct {
	cam *Camera

	// Spherical coordinates relative to the target
	Distance float32
	Pitch    float32 // Vertical angle (radians), 0 = horizon
	Yaw      float32 // Horizontal angle (radians), 0 = +Z

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	EnableDamping bool
	DampingFactor float32

	deltaYaw   float32
	deltaPitch float32
}

// NewOrbitControls creates controls for cam, starting from its current
// position relative to its target.
func NewOrbitControls(cam *Camera) *OrbitControls {
	o := &OrbitControls{
		cam:             cam,
		MinDistance:     1,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		EnableDamping:   true,
		DampingFactor:   0.05,
	}
	o.Sync()
	return o
}

// Sync re-reads distance and angles from the camera.
func (o *OrbitControls) Sync() {
	off := o.cam.Position.Sub(o.cam.Target)
	o.Distance = off.Length()
	if o.Distance == 0 {
		return
	}
	o.Pitch = math32.Asin(off.Y / o.Distance)
	o.Yaw = math32.Atan2(off.X, off.Z)
	o.deltaYaw, o.deltaPitch = 0, 0
}

// HandleDrag queues a rotation from a pointer drag delta in pixels.
func (o *OrbitControls) HandleDrag(deltaX, deltaY float32) {
	o.deltaYaw -= deltaX * o.DragSensitivity
	o.deltaPitch += deltaY * o.DragSensitivity
}

// HandleZoom updates distance based on scroll wheel delta.
func (o *OrbitControls) HandleZoom(delta float32) {
	o.Distance -= delta * o.Distance * o.ZoomSensitivity
	o.Distance = clamp(o.Distance, o.MinDistance, o.MaxDistance)
}

// Update applies pending rotation and repositions the camera. It returns
// true while the camera is still moving.
func (o *OrbitControls) Update() bool {
	factor := float32(1)
	if o.EnableDamping {
		factor = o.DampingFactor
	}

	o.Yaw += o.deltaYaw * factor
	o.Pitch = clamp(o.Pitch+o.deltaPitch*factor, o.MinPitch, o.MaxPitch)

	if o.EnableDamping {
		o.deltaYaw *= 1 - o.DampingFactor
		o.deltaPitch *= 1 - o.DampingFactor
	} else {
		o.deltaYaw, o.deltaPitch = 0, 0
	}

	prev := o.cam.Position
	o.cam.Position = o.cam.Target.Add(o.offset())

	const eps = 1e-6
	return prev.Distance(o.cam.Position) > eps
}

// offset returns the camera position relative to the target.
func (o *OrbitControls) offset() math.Vec3 {
	cp := math32.Cos(o.Pitch)
	return math.Vec3{
		X: o.Distance * cp * math32.Sin(o.Yaw),
		Y: o.Distance * math32.Sin(o.Pitch),
		Z: o.Distance * cp * math32.Cos(o.Yaw),
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
