// Package control arbitrates pointer ownership between orbit camera control
// and object dragging.
package control

import "go.uber.org/zap"

// Mode is the control mode that currently owns pointer input.
type Mode int

const (
	Orbit Mode = iota
	Drag
)

func (m Mode) String() string {
	switch m {
	case Orbit:
		return "orbit"
	case Drag:
		return "drag"
	default:
		return "unknown"
	}
}

// Arbiter holds the current mode. Zero value is not usable; call New.
type Arbiter struct {
	mode   Mode
	target int
	log    *zap.Logger

	// OnModeChange is called whenever the mode flips.
	OnModeChange func(Mode)
}

// New creates an arbiter in Orbit mode.
func New(log *zap.Logger) *Arbiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Arbiter{mode: Orbit, target: -1, log: log}
}

// Mode returns the current mode.
func (a *Arbiter) Mode() Mode {
	return a.mode
}

// OrbitEnabled reports whether the camera may run its orbit update.
func (a *Arbiter) OrbitEnabled() bool {
	return a.mode == Orbit
}

// Dragging returns the index of the object being dragged.
func (a *Arbiter) Dragging() (int, bool) {
	if a.mode != Drag {
		return -1, false
	}
	return a.target, true
}

// DragStart hands the pointer to the drag of object index.
func (a *Arbiter) DragStart(index int) {
	a.target = index
	a.set(Drag)
}

// DragEnd returns the pointer to the camera.
func (a *Arbiter) DragEnd() {
	a.release()
}

// HoverOff returns the pointer to the camera when it leaves the surface or
// the dragged object.
func (a *Arbiter) HoverOff() {
	a.release()
}

func (a *Arbiter) release() {
	a.target = -1
	a.set(Orbit)
}

func (a *Arbiter) set(m Mode) {
	if a.mode == m {
		return
	}
	a.mode = m
	a.log.Debug("control mode", zap.Stringer("mode", m), zap.Int("target", a.target))
	if a.OnModeChange != nil {
		a.OnModeChange(m)
	}
}
