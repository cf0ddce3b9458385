// Package mover drives a model around a circular path and reports which
// waypoint, if any, it is standing near.
package mover

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/animation"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Waypoint is a point of interest on or near the path. Landmark is the
// registry index of the object the waypoint is tied to.
type Waypoint struct {
	Name      string
	Position  math.Vec3
	Threshold float32
	Landmark  int
}

// Config describes the path and pace.
type Config struct {
	Radius float32
	Height float32
	// AngularStep is added to the angle once per tick.
	AngularStep float32
	// TimeNormalized switches to AngularVelocity (rad/s) scaled by dt.
	TimeNormalized  bool
	AngularVelocity float32
	// WalkClip is played on the mixer while moving.
	WalkClip string
}

// DefaultConfig is the site scene path: radius 20 just above the floor.
func DefaultConfig() Config {
	return Config{
		Radius:          20,
		Height:          0.1,
		AngularStep:     0.005,
		AngularVelocity: 0.3,
		WalkClip:        "walk",
	}
}

// Mover owns the path state. It is ticked by the render loop and advances
// its mixer itself, so the walker pose freezes while stopped.
type Mover struct {
	cfg       Config
	waypoints []Waypoint
	mixer     *animation.Mixer
	walk      *animation.Action
	log       *zap.Logger

	angle  float32
	moving bool
	active int

	// OnWaypoint is called when the active waypoint changes; -1 means none.
	OnWaypoint func(prev, next int)
}

// New creates a stopped mover at angle 0. mixer may be nil.
func New(cfg Config, waypoints []Waypoint, mixer *animation.Mixer, log *zap.Logger) *Mover {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Mover{
		cfg:       cfg,
		waypoints: append([]Waypoint(nil), waypoints...),
		mixer:     mixer,
		log:       log,
		active:    -1,
	}
	if mixer != nil && cfg.WalkClip != "" {
		walk, err := mixer.ClipAction(cfg.WalkClip)
		if err != nil {
			log.Warn("walk clip unavailable", zap.Error(err))
		} else {
			m.walk = walk
		}
	}
	return m
}

// SetMoving starts or stops the model. Stopping clears the active waypoint.
func (m *Mover) SetMoving(moving bool) {
	if m.moving == moving {
		return
	}
	m.moving = moving
	if m.walk != nil {
		if moving {
			m.walk.Play()
		} else {
			m.walk.Pause()
		}
	}
	if !moving {
		m.setActive(-1)
	}
	m.log.Debug("mover", zap.Bool("moving", moving), zap.Float32("angle", m.angle))
}

// Moving reports whether Tick advances the model.
func (m *Mover) Moving() bool {
	return m.moving
}

// Angle returns the path angle in radians.
func (m *Mover) Angle() float32 {
	return m.angle
}

// Position returns the point on the path for the current angle.
func (m *Mover) Position() math.Vec3 {
	return math.Vec3{
		X: m.cfg.Radius * math32.Cos(m.angle),
		Y: m.cfg.Height,
		Z: m.cfg.Radius * math32.Sin(m.angle),
	}
}

// Rotation returns the model rotation facing along the path.
func (m *Mover) Rotation() math.Vec3 {
	return math.Vec3{Y: -m.angle}
}

// Waypoints returns the configured waypoints.
func (m *Mover) Waypoints() []Waypoint {
	return m.waypoints
}

// ActiveWaypoint returns the index of the waypoint the model is near.
func (m *Mover) ActiveWaypoint() (int, bool) {
	return m.active, m.active >= 0
}

// Tick advances the model by one frame of dt seconds.
func (m *Mover) Tick(dt float32) {
	if !m.moving {
		m.setActive(-1)
		return
	}

	if m.cfg.TimeNormalized {
		m.angle += m.cfg.AngularVelocity * dt
	} else {
		m.angle += m.cfg.AngularStep
	}
	if m.mixer != nil {
		m.mixer.Update(dt)
	}
	m.setActive(m.nearest(m.Position()))
}

// nearest returns the first waypoint, in declaration order, within its
// threshold of p.
func (m *Mover) nearest(p math.Vec3) int {
	for i, wp := range m.waypoints {
		if p.Distance(wp.Position) < wp.Threshold {
			return i
		}
	}
	return -1
}

func (m *Mover) setActive(index int) {
	if index == m.active {
		return
	}
	prev := m.active
	m.active = index
	if index >= 0 {
		m.log.Debug("waypoint reached", zap.String("name", m.waypoints[index].Name), zap.Int("index", index))
	}
	if m.OnWaypoint != nil {
		m.OnWaypoint(prev, index)
	}
}
