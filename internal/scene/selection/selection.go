// Package selection implements the single-selection state machine. Selecting
// an object highlights it with tweens; selecting another resets the first.
package selection

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/tween"
	"github.com/Faultbox/sceneview/internal/scene/geometry"
	"github.com/Faultbox/sceneview/internal/scene/graph"
	"github.com/Faultbox/sceneview/internal/scene/registry"
	"github.com/Faultbox/sceneview/pkg/math"
)

// None is the index reported for "no active object".
const None = -1

// Config controls how objects are highlighted.
type Config struct {
	Duration float32 // Seconds per highlight/reset transition
	Ease     string
	Accent   colorful.Color
	// Raise is added to the base position of a highlighted object.
	Raise math.Vec3
	// Focus, when set, is the absolute position highlighted objects move to
	// instead of base + Raise.
	Focus *math.Vec3
	// SpinSpeed is the Y rotation of the active object in rad/s.
	SpinSpeed float32
}

// DefaultConfig matches the grid scene: half a second, power3.out, raised
// toward the camera.
func DefaultConfig() Config {
	return Config{
		Duration:  0.5,
		Ease:      tween.DefaultEase,
		Accent:    geometry.Color(geometry.ColorActive),
		Raise:     math.Vec3{Z: 10},
		SpinSpeed: 0.5,
	}
}

// Machine tracks which object is active. It is driven from the render loop
// thread only.
type Machine struct {
	reg    *registry.Registry
	cfg    Config
	opts   tween.Options
	tweens *tween.Group
	log    *zap.Logger

	active int

	// OnChange is called after every state change with the previous and new
	// active index (None for no object).
	OnChange func(prev, next int)
}

// New creates an idle machine over reg.
func New(reg *registry.Registry, cfg Config, log *zap.Logger) (*Machine, error) {
	fn, err := tween.Ease(cfg.Ease)
	if err != nil {
		return nil, err
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("transition duration %v must be positive", cfg.Duration)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Machine{
		reg:    reg,
		cfg:    cfg,
		opts:   tween.Options{Duration: cfg.Duration, Ease: fn},
		tweens: tween.NewGroup(),
		log:    log,
		active: None,
	}, nil
}

// Active returns the active index.
func (m *Machine) Active() (int, bool) {
	return m.active, m.active != None
}

// Busy reports whether any transition is still running.
func (m *Machine) Busy() bool {
	return m.tweens.Len() > 0
}

// Select makes index the active object. Selecting the active object again
// does nothing.
func (m *Machine) Select(index int) error {
	obj, err := m.reg.Get(index)
	if err != nil {
		return err
	}
	if index == m.active {
		return nil
	}

	prev := m.active
	if prev != None {
		m.reset(m.reg.MustGet(prev))
	}
	m.highlight(obj)
	m.active = index

	m.log.Debug("selected",
		zap.Int("index", index),
		zap.Int("previous", prev),
		zap.String("kind", obj.Spec.Kind.String()))
	m.notify(prev, index)
	return nil
}

// Deselect returns the active object, if any, to its base state.
func (m *Machine) Deselect() {
	if m.active == None {
		return
	}
	prev := m.active
	m.reset(m.reg.MustGet(prev))
	m.active = None

	m.log.Debug("deselected", zap.Int("index", prev))
	m.notify(prev, None)
}

// Interrupt stops any transform transition on index so another writer (a
// drag) can own its position. Color transitions keep running.
func (m *Machine) Interrupt(index int) {
	m.tweens.Cancel(tween.Key{Object: index, Channel: tween.ChannelTransform})
}

// Update advances transitions by dt seconds and spins the active object.
func (m *Machine) Update(dt float32) {
	m.tweens.Update(dt)

	if m.active == None || m.cfg.SpinSpeed == 0 {
		return
	}
	obj := m.reg.MustGet(m.active)
	t := obj.Current
	t.Rotation.Y += m.cfg.SpinSpeed * dt
	m.reg.SetTransform(obj.Index, t)
}

// highlight only drives position so the spin applied in Update is not
// overwritten while the object travels.
func (m *Machine) highlight(obj *registry.Object) {
	obj.State = registry.Active

	target := obj.Base.Position.Add(m.cfg.Raise)
	if m.cfg.Focus != nil {
		target = *m.cfg.Focus
	}
	to := obj.Current
	to.Position = target

	index := obj.Index
	m.tweens.Transform(m.key(index, tween.ChannelTransform), obj.Current, to, m.opts, func(t graph.Transform) {
		cur := m.reg.MustGet(index).Current
		cur.Position = t.Position
		m.reg.SetTransform(index, cur)
	})
	m.tweens.Color(m.key(index, tween.ChannelColor), obj.Color, m.cfg.Accent, m.opts, func(c colorful.Color) {
		m.reg.SetColor(index, c)
	})
}

func (m *Machine) reset(obj *registry.Object) {
	obj.State = registry.Idle

	index := obj.Index
	m.tweens.Transform(m.key(index, tween.ChannelTransform), obj.Current, obj.Base, m.opts, func(t graph.Transform) {
		m.reg.SetTransform(index, t)
	})
	m.tweens.Color(m.key(index, tween.ChannelColor), obj.Color, obj.BaseColor, m.opts, func(c colorful.Color) {
		m.reg.SetColor(index, c)
	})
}

func (m *Machine) key(index int, ch tween.Channel) tween.Key {
	return tween.Key{Object: index, Channel: ch}
}

func (m *Machine) notify(prev, next int) {
	if m.OnChange != nil {
		m.OnChange(prev, next)
	}
}
