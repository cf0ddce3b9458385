package mover

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/engine/animation"
	"github.com/Faultbox/sceneview/pkg/math"
)

func TestIdleTicksDoNothing(t *testing.T) {
	m := New(DefaultConfig(), []Waypoint{{Position: math.Vec3{X: 20}, Threshold: 5}}, nil, nil)
	for i := 0; i < 10; i++ {
		m.Tick(1.0 / 60)
	}
	assert.Zero(t, m.Angle())
	_, ok := m.ActiveWaypoint()
	assert.False(t, ok)
	assert.Equal(t, math.Vec3{X: 20, Y: 0.1}, m.Position())
}

func TestFrameCoupledStep(t *testing.T) {
	m := New(DefaultConfig(), nil, nil, nil)
	m.SetMoving(true)
	// dt is ignored in frame-coupled mode
	m.Tick(0.001)
	m.Tick(1)
	assert.InDelta(t, 0.01, m.Angle(), 1e-6)

	pos := m.Position()
	assert.InDelta(t, 20*math32.Cos(0.01), pos.X, 1e-4)
	assert.InDelta(t, 20*math32.Sin(0.01), pos.Z, 1e-4)
	assert.Equal(t, float32(0.1), pos.Y)
	assert.InDelta(t, -0.01, m.Rotation().Y, 1e-6)
}

func TestTimeNormalizedStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeNormalized = true
	cfg.AngularVelocity = 1
	m := New(cfg, nil, nil, nil)
	m.SetMoving(true)
	m.Tick(0.25)
	m.Tick(0.25)
	assert.InDelta(t, 0.5, m.Angle(), 1e-6)
}

func TestWaypointFirstMatchWins(t *testing.T) {
	// both waypoints cover the start position
	wps := []Waypoint{
		{Name: "far", Position: math.Vec3{X: 25}, Threshold: 6, Landmark: 1},
		{Name: "near", Position: math.Vec3{X: 20}, Threshold: 2, Landmark: 2},
	}
	m := New(DefaultConfig(), wps, nil, nil)
	m.SetMoving(true)
	m.Tick(1.0 / 60)
	idx, ok := m.ActiveWaypoint()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestWaypointEnterLeave(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeNormalized = true
	cfg.AngularVelocity = 1
	// quarter turn away from the start
	wps := []Waypoint{{Name: "gate", Position: math.Vec3{Z: 20}, Threshold: 3, Landmark: 4}}
	m := New(cfg, wps, nil, nil)

	var events [][2]int
	m.OnWaypoint = func(prev, next int) { events = append(events, [2]int{prev, next}) }

	m.SetMoving(true)
	for i := 0; i < 400; i++ {
		m.Tick(0.01)
	}
	require.GreaterOrEqual(t, len(events), 2)
	assert.Equal(t, [2]int{-1, 0}, events[0])
	assert.Equal(t, [2]int{0, -1}, events[1])
}

func TestStopClearsWaypoint(t *testing.T) {
	wps := []Waypoint{{Position: math.Vec3{X: 20}, Threshold: 1}}
	m := New(DefaultConfig(), wps, nil, nil)
	m.SetMoving(true)
	m.Tick(0.016)
	_, ok := m.ActiveWaypoint()
	require.True(t, ok)

	m.SetMoving(false)
	_, ok = m.ActiveWaypoint()
	assert.False(t, ok)
	angle := m.Angle()
	m.Tick(0.016)
	assert.Equal(t, angle, m.Angle())
}

func TestWalkClipFollowsMovement(t *testing.T) {
	mixer := animation.NewMixer([]animation.Clip{{Name: "walk", Duration: 1}}, nil)
	m := New(DefaultConfig(), nil, mixer, nil)
	walk, err := mixer.ClipAction("walk")
	require.NoError(t, err)

	m.Tick(0.5)
	assert.False(t, walk.Playing())

	m.SetMoving(true)
	m.Tick(0.25)
	assert.True(t, walk.Playing())
	assert.InDelta(t, 0.25, walk.Time(), 1e-6)

	m.SetMoving(false)
	m.Tick(0.25)
	assert.False(t, walk.Playing())
	assert.InDelta(t, 0.25, walk.Time(), 1e-6)
}

func TestMissingWalkClip(t *testing.T) {
	mixer := animation.NewMixer(nil, nil)
	m := New(DefaultConfig(), nil, mixer, nil)
	m.SetMoving(true)
	m.Tick(0.1)
	assert.InDelta(t, 0.005, m.Angle(), 1e-6)
}
