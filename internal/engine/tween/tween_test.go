package tween

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/scene/graph"
	"github.com/Faultbox/sceneview/pkg/math"
)

func TestEaseLookup(t *testing.T) {
	for _, name := range []string{"", "linear", "power3.out", "POWER1.OUT", "bounce.out"} {
		fn, err := Ease(name)
		require.NoError(t, err, name)
		assert.NotNil(t, fn, name)
	}
	_, err := Ease("wobble")
	assert.Error(t, err)
}

func TestTransformReachesExactEnd(t *testing.T) {
	g := NewGroup()
	from := graph.Identity()
	to := graph.Transform{
		Position: math.Vec3{X: 0.1, Y: 0.2, Z: 10},
		Rotation: math.Vec3{Y: 1.3},
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
	var got graph.Transform
	g.Transform(Key{Object: 1}, from, to, Options{Duration: 0.5}, func(tr graph.Transform) { got = tr })
	require.True(t, g.Running(Key{Object: 1}))

	// 0.5s in uneven steps
	for _, dt := range []float32{0.016, 0.1, 0.2, 0.05, 0.3} {
		g.Update(dt)
	}
	assert.Equal(t, to, got)
	assert.Equal(t, 0, g.Len())
}

func TestTransformIntermediate(t *testing.T) {
	g := NewGroup()
	lin, err := Ease("linear")
	require.NoError(t, err)
	from := graph.Identity()
	to := from
	to.Position = math.Vec3{X: 10}

	var got graph.Transform
	g.Transform(Key{}, from, to, Options{Duration: 1, Ease: lin}, func(tr graph.Transform) { got = tr })
	g.Update(0.5)
	assert.InDelta(t, 5, got.Position.X, 1e-4)
}

func TestReplaceSameKey(t *testing.T) {
	g := NewGroup()
	key := Key{Object: 3, Channel: ChannelColor}
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}
	white := colorful.Color{R: 1, G: 1, B: 1}

	var got colorful.Color
	firstDone := false
	g.Color(key, white, red, Options{Duration: 0.5}, func(c colorful.Color) { got = c })
	g.OnDone(key, func() { firstDone = true })
	g.Update(0.1)

	g.Color(key, got, blue, Options{Duration: 0.5}, func(c colorful.Color) { got = c })
	assert.Equal(t, 1, g.Len())

	g.Update(1)
	assert.Equal(t, blue, got)
	assert.False(t, firstDone, "replaced tween must not report completion")
}

func TestIndependentKeys(t *testing.T) {
	g := NewGroup()
	var a, b graph.Transform
	to := graph.Identity()
	to.Position = math.Vec3{Z: 10}

	g.Transform(Key{Object: 2}, graph.Identity(), to, Options{Duration: 0.5}, func(tr graph.Transform) { a = tr })
	g.Transform(Key{Object: 5}, graph.Identity(), to, Options{Duration: 1}, func(tr graph.Transform) { b = tr })
	assert.Equal(t, 2, g.Len())

	g.Update(0.6)
	assert.Equal(t, to, a)
	assert.False(t, g.Running(Key{Object: 2}))
	assert.True(t, g.Running(Key{Object: 5}))
	assert.Less(t, b.Position.Z, float32(10))

	g.Update(0.6)
	assert.Equal(t, to, b)
}

func TestZeroDurationAppliesImmediately(t *testing.T) {
	g := NewGroup()
	var got colorful.Color
	target := colorful.Color{G: 1}
	g.Color(Key{}, colorful.Color{}, target, Options{}, func(c colorful.Color) { got = c })
	assert.Equal(t, target, got)
	assert.Equal(t, 0, g.Len())
}

func TestOnDone(t *testing.T) {
	g := NewGroup()
	done := 0
	g.Transform(Key{}, graph.Identity(), graph.Identity(), Options{Duration: 0.2}, func(graph.Transform) {})
	g.OnDone(Key{}, func() { done++ })
	g.Update(0.1)
	assert.Equal(t, 0, done)
	g.Update(0.2)
	g.Update(0.2)
	assert.Equal(t, 1, done)
}

func TestCancelKeepsValue(t *testing.T) {
	g := NewGroup()
	calls := 0
	g.Transform(Key{}, graph.Identity(), graph.Identity(), Options{Duration: 1}, func(graph.Transform) { calls++ })
	g.Cancel(Key{})
	g.Update(2)
	assert.Equal(t, 0, calls)
}
