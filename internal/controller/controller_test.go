package controller

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/animation"
	"github.com/Faultbox/sceneview/internal/engine/control"
	"github.com/Faultbox/sceneview/internal/engine/input"
	"github.com/Faultbox/sceneview/internal/engine/loop"
	"github.com/Faultbox/sceneview/internal/scene/graph"
	"github.com/Faultbox/sceneview/pkg/math"
)

const frame = 16 * time.Millisecond

type harness struct {
	c      *Controller
	mem    *graph.Memory
	frames *loop.Manual
	in     *input.Dispatcher
}

func newHarness(t *testing.T, scene string, modify func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Scene.Name = scene
	if modify != nil {
		modify(cfg)
	}
	h := &harness{
		mem:    graph.NewMemory(1280, 720),
		frames: loop.NewManual(),
		in:     input.NewDispatcher(cfg.Controls.ClickSlop),
	}
	c, err := New(h.mem, Size{Width: 1280, Height: 720}, Options{
		Config: cfg,
		Input:  h.in,
		Frames: h.frames,
	})
	require.NoError(t, err)
	h.c = c
	t.Cleanup(c.Dispose)
	return h
}

// pixel returns the viewport pixel a world point projects to.
func (h *harness) pixel(p math.Vec3) (float32, float32) {
	ndc := h.c.Camera().Project(p)
	s := h.c.Size()
	return (ndc.X + 1) / 2 * float32(s.Width), (1 - ndc.Y) / 2 * float32(s.Height)
}

func (h *harness) clickAt(p math.Vec3) {
	x, y := h.pixel(p)
	h.in.Click(x, y)
}

// settle runs a second of frames.
func (h *harness) settle() {
	h.frames.StepN(60, frame)
}

func TestGridCenterClickSelectsCenter(t *testing.T) {
	h := newHarness(t, "grid", nil)
	h.in.Click(640, 360)

	idx, ok := h.c.Selection().Active()
	require.True(t, ok)
	assert.Equal(t, 4, idx)
}

func TestGridSelectThenSelectOther(t *testing.T) {
	h := newHarness(t, "grid", nil)
	reg := h.c.Registry()

	h.clickAt(reg.MustGet(2).Base.Position)
	h.settle()
	idx, _ := h.c.Selection().Active()
	require.Equal(t, 2, idx)
	assert.Equal(t, math.Vec3{Z: 10}, reg.MustGet(2).Current.Position)

	h.clickAt(reg.MustGet(5).Base.Position)
	idx, _ = h.c.Selection().Active()
	require.Equal(t, 5, idx)
	h.settle()

	two := reg.MustGet(2)
	assert.Equal(t, two.Base, two.Current)
	assert.Equal(t, two.BaseColor, two.Color)
	node, ok := h.mem.Node(two.Mesh)
	require.True(t, ok)
	assert.Equal(t, two.Base, node.Transform)

	five := reg.MustGet(5)
	assert.Equal(t, math.Vec3{Z: 10}, five.Current.Position)
	assert.NotEqual(t, five.Base.Rotation, five.Current.Rotation, "active object spins")
}

func TestGridReselectIsNoop(t *testing.T) {
	h := newHarness(t, "grid", nil)
	h.in.Click(640, 360)
	h.settle()
	require.False(t, h.c.Selection().Busy())

	// the active object now sits at the focus point, still under the center
	h.in.Click(640, 360)
	idx, _ := h.c.Selection().Active()
	assert.Equal(t, 4, idx)
	assert.False(t, h.c.Selection().Busy())
}

func TestGridClickEmptyDeselects(t *testing.T) {
	h := newHarness(t, "grid", nil)
	h.in.Click(640, 360)
	h.settle()

	h.in.Click(5, 5)
	_, ok := h.c.Selection().Active()
	assert.False(t, ok)
	h.settle()
	obj := h.c.Registry().MustGet(4)
	assert.Equal(t, obj.Base, obj.Current)
}

func TestRenderOncePerFrame(t *testing.T) {
	h := newHarness(t, "grid", nil)
	h.frames.StepN(10, frame)
	assert.Equal(t, 10, h.mem.Frames)
	assert.Equal(t, uint64(10), h.c.Loop().Frames())
}

func TestResizeRendersImmediately(t *testing.T) {
	h := newHarness(t, "grid", nil)
	h.in.Dispatch(input.Event{Type: input.EventResize, Width: 800, Height: 800})

	assert.Equal(t, 1, h.mem.Frames)
	assert.Equal(t, 800, h.mem.Width)
	assert.Equal(t, float32(1), h.c.Camera().Aspect)
	assert.True(t, h.c.Loop().Running())

	// picking follows the new viewport
	h.in.Click(400, 400)
	idx, ok := h.c.Selection().Active()
	require.True(t, ok)
	assert.Equal(t, 4, idx)
}

func TestClusterDragMovesObjectNotCamera(t *testing.T) {
	h := newHarness(t, "cluster", nil)
	reg := h.c.Registry()

	x, y := h.pixel(reg.MustGet(0).Base.Position)
	h.in.Dispatch(input.Event{Type: input.EventPointerDown, X: x, Y: y, Button: 1})
	index, ok := h.c.Arbiter().Dragging()
	require.True(t, ok)
	assert.Equal(t, control.Drag, h.c.Arbiter().Mode())

	before := reg.MustGet(index).Current.Position
	eye := h.c.Camera().Position

	h.in.Dispatch(input.Event{Type: input.EventPointerMove, X: x + 50, Y: y, DX: 50})
	h.frames.StepN(5, frame)

	after := reg.MustGet(index).Current.Position
	assert.Greater(t, after.X, before.X)
	assert.InDelta(t, before.Z, after.Z, 1e-4)
	assert.Equal(t, eye, h.c.Camera().Position)

	h.in.Dispatch(input.Event{Type: input.EventPointerUp, X: x + 50, Y: y, Button: 1})
	assert.Equal(t, control.Orbit, h.c.Arbiter().Mode())
}

func TestClusterEmptyDragOrbits(t *testing.T) {
	h := newHarness(t, "cluster", nil)
	eye := h.c.Camera().Position

	h.in.Drag(5, 5, 105, 5)
	assert.Equal(t, control.Orbit, h.c.Arbiter().Mode())
	h.settle()
	assert.NotEqual(t, eye, h.c.Camera().Position)
	assert.InDelta(t, eye.Length(), h.c.Camera().Position.Length(), 1e-3)
}

func TestHoverOffEndsDrag(t *testing.T) {
	h := newHarness(t, "cluster", nil)
	x, y := h.pixel(h.c.Registry().MustGet(0).Base.Position)
	h.in.Dispatch(input.Event{Type: input.EventPointerDown, X: x, Y: y, Button: 1})
	require.Equal(t, control.Drag, h.c.Arbiter().Mode())

	h.in.Dispatch(input.Event{Type: input.EventHoverOff})
	assert.Equal(t, control.Orbit, h.c.Arbiter().Mode())
}

func TestHostDragEvents(t *testing.T) {
	h := newHarness(t, "cluster", nil)
	x, y := h.pixel(h.c.Registry().MustGet(0).Base.Position)
	h.in.Dispatch(input.Event{Type: input.EventDragStart, X: x, Y: y})
	idx, ok := h.c.Arbiter().Dragging()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	h.in.Dispatch(input.Event{Type: input.EventDragEnd})
	assert.True(t, h.c.Arbiter().OrbitEnabled())
}

func TestGridIgnoresHostDrag(t *testing.T) {
	h := newHarness(t, "grid", nil)
	reg := h.c.Registry()
	x, y := h.pixel(reg.MustGet(4).Base.Position)

	h.in.Dispatch(input.Event{Type: input.EventDragStart, X: x, Y: y})
	h.in.Dispatch(input.Event{Type: input.EventPointerMove, X: x + 100, Y: y, DX: 100})
	h.frames.StepN(5, frame)

	assert.Equal(t, control.Orbit, h.c.Arbiter().Mode())
	_, dragging := h.c.Arbiter().Dragging()
	assert.False(t, dragging)
	assert.Equal(t, reg.MustGet(4).Base, reg.MustGet(4).Current)
}

func TestSiteWalkerReachesLandmark(t *testing.T) {
	h := newHarness(t, "site", nil)
	m := h.c.Mover()
	require.NotNil(t, m)

	h.frames.StepN(10, frame)
	assert.Zero(t, m.Angle(), "idle walker does not move")

	h.in.Key("w", true)
	// 0.005 rad per frame; the first waypoint sits at pi/4
	h.frames.StepN(150, frame)
	wp, ok := m.ActiveWaypoint()
	require.True(t, ok)
	assert.Equal(t, 0, wp)

	idx, ok := h.c.Selection().Active()
	require.True(t, ok)
	assert.Equal(t, m.Waypoints()[0].Landmark, idx)

	node, ok := h.mem.Node(h.c.Scene().Walker)
	require.True(t, ok)
	assert.Equal(t, m.Position(), node.Transform.Position)

	h.in.Key("w", false)
	_, ok = m.ActiveWaypoint()
	assert.False(t, ok)
	_, ok = h.c.Selection().Active()
	assert.False(t, ok)
}

func TestModelClickPlaysReact(t *testing.T) {
	h := newHarness(t, "model", nil)
	mixer := h.c.Mixer()
	require.NotNil(t, mixer)
	model := h.c.Scene().Model
	assert.Equal(t, []string{model.IdleClip}, mixer.Playing())

	h.clickAt(h.c.Scene().ModelBase.Position)
	assert.Equal(t, []string{model.ReactClip}, mixer.Playing())
	react, err := mixer.ClipAction(model.ReactClip)
	require.NoError(t, err)
	assert.Equal(t, animation.LoopOnce, react.Loop)

	h.frames.StepN(200, frame)
	assert.True(t, react.Finished())
	assert.Empty(t, mixer.Playing())
}

func TestMissingModelContinues(t *testing.T) {
	h := newHarness(t, "site", func(cfg *config.Config) {
		cfg.Scene.Model = filepath.Join(t.TempDir(), "missing.yaml")
	})
	assert.Nil(t, h.c.Mover())
	assert.Equal(t, 4, h.c.Registry().Len())
	h.frames.StepN(3, frame)
	assert.Equal(t, 3, h.mem.Frames)
}

func TestModelManifestFromConfig(t *testing.T) {
	dir := t.TempDir()
	manifest := "name: cat\nscale: 1\nsize: [1, 1, 2]\nclips:\n  - {name: sit, duration: 2}\n  - {name: jump, duration: 1}\nidle: sit\nreact: jump\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cat.yaml"), []byte(manifest), 0644))

	h := newHarness(t, "model", func(cfg *config.Config) {
		cfg.Scene.AssetDirs = []string{dir}
		cfg.Scene.Model = "cat.yaml"
	})
	assert.Equal(t, "cat", h.c.Scene().Model.Name)
	assert.Equal(t, []string{"sit"}, h.c.Mixer().Playing())
}

func TestDispose(t *testing.T) {
	h := newHarness(t, "site", nil)
	h.frames.StepN(2, frame)
	h.c.Dispose()

	assert.Zero(t, h.in.Subscribers())
	assert.False(t, h.c.Loop().Running())
	assert.Zero(t, h.frames.Pending())
	assert.Zero(t, h.mem.Len())

	h.frames.StepN(5, frame)
	assert.Equal(t, 2, h.mem.Frames)

	h.c.Dispose()
	h.c.Resize(10, 10)
	assert.Equal(t, 1280, h.mem.Width)
}

func TestNewErrors(t *testing.T) {
	_, err := New(nil, Size{1, 1}, Options{Frames: loop.NewManual()})
	assert.Error(t, err)

	_, err = New(graph.NewMemory(1, 1), Size{1, 1}, Options{})
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Scene.Name = "moon"
	_, err = New(graph.NewMemory(1, 1), Size{1, 1}, Options{Config: cfg, Frames: loop.NewManual()})
	assert.Error(t, err)
}

func TestLeavingWaypointKeepsUserSelection(t *testing.T) {
	h := newHarness(t, "site", nil)
	m := h.c.Mover()
	require.NotNil(t, m)

	h.in.Key("w", true)
	h.frames.StepN(150, frame)
	wp, ok := m.ActiveWaypoint()
	require.True(t, ok)
	require.Equal(t, 0, wp)

	picked := m.Waypoints()[2].Landmark
	require.NotEqual(t, m.Waypoints()[0].Landmark, picked)
	require.NoError(t, h.c.Selection().Select(picked))

	// Walk on past the first waypoint, well short of the second.
	h.frames.StepN(70, frame)
	_, ok = m.ActiveWaypoint()
	require.False(t, ok)

	idx, ok := h.c.Selection().Active()
	require.True(t, ok)
	assert.Equal(t, picked, idx)

	// Stopping with the user's pick active leaves it alone too.
	h.in.Key("w", false)
	idx, ok = h.c.Selection().Active()
	require.True(t, ok)
	assert.Equal(t, picked, idx)
}
