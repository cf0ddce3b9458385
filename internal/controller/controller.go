// Package controller ties a scene variant to input, camera controls,
// picking, selection, model motion and the render loop.
package controller

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/animation"
	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/control"
	"github.com/Faultbox/sceneview/internal/engine/input"
	"github.com/Faultbox/sceneview/internal/engine/loop"
	"github.com/Faultbox/sceneview/internal/engine/mover"
	"github.com/Faultbox/sceneview/internal/engine/picking"
	"github.com/Faultbox/sceneview/internal/scene/geometry"
	"github.com/Faultbox/sceneview/internal/scene/graph"
	"github.com/Faultbox/sceneview/internal/scene/registry"
	"github.com/Faultbox/sceneview/internal/scene/selection"
	"github.com/Faultbox/sceneview/internal/scene/variants"
)

// Size is a viewport size in pixels.
type Size struct {
	Width, Height int
}

// Options are the collaborators of a controller.
type Options struct {
	Config *config.Config
	Input  input.Source
	Frames loop.FrameSource
	Logger *zap.Logger
	// Model overrides the model manifest named in the config.
	Model *assets.Model
}

// Controller owns one running scene. All methods must be called from the
// thread that drives Input and Frames.
type Controller struct {
	cfg     *config.Config
	log     *zap.Logger
	adapter graph.Adapter
	size    Size

	scene   *variants.Scene
	reg     *registry.Registry
	cam     *camera.Camera
	orbit   *camera.OrbitControls
	picker  *picking.Engine
	sel     *selection.Machine
	arbiter *control.Arbiter
	mover   *mover.Mover
	walker  *animation.Mixer
	mixer   *animation.Mixer
	loop    *loop.Loop

	unsubscribe []func()
	disposed    bool

	pointer pointerState
	drag    dragState
}

// New builds the configured scene on adapter, subscribes to input and starts
// the render loop.
func New(adapter graph.Adapter, size Size, opts Options) (*Controller, error) {
	if adapter == nil {
		return nil, errors.New("controller: nil adapter")
	}
	if opts.Frames == nil {
		return nil, errors.New("controller: nil frame source")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Controller{
		cfg:     cfg,
		log:     log,
		adapter: adapter,
		size:    size,
		arbiter: control.New(log.Named("control")),
	}

	model := opts.Model
	if model == nil {
		model = c.loadModel()
	}

	palette, err := geometry.ParsePalette(cfg.Scene.Palette)
	if err != nil {
		return nil, fmt.Errorf("scene palette: %w", err)
	}
	scene, err := variants.Build(adapter, cfg.Scene.Name, variants.Options{
		Palette:      palette,
		Seed:         cfg.Scene.Seed,
		ClusterCount: cfg.Scene.ClusterCount,
		Model:        model,
		PathRadius:   cfg.Mover.Radius,
		PathHeight:   cfg.Mover.Height,
	})
	if err != nil {
		return nil, err
	}
	c.scene = scene
	c.reg = scene.Registry
	c.picker = picking.NewEngine(c.reg)

	if err := c.setupCamera(); err != nil {
		scene.Dispose(adapter)
		return nil, err
	}
	if err := c.setupSelection(); err != nil {
		scene.Dispose(adapter)
		return nil, err
	}
	c.setupModel()

	adapter.Resize(size.Width, size.Height)

	c.loop = loop.New(opts.Frames, []loop.Stage{
		{Name: "orbit", Update: c.updateOrbit},
		{Name: "mover", Update: c.updateMover},
		{Name: "animate", Update: c.updateAnimations},
	}, c.render, log.Named("loop"))

	if opts.Input != nil {
		c.unsubscribe = append(c.unsubscribe, opts.Input.Subscribe(c.handle))
	}
	c.loop.Start()

	log.Info("scene ready",
		zap.String("scene", scene.Name),
		zap.Int("objects", c.reg.Len()),
		zap.Int("width", size.Width),
		zap.Int("height", size.Height))
	return c, nil
}

// loadModel resolves the configured model manifest. Load failures are
// logged and the scene runs without a model.
func (c *Controller) loadModel() *assets.Model {
	path := c.cfg.Scene.Model
	if path == "" {
		return assets.DefaultModel()
	}
	m, err := assets.NewManager(c.cfg.Scene.AssetDirs...).LoadModel(path)
	if err != nil {
		c.log.Error("model unavailable, continuing without it", zap.String("path", path), zap.Error(err))
		return nil
	}
	c.log.Debug("model loaded", zap.String("name", m.Name), zap.Int("clips", len(m.Clips)))
	return m
}

func (c *Controller) setupCamera() error {
	aspect := float32(1)
	if c.size.Width > 0 && c.size.Height > 0 {
		aspect = float32(c.size.Width) / float32(c.size.Height)
	}
	c.cam = camera.New(c.cfg.Graphics.FOV, aspect)
	c.cam.Position = c.scene.Eye
	c.cam.LookAt(c.scene.Target)

	c.orbit = camera.NewOrbitControls(c.cam)
	c.orbit.EnableDamping = c.cfg.Controls.EnableDamping
	c.orbit.DampingFactor = c.cfg.Controls.DampingFactor
	c.orbit.DragSensitivity = c.cfg.Controls.RotateSpeed
	c.orbit.ZoomSensitivity = c.cfg.Controls.ZoomSpeed
	if c.orbit.Distance == 0 {
		return fmt.Errorf("scene %s: camera eye equals its target", c.scene.Name)
	}
	return nil
}

func (c *Controller) setupSelection() error {
	sc := selection.DefaultConfig()
	sc.Duration = c.cfg.Selection.Duration
	sc.Ease = c.cfg.Selection.Ease
	sc.SpinSpeed = 0
	if c.scene.Spin {
		sc.SpinSpeed = c.cfg.Selection.SpinSpeed
	}
	if accent, err := geometry.ParsePalette([]string{c.cfg.Selection.Accent}); err == nil && len(accent) == 1 {
		sc.Accent = accent[0]
	}

	sc.Raise = c.scene.Raise
	sc.Focus = c.scene.Focus
	if raise, ok := c.cfg.Selection.RaiseOffset(); ok {
		sc.Raise = raise
		sc.Focus = nil
	}
	if focus, ok := c.cfg.Selection.FocusPoint(); ok {
		sc.Focus = &focus
	}

	sel, err := selection.New(c.reg, sc, c.log.Named("selection"))
	if err != nil {
		return fmt.Errorf("selection: %w", err)
	}
	sel.OnChange = func(prev, next int) {
		c.log.Info("selection changed", zap.Int("previous", prev), zap.Int("active", next))
	}
	c.sel = sel
	return nil
}

// setupModel wires the walker of the site scene and the animated model of
// the model scene.
func (c *Controller) setupModel() {
	m := c.scene.Model
	if m == nil {
		return
	}

	switch {
	case c.scene.Walker != 0:
		c.walker = animation.NewMixer(m.Clips, c.log.Named("walker"))
		mc := mover.Config{
			Radius:          c.cfg.Mover.Radius,
			Height:          c.cfg.Mover.Height,
			AngularStep:     c.cfg.Mover.AngularStep,
			TimeNormalized:  c.cfg.Mover.TimeNormalized,
			AngularVelocity: c.cfg.Mover.AngularVelocity,
			WalkClip:        m.WalkClip,
		}
		c.mover = mover.New(mc, c.scene.Waypoints, c.walker, c.log.Named("mover"))
		c.mover.OnWaypoint = c.onWaypoint
		c.placeWalker()

	case c.scene.ModelIndex >= 0:
		c.mixer = animation.NewMixer(m.Clips, c.log.Named("model"))
		if m.IdleClip == "" {
			return
		}
		idle, err := c.mixer.ClipAction(m.IdleClip)
		if err != nil {
			c.log.Warn("idle clip unavailable", zap.Error(err))
			return
		}
		idle.Play()
	}
}

// onWaypoint highlights the landmark of the waypoint the walker reached.
// Leaving a waypoint clears its landmark only, so a landmark the user picked
// in the meantime stays selected.
func (c *Controller) onWaypoint(prev, next int) {
	if next < 0 {
		if prev < 0 {
			return
		}
		active, ok := c.sel.Active()
		if ok && active == c.mover.Waypoints()[prev].Landmark {
			c.sel.Deselect()
		}
		return
	}
	wp := c.mover.Waypoints()[next]
	if err := c.sel.Select(wp.Landmark); err != nil {
		c.log.Warn("waypoint landmark", zap.String("waypoint", wp.Name), zap.Error(err))
	}
}

func (c *Controller) placeWalker() {
	t := graph.Identity()
	t.Position = c.mover.Position()
	t.Rotation = c.mover.Rotation()
	s := c.scene.Model.Scale
	t.Scale.X, t.Scale.Y, t.Scale.Z = s, s, s
	c.adapter.SetTransform(c.scene.Walker, t)
}

func (c *Controller) updateOrbit(float32) {
	if c.arbiter.OrbitEnabled() {
		c.orbit.Update()
	}
}

func (c *Controller) updateMover(dt float32) {
	if c.mover == nil {
		return
	}
	c.mover.Tick(dt)
	if c.mover.Moving() {
		c.placeWalker()
	}
}

func (c *Controller) updateAnimations(dt float32) {
	if c.mixer != nil {
		c.mixer.Update(dt)
	}
	c.sel.Update(dt)
}

func (c *Controller) render() error {
	return c.adapter.Render(c.cam)
}

// Resize updates the camera aspect and the adapter viewport and renders one
// extra frame. The loop keeps running.
func (c *Controller) Resize(width, height int) {
	if c.disposed || width <= 0 || height <= 0 {
		return
	}
	c.size = Size{Width: width, Height: height}
	c.cam.SetAspect(width, height)
	c.adapter.Resize(width, height)
	if err := c.render(); err != nil {
		c.log.Error("render after resize", zap.Error(err))
	}
	c.log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

// Dispose unsubscribes from input, stops the loop and removes the scene's
// meshes. Calling it again does nothing.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	for _, unsub := range c.unsubscribe {
		unsub()
	}
	c.unsubscribe = nil
	c.loop.Stop()
	c.scene.Dispose(c.adapter)
	c.log.Info("scene disposed", zap.String("scene", c.scene.Name), zap.Uint64("frames", c.loop.Frames()))
}

// Size returns the current viewport size.
func (c *Controller) Size() Size { return c.size }

// Scene returns the running scene variant.
func (c *Controller) Scene() *variants.Scene { return c.scene }

// Registry returns the scene's interactive objects.
func (c *Controller) Registry() *registry.Registry { return c.reg }

// Selection returns the selection state machine.
func (c *Controller) Selection() *selection.Machine { return c.sel }

// Arbiter returns the control arbiter.
func (c *Controller) Arbiter() *control.Arbiter { return c.arbiter }

// Mover returns the site walker's mover, or nil.
func (c *Controller) Mover() *mover.Mover { return c.mover }

// Mixer returns the model scene's animation mixer, or nil.
func (c *Controller) Mixer() *animation.Mixer { return c.mixer }

// Camera returns the scene camera.
func (c *Controller) Camera() *camera.Camera { return c.cam }

// Loop returns the render loop.
func (c *Controller) Loop() *loop.Loop { return c.loop }
