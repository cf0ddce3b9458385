// Package variants builds the scenes the controller can run: a primitive
// grid, a cube cluster, a site with a walking model and a single model.
package variants

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/engine/mover"
	"github.com/Faultbox/sceneview/internal/scene/geometry"
	"github.com/Faultbox/sceneview/internal/scene/graph"
	"github.com/Faultbox/sceneview/internal/scene/registry"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Scene variant names.
const (
	Grid    = "grid"
	Cluster = "cluster"
	Site    = "site"
	Model   = "model"
)

// Names lists the known variants.
var Names = []string{Grid, Cluster, Site, Model}

// Options tune how a variant is built.
type Options struct {
	// Palette colors cluster cubes. Defaults to the cube colors.
	Palette []colorful.Color
	// Seed makes cluster placement reproducible.
	Seed         uint64
	ClusterCount int
	// Model is the character of the site and model scenes. Nil builds the
	// scene without one.
	Model *assets.Model
	// PathRadius and PathHeight place the site walker path.
	PathRadius float32
	PathHeight float32
}

// Scene is a built variant: the pickable objects, the decorations around
// them and how the controller should treat them.
type Scene struct {
	Name       string
	Registry   *registry.Registry
	Background colorful.Color

	// Camera placement.
	Eye    math.Vec3
	Target math.Vec3

	// Extras are non-pickable meshes (floor, walker) owned by the scene.
	Extras []graph.Handle

	// Selection behaviour.
	Selectable bool
	Draggable  bool
	Focus      *math.Vec3
	Raise      math.Vec3
	Spin       bool

	// Site walker. Walker is zero when the scene has none.
	Walker    graph.Handle
	Waypoints []mover.Waypoint

	// Model is the character of the site and model scenes.
	Model *assets.Model
	// ModelIndex is the registry index of a pickable model, or -1.
	ModelIndex int
	ModelBase  graph.Transform
}

// Build creates the named variant on adapter.
func Build(adapter graph.Adapter, name string, opts Options) (*Scene, error) {
	var (
		s   *Scene
		err error
	)
	switch name {
	case Grid:
		s, err = buildGrid(adapter)
	case Cluster:
		s, err = buildCluster(adapter, opts)
	case Site:
		s, err = buildSite(adapter, opts)
	case Model:
		s, err = buildModel(adapter, opts)
	default:
		return nil, fmt.Errorf("unknown scene %q (want one of %v)", name, Names)
	}
	if err != nil {
		return nil, fmt.Errorf("building %s scene: %w", name, err)
	}
	adapter.SetBackground(s.Background)
	return s, nil
}

// Dispose removes every mesh of the scene from the adapter.
func (s *Scene) Dispose(adapter graph.Adapter) {
	s.Registry.Detach()
	for _, h := range s.Extras {
		adapter.Remove(h)
	}
	s.Extras = nil
}

func buildGrid(adapter graph.Adapter) (*Scene, error) {
	specs, err := geometry.Primitives(9)
	if err != nil {
		return nil, err
	}
	steps := registry.Steps(-5, 5, 5)
	reg, err := registry.Build(adapter, specs, geometry.Palette([]uint32{geometry.ColorBase}), registry.Grid(steps, steps, 0))
	if err != nil {
		return nil, err
	}
	focus := math.Vec3{Z: 10}
	return &Scene{
		Name:       Grid,
		Registry:   reg,
		Background: colorful.Color{},
		Eye:        math.Vec3{Z: 15},
		Selectable: true,
		Focus:      &focus,
		Spin:       true,
		ModelIndex: -1,
	}, nil
}

func buildCluster(adapter graph.Adapter, opts Options) (*Scene, error) {
	palette := opts.Palette
	if len(palette) == 0 {
		palette = geometry.Palette(geometry.CubeColors)
	}
	n := opts.ClusterCount
	if n <= 0 {
		n = len(palette)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	specs := make([]geometry.Spec, n)
	placements := make([]graph.Transform, n)
	for i := range specs {
		specs[i] = geometry.Spec{Kind: geometry.KindBox, A: 1, B: 1, C: 1}
		s := geometry.GroupScaleMin + rng.Float32()*(geometry.GroupScaleMax-geometry.GroupScaleMin)
		placements[i] = graph.Transform{
			Position: math.Vec3{
				X: (rng.Float32()*2 - 1) * 6,
				Y: (rng.Float32()*2 - 1) * 4,
				Z: (rng.Float32()*2 - 1) * 2,
			},
			Rotation: math.Vec3{X: rng.Float32() * math32.Pi, Y: rng.Float32() * math32.Pi},
			Scale:    math.Vec3{X: s, Y: s, Z: s},
		}
	}
	reg, err := registry.Build(adapter, specs, palette, placements)
	if err != nil {
		return nil, err
	}
	return &Scene{
		Name:       Cluster,
		Registry:   reg,
		Background: geometry.Color(geometry.ColorBackground),
		Eye:        math.Vec3{Z: 15},
		Selectable: true,
		Draggable:  true,
		Raise:      math.Vec3{Z: 2},
		ModelIndex: -1,
	}, nil
}

// siteLandmarks are placed just outside the walker path.
var siteLandmarks = []struct {
	name  string
	spec  geometry.Spec
	angle float32
}{
	{"tower", geometry.Pack[4], math32.Pi / 4},
	{"gem", geometry.Pack[5], 3 * math32.Pi / 4},
	{"ring", geometry.Pack[6], 5 * math32.Pi / 4},
	{"dome", geometry.Pack[8], 7 * math32.Pi / 4},
}

const (
	landmarkOffset    = 4
	waypointThreshold = 3
)

func buildSite(adapter graph.Adapter, opts Options) (*Scene, error) {
	radius, height := opts.PathRadius, opts.PathHeight
	if radius <= 0 {
		radius = 20
	}

	specs := make([]geometry.Spec, len(siteLandmarks))
	placements := make([]graph.Transform, len(siteLandmarks))
	waypoints := make([]mover.Waypoint, len(siteLandmarks))
	for i, lm := range siteLandmarks {
		cos, sin := math32.Cos(lm.angle), math32.Sin(lm.angle)
		specs[i] = lm.spec
		t := graph.Identity()
		t.Position = math.Vec3{X: (radius + landmarkOffset) * cos, Y: 2, Z: (radius + landmarkOffset) * sin}
		placements[i] = t
		waypoints[i] = mover.Waypoint{
			Name:      lm.name,
			Position:  math.Vec3{X: radius * cos, Y: height, Z: radius * sin},
			Threshold: waypointThreshold,
			Landmark:  i,
		}
	}
	reg, err := registry.Build(adapter, specs, geometry.Palette([]uint32{geometry.ColorBase}), placements)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Name:       Site,
		Registry:   reg,
		Background: geometry.Color(geometry.ColorBackground),
		Eye:        math.Vec3{Y: 15, Z: 30},
		Selectable: true,
		Raise:      math.Vec3{Y: 2},
		Waypoints:  waypoints,
		Model:      opts.Model,
		ModelIndex: -1,
	}

	floor := graph.Identity()
	floor.Rotation = math.Vec3{X: -math32.Pi / 2}
	if err := s.addExtra(adapter, geometry.Pack[geometry.FloorIndex], geometry.Color(geometry.ColorBase), floor); err != nil {
		reg.Detach()
		return nil, err
	}

	if opts.Model == nil {
		return s, nil
	}
	walker := modelTransform(opts.Model, math.Vec3{X: radius, Y: height})
	if err := s.addExtra(adapter, opts.Model.Spec(), geometry.Color(geometry.CubeColors[4]), walker); err != nil {
		s.Dispose(adapter)
		return nil, err
	}
	s.Walker = s.Extras[len(s.Extras)-1]
	return s, nil
}

func buildModel(adapter graph.Adapter, opts Options) (*Scene, error) {
	s := &Scene{
		Name:       Model,
		Background: geometry.Color(geometry.ColorBackground),
		Eye:        math.Vec3{X: -6, Y: 2, Z: 8},
		Model:      opts.Model,
		ModelIndex: -1,
	}
	var (
		specs      []geometry.Spec
		placements []graph.Transform
	)
	if opts.Model != nil {
		s.ModelBase = modelTransform(opts.Model, math.Vec3{Y: -2})
		s.ModelBase.Scale = s.ModelBase.Scale.Scale(2)
		s.ModelIndex = 0
		specs = []geometry.Spec{opts.Model.Spec()}
		placements = []graph.Transform{s.ModelBase}
	}
	reg, err := registry.Build(adapter, specs, geometry.Palette([]uint32{geometry.ColorBase}), placements)
	if err != nil {
		return nil, err
	}
	s.Registry = reg
	return s, nil
}

func modelTransform(m *assets.Model, pos math.Vec3) graph.Transform {
	t := graph.Identity()
	t.Position = pos
	t.Scale = math.Vec3{X: m.Scale, Y: m.Scale, Z: m.Scale}
	return t
}

func (s *Scene) addExtra(adapter graph.Adapter, spec geometry.Spec, color colorful.Color, t graph.Transform) error {
	h, err := adapter.CreateMesh(spec, color)
	if err != nil {
		return fmt.Errorf("creating %s: %w", spec.Kind, err)
	}
	adapter.SetTransform(h, t)
	adapter.Add(h)
	s.Extras = append(s.Extras, h)
	return nil
}
