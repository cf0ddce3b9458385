// Package registry owns the interactive objects of a scene: their stable
// indices, base transforms and current visual state.
package registry

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/sceneview/internal/scene/geometry"
	"github.com/Faultbox/sceneview/internal/scene/graph"
	"github.com/Faultbox/sceneview/pkg/math"
)

// ErrOutOfRange is returned for lookups of an index that was never assigned.
var ErrOutOfRange = errors.New("object index out of range")

// VisualState is the highlight state of an object.
type VisualState int

const (
	Idle VisualState = iota
	Active
)

func (s VisualState) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Object is one interactive mesh. Index and Base never change after Build.
type Object struct {
	Index     int
	Spec      geometry.Spec
	Mesh      graph.Handle
	Base      graph.Transform
	BaseColor colorful.Color

	Current graph.Transform
	Color   colorful.Color
	State   VisualState
}

// Registry is the ordered set of objects in a scene.
type Registry struct {
	adapter graph.Adapter
	objects []*Object
}

// Build creates one object per spec, in order, coloring spec i with
// palette[i % len(palette)] and placing it at placements[i]. Meshes are
// created on and attached to the adapter.
func Build(adapter graph.Adapter, specs []geometry.Spec, palette []colorful.Color, placements []graph.Transform) (*Registry, error) {
	if len(palette) == 0 {
		return nil, errors.New("empty palette")
	}
	if len(placements) != len(specs) {
		return nil, fmt.Errorf("%d specs but %d placements", len(specs), len(placements))
	}

	r := &Registry{
		adapter: adapter,
		objects: make([]*Object, 0, len(specs)),
	}
	for i, spec := range specs {
		color := palette[i%len(palette)]
		h, err := adapter.CreateMesh(spec, color)
		if err != nil {
			r.Detach()
			return nil, fmt.Errorf("creating mesh %d (%s): %w", i, spec.Kind, err)
		}
		obj := &Object{
			Index:     i,
			Spec:      spec,
			Mesh:      h,
			Base:      placements[i],
			BaseColor: color,
			Current:   placements[i],
			Color:     color,
		}
		adapter.SetTransform(h, obj.Current)
		adapter.Add(h)
		r.objects = append(r.objects, obj)
	}
	return r, nil
}

// Len returns the number of objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Get returns the object with the given index.
func (r *Registry) Get(index int) (*Object, error) {
	if index < 0 || index >= len(r.objects) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, index, len(r.objects))
	}
	return r.objects[index], nil
}

// MustGet is Get for indices the caller already validated. It panics on
// misuse.
func (r *Registry) MustGet(index int) *Object {
	obj, err := r.Get(index)
	if err != nil {
		panic(err)
	}
	return obj
}

// All returns the objects in index order. The slice must not be modified.
func (r *Registry) All() []*Object {
	return r.objects
}

// SetTransform updates an object's current transform and pushes it to the
// adapter.
func (r *Registry) SetTransform(index int, t graph.Transform) error {
	obj, err := r.Get(index)
	if err != nil {
		return err
	}
	obj.Current = t
	r.adapter.SetTransform(obj.Mesh, t)
	return nil
}

// SetColor updates an object's current color and pushes it to the adapter.
func (r *Registry) SetColor(index int, c colorful.Color) error {
	obj, err := r.Get(index)
	if err != nil {
		return err
	}
	obj.Color = c
	r.adapter.SetColor(obj.Mesh, c)
	return nil
}

// Bounds returns the world-space bounds of an object at its current
// transform.
func (r *Registry) Bounds(index int) (geometry.AABB, error) {
	obj, err := r.Get(index)
	if err != nil {
		return geometry.AABB{}, err
	}
	return WorldBounds(obj.Spec.Bounds(), obj.Current), nil
}

// Detach removes every mesh from the adapter. The registry must not be used
// afterwards.
func (r *Registry) Detach() {
	for _, obj := range r.objects {
		r.adapter.Remove(obj.Mesh)
	}
	r.objects = nil
}

// WorldBounds transforms a local box by t and returns the enclosing
// axis-aligned box.
func WorldBounds(local geometry.AABB, t graph.Transform) geometry.AABB {
	m := t.Matrix()
	lo, hi := local.Min, local.Max
	var out geometry.AABB
	for i := 0; i < 8; i++ {
		corner := math.Vec3{X: lo.X, Y: lo.Y, Z: lo.Z}
		if i&1 != 0 {
			corner.X = hi.X
		}
		if i&2 != 0 {
			corner.Y = hi.Y
		}
		if i&4 != 0 {
			corner.Z = hi.Z
		}
		p := m.TransformVec3(corner)
		if i == 0 {
			out.Min, out.Max = p, p
			continue
		}
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}
