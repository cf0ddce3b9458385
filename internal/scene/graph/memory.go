package graph

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/scene/geometry"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Node is a mesh as seen by the Memory adapter.
type Node struct {
	Spec      geometry.Spec
	Color     colorful.Color
	Transform Transform
	Attached  bool
}

// Memory is an Adapter that keeps the scene in memory and counts frames. It
// backs dry runs and tests.
type Memory struct {
	nodes      map[Handle]*Node
	next       Handle
	background colorful.Color

	Width, Height int
	Frames        int
	// LastView is the camera view-projection of the latest Render call.
	LastView math.Mat4
}

// NewMemory creates an empty in-memory scene.
func NewMemory(width, height int) *Memory {
	return &Memory{
		nodes:  make(map[Handle]*Node),
		Width:  width,
		Height: height,
	}
}

// CreateMesh registers a node.
func (m *Memory) CreateMesh(spec geometry.Spec, color colorful.Color) (Handle, error) {
	if len(spec.Wireframe()) == 0 {
		return 0, fmt.Errorf("empty geometry for %s", spec.Kind)
	}
	m.next++
	m.nodes[m.next] = &Node{Spec: spec, Color: color, Transform: Identity()}
	return m.next, nil
}

// Add attaches a node to the drawn scene.
func (m *Memory) Add(h Handle) {
	if n, ok := m.nodes[h]; ok {
		n.Attached = true
	}
}

// Remove detaches and forgets a node.
func (m *Memory) Remove(h Handle) {
	delete(m.nodes, h)
}

// SetTransform stores the node transform.
func (m *Memory) SetTransform(h Handle, t Transform) {
	if n, ok := m.nodes[h]; ok {
		n.Transform = t
	}
}

// SetColor stores the node color.
func (m *Memory) SetColor(h Handle, c colorful.Color) {
	if n, ok := m.nodes[h]; ok {
		n.Color = c
	}
}

// SetBackground stores the clear color.
func (m *Memory) SetBackground(c colorful.Color) {
	m.background = c
}

// Background returns the clear color.
func (m *Memory) Background() colorful.Color {
	return m.background
}

// Resize records the viewport.
func (m *Memory) Resize(width, height int) {
	m.Width = width
	m.Height = height
}

// Render counts a frame.
func (m *Memory) Render(cam *camera.Camera) error {
	m.Frames++
	if cam != nil {
		m.LastView = cam.ViewProjection()
	}
	return nil
}

// Node returns the node for a handle.
func (m *Memory) Node(h Handle) (*Node, bool) {
	n, ok := m.nodes[h]
	return n, ok
}

// Len returns the number of live nodes.
func (m *Memory) Len() int {
	return len(m.nodes)
}
