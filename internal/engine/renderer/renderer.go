// Package renderer provides the OpenGL wireframe renderer.
package renderer

import (
	"fmt"
	"slices"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/shader"
	"github.com/Faultbox/sceneview/internal/scene/geometry"
	"github.com/Faultbox/sceneview/internal/scene/graph"
)

type mesh struct {
	vao, vbo  uint32
	count     int32
	color     colorful.Color
	transform graph.Transform
	attached  bool
}

// Renderer is a graph.Adapter drawing wireframes with OpenGL.
type Renderer struct {
	log     *zap.Logger
	program *shader.Program
	uMVP    int32
	uColor  int32

	meshes map[graph.Handle]*mesh
	next   graph.Handle

	width, height int
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(width, height int, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.LineWidth(1)

	prog, err := shader.Compile(shader.WireframeVertex, shader.WireframeFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r := &Renderer{
		log:     log,
		program: prog,
		uMVP:    prog.Uniform("uMVP"),
		uColor:  prog.Uniform("uColor"),
		meshes:  make(map[graph.Handle]*mesh),
	}
	r.Resize(width, height)
	return r, nil
}

// CreateMesh uploads the primitive's wireframe as a line list.
func (r *Renderer) CreateMesh(spec geometry.Spec, color colorful.Color) (graph.Handle, error) {
	verts := spec.Wireframe()
	if len(verts) == 0 {
		return 0, fmt.Errorf("empty geometry for %s", spec.Kind)
	}

	m := &mesh{count: int32(len(verts) / 3), color: color, transform: graph.Identity()}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.next++
	r.meshes[r.next] = m
	r.log.Debug("mesh created",
		zap.Uint32("handle", uint32(r.next)),
		zap.Stringer("kind", spec.Kind),
		zap.Int32("vertices", m.count),
	)
	return r.next, nil
}

func (r *Renderer) Add(h graph.Handle) {
	if m, ok := r.meshes[h]; ok {
		m.attached = true
	}
}

// Remove releases the mesh's buffers.
func (r *Renderer) Remove(h graph.Handle) {
	m, ok := r.meshes[h]
	if !ok {
		return
	}
	m.release()
	delete(r.meshes, h)
}

func (r *Renderer) SetTransform(h graph.Handle, t graph.Transform) {
	if m, ok := r.meshes[h]; ok {
		m.transform = t
	}
}

func (r *Renderer) SetColor(h graph.Handle, c colorful.Color) {
	if m, ok := r.meshes[h]; ok {
		m.color = c
	}
}

func (r *Renderer) SetBackground(c colorful.Color) {
	gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), 1)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Render clears the frame and draws attached meshes in creation order.
func (r *Renderer) Render(cam *camera.Camera) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if cam == nil {
		return nil
	}

	handles := make([]graph.Handle, 0, len(r.meshes))
	for h, m := range r.meshes {
		if m.attached {
			handles = append(handles, h)
		}
	}
	slices.Sort(handles)

	viewProj := cam.ViewProjection()
	r.program.Use()
	for _, h := range handles {
		m := r.meshes[h]
		mvp := viewProj.Mul(m.transform.Matrix())
		gl.UniformMatrix4fv(r.uMVP, 1, false, mvp.Ptr())
		gl.Uniform3f(r.uColor, float32(m.color.R), float32(m.color.G), float32(m.color.B))
		gl.BindVertexArray(m.vao)
		gl.DrawArrays(gl.LINES, 0, m.count)
	}
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for h, m := range r.meshes {
		m.release()
		delete(r.meshes, h)
	}
	r.program.Delete()
}

func (m *mesh) release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
}
