// Package snapshot provides a software wireframe renderer that draws the
// scene into an image and writes PNG snapshots. It backs headless runs.
package snapshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/scene/geometry"
	"github.com/Faultbox/sceneview/internal/scene/graph"
	"github.com/Faultbox/sceneview/pkg/math"
)

// nearW is the clip-space w below which a vertex counts as behind the eye.
const nearW = 1e-3

type mesh struct {
	lines     []float32
	color     colorful.Color
	transform graph.Transform
	attached  bool
}

// Canvas is a graph.Adapter that rasterizes wireframes with gg.
type Canvas struct {
	log        *zap.Logger
	dc         *gg.Context
	meshes     map[graph.Handle]*mesh
	next       graph.Handle
	background colorful.Color

	// LineWidth is the stroke width in pixels.
	LineWidth float64
	frames    int
}

// New creates a canvas of the given size.
func New(width, height int, log *zap.Logger) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("snapshot: invalid size %dx%d", width, height)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Canvas{
		log:       log,
		dc:        gg.NewContext(width, height),
		meshes:    make(map[graph.Handle]*mesh),
		LineWidth: 1.5,
	}, nil
}

// CreateMesh stores the primitive's wireframe.
func (c *Canvas) CreateMesh(spec geometry.Spec, color colorful.Color) (graph.Handle, error) {
	lines := spec.Wireframe()
	if len(lines) == 0 {
		return 0, fmt.Errorf("snapshot: empty geometry for %s", spec.Kind)
	}
	c.next++
	c.meshes[c.next] = &mesh{lines: lines, color: color, transform: graph.Identity()}
	return c.next, nil
}

// Add marks a mesh as drawn.
func (c *Canvas) Add(h graph.Handle) {
	if m, ok := c.meshes[h]; ok {
		m.attached = true
	}
}

// Remove forgets a mesh.
func (c *Canvas) Remove(h graph.Handle) {
	delete(c.meshes, h)
}

func (c *Canvas) SetTransform(h graph.Handle, t graph.Transform) {
	if m, ok := c.meshes[h]; ok {
		m.transform = t
	}
}

func (c *Canvas) SetColor(h graph.Handle, col colorful.Color) {
	if m, ok := c.meshes[h]; ok {
		m.color = col
	}
}

func (c *Canvas) SetBackground(col colorful.Color) {
	c.background = col
}

// Resize replaces the backing image. Its contents are lost until the next
// Render.
func (c *Canvas) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == c.dc.Width() && height == c.dc.Height()) {
		return
	}
	_ = c.dc.Close()
	c.dc = gg.NewContext(width, height)
	c.log.Debug("canvas resized", zap.Int("width", width), zap.Int("height", height))
}

// Render clears to the background and strokes every attached mesh in
// creation order.
func (c *Canvas) Render(cam *camera.Camera) error {
	bg := c.background
	c.dc.ClearWithColor(gg.RGB(bg.R, bg.G, bg.B))
	c.frames++
	if cam == nil {
		return nil
	}

	handles := make([]graph.Handle, 0, len(c.meshes))
	for h, m := range c.meshes {
		if m.attached {
			handles = append(handles, h)
		}
	}
	slices.Sort(handles)

	viewProj := cam.ViewProjection()
	w, h := float64(c.dc.Width()), float64(c.dc.Height())
	c.dc.SetLineWidth(c.LineWidth)

	for _, handle := range handles {
		m := c.meshes[handle]
		mvp := viewProj.Mul(m.transform.Matrix())
		drawn := 0
		for i := 0; i+5 < len(m.lines); i += 6 {
			a := mvp.MulVec4(math.Vec4{m.lines[i], m.lines[i+1], m.lines[i+2], 1})
			b := mvp.MulVec4(math.Vec4{m.lines[i+3], m.lines[i+4], m.lines[i+5], 1})
			a, b, ok := clipNear(a, b)
			if !ok {
				continue
			}
			ax, ay := toScreen(a, w, h)
			bx, by := toScreen(b, w, h)
			c.dc.DrawLine(ax, ay, bx, by)
			drawn++
		}
		if drawn == 0 {
			continue
		}
		c.dc.SetRGB(m.color.R, m.color.G, m.color.B)
		if err := c.dc.Stroke(); err != nil {
			return fmt.Errorf("snapshot: stroke mesh %d: %w", handle, err)
		}
	}
	return nil
}

// clipNear trims a clip-space segment to the part in front of the eye.
func clipNear(a, b math.Vec4) (math.Vec4, math.Vec4, bool) {
	switch {
	case a[3] < nearW && b[3] < nearW:
		return a, b, false
	case a[3] < nearW:
		return lerp4(b, a, (b[3]-nearW)/(b[3]-a[3])), b, true
	case b[3] < nearW:
		return a, lerp4(a, b, (a[3]-nearW)/(a[3]-b[3])), true
	}
	return a, b, true
}

func lerp4(a, b math.Vec4, t float32) math.Vec4 {
	return math.Vec4{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		a[3] + (b[3]-a[3])*t,
	}
}

// toScreen maps clip space to pixels with the origin at the top left.
func toScreen(v math.Vec4, width, height float64) (float64, float64) {
	x := float64(v[0] / v[3])
	y := float64(v[1] / v[3])
	return (x + 1) * 0.5 * width, (1 - y) * 0.5 * height
}

// Frames returns the number of frames rendered.
func (c *Canvas) Frames() int {
	return c.frames
}

// Image returns the latest frame.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// Save writes the latest frame as a PNG, creating parent directories.
func (c *Canvas) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	c.log.Info("snapshot saved", zap.String("path", path), zap.Int("frames", c.frames))
	return nil
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
