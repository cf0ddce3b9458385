package controller

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/animation"
	"github.com/Faultbox/sceneview/internal/engine/input"
	"github.com/Faultbox/sceneview/pkg/math"
)

type pointerState struct {
	pressed bool
	x, y    float32
}

// dragState is the plane an object is dragged on and the grab offset from
// the object's origin.
type dragState struct {
	index  int
	planeZ float32
	offset math.Vec3
	moved  bool
}

func (c *Controller) handle(e input.Event) {
	if c.disposed {
		return
	}
	switch e.Type {
	case input.EventResize:
		c.Resize(e.Width, e.Height)
	case input.EventPointerDown:
		c.pointerDown(e)
	case input.EventPointerMove:
		c.pointerMove(e)
	case input.EventPointerUp:
		c.pointerUp()
	case input.EventClick:
		c.click(e.X, e.Y)
	case input.EventDragStart:
		c.beginDrag(e.X, e.Y)
	case input.EventDragEnd:
		c.endDrag()
	case input.EventHoverOff:
		c.pointer.pressed = false
		if _, ok := c.arbiter.Dragging(); ok {
			c.log.Debug("drag cancelled by hover off")
		}
		c.arbiter.HoverOff()
	case input.EventWheel:
		if c.arbiter.OrbitEnabled() {
			c.orbit.HandleZoom(e.DY)
		}
	case input.EventKeyDown, input.EventKeyUp:
		if c.mover != nil && e.Key == c.cfg.Controls.MoveKey {
			c.mover.SetMoving(e.Type == input.EventKeyDown)
		}
	}
}

func (c *Controller) pick(x, y float32) (int, bool) {
	return c.picker.Pick(x, y, float32(c.size.Width), float32(c.size.Height), c.cam)
}

// click selects the object under the pointer. Clicking empty space clears
// the selection. In the model scene a click on the model plays its react
// clip once.
func (c *Controller) click(x, y float32) {
	index, hit := c.pick(x, y)
	c.log.Debug("click", zap.Float32("x", x), zap.Float32("y", y), zap.Int("hit", index))

	if c.scene.ModelIndex >= 0 {
		if hit && index == c.scene.ModelIndex {
			c.react()
		}
		return
	}
	if !c.scene.Selectable {
		return
	}
	if !hit {
		c.sel.Deselect()
		return
	}
	if err := c.sel.Select(index); err != nil {
		c.log.Warn("select", zap.Int("index", index), zap.Error(err))
	}
}

func (c *Controller) react() {
	name := c.scene.Model.ReactClip
	if c.mixer == nil || name == "" {
		return
	}
	action, err := c.mixer.ClipAction(name)
	if err != nil {
		c.log.Warn("react clip unavailable", zap.Error(err))
		return
	}
	c.mixer.StopAll()
	action.Loop = animation.LoopOnce
	action.ClampWhenFinished = true
	action.Reset().Play()
}

func (c *Controller) pointerDown(e input.Event) {
	c.pointer = pointerState{pressed: true, x: e.X, y: e.Y}
	c.beginDrag(e.X, e.Y)
}

func (c *Controller) pointerMove(e input.Event) {
	dx, dy := e.DX, e.DY
	if dx == 0 && dy == 0 {
		dx, dy = e.X-c.pointer.x, e.Y-c.pointer.y
	}
	c.pointer.x, c.pointer.y = e.X, e.Y

	if index, ok := c.arbiter.Dragging(); ok {
		c.dragTo(index, e.X, e.Y)
		return
	}
	if c.pointer.pressed && c.arbiter.OrbitEnabled() {
		c.orbit.HandleDrag(dx, dy)
	}
}

func (c *Controller) pointerUp() {
	c.pointer.pressed = false
	if _, ok := c.arbiter.Dragging(); ok {
		c.endDrag()
	}
}

// beginDrag grabs the object under (x, y), if any. The object moves on the
// plane parallel to the screen through its current position. Scenes without
// dragging ignore it.
func (c *Controller) beginDrag(x, y float32) {
	if !c.scene.Draggable {
		return
	}
	index, hit := c.pick(x, y)
	if !hit {
		return
	}
	obj := c.reg.MustGet(index)
	ray := c.picker.Ray(x, y, float32(c.size.Width), float32(c.size.Height), c.cam)
	grab, ok := ray.IntersectPlaneZ(obj.Current.Position.Z)
	if !ok {
		return
	}

	c.drag = dragState{
		index:  index,
		planeZ: obj.Current.Position.Z,
		offset: obj.Current.Position.Sub(grab),
	}
	c.arbiter.DragStart(index)
}

func (c *Controller) dragTo(index int, x, y float32) {
	ray := c.picker.Ray(x, y, float32(c.size.Width), float32(c.size.Height), c.cam)
	p, ok := ray.IntersectPlaneZ(c.drag.planeZ)
	if !ok {
		return
	}
	if !c.drag.moved {
		// The drag owns the position from here on.
		c.sel.Interrupt(index)
		c.drag.moved = true
	}
	t := c.reg.MustGet(index).Current
	t.Position = p.Add(c.drag.offset)
	if err := c.reg.SetTransform(index, t); err != nil {
		c.log.Warn("drag", zap.Int("index", index), zap.Error(err))
	}
}

func (c *Controller) endDrag() {
	index, ok := c.arbiter.Dragging()
	c.arbiter.DragEnd()
	if ok {
		c.log.Debug("drag ended", zap.Int("index", index),
			zap.Stringer("position", c.reg.MustGet(index).Current.Position))
	}
}
