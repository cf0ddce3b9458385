package picking

import (
	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/scene/geometry"
)

// Targets is the set of pickable objects, addressed by index.
type Targets interface {
	Len() int
	Bounds(index int) (geometry.AABB, error)
}

// Hit is a resolved intersection.
type Hit struct {
	Index    int
	Distance float32
}

// Engine resolves pointer positions against a fixed set of targets. Cost is
// linear in the number of targets, so it is meant for discrete events such
// as clicks rather than every frame.
type Engine struct {
	targets Targets
}

// NewEngine creates a picking engine over targets.
func NewEngine(targets Targets) *Engine {
	return &Engine{targets: targets}
}

// Pick casts a ray from cam through the pixel (px, py) of a viewport and
// returns the index of the closest target hit.
func (e *Engine) Pick(px, py, viewportW, viewportH float32, cam *camera.Camera) (int, bool) {
	if viewportW <= 0 || viewportH <= 0 || cam == nil {
		return -1, false
	}
	ray := e.Ray(px, py, viewportW, viewportH, cam)
	hit, ok := e.PickRay(ray)
	return hit.Index, ok
}

// Ray returns the world ray under a pixel.
func (e *Engine) Ray(px, py, viewportW, viewportH float32, cam *camera.Camera) Ray {
	return NDCToRay(NormalizePointer(px, py, viewportW, viewportH), cam.InverseViewProjection())
}

// PickRay returns the target with the smallest ray parameter. Ties keep the
// lower index.
func (e *Engine) PickRay(ray Ray) (Hit, bool) {
	best := Hit{Index: -1}
	found := false
	for i := 0; i < e.targets.Len(); i++ {
		box, err := e.targets.Bounds(i)
		if err != nil {
			continue
		}
		t, ok := ray.IntersectAABB(box)
		if !ok {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Index: i, Distance: t}
			found = true
		}
	}
	return best, found
}
