package registry

import (
	"github.com/Faultbox/sceneview/internal/scene/graph"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Grid returns unit-scale placements on the z plane, x-major: every y for
// the first x, then every y for the next x.
func Grid(xs, ys []float32, z float32) []graph.Transform {
	out := make([]graph.Transform, 0, len(xs)*len(ys))
	for _, x := range xs {
		for _, y := range ys {
			t := graph.Identity()
			t.Position = math.Vec3{X: x, Y: y, Z: z}
			out = append(out, t)
		}
	}
	return out
}

// Steps returns from, from+step, ... up to and including to.
func Steps(from, to, step float32) []float32 {
	if step <= 0 {
		return nil
	}
	var out []float32
	for v := from; v <= to; v += step {
		out = append(out, v)
	}
	return out
}
