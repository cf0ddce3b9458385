// Package tween drives time-bounded interpolations of transforms and colors.
// Progress curves come from gween; values are blended per channel.
package tween

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// easings maps the curve names used in config files to gween functions.
// The powerN names follow the usual animation-library convention where
// power1 is quadratic and power4 quintic.
var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"power1.out": ease.OutQuad,
	"power2.out": ease.OutCubic,
	"power3.out": ease.OutQuart,
	"power4.out": ease.OutQuint,
	"power1.in":  ease.InQuad,
	"power2.in":  ease.InCubic,
	"power3.in":  ease.InQuart,
	"sine.out":   ease.OutSine,
	"expo.out":   ease.OutExpo,
	"circ.out":   ease.OutCirc,
	"back.out":   ease.OutBack,
	"bounce.out": ease.OutBounce,
	"inout":      ease.InOutCubic,
}

// DefaultEase is the curve used when none is configured.
const DefaultEase = "power3.out"

// Ease looks up an easing curve by name.
func Ease(name string) (ease.TweenFunc, error) {
	if name == "" {
		name = DefaultEase
	}
	fn, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	return fn, nil
}
