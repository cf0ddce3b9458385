package geometry

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Pack is the fixed primitive table. Entry 0 is the floor plane; entries 1-9
// are the interactive primitives placed on the grid.
var Pack = []Spec{
	{Kind: KindPlane, A: 250, B: 50},
	{Kind: KindBox, A: 3, B: 3, C: 3},
	{Kind: KindCapsule, A: 1, B: 1, Segments: 8},
	{Kind: KindCircle, A: 1.3, Segments: 15},
	{Kind: KindCone, A: 1, B: 2, Segments: 10},
	{Kind: KindOctahedron, A: 1.5},
	{Kind: KindTorus, A: 1, B: 0.5, Segments: 20},
	{Kind: KindTorusKnot, A: 0.8, B: 0.3, Segments: 50},
	{Kind: KindSphere, A: 1.4, Segments: 10},
	{Kind: KindTetrahedron, A: 1.5},
}

// FloorIndex is the Pack entry used as ground plane.
const FloorIndex = 0

// Primitives returns Pack entries [1, 1+n).
func Primitives(n int) ([]Spec, error) {
	if n < 0 || n > len(Pack)-1 {
		return nil, fmt.Errorf("requested %d primitives, pack has %d", n, len(Pack)-1)
	}
	out := make([]Spec, n)
	copy(out, Pack[1:1+n])
	return out, nil
}

// Hex values of the cube palette.
var CubeColors = []uint32{
	0xed7272, 0xfc6e3a, 0xf2e746,
	0x89e62c, 0x17e6d4, 0x325be3,
	0xb24dd6, 0xe31092, 0xbf001a,
}

const (
	// ColorBase is the idle wireframe color.
	ColorBase uint32 = 0xfefefe
	// ColorActive is the highlight accent.
	ColorActive uint32 = 0xca37de
	// ColorBackground is the clear color of the site/model scenes.
	ColorBackground uint32 = 0x252525
)

// Scale limits for cube clusters.
const (
	GroupScaleMin = 0.6
	GroupScaleMax = 1.1
)

// Color converts a 0xRRGGBB value.
func Color(hex uint32) colorful.Color {
	return colorful.Color{
		R: float64(hex>>16&0xff) / 255,
		G: float64(hex>>8&0xff) / 255,
		B: float64(hex&0xff) / 255,
	}
}

// Palette converts a list of 0xRRGGBB values.
func Palette(hexes []uint32) []colorful.Color {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		out[i] = Color(h)
	}
	return out
}

// ParsePalette parses "#rrggbb" strings as written in config files.
func ParsePalette(values []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, 0, len(values))
	for _, v := range values {
		c, err := colorful.Hex(v)
		if err != nil {
			return nil, fmt.Errorf("parsing color %q: %w", v, err)
		}
		out = append(out, c)
	}
	return out, nil
}
