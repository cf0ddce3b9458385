package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/pkg/math"
)

func TestBounds(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		max  math.Vec3
	}{
		{"box", Spec{Kind: KindBox, A: 3, B: 3, C: 3}, math.Vec3{X: 1.5, Y: 1.5, Z: 1.5}},
		{"plane", Spec{Kind: KindPlane, A: 250, B: 50}, math.Vec3{X: 125, Y: 25, Z: 0}},
		{"capsule", Spec{Kind: KindCapsule, A: 1, B: 1}, math.Vec3{X: 1, Y: 1.5, Z: 1}},
		{"cone", Spec{Kind: KindCone, A: 1, B: 2}, math.Vec3{X: 1, Y: 1, Z: 1}},
		{"torus", Spec{Kind: KindTorus, A: 1, B: 0.5}, math.Vec3{X: 1.5, Y: 1.5, Z: 0.5}},
		{"sphere", Spec{Kind: KindSphere, A: 1.4}, math.Vec3{X: 1.4, Y: 1.4, Z: 1.4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.spec.Bounds()
			assert.Equal(t, tt.max, b.Max)
			assert.Equal(t, tt.max.Scale(-1), b.Min)
			assert.Equal(t, math.Vec3{}, b.Center())
		})
	}
}

func TestPrimitives(t *testing.T) {
	specs, err := Primitives(9)
	require.NoError(t, err)
	require.Len(t, specs, 9)
	assert.Equal(t, KindBox, specs[0].Kind)
	assert.Equal(t, KindTetrahedron, specs[8].Kind)

	// The returned slice must not alias the table.
	specs[0].A = 99
	assert.Equal(t, float32(3), Pack[1].A)

	_, err = Primitives(10)
	assert.Error(t, err)
}

func TestColor(t *testing.T) {
	c := Color(0xca37de)
	assert.Equal(t, "#ca37de", c.Hex())
	assert.Len(t, Palette(CubeColors), 9)
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette([]string{"#ed7272", "#FC6E3A"})
	require.NoError(t, err)
	assert.Equal(t, "#ed7272", p[0].Hex())
	assert.Equal(t, "#fc6e3a", p[1].Hex())

	_, err = ParsePalette([]string{"red"})
	assert.Error(t, err)
}

func TestWireframe(t *testing.T) {
	box := Spec{Kind: KindBox, A: 2, B: 2, C: 2}
	assert.Equal(t, BoxWireframeVertexCount, box.WireframeVertexCount())

	circle := Spec{Kind: KindCircle, A: 1, Segments: 12}
	v := circle.Wireframe()
	assert.Len(t, v, 12*2*3)
	for i := 0; i < len(v); i += 3 {
		p := math.Vec3{X: v[i], Y: v[i+1], Z: v[i+2]}
		assert.InDelta(t, 1, p.Length(), 1e-5)
	}

	sphere := Spec{Kind: KindSphere, A: 1, Segments: 8}
	assert.Equal(t, 3*8*2, sphere.WireframeVertexCount())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "torus_knot", KindTorusKnot.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
