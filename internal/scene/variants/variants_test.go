package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/scene/geometry"
	"github.com/Faultbox/sceneview/internal/scene/graph"
	"github.com/Faultbox/sceneview/pkg/math"
)

func TestBuildGrid(t *testing.T) {
	mem := graph.NewMemory(800, 600)
	s, err := Build(mem, Grid, Options{})
	require.NoError(t, err)

	assert.Equal(t, 9, s.Registry.Len())
	assert.Equal(t, 9, mem.Len())
	assert.True(t, s.Selectable)
	assert.True(t, s.Spin)
	require.NotNil(t, s.Focus)
	assert.Equal(t, math.Vec3{Z: 10}, *s.Focus)
	assert.Equal(t, math.Vec3{Z: 15}, s.Eye)
	assert.Equal(t, geometry.Pack[5], s.Registry.MustGet(4).Spec)
}

func TestBuildClusterDeterministic(t *testing.T) {
	a, err := Build(graph.NewMemory(1, 1), Cluster, Options{Seed: 42})
	require.NoError(t, err)
	b, err := Build(graph.NewMemory(1, 1), Cluster, Options{Seed: 42})
	require.NoError(t, err)

	require.Equal(t, len(geometry.CubeColors), a.Registry.Len())
	for i := 0; i < a.Registry.Len(); i++ {
		oa, ob := a.Registry.MustGet(i), b.Registry.MustGet(i)
		assert.Equal(t, oa.Base, ob.Base)
		assert.Equal(t, geometry.Color(geometry.CubeColors[i]), oa.BaseColor)

		s := oa.Base.Scale.X
		assert.GreaterOrEqual(t, s, float32(geometry.GroupScaleMin))
		assert.LessOrEqual(t, s, float32(geometry.GroupScaleMax))
	}
	assert.True(t, a.Draggable)
}

func TestBuildClusterCount(t *testing.T) {
	s, err := Build(graph.NewMemory(1, 1), Cluster, Options{ClusterCount: 20, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 20, s.Registry.Len())
	// palette wraps
	assert.Equal(t, s.Registry.MustGet(0).BaseColor, s.Registry.MustGet(len(geometry.CubeColors)).BaseColor)
}

func TestBuildSite(t *testing.T) {
	mem := graph.NewMemory(1, 1)
	s, err := Build(mem, Site, Options{PathRadius: 20, PathHeight: 0.1, Model: assets.DefaultModel()})
	require.NoError(t, err)

	assert.Equal(t, len(siteLandmarks), s.Registry.Len())
	require.Len(t, s.Waypoints, len(siteLandmarks))
	assert.NotZero(t, s.Walker)
	assert.Len(t, s.Extras, 2)
	assert.Equal(t, mem.Len(), s.Registry.Len()+2)
	assert.Equal(t, geometry.Color(geometry.ColorBackground), mem.Background())

	for i, wp := range s.Waypoints {
		assert.Equal(t, i, wp.Landmark)
		assert.InDelta(t, 20, wp.Position.XZ().Length(), 1e-4)
		// landmark is reachable from its waypoint but not inside it
		lm := s.Registry.MustGet(i).Base.Position
		assert.Greater(t, lm.Distance(wp.Position), wp.Threshold)
	}

	floor, ok := mem.Node(s.Extras[0])
	require.True(t, ok)
	assert.Equal(t, geometry.KindPlane, floor.Spec.Kind)
}

func TestBuildModel(t *testing.T) {
	s, err := Build(graph.NewMemory(1, 1), Model, Options{Model: assets.DefaultModel()})
	require.NoError(t, err)
	assert.Equal(t, 0, s.ModelIndex)
	assert.Equal(t, math.Vec3{Y: -2}, s.ModelBase.Position)
	assert.Equal(t, math.Vec3{X: 2, Y: 2, Z: 2}, s.ModelBase.Scale)
	assert.False(t, s.Selectable)
	require.NotNil(t, s.Model)
}

func TestBuildWithoutModel(t *testing.T) {
	mem := graph.NewMemory(1, 1)
	site, err := Build(mem, Site, Options{})
	require.NoError(t, err)
	assert.Zero(t, site.Walker)
	assert.Len(t, site.Extras, 1)

	m, err := Build(graph.NewMemory(1, 1), Model, Options{})
	require.NoError(t, err)
	assert.Equal(t, -1, m.ModelIndex)
	assert.Zero(t, m.Registry.Len())
}

func TestBuildUnknown(t *testing.T) {
	_, err := Build(graph.NewMemory(1, 1), "moon", Options{})
	assert.Error(t, err)
}

func TestDispose(t *testing.T) {
	mem := graph.NewMemory(1, 1)
	s, err := Build(mem, Site, Options{Model: assets.DefaultModel()})
	require.NoError(t, err)
	s.Dispose(mem)
	assert.Zero(t, mem.Len())
}
