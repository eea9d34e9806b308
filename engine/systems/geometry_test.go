package systems

import (
	"testing"

	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeometrySystem(t *testing.T) *GeometrySystem {
	t.Helper()
	cs, err := NewCameraSystem(DefaultCameraSystemConfig())
	require.NoError(t, err)
	gs, err := NewGeometrySystem(DefaultGeometrySystemConfig(), cs)
	require.NoError(t, err)
	require.NoError(t, gs.CreateDefaultGeometries())
	return gs
}

func TestNewGeometrySystemInvalidConfig(t *testing.T) {
	cs, err := NewCameraSystem(DefaultCameraSystemConfig())
	require.NoError(t, err)

	config := DefaultGeometrySystemConfig()
	config.MaxGeometryCount = 0
	_, err = NewGeometrySystem(config, cs)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	_, err = NewGeometrySystem(DefaultGeometrySystemConfig(), nil)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestGeometrySystemDefaults(t *testing.T) {
	gs := newTestGeometrySystem(t)
	require.Equal(t, 2, gs.Count())

	sphere, ok := gs.Get(0)
	require.True(t, ok)
	assert.Equal(t, "sphere", sphere.Name)
	assert.Equal(t, float32(0.3), sphere.Material.Ka)

	square, ok := gs.Get(1)
	require.True(t, ok)
	ext := square.Extents()
	assertVec3(t, math.NewVec3(-0.25, -0.25, 0), ext.Min)
	assertVec3(t, math.NewVec3(0.25, 0.25, 0), ext.Max)

	_, ok = gs.Get(2)
	assert.False(t, ok)
	_, ok = gs.Get(-1)
	assert.False(t, ok)
}

func TestGeometrySystemRegisterLimit(t *testing.T) {
	cs, err := NewCameraSystem(DefaultCameraSystemConfig())
	require.NoError(t, err)
	config := DefaultGeometrySystemConfig()
	config.MaxGeometryCount = 2
	gs, err := NewGeometrySystem(config, cs)
	require.NoError(t, err)
	require.NoError(t, gs.CreateDefaultGeometries())

	_, err = gs.Register("extra", math.GenerateSquare())
	assert.Error(t, err)
	assert.Equal(t, 2, gs.Count())
}

func TestGeometrySystemSelect(t *testing.T) {
	gs := newTestGeometrySystem(t)
	g, ok := gs.Selected()
	require.True(t, ok)
	assert.Equal(t, "sphere", g.Name)

	gs.Select(1)
	g, _ = gs.Selected()
	assert.Equal(t, "square", g.Name)

	gs.Select(7)
	g, _ = gs.Selected()
	assert.Equal(t, "square", g.Name)
}

func TestGeometrySystemModelTransforms(t *testing.T) {
	gs := newTestGeometrySystem(t)
	sphere, _ := gs.Get(0)
	square, _ := gs.Get(1)

	// from - at points along -z; the model scale of 0.25 applies
	require.NoError(t, gs.TranslateModelN(sphere, 2))
	assertVec3(t, math.NewVec3(0, 0, -0.5), sphere.ModelMatrix.Position())

	gs.TranslateModelUV(square, 1, 0)
	assertVec3(t, math.NewVec3(-0.25, 0, 0), square.ModelMatrix.Position())

	// a quarter turn, negated, around N = +z
	require.NoError(t, gs.RotateModelN(sphere, 0.25))
	x := math.NewVec3(1, 0, 0).TransformDirection(sphere.Quaternion.ToMat4())
	assertVec3(t, math.NewVec3(0, -1, 0), x)
}

func TestGeometrySystemRotateModelRoundTrip(t *testing.T) {
	gs := newTestGeometrySystem(t)
	sphere, _ := gs.Get(0)
	start := sphere.Quaternion

	for axis := 0; axis < 3; axis++ {
		require.NoError(t, gs.RotateModel(sphere, 0.13, axis))
		m, err := sphere.Transform()
		require.NoError(t, err)
		expected, err := math.NormalMatrix(m)
		require.NoError(t, err)
		assert.InDeltaSlice(t, expected.Data[:], sphere.NormalMatrix.Data[:], 1e-4, "axis %d", axis)

		require.NoError(t, gs.RotateModel(sphere, -0.13, axis))
		assert.True(t, start.Compare(sphere.Quaternion, 1e-5), "axis %d", axis)
	}
}

func TestGeometrySystemUpdateAllNormals(t *testing.T) {
	gs := newTestGeometrySystem(t)
	square, _ := gs.Get(1)
	before := square.NormalMatrix

	square.ScaleAxis(0, 0)
	assert.ErrorIs(t, gs.UpdateAllNormals(), core.ErrSingularMatrix)
	assert.Equal(t, before, square.NormalMatrix)
}

func TestGeometrySystemApplyVertexColours(t *testing.T) {
	gs := newTestGeometrySystem(t)
	red := math.NewVec3(1, 0, 0)

	gs.ApplyVertexColours(true, []ColourSampler{constantSampler(red)})
	sphere, _ := gs.Get(0)
	square, _ := gs.Get(1)
	assert.True(t, sphere.ColoursDirty)
	assert.Equal(t, red.ToVec4(1), sphere.Mesh.Vertices[0].Colour)
	assert.Equal(t, math.NewVec4(1, 1, 1, 1), square.Mesh.Vertices[0].Colour)

	gs.ApplyVertexColours(false, []ColourSampler{constantSampler(red)})
	assert.Equal(t, math.NewVec4(1, 1, 1, 1), sphere.Mesh.Vertices[0].Colour)
}
