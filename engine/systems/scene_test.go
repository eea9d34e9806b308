package systems

import (
	"testing"

	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneSelect(t *testing.T) {
	sm := newTestManager(t)
	ss := sm.Scenes
	s := sm.Settings
	assert.Equal(t, 1, ss.Current())

	require.NoError(t, ss.Select(3))
	assert.Equal(t, 3, ss.Current())
	assert.Equal(t, 1, s.GeometryOffset)
	assert.Equal(t, metadata.PROGRAM_TEXTURE, s.Program)
	assert.Equal(t, FilteringNearest, s.FilteringMode)
	g, _ := sm.Geometries.Selected()
	assert.Equal(t, "square", g.Name)

	require.NoError(t, ss.Select(2))
	assert.Equal(t, 0, s.GeometryOffset)
	assert.Equal(t, metadata.PROGRAM_SIMPLE, s.Program)
	assert.True(t, s.PerVertexTexturing)
	assert.False(t, s.SeamFix)

	require.NoError(t, ss.Select(1))
	assert.Equal(t, metadata.PROGRAM_PHONG, s.Program)
	assert.True(t, s.Gouraud)

	require.NoError(t, ss.Select(4))
	assert.Equal(t, BumpDisabled, s.BumpMapping)
	assert.Equal(t, metadata.PROGRAM_TEXTURE, s.Program)
}

func TestSceneSelectUnknown(t *testing.T) {
	sm := newTestManager(t)
	require.NoError(t, sm.Scenes.Select(2))

	for _, n := range []int{0, 5, 9, -1} {
		assert.ErrorIs(t, sm.Scenes.Select(n), core.ErrUnknownScene)
	}
	assert.Equal(t, 2, sm.Scenes.Current())
}

func TestApplyPresetOne(t *testing.T) {
	sm := newTestManager(t)
	require.NoError(t, sm.Scenes.ApplyPreset(1))

	cam := sm.Cameras.DefaultCamera
	assert.True(t, cam.Ortho)
	assert.Equal(t, math.NewVec3(1, 0.5, -1), cam.From)

	sphere, _ := sm.Geometries.Get(0)
	square, _ := sm.Geometries.Get(1)
	assertVec3(t, math.NewVec3Zero(), sphere.ModelMatrix.Position())
	assertVec3(t, math.NewVec3(0, 0.3125, 0), square.ModelMatrix.Position())
	assert.InDelta(t, 0.125, square.ModelMatrix.Data[0], tol)
}

func TestApplyPresetTwo(t *testing.T) {
	sm := newTestManager(t)
	sm.Cameras.DefaultCamera.Ortho = true
	require.NoError(t, sm.Scenes.ApplyPreset(2))

	assert.False(t, sm.Cameras.DefaultCamera.Ortho)
	square, _ := sm.Geometries.Get(1)
	assertVec3(t, math.NewVec3(0, 0, 0.625), square.ModelMatrix.Position())
}

func TestApplyPresetThree(t *testing.T) {
	sm := newTestManager(t)
	require.NoError(t, sm.Scenes.ApplyPreset(3))

	red := math.NewVec3(1, 0, 0)
	sphere, _ := sm.Geometries.Get(0)
	square, _ := sm.Geometries.Get(1)
	assert.Equal(t, red, sphere.ObjColor)
	assert.Equal(t, red, square.ObjColor)
	assert.InDelta(t, 0.0625, square.ModelMatrix.Data[5], tol)
	assert.InDelta(t, 0.025, square.ModelMatrix.Data[10], tol)
	assertVec3(t, math.NewVec3(0, -1, -1), sm.Cameras.DefaultCamera.From)
}

func TestApplyPresetUnknown(t *testing.T) {
	sm := newTestManager(t)
	assert.ErrorIs(t, sm.Scenes.ApplyPreset(0), core.ErrUnknownScene)
	assert.ErrorIs(t, sm.Scenes.ApplyPreset(4), core.ErrUnknownScene)
}
