package systems

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraSystemInvalidConfig(t *testing.T) {
	config := DefaultCameraSystemConfig()
	config.MaxCameraCount = 1
	_, err := NewCameraSystem(config)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	config = DefaultCameraSystemConfig()
	config.At = config.From
	_, err = NewCameraSystem(config)
	assert.ErrorIs(t, err, core.ErrDegenerateVector)
}

func TestCameraSystemAcquireRelease(t *testing.T) {
	cs, err := NewCameraSystem(DefaultCameraSystemConfig())
	require.NoError(t, err)

	def, err := cs.Acquire(components.DEFAULT_CAMERA_NAME)
	require.NoError(t, err)
	assert.Same(t, cs.GetDefault(), def)

	extra, err := cs.Acquire("extra")
	require.NoError(t, err)
	again, err := cs.Acquire("extra")
	require.NoError(t, err)
	assert.Same(t, extra, again)

	_, err = cs.Acquire("fourth")
	require.NoError(t, err)
	_, err = cs.Acquire("fifth")
	assert.Error(t, err)

	cs.Release(components.DEFAULT_CAMERA_NAME)
	def, err = cs.Acquire(components.DEFAULT_CAMERA_NAME)
	require.NoError(t, err)
	assert.Same(t, cs.DefaultCamera, def)

	cs.Release("extra")
	_, err = cs.Acquire("fifth")
	assert.NoError(t, err)
}

func TestCameraSystemRotateViewCarriesLight(t *testing.T) {
	cs, err := NewCameraSystem(DefaultCameraSystemConfig())
	require.NoError(t, err)

	cs.RotateView(1, math32.Pi/2)
	assertVec3(t, math.NewVec3(-1, 0, 0), cs.DefaultCamera.From)
	assertVec3(t, math.NewVec3(0, 0, -1), cs.Light.Direction)
	assertVec3(t, math.NewVec3(-1, 0, 0), cs.Spotlight.From)
}

func TestCameraSystemRotateSpotlightLeavesCamera(t *testing.T) {
	cs, err := NewCameraSystem(DefaultCameraSystemConfig())
	require.NoError(t, err)
	from := cs.DefaultCamera.From

	cs.RotateSpotlight(1, 0.4)
	assert.Equal(t, from, cs.DefaultCamera.From)
	assert.NotEqual(t, from, cs.Spotlight.From)
	assert.InDelta(t, 1, cs.Light.Direction.Length(), tol)
}

func TestCameraSystemResize(t *testing.T) {
	cs, err := NewCameraSystem(DefaultCameraSystemConfig())
	require.NoError(t, err)

	require.NoError(t, cs.Resize(400, 200))
	w, h := cs.WindowSize()
	assert.Equal(t, 400, w)
	assert.Equal(t, 200, h)
	assert.InDelta(t, 2, cs.DefaultCamera.Aspect, tol)

	require.NoError(t, cs.Resize(0, 0))
	w, h = cs.WindowSize()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}

func TestCameraSystemToggles(t *testing.T) {
	cs, err := NewCameraSystem(DefaultCameraSystemConfig())
	require.NoError(t, err)

	require.NoError(t, cs.ToggleOrtho())
	assert.True(t, cs.DefaultCamera.Ortho)
	assert.InDelta(t, 1, cs.DefaultCamera.Proj.Data[15], tol)
	require.NoError(t, cs.ToggleOrtho())
	assert.False(t, cs.DefaultCamera.Ortho)

	cs.ToggleFixedUp()
	assert.True(t, cs.DefaultCamera.Fixed)
	cs.ToggleFixedUp()
	assert.False(t, cs.DefaultCamera.Fixed)
}

func TestCameraSystemTranslateView(t *testing.T) {
	cs, err := NewCameraSystem(DefaultCameraSystemConfig())
	require.NoError(t, err)

	require.NoError(t, cs.TranslateViewN(2))
	assertVec3(t, math.NewVec3(0, 0, -3), cs.DefaultCamera.From)
	assertVec3(t, math.NewVec3(0, 0, -2), cs.DefaultCamera.At)

	cs.TranslateViewUV(1, 0)
	// U points along -x for a camera looking down +z
	assertVec3(t, math.NewVec3(-1, 0, -2), cs.DefaultCamera.At)

	cs.DefaultCamera.At = cs.DefaultCamera.From
	assert.ErrorIs(t, cs.TranslateViewN(1), core.ErrDegenerateVector)
}

func TestCameraSystemRotateLightAround(t *testing.T) {
	cs, err := NewCameraSystem(DefaultCameraSystemConfig())
	require.NoError(t, err)

	// N is +z, so a quarter turn takes x to y
	cs.RotateLightAround(2, math32.Pi/2)
	assertVec3(t, math.NewVec3(0, 1, 0), cs.Light.Direction)
}
