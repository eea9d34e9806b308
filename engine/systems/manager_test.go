package systems

import (
	"testing"

	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramePacketGeometries(t *testing.T) {
	sm := newTestManager(t)

	packet, err := sm.FramePacket()
	require.NoError(t, err)
	require.Len(t, packet.Geometries, 1)
	sphere, _ := sm.Geometries.Get(0)
	assert.Equal(t, sphere.ID, packet.Geometries[0].GeometryID)
	assert.Equal(t, int32(0), packet.Geometries[0].Index)
	assert.Equal(t, sm.Cameras.DefaultCamera.Proj, packet.Projection)
	assert.Equal(t, sm.Settings.BgColor, packet.Background)

	sm.Settings.GeometryOffset = 1
	packet, err = sm.FramePacket()
	require.NoError(t, err)
	require.Len(t, packet.Geometries, 1)
	square, _ := sm.Geometries.Get(1)
	assert.Equal(t, square.ID, packet.Geometries[0].GeometryID)
	assert.Equal(t, int32(1), packet.Geometries[0].Index)
}

func TestFramePacketSkipsBrokenGeometry(t *testing.T) {
	sm := newTestManager(t)
	sphere, _ := sm.Geometries.Get(0)
	sphere.ModelMatrix.Data[15] = 0

	packet, err := sm.FramePacket()
	require.NoError(t, err)
	assert.Empty(t, packet.Geometries)
	assert.Equal(t, 1, sm.Errors.Len())
}

func TestHandleKeyCommands(t *testing.T) {
	sm := newTestManager(t)

	res, err := sm.HandleKey(core.KEY_Q, false)
	require.NoError(t, err)
	assert.True(t, res.Quit)

	res, err = sm.HandleKey(core.KEY_D, false)
	require.NoError(t, err)
	assert.True(t, res.Screenshot)

	_, err = sm.HandleKey(core.KEY_M, false)
	require.NoError(t, err)
	assert.Equal(t, ModeModel, sm.Interaction.Mode)
	_, err = sm.HandleKey(core.KEY_L, false)
	require.NoError(t, err)
	assert.Equal(t, ModeLight, sm.Interaction.Mode)

	_, err = sm.HandleKey(core.KEY_P, false)
	require.NoError(t, err)
	assert.True(t, sm.Cameras.DefaultCamera.Ortho)

	_, err = sm.HandleKey(core.KEY_U, false)
	require.NoError(t, err)
	assert.True(t, sm.Cameras.DefaultCamera.Fixed)
}

func TestHandleKeyArrowsOrbit(t *testing.T) {
	sm := newTestManager(t)
	from := sm.Cameras.DefaultCamera.From

	_, err := sm.HandleKey(core.KEY_UP, false)
	require.NoError(t, err)
	assert.NotEqual(t, from, sm.Cameras.DefaultCamera.From)
	assert.InDelta(t, 1, sm.Cameras.DefaultCamera.From.Length(), tol)

	_, err = sm.HandleKey(core.KEY_DOWN, false)
	require.NoError(t, err)
	assertVec3(t, from, sm.Cameras.DefaultCamera.From)
}

func TestHandleKeyDigits(t *testing.T) {
	sm := newTestManager(t)

	_, err := sm.HandleKey(core.KEY_3, false)
	require.NoError(t, err)
	assert.Equal(t, 3, sm.Scenes.Current())

	_, err = sm.HandleKey(core.KEY_9, false)
	assert.ErrorIs(t, err, core.ErrUnknownScene)
	assert.Equal(t, 3, sm.Scenes.Current())

	_, err = sm.HandleKey(core.KEY_2, true)
	require.NoError(t, err)
	square, _ := sm.Geometries.Get(1)
	assertVec3(t, math.NewVec3(0, 0, 0.625), square.ModelMatrix.Position())
	assert.Equal(t, 3, sm.Scenes.Current())
}

func TestSystemManagerShutdown(t *testing.T) {
	sm := newTestManager(t)
	require.NoError(t, sm.Shutdown())
	assert.Equal(t, 0, sm.Geometries.Count())
}
