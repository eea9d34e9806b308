package systems

import (
	"testing"

	"github.com/spaghettifunk/shady/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func newTestManager(t *testing.T) *SystemManager {
	t.Helper()
	sm, err := NewSystemManager(DefaultSystemManagerConfig())
	require.NoError(t, err)
	return sm
}

func assertVec3(t *testing.T, expected, actual math.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, []float32{expected.X, expected.Y, expected.Z}, []float32{actual.X, actual.Y, actual.Z}, tol)
}

// constantSampler colours every texture coordinate the same.
type constantSampler math.Vec3

func (c constantSampler) SampleRGB(math.Vec2) math.Vec3 { return math.Vec3(c) }
