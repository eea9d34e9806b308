package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMat4(t *testing.T, expected [16]float32, actual Mat4) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual.Data[:], float64(StandardTol))
}

func assertMat3(t *testing.T, expected [9]float32, actual Mat3) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual.Data[:], float64(StandardTol))
}

func sampleMat4() Mat4 {
	return NewMat4Translation(NewVec3(1, -2, 3)).
		Mul(NewMat4AxisRotation(NewVec3(0, 1, 0), 0.6, 0.8)).
		Mul(NewMat4Scale(NewVec3(2, 0.5, 1.5)))
}

func TestMat4Mul(t *testing.T) {
	a := sampleMat4()
	b := NewMat4AxisRotation(NewVec3(1, 0, 0), 0, 1).Mul(NewMat4Translation(NewVec3(4, 5, 6)))

	expected := mgl32.Mat4(a.Data).Mul4(mgl32.Mat4(b.Data))
	assertMat4(t, expected, a.Mul(b))

	assert.Equal(t, a, a.Mul(NewMat4Identity()))
	assert.Equal(t, a, NewMat4Identity().Mul(a))
}

func TestMat4ColumnMajor(t *testing.T) {
	m := NewMat4Translation(NewVec3(7, 8, 9))
	assert.Equal(t, float32(7), m.At(0, 3))
	assert.Equal(t, float32(8), m.Data[13])
	assert.Equal(t, NewVec4(7, 8, 9, 1), m.Column(3))

	tr := m.Transposed()
	assertMat4(t, mgl32.Mat4(m.Data).Transpose(), tr)
	assert.Equal(t, float32(7), tr.At(3, 0))
}

func TestMat4Rows(t *testing.T) {
	var m Mat4
	m.SetRow(1, NewVec3(1, 2, 3), 4)
	assert.Equal(t, NewVec3(1, 2, 3), m.Row3(1))
	assert.Equal(t, float32(4), m.At(1, 3))
	assert.Equal(t, NewVec3Zero(), m.Row3(0))
}

func TestMat4AxisRotationMatchesOracle(t *testing.T) {
	axes := []Vec3{
		NewVec3(1, 0, 0),
		NewVec3(0, 1, 0),
		NewVec3(0, 0, 1),
		NewVec3(1, 2, -3).Normalized(),
	}
	angles := []float32{0.125, -0.7, K_HALF_PI, 2.5}
	for _, axis := range axes {
		for _, angle := range angles {
			r := NewMat4AxisRotation(axis, cosf(angle), sinf(angle))
			assertMat4(t, mgl32.HomogRotate3D(angle, toMgl(axis)), r)
		}
	}
}

func TestMat3Inverse(t *testing.T) {
	m := sampleMat4().Upper3x3()
	inv, err := m.Inverse()
	require.NoError(t, err)

	assertMat3(t, mgl32.Mat3(m.Data).Inv(), inv)
	assertMat3(t, NewMat3Identity().Data, m.Mul(inv))
	assert.InDelta(t, mgl32.Mat3(m.Data).Det(), m.Determinant(), 1e-5)
}

func TestMat3InverseSingular(t *testing.T) {
	m := NewMat4Scale(NewVec3(1, 0, 1)).Upper3x3()
	out, err := m.Inverse()
	assert.ErrorIs(t, err, core.ErrSingularMatrix)
	assert.Equal(t, m, out)
}

func TestMat3MulVec3(t *testing.T) {
	m := sampleMat4().Upper3x3()
	v := NewVec3(0.3, -1, 2)
	expected := mgl32.Mat3(m.Data).Mul3x1(toMgl(v))
	assertVec3(t, NewVec3(expected[0], expected[1], expected[2]), m.MulVec3(v))
}

func TestMat4NormalizeHomogeneous(t *testing.T) {
	m := NewMat4Identity()
	m.Data[12] = 2
	m.Data[15] = 2
	n, err := m.NormalizeHomogeneous()
	require.NoError(t, err)
	assert.Equal(t, float32(1), n.Data[15])
	assert.Equal(t, float32(1), n.Data[12])
	assert.Equal(t, float32(0.5), n.Data[0])

	m.Data[15] = 0
	out, err := m.NormalizeHomogeneous()
	assert.ErrorIs(t, err, core.ErrSingularMatrix)
	assert.Equal(t, m, out)
}

func TestInverseUVN(t *testing.T) {
	r := NewMat4AxisRotation(NewVec3(0, 0, 1), 0.6, 0.8).Translate(NewVec3(1, 2, 3))
	inv, err := r.InverseUVN()
	require.NoError(t, err)
	// a rotation's inverse is its transpose, without the translation
	assertMat3(t, r.Upper3x3().Transposed().Data, inv.Upper3x3())
	assert.Equal(t, NewVec3Zero(), inv.Position())
}

func TestNormalMatrix(t *testing.T) {
	rot := NewMat4AxisRotation(NewVec3(0, 1, 0), 0.6, 0.8)

	// uniform scale: same directions as the rotation part
	n, err := NormalMatrix(rot.ScaleUniform(2))
	require.NoError(t, err)
	v := NewVec3(1, 2, 3)
	assertVec3(t, v.TransformDirection(rot).Normalized(), n.MulVec3(v).Normalized())

	// non-uniform scale: inverse transpose differs from the model part
	model := rot.Scale(NewVec3(4, 1, 1))
	n, err = NormalMatrix(model)
	require.NoError(t, err)
	assert.False(t, n.MulVec3(v).Normalized().Compare(v.TransformDirection(model).Normalized(), 1e-3))

	// a surface tangent stays perpendicular to the transformed normal
	normal := NewVec3(1, 1, 0).Normalized()
	tangent := NewVec3(1, -1, 0)
	assert.InDelta(t, 0, n.MulVec3(normal).Dot(tangent.TransformDirection(model)), 1e-5)

	_, err = NormalMatrix(NewMat4Scale(NewVec3(0, 1, 1)))
	assert.ErrorIs(t, err, core.ErrSingularMatrix)
}

func TestScaleZeroCollapsesAxis(t *testing.T) {
	m := NewMat4Identity().Scale(NewVec3(1, 0, 1))
	p := NewVec3(3, 5, -2).Transform(m)
	assert.Equal(t, NewVec3(3, 0, -2), p)
}
