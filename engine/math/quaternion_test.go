package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func toMglQuat(q Quaternion) mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

func TestQuatFromAxisAngleMatchesOracle(t *testing.T) {
	axis := NewVec3(1, -2, 0.5).Normalized()
	q := NewQuatFromAxisAngle(axis, 1.1)
	expected := mgl32.QuatRotate(1.1, toMgl(axis))
	assert.InDelta(t, expected.W, q.W, 1e-6)
	assert.InDeltaSlice(t, expected.V[:], []float32{q.X, q.Y, q.Z}, 1e-6)
	assert.InDelta(t, 1, q.Normal(), 1e-6)
}

func TestQuatMulIsHamiltonProduct(t *testing.T) {
	a := NewQuatFromAxisAngle(NewVec3(1, 0, 0), 0.4)
	b := NewQuatFromAxisAngle(NewVec3(0, 1, 0).Normalized(), -1.3)

	ab := a.Mul(b)
	expected := toMglQuat(a).Mul(toMglQuat(b))
	assert.InDelta(t, expected.W, ab.W, 1e-6)
	assert.InDeltaSlice(t, expected.V[:], []float32{ab.X, ab.Y, ab.Z}, 1e-6)

	// not commutative
	assert.False(t, ab.Compare(b.Mul(a), 1e-4))
}

func TestQuatToMat4MatchesOracle(t *testing.T) {
	q := NewQuatFromAxisAngle(NewVec3(0.3, 0.4, -0.2).Normalized(), 2.2)
	assertMat4(t, toMglQuat(q).Mat4(), q.ToMat4())
}

func TestQuatToMatRenormalizes(t *testing.T) {
	q := NewQuatFromAxisAngle(NewVec3(0, 0, 1), 0.7)
	scaled := Quaternion{X: 3 * q.X, Y: 3 * q.Y, Z: 3 * q.Z, W: 3 * q.W}
	assertMat3(t, q.ToMat3().Data, scaled.ToMat3())
}

func TestQuatZeroIsIdentity(t *testing.T) {
	var zero Quaternion
	assert.Equal(t, NewQuatIdentity(), zero.Normalize())
	assertMat4(t, NewMat4Identity().Data, zero.ToMat4())
}

// A vector perpendicular to the axis turns by the angle, right-handed.
func TestQuatRotatesPerpendicularVector(t *testing.T) {
	cases := []struct {
		axis  Vec3
		angle float32
		v     Vec3
	}{
		{NewVec3(0, 0, 1), K_HALF_PI, NewVec3(1, 0, 0)},
		{NewVec3(1, 0, 0), 0.3, NewVec3(0, 2, 0)},
		{NewVec3(0, 1, 0), -2.0, NewVec3(0, 0, 1)},
		{NewVec3(1, 1, 1).Normalized(), 1.0, NewVec3(1, -1, 0)},
	}
	for _, c := range cases {
		r := NewQuatFromAxisAngle(c.axis, c.angle).ToMat3()
		out := r.MulVec3(c.v)

		assert.InDelta(t, c.v.Length(), out.Length(), 1e-5)
		assert.InDelta(t, 0, out.Dot(c.axis), 1e-5)
		cos := c.v.Dot(out) / c.v.LengthSquared()
		sin := c.axis.Dot(c.v.Cross(out)) / c.v.LengthSquared()
		assert.InDelta(t, cosf(c.angle), cos, 1e-5)
		assert.InDelta(t, sinf(c.angle), sin, 1e-5)
	}
}

func TestQuatAxisAngleRoundTrip(t *testing.T) {
	axis := NewVec3(2, -1, 2).Normalized()
	q := NewQuatFromAxisAngle(axis, 0.9)
	gotAxis, angle := q.ToAxisAngle()
	assertVec3(t, axis, gotAxis)
	assert.InDelta(t, 0.9, angle, 1e-5)

	assert.True(t, q.Compare(QuaternionExp(q.Log()), 1e-5))

	identityAxis, identityAngle := NewQuatIdentity().ToAxisAngle()
	assert.Equal(t, NewVec3(1, 0, 0), identityAxis)
	assert.InDelta(t, 0, identityAngle, 1e-6)
}

func TestQuatInverseRotationRoundTrip(t *testing.T) {
	start := NewQuatFromAxisAngle(NewVec3(0, 1, 0), 0.5)
	axis := NewVec3(1, 0, 1).Normalized()
	f := float32(0.3)
	q := NewQuatFromAxisAngle(axis, K_PI_2*f).Mul(start)
	q = NewQuatFromAxisAngle(axis, -K_PI_2*f).Mul(q)
	assert.True(t, start.Compare(q, 1e-5))
	assert.True(t, start.Compare(Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}, 1e-5))
}
