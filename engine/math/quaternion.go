package math

import "github.com/chewxy/math32"

// ------------------------------------------
// Quaternion
// ------------------------------------------

/** @brief Creates an identity quaternion (no rotation). */
func NewQuatIdentity() Quaternion {
	return Quaternion{X: 0, Y: 0, Z: 0, W: 1.0}
}

/**
 * @brief Creates a quaternion rotating by angle radians around axis.
 * The axis is expected to be unit length.
 */
func NewQuatFromAxisAngle(axis Vec3, angle float32) Quaternion {
	half := 0.5 * angle
	s := math32.Sin(half)
	return Quaternion{
		X: s * axis.X,
		Y: s * axis.Y,
		Z: s * axis.Z,
		W: math32.Cos(half),
	}
}

/** @brief Returns the length of q treated as a 4-vector. */
func (q Quaternion) Normal() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

/**
 * @brief Returns a unit length copy of q. A zero quaternion carries no
 * orientation and is mapped to the identity.
 */
func (q Quaternion) Normalize() Quaternion {
	n := q.Normal()
	if n < K_NORMALIZE_EPSILON || !IsFinite(n) {
		return NewQuatIdentity()
	}
	return Quaternion{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

/** @brief Returns the conjugate of q. */
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

/**
 * @brief Hamilton product q * other. Used as an orientation update the
 * right operand is applied first.
 */
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
	}
}

/** @brief Returns the dot product of q and other. */
func (q Quaternion) Dot(other Quaternion) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

/**
 * @brief Reports whether q and other describe the same rotation within
 * tolerance. q and -q are treated as equal.
 */
func (q Quaternion) Compare(other Quaternion, tolerance float32) bool {
	a := q.Normalize()
	b := other.Normalize()
	return math32.Abs(math32.Abs(a.Dot(b))-1) <= tolerance
}

/** @brief Returns the rotation matrix for the normalized q. */
func (q Quaternion) ToMat3() Mat3 {
	n := q.Normalize()
	w, x, y, z := n.W, n.X, n.Y, n.Z
	// column-major: columns are listed in order
	return Mat3{Data: [9]float32{
		w*w + x*x - y*y - z*z, 2 * (x*y + w*z), 2 * (x*z - w*y),
		2 * (x*y - w*z), w*w - x*x + y*y - z*z, 2 * (y*z + w*x),
		2 * (x*z + w*y), 2 * (y*z - w*x), w*w - x*x - y*y + z*z,
	}}
}

/** @brief Returns the 4x4 rotation matrix for the normalized q. */
func (q Quaternion) ToMat4() Mat4 {
	return q.ToMat3().ToMat4()
}

/**
 * @brief Returns the rotation axis and angle (radians) of q. The identity
 * has no axis of its own and reports (1, 0, 0).
 */
func (q Quaternion) ToAxisAngle() (Vec3, float32) {
	n := q.Normalize()
	v := Vec3{n.X, n.Y, n.Z}
	length := v.Length()
	half := math32.Atan2(length, n.W)
	if length < K_NORMALIZE_EPSILON {
		return Vec3{1, 0, 0}, 2 * half
	}
	return v.MulScalar(1 / length), 2 * half
}

/** @brief Logarithm of a unit quaternion: axis scaled by half the angle. */
func (q Quaternion) Log() Vec3 {
	axis, angle := q.ToAxisAngle()
	return axis.MulScalar(0.5 * angle)
}

/** @brief Inverse of Log: turns a half-angle-scaled axis back into a quaternion. */
func QuaternionExp(v Vec3) Quaternion {
	half := v.Length()
	axis := Vec3{1, 0, 0}
	if half >= K_NORMALIZE_EPSILON {
		axis = v.MulScalar(1 / half)
	}
	return NewQuatFromAxisAngle(axis, 2*half)
}
