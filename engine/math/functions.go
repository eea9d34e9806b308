package math

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/shady/engine/core"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float32 = 2.0 * K_PI
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float32 = 0.5 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
	/** @brief Below this length a vector is treated as zero-length. */
	K_NORMALIZE_EPSILON float32 = 1e-6
)

// ------------------------------------------
// Vector 2
// ------------------------------------------

/**
 * @brief Creates and returns a new 2-element vector using the supplied values.
 */
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

func (v Vec2) Compare(other Vec2, tolerance float32) bool {
	return math32.Abs(v.X-other.X) <= tolerance && math32.Abs(v.Y-other.Y) <= tolerance
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @param z The z value.
 * @return A new 3-element vector.
 */
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

/**
 * @brief Creates a 3-element vector from the first three
 * elements of a fixed size array.
 */
func NewVec3FromArray(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

/** @brief Returns the components as a fixed size array. */
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

/** @brief Returns a new vec4 using v as the x, y and z components and w for w. */
func (v Vec3) ToVec4(w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

/** @brief Creates and returns a 3-component vector with all components set to 0.0f. */
func NewVec3Zero() Vec3 {
	return Vec3{}
}

/** @brief Creates and returns a 3-component vector with all components set to 1.0f. */
func NewVec3One() Vec3 {
	return Vec3{1.0, 1.0, 1.0}
}

/** @brief Creates and returns a 3-component vector pointing up (0, 1, 0). */
func NewVec3Up() Vec3 {
	return Vec3{0.0, 1.0, 0.0}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

func (v Vec3) MulScalar(scalar float32) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

/** @brief Returns the squared length of the provided vector. */
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

/** @brief Returns the length of the provided vector. */
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

/**
 * @brief Returns a normalized copy of the supplied vector.
 * A vector shorter than K_NORMALIZE_EPSILON cannot be normalized
 * and yields core.ErrDegenerateVector.
 */
func (v Vec3) Normalize() (Vec3, error) {
	length := v.Length()
	if length < K_NORMALIZE_EPSILON || !IsFinite(length) {
		return v, fmt.Errorf("normalize %v: %w", v, core.ErrDegenerateVector)
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}, nil
}

/**
 * @brief Returns a normalized copy of the supplied vector, or the
 * zero vector when it has no usable length.
 */
func (v Vec3) Normalized() Vec3 {
	n, err := v.Normalize()
	if err != nil {
		return Vec3{}
	}
	return n
}

/**
 * @brief Returns the dot product between the provided vectors. Typically used
 * to calculate the difference in direction.
 */
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

/**
 * @brief Calculates and returns the cross product of the supplied vectors.
 * The cross product is a new vector which is orthoganal to both provided vectors.
 */
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec3) Compare(other Vec3, tolerance float32) bool {
	return math32.Abs(v.X-other.X) <= tolerance &&
		math32.Abs(v.Y-other.Y) <= tolerance &&
		math32.Abs(v.Z-other.Z) <= tolerance
}

/** @brief Returns the distance between v and other. */
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

/** @brief Reports whether no component is NaN or infinite. */
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X, v.Y, v.Z)
}

/**
 * @brief Transform v by m. NOTE: It is assumed by this function that the
 * vector v is a point, not a direction, and is calculated as if a w component
 * with a value of 1.0f is there.
 */
func (v Vec3) Transform(m Mat4) Vec3 {
	d := m.Data
	return Vec3{
		X: d[0]*v.X + d[4]*v.Y + d[8]*v.Z + d[12],
		Y: d[1]*v.X + d[5]*v.Y + d[9]*v.Z + d[13],
		Z: d[2]*v.X + d[6]*v.Y + d[10]*v.Z + d[14],
	}
}

/**
 * @brief Transforms v as a direction by the upper 3x3 of m; the
 * translation column is ignored.
 */
func (v Vec3) TransformDirection(m Mat4) Vec3 {
	d := m.Data
	return Vec3{
		X: d[0]*v.X + d[4]*v.Y + d[8]*v.Z,
		Y: d[1]*v.X + d[5]*v.Y + d[9]*v.Z,
		Z: d[2]*v.X + d[6]*v.Y + d[10]*v.Z,
	}
}

/**
 * @brief Rotates v by angle radians around the unit length axis
 * (right-hand rule).
 */
func (v Vec3) Rotate(axis Vec3, angle float32) Vec3 {
	return v.TransformDirection(NewMat4AxisRotation(axis, math32.Cos(angle), math32.Sin(angle)))
}

// ------------------------------------------
// Vector 4
// ------------------------------------------

/**
 * @brief Creates and returns a new 4-element vector using the supplied values.
 */
func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

/** @brief Returns a new vec3 containing the x, y and z components of v. */
func (v Vec4) ToVec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

func (v Vec4) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W
}

func (v Vec4) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

func (v Vec4) Compare(other Vec4, tolerance float32) bool {
	return math32.Abs(v.X-other.X) <= tolerance &&
		math32.Abs(v.Y-other.Y) <= tolerance &&
		math32.Abs(v.Z-other.Z) <= tolerance &&
		math32.Abs(v.W-other.W) <= tolerance
}

/**
 * @brief Converts provided degrees to radians.
 */
func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

/**
 * @brief Converts provided radians to degrees.
 */
func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}
