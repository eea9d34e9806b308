package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief A quaternion, used to represent rotational orientation.
 * W holds the real part, X/Y/Z the imaginary parts.
 */
type Quaternion Vec4

/**
 * @brief a 3x3 matrix stored in column-major order, typically used
 * for normal matrices and the rotational part of a transform.
 */
type Mat3 struct {
	/** @brief The matrix elements */
	Data [9]float32
}

/**
 * @brief a 4x4 matrix stored in column-major order (OpenGL layout),
 * typically used to represent object transformations. Element (row r,
 * column c) lives at Data[4*c+r].
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/**
 * @brief Represents a single vertex in 3D space.
 */
type Vertex3D struct {
	/** @brief The position of the vertex */
	Position Vec3
	/** @brief The normal of the vertex. */
	Normal Vec3
	/** @brief The texture coordinate of the vertex. */
	Texcoord Vec2
	/** @brief The colour of the vertex. */
	Colour Vec4
	/** @brief The tangent of the vertex. */
	Tangent Vec3
}
