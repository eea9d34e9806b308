package math

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/shady/engine/core"
)

// ------------------------------------------
// Matrix 3
// ------------------------------------------

/**
 * @brief Creates and returns an identity 3x3 matrix.
 */
func NewMat3Identity() Mat3 {
	return Mat3{Data: [9]float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

/** @brief Returns the element at the given row and column. */
func (mt Mat3) At(row, col int) float32 {
	return mt.Data[3*col+row]
}

/**
 * @brief Returns the result of multiplying mt and other (mt * other),
 * both in column-major order.
 */
func (mt Mat3) Mul(other Mat3) Mat3 {
	var out Mat3
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += mt.Data[3*k+r] * other.Data[3*c+k]
			}
			out.Data[3*c+r] = sum
		}
	}
	return out
}

/** @brief Returns mt * v. */
func (mt Mat3) MulVec3(v Vec3) Vec3 {
	d := mt.Data
	return Vec3{
		X: d[0]*v.X + d[3]*v.Y + d[6]*v.Z,
		Y: d[1]*v.X + d[4]*v.Y + d[7]*v.Z,
		Z: d[2]*v.X + d[5]*v.Y + d[8]*v.Z,
	}
}

/** @brief Returns the transpose of mt. */
func (mt Mat3) Transposed() Mat3 {
	d := mt.Data
	return Mat3{Data: [9]float32{
		d[0], d[3], d[6],
		d[1], d[4], d[7],
		d[2], d[5], d[8],
	}}
}

/** @brief Returns the determinant of mt. */
func (mt Mat3) Determinant() float32 {
	d := mt.Data
	return d[0]*(d[4]*d[8]-d[7]*d[5]) -
		d[3]*(d[1]*d[8]-d[7]*d[2]) +
		d[6]*(d[1]*d[5]-d[4]*d[2])
}

/**
 * @brief Returns the inverse of mt. When the determinant is zero
 * (within K_FLOAT_EPSILON) the matrix has no inverse and
 * core.ErrSingularMatrix is returned instead.
 */
func (mt Mat3) Inverse() (Mat3, error) {
	det := mt.Determinant()
	if math32.Abs(det) < K_FLOAT_EPSILON || !IsFinite(det) {
		return mt, fmt.Errorf("inverse (det=%g): %w", det, core.ErrSingularMatrix)
	}
	d := mt.Data
	inv := 1.0 / det
	return Mat3{Data: [9]float32{
		(d[4]*d[8] - d[7]*d[5]) * inv,
		-(d[1]*d[8] - d[7]*d[2]) * inv,
		(d[1]*d[5] - d[4]*d[2]) * inv,
		-(d[3]*d[8] - d[6]*d[5]) * inv,
		(d[0]*d[8] - d[6]*d[2]) * inv,
		-(d[0]*d[5] - d[3]*d[2]) * inv,
		(d[3]*d[7] - d[6]*d[4]) * inv,
		-(d[0]*d[7] - d[6]*d[1]) * inv,
		(d[0]*d[4] - d[3]*d[1]) * inv,
	}}, nil
}

/** @brief Embeds mt in the upper-left corner of an identity 4x4 matrix. */
func (mt Mat3) ToMat4() Mat4 {
	d := mt.Data
	return Mat4{Data: [16]float32{
		d[0], d[1], d[2], 0,
		d[3], d[4], d[5], 0,
		d[6], d[7], d[8], 0,
		0, 0, 0, 1,
	}}
}

// ------------------------------------------
// Matrix 4
// ------------------------------------------

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 */
func NewMat4Identity() Mat4 {
	return Mat4{Data: [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

/** @brief Returns the element at the given row and column. */
func (mt Mat4) At(row, col int) float32 {
	return mt.Data[4*col+row]
}

/**
 * @brief Returns the result of multiplying mt and other (mt * other),
 * both in column-major order. Applied to a column vector, other acts first.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += mt.Data[4*k+r] * other.Data[4*c+k]
			}
			out.Data[4*c+r] = sum
		}
	}
	return out
}

/** @brief Returns mt * v. */
func (mt Mat4) MulVec4(v Vec4) Vec4 {
	d := mt.Data
	return Vec4{
		X: d[0]*v.X + d[4]*v.Y + d[8]*v.Z + d[12]*v.W,
		Y: d[1]*v.X + d[5]*v.Y + d[9]*v.Z + d[13]*v.W,
		Z: d[2]*v.X + d[6]*v.Y + d[10]*v.Z + d[14]*v.W,
		W: d[3]*v.X + d[7]*v.Y + d[11]*v.Z + d[15]*v.W,
	}
}

/**
 * @brief Returns a transposed copy of the provided matrix (rows->colums)
 */
func (mt Mat4) Transposed() Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out.Data[4*r+c] = mt.Data[4*c+r]
		}
	}
	return out
}

/**
 * @brief Extracts the upper-left 3x3 matrix (rotation and scale part).
 */
func (mt Mat4) Upper3x3() Mat3 {
	d := mt.Data
	return Mat3{Data: [9]float32{
		d[0], d[1], d[2],
		d[4], d[5], d[6],
		d[8], d[9], d[10],
	}}
}

/**
 * @brief Returns row i (0..2) of the upper 3x3 as a vector. For a view
 * matrix rows 0, 1 and 2 are the U, V and N basis vectors.
 */
func (mt Mat4) Row3(i int) Vec3 {
	return Vec3{mt.Data[i], mt.Data[4+i], mt.Data[8+i]}
}

/** @brief Sets row i of mt to (v, w). */
func (mt *Mat4) SetRow(i int, v Vec3, w float32) {
	mt.Data[i] = v.X
	mt.Data[4+i] = v.Y
	mt.Data[8+i] = v.Z
	mt.Data[12+i] = w
}

/** @brief Returns column i (0..3) of mt. */
func (mt Mat4) Column(i int) Vec4 {
	return Vec4{mt.Data[4*i], mt.Data[4*i+1], mt.Data[4*i+2], mt.Data[4*i+3]}
}

/** @brief Reports whether every element is finite. */
func (mt Mat4) IsFinite() bool {
	return IsFinite(mt.Data[:]...)
}

/** @brief Compares every element of mt and other against tolerance. */
func (mt Mat4) Compare(other Mat4, tolerance float32) bool {
	for i := range mt.Data {
		if math32.Abs(mt.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}

/**
 * @brief Divides every element by the homogeneous element m[15] when it
 * is not already 1. A zero m[15] cannot be normalized and yields
 * core.ErrSingularMatrix with mt left untouched.
 */
func (mt Mat4) NormalizeHomogeneous() (Mat4, error) {
	w := mt.Data[15]
	if w == 1 {
		return mt, nil
	}
	if w == 0 {
		return mt, fmt.Errorf("homogeneous normalize: %w", core.ErrSingularMatrix)
	}
	out := mt
	for i := range out.Data {
		out.Data[i] /= w
	}
	return out, nil
}

/**
 * @brief Returns the inverse of the rotational 3x3 part of a view
 * matrix, embedded in a 4x4 matrix without translation.
 */
func (mt Mat4) InverseUVN() (Mat4, error) {
	inv, err := mt.Upper3x3().Inverse()
	if err != nil {
		return mt, err
	}
	return inv.ToMat4(), nil
}
