package math

/**
 * @brief Creates a rotation matrix around a unit length axis from the
 * cosine c and sine s of the angle (right-hand rule).
 */
func NewMat4AxisRotation(axis Vec3, c, s float32) Mat4 {
	x, y, z := axis.X, axis.Y, axis.Z
	t := 1 - c
	out := NewMat4Identity()
	out.Data[0] = t*x*x + c
	out.Data[1] = t*x*y + s*z
	out.Data[2] = t*x*z - s*y
	out.Data[4] = t*x*y - s*z
	out.Data[5] = t*y*y + c
	out.Data[6] = t*y*z + s*x
	out.Data[8] = t*x*z + s*y
	out.Data[9] = t*y*z - s*x
	out.Data[10] = t*z*z + c
	return out
}

/** @brief Creates a translation matrix. */
func NewMat4Translation(position Vec3) Mat4 {
	out := NewMat4Identity()
	out.Data[12] = position.X
	out.Data[13] = position.Y
	out.Data[14] = position.Z
	return out
}

/** @brief Creates a scale matrix. */
func NewMat4Scale(scale Vec3) Mat4 {
	out := NewMat4Identity()
	out.Data[0] = scale.X
	out.Data[5] = scale.Y
	out.Data[10] = scale.Z
	return out
}

/**
 * @brief Returns mt * T(v). The translation happens in the space mt maps
 * from, so for a model matrix v is given in object coordinates.
 */
func (mt Mat4) Translate(v Vec3) Mat4 {
	return mt.Mul(NewMat4Translation(v))
}

/** @brief Returns mt * S(v). */
func (mt Mat4) Scale(v Vec3) Mat4 {
	return mt.Mul(NewMat4Scale(v))
}

/** @brief Returns mt * S(s, s, s). */
func (mt Mat4) ScaleUniform(s float32) Mat4 {
	return mt.Scale(Vec3{s, s, s})
}

/** @brief Returns the translation column of mt. */
func (mt Mat4) Position() Vec3 {
	return Vec3{mt.Data[12], mt.Data[13], mt.Data[14]}
}

/**
 * @brief Returns the transpose of the inverse of the upper 3x3 of model,
 * the matrix that carries surface normals. A singular model (scale 0)
 * has no normal matrix and the error is returned.
 */
func NormalMatrix(model Mat4) (Mat3, error) {
	inv, err := model.Upper3x3().Inverse()
	if err != nil {
		return Mat3{}, err
	}
	return inv.Transposed(), nil
}
