package components

import "github.com/spaghettifunk/shady/engine/math"

// Light is a directional light. Direction is expressed in world space and
// is not required to be unit length; shaders normalize it.
type Light struct {
	Direction math.Vec3
	Color     math.Vec3
}

func NewLight() *Light {
	return &Light{
		Direction: math.NewVec3(1, 0, 0),
		Color:     math.NewVec3One(),
	}
}

// Rotate applies the rotation part of r to the light direction.
func (l *Light) Rotate(r math.Mat4) {
	l.Direction = l.Direction.TransformDirection(r)
}
