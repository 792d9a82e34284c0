// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package scene

import (
	"github.com/juzzbott/lightframe-engine/linear"
)

// Transform is the position, rotation and scale of an
// object in world space.
// Rotation angles are in degrees.
type Transform struct {
	Position linear.V3
	Rotation linear.V3
	Scale    linear.V3
}

// Identity returns a Transform that does not change
// the object it applies to.
func Identity() Transform {
	return Transform{Scale: linear.V3{1, 1, 1}}
}

// Model returns the model matrix of t.
// Scale is applied first, then rotation about the Z, Y
// and X axes (in this order, as intrinsic rotations),
// then translation.
func (t *Transform) Model() (m linear.M4) {
	var r, x linear.M4
	m.Translate(t.Position[0], t.Position[1], t.Position[2])
	r.RotateZ(linear.Rad(t.Rotation[2]))
	m.Mul(&m, &r)
	r.RotateY(linear.Rad(t.Rotation[1]))
	m.Mul(&m, &r)
	r.RotateX(linear.Rad(t.Rotation[0]))
	m.Mul(&m, &r)
	x.Scale(t.Scale[0], t.Scale[1], t.Scale[2])
	m.Mul(&m, &x)
	return
}
