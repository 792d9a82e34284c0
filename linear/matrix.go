// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
// m may alias either operand.
func (m *M4) Mul(l, r *M4) {
	var p M4
	for i := range p {
		for j := range p {
			for k := range p {
				p[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = p
}

// Translate sets m to contain a translation matrix.
func (m *M4) Translate(x, y, z float32) {
	m.I()
	m[3] = V4{x, y, z, 1}
}

// Scale sets m to contain a scale matrix.
func (m *M4) Scale(x, y, z float32) {
	*m = M4{{x}, {1: y}, {2: z}, {3: 1}}
}

// RotateX sets m to contain a rotation of rad radians
// about the x axis.
func (m *M4) RotateX(rad float32) {
	s, c := math32.Sincos(rad)
	*m = M4{{1}, {0, c, s}, {0, -s, c}, {3: 1}}
}

// RotateY sets m to contain a rotation of rad radians
// about the y axis.
func (m *M4) RotateY(rad float32) {
	s, c := math32.Sincos(rad)
	*m = M4{{c, 0, -s}, {1: 1}, {s, 0, c}, {3: 1}}
}

// RotateZ sets m to contain a rotation of rad radians
// about the z axis.
func (m *M4) RotateZ(rad float32) {
	s, c := math32.Sincos(rad)
	*m = M4{{c, s}, {-s, c}, {2: 1}, {3: 1}}
}

// Perspective sets m to contain a right-handed perspective
// projection that maps depth to [-1, 1].
// yfov is in radians.
func (m *M4) Perspective(yfov, aspect, znear, zfar float32) {
	f := 1 / math32.Tan(yfov/2)
	*m = M4{
		{f / aspect},
		{1: f},
		{2: (zfar + znear) / (znear - zfar), 3: -1},
		{2: 2 * zfar * znear / (znear - zfar)},
	}
}

// LookAt sets m to contain a right-handed view transform
// looking from eye towards center.
func (m *M4) LookAt(eye, center, up *V3) {
	var f, s, u V3
	f.Sub(center, eye)
	f.Norm(&f)
	s.Cross(&f, up)
	s.Norm(&s)
	u.Cross(&s, &f)
	*m = M4{
		{s[0], u[0], -f[0], 0},
		{s[1], u[1], -f[1], 0},
		{s[2], u[2], -f[2], 0},
		{-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1},
	}
}
