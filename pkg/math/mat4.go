package math

import "math"

// Mat4 is a 4x4 matrix in column-major order, the layout used for node
// transforms on the wire.
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation matrix around the Y axis.
// angle is in radians.
func RotateY(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p [3]float32) [3]float32 {
	x := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	y := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	z := m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14]
	w := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	if w != 0 && w != 1 {
		return [3]float32{x / w, y / w, z / w}
	}
	return [3]float32{x, y, z}
}

// TransformVec3 transforms a Vec3 point by this matrix.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	p := m.TransformPoint([3]float32{v.X, v.Y, v.Z})
	return Vec3{p[0], p[1], p[2]}
}

// Compose builds the matrix Translate(t) * Rotation(r) * Scale(s).
func Compose(t Vec3, r Quat, s Vec3) Mat4 {
	return Translate(t.X, t.Y, t.Z).Mul(r.ToMat4()).Mul(Scale(s.X, s.Y, s.Z))
}

// Decompose splits an affine matrix into translation, rotation and scale.
// A negative determinant is folded into the X scale.
func (m Mat4) Decompose() (t Vec3, r Quat, s Vec3) {
	t = Vec3{m[12], m[13], m[14]}

	sx := Vec3{m[0], m[1], m[2]}.Length()
	sy := Vec3{m[4], m[5], m[6]}.Length()
	sz := Vec3{m[8], m[9], m[10]}.Length()
	if m.determinant3() < 0 {
		sx = -sx
	}
	s = Vec3{sx, sy, sz}

	rm := m
	if sx != 0 {
		rm[0], rm[1], rm[2] = m[0]/sx, m[1]/sx, m[2]/sx
	}
	if sy != 0 {
		rm[4], rm[5], rm[6] = m[4]/sy, m[5]/sy, m[6]/sy
	}
	if sz != 0 {
		rm[8], rm[9], rm[10] = m[8]/sz, m[9]/sz, m[10]/sz
	}
	r = QuatFromRotationMatrix(rm)
	return t, r, s
}

func (m Mat4) determinant3() float32 {
	return m[0]*(m[5]*m[10]-m[9]*m[6]) -
		m[4]*(m[1]*m[10]-m[9]*m[2]) +
		m[8]*(m[1]*m[6]-m[5]*m[2])
}

// Slice returns the 16 elements as a slice in column-major order.
func (m Mat4) Slice() []float32 {
	out := make([]float32, 16)
	copy(out, m[:])
	return out
}

// Mat4FromSlice builds a matrix from 16 column-major elements.
// Returns identity and false if the slice has the wrong length.
func Mat4FromSlice(v []float32) (Mat4, bool) {
	if len(v) != 16 {
		return Identity(), false
	}
	var m Mat4
	copy(m[:], v)
	return m, true
}

// ApproxEqual reports whether every element of m and other agrees within tol.
func (m Mat4) ApproxEqual(other Mat4, tol float64) bool {
	for i := range m {
		if !ApproxEqual(float64(m[i]), float64(other[i]), tol) {
			return false
		}
	}
	return true
}
