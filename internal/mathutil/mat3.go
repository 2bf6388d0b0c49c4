package mathutil

// Mat3 is a row-major 3×3 matrix: rotations, rotation·scale blocks and
// normal matrices.
type Mat3 [9]float64

func Mat3Identity() Mat3 { return Mat3Diag(1, 1, 1) }

func Mat3Diag(x, y, z float64) Mat3 {
	return Mat3{x, 0, 0, 0, y, 0, 0, 0, z}
}

// Row returns row i.
func (m Mat3) Row(i int) Vec3 { return Vec3{m[3*i], m[3*i+1], m[3*i+2]} }

// Col returns column j.
func (m Mat3) Col(j int) Vec3 { return Vec3{m[j], m[3+j], m[6+j]} }

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for i := range m {
		m[i] = a.Row(i / 3).Dot(b.Col(i % 3))
	}
	return m
}

// MulVec3 returns M × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v)}
}

// Det is the scalar triple product of the rows.
func (m Mat3) Det() float64 {
	return m.Row(0).Dot(m.Row(1).Cross(m.Row(2)))
}

// Inverse returns M⁻¹, or the identity for a singular matrix. The columns
// of the adjugate are the cross products of row pairs.
func (m Mat3) Inverse() Mat3 {
	det := m.Det()
	if det == 0 {
		return Mat3Identity()
	}
	r0, r1, r2 := m.Row(0), m.Row(1), m.Row(2)
	c0 := r1.Cross(r2).Scale(1 / det)
	c1 := r2.Cross(r0).Scale(1 / det)
	c2 := r0.Cross(r1).Scale(1 / det)
	return Mat3{
		c0[0], c1[0], c2[0],
		c0[1], c1[1], c2[1],
		c0[2], c1[2], c2[2],
	}
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// NormalMatrix returns the inverse-transpose used to carry normals through
// a model matrix with non-uniform scale.
func (m Mat3) NormalMatrix() Mat3 {
	return m.Inverse().Transpose()
}
