package math3d

// Mat4 is an affine transform in column-major order. Elements 0-2 hold the
// image of the X axis, 4-6 the image of Y, 8-10 the image of Z and 12-14
// the translation; the bottom row is always (0 0 0 1). glTF node matrices
// use the same layout.
type Mat4 [16]float64

// FromBasis builds the transform that maps the unit axes to x, y and z and
// then moves the origin to t.
func FromBasis(x, y, z, t Vec3) Mat4 {
	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		t.X, t.Y, t.Z, 1,
	}
}

var (
	unitX = Vec3{X: 1}
	unitY = Vec3{Y: 1}
	unitZ = Vec3{Z: 1}
)

// Identity returns the identity transform.
func Identity() Mat4 {
	return FromBasis(unitX, unitY, unitZ, Zero3())
}

// Translate returns a pure translation by v.
func Translate(v Vec3) Mat4 {
	return FromBasis(unitX, unitY, unitZ, v)
}

// Scale returns a per-axis scale.
func Scale(v Vec3) Mat4 {
	return FromBasis(unitX.Scale(v.X), unitY.Scale(v.Y), unitZ.Scale(v.Z), Zero3())
}

// ScaleUniform returns a scale by s on every axis.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX returns the matrix form of Vec3.RotateX.
func RotateX(angle float64) Mat4 {
	return FromBasis(unitX.RotateX(angle), unitY.RotateX(angle), unitZ.RotateX(angle), Zero3())
}

// RotateY returns the matrix form of Vec3.RotateY.
func RotateY(angle float64) Mat4 {
	return FromBasis(unitX.RotateY(angle), unitY.RotateY(angle), unitZ.RotateY(angle), Zero3())
}

// RotateZ returns the matrix form of Vec3.RotateZ.
func RotateZ(angle float64) Mat4 {
	return FromBasis(unitX.RotateZ(angle), unitY.RotateZ(angle), unitZ.RotateZ(angle), Zero3())
}

// FromQuat returns the rotation of the unit quaternion (x, y, z, w), the
// component order glTF stores.
func FromQuat(x, y, z, w float64) Mat4 {
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	return FromBasis(
		V3(1-2*(yy+zz), 2*(xy+wz), 2*(xz-wy)),
		V3(2*(xy-wz), 1-2*(xx+zz), 2*(yz+wx)),
		V3(2*(xz+wy), 2*(yz-wx), 1-2*(xx+yy)),
		Zero3(),
	)
}

// Compose returns translate * rotate * scale, the order glTF applies node
// TRS properties in.
func Compose(t Vec3, rot Mat4, s Vec3) Mat4 {
	return Translate(t).Mul(rot).Mul(Scale(s))
}

// Mul returns a * b: b is applied first.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for j := 0; j < 16; j += 4 {
		for i := range 4 {
			m[j+i] = a[i]*b[j] + a[4+i]*b[j+1] + a[8+i]*b[j+2] + a[12+i]*b[j+3]
		}
	}
	return m
}

// MulVec3 transforms a point.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec3Dir(v).Add(V3(m[12], m[13], m[14]))
}

// MulVec3Dir transforms a direction, ignoring the translation.
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return V3(m[0], m[1], m[2]).Scale(v.X).
		Add(V3(m[4], m[5], m[6]).Scale(v.Y)).
		Add(V3(m[8], m[9], m[10]).Scale(v.Z))
}
