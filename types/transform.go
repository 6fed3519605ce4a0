package types

import "github.com/go-gl/mathgl/mgl32"

// A 4x4 column-major transformation matrix.
type Mat4 mgl32.Mat4

// Create identity matrix.
func Ident4() Mat4 {
	return Mat4(mgl32.Ident4())
}

// Build a transformation matrix that applies scaling, then a rotation given
// as yaw/pitch/roll angles in radians (around the X, Y and Z axes) and finally
// a translation: M = T * R * S.
func Transform(translation, rotation, scale Vec3) Mat4 {
	rot := mgl32.AnglesToQuat(rotation[0], rotation[1], rotation[2], mgl32.XYZ).Normalize().Mat4()
	m := mgl32.Translate3D(translation[0], translation[1], translation[2]).
		Mul4(rot).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
	return Mat4(m)
}

// Create a translation matrix.
func Translate4(v Vec3) Mat4 {
	return Mat4(mgl32.Translate3D(v[0], v[1], v[2]))
}

// Multiply two matrices.
func (m Mat4) Mul4(m2 Mat4) Mat4 {
	return Mat4(mgl32.Mat4(m).Mul4(mgl32.Mat4(m2)))
}

// Transform a point.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3(mgl32.TransformCoordinate(mgl32.Vec3(v), mgl32.Mat4(m)))
}

// Transform a direction vector using the inverse transpose of the matrix so
// that normals remain perpendicular to transformed surfaces.
func (m Mat4) MulNormal(v Vec3) Vec3 {
	inv := mgl32.Mat4(m).Inv().Transpose()
	return Vec3(mgl32.TransformNormal(mgl32.Vec3(v), inv)).Normalize()
}
