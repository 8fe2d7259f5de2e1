package fixed

import "fmt"

// Vec3 is a 3-vector of Fixed scalars.
type Vec3 struct {
	X, Y, Z Fixed
}

// Up, Right and Forward are the camera basis constants.
var (
	Up      = Vec3{X: FromFloat32(0), Y: FromFloat32(1), Z: FromFloat32(0)}
	Right   = Vec3{X: FromFloat32(1), Y: FromFloat32(0), Z: FromFloat32(0)}
	Forward = Vec3{X: FromFloat32(0), Y: FromFloat32(0), Z: FromFloat32(1)}
)

func NewVec3(x, y, z Fixed) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X.Add(o.X), Y: v.Y.Add(o.Y), Z: v.Z.Add(o.Z)}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X.Sub(o.X), Y: v.Y.Sub(o.Y), Z: v.Z.Sub(o.Z)}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{X: v.X.Neg(), Y: v.Y.Neg(), Z: v.Z.Neg()}
}

// Scale multiplies every component by a scalar.
func (v Vec3) Scale(s Fixed) Vec3 {
	return Vec3{X: v.X.Mul(s), Y: v.Y.Mul(s), Z: v.Z.Mul(s)}
}

func (v Vec3) Dot(o Vec3) Fixed {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z))
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y.Mul(o.Z).Sub(v.Z.Mul(o.Y)),
		Y: v.Z.Mul(o.X).Sub(v.X.Mul(o.Z)),
		Z: v.X.Mul(o.Y).Sub(v.Y.Mul(o.X)),
	}
}

func (v Vec3) MagnitudeSquared() Fixed {
	return v.Dot(v)
}

// Normalized returns v scaled by the inverse square root of its own
// magnitude squared, hardware-style.
func (v Vec3) Normalized() Vec3 {
	return v.Scale(v.MagnitudeSquared().InvSqrt())
}

// Floor produces a Vec3i by flooring each component.
func (v Vec3) Floor() Vec3i {
	return Vec3i{X: v.X.Floor(), Y: v.Y.Floor(), Z: v.Z.Floor()}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%s, %s, %s)", v.X, v.Y, v.Z)
}
