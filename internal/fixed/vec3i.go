package fixed

// Vec3i is a 3-vector of plain signed integers, used as voxel indices.
type Vec3i struct {
	X, Y, Z int32
}

// NewVec3i builds a Vec3i from its three components.
func NewVec3i(x, y, z int32) Vec3i {
	return Vec3i{X: x, Y: y, Z: z}
}

func (v Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3i) Sub(o Vec3i) Vec3i {
	return Vec3i{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3i) Scale(s int32) Vec3i {
	return Vec3i{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3i) MagnitudeSquared() int32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3i) Eq(o Vec3i) bool {
	return v.X == o.X && v.Y == o.Y && v.Z == o.Z
}
