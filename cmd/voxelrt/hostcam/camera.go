// Package hostcam implements the host-side free camera: a yaw/pitch float
// camera with mouse look and keyboard translation, converted to the
// engine's fixed-point Vec3 at the host/engine boundary.
package hostcam

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelrt/fpga-voxel-engine/internal/fixed"
)

// FreeCamera is a yaw/pitch float camera driven by mouse look and
// keyboard translation.
type FreeCamera struct {
	Position    mgl32.Vec3
	Yaw, Pitch  float32
	Speed       float32
	Sensitivity float32
}

// New builds a FreeCamera at the engine's default reset pose: origin,
// looking down +Z.
func New() *FreeCamera {
	return &FreeCamera{
		Position:    mgl32.Vec3{0, 0, 0},
		Yaw:         0,
		Pitch:       0,
		Speed:       8.0,
		Sensitivity: 0.003,
	}
}

// Forward returns the camera's current look direction.
func (c *FreeCamera) Forward() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Pitch)) * math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		float32(math.Cos(float64(c.Pitch)) * math.Cos(float64(c.Yaw))),
	}
}

// Right returns the camera's right vector in the XZ plane.
func (c *FreeCamera) Right() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Yaw))),
		0,
		float32(-math.Sin(float64(c.Yaw))),
	}
}

// Rotate applies a mouse-look delta, clamping pitch to avoid gimbal flip.
func (c *FreeCamera) Rotate(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity

	const limit = math.Pi/2 - 0.01
	if c.Pitch > limit {
		c.Pitch = limit
	}
	if c.Pitch < -limit {
		c.Pitch = -limit
	}
}

// Translate moves the camera along its own basis: x is right, y is world
// up, z is forward, each in [-1, 1], scaled by Speed and dt.
func (c *FreeCamera) Translate(x, y, z, dt float32) {
	delta := c.Right().Mul(x).Add(mgl32.Vec3{0, y, 0}).Add(c.Forward().Mul(z))
	if delta.Len() > 0 {
		delta = delta.Normalize()
	}
	c.Position = c.Position.Add(delta.Mul(c.Speed * dt))
}

// EnginePose converts the current float pose to the engine's fixed-point
// position and heading vectors.
func (c *FreeCamera) EnginePose() (pos, heading fixed.Vec3) {
	p := c.Position
	f := c.Forward()
	return fixed.NewVec3(fixed.FromFloat32(p.X()), fixed.FromFloat32(p.Y()), fixed.FromFloat32(p.Z())),
		fixed.NewVec3(fixed.FromFloat32(f.X()), fixed.FromFloat32(f.Y()), fixed.FromFloat32(f.Z()))
}
