// Package vtu implements the voxel traversal unit: a state machine that
// casts a single ray voxel-by-voxel through the shared L2 cache, using the
// Amanatides & Woo 3-D DDA, and emits the first non-Air hit plus its
// surface normal.
package vtu

import (
	"github.com/google/uuid"

	"github.com/voxelrt/fpga-voxel-engine/internal/cache"
	"github.com/voxelrt/fpga-voxel-engine/internal/fixed"
	"github.com/voxelrt/fpga-voxel-engine/internal/voxel"
)

// MaxSteps bounds a single ray's traversal latency, chosen per the
// render-distance budget (reference range: 110-220).
const MaxSteps = 160

type axis uint8

const (
	axisNone axis = iota
	axisX
	axisY
	axisZ
)

// VoxelTraversalUnit casts one ray at a time through a shared L2Cache port.
type VoxelTraversalUnit struct {
	// ID correlates this VTU's log/trace output across a run.
	ID uuid.UUID

	Reset          bool
	RayOriginIn    fixed.Vec3
	RayDirectionIn fixed.Vec3
	RayInitIn      bool

	VoxelOut  voxel.Block
	NormalOut fixed.Vec3
	ValidOut  bool

	L2    *cache.L2Cache
	Index int

	rayDirection fixed.Vec3
	rayPosition  fixed.Vec3i
	rayStep      fixed.Vec3i
	rayTDelta    fixed.Vec3
	rayTMax      fixed.Vec3
	numSteps     int
	lastStep     axis
}

// New constructs a VTU bound to port `index` of the shared L2 cache.
func New(l2 *cache.L2Cache, index int) *VoxelTraversalUnit {
	return &VoxelTraversalUnit{
		ID:    uuid.New(),
		L2:    l2,
		Index: index,
	}
}

// RisingClkEdge advances the VTU by one tick.
func (v *VoxelTraversalUnit) RisingClkEdge() {
	if v.Reset {
		v.VoxelOut = voxel.Air
		v.ValidOut = false
		v.NormalOut = fixed.Forward

		v.rayDirection = fixed.Forward
		v.rayPosition = fixed.Vec3i{}
		v.rayStep = fixed.Vec3i{}
		v.rayTDelta = fixed.Vec3{}
		v.rayTMax = fixed.Vec3{}
		v.numSteps = 0
		v.lastStep = axisNone

		v.L2.ReadEnabled[v.Index] = false
		return
	}

	if v.RayInitIn {
		v.init()
		return
	}

	if v.ValidOut {
		// Done; await the next ray_init_in pulse.
		return
	}

	if v.numSteps > MaxSteps {
		v.VoxelOut = voxel.Air
		v.ValidOut = true
		v.L2.ReadEnabled[v.Index] = false
		return
	}

	if !v.L2.ValidOut[v.Index] {
		// Stall: keep read_enable/addr stable and wait for the cache.
		return
	}

	hit := v.L2.VoxelOut[v.Index]
	if hit != voxel.Air {
		v.VoxelOut = hit
		v.ValidOut = true
		v.NormalOut = v.normalForLastStep()
		v.L2.ReadEnabled[v.Index] = false
		return
	}

	v.step()
	v.numSteps++

	v.L2.ReadEnabled[v.Index] = true
	v.L2.AddrIn[v.Index] = v.rayPosition
}

func (v *VoxelTraversalUnit) init() {
	d := v.RayDirectionIn.Normalized()
	p := v.RayOriginIn.Floor()
	o := v.RayOriginIn

	v.rayDirection = d
	v.rayPosition = p

	one := fixed.FromFloat32(1.0)
	zero := fixed.FromFloat32(0.0)

	v.rayStep = fixed.Vec3i{
		X: signStep(d.X),
		Y: signStep(d.Y),
		Z: signStep(d.Z),
	}

	v.rayTDelta = fixed.Vec3{
		X: d.X.RecipLte1().Abs(),
		Y: d.Y.RecipLte1().Abs(),
		Z: d.Z.RecipLte1().Abs(),
	}

	dist := fixed.Vec3{
		X: distComponent(v.rayStep.X, one, o.X, fixed.FromInt(int16(p.X))),
		Y: distComponent(v.rayStep.Y, one, o.Y, fixed.FromInt(int16(p.Y))),
		Z: distComponent(v.rayStep.Z, one, o.Z, fixed.FromInt(int16(p.Z))),
	}

	v.rayTMax = fixed.Vec3{
		X: tMaxComponent(d.X, zero, v.rayTDelta.X, dist.X),
		Y: tMaxComponent(d.Y, zero, v.rayTDelta.Y, dist.Y),
		Z: tMaxComponent(d.Z, zero, v.rayTDelta.Z, dist.Z),
	}

	v.numSteps = 0
	v.ValidOut = false
	v.lastStep = axisNone

	v.L2.ReadEnabled[v.Index] = true
	v.L2.AddrIn[v.Index] = v.rayPosition
}

func signStep(d fixed.Fixed) int32 {
	if d.Gt(fixed.FromFloat32(0)) {
		return 1
	}
	return -1
}

func distComponent(step int32, one, origin, posF fixed.Fixed) fixed.Fixed {
	if step > 0 {
		return one.Sub(origin).Add(posF)
	}
	return origin.Sub(posF)
}

func tMaxComponent(d, zero, tDelta, dist fixed.Fixed) fixed.Fixed {
	if !d.Eq(zero) {
		return tDelta.Mul(dist)
	}
	return fixed.MaxFixed
}

// step advances along the axis with the smallest t_max, per the
// Amanatides-Woo DDA, using the mandated nested-if tie-break: on a tie,
// Y wins.
func (v *VoxelTraversalUnit) step() {
	tx, ty, tz := v.rayTMax.X, v.rayTMax.Y, v.rayTMax.Z

	if tx.Lt(ty) {
		if tx.Lt(tz) {
			v.rayPosition.X += v.rayStep.X
			v.rayTMax.X = v.rayTMax.X.Add(v.rayTDelta.X)
			v.lastStep = axisX
		} else {
			v.rayPosition.Z += v.rayStep.Z
			v.rayTMax.Z = v.rayTMax.Z.Add(v.rayTDelta.Z)
			v.lastStep = axisZ
		}
	} else {
		if ty.Lt(tz) {
			v.rayPosition.Y += v.rayStep.Y
			v.rayTMax.Y = v.rayTMax.Y.Add(v.rayTDelta.Y)
			v.lastStep = axisY
		} else {
			v.rayPosition.Z += v.rayStep.Z
			v.rayTMax.Z = v.rayTMax.Z.Add(v.rayTDelta.Z)
			v.lastStep = axisZ
		}
	}
}

func (v *VoxelTraversalUnit) normalForLastStep() fixed.Vec3 {
	switch v.lastStep {
	case axisX:
		return fixed.Right.Scale(fixed.FromInt(int16(-v.rayStep.X)))
	case axisY:
		return fixed.Up.Scale(fixed.FromInt(int16(-v.rayStep.Y)))
	case axisZ:
		return fixed.Forward.Scale(fixed.FromInt(int16(-v.rayStep.Z)))
	default:
		return fixed.Vec3{}
	}
}
