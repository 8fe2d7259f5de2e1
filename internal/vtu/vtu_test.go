package vtu

import (
	"testing"

	"github.com/voxelrt/fpga-voxel-engine/internal/bench"
	"github.com/voxelrt/fpga-voxel-engine/internal/cache"
	"github.com/voxelrt/fpga-voxel-engine/internal/chunk"
	"github.com/voxelrt/fpga-voxel-engine/internal/fixed"
	"github.com/voxelrt/fpga-voxel-engine/internal/voxel"
)

// newTestRig wires a single VTU to a zero-stall L2/L3 pair backed by a real
// MockChunk, so traversal can be driven end to end with plain RisingClkEdge
// calls.
func newTestRig(c *chunk.MockChunk) *VoxelTraversalUnit {
	profiler := bench.NewProfiler()
	counters := bench.NewL2Counters(profiler)
	l3 := cache.NewL3Cache(c)
	l2 := cache.NewL2Cache(1, 16, l3, counters)
	return New(l2, 0)
}

func tick(v *VoxelTraversalUnit) {
	v.L2.RisingClkEdge()
	v.L2.L3.RisingClkEdge()
	v.RisingClkEdge()
}

// settleTicks bounds how long one ray may take on the zero-stall rig. Every
// read of a voxel not yet in L2 costs three ticks (the miss that drives L3,
// the tick the L3 result is filled in, then the hit), and a ray that gives
// up issues MaxSteps+2 reads.
const settleTicks = 3*(MaxSteps+2) + 8

func runUntilValid(t *testing.T, v *VoxelTraversalUnit) {
	t.Helper()
	for i := 0; i < settleTicks; i++ {
		if v.ValidOut {
			return
		}
		tick(v)
	}
	t.Fatalf("VTU never settled within %d ticks", settleTicks)
}

func TestVTUMissesThroughEmptyChunk(t *testing.T) {
	c := chunk.NewEmpty(64)
	v := newTestRig(c)

	v.RayOriginIn = fixed.Vec3{}
	v.RayDirectionIn = fixed.Forward
	v.RayInitIn = true
	tick(v)
	v.RayInitIn = false

	runUntilValid(t, v)

	if v.VoxelOut != voxel.Air {
		t.Fatalf("a ray through an all-Air chunk should report Air, got %v", v.VoxelOut)
	}
}

func TestVTUHitsWallDirectlyAhead(t *testing.T) {
	c := chunk.GenerateSlab(64, 5, 6, voxel.Stone)
	v := newTestRig(c)

	v.RayOriginIn = fixed.Vec3{}
	v.RayDirectionIn = fixed.Forward
	v.RayInitIn = true
	tick(v)
	v.RayInitIn = false

	runUntilValid(t, v)

	if v.VoxelOut != voxel.Stone {
		t.Fatalf("expected to hit Stone, got %v", v.VoxelOut)
	}
	// The ray travels along +Z into a slab whose front face is normal to Z;
	// the surface normal must point back toward the origin.
	if !v.NormalOut.Z.Lt(fixed.FromFloat32(0)) {
		t.Fatalf("expected a -Z facing normal, got %v", v.NormalOut)
	}
}

func TestVTUGivesUpAfterMaxSteps(t *testing.T) {
	c := chunk.NewEmpty(512)
	v := newTestRig(c)

	v.RayOriginIn = fixed.Vec3{}
	v.RayDirectionIn = fixed.Forward
	v.RayInitIn = true
	tick(v)
	v.RayInitIn = false

	steps := 0
	for !v.ValidOut && steps < settleTicks {
		tick(v)
		steps++
	}

	if !v.ValidOut {
		t.Fatalf("VTU should have settled by giving up after MaxSteps")
	}
	if v.VoxelOut != voxel.Air {
		t.Fatalf("a ray that exhausts its step budget should report Air, got %v", v.VoxelOut)
	}
}

func TestVTUResetClearsState(t *testing.T) {
	c := chunk.GenerateFilled(8, voxel.Stone)
	v := newTestRig(c)

	v.RayOriginIn = fixed.Vec3{}
	v.RayDirectionIn = fixed.Forward
	v.RayInitIn = true
	tick(v)
	v.RayInitIn = false
	runUntilValid(t, v)

	v.Reset = true
	tick(v)
	if v.ValidOut {
		t.Fatalf("reset should clear ValidOut")
	}
	if v.VoxelOut != voxel.Air {
		t.Fatalf("reset should clear VoxelOut back to Air")
	}
}

func TestVTURespondsToNewRayInitWhileSettled(t *testing.T) {
	c := chunk.GenerateSlab(64, 5, 6, voxel.Stone)
	v := newTestRig(c)

	v.RayOriginIn = fixed.Vec3{}
	v.RayDirectionIn = fixed.Forward
	v.RayInitIn = true
	tick(v)
	v.RayInitIn = false
	runUntilValid(t, v)

	if !v.ValidOut {
		t.Fatalf("expected the first cast to have settled")
	}

	// Re-dispatch with a ray aimed away from the slab.
	v.RayOriginIn = fixed.Vec3{}
	v.RayDirectionIn = fixed.Right
	v.RayInitIn = true
	tick(v)
	v.RayInitIn = false
	runUntilValid(t, v)

	if v.VoxelOut != voxel.Air {
		t.Fatalf("second cast should report Air, got %v", v.VoxelOut)
	}
}
