// Package engine implements the orchestrator that schedules parallel VTUs
// over a frame, and the thin TopLevel wrapper that fans reset/clock out to
// it.
package engine

import (
	"github.com/google/uuid"

	"github.com/voxelrt/fpga-voxel-engine/internal/bench"
	"github.com/voxelrt/fpga-voxel-engine/internal/cache"
	"github.com/voxelrt/fpga-voxel-engine/internal/fixed"
	"github.com/voxelrt/fpga-voxel-engine/internal/vtu"
)

// Reference frame geometry.
const (
	FrameWidth   = 160
	FrameHeight  = 128
	NumPixels    = FrameWidth * FrameHeight
	ViewportHeight float32 = 2.0
)

var viewportWidth = fixed.FromFloat32(ViewportHeight * float32(FrameWidth) / float32(FrameHeight))
var viewportHeightFixed = fixed.FromFloat32(ViewportHeight)

// sun is the single directional light.
var sun = fixed.Vec3{X: fixed.FromFloat32(1), Y: fixed.FromFloat32(-5), Z: fixed.FromFloat32(2)}.Normalized()

// Orchestrator owns the shared L2/L3 caches and an array of VTUs, computing
// the camera basis once per frame and assigning pixels to idle VTUs.
type Orchestrator struct {
	ID uuid.UUID

	Reset            bool
	CameraPosIn      fixed.Vec3
	CameraHeadingIn  fixed.Vec3
	FrameBufferOut   []fixed.Rgb565
	FrameDoneOut     bool

	cameraPos fixed.Vec3

	l2  *cache.L2Cache
	l3  *cache.L3Cache
	vts []*vtu.VoxelTraversalUnit

	currentPixel []int

	nextPixel    int
	pixel0Loc    fixed.Vec3
	pixelDeltaU  fixed.Vec3
	pixelDeltaV  fixed.Vec3

	profiler *bench.Profiler
	l2Stats  bench.L2Counters
}

// New builds an Orchestrator with numVTU traversal units sharing an
// l2Entries-entry L2 cache backed by source, via an L3 with the given
// number of modelled DRAM stall cycles.
func New(source cache.ChunkSource, numVTU, l2Entries, l3StallCycles int) *Orchestrator {
	profiler := bench.NewProfiler()
	l2Stats := bench.NewL2Counters(profiler)

	l3 := cache.NewL3Cache(source)
	l3.StallCycles = l3StallCycles
	l2 := cache.NewL2Cache(numVTU, l2Entries, l3, l2Stats)

	o := &Orchestrator{
		ID:             uuid.New(),
		FrameBufferOut: make([]fixed.Rgb565, NumPixels),
		l2:             l2,
		l3:             l3,
		currentPixel:   make([]int, numVTU),
		profiler:       profiler,
		l2Stats:        l2Stats,
	}
	o.vts = make([]*vtu.VoxelTraversalUnit, numVTU)
	for i := range o.vts {
		o.vts[i] = vtu.New(l2, i)
	}
	return o
}

// L2Stats exposes the shared L2 cache's benchmark counters.
func (o *Orchestrator) L2Stats() bench.L2Counters {
	return o.l2Stats
}

// Profiler exposes the underlying counter store for host-side diagnostics.
func (o *Orchestrator) Profiler() *bench.Profiler {
	return o.profiler
}

// RisingClkEdge advances the orchestrator, its caches and its VTUs by one
// tick.
func (o *Orchestrator) RisingClkEdge() {
	// Propagate reset to owned submodules.
	o.l2.Reset = o.Reset
	o.l3.Reset = o.Reset
	for _, v := range o.vts {
		v.Reset = o.Reset
	}

	// Clock edge: L2, then L3, then VTUs (order matters only for the
	// two-phase sample/commit model allows).
	o.l2.RisingClkEdge()
	o.l3.RisingClkEdge()
	for _, v := range o.vts {
		v.RisingClkEdge()
	}

	if o.Reset {
		for i := range o.FrameBufferOut {
			o.FrameBufferOut[i] = fixed.Rgb565{}
		}
		o.FrameDoneOut = false
		o.cameraPos = fixed.Vec3{}
		o.nextPixel = NumPixels
		o.pixel0Loc = fixed.Vec3{}
		o.pixelDeltaU = fixed.Vec3{}
		o.pixelDeltaV = fixed.Vec3{}
		return
	}

	o.FrameDoneOut = o.nextPixel == NumPixels-1

	if o.nextPixel == NumPixels {
		o.startFrame()
		return
	}

	o.stepFrame()
}

func (o *Orchestrator) startFrame() {
	o.nextPixel = 0
	o.cameraPos = o.CameraPosIn

	w := o.CameraHeadingIn.Normalized()
	u := fixed.Up.Cross(w).Normalized()
	v := w.Cross(u)

	viewportU := u.Scale(viewportWidth)
	viewportV := v.Neg().Scale(viewportHeightFixed)

	o.pixelDeltaU = u.Scale(fixed.FromFloat32(viewportWidth.Float32() / float32(FrameWidth)))
	o.pixelDeltaV = v.Neg().Scale(fixed.FromFloat32(viewportHeightFixed.Float32() / float32(FrameHeight)))

	half := fixed.FromFloat32(0.5)
	viewportCorner := o.CameraPosIn.Sub(w).Sub(viewportU.Add(viewportV).Scale(half))
	o.pixel0Loc = viewportCorner.Add(o.pixelDeltaU.Add(o.pixelDeltaV).Scale(half))

	for i, v := range o.vts {
		v.RayDirectionIn = o.pixel0Loc.Sub(o.CameraPosIn)
		v.RayOriginIn = o.CameraPosIn
		v.RayInitIn = true
		o.currentPixel[i] = 0
	}
}

func (o *Orchestrator) stepFrame() {
	for _, v := range o.vts {
		v.RayInitIn = false
	}

	// Static priority: only the lowest-indexed completed VTU is shaded and
	// re-dispatched this tick; the rest stay parked with ValidOut=true.
	for i, v := range o.vts {
		if !v.ValidOut {
			continue
		}

		px := &o.FrameBufferOut[o.currentPixel[i]]
		*px = shade(v.VoxelOut, v.NormalOut)

		o.nextPixel++
		x := fixed.FromInt(int16(o.nextPixel % FrameWidth))
		y := fixed.FromInt(int16(o.nextPixel / FrameWidth))
		pixelLoc := o.pixel0Loc.Add(o.pixelDeltaU.Scale(x)).Add(o.pixelDeltaV.Scale(y))

		v.RayDirectionIn = pixelLoc.Sub(o.cameraPos)
		v.RayOriginIn = o.cameraPos
		o.currentPixel[i] = o.nextPixel
		v.RayInitIn = true
		break
	}
}
