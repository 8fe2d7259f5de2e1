package engine

import "github.com/voxelrt/fpga-voxel-engine/internal/fixed"

// TopLevel is a thin wrapper that propagates reset and the clock to the
// Orchestrator, and re-seeds the default camera pose on reset.
type TopLevel struct {
	Reset        bool
	Orchestrator *Orchestrator
}

// NewTopLevel wraps an already-constructed Orchestrator.
func NewTopLevel(o *Orchestrator) *TopLevel {
	return &TopLevel{Orchestrator: o}
}

// RisingClkEdge advances the whole pipeline by one tick.
func (t *TopLevel) RisingClkEdge() {
	t.Orchestrator.Reset = t.Reset
	t.Orchestrator.RisingClkEdge()

	if t.Reset {
		t.Orchestrator.CameraHeadingIn = fixed.Forward
		t.Orchestrator.CameraPosIn = fixed.Vec3{}
	}
}
