package engine

import "github.com/voxelrt/fpga-voxel-engine/internal/fixed"

// QuickRender drives a TopLevel through reset, seeds the given camera pose,
// and then ticks it until one full frame completes, returning the settled
// framebuffer. It supersedes the original's instant, non-parallel
// mock_render/mock_cast path (see DESIGN.md) with a real
// clocked run to completion — useful for tests and the host's "-quick"
// non-interactive mode. The pose is applied after the reset edge, since
// TopLevel re-seeds its own default pose on every reset.
func QuickRender(t *TopLevel, cameraPos, cameraHeading fixed.Vec3) ([]fixed.Rgb565, int) {
	t.Reset = true
	t.RisingClkEdge()
	t.Reset = false

	t.Orchestrator.CameraPosIn = cameraPos
	t.Orchestrator.CameraHeadingIn = cameraHeading

	ticks := 0
	for !t.Orchestrator.FrameDoneOut {
		t.RisingClkEdge()
		ticks++
		if ticks > maxQuickRenderTicks {
			break
		}
	}
	return t.Orchestrator.FrameBufferOut, ticks
}

// maxQuickRenderTicks is a generous upper bound (worst case: every pixel's
// ray runs the full MaxSteps) so a misconfigured scene can't hang a test
// or the host's quick-render mode forever.
const maxQuickRenderTicks = NumPixels * 4096
