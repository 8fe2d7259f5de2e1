package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/voxelrt/fpga-voxel-engine/cmd/voxelrt/hostcam"
	"github.com/voxelrt/fpga-voxel-engine/cmd/voxelrt/present"
	"github.com/voxelrt/fpga-voxel-engine/internal/chunk"
	"github.com/voxelrt/fpga-voxel-engine/internal/engine"
	"github.com/voxelrt/fpga-voxel-engine/internal/fixed"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	quick := flag.Bool("quick", false, "run one frame to completion without a window and exit")
	chunkPath := flag.String("chunk", "", "path to a raw N^3 chunk blob (defaults to a procedural demo scene)")
	chunkSize := flag.Int("chunk-size", chunk.Size, "edge length of the chunk blob, in voxels")
	numVTU := flag.Int("vtus", 4, "number of parallel voxel traversal units")
	l2Entries := flag.Int("l2-entries", 64, "entries in the L2 cache, shared by all ports")
	l3Stall := flag.Int("l3-stall", 4, "modelled DRAM stall cycles per L3 read")
	flag.Parse()

	source, err := loadChunk(*chunkPath, int32(*chunkSize))
	if err != nil {
		panic(err)
	}

	top := engine.NewTopLevel(engine.New(source, *numVTU, *l2Entries, *l3Stall))

	if *quick {
		frame, ticks := engine.QuickRender(top, fixed.Vec3{}, fixed.Forward)
		fmt.Printf("rendered %d pixels in %d ticks\n", len(frame), ticks)
		fmt.Print(top.Orchestrator.Profiler().Stats())
		return
	}

	runWindowed(top)
}

func loadChunk(path string, size int32) (*chunk.MockChunk, error) {
	if path == "" {
		return chunk.GenerateGrassFloor(size, -size/4), nil
	}
	return chunk.Load(path, size)
}

func runWindowed(top *engine.TopLevel) {
	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(engine.FrameWidth*4, engine.FrameHeight*4, "voxelrt", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	instance := wgpu.CreateInstance(nil)
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		panic(err)
	}
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		panic(err)
	}
	queue := device.GetQueue()

	width, height := window.GetFramebufferSize()
	caps := surface.GetCapabilities(adapter)
	format := caps.Formats[0]
	config := &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, config)

	presenter, err := present.New(device, queue, format)
	if err != nil {
		panic(err)
	}
	defer presenter.Release()

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if width == 0 || height == 0 {
			return
		}
		config.Width, config.Height = uint32(width), uint32(height)
		surface.Configure(adapter, device, config)
	})

	cam := hostcam.New()
	mouseCaptured := false
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !mouseCaptured {
			return
		}
		cx, cy := float64(width)/2, float64(height)/2
		cam.Rotate(float32(xpos-cx), float32(ypos-cy))
		w.SetCursorPos(cx, cy)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyTab:
			mouseCaptured = !mouseCaptured
			if mouseCaptured {
				w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
			} else {
				w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
			}
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
	})

	top.Reset = true
	top.RisingClkEdge()
	top.Reset = false

	lastTime := glfw.GetTime()
	for !window.ShouldClose() {
		glfw.PollEvents()

		now := glfw.GetTime()
		dt := float32(now - lastTime)
		lastTime = now

		applyWASD(window, cam, dt)
		pos, heading := cam.EnginePose()
		top.Orchestrator.CameraPosIn = pos
		top.Orchestrator.CameraHeadingIn = heading

		for !top.Orchestrator.FrameDoneOut {
			top.RisingClkEdge()
		}
		top.RisingClkEdge()

		stats := top.Orchestrator.Profiler().Stats()
		if err := presenter.Upload(top.Orchestrator.FrameBufferOut, engine.FrameWidth, engine.FrameHeight, stats); err != nil {
			fmt.Printf("ERROR: Upload failed: %v\n", err)
			continue
		}

		nextTexture, err := surface.GetCurrentTexture()
		if err != nil {
			fmt.Printf("ERROR: GetCurrentTexture failed: %v\n", err)
			continue
		}
		view, err := nextTexture.CreateView(nil)
		if err != nil {
			nextTexture.Release()
			fmt.Printf("ERROR: CreateView failed: %v\n", err)
			continue
		}
		encoder, err := device.CreateCommandEncoder(nil)
		if err != nil {
			view.Release()
			nextTexture.Release()
			fmt.Printf("ERROR: CreateCommandEncoder failed: %v\n", err)
			continue
		}
		if err := presenter.Render(encoder, view); err != nil {
			fmt.Printf("ERROR: Render failed: %v\n", err)
		}
		cmd, err := encoder.Finish(nil)
		if err == nil {
			queue.Submit(cmd)
			surface.Present()
		}
		device.Poll(false, nil)
		view.Release()
		nextTexture.Release()
	}
}

// applyWASD polls held-key state directly rather than reacting to discrete
// press events, so movement is continuous while a key is held.
func applyWASD(w *glfw.Window, cam *hostcam.FreeCamera, dt float32) {
	var x, y, z float32
	if w.GetKey(glfw.KeyW) == glfw.Press {
		z++
	}
	if w.GetKey(glfw.KeyS) == glfw.Press {
		z--
	}
	if w.GetKey(glfw.KeyD) == glfw.Press {
		x++
	}
	if w.GetKey(glfw.KeyA) == glfw.Press {
		x--
	}
	if w.GetKey(glfw.KeySpace) == glfw.Press {
		y++
	}
	if w.GetKey(glfw.KeyLeftShift) == glfw.Press {
		y--
	}
	cam.Translate(x, y, z, dt)
}

