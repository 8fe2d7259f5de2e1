// Package present owns the one render pass this host needs: upload the
// engine's Rgb565 framebuffer as an RGBA8 texture and blit it to the
// swapchain with a fullscreen triangle. It also rasterizes the profiler's
// stats string onto the CPU-side image before upload, using a built-in
// bitmap font since no TrueType asset ships with this module (see
// DESIGN.md).
package present

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/cogentcore/webgpu/wgpu"

	enginefixed "github.com/voxelrt/fpga-voxel-engine/internal/fixed"
)

// Presenter owns the blit pipeline and the CPU-side staging image the
// engine's framebuffer is converted into each frame.
type Presenter struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	pipeline *wgpu.RenderPipeline
	sampler  *wgpu.Sampler

	texture   *wgpu.Texture
	view      *wgpu.TextureView
	bindGroup *wgpu.BindGroup

	width, height int
	staging       *image.RGBA
}

// New builds the blit pipeline and sampler. The swapchain's surface format
// is only needed for the target's ColorTargetState; the source texture is
// always RGBA8Unorm.
func New(device *wgpu.Device, queue *wgpu.Queue, surfaceFormat wgpu.TextureFormat) (*Presenter, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Blit Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: blitWGSL},
	})
	if err != nil {
		return nil, err
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Blit Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeNearest,
		MagFilter:     wgpu.FilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}

	return &Presenter{
		device:   device,
		queue:    queue,
		pipeline: pipeline,
		sampler:  sampler,
	}, nil
}

func (p *Presenter) ensureTexture(w, h int) error {
	if p.texture != nil && p.width == w && p.height == h {
		return nil
	}
	if p.texture != nil {
		p.texture.Release()
	}

	texture, err := p.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Frame Texture",
		Size:          wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		return err
	}
	bindGroup, err := p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: p.pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: p.sampler},
		},
	})
	if err != nil {
		return err
	}

	p.texture = texture
	p.view = view
	p.bindGroup = bindGroup
	p.width, p.height = w, h
	p.staging = image.NewRGBA(image.Rect(0, 0, w, h))
	return nil
}

// Upload converts the engine's packed Rgb565 framebuffer to RGBA8, draws
// the overlay text in its top-left corner, and pushes the result to the
// GPU texture.
func (p *Presenter) Upload(frame []enginefixed.Rgb565, w, h int, overlay string) error {
	if err := p.ensureTexture(w, h); err != nil {
		return err
	}

	for i, px := range frame {
		o := i * 4
		p.staging.Pix[o+0] = px.R()
		p.staging.Pix[o+1] = px.G()
		p.staging.Pix[o+2] = px.B()
		p.staging.Pix[o+3] = 255
	}

	if overlay != "" {
		drawOverlay(p.staging, overlay)
	}

	p.queue.WriteTexture(p.texture.AsImageCopy(), p.staging.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(4 * w),
		RowsPerImage: uint32(h),
	}, &wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1})
	return nil
}

// Render issues the fullscreen blit into the given swapchain view.
func (p *Presenter) Render(encoder *wgpu.CommandEncoder, target *wgpu.TextureView) error {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       target,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	return pass.End()
}

// Release frees the GPU resources this Presenter owns.
func (p *Presenter) Release() {
	if p.texture != nil {
		p.texture.Release()
	}
}

var overlayFace = basicfont.Face7x13

// drawOverlay stamps each line of text directly onto the framebuffer image
// in white, one row of glyphs per line, starting at the top-left corner.
func drawOverlay(img *image.RGBA, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: overlayFace,
	}
	line := 0
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == '\n' {
			d.Dot = fixed.P(4, 13+line*13)
			d.DrawString(text[start:i])
			line++
			start = i + 1
		}
	}
}
