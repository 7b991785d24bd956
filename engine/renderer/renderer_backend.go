package renderer

import (
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// wgpuPresentMode maps a PresentMode onto the surface present mode.
func (m PresentMode) wgpuPresentMode() wgpu.PresentMode {
	if m == PresentModeUncapped {
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeFifo
}

// DepthFormat is the format of the optional depth attachment.
const DepthFormat = wgpu.TextureFormatDepth24Plus

// DefaultClearColor is the sky-blue the main render pass clears to.
var DefaultClearColor = wgpu.Color{R: 0.58, G: 0.72, B: 0.92, A: 1}

// rendererBackend is the GPU API the Renderer drives. The WebGPU implementation is the only one.
type rendererBackend interface {
	// ConfigureSurface (re)configures the presentation surface and the optional depth attachment.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	//
	// Returns:
	//   - SurfaceConfig: the negotiated format and alpha mode
	//   - bool: false if no preferred candidate was supported and the fallback was used
	//   - error: an error if the depth attachment cannot be created
	ConfigureSurface(width, height int) (SurfaceConfig, bool, error)

	// RegisterRenderPipeline compiles the pipeline's shader, creates its layouts and render pipeline
	// and stores them on p.
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data into new GPU buffers stored on provider.
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates one uniform buffer per entry of descriptor and a bind group over them
	// following layout.
	InitBindGroup(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers queues every write for upload before the next submission.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the surface texture and begins the main render pass.
	BeginFrame() error

	// SetPipeline sets the active render pipeline on the open pass.
	SetPipeline(rp *wgpu.RenderPipeline)

	// SetBindGroup binds bg at group on the open pass.
	SetBindGroup(group int, bg *wgpu.BindGroup)

	// Draw issues a non-indexed draw on the open pass.
	Draw(vertexCount uint32)

	// DrawIndexed binds the mesh buffers of provider and issues an indexed draw.
	DrawIndexed(provider bind_group_provider.BindGroupProvider)

	// EndFrame ends the render pass and submits the recorded commands.
	EndFrame() error

	// Present presents the acquired surface texture.
	Present()

	// Release frees every GPU object the backend owns.
	Release()
}
