package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// SurfaceSource is the window side of the presentation surface.
type SurfaceSource interface {
	// SurfaceDescriptor returns the platform descriptor the GPU surface is created from.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// SurfaceSize returns the size in pixels the surface should be configured with.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	SurfaceSize() (int, int)
}

// Renderer is the GPU command surface the frame loop records into.
// Setup calls (RegisterPipelines, InitMeshBuffers, InitBindGroup) happen once at scene build; the
// remaining calls follow the per-frame order WriteBuffers, BeginFrame, pass commands, EndFrame, Present.
type Renderer interface {
	// Pipeline returns the registered pipeline for key, or nil.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline or nil
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU objects for each pipeline and caches it under its key.
	//
	// Parameters:
	//   - pipelines: the pipeline descriptions to register
	//
	// Returns:
	//   - error: the first registration failure
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the presentation surface. It is safe to call between any two frame calls.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if the surface attachments cannot be recreated
	Resize(width, height int) error

	// SurfaceSize returns the size the surface was last configured with.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	SurfaceSize() (int, int)

	// SurfaceFormat returns the negotiated surface pixel format.
	//
	// Returns:
	//   - wgpu.TextureFormat: the surface format
	SurfaceFormat() wgpu.TextureFormat

	// InitMeshBuffers uploads mesh data into vertex and index buffers owned by provider.
	//
	// Parameters:
	//   - provider: the mesh provider
	//   - vertexData: interleaved vertex bytes
	//   - indexData: index bytes, padded to a 4-byte multiple
	//   - indexCount: number of indices to draw
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the uniform buffers and bind group for group of a registered pipeline.
	//
	// Parameters:
	//   - provider: the provider that will own the resources
	//   - pipelineKey: the key of a registered pipeline
	//   - group: the bind group index
	//
	// Returns:
	//   - error: an error if the pipeline or group is unknown or creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error

	// WriteBuffers queues buffer uploads. Writes land before the next submitted frame.
	//
	// Parameters:
	//   - writes: the writes in order
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the surface texture and opens a render pass cleared to the clear colour.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired; the frame must be skipped
	BeginFrame() error

	// SetPipeline makes the registered pipeline for key active in the open pass.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - error: an error if no pipeline is registered under key
	SetPipeline(key string) error

	// SetBindGroup binds the provider's bind group at group.
	//
	// Parameters:
	//   - group: the bind group index
	//   - provider: the provider whose bind group is bound
	SetBindGroup(group int, provider bind_group_provider.BindGroupProvider)

	// Draw issues a non-indexed draw of vertexCount generated vertices.
	//
	// Parameters:
	//   - vertexCount: number of vertices
	Draw(vertexCount uint32)

	// DrawMesh binds the mesh provider's buffers and issues an indexed draw.
	//
	// Parameters:
	//   - mesh: the mesh provider
	DrawMesh(mesh bind_group_provider.BindGroupProvider)

	// EndFrame closes the pass and submits the frame's commands.
	//
	// Returns:
	//   - error: an error if command encoding failed
	EndFrame() error

	// Present shows the submitted frame.
	Present()

	// Release frees the pipelines and every GPU object owned by the renderer.
	Release()
}

type renderer struct {
	mu      *sync.Mutex
	backend rendererBackend
	logger  *zap.Logger

	pipelineCache map[string]pipeline.Pipeline

	presentMode          PresentMode
	forceFallbackAdapter bool
	depth                bool
	clearColor           wgpu.Color

	surfaceConfig SurfaceConfig
	width, height int
}

var _ Renderer = &renderer{}

// NewRenderer creates the WebGPU device for src's surface and configures the surface at src's size.
//
// Parameters:
//   - src: the window providing the surface
//   - options: functional options applied before the device is created
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if no adapter or device could be acquired
func NewRenderer(src SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	backend, err := newWGPURendererBackend(src.SurfaceDescriptor(), wgpuBackendOptions{
		forceFallbackAdapter: r.forceFallbackAdapter,
		presentMode:          r.presentMode,
		depth:                r.depth,
		clearColor:           r.clearColor,
	})
	if err != nil {
		return nil, err
	}
	r.backend = backend
	r.logger.Info("gpu device acquired",
		zap.Bool("force_software", r.forceFallbackAdapter),
		zap.Bool("depth_buffer", r.depth),
	)

	if err := r.Resize(src.SurfaceSize()); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		presentMode:   PresentModeVSync,
		clearColor:    DefaultClearColor,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", p.PipelineKey(), err)
		}
		r.mu.Lock()
		r.pipelineCache[p.PipelineKey()] = p
		r.mu.Unlock()
		r.logger.Info("pipeline registered",
			zap.String("pipeline", p.PipelineKey()),
			zap.Bool("depth_test", p.DepthTestEnabled()),
		)
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	width, height = max(width, 1), max(height, 1)

	config, ok, err := r.backend.ConfigureSurface(width, height)
	if err != nil {
		return fmt.Errorf("configure surface %dx%d: %w", width, height, err)
	}

	r.mu.Lock()
	changed := config != r.surfaceConfig
	r.surfaceConfig = config
	r.width, r.height = width, height
	r.mu.Unlock()

	if !ok {
		r.logger.Warn("no preferred surface format supported, using first reported",
			zap.String("format", FormatName(config.Format)),
		)
	} else if changed {
		r.logger.Info("surface configured",
			zap.String("format", FormatName(config.Format)),
			zap.Int("width", width),
			zap.Int("height", height),
		)
	}
	return nil
}

// FormatName returns the display name of a texture format.
func FormatName(f wgpu.TextureFormat) string {
	return fmt.Sprint(f)
}

func (r *renderer) SurfaceSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SurfaceFormat() wgpu.TextureFormat {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surfaceConfig.Format
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("pipeline %q is not registered", pipelineKey)
	}
	layout := p.BindGroupLayout(group)
	if layout == nil {
		return fmt.Errorf("pipeline %q has no bind group %d", pipelineKey, group)
	}
	return r.backend.InitBindGroup(provider, layout, p.Shader().BindGroupLayoutDescriptor(group))
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	if len(writes) == 0 {
		return
	}
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) SetPipeline(key string) error {
	p := r.Pipeline(key)
	if p == nil || p.RenderPipeline() == nil {
		return fmt.Errorf("pipeline %q is not registered", key)
	}
	r.backend.SetPipeline(p.RenderPipeline())
	return nil
}

func (r *renderer) SetBindGroup(group int, provider bind_group_provider.BindGroupProvider) {
	r.backend.SetBindGroup(group, provider.BindGroup())
}

func (r *renderer) Draw(vertexCount uint32) {
	r.backend.Draw(vertexCount)
}

func (r *renderer) DrawMesh(mesh bind_group_provider.BindGroupProvider) {
	r.backend.DrawIndexed(mesh)
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()
	r.backend.Release()
}
