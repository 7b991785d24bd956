package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-meadow/assets"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeBackend records calls without touching a GPU. GPU handles it hands out are zero values
// that are never passed to wgpu.
type fakeBackend struct {
	config     SurfaceConfig
	configOK   bool
	configErr  error
	registerFn func(p pipeline.Pipeline) error

	configured  [][2]int
	bindLayouts []*wgpu.BindGroupLayout
	bindDescs   []wgpu.BindGroupLayoutDescriptor
	writes      int
	pipelines   []*wgpu.RenderPipeline
}

func (f *fakeBackend) ConfigureSurface(width, height int) (SurfaceConfig, bool, error) {
	f.configured = append(f.configured, [2]int{width, height})
	return f.config, f.configOK, f.configErr
}

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if f.registerFn != nil {
		return f.registerFn(p)
	}
	layouts := make([]*wgpu.BindGroupLayout, len(p.Shader().BindGroupLayoutDescriptors()))
	for i := range layouts {
		layouts[i] = &wgpu.BindGroupLayout{}
	}
	p.SetBindGroupLayouts(layouts)
	p.SetRenderPipeline(&wgpu.RenderPipeline{})
	return nil
}

func (f *fakeBackend) InitMeshBuffers(bind_group_provider.BindGroupProvider, []byte, []byte, int) error {
	return nil
}

func (f *fakeBackend) InitBindGroup(_ bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, descriptor wgpu.BindGroupLayoutDescriptor) error {
	f.bindLayouts = append(f.bindLayouts, layout)
	f.bindDescs = append(f.bindDescs, descriptor)
	return nil
}

func (f *fakeBackend) WriteBuffers([]bind_group_provider.BufferWrite) { f.writes++ }
func (f *fakeBackend) BeginFrame() error                             { return nil }
func (f *fakeBackend) SetPipeline(rp *wgpu.RenderPipeline)           { f.pipelines = append(f.pipelines, rp) }
func (f *fakeBackend) SetBindGroup(int, *wgpu.BindGroup)             {}
func (f *fakeBackend) Draw(uint32)                                   {}
func (f *fakeBackend) DrawIndexed(bind_group_provider.BindGroupProvider) {}
func (f *fakeBackend) EndFrame() error                               { return nil }
func (f *fakeBackend) Present()                                      {}
func (f *fakeBackend) Release()                                      {}

func testRenderer(t *testing.T, backend *fakeBackend, options ...RendererBuilderOption) *renderer {
	t.Helper()
	r := newRenderer(options...)
	r.backend = backend
	return r
}

func testPipelines(t *testing.T) (pipeline.Pipeline, pipeline.Pipeline) {
	t.Helper()
	sky, err := shader.NewShaderFromFS(pipeline.KeySky, assets.Shaders, assets.SkyShaderPath)
	require.NoError(t, err)
	lit, err := shader.NewShaderFromFS(pipeline.KeyLit, assets.Shaders, assets.LitShaderPath)
	require.NoError(t, err)
	return pipeline.NewSkyPipeline(sky), pipeline.NewLitPipeline(lit, false)
}

func TestNewRendererDefaults(t *testing.T) {
	r := newRenderer()
	assert.Equal(t, PresentModeVSync, r.presentMode)
	assert.Equal(t, DefaultClearColor, r.clearColor)
	assert.False(t, r.depth)
	assert.False(t, r.forceFallbackAdapter)
	assert.NotNil(t, r.logger)
	assert.Empty(t, r.pipelineCache)
}

func TestRendererBuilderOptions(t *testing.T) {
	logger := zap.NewExample()
	c := wgpu.Color{R: 1, A: 1}
	r := newRenderer(
		WithPresentMode(PresentModeUncapped),
		WithForceSoftwareRenderer(true),
		WithDepthBuffer(true),
		WithClearColor(c),
		WithLogger(logger),
	)
	assert.Equal(t, PresentModeUncapped, r.presentMode)
	assert.True(t, r.forceFallbackAdapter)
	assert.True(t, r.depth)
	assert.Equal(t, c, r.clearColor)
	assert.Same(t, logger, r.logger)
}

func TestPresentModeMapping(t *testing.T) {
	assert.Equal(t, wgpu.PresentModeFifo, PresentModeVSync.wgpuPresentMode())
	assert.Equal(t, wgpu.PresentModeImmediate, PresentModeUncapped.wgpuPresentMode())
}

func TestRegisterPipelines(t *testing.T) {
	r := testRenderer(t, &fakeBackend{})
	sky, lit := testPipelines(t)

	require.NoError(t, r.RegisterPipelines(sky, lit))
	assert.Same(t, sky, r.Pipeline(pipeline.KeySky))
	assert.Same(t, lit, r.Pipeline(pipeline.KeyLit))
	assert.Nil(t, r.Pipeline("missing"))
}

func TestRegisterPipelinesWrapsFailure(t *testing.T) {
	r := testRenderer(t, &fakeBackend{registerFn: func(pipeline.Pipeline) error {
		return errors.New("validation failed")
	}})
	sky, _ := testPipelines(t)

	err := r.RegisterPipelines(sky)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `register pipeline "sky"`)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Nil(t, r.Pipeline(pipeline.KeySky))
}

func TestInitBindGroup(t *testing.T) {
	backend := &fakeBackend{}
	r := testRenderer(t, backend)
	sky, lit := testPipelines(t)
	require.NoError(t, r.RegisterPipelines(sky, lit))

	provider := bind_group_provider.NewBindGroupProvider("hero")
	require.NoError(t, r.InitBindGroup(provider, pipeline.KeyLit, pipeline.GroupObject))
	require.Len(t, backend.bindDescs, 1)
	assert.Same(t, lit.BindGroupLayout(pipeline.GroupObject), backend.bindLayouts[0])
	require.Len(t, backend.bindDescs[0].Entries, 1)
	assert.Equal(t, uint64(96), backend.bindDescs[0].Entries[0].Buffer.MinBindingSize)

	assert.ErrorContains(t, r.InitBindGroup(provider, "water", 0), `pipeline "water" is not registered`)
	assert.ErrorContains(t, r.InitBindGroup(provider, pipeline.KeySky, 0), `pipeline "sky" has no bind group 0`)
	assert.Len(t, backend.bindDescs, 1)
}

func TestSetPipeline(t *testing.T) {
	backend := &fakeBackend{}
	r := testRenderer(t, backend)
	sky, _ := testPipelines(t)

	assert.Error(t, r.SetPipeline(pipeline.KeySky))
	assert.Empty(t, backend.pipelines)

	require.NoError(t, r.RegisterPipelines(sky))
	require.NoError(t, r.SetPipeline(pipeline.KeySky))
	require.Len(t, backend.pipelines, 1)
	assert.Same(t, sky.RenderPipeline(), backend.pipelines[0])
}

func TestResize(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	backend := &fakeBackend{
		config:   SurfaceConfig{wgpu.TextureFormatBGRA8Unorm, wgpu.CompositeAlphaModeOpaque},
		configOK: true,
	}
	r := testRenderer(t, backend, WithLogger(zap.New(core)))

	require.NoError(t, r.Resize(1280, 720))
	require.NoError(t, r.Resize(0, 0))
	assert.Equal(t, [][2]int{{1280, 720}, {1, 1}}, backend.configured)

	w, h := r.SurfaceSize()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, r.SurfaceFormat())

	assert.Equal(t, 1, logs.FilterMessage("surface configured").Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestResizeWarnsOnFallback(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	backend := &fakeBackend{config: SurfaceConfig{wgpu.TextureFormatRGBA16Float, wgpu.CompositeAlphaModeInherit}}
	r := testRenderer(t, backend, WithLogger(zap.New(core)))

	require.NoError(t, r.Resize(800, 600))
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestResizeError(t *testing.T) {
	r := testRenderer(t, &fakeBackend{configErr: errors.New("out of memory")})
	err := r.Resize(640, 480)
	assert.ErrorContains(t, err, "configure surface 640x480")
}

func TestWriteBuffersSkipsEmptyBatch(t *testing.T) {
	backend := &fakeBackend{}
	r := testRenderer(t, backend)

	r.WriteBuffers(nil)
	assert.Zero(t, backend.writes)

	r.WriteBuffers([]bind_group_provider.BufferWrite{{Provider: bind_group_provider.NewBindGroupProvider("globals")}})
	assert.Equal(t, 1, backend.writes)
}
