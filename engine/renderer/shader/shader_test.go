package shader

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/Carmen-Shannon/oxy-meadow/assets"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func loadEmbedded(t *testing.T, key, name string) Shader {
	t.Helper()
	s, err := NewShaderFromFS(key, assets.Shaders, name)
	require.NoError(t, err)
	return s
}

func TestLitShaderReflection(t *testing.T) {
	s := loadEmbedded(t, "lit", assets.LitShaderPath)

	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Equal(t, "fs_main", s.FragmentEntryPoint())

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)
	assert.Equal(t, uint64(24), layouts[0].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layouts[0].StepMode)
	require.Len(t, layouts[0].Attributes, 2)
	assert.Equal(t, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0}, layouts[0].Attributes[0])
	assert.Equal(t, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, layouts[0].Attributes[1])

	assert.Equal(t, uint64(80), s.UniformSize(0, 0))
	assert.Equal(t, uint64(96), s.UniformSize(1, 0))
	assert.Equal(t, "globals", s.BindGroupVarName(0, 0))
	assert.Equal(t, "obj", s.BindGroupVarName(1, 0))

	require.Len(t, s.BindGroupLayoutDescriptors(), 2)
	entry := s.BindGroupLayoutDescriptor(1).Entries[0]
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entry.Buffer.Type)
	assert.Equal(t, uint64(96), entry.Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, entry.Visibility)

	require.NotNil(t, s.Module())
	assert.Equal(t, "lit", s.Module().Label)
	assert.Equal(t, s.Source(), s.Module().WGSLDescriptor.Code)
}

func TestSkyShaderHasNoBuffersOrBindings(t *testing.T) {
	s := loadEmbedded(t, "sky", assets.SkyShaderPath)
	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Equal(t, "fs_main", s.FragmentEntryPoint())
	assert.Empty(t, s.VertexLayouts())
	assert.Empty(t, s.BindGroupLayoutDescriptors())
	assert.Zero(t, s.UniformSize(0, 0))
}

func TestUniformLayoutRules(t *testing.T) {
	src := `
struct Inner { a: vec3f, b: f32 };
struct Outer {
    x: f32,
    inner: Inner,   // aligned to 16
    y: vec2f,
    rows: array<vec4f, 2>,
};
@group(2) @binding(3) var<uniform> outer: Outer;
@vertex fn v() -> @builtin(position) vec4f { return vec4f(0.0); }
@fragment fn f() -> @location(0) vec4f { return vec4f(1.0); }
`
	s, err := NewShaderFromSource("layout", src)
	require.NoError(t, err)
	// x@0, inner@16 (16 bytes), y@32, rows@48 (32 bytes) -> 80.
	assert.Equal(t, uint64(80), s.UniformSize(2, 3))
}

func TestCommentedDeclarationsAreIgnored(t *testing.T) {
	src := `
/* @group(0) @binding(0) var<uniform> ghost: f32; */
// @vertex fn ghost() {}
@vertex fn real_vs() -> @builtin(position) vec4f { return vec4f(0.0); }
@fragment fn real_fs() -> @location(0) vec4f { return vec4f(1.0); }
`
	s, err := NewShaderFromSource("comments", src)
	require.NoError(t, err)
	assert.Equal(t, "real_vs", s.VertexEntryPoint())
	assert.Empty(t, s.BindGroupLayoutDescriptors())
}

func TestNewShaderErrors(t *testing.T) {
	t.Run("missing fragment entry point", func(t *testing.T) {
		_, err := NewShaderFromSource("half", `@vertex fn v() -> @builtin(position) vec4f { return vec4f(0.0); }`)
		assert.ErrorContains(t, err, "@fragment")
	})

	t.Run("unsupported resource", func(t *testing.T) {
		src := `
@group(0) @binding(0) var tex: texture_2d<f32>;
@vertex fn v() -> @builtin(position) vec4f { return vec4f(0.0); }
@fragment fn f() -> @location(0) vec4f { return vec4f(1.0); }
`
		_, err := NewShaderFromSource("tex", src)
		assert.ErrorContains(t, err, "unsupported resource")
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := NewShader("sky", "")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewShader("sky", filepath.Join(t.TempDir(), "missing.wgsl"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadShaders(t *testing.T) {
	dir := t.TempDir()
	litPath := filepath.Join(dir, "lit.wgsl")
	lit, err := assets.Shaders.ReadFile(assets.LitShaderPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(litPath, lit, 0o644))

	shaders, err := LoadShaders(zaptest.NewLogger(t), 2,
		Source{Key: "sky", FS: assets.Shaders, Name: assets.SkyShaderPath},
		Source{Key: "lit", Path: litPath},
	)
	require.NoError(t, err)
	require.Len(t, shaders, 2)
	assert.Equal(t, "sky", shaders["sky"].Key())
	assert.Equal(t, uint64(96), shaders["lit"].UniformSize(1, 0))
}

func TestLoadShadersJoinsFailures(t *testing.T) {
	fsys := fstest.MapFS{"broken.wgsl": {Data: []byte("fn nothing() {}")}}
	_, err := LoadShaders(nil, 0,
		Source{Key: "sky", FS: assets.Shaders, Name: assets.SkyShaderPath},
		Source{Key: "broken", FS: fsys, Name: "broken.wgsl"},
		Source{Key: "lost"},
	)
	require.Error(t, err)
	assert.ErrorContains(t, err, "broken")
	assert.ErrorContains(t, err, "lost")
}
