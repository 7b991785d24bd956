package uniform

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-meadow/common"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindCall struct {
	label       string
	pipelineKey string
	group       int
}

type fakeBinder struct {
	calls []bindCall
	err   error
}

func (f *fakeBinder) InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error {
	f.calls = append(f.calls, bindCall{provider.Label(), pipelineKey, group})
	return f.err
}

func floatAt(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

// reflectSize wraps a uniform struct definition in a minimal shader and returns the reflected binding size.
func reflectSize(t *testing.T, structSource, typeName string) uint64 {
	t.Helper()
	src := structSource + fmt.Sprintf(`
@group(0) @binding(0) var<uniform> u: %s;
@vertex fn vs_main() -> @builtin(position) vec4f { return vec4f(0.0); }
@fragment fn fs_main() -> @location(0) vec4f { return vec4f(1.0); }
`, typeName)
	s, err := shader.NewShaderFromSource(typeName, src)
	require.NoError(t, err)
	return s.UniformSize(0, 0)
}

func TestGlobalUniformLayout(t *testing.T) {
	var g GPUGlobalUniform
	assert.Equal(t, 80, g.Size())
	assert.Equal(t, uint64(g.Size()), reflectSize(t, GPUGlobalUniformSource, "Globals"))

	for i := range g.ViewProj {
		g.ViewProj[i] = float32(i + 1)
	}
	g.LightDir = DefaultLightDirection

	buf := g.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, float32(1), floatAt(buf, 0))
	assert.Equal(t, float32(16), floatAt(buf, 60))
	assert.Equal(t, float32(0.45), floatAt(buf, 64))
	assert.Equal(t, float32(0.85), floatAt(buf, 68))
	assert.Equal(t, float32(0.35), floatAt(buf, 72))
	assert.Equal(t, float32(0), floatAt(buf, 76))
}

func TestObjectUniformLayout(t *testing.T) {
	var o GPUObjectUniform
	assert.Equal(t, 96, o.Size())
	assert.Equal(t, uint64(o.Size()), reflectSize(t, GPUObjectUniformSource, "Object"))

	common.Identity((*common.Mat4)(&o.Model))
	o.Color = [4]float32{0.8, 0.2, 0.1, 1}
	o.UVScale = [2]float32{40, 40}

	buf := o.Marshal()
	require.Len(t, buf, 96)
	assert.Equal(t, float32(1), floatAt(buf, 0))
	assert.Equal(t, float32(1), floatAt(buf, 60))
	assert.Equal(t, float32(0.8), floatAt(buf, 64))
	assert.Equal(t, float32(1), floatAt(buf, 76))
	assert.Equal(t, float32(40), floatAt(buf, 80))
	assert.Equal(t, float32(40), floatAt(buf, 84))
	assert.Equal(t, float32(0), floatAt(buf, 88))
	assert.Equal(t, float32(0), floatAt(buf, 92))
}

func TestNewProvider(t *testing.T) {
	b := &fakeBinder{}
	p, err := NewProvider(b, "tree", pipeline.KeyLit, pipeline.GroupObject)
	require.NoError(t, err)
	assert.Equal(t, "tree", p.Label())
	assert.Equal(t, []bindCall{{"tree", pipeline.KeyLit, pipeline.GroupObject}}, b.calls)

	_, err = NewProvider(&fakeBinder{err: errors.New("out of memory")}, "tree", pipeline.KeyLit, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init tree uniform")
}

func TestGlobalsUpdate(t *testing.T) {
	b := &fakeBinder{}
	g, err := NewGlobals(b, DefaultLightDirection)
	require.NoError(t, err)
	assert.Equal(t, []bindCall{{"globals", pipeline.KeyLit, pipeline.GroupGlobals}}, b.calls)

	var id common.Mat4
	common.Identity(&id)
	assert.Equal(t, [16]float32(id), g.Data().ViewProj)

	var vp common.Mat4
	common.Translate(&vp, common.Vec3{1, 2, 3})
	w := g.Update(vp)

	assert.Equal(t, g.Provider(), w.Provider)
	assert.Equal(t, 0, w.Binding)
	assert.Equal(t, uint64(0), w.Offset)
	require.Len(t, w.Data, 80)
	assert.Equal(t, float32(2), floatAt(w.Data, 13*4))
	assert.Equal(t, float32(0.85), floatAt(w.Data, 68))
	assert.Equal(t, [16]float32(vp), g.Data().ViewProj)
}

func TestNewGlobalsPropagatesBinderError(t *testing.T) {
	_, err := NewGlobals(&fakeBinder{err: errors.New("no pipeline")}, DefaultLightDirection)
	assert.ErrorContains(t, err, "no pipeline")
}
