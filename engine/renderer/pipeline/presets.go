package pipeline

import (
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// KeySky identifies the fullscreen background pipeline.
	KeySky = "sky"
	// KeyLit identifies the lit geometry pipeline.
	KeyLit = "lit"
)

const (
	// GroupGlobals is the lit pipeline's per-frame bind group.
	GroupGlobals = 0
	// GroupObject is the lit pipeline's per-drawable bind group.
	GroupObject = 1
)

// NewSkyPipeline describes the background pass: three generated vertices, no culling, no depth.
//
// Parameters:
//   - s: the sky program
//
// Returns:
//   - Pipeline: the sky pipeline description
func NewSkyPipeline(s shader.Shader) Pipeline {
	return NewPipeline(KeySky, WithShader(s), WithCullMode(wgpu.CullModeNone))
}

// NewLitPipeline describes the lit pass: counter-clockwise front faces with back faces culled.
// depth turns on the optional depth test; without it draw order alone decides visibility.
//
// Parameters:
//   - s: the lit program
//   - depth: true to test and write depth
//
// Returns:
//   - Pipeline: the lit pipeline description
func NewLitPipeline(s shader.Shader, depth bool) Pipeline {
	return NewPipeline(KeyLit,
		WithShader(s),
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCCW),
		WithDepth(depth),
	)
}
