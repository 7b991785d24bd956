package uniform

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-meadow/common"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/pipeline"
)

// DefaultLightDirection is the fixed direction toward the sun.
var DefaultLightDirection = [4]float32{0.45, 0.85, 0.35, 0}

// Binder creates the uniform buffer and bind group for one bind group of a registered pipeline.
// Renderer satisfies it.
type Binder interface {
	// InitBindGroup creates the buffers and bind group for group of the pipeline registered under
	// pipelineKey and stores them on provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider that will own the resources
	//   - pipelineKey: the key of a registered pipeline
	//   - group: the bind group index
	//
	// Returns:
	//   - error: an error if the pipeline is unknown or resource creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error
}

// NewProvider creates a provider with a uniform buffer and bind group for one group of a pipeline.
// This happens once per uniform owner at scene build.
//
// Parameters:
//   - b: the Binder that creates the GPU resources
//   - label: a debug label
//   - pipelineKey: the key of the pipeline whose layout the bind group follows
//   - group: the bind group index
//
// Returns:
//   - bind_group_provider.BindGroupProvider: the initialized provider
//   - error: an error if the bind group cannot be created
func NewProvider(b Binder, label, pipelineKey string, group int) (bind_group_provider.BindGroupProvider, error) {
	provider := bind_group_provider.NewBindGroupProvider(label)
	if err := b.InitBindGroup(provider, pipelineKey, group); err != nil {
		return nil, fmt.Errorf("init %s uniform: %w", label, err)
	}
	return provider, nil
}

// Globals owns the frame-wide uniform: one buffer, one bind group, shared by every lit draw.
type Globals struct {
	provider bind_group_provider.BindGroupProvider
	data     GPUGlobalUniform
}

// NewGlobals creates the global uniform bound at the lit pipeline's group 0.
//
// Parameters:
//   - b: the Binder that creates the GPU resources
//   - lightDir: the fixed light direction (w unused)
//
// Returns:
//   - *Globals: the global uniform owner
//   - error: an error if the bind group cannot be created
func NewGlobals(b Binder, lightDir [4]float32) (*Globals, error) {
	provider, err := NewProvider(b, "globals", pipeline.KeyLit, pipeline.GroupGlobals)
	if err != nil {
		return nil, err
	}
	g := &Globals{provider: provider}
	g.data.LightDir = lightDir
	common.Identity(&g.data.ViewProj)
	return g, nil
}

// Provider returns the bind group provider to bind at group 0.
func (g *Globals) Provider() bind_group_provider.BindGroupProvider {
	return g.provider
}

// Data returns the values most recently staged by Update.
func (g *Globals) Data() GPUGlobalUniform {
	return g.data
}

// Update stages a new view-projection matrix and returns the write that uploads it.
//
// Parameters:
//   - viewProj: the camera's view-projection matrix
//
// Returns:
//   - bind_group_provider.BufferWrite: the full-buffer write
func (g *Globals) Update(viewProj common.Mat4) bind_group_provider.BufferWrite {
	g.data.ViewProj = viewProj
	return bind_group_provider.WholeBufferWrite(g.provider, g.data.Marshal())
}
