package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-meadow/common"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/uniform"
)

type gameObject struct {
	id      uint64
	label   string
	enabled atomic.Bool

	mesh    bind_group_provider.BindGroupProvider
	uniform bind_group_provider.BindGroupProvider

	position common.Vec3
	yaw      float32
	scale    common.Vec3
	color    [4]float32
	uvScale  [2]float32
}

// GameObject is a drawable: a shared mesh, its own object uniform and a transform.
// Its model matrix is T·Ry·S, so scale applies first and translation last.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Label returns the debug label, also used to name the object's uniform resources.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Enabled returns whether this object is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Mesh returns the provider holding the vertex and index buffers. Several objects may share one.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	Mesh() bind_group_provider.BindGroupProvider

	// Uniform returns the provider of the object's group 1 bind group, or nil before the scene binds it.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the object uniform provider
	Uniform() bind_group_provider.BindGroupProvider

	// Position returns the world-space translation.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// Yaw returns the rotation about +Y in radians.
	//
	// Returns:
	//   - float32: the yaw
	Yaw() float32

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - common.Vec3: the scale
	Scale() common.Vec3

	// Color returns the RGBA tint. An alpha of 0 selects the procedural ground pattern.
	//
	// Returns:
	//   - [4]float32: the colour
	Color() [4]float32

	// UVScale returns the procedural pattern scale.
	//
	// Returns:
	//   - [2]float32: the uv scale
	UVScale() [2]float32

	// ModelMatrix composes translate · rotateY · scale into a fresh matrix.
	//
	// Returns:
	//   - common.Mat4: the model matrix
	ModelMatrix() common.Mat4

	// UniformData returns the object uniform values for the current transform.
	//
	// Returns:
	//   - uniform.GPUObjectUniform: the uniform values
	UniformData() uniform.GPUObjectUniform

	// BufferWrite returns the full write of UniformData into the object's uniform buffer.
	//
	// Returns:
	//   - bind_group_provider.BufferWrite: the write
	//   - bool: false if the object has no uniform provider yet
	BufferWrite() (bind_group_provider.BufferWrite, bool)

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is drawn.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetUniform assigns the object's group 1 uniform provider.
	//
	// Parameters:
	//   - provider: the uniform provider
	SetUniform(provider bind_group_provider.BindGroupProvider)

	// SetPosition sets the world-space translation.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position common.Vec3)

	// SetYaw sets the rotation about +Y in radians.
	//
	// Parameters:
	//   - yaw: the new yaw
	SetYaw(yaw float32)

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - scale: the new scale
	SetScale(scale common.Vec3)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject with unit scale and white colour, then applies options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale:   common.Vec3{1, 1, 1},
		color:   [4]float32{1, 1, 1, 1},
		uvScale: [2]float32{1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Label() string {
	return g.label
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Mesh() bind_group_provider.BindGroupProvider {
	return g.mesh
}

func (g *gameObject) Uniform() bind_group_provider.BindGroupProvider {
	return g.uniform
}

func (g *gameObject) Position() common.Vec3 {
	return g.position
}

func (g *gameObject) Yaw() float32 {
	return g.yaw
}

func (g *gameObject) Scale() common.Vec3 {
	return g.scale
}

func (g *gameObject) Color() [4]float32 {
	return g.color
}

func (g *gameObject) UVScale() [2]float32 {
	return g.uvScale
}

func (g *gameObject) ModelMatrix() common.Mat4 {
	var t, r, s, tr, model common.Mat4
	common.Translate(&t, g.position)
	common.RotateY(&r, g.yaw)
	common.Scale(&s, g.scale[0], g.scale[1], g.scale[2])
	common.Mul4(&tr, &t, &r)
	common.Mul4(&model, &tr, &s)
	return model
}

func (g *gameObject) UniformData() uniform.GPUObjectUniform {
	return uniform.GPUObjectUniform{
		Model:   g.ModelMatrix(),
		Color:   g.color,
		UVScale: g.uvScale,
	}
}

func (g *gameObject) BufferWrite() (bind_group_provider.BufferWrite, bool) {
	if g.uniform == nil {
		return bind_group_provider.BufferWrite{}, false
	}
	data := g.UniformData()
	return bind_group_provider.WholeBufferWrite(g.uniform, data.Marshal()), true
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetUniform(provider bind_group_provider.BindGroupProvider) {
	g.uniform = provider
}

func (g *gameObject) SetPosition(position common.Vec3) {
	g.position = position
}

func (g *gameObject) SetYaw(yaw float32) {
	g.yaw = yaw
}

func (g *gameObject) SetScale(scale common.Vec3) {
	g.scale = scale
}
