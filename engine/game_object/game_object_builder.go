package game_object

import (
	"github.com/Carmen-Shannon/oxy-meadow/common"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/bind_group_provider"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithLabel sets the debug label of the GameObject.
func WithLabel(label string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.label = label
	}
}

// WithEnabled sets whether the GameObject is drawn.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithMesh sets the mesh provider drawn for this GameObject.
//
// Parameters:
//   - mesh: a provider initialised with vertex and index buffers
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the mesh
func WithMesh(mesh bind_group_provider.BindGroupProvider) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mesh = mesh
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - position: the translation
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(position common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = position
	}
}

// WithYaw sets the initial rotation about +Y in radians.
func WithYaw(yaw float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.yaw = yaw
	}
}

// WithScale sets the initial per-axis scale.
func WithScale(scale common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = scale
	}
}

// WithColor sets the RGBA tint. An alpha of 0 selects the procedural ground pattern.
//
// Parameters:
//   - color: the RGBA colour
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the colour
func WithColor(color [4]float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.color = color
	}
}

// WithUVScale sets the procedural pattern scale.
func WithUVScale(uvScale [2]float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.uvScale = uvScale
	}
}
