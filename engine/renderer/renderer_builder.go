package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithDepthBuffer attaches a Depth24Plus buffer to the main pass. Off by default: without it the
// submission order of draws is the only occlusion.
//
// Parameters:
//   - enabled: true to create the depth attachment
//
// Returns:
//   - RendererBuilderOption: a function that applies the depth option to a renderer
func WithDepthBuffer(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.depth = enabled
	}
}

// WithClearColor sets the colour the main pass clears to.
func WithClearColor(c wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithLogger sets the logger used for device and surface milestones.
func WithLogger(logger *zap.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.logger = logger
	}
}
