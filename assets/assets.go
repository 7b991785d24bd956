// Package assets embeds the default WGSL programs so the binary runs without a shader directory.
package assets

import "embed"

// Shaders holds shaders/sky.wgsl and shaders/lit.wgsl.
//
//go:embed shaders/*.wgsl
var Shaders embed.FS

const (
	// SkyShaderPath is the embedded path of the sky program.
	SkyShaderPath = "shaders/sky.wgsl"
	// LitShaderPath is the embedded path of the lit program.
	LitShaderPath = "shaders/lit.wgsl"
)
