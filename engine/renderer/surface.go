package renderer

import "github.com/cogentcore/webgpu/wgpu"

// SurfaceConfig is the pixel format and alpha mode a presentation surface is configured with.
type SurfaceConfig struct {
	Format    wgpu.TextureFormat
	AlphaMode wgpu.CompositeAlphaMode
}

// surfaceCandidates lists the configurations to try, in order: every format opaque first, then every
// format premultiplied. The preferred format is whatever the surface reports first.
func surfaceCandidates(preferred wgpu.TextureFormat) []SurfaceConfig {
	formats := []wgpu.TextureFormat{preferred, wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatRGBA8Unorm}
	alphaModes := []wgpu.CompositeAlphaMode{wgpu.CompositeAlphaModeOpaque, wgpu.CompositeAlphaModePremultiplied}

	candidates := make([]SurfaceConfig, 0, len(formats)*len(alphaModes))
	for _, alpha := range alphaModes {
		for _, format := range formats {
			candidates = append(candidates, SurfaceConfig{Format: format, AlphaMode: alpha})
		}
	}
	return candidates
}

// SelectSurfaceConfig picks the first candidate configuration the surface supports.
// When no candidate is supported it falls back to the surface's first reported format and alpha mode
// and reports ok = false so the caller can warn.
//
// Parameters:
//   - formats: the formats the surface supports, preferred first
//   - alphaModes: the alpha modes the surface supports
//
// Returns:
//   - SurfaceConfig: the configuration to use
//   - bool: false if the candidate list was exhausted
func SelectSurfaceConfig(formats []wgpu.TextureFormat, alphaModes []wgpu.CompositeAlphaMode) (SurfaceConfig, bool) {
	if len(formats) == 0 || len(alphaModes) == 0 {
		return SurfaceConfig{}, false
	}

	for _, c := range surfaceCandidates(formats[0]) {
		if contains(formats, c.Format) && contains(alphaModes, c.AlphaMode) {
			return c, true
		}
	}
	return SurfaceConfig{Format: formats[0], AlphaMode: alphaModes[0]}, false
}

func contains[T comparable](values []T, v T) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
