package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// MaxPixelRatio caps the display scale applied to the presentation surface.
const MaxPixelRatio = 2

// CappedSurfaceSize converts a framebuffer size reported at the given content scale into the
// surface size to configure, re-scaling by min(scale, MaxPixelRatio) so very dense displays do not
// allocate oversized swapchains. Each dimension is at least 1.
//
// Parameters:
//   - fbWidth, fbHeight: framebuffer size in pixels
//   - scaleX, scaleY: the window content scale (device pixel ratio) per axis
//
// Returns:
//   - int, int: the surface width and height in pixels
func CappedSurfaceSize(fbWidth, fbHeight int, scaleX, scaleY float32) (int, int) {
	return cappedAxis(fbWidth, scaleX), cappedAxis(fbHeight, scaleY)
}

func cappedAxis(size int, scale float32) int {
	if scale <= 0 {
		scale = 1
	}
	out := size
	if scale > MaxPixelRatio {
		logical := float32(size) / scale
		out = int(logical * MaxPixelRatio)
	}
	return max(out, 1)
}
