package input

import "time"

// InputBuilderOption is a functional option for configuring an Input.
// Use the With* functions to create options.
type InputBuilderOption func(*inputImpl)

// WithLook sets the initial look angles. Pitch is clamped to the pitch limit.
//
// Parameters:
//   - yaw: initial yaw in radians
//   - pitch: initial pitch in radians
//
// Returns:
//   - InputBuilderOption: option function to apply
func WithLook(yaw, pitch float32) InputBuilderOption {
	return func(in *inputImpl) {
		in.yaw = yaw
		in.pitch = pitch
	}
}

// WithLookSensitivity sets the look rotation per pixel of mouse drag.
//
// Parameters:
//   - radiansPerPixel: the sensitivity
//
// Returns:
//   - InputBuilderOption: option function to apply
func WithLookSensitivity(radiansPerPixel float32) InputBuilderOption {
	return func(in *inputImpl) {
		in.lookSpeed = radiansPerPixel
	}
}

// WithPitchLimit sets the symmetric pitch clamp in radians.
func WithPitchLimit(limit float32) InputBuilderOption {
	return func(in *inputImpl) {
		in.pitchLimit = limit
	}
}

// WithDoubleClickWindow sets the longest gap between two presses that still counts as a double click.
func WithDoubleClickWindow(d time.Duration) InputBuilderOption {
	return func(in *inputImpl) {
		in.doubleClick = d
	}
}

// WithClock replaces the time source used for double-click detection.
//
// Parameters:
//   - clock: function returning the current time
//
// Returns:
//   - InputBuilderOption: option function to apply
func WithClock(clock func() time.Time) InputBuilderOption {
	return func(in *inputImpl) {
		in.clock = clock
	}
}
