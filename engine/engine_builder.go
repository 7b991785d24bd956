package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-meadow/engine/profiler"
	"github.com/Carmen-Shannon/oxy-meadow/engine/window"
	"go.uber.org/zap"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithWindow sets the window whose message pump drives Run. The window also becomes the HUD
// unless WithHUD is applied.
//
// Parameters:
//   - w: an open Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithHUD sets the sink for the heads-up text.
//
// Parameters:
//   - hud: the HUD sink
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithHUD(hud HUD) EngineBuilderOption {
	return func(e *engine) {
		e.hud = hud
	}
}

// WithLogger sets the engine logger. A nil logger keeps the no-op default.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithProfiler replaces the default FPS profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithClock sets the time source used to measure frame time.
func WithClock(clock func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to leave pacing to the present mode (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.frameLimit = 0
			return
		}
		e.frameLimit = time.Duration(float64(time.Second) / fps)
	}
}
