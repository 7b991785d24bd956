package profiler

import (
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"
)

// DefaultWindow is the span of accumulated frame time each FPS figure covers.
const DefaultWindow = 0.5

// Profiler tracks frame rate from the clamped frame times the loop feeds it and reports memory
// statistics alongside every FPS update.
type Profiler struct {
	logger *zap.Logger

	window      float32
	frameCount  int
	accumulated float32
	fps         int

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a Profiler that recomputes FPS every window seconds of frame time.
// A non-positive window selects DefaultWindow; a nil logger disables the memory report.
//
// Parameters:
//   - logger: the logger for the periodic memory report
//   - window: the averaging window in seconds
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger *zap.Logger, window float32) *Profiler {
	if window <= 0 {
		window = DefaultWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{
		logger: logger,
		window: window,
	}
}

// Tick should be called once per frame with the frame's clamped dt.
//
// Parameters:
//   - dt: the frame time in seconds
//
// Returns:
//   - bool: true if the FPS figure was recomputed this tick
func (p *Profiler) Tick(dt float32) bool {
	p.frameCount++
	p.accumulated += dt
	if p.accumulated < p.window {
		return false
	}

	p.fps = int(math.Round(float64(float32(p.frameCount) / p.accumulated)))
	p.report()
	p.frameCount = 0
	p.accumulated = 0
	return true
}

// FPS returns the most recent frame-rate figure, 0 before the first window completes.
func (p *Profiler) FPS() int {
	return p.fps
}

// report logs heap usage, allocation rate and GC pauses since the previous report.
func (p *Profiler) report() {
	if !p.logger.Core().Enabled(zap.DebugLevel) {
		return
	}

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / float64(p.window)

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Debug("frame stats",
		zap.Int("fps", p.fps),
		zap.Float64("heap_mb", allocMB),
		zap.Float64("alloc_rate_mb_s", allocRateMB),
		zap.Uint32("gc", gcCount),
		zap.Uint64("gc_last_us", lastPauseUs),
		zap.Uint64("gc_max_us", maxPauseUs),
		zap.Float64("sys_mb", sysMB),
	)

	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}

// HUDText formats the heads-up line shown in the window title.
//
// Parameters:
//   - format: the surface format name
//   - width, height: the surface size in pixels
//   - fps: the current frame rate
//
// Returns:
//   - string: the HUD text
func HUDText(format string, width, height, fps int) string {
	return fmt.Sprintf("swap: %s • %d×%d • FPS %d", format, width, height, fps)
}
