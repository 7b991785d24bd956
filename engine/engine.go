package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-meadow/engine/camera"
	"github.com/Carmen-Shannon/oxy-meadow/engine/character"
	"github.com/Carmen-Shannon/oxy-meadow/engine/input"
	"github.com/Carmen-Shannon/oxy-meadow/engine/profiler"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/uniform"
	"github.com/Carmen-Shannon/oxy-meadow/engine/scene"
	"github.com/Carmen-Shannon/oxy-meadow/engine/window"
	"go.uber.org/zap"
)

// MaxFrameTime is the longest step a single frame may integrate, in seconds.
const MaxFrameTime = 0.05

// skyVertexCount is the number of generated vertices of the fullscreen sky triangle.
const skyVertexCount = 3

// HUD receives the heads-up text once per profiler window. window.Window satisfies it.
type HUD interface {
	// SetTitle replaces the displayed text.
	//
	// Parameters:
	//   - title: the new text
	SetTitle(title string)
}

// FrameContext holds every collaborator the frame loop touches. Nothing the loop reads or writes
// lives outside it.
type FrameContext struct {
	Renderer  renderer.Renderer
	Scene     scene.Scene
	Character character.Character
	Camera    camera.Camera
	Input     input.Input
	Globals   *uniform.Globals
}

// validate reports every missing collaborator at once.
func (fc FrameContext) validate() error {
	var errs []error
	if fc.Renderer == nil {
		errs = append(errs, errors.New("renderer is nil"))
	}
	if fc.Scene == nil {
		errs = append(errs, errors.New("scene is nil"))
	} else if fc.Scene.Hero() == nil {
		errs = append(errs, errors.New("scene has no hero"))
	}
	if fc.Character == nil {
		errs = append(errs, errors.New("character is nil"))
	}
	if fc.Camera == nil {
		errs = append(errs, errors.New("camera is nil"))
	}
	if fc.Input == nil {
		errs = append(errs, errors.New("input is nil"))
	}
	if fc.Globals == nil {
		errs = append(errs, errors.New("globals are nil"))
	}
	if fc.Renderer != nil {
		for _, key := range []string{pipeline.KeySky, pipeline.KeyLit} {
			if fc.Renderer.Pipeline(key) == nil {
				errs = append(errs, fmt.Errorf("pipeline %q is not registered", key))
			}
		}
	}
	return errors.Join(errs...)
}

// engine implements the Engine interface.
// A single loop on the window's thread performs the whole frame sequence.
type engine struct {
	ctx FrameContext

	window   window.Window
	hud      HUD
	profiler *profiler.Profiler
	logger   *zap.Logger
	clock    func() time.Time

	frameLimit time.Duration // minimum frame duration; 0 = uncapped

	lastFrame time.Time
	writes    []bind_group_provider.BufferWrite

	quitOnce sync.Once
}

// Engine is the frame orchestrator. It steps the simulation and records the frame's GPU commands in
// a fixed order: uniform writes, sky, lit geometry (ground, props, hero), submit, present.
type Engine interface {
	// Context returns the collaborators the engine drives.
	//
	// Returns:
	//   - FrameContext: the frame context
	Context() FrameContext

	// Frame runs one complete frame: input, physics, camera, uniform writes and command submission.
	// A frame whose surface texture cannot be acquired is skipped after the simulation step.
	//
	// Parameters:
	//   - dt: the time since the previous frame in seconds, clamped to MaxFrameTime
	//
	// Returns:
	//   - bool: true if the frame was submitted and presented
	Frame(dt float32) bool

	// Run wires the window's input and resize events and runs the frame loop on the window's
	// message pump until the window closes.
	//
	// Returns:
	//   - error: an error if the engine has no window
	Run() error

	// Quit closes the window, ending Run. Safe to call multiple times.
	Quit()
}

// NewEngine creates an Engine for ctx with the provided options.
// Every collaborator of ctx must be set and both the sky and lit pipelines registered.
//
// Parameters:
//   - ctx: the collaborators the frame loop drives
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error naming every missing collaborator
func NewEngine(ctx FrameContext, options ...EngineBuilderOption) (Engine, error) {
	return newEngine(ctx, options...)
}

func newEngine(ctx FrameContext, options ...EngineBuilderOption) (*engine, error) {
	if err := ctx.validate(); err != nil {
		return nil, fmt.Errorf("invalid frame context: %w", err)
	}

	e := &engine{
		ctx:    ctx,
		logger: zap.NewNop(),
		clock:  time.Now,
		writes: make([]bind_group_provider.BufferWrite, 0, 2),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(e.logger, profiler.DefaultWindow)
	}
	if e.hud == nil && e.window != nil {
		e.hud = e.window
	}
	return e, nil
}

// ClampFrameTime limits dt to [0, MaxFrameTime].
//
// Parameters:
//   - dt: the measured frame time in seconds
//
// Returns:
//   - float32: the step the simulation integrates
func ClampFrameTime(dt float32) float32 {
	return min(max(dt, 0), MaxFrameTime)
}

func (e *engine) Context() FrameContext {
	return e.ctx
}

func (e *engine) Frame(dt float32) bool {
	dt = ClampFrameTime(dt)
	fc := e.ctx

	fc.Input.Poll()
	moveX, moveY := fc.Input.Movement()
	yaw, pitch := fc.Input.Camera()

	fc.Character.Update(dt, moveX, moveY, yaw)

	width, height := fc.Renderer.SurfaceSize()
	fc.Camera.Update(float32(width)/float32(max(height, 1)), fc.Character.Position(), yaw, pitch)

	e.writes = append(e.writes[:0], fc.Globals.Update(fc.Camera.ViewProjectionMatrix()))
	hero := fc.Scene.Hero()
	hero.SetPosition(fc.Character.Position())
	hero.SetYaw(fc.Character.Yaw())
	if w, ok := hero.BufferWrite(); ok {
		e.writes = append(e.writes, w)
	}
	fc.Renderer.WriteBuffers(e.writes)

	if e.profiler.Tick(dt) && e.hud != nil {
		format := renderer.FormatName(fc.Renderer.SurfaceFormat())
		e.hud.SetTitle(profiler.HUDText(format, width, height, e.profiler.FPS()))
	}

	if err := fc.Renderer.BeginFrame(); err != nil {
		e.logger.Debug("frame skipped", zap.Error(err))
		return false
	}

	if err := e.encode(); err != nil {
		e.logger.Error("encode frame", zap.Error(err))
	}

	if err := fc.Renderer.EndFrame(); err != nil {
		e.logger.Debug("frame dropped", zap.Error(err))
		return false
	}
	fc.Renderer.Present()
	return true
}

// encode records the sky pass then the lit pass into the open render pass.
func (e *engine) encode() error {
	r := e.ctx.Renderer

	if err := r.SetPipeline(pipeline.KeySky); err != nil {
		return err
	}
	r.Draw(skyVertexCount)

	if err := r.SetPipeline(pipeline.KeyLit); err != nil {
		return err
	}
	r.SetBindGroup(pipeline.GroupGlobals, e.ctx.Globals.Provider())
	for _, obj := range e.ctx.Scene.Drawables() {
		if obj.Mesh() == nil || obj.Uniform() == nil {
			continue
		}
		r.SetBindGroup(pipeline.GroupObject, obj.Uniform())
		r.DrawMesh(obj.Mesh())
	}
	return nil
}

func (e *engine) Run() error {
	if e.window == nil {
		return errors.New("engine has no window")
	}
	w := e.window
	in := e.ctx.Input

	w.SetKeyDownCallback(in.KeyDown)
	w.SetKeyUpCallback(in.KeyUp)
	w.SetMouseMoveCallback(in.MouseMove)
	w.SetMouseButtonCallback(func(button int, pressed bool, x, y float32) {
		if pressed {
			in.MouseDown(button, x, y)
			return
		}
		in.MouseUp(button)
	})
	w.SetResizeCallback(e.resize)

	e.resize(w.SurfaceSize())

	e.lastFrame = e.clock()
	w.SetUpdateCallback(e.step)

	e.logger.Info("frame loop started",
		zap.Duration("frame_limit", e.frameLimit),
		zap.Int("drawables", e.ctx.Scene.Count()),
	)
	w.ProcessMessages()
	e.logger.Info("frame loop stopped")
	return nil
}

// step measures the time since the previous frame, runs the frame and applies the frame limit.
func (e *engine) step() {
	start := e.clock()
	dt := float32(start.Sub(e.lastFrame).Seconds())
	e.lastFrame = start

	e.Frame(dt)

	if e.frameLimit > 0 {
		if remaining := e.frameLimit - e.clock().Sub(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// resize reconfigures the surface. A failure leaves the previous configuration in place.
func (e *engine) resize(width, height int) {
	if err := e.ctx.Renderer.Resize(width, height); err != nil {
		e.logger.Warn("resize surface",
			zap.Int("width", width),
			zap.Int("height", height),
			zap.Error(err),
		)
	}
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if e.window == nil {
			return
		}
		if err := e.window.Close(); err != nil {
			e.logger.Warn("close window", zap.Error(err))
		}
	})
}
