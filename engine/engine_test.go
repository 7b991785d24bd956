package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-meadow/assets"
	"github.com/Carmen-Shannon/oxy-meadow/common"
	"github.com/Carmen-Shannon/oxy-meadow/engine/camera"
	"github.com/Carmen-Shannon/oxy-meadow/engine/character"
	"github.com/Carmen-Shannon/oxy-meadow/engine/input"
	"github.com/Carmen-Shannon/oxy-meadow/engine/profiler"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/uniform"
	"github.com/Carmen-Shannon/oxy-meadow/engine/scene"
	"github.com/Carmen-Shannon/oxy-meadow/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestContext(t *testing.T) (FrameContext, *renderertest.Recorder) {
	t.Helper()
	sky, err := shader.NewShaderFromFS(pipeline.KeySky, assets.Shaders, assets.SkyShaderPath)
	require.NoError(t, err)
	lit, err := shader.NewShaderFromFS(pipeline.KeyLit, assets.Shaders, assets.LitShaderPath)
	require.NoError(t, err)

	r := renderertest.NewRecorder(1280, 720)
	require.NoError(t, r.RegisterPipelines(pipeline.NewSkyPipeline(sky), pipeline.NewLitPipeline(lit, false)))

	globals, err := uniform.NewGlobals(r, uniform.DefaultLightDirection)
	require.NoError(t, err)

	c := character.NewCharacter()
	s, err := scene.BuildOutdoor(r, c.Position())
	require.NoError(t, err)

	r.Reset()
	return FrameContext{
		Renderer:  r,
		Scene:     s,
		Character: c,
		Camera:    camera.NewCamera(),
		Input:     input.NewInput(),
		Globals:   globals,
	}, r
}

func ops(cmds []renderertest.Command) []renderertest.Op {
	out := make([]renderertest.Op, len(cmds))
	for i, c := range cmds {
		out[i] = c.Op
	}
	return out
}

type titleRecorder struct {
	titles []string
}

func (h *titleRecorder) SetTitle(title string) {
	h.titles = append(h.titles, title)
}

func TestNewEngineRejectsIncompleteContext(t *testing.T) {
	_, err := NewEngine(FrameContext{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "renderer is nil")
	assert.ErrorContains(t, err, "scene is nil")
	assert.ErrorContains(t, err, "globals are nil")
}

func TestNewEngineRequiresSkyPipeline(t *testing.T) {
	lit, err := shader.NewShaderFromFS(pipeline.KeyLit, assets.Shaders, assets.LitShaderPath)
	require.NoError(t, err)
	r := renderertest.NewRecorder(640, 480)
	require.NoError(t, r.RegisterPipelines(pipeline.NewLitPipeline(lit, false)))
	globals, err := uniform.NewGlobals(r, uniform.DefaultLightDirection)
	require.NoError(t, err)
	s, err := scene.BuildOutdoor(r, common.Vec3{0, 1, 0})
	require.NoError(t, err)

	_, err = NewEngine(FrameContext{
		Renderer:  r,
		Scene:     s,
		Character: character.NewCharacter(),
		Camera:    camera.NewCamera(),
		Input:     input.NewInput(),
		Globals:   globals,
	})
	assert.ErrorContains(t, err, `pipeline "sky" is not registered`)
}

func TestClampFrameTime(t *testing.T) {
	assert.Equal(t, float32(0.016), ClampFrameTime(0.016))
	assert.Equal(t, float32(MaxFrameTime), ClampFrameTime(1))
	assert.Equal(t, float32(0), ClampFrameTime(-0.5))
}

func TestFrameSubmitsInDrawOrder(t *testing.T) {
	fc, r := newTestContext(t)
	e, err := NewEngine(fc)
	require.NoError(t, err)

	require.True(t, e.Frame(0.016))

	cmds := r.Commands()
	drawables := fc.Scene.Drawables()
	require.Len(t, drawables, 20)
	require.Len(t, cmds, 8+2*len(drawables))

	assert.Equal(t, renderertest.Command{Op: renderertest.OpWriteBuffers, Count: 2}, cmds[0])
	assert.Equal(t, renderertest.Command{Op: renderertest.OpBeginFrame}, cmds[1])
	assert.Equal(t, renderertest.Command{Op: renderertest.OpSetPipeline, Key: pipeline.KeySky}, cmds[2])
	assert.Equal(t, renderertest.Command{Op: renderertest.OpDraw, Count: 3}, cmds[3])
	assert.Equal(t, renderertest.Command{Op: renderertest.OpSetPipeline, Key: pipeline.KeyLit}, cmds[4])
	assert.Equal(t, renderertest.Command{Op: renderertest.OpSetBindGroup, Group: pipeline.GroupGlobals, Label: "globals"}, cmds[5])

	for i, d := range drawables {
		bind, draw := cmds[6+2*i], cmds[7+2*i]
		assert.Equal(t, renderertest.Command{Op: renderertest.OpSetBindGroup, Group: pipeline.GroupObject, Label: d.Uniform().Label()}, bind)
		assert.Equal(t, renderertest.OpDrawMesh, draw.Op)
		assert.Equal(t, d.Mesh().Label(), draw.Label)
	}
	assert.Equal(t, fc.Scene.Ground().Uniform().Label(), cmds[6].Label)
	assert.Equal(t, fc.Scene.Hero().Uniform().Label(), cmds[len(cmds)-4].Label)
	assert.Equal(t, uint32(36), cmds[len(cmds)-3].Count)

	assert.Equal(t, renderertest.OpEndFrame, cmds[len(cmds)-2].Op)
	assert.Equal(t, renderertest.OpPresent, cmds[len(cmds)-1].Op)
}

func TestFrameBindsGlobalsOnce(t *testing.T) {
	fc, r := newTestContext(t)
	e, err := NewEngine(fc)
	require.NoError(t, err)
	require.True(t, e.Frame(0.016))

	globals := 0
	for _, c := range r.Commands() {
		if c.Op == renderertest.OpSetBindGroup && c.Group == pipeline.GroupGlobals {
			globals++
		}
	}
	assert.Equal(t, 1, globals)
}

func TestFrameWritesUniformsBeforeBeginFrame(t *testing.T) {
	fc, r := newTestContext(t)
	e, err := NewEngine(fc)
	require.NoError(t, err)

	fc.Input.KeyDown(common.KeyW)
	require.True(t, e.Frame(0.016))

	writes := r.Writes()
	require.Len(t, writes, 2)
	assert.Equal(t, "globals", writes[0].Label)
	globals := fc.Globals.Data()
	assert.Equal(t, globals.Marshal(), writes[0].Data)
	assert.Equal(t, fc.Camera.ViewProjectionMatrix(), globals.ViewProj)
	assert.Equal(t, uniform.DefaultLightDirection, globals.LightDir)

	hero := fc.Scene.Hero()
	assert.Equal(t, hero.Uniform().Label(), writes[1].Label)
	heroData := hero.UniformData()
	assert.Equal(t, heroData.Marshal(), writes[1].Data)

	cmds := r.Commands()
	assert.Equal(t, []renderertest.Op{renderertest.OpWriteBuffers, renderertest.OpBeginFrame}, ops(cmds[:2]))
}

func TestFrameMovesHeroWithCharacter(t *testing.T) {
	fc, _ := newTestContext(t)
	e, err := NewEngine(fc)
	require.NoError(t, err)

	fc.Input.KeyDown(common.KeyD)
	for i := 0; i < 10; i++ {
		e.Frame(0.016)
	}

	hero := fc.Scene.Hero()
	assert.Equal(t, fc.Character.Position(), hero.Position())
	assert.Equal(t, fc.Character.Yaw(), hero.Yaw())
	assert.Greater(t, hero.Position()[0], float32(0))

	// The camera follows the character it was just stepped with.
	target := fc.Camera.Target()
	assert.InDelta(t, fc.Character.Position()[0], target[0], 1e-5)
	assert.InDelta(t, fc.Character.Position()[1]+fc.Camera.HeightOffset(), target[1], 1e-5)
}

func TestFrameClampsLongFrames(t *testing.T) {
	fc, _ := newTestContext(t)
	e, err := NewEngine(fc)
	require.NoError(t, err)

	reference := character.NewCharacter()
	reference.TryJump()
	reference.Update(MaxFrameTime, 0, 0, 0)

	fc.Character.TryJump()
	e.Frame(2)

	assert.Equal(t, reference.Position(), fc.Character.Position())
	assert.Equal(t, reference.Velocity(), fc.Character.Velocity())
}

func TestFrameSkippedWhenSurfaceUnavailable(t *testing.T) {
	fc, r := newTestContext(t)
	core, logs := observer.New(zapcore.DebugLevel)
	e, err := NewEngine(fc, WithLogger(zap.New(core)))
	require.NoError(t, err)

	r.FailBeginFrame(errors.New("surface outdated"))
	fc.Input.KeyDown(common.KeyW)
	assert.False(t, e.Frame(0.016))

	// The simulation still advanced; nothing was encoded or presented.
	assert.Less(t, fc.Character.Position()[2], float32(0))
	assert.Equal(t, []renderertest.Op{renderertest.OpWriteBuffers}, ops(r.Commands()))

	skipped := logs.FilterMessage("frame skipped").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, zapcore.DebugLevel, skipped[0].Level)

	r.FailBeginFrame(nil)
	r.Reset()
	assert.True(t, e.Frame(0.016))
	assert.Equal(t, renderertest.OpPresent, r.Commands()[len(r.Commands())-1].Op)
}

func TestFrameSkipsDisabledDrawables(t *testing.T) {
	fc, r := newTestContext(t)
	e, err := NewEngine(fc)
	require.NoError(t, err)

	fc.Scene.Props()[0].SetEnabled(false)
	require.True(t, e.Frame(0.016))

	draws := 0
	for _, c := range r.Commands() {
		if c.Op == renderertest.OpDrawMesh {
			draws++
		}
	}
	assert.Equal(t, 19, draws)
}

func TestFrameUpdatesHUD(t *testing.T) {
	fc, r := newTestContext(t)
	hud := &titleRecorder{}
	e, err := NewEngine(fc, WithHUD(hud), WithProfiler(profiler.NewProfiler(nil, 0.1)))
	require.NoError(t, err)

	e.Frame(0.05)
	assert.Empty(t, hud.titles)
	e.Frame(0.05)
	require.Len(t, hud.titles, 1)

	format := renderer.FormatName(r.SurfaceFormat())
	assert.Equal(t, profiler.HUDText(format, 1280, 720, 20), hud.titles[0])
}

func TestWithFrameLimit(t *testing.T) {
	fc, _ := newTestContext(t)
	e, err := newEngine(fc, WithFrameLimit(50))
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, e.frameLimit)

	e, err = newEngine(fc, WithFrameLimit(0))
	require.NoError(t, err)
	assert.Zero(t, e.frameLimit)
}

func TestRunWithoutWindow(t *testing.T) {
	fc, _ := newTestContext(t)
	e, err := NewEngine(fc)
	require.NoError(t, err)
	assert.Error(t, e.Run())
}

// fakeWindow pumps a fixed number of updates, feeding scripted events before the first one.
type fakeWindow struct {
	frames  int
	width   int
	height  int
	title   string
	closed  int
	running bool

	onUpdate      func()
	onResize      func(width, height int)
	onKeyDown     func(keyCode uint32)
	onKeyUp       func(keyCode uint32)
	onMouseButton func(button int, pressed bool, x, y float32)
	onMouseMove   func(x, y float32)

	script func(w *fakeWindow)
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(cb func())                 { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.onResize = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(keyCode uint32))   { w.onKeyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(cb func(keyCode uint32))     { w.onKeyUp = cb }
func (w *fakeWindow) SetMouseButtonCallback(cb func(button int, pressed bool, x, y float32)) {
	w.onMouseButton = cb
}
func (w *fakeWindow) SetMouseMoveCallback(cb func(x, y float32))  { w.onMouseMove = cb }
func (w *fakeWindow) SetTitle(title string)                       { w.title = title }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) SurfaceSize() (int, int)                     { return w.width, w.height }
func (w *fakeWindow) IsRunning() bool                             { return w.running }
func (w *fakeWindow) Width() int                                  { return w.width }
func (w *fakeWindow) Height() int                                 { return w.height }

func (w *fakeWindow) Close() error {
	w.closed++
	w.running = false
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	if w.script != nil {
		w.script(w)
	}
	for i := 0; i < w.frames && w.running; i++ {
		w.onUpdate()
	}
}

func TestRunDrivesFramesFromWindow(t *testing.T) {
	fc, r := newTestContext(t)

	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(16 * time.Millisecond)
		return now
	}

	var jumps int
	fc.Input.SetJumpCallback(func() {
		jumps++
		fc.Character.TryJump()
	})

	w := &fakeWindow{
		frames:  3,
		width:   800,
		height:  600,
		running: true,
		script: func(w *fakeWindow) {
			w.onKeyDown(common.KeyW)
			w.onMouseButton(common.MouseButtonLeft, true, 100, 100)
			w.onMouseMove(150, 100)
			w.onMouseButton(common.MouseButtonLeft, false, 150, 100)
		},
	}
	e, err := NewEngine(fc, WithWindow(w), WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, e.Run())

	width, height := r.SurfaceSize()
	assert.Equal(t, 800, width)
	assert.Equal(t, 600, height)

	presents := 0
	for _, c := range r.Commands() {
		if c.Op == renderertest.OpPresent {
			presents++
		}
	}
	assert.Equal(t, 3, presents)

	yaw, _ := fc.Input.Camera()
	assert.InDelta(t, -50*0.006, yaw, 1e-5)
	assert.Zero(t, jumps)
	assert.NotEqual(t, common.Vec3{0, 1, 0}, fc.Character.Position())

	w.onResize(1024, 768)
	width, height = r.SurfaceSize()
	assert.Equal(t, 1024, width)
	assert.Equal(t, 768, height)

	e.Quit()
	e.Quit()
	assert.Equal(t, 1, w.closed)
}

func TestWindowIsDefaultHUD(t *testing.T) {
	fc, _ := newTestContext(t)
	w := &fakeWindow{running: true}
	e, err := newEngine(fc, WithWindow(w), WithProfiler(profiler.NewProfiler(nil, 0.01)))
	require.NoError(t, err)

	e.Frame(0.016)
	assert.Contains(t, w.title, "FPS")
}
