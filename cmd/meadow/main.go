package main

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-meadow/assets"
	"github.com/Carmen-Shannon/oxy-meadow/engine"
	"github.com/Carmen-Shannon/oxy-meadow/engine/camera"
	"github.com/Carmen-Shannon/oxy-meadow/engine/character"
	"github.com/Carmen-Shannon/oxy-meadow/engine/input"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/uniform"
	"github.com/Carmen-Shannon/oxy-meadow/engine/scene"
	"github.com/Carmen-Shannon/oxy-meadow/engine/window"
	"github.com/Carmen-Shannon/oxy-meadow/internal/config"
	"github.com/Carmen-Shannon/oxy-meadow/internal/logger"
	"go.uber.org/zap"
)

func main() {
	// ── Config + Logger ─────────────────────────────────────────────────
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Graphics.Title),
		window.WithSize(cfg.Graphics.Width, cfg.Graphics.Height),
	)
	if err != nil {
		log.Fatal("create window", zap.Error(err))
	}
	defer func() { _ = win.Close() }()

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeVSync
	if !cfg.Graphics.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(cfg.Graphics.ForceSoftware),
		renderer.WithDepthBuffer(cfg.Graphics.DepthBuffer),
		renderer.WithLogger(log),
	)
	if err != nil {
		log.Fatal("create renderer", zap.Error(err))
	}
	defer r.Release()

	// ── Shaders + Pipelines ─────────────────────────────────────────────
	shaders, err := shader.LoadShaders(log, 0,
		shaderSource(pipeline.KeySky, cfg.Shaders.Sky, assets.SkyShaderPath),
		shaderSource(pipeline.KeyLit, cfg.Shaders.Lit, assets.LitShaderPath),
	)
	if err != nil {
		log.Fatal("load shaders", zap.Error(err))
	}
	if err := r.RegisterPipelines(
		pipeline.NewSkyPipeline(shaders[pipeline.KeySky]),
		pipeline.NewLitPipeline(shaders[pipeline.KeyLit], cfg.Graphics.DepthBuffer),
	); err != nil {
		log.Fatal("register pipelines", zap.Error(err))
	}

	globals, err := uniform.NewGlobals(r, uniform.DefaultLightDirection)
	if err != nil {
		log.Fatal("create globals", zap.Error(err))
	}

	// ── Simulation ──────────────────────────────────────────────────────
	hero := character.NewCharacter(cfg.CharacterOptions()...)

	meadow, err := scene.BuildOutdoor(r, hero.Position(), scene.WithLogger(log))
	if err != nil {
		log.Fatal("build scene", zap.Error(err))
	}
	defer meadow.Release()

	cam := camera.NewCamera(
		camera.WithFov(cfg.Camera.FovDegrees),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
		camera.WithDistance(cfg.Camera.Distance),
		camera.WithHeightOffset(cfg.Camera.HeightOffset),
	)

	controls := input.NewInput(input.WithLookSensitivity(cfg.Camera.LookSensitivity))
	controls.SetJumpCallback(hero.TryJump)

	// ── Engine ──────────────────────────────────────────────────────────
	eng, err := engine.NewEngine(engine.FrameContext{
		Renderer:  r,
		Scene:     meadow,
		Character: hero,
		Camera:    cam,
		Input:     controls,
		Globals:   globals,
	},
		engine.WithWindow(win),
		engine.WithLogger(log),
		engine.WithFrameLimit(cfg.Graphics.FPSLimit),
	)
	if err != nil {
		log.Fatal("create engine", zap.Error(err))
	}

	if err := eng.Run(); err != nil {
		log.Fatal("run", zap.Error(err))
	}
}

// shaderSource reads path when it is set and the embedded program otherwise.
func shaderSource(key, path, embedded string) shader.Source {
	if path != "" {
		return shader.Source{Key: key, Path: path}
	}
	return shader.Source{Key: key, FS: assets.Shaders, Name: embedded}
}
