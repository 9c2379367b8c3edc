// Package game wires the window, renderer and stage together and runs the main loop.
package game

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/assets"
	"github.com/Faultbox/scenegraph/internal/config"
	"github.com/Faultbox/scenegraph/internal/engine/clock"
	"github.com/Faultbox/scenegraph/internal/engine/debug"
	"github.com/Faultbox/scenegraph/internal/engine/input"
	"github.com/Faultbox/scenegraph/internal/engine/renderer"
	"github.com/Faultbox/scenegraph/internal/engine/shader"
	"github.com/Faultbox/scenegraph/internal/engine/window"
	"github.com/Faultbox/scenegraph/internal/game/shaders"
	"github.com/Faultbox/scenegraph/internal/game/stage"
	"github.com/Faultbox/scenegraph/internal/logger"
)

var arrowKeys = map[sdl.Scancode]stage.Direction{
	sdl.SCANCODE_LEFT:  stage.DirLeft,
	sdl.SCANCODE_RIGHT: stage.DirRight,
	sdl.SCANCODE_UP:    stage.DirUp,
	sdl.SCANCODE_DOWN:  stage.DirDown,
}

// Game is the viewer instance.
type Game struct {
	config  *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	objectProgram *shader.Program
	skyProgram    *shader.Program

	assets  *assets.Manager
	watcher *assets.Watcher
	stage   *stage.Stage
	clock   *clock.FixedStep
	shots   *debug.Screenshotter

	screenshotPending bool
}

// New creates the window and GL context, compiles shaders and builds the stage.
func New(cfg *config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	g := &Game{
		config: cfg,
		log:    log,
		input:  input.New(),
		clock:  clock.NewFixedStep(cfg.Scene.TickInterval, clock.DefaultMaxSteps),
		shots:  debug.NewScreenshotter(cfg.Debug.ScreenshotDir, cfg.Debug.ScreenshotPrefix),
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer comes after the window: the GL context must exist.
	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: [4]float32{0, 0, 0, 1},
	}, logger.Named("renderer"))
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	shaderLog := logger.Named("shader")
	g.objectProgram, err = shader.New("object", shaders.ObjectVertex, shaders.ObjectFragment, shaderLog)
	if err != nil {
		g.Close()
		return nil, err
	}
	g.skyProgram, err = shader.New("skybox", shaders.SkyBoxVertex, shaders.SkyBoxFragment, shaderLog)
	if err != nil {
		g.Close()
		return nil, err
	}

	g.assets = assets.NewManager(cfg.Assets.Dirs, logger.Named("assets"))

	g.stage, err = stage.New(cfg, g.renderer.Device(), g.assets, logger.Named("stage"))
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to build stage: %w", err)
	}
	g.stage.Resize(width, height)

	if cfg.Assets.Watch {
		g.startWatcher()
	}

	log.Info("viewer initialized")
	return g, nil
}

// startWatcher watches the mesh file. Failures only disable hot reload.
func (g *Game) startWatcher() {
	name := g.config.Assets.Mesh
	if name == "" {
		return
	}
	path, err := g.assets.Resolve(name)
	if err != nil {
		g.log.Warn("mesh not found, hot reload disabled", zap.String("mesh", name), zap.Error(err))
		return
	}
	w, err := assets.NewWatcher(logger.Named("watch"))
	if err != nil {
		g.log.Warn("file watcher unavailable", zap.Error(err))
		return
	}
	if err := w.Watch(path); err != nil {
		g.log.Warn("cannot watch mesh", zap.String("path", path), zap.Error(err))
		w.Close()
		return
	}
	g.watcher = w
}

// Run starts the main loop and returns when the window is closed.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting main loop", zap.Duration("tick", g.clock.Period()))

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			g.handleEvent(event)
		}

		for range g.clock.Advance(dt) {
			g.stage.Tick()
		}

		if g.watcher != nil && len(g.watcher.Poll()) > 0 {
			g.log.Info("mesh changed on disk")
			g.reloadMesh()
		}

		g.stage.Render(g.renderer, g.skyProgram, g.objectProgram)

		if g.screenshotPending {
			g.screenshotPending = false
			g.screenshot()
		}

		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.window.SetTitle(fmt.Sprintf("%s - %d fps", g.config.Window.Title, frameCount))
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Uint64("ticks", g.clock.Ticks()), zap.Uint64("dropped", g.clock.Dropped()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvent(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		width, height := g.window.DrawableSize()
		g.renderer.Resize(width, height)
		g.stage.Resize(width, height)

	case input.EventKeyDown:
		if d, ok := arrowKeys[event.Key]; ok {
			g.stage.HandleKey(d)
			return
		}
		if event.Repeat {
			return
		}
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			g.running = false
		case sdl.SCANCODE_F12:
			g.screenshotPending = true
		case sdl.SCANCODE_R:
			g.reloadMesh()
		}

	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_LEFT {
			g.stage.PointerPress(float32(event.MouseX), float32(event.MouseY))
		}

	case input.EventMouseUp:
		if event.Button == sdl.BUTTON_LEFT {
			g.stage.PointerRelease()
		}

	case input.EventMouseMove:
		if event.LeftHeld {
			g.stage.PointerDrag(float32(event.MouseX), float32(event.MouseY))
		}

	case input.EventWheel:
		g.stage.Scroll(event.WheelY)
	}
}

// reloadMesh reads the mesh file again. On failure the current mesh stays.
func (g *Game) reloadMesh() {
	name := g.config.Assets.Mesh
	if name == "" {
		return
	}
	m, err := g.assets.LoadMesh(name)
	if err != nil {
		g.log.Warn("mesh reload failed, keeping current mesh", zap.String("mesh", name), zap.Error(err))
		return
	}
	if err := g.stage.ReplaceMesh(m); err != nil {
		g.log.Warn("mesh rejected, keeping current mesh", zap.String("mesh", name), zap.Error(err))
	}
}

func (g *Game) screenshot() {
	pixels, width, height := g.renderer.ReadPixels()
	if pixels == nil {
		return
	}
	path, err := g.shots.SavePixels(pixels, width, height)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases resources in reverse creation order.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("closing file watcher", zap.Error(err))
		}
		g.watcher = nil
	}
	if g.stage != nil {
		g.stage.Close()
		g.stage = nil
	}
	if g.assets != nil {
		hits, misses := g.assets.CacheStats()
		g.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		g.assets.Close()
		g.assets = nil
	}
	if g.skyProgram != nil {
		g.skyProgram.Delete()
		g.skyProgram = nil
	}
	if g.objectProgram != nil {
		g.objectProgram.Delete()
		g.objectProgram = nil
	}
	if g.renderer != nil {
		g.renderer.Close()
		g.renderer = nil
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
}
