package main

import (
	"flag"
	"log"
	"time"

	"github.com/hubastard/fractalgrove/engine/colors"
	"github.com/hubastard/fractalgrove/engine/core"
	glbackend "github.com/hubastard/fractalgrove/engine/gfx/gl"
	"github.com/hubastard/fractalgrove/engine/platform"
	"github.com/hubastard/fractalgrove/engine/profiler"
	"github.com/hubastard/fractalgrove/engine/text"
)

type App struct {
	opts       appOptions
	overlay    *text.Overlay
	fractal    *LayerFractal
	debugLayer *LayerDebug
	lastFrame  time.Time
	tick       int
}

type appOptions struct {
	power    float64
	workers  int
	fontPath string
	fontSize float64
	shotDir  string
	hud      bool
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 16)

	face := text.MonoFace(a.opts.fontSize)
	if a.opts.fontPath != "" {
		f, err := text.LoadFace(a.opts.fontPath, a.opts.fontSize)
		if err != nil {
			log.Printf("font: %v, using built-in face", err)
		} else {
			face = f
		}
	}
	a.overlay = text.NewOverlay(e.Renderer, face)

	a.fractal = &LayerFractal{
		overlay: a.overlay,
		power:   a.opts.power,
		workers: a.opts.workers,
		shotDir: a.opts.shotDir,
	}
	e.PushLayer(a.fractal)

	a.debugLayer = &LayerDebug{overlay: a.overlay, fractal: a.fractal, visible: a.opts.hud}
	e.PushLayer(a.debugLayer)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.tick++
}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	now := time.Now()
	if !a.lastFrame.IsZero() {
		a.debugLayer.frameDuration = now.Sub(a.lastFrame)
		a.debugLayer.tick = a.tick
	}
	a.lastFrame = now
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {}
func (a *App) OnShutdown(e *core.Engine)             {}

func main() {
	var (
		cfg = core.Config{
			Title:      "fractalgrove",
			ClearColor: colors.DarkGray,
		}
		opts appOptions
	)
	flag.IntVar(&cfg.Width, "width", 1280, "window width")
	flag.IntVar(&cfg.Height, "height", 720, "window height")
	flag.BoolVar(&cfg.VSync, "vsync", true, "wait for vertical sync")
	flag.Float64Var(&opts.power, "power", 2, "starting exponent")
	flag.IntVar(&opts.workers, "workers", 0, "render goroutines (0 = GOMAXPROCS)")
	flag.StringVar(&opts.fontPath, "font", "", "TTF/OTF file for the HUD (default Go Mono)")
	flag.Float64Var(&opts.fontSize, "font-size", 14, "HUD font size in pixels (0 = 7x13 bitmap)")
	flag.StringVar(&opts.shotDir, "shots", ".", "directory for S snapshots")
	flag.BoolVar(&opts.hud, "hud", true, "show the info overlay (toggle with H)")
	flag.Parse()

	app := &App{opts: opts}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(app, cfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
