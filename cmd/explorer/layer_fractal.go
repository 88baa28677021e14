package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/hubastard/fractalgrove/engine/assets"
	"github.com/hubastard/fractalgrove/engine/core"
	"github.com/hubastard/fractalgrove/engine/explorer"
	"github.com/hubastard/fractalgrove/engine/profiler"
	"github.com/hubastard/fractalgrove/engine/text"
)

// LayerFractal owns the explorer state for the current framebuffer size and
// presents it through the HUD overlay.
type LayerFractal struct {
	overlay *text.Overlay
	power   float64
	workers int
	shotDir string

	state *explorer.State
	ctrl  *explorer.Controller
	err   error // last draw error, logged once
}

func (l *LayerFractal) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	s, err := explorer.New(w, h,
		explorer.WithPower(l.power),
		explorer.WithWorkers(l.workers),
		explorer.WithClock(e.Clock),
	)
	if err != nil {
		// minimized at startup; the first resize creates it
		log.Printf("explorer: %v", err)
	}
	l.state = s
	l.ctrl = explorer.NewController(s)
}

func (l *LayerFractal) OnDetach(e *core.Engine) {
	explorer.Destroy(l.state)
}

func (l *LayerFractal) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerFractal) OnRender(e *core.Engine, alpha float64) {
	if l.state == nil {
		return
	}
	end := profiler.Start("LayerFractal.OnRender")
	defer end()

	err := l.state.Draw(l.overlay)
	if err != nil && (l.err == nil || err.Error() != l.err.Error()) {
		log.Printf("draw: %v", err)
	}
	l.err = err
}

func (l *LayerFractal) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventResize:
		l.resize(e, v.W, v.H)
		return false
	case core.EventKey:
		if !v.Down || v.Mods != core.ModNone {
			break
		}
		switch v.Key {
		case core.KeyEscape:
			e.Window.RequestClose()
			return true
		case core.KeyS:
			if path, err := l.saveSnapshot(); err != nil {
				log.Printf("snapshot: %v", err)
			} else {
				log.Printf("snapshot: %s", path)
			}
			return true
		}
	}
	if l.state == nil {
		return false
	}
	return l.ctrl.HandleEvent(e.Input, ev)
}

func (l *LayerFractal) resize(e *core.Engine, w, h int) {
	if w < 1 || h < 1 {
		return
	}
	if l.state == nil {
		l.OnAttach(e)
		return
	}
	if err := l.state.Resize(w, h); err != nil {
		log.Printf("resize %dx%d: %v", w, h, err)
	}
}

func (l *LayerFractal) saveSnapshot() (string, error) {
	if l.state == nil || l.state.Image() == nil {
		return "", fmt.Errorf("nothing rendered yet")
	}
	snap := l.state.Snapshot()
	name := fmt.Sprintf("fractal-%s-p%.1f.png", time.Now().Format("20060102-150405"), snap.Power)
	path := filepath.Join(l.shotDir, name)
	return path, assets.SavePNG(path, l.state.Image())
}
