package main

import (
	"log"
	"time"

	"github.com/hubastard/fractalgrove/engine/core"
	"github.com/hubastard/fractalgrove/engine/profiler"
	"github.com/hubastard/fractalgrove/engine/scratch"
	"github.com/hubastard/fractalgrove/engine/text"
)

// LayerDebug feeds the HUD overlay: view parameters, last frame stats and
// runtime counters. H toggles it, Ctrl+P dumps the profiler.
type LayerDebug struct {
	overlay       *text.Overlay
	fractal       *LayerFractal
	visible       bool
	frameDuration time.Duration
	tick          int

	sb    *scratch.Builder
	lines []string
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	l.sb = scratch.New(1024)
}

func (l *LayerDebug) OnDetach(e *core.Engine) {
	l.overlay.SetLines()
}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {}

// OnRender runs after LayerFractal, so the lines show from the next frame on.
func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	if !l.visible || l.fractal.state == nil || l.fractal.state.Closed() {
		l.overlay.SetLines()
		return
	}
	end := profiler.Start("LayerDebug.OnRender")
	defer end()

	snap := l.fractal.state.Snapshot()
	b := l.sb
	b.Reset()
	l.lines = l.lines[:0]
	line := func(build func(*scratch.Builder)) {
		m := b.Mark()
		build(b)
		l.lines = append(l.lines, b.StringFrom(m))
	}

	// label pads name to the value column
	label := func(b *scratch.Builder, name string) *scratch.Builder {
		m := b.Mark()
		return b.S(name).PadTo(m, 7, ' ')
	}

	ms := float64(l.frameDuration) / float64(time.Millisecond)
	line(func(b *scratch.Builder) {
		label(b, "frame").I(l.tick).S("  ").F64(ms, 2).S(" ms")
		if ms > 0 {
			b.S(" (").F64(1000/ms, 1).S(" fps)")
		}
		b.S("  up ").S(e.Uptime().Round(time.Second).String())
	})
	line(func(b *scratch.Builder) {
		label(b, "center").G(snap.View.CenterX, 10).S(", ").G(snap.View.CenterY, 10)
	})
	line(func(b *scratch.Builder) {
		minX, minY, maxX, maxY := snap.View.Bounds()
		label(b, "plane").C('[').G(minX, 6).S(", ").G(maxX, 6).S("] x [").
			G(minY, 6).S(", ").G(maxY, 6).C(']')
	})
	line(func(b *scratch.Builder) { label(b, "scale").G(snap.View.Scale, 4).S(" /px") })
	line(func(b *scratch.Builder) {
		label(b, "power").F64(snap.Power, 2).S("  iter ").U(uint64(snap.MaxIter))
		if snap.Fast {
			b.S(" fast")
		}
	})
	line(func(b *scratch.Builder) {
		label(b, "level").I(snap.Level).S("  stride ").I(snap.Stride)
		if snap.Degraded {
			b.S(" (moving)")
		}
	})
	line(func(b *scratch.Builder) {
		f := snap.LastFrame
		label(b, "render")
		if f.Duration < time.Millisecond {
			b.I(int(f.Duration / time.Microsecond)).C(' ').R('µ').C('s')
		} else {
			b.F64(float64(f.Duration)/float64(time.Millisecond), 1).S(" ms")
		}
		b.S("  ").I(f.Samples).S(" samples  ").I(f.Workers).S(" workers")
	})
	line(func(b *scratch.Builder) {
		label(b, "mem").Size(profiler.MemoryUsage()).S("  ").U(profiler.MemoryAllocs()).S(" allocs").
			S("  goroutines ").I(profiler.NumGoroutine()).S("  cpus ").I(profiler.NumCPU())
	})
	line(func(b *scratch.Builder) { label(b, "gpu").S(e.Renderer.GPURenderer()) })

	l.overlay.SetLines(l.lines...)
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventChar:
		if v.Rune == 'h' || v.Rune == 'H' {
			l.visible = !l.visible
			return true
		}
	case core.EventKey:
		if v.Down && v.Key == core.KeyP && (v.Mods&core.ModCtrl) != 0 {
			if path, err := profiler.Dump(""); err == nil {
				log.Println("speedscope dump:", path)
			} else {
				log.Println("profiler dump error:", err)
			}
			return true
		}
	}
	return false
}
