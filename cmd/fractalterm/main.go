package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hubastard/fractalgrove/engine/assets"
	"github.com/hubastard/fractalgrove/engine/core"
	"github.com/hubastard/fractalgrove/engine/explorer"
	"github.com/hubastard/fractalgrove/engine/profiler"
	"github.com/hubastard/fractalgrove/engine/scratch"
	"github.com/hubastard/fractalgrove/engine/terminal"
)

type Shell struct {
	screen  tcell.Screen
	surface *terminal.Surface
	tr      terminal.Translator
	input   *core.Input
	state   *explorer.State
	ctrl    *explorer.Controller
	shotDir string
	status  bool
	sb      *scratch.Builder
}

func NewShell(opts []explorer.Option, shotDir string) (*Shell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	sh := &Shell{
		screen:  screen,
		surface: terminal.NewSurface(screen),
		input:   core.NewInput(),
		shotDir: shotDir,
		status:  true,
		sb:      scratch.New(256),
	}
	w, h := sh.surface.PixelSize()
	sh.state, err = explorer.New(w, h, opts...)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	sh.ctrl = explorer.NewController(sh.state)
	return sh, nil
}

// handle applies one engine event and reports whether the shell should keep running.
func (sh *Shell) handle(ev core.Event) bool {
	sh.input.Handle(ev)
	switch e := ev.(type) {
	case core.EventResize:
		if err := sh.state.Resize(e.W, e.H); err != nil {
			log.Printf("resize %dx%d: %v", e.W, e.H, err)
		}
		sh.screen.Sync()
		return true
	case core.EventKey:
		switch {
		case e.Key == core.KeyEscape:
			return false
		case e.Key == core.KeyS:
			sh.saveSnapshot()
			return true
		case e.Key == core.KeyP && e.Mods&core.ModCtrl != 0:
			if path, err := profiler.Dump(""); err != nil {
				log.Printf("profiler dump error: %v", err)
			} else {
				log.Printf("speedscope dump: %s", path)
			}
			return true
		}
	case core.EventChar:
		if e.Rune == 'h' || e.Rune == 'H' {
			sh.status = !sh.status
			return true
		}
	}
	sh.ctrl.HandleEvent(sh.input, ev)
	return true
}

func (sh *Shell) saveSnapshot() {
	img := sh.state.Image()
	if img == nil {
		return
	}
	path := filepath.Join(sh.shotDir, fmt.Sprintf("fractal-%s.png", time.Now().Format("20060102-150405")))
	if err := assets.SavePNG(path, img); err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	log.Printf("snapshot: %s", path)
}

func (sh *Shell) draw() {
	if sh.status {
		snap := sh.state.Snapshot()
		b := sh.sb
		b.Reset()
		b.S(" ").G(snap.View.CenterX, 8).S(", ").G(snap.View.CenterY, 8).
			S("  scale ").G(snap.View.Scale, 3).
			S("  p ").F64(snap.Power, 1).
			S("  iter ").U(uint64(snap.MaxIter)).
			S("  lvl ").I(snap.Level)
		if snap.Degraded {
			b.S(" ~")
		}
		b.S("  ").F64(float64(snap.LastFrame.Duration)/float64(time.Millisecond), 1).S("ms ")
		sh.surface.SetStatus(b.String())
	} else {
		sh.surface.SetStatus()
	}
	if err := sh.state.Draw(sh.surface); err != nil {
		log.Printf("draw: %v", err)
	}
}

func (sh *Shell) run(fps int) {
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := sh.screen.PollEvent()
			if ev == nil {
				// screen finalized
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			for _, e := range sh.tr.Translate(ev) {
				if !sh.handle(e) {
					return
				}
			}
		case <-ticker.C:
			sh.draw()
		}
	}
}

func (sh *Shell) cleanup() {
	explorer.Destroy(sh.state)
	sh.screen.Fini()
}

func main() {
	var (
		power   = flag.Float64("power", 2, "starting exponent")
		workers = flag.Int("workers", 0, "render goroutines (0 = GOMAXPROCS)")
		fps     = flag.Int("fps", 30, "redraw rate")
		shots   = flag.String("shots", ".", "directory for S snapshots")
		logPath = flag.String("log", "", "log file (the terminal is busy drawing)")
	)
	flag.Parse()

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}
	profiler.Init(1 << 16)

	sh, err := NewShell([]explorer.Option{
		explorer.WithPower(*power),
		explorer.WithWorkers(*workers),
	}, *shots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fractalterm: %v\n", err)
		os.Exit(1)
	}
	sh.run(*fps)
	sh.cleanup()
}
