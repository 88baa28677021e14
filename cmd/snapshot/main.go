// Command snapshot renders one frame without a window and writes it as PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"github.com/hubastard/fractalgrove/engine/assets"
	"github.com/hubastard/fractalgrove/engine/explorer"
	"github.com/hubastard/fractalgrove/engine/scene"
)

type config struct {
	width, height int
	cx, cy        float64
	zoom          int
	level         int
	power         float64
	fast          bool
	workers       int
	out           string
}

// validate rejects flag values the explorer would silently clamp.
func (c config) validate() error {
	if c.zoom < scene.MinLevel || c.zoom > scene.MaxLevel {
		return fmt.Errorf("-zoom %d outside %d..%d", c.zoom, scene.MinLevel, scene.MaxLevel)
	}
	if c.level < scene.MinLevel || c.level > scene.MaxLevel {
		return fmt.Errorf("-level %d outside %d..%d", c.level, scene.MinLevel, scene.MaxLevel)
	}
	return nil
}

// capture keeps the presented frame.
type capture struct{ img *image.RGBA }

func (c *capture) Present(img *image.RGBA) error {
	c.img = img
	return nil
}

func render(cfg config) (*image.RGBA, explorer.Snapshot, error) {
	s, err := explorer.New(cfg.width, cfg.height,
		explorer.WithPower(cfg.power),
		explorer.WithWorkers(cfg.workers),
	)
	if err != nil {
		return nil, explorer.Snapshot{}, err
	}
	defer s.Close()

	s.CenterOn(cfg.cx, cfg.cy)
	if cfg.zoom > 1 {
		s.SetZoomLevel(cfg.zoom)
	}
	s.SetScale(cfg.level)
	if cfg.fast {
		s.ToggleFast()
	}

	var c capture
	if err := s.Draw(&c); err != nil {
		return nil, explorer.Snapshot{}, err
	}
	return c.img, s.Snapshot(), nil
}

func main() {
	var cfg config
	flag.IntVar(&cfg.width, "width", 1280, "image width")
	flag.IntVar(&cfg.height, "height", 720, "image height")
	flag.Float64Var(&cfg.cx, "x", -0.25, "plane x at the image center")
	flag.Float64Var(&cfg.cy, "y", 0, "plane y at the image center (grows downward)")
	flag.IntVar(&cfg.zoom, "zoom", 1, "magnification over the default view, 1 to 9")
	flag.IntVar(&cfg.level, "level", explorer.DefaultLevel, "render level 1 (blocky) to 9 (every pixel)")
	flag.Float64Var(&cfg.power, "power", 2, "exponent")
	flag.BoolVar(&cfg.fast, "fast", false, "lower iteration cap")
	flag.IntVar(&cfg.workers, "workers", 0, "render goroutines (0 = GOMAXPROCS)")
	flag.StringVar(&cfg.out, "o", "fractal.png", "output file")
	flag.Parse()
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(2)
	}

	start := time.Now()
	img, snap, err := render(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(2)
	}
	if err := assets.SavePNG(cfg.out, img); err != nil {
		log.Fatal(err)
	}
	log.Printf("%s: %dx%d power %.2f iter %d, %d samples in %v (total %v)",
		cfg.out, cfg.width, cfg.height, snap.Power, snap.MaxIter,
		snap.LastFrame.Samples, snap.LastFrame.Duration.Round(time.Millisecond),
		time.Since(start).Round(time.Millisecond))
}
