// Package render fills a PixelBuffer with one frame of the fractal.
package render

import (
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/hubastard/fractalgrove/engine/colors"
	"github.com/hubastard/fractalgrove/engine/fractal"
	"github.com/hubastard/fractalgrove/engine/profiler"
	"github.com/hubastard/fractalgrove/engine/scene"
)

// Frame holds everything a render reads. It is copied at the start of a draw
// and never mutated while workers run.
type Frame struct {
	View   scene.Viewport
	Power  float64
	Fast   bool
	Stride int // samples are taken every Stride pixels in both axes
}

// Stats describes one rendered frame.
type Stats struct {
	Samples  int
	Stride   int
	MaxIter  uint32
	Workers  int
	Duration time.Duration
}

type Pipeline struct {
	Workers int // <= 0 uses GOMAXPROCS
	Mapper  colors.Mapper
}

func NewPipeline(workers int) *Pipeline {
	return &Pipeline{Workers: workers, Mapper: colors.DefaultMapper()}
}

// Render writes one sample per Stride×Stride block of dst and replicates it
// over the block. Blocks crossing the right or bottom edge are clipped.
// Block rows are dealt to workers round-robin; each worker writes only its
// own rows.
func (p *Pipeline) Render(f Frame, dst *PixelBuffer) Stats {
	end := profiler.Start("render.Pipeline.Render")
	defer end()

	start := time.Now()
	k := f.Stride
	if k < 1 {
		k = 1
	}
	params := fractal.ParamsFor(f.Fast)
	w, h := dst.Width(), dst.Height()
	rows := (h + k - 1) / k
	cols := (w + k - 1) / k

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > rows {
		workers = rows
	}

	var wg sync.WaitGroup
	for id := 0; id < workers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for row := id; row < rows; row += workers {
				p.renderRow(f, params, k, row*k, cols, dst)
			}
		}(id)
	}
	wg.Wait()

	return Stats{
		Samples:  rows * cols,
		Stride:   k,
		MaxIter:  params.MaxIter,
		Workers:  workers,
		Duration: time.Since(start),
	}
}

func (p *Pipeline) renderRow(f Frame, params fractal.Params, k, y, cols int, dst *PixelBuffer) {
	for col := 0; col < cols; col++ {
		x := col * k
		cx, cy := f.View.ScreenToPlane(float64(x), float64(y))
		res := params.Evaluate(fractal.Point{X: cx, Y: cy}, f.Power)
		c := p.Mapper.Colorize(res, params.MaxIter, f.Power, params.Bailout)
		dst.FillRect(image.Rect(x, y, x+k, y+k), c)
	}
}
