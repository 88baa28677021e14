package colors

import (
	"image/color"
	"math"

	"github.com/hubastard/fractalgrove/engine/fractal"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultPeriod is the number of iterations spanned by one palette cycle.
	DefaultPeriod = 48
	lutSize       = 1024
)

// DefaultStops runs from deep blue through white and gold back to dark.
var DefaultStops = []string{"#000764", "#206bcb", "#edffff", "#ffaa00", "#310230"}

// Palette is a cyclic gradient sampled into a lookup table.
type Palette struct {
	lut [lutSize]color.RGBA
}

// NewPalette blends the hex stops in HCL space and wraps the last stop back to the first.
func NewPalette(stops ...string) (*Palette, error) {
	if len(stops) == 0 {
		stops = DefaultStops
	}
	cs := make([]colorful.Color, len(stops))
	for i, s := range stops {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}

	p := &Palette{}
	n := float64(len(cs))
	for i := range p.lut {
		pos := float64(i) / lutSize * n
		k := int(pos)
		a, b := cs[k%len(cs)], cs[(k+1)%len(cs)]
		r, g, bl := a.BlendHcl(b, pos-float64(k)).Clamped().RGB255()
		p.lut[i] = color.RGBA{r, g, bl, 255}
	}
	return p, nil
}

// At samples the palette at t; t wraps so that At(t) == At(t+1).
// Non-finite t samples the first entry.
func (p *Palette) At(t float64) color.RGBA {
	t -= math.Floor(t)
	if math.IsNaN(t) {
		t = 0
	}
	i := int(t * lutSize)
	if i >= lutSize {
		i = lutSize - 1
	}
	return p.lut[i]
}

// Mapper turns escape results into pixel colors.
type Mapper struct {
	Palette *Palette
	Period  float64 // iterations per palette cycle
	InSet   color.RGBA
}

var defaultPalette, _ = NewPalette()

// DefaultMapper returns a mapper over DefaultStops.
func DefaultMapper() Mapper {
	return Mapper{Palette: defaultPalette, Period: DefaultPeriod, InSet: InSet.RGBA()}
}

// Normalized fills a missing palette and a non-positive or non-finite period
// from DefaultMapper.
func (m Mapper) Normalized() Mapper {
	if m.Palette == nil {
		m.Palette = defaultPalette
	}
	if !(m.Period > 0) || math.IsInf(m.Period, 1) {
		m.Period = DefaultPeriod
	}
	return m
}

// Colorize maps a result to a color. The escaped color depends only on the
// smooth iteration count, capped at maxIter, so raising the cap keeps the
// colors of points that already escaped.
func (m Mapper) Colorize(r fractal.Result, maxIter uint32, power, bailout float64) color.RGBA {
	if !r.Escaped {
		return m.InSet
	}
	mu := r.Smooth(power, bailout)
	if limit := float64(maxIter); mu > limit {
		mu = limit
	}
	p := m.Palette
	if p == nil {
		p = defaultPalette
	}
	return p.At(mu / m.Period)
}
