package colors

import (
	"math"
	"testing"

	"github.com/hubastard/fractalgrove/engine/fractal"
)

func TestBoundedUsesInSetColor(t *testing.T) {
	m := DefaultMapper()
	got := m.Colorize(fractal.Result{}, 900, 2, 8)
	if got != InSet.RGBA() {
		t.Errorf("bounded color = %v, want %v", got, InSet.RGBA())
	}
}

func TestColorizeIndependentOfCapForEarlyEscape(t *testing.T) {
	m := DefaultMapper()
	c := fractal.Point{X: 0.6, Y: 0.8}
	for _, power := range []float64{2, 3} {
		a := fractal.Evaluate(c, power, 100, 8)
		b := fractal.Evaluate(c, power, 2000, 8)
		if !a.Escaped {
			t.Fatalf("expected %v to escape", c)
		}
		if ca, cb := m.Colorize(a, 100, power, 8), m.Colorize(b, 2000, power, 8); ca != cb {
			t.Errorf("power %v: color changed with cap: %v vs %v", power, ca, cb)
		}
	}
}

func TestColorizeDeterministic(t *testing.T) {
	m := DefaultMapper()
	r := fractal.Result{Escaped: true, Iterations: 17, Magnitude: 12.5}
	if m.Colorize(r, 900, 2, 8) != m.Colorize(r, 900, 2, 8) {
		t.Error("Colorize not deterministic")
	}
}

func TestPaletteWraps(t *testing.T) {
	p, err := NewPalette()
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []float64{0, 0.25, 0.5, 0.999} {
		if p.At(v) != p.At(v+1) || p.At(v) != p.At(v-3) {
			t.Errorf("At(%v) does not wrap", v)
		}
	}
	for i := 0; i < 100; i++ {
		if c := p.At(float64(i) / 100); c.A != 255 {
			t.Errorf("At(%v) alpha = %d", float64(i)/100, c.A)
		}
	}
}

func TestColorizeDegenerateMapper(t *testing.T) {
	escaped := fractal.Result{Escaped: true, Iterations: 40, Magnitude: 9}
	zeroPeriod := DefaultMapper()
	zeroPeriod.Period = 0
	for name, m := range map[string]Mapper{"zero period": zeroPeriod, "zero value": {}} {
		if c := m.Colorize(escaped, 900, 2, 8); c.A != 255 {
			t.Errorf("%s: color = %v", name, c)
		}
	}
	p, _ := NewPalette()
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if p.At(v) != p.At(0) {
			t.Errorf("At(%v) = %v, want first entry", v, p.At(v))
		}
	}
}

func TestMapperNormalized(t *testing.T) {
	m := Mapper{Period: -3, InSet: Black.RGBA()}.Normalized()
	if m.Palette == nil || m.Period != DefaultPeriod || m.InSet != Black.RGBA() {
		t.Errorf("Normalized = %+v", m)
	}
	keep := Mapper{Palette: defaultPalette, Period: 12}
	if got := keep.Normalized(); got.Period != 12 {
		t.Errorf("valid period replaced: %v", got.Period)
	}
}

func TestNewPaletteRejectsBadHex(t *testing.T) {
	if _, err := NewPalette("#12"); err == nil {
		t.Error("expected error for malformed hex stop")
	}
}

func TestColorRGBAClamps(t *testing.T) {
	got := Color{-1, 0.5, 2, 1}.RGBA()
	if got.R != 0 || got.B != 255 || got.A != 255 || got.G != 128 {
		t.Errorf("RGBA() = %v", got)
	}
	if got := Black.WithAlpha(0.5).RGBA(); got.A != 128 || got.R != 0 {
		t.Errorf("WithAlpha = %v", got)
	}
}
