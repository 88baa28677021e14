package colors

import "image/color"

// Color is linear RGBA in [0..1].
type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Black    = Color{0, 0, 0, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
	// InSet paints points that never escaped.
	InSet = Color{0.02, 0.02, 0.04, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// RGBA converts to 8-bit channels, clamping out-of-range components.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{to8(c[0]), to8(c[1]), to8(c[2]), to8(c[3])}
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
