package scene

import (
	"errors"
	"math"
)

// ErrInvalidDimensions is returned when a surface has a zero or negative side.
var ErrInvalidDimensions = errors.New("scene: width and height must be positive")

const (
	// ZoomBase is the scale factor applied per unit of zoom delta.
	ZoomBase = 1.1

	// Default view: the real range [-1.5, 1.0] spans the surface width.
	defaultMinX  = -1.5
	defaultMaxX  = 1.0
	defaultSpanX = defaultMaxX - defaultMinX

	MinLevel = 1
	MaxLevel = 9
)

// Viewport maps screen pixels to the fractal parameter plane.
//
// Scale is measured in plane units per pixel. The plane y axis grows downward,
// the same way screen y does, so a pixel below the center maps to a larger y.
type Viewport struct {
	CenterX, CenterY float64
	Scale            float64
	Width, Height    int
}

// NewViewport builds the default view for a w×h surface.
func NewViewport(w, h int) (Viewport, error) {
	if w <= 0 || h <= 0 {
		return Viewport{}, ErrInvalidDimensions
	}
	return Viewport{
		CenterX: (defaultMinX + defaultMaxX) / 2,
		CenterY: 0,
		Scale:   DefaultScale(w),
		Width:   w,
		Height:  h,
	}, nil
}

// DefaultScale is the plane units per pixel of the default view at width w.
func DefaultScale(w int) float64 { return defaultSpanX / float64(w) }

func (v *Viewport) ScreenToPlane(px, py float64) (float64, float64) {
	x := v.CenterX + (px-float64(v.Width)/2)*v.Scale
	y := v.CenterY + (py-float64(v.Height)/2)*v.Scale
	return x, y
}

func (v *Viewport) PlaneToScreen(x, y float64) (float64, float64) {
	px := (x-v.CenterX)/v.Scale + float64(v.Width)/2
	py := (y-v.CenterY)/v.Scale + float64(v.Height)/2
	return px, py
}

// Pan moves the view so the plane point under (fromX, fromY) ends up under (toX, toY).
func (v *Viewport) Pan(fromX, fromY, toX, toY float64) {
	// Scale is uniform, so the plane delta is the pixel delta times Scale.
	v.CenterX -= (toX - fromX) * v.Scale
	v.CenterY -= (toY - fromY) * v.Scale
}

// Zoom scales the view about its center. Positive delta zooms out, negative zooms in.
func (v *Viewport) Zoom(delta float64) {
	if delta == 0 {
		return
	}
	s := v.Scale * math.Pow(ZoomBase, delta)
	if s <= 0 || math.IsInf(s, 0) || math.IsNaN(s) {
		return
	}
	v.Scale = s
}

// SetLevel jumps to a discrete zoom level; level n magnifies the default view n times.
func (v *Viewport) SetLevel(n int) {
	v.Scale = DefaultScale(v.Width) / float64(ClampLevel(n))
}

// Bounds reports the plane rectangle covered by the surface.
func (v *Viewport) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = v.ScreenToPlane(0, 0)
	maxX, maxY = v.ScreenToPlane(float64(v.Width), float64(v.Height))
	return
}

// ClampLevel limits n to [MinLevel, MaxLevel].
func ClampLevel(n int) int {
	if n < MinLevel {
		return MinLevel
	}
	if n > MaxLevel {
		return MaxLevel
	}
	return n
}
