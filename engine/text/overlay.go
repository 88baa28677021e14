package text

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/hubastard/fractalgrove/engine/colors"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Presenter receives finished frames. core.Renderer and the explorer
// surfaces satisfy it.
type Presenter interface {
	Present(img *image.RGBA) error
}

// Overlay draws a block of HUD lines over every frame before handing it to
// Next. Frames are copied first; the caller's image is never written to.
type Overlay struct {
	Next    Presenter
	Face    font.Face
	Color   colors.Color
	Panel   colors.Color // background behind the text; zero alpha disables it
	Margin  int
	Padding int

	mu    sync.Mutex
	lines []string
	dst   *image.RGBA
}

// NewOverlay returns an overlay drawing with face (or the 7x13 bitmap face
// when nil) in the top-left corner.
func NewOverlay(next Presenter, face font.Face) *Overlay {
	if face == nil {
		face = MonoFace(0)
	}
	return &Overlay{
		Next:    next,
		Face:    face,
		Color:   colors.White,
		Panel:   colors.Black.WithAlpha(0.55),
		Margin:  8,
		Padding: 6,
	}
}

// SetLines replaces the text shown from the next Present on. The slice is copied.
func (o *Overlay) SetLines(lines ...string) {
	o.mu.Lock()
	o.lines = append(o.lines[:0], lines...)
	o.mu.Unlock()
}

func (o *Overlay) Lines() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.lines...)
}

func (o *Overlay) Present(img *image.RGBA) error {
	o.mu.Lock()
	lines := o.lines
	if len(lines) == 0 {
		o.mu.Unlock()
		return o.Next.Present(img)
	}
	dst := o.frame(img)
	o.draw(dst, lines)
	o.mu.Unlock()
	return o.Next.Present(dst)
}

// frame copies img into the reusable destination, reallocating on size change.
func (o *Overlay) frame(img *image.RGBA) *image.RGBA {
	r := image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy())
	if o.dst == nil || o.dst.Rect != r {
		o.dst = image.NewRGBA(r)
	}
	draw.Draw(o.dst, r, img, img.Bounds().Min, draw.Src)
	return o.dst
}

// TextBounds returns the pixel size of lines laid out with face.
func TextBounds(face font.Face, lines []string) (w, h int) {
	var widest fixed.Int26_6
	for _, l := range lines {
		if adv := font.MeasureString(face, l); adv > widest {
			widest = adv
		}
	}
	return widest.Ceil(), lineHeight(face) * len(lines)
}

func lineHeight(face font.Face) int {
	m := face.Metrics()
	if h := m.Height.Ceil(); h > 0 {
		return h
	}
	return (m.Ascent + m.Descent).Ceil()
}

func (o *Overlay) draw(dst *image.RGBA, lines []string) {
	tw, th := TextBounds(o.Face, lines)
	x0, y0 := o.Margin, o.Margin

	if o.Panel[3] > 0 {
		panel := image.Rect(x0, y0, x0+tw+2*o.Padding, y0+th+2*o.Padding).Intersect(dst.Rect)
		draw.Draw(dst, panel, image.NewUniform(color.NRGBA(o.Panel.RGBA())), image.Point{}, draw.Over)
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA(o.Color.RGBA())),
		Face: o.Face,
	}
	lh := lineHeight(o.Face)
	ascent := o.Face.Metrics().Ascent.Ceil()
	for i, l := range lines {
		d.Dot = fixed.P(x0+o.Padding, y0+o.Padding+ascent+i*lh)
		d.DrawString(l)
	}
}
