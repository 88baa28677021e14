package render

import (
	"image"
	"image/color"
)

// PixelBuffer is a row-major RGBA frame with its origin at the top-left.
type PixelBuffer struct {
	img *image.RGBA
}

func NewPixelBuffer(w, h int) *PixelBuffer {
	return &PixelBuffer{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (b *PixelBuffer) Width() int         { return b.img.Rect.Dx() }
func (b *PixelBuffer) Height() int        { return b.img.Rect.Dy() }
func (b *PixelBuffer) Image() *image.RGBA { return b.img }

// At returns the color at (x, y); out-of-range reads return the zero color.
func (b *PixelBuffer) At(x, y int) color.RGBA { return b.img.RGBAAt(x, y) }

// Fill paints every pixel with c.
func (b *PixelBuffer) Fill(c color.RGBA) {
	b.FillRect(image.Rect(0, 0, b.Width(), b.Height()), c)
}

// FillRect paints r, clipped to the buffer.
func (b *PixelBuffer) FillRect(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(b.img.Rect)
	if r.Empty() {
		return
	}
	pix, stride := b.img.Pix, b.img.Stride
	// first row pixel by pixel, then copy it down
	row0 := r.Min.Y*stride + r.Min.X*4
	n := r.Dx() * 4
	for i := row0; i < row0+n; i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		off := y*stride + r.Min.X*4
		copy(pix[off:off+n], pix[row0:row0+n])
	}
}
