package scene

import "github.com/go-gl/mathgl/mgl32"

// OrthoCamera2D is a pixel-space orthographic camera with its origin at the
// top-left corner and Y pointing down, the layout of a PixelBuffer.
type OrthoCamera2D struct {
	width, height float32
	vp            mgl32.Mat4
	dirty         bool
}

func NewOrtho2D(width, height int) *OrthoCamera2D {
	c := &OrthoCamera2D{}
	c.SetViewportPixels(width, height)
	c.Recalculate()
	return c
}

func (c *OrthoCamera2D) SetViewportPixels(w, h int) {
	c.width, c.height = float32(w), float32(h)
	c.dirty = true
}

func (c *OrthoCamera2D) Width() float32  { return c.width }
func (c *OrthoCamera2D) Height() float32 { return c.height }

func (c *OrthoCamera2D) VP() mgl32.Mat4 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

func (c *OrthoCamera2D) Recalculate() {
	// top and bottom swapped so +Y goes down the screen
	c.vp = mgl32.Ortho2D(0, c.width, c.height, 0)
	c.dirty = false
}
