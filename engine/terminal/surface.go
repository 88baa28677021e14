// Package terminal presents frames on a character terminal through tcell and
// translates tcell input into engine events. Each cell shows two vertically
// stacked pixels with the upper half block: foreground is the top pixel,
// background the bottom one.
package terminal

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

const halfBlock = '▀'

// Surface draws RGBA frames onto a tcell screen.
type Surface struct {
	screen tcell.Screen
	status []string
	style  tcell.Style
}

func NewSurface(s tcell.Screen) *Surface {
	return &Surface{
		screen: s,
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	}
}

// PixelSize is the frame size that fills the screen: one column per pixel,
// two pixel rows per cell row.
func (s *Surface) PixelSize() (int, int) {
	return PixelSize(s.screen.Size())
}

// PixelSize converts a cell grid size to pixels.
func PixelSize(cols, rows int) (int, int) { return cols, rows * 2 }

// SetStatus sets text rows drawn over the top of the frame.
func (s *Surface) SetStatus(lines ...string) {
	s.status = append(s.status[:0], lines...)
}

// Present draws img and the status rows, then shows the screen. Pixels
// outside the screen are dropped; cells beyond the frame are cleared.
func (s *Surface) Present(img *image.RGBA) error {
	cols, rows := s.screen.Size()
	b := img.Bounds()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			x, y := b.Min.X+cx, b.Min.Y+2*cy
			if x >= b.Max.X || y >= b.Max.Y {
				s.screen.SetContent(cx, cy, ' ', nil, tcell.StyleDefault)
				continue
			}
			top := rgb(img, x, y)
			bottom := tcell.ColorBlack
			if y+1 < b.Max.Y {
				bottom = rgb(img, x, y+1)
			}
			s.screen.SetContent(cx, cy, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
	for i, line := range s.status {
		if i >= rows {
			break
		}
		s.drawText(0, i, line)
	}
	s.screen.Show()
	return nil
}

func (s *Surface) drawText(x, y int, text string) {
	cols, _ := s.screen.Size()
	for _, r := range text {
		if x >= cols {
			return
		}
		s.screen.SetContent(x, y, r, nil, s.style)
		x++
	}
}

func rgb(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
