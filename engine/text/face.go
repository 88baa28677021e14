package text

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// NewFace parses TrueType/OpenType data and returns a face of sizePx pixels.
func NewFace(ttf []byte, sizePx float64) (font.Face, error) {
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: sizePx, DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// LoadFace reads a font file from disk.
func LoadFace(path string, sizePx float64) (font.Face, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return NewFace(b, sizePx)
}

// MonoFace returns Go Mono at sizePx, falling back to the fixed 7x13 bitmap
// face when sizePx is not positive or the font cannot be built.
func MonoFace(sizePx float64) font.Face {
	if sizePx <= 0 {
		return basicfont.Face7x13
	}
	face, err := NewFace(gomono.TTF, sizePx)
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
