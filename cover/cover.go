/*
Package cover draws the visible artwork of a cartridge image.

A cartridge image is 160 by 205 pixels. The label is a 128 by 128 window
whose top-left corner is at (16, 24); artwork placed there is reduced to a
16 color palette to match the console display.
*/
package cover

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

const (
	// Width and Height are the dimensions of a cartridge image
	Width  = 160
	Height = 205

	labelX      = 16
	labelY      = 24
	labelWidth  = 128
	labelHeight = 128

	labelColors = 16
)

var (
	bodyColor  = color.NRGBA{0x1d, 0x2b, 0x53, 0xff}
	labelColor = color.NRGBA{0x00, 0x00, 0x00, 0xff}
)

// Label returns the rectangle of a cartridge image holding the label.
func Label() image.Rectangle {
	return image.Rect(labelX, labelY, labelX+labelWidth, labelY+labelHeight)
}

// Compose returns a blank cartridge image with label drawn into its label
// window. Anything in label beyond 128 by 128 pixels is cropped. A nil label
// leaves the window empty.
func Compose(label image.Image) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(m, m.Bounds(), &image.Uniform{bodyColor}, image.Point{}, draw.Src)
	draw.Draw(m, Label(), &image.Uniform{labelColor}, image.Point{}, draw.Src)

	if label == nil {
		return m
	}

	b := label.Bounds()
	if b.Dx() > labelWidth || b.Dy() > labelHeight {
		b = image.Rect(b.Min.X, b.Min.Y, b.Min.X+min(b.Dx(), labelWidth), b.Min.Y+min(b.Dy(), labelHeight))
	}

	pm, _ := label.(*image.Paletted)
	if pm == nil || len(pm.Palette) > labelColors {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, labelColors), label))
		draw.Draw(pm, b, label, b.Min, draw.Src)
	}

	r := image.Rect(labelX, labelY, labelX+b.Dx(), labelY+b.Dy())
	draw.Draw(m, r, pm, b.Min, draw.Src)

	return m
}
