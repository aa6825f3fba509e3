/*
Package steg implements the storage of cartridge bytes in the low bits of a
true color PNG image.

Each pixel carries exactly one byte. The two least significant bits of each
of the four channels are used, packed as ARGB from the most significant bit
down, so a byte b is spread across a pixel as:

	A = b>>6&3, R = b>>4&3, G = b>>2&3, B = b&3

The remaining six bits of each channel are left for the visible cover art.
*/
package steg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"io/ioutil"
)

// BytesPerPixel is the only pixel width a cartridge image may have.
const BytesPerPixel = 4

// Offsets into a PNG stream of the IHDR bit depth and color type
const (
	ihdrBitDepth  = 24
	ihdrColorType = 25

	colorTypeRGBA = 6
)

// A FormatError reports that the input is not a usable cartridge image.
type FormatError string

func (e FormatError) Error() string { return "steg: invalid format: " + string(e) }

// Extract collects one byte from each pixel of pix. The buffer is read as
// consecutive groups of bpp bytes in R, G, B, A order.
func Extract(pix []byte, bpp int) ([]byte, error) {
	if bpp != BytesPerPixel {
		return nil, FormatError(fmt.Sprintf("wrong bytes per pixel %d", bpp))
	}

	out := make([]byte, 0, len(pix)/bpp)
	for i := 0; i+bpp <= len(pix); i += bpp {
		r := pix[i+0] & 3
		g := pix[i+1] & 3
		b := pix[i+2] & 3
		a := pix[i+3] & 3

		out = append(out, a<<6|r<<4|g<<2|b)
	}
	return out, nil
}

// Pack writes data into the low bits of pix, one byte per pixel, leaving the
// upper six bits of every channel untouched. Pixels beyond len(data) are not
// modified.
func Pack(pix, data []byte) error {
	if len(data) > len(pix)/BytesPerPixel {
		return fmt.Errorf("steg: %d bytes do not fit in %d pixels", len(data), len(pix)/BytesPerPixel)
	}

	for i, c := range data {
		p := pix[i*BytesPerPixel : i*BytesPerPixel+BytesPerPixel]
		p[0] = p[0]&^3 | c>>4&3
		p[1] = p[1]&^3 | c>>2&3
		p[2] = p[2]&^3 | c&3
		p[3] = p[3]&^3 | c>>6&3
	}
	return nil
}

// Decode reads a PNG image from r and returns the bytes hidden in it.
func Decode(r io.Reader) ([]byte, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	config, err := png.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	// Gray with alpha decodes to the same model, so check the header too
	if config.ColorModel != color.NRGBAModel || b[ihdrBitDepth] != 8 || b[ihdrColorType] != colorTypeRGBA {
		return nil, FormatError("image is not 8-bit RGBA")
	}

	m, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	nrgba, ok := m.(*image.NRGBA)
	if !ok {
		return nil, FormatError("image is not 8-bit RGBA")
	}

	return Extract(pixels(nrgba), BytesPerPixel)
}

// Encode writes cover to w as a PNG image with data hidden in it.
func Encode(w io.Writer, data []byte, cover image.Image) error {
	b := cover.Bounds()

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), cover, b.Min, draw.Src)

	if err := Pack(dst.Pix, data); err != nil {
		return err
	}

	// An opaque image would be written without its alpha channel, clear a
	// low alpha bit in the last pixel, which is unused, to keep it
	if dst.Opaque() {
		if len(dst.Pix) <= len(data)*BytesPerPixel {
			return FormatError("opaque image has no unused pixel to keep the alpha channel")
		}
		dst.Pix[len(dst.Pix)-1] &^= 1
	}

	return png.Encode(w, dst)
}

// pixels returns the pixel rows of m as one contiguous buffer
func pixels(m *image.NRGBA) []byte {
	b := m.Bounds()
	width := b.Dx() * BytesPerPixel
	if m.Stride == width {
		return m.Pix[:width*b.Dy()]
	}

	pix := make([]byte, 0, width*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		pix = append(pix, m.Pix[y*m.Stride:y*m.Stride+width]...)
	}
	return pix
}
