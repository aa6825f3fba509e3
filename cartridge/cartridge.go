/*
Package cartridge implements a decoder and encoder for fantasy console
cartridges stored as PNG images.

A cartridge is 32768 bytes hidden in the low bits of the image pixels, see
package steg. The Lua source code lives in the region starting at 0x4300 and
has been stored three different ways over the lifetime of the console:

	V0  plain text terminated by a zero byte
	V1  ":c:\x00" magic, then a byte oriented token stream
	V2  "\x00pxa" magic, then a 256 byte move-to-front table and a bit stream

V1 and V2 share an 8 byte header of the magic, the big-endian decompressed
length and a big-endian 16-bit value which is zero for V1 and the compressed
length, header and table included, for V2.

The graphics, map and sound regions are not interpreted.
*/
package cartridge

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/bodgit/deco8/cover"
	"github.com/bodgit/deco8/steg"
)

// Gfx stands for the spritesheet, map, flags, music and sound effects of a
// cartridge. None of it is decoded yet.
type Gfx struct{}

// Lua holds the source code of a cartridge.
type Lua struct {
	txt string
}

func (l Lua) String() string {
	return l.txt
}

// Cartridge is a decoded cartridge.
type Cartridge struct {
	gfx         Gfx
	lua         Lua
	compression Compression
	length      int
}

// New returns a Cartridge holding the source code txt, ready to be encoded.
func New(txt string) *Cartridge {
	return &Cartridge{
		lua:         Lua{txt: txt},
		compression: V0,
		length:      len(txt),
	}
}

// FromBytes decodes the cartridge stored in data. Only the first Size bytes
// are used.
func FromBytes(data []byte) (*Cartridge, error) {
	if len(data) < Size {
		return nil, DecodeError(fmt.Sprintf("short cartridge, %d bytes", len(data)))
	}

	compression := Detect(data)
	code := data[codeOffset:Size]

	b, err := decoders[compression](code)
	if err != nil {
		return nil, err
	}

	txt, err := toText(b)
	if err != nil {
		return nil, err
	}

	return &Cartridge{
		lua:         Lua{txt: txt},
		compression: compression,
		length:      len(code),
	}, nil
}

// FromPNG decodes the cartridge stored in the PNG image read from r.
func FromPNG(r io.Reader) (*Cartridge, error) {
	data, err := steg.Decode(r)
	if err != nil {
		var fe steg.FormatError
		if errors.As(err, &fe) {
			return nil, FormatError(fe)
		}
		return nil, fmt.Errorf("cartridge: %w", err)
	}

	return FromBytes(data)
}

// Lua returns the source code.
func (c *Cartridge) Lua() Lua {
	return c.lua
}

// Gfx returns the graphics and sound data.
func (c *Cartridge) Gfx() Gfx {
	return c.gfx
}

// Version returns the compression the cartridge was decoded from.
func (c *Cartridge) Version() Compression {
	return c.compression
}

// Len returns the length in bytes of the source the cartridge was built
// from; the code region for a decoded cartridge.
func (c *Cartridge) Len() int {
	return c.length
}

// IsEmpty reports whether Len is zero.
func (c *Cartridge) IsEmpty() bool {
	return c.Len() == 0
}

// Bytes encodes the cartridge into Size bytes, storing the code with the
// given compression.
func (c *Cartridge) Bytes(compression Compression) ([]byte, error) {
	data := make([]byte, Size)
	code := data[codeOffset:]

	var err error
	switch compression {
	case V0:
		err = encodeV0(code, c.lua.txt)
	case V1:
		err = encodeV1(code, c.lua.txt)
	case V2:
		err = UnsupportedError("v2 compression")
	default:
		err = FormatError(fmt.Sprintf("unknown compression %d", int(compression)))
	}
	if err != nil {
		return nil, err
	}

	return data, nil
}

// ToPNG encodes the cartridge as a PNG image drawn over art. If art is nil
// a blank cartridge is used.
func (c *Cartridge) ToPNG(compression Compression, art image.Image) ([]byte, error) {
	data, err := c.Bytes(compression)
	if err != nil {
		return nil, err
	}

	if art == nil {
		art = cover.Compose(nil)
	}

	b := new(bytes.Buffer)
	if err := steg.Encode(b, data, art); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
