package cartridge

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"

	"github.com/bodgit/deco8/lz"
)

func encodeV0(code []byte, txt string) error {
	if strings.IndexByte(txt, 0) >= 0 {
		return FormatError("code contains a zero byte")
	}
	if len(txt) > len(code) {
		return FormatError("code too large")
	}

	copy(code, txt)
	return nil
}

func encodeV1(code []byte, txt string) error {
	if len(txt) > math.MaxUint16 {
		return FormatError("code too large")
	}

	src := []byte(txt)
	b := new(bytes.Buffer)

	for i := 0; i < len(src); {
		window := src[max(0, i-maxV1Distance):i]
		lookahead := src[i:min(len(src), i+maxV1Length)]

		if m, ok := lz.FindMatch(window, lookahead); ok && m.Length >= minV1Length {
			b.WriteByte(byte(minBackRef + m.Distance>>4))
			b.WriteByte(byte(m.Length-minV1Length)<<4 | byte(m.Distance&0x0f))
			i += m.Length
			continue
		}

		if idx := strings.IndexByte(oldLookup, src[i]); idx >= 0 {
			b.WriteByte(byte(idx + 1))
		} else {
			b.WriteByte(0x00)
			b.WriteByte(src[i])
		}
		i++
	}

	if b.Len() > len(code)-headerSize {
		return FormatError("compressed code too large")
	}

	binary.BigEndian.PutUint32(code[magicOffset:], magicV1)
	binary.BigEndian.PutUint16(code[decompressedLenOffset:], uint16(len(src)))
	binary.BigEndian.PutUint16(code[compressedLenOffset:], 0)
	copy(code[headerSize:], b.Bytes())

	return nil
}
