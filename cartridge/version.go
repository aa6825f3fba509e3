package cartridge

import (
	"encoding/binary"
	"fmt"
)

// Compression identifies how the code of a cartridge is stored.
type Compression int

const (
	// V0 stores the code as plain NUL-terminated text
	V0 Compression = iota
	// V1 stores the code as a stream of literal, table and back-reference
	// tokens
	V1
	// V2 stores the code as a bit stream of move-to-front indices and
	// back-references
	V2
)

var compressionNames = [...]string{
	V0: "v0",
	V1: "v1",
	V2: "v2",
}

func (c Compression) String() string {
	if c < 0 || int(c) >= len(compressionNames) {
		return fmt.Sprintf("Compression(%d)", int(c))
	}
	return compressionNames[c]
}

// ParseCompression returns the Compression named by s, as printed by
// Compression.String.
func ParseCompression(s string) (Compression, error) {
	for c, name := range compressionNames {
		if name == s {
			return Compression(c), nil
		}
	}
	return V0, fmt.Errorf("cartridge: unknown compression %q", s)
}

// Detect returns the compression used by the cartridge bytes in data. Any
// unrecognized magic, or data too short to hold one, means V0.
func Detect(data []byte) Compression {
	if len(data) < codeOffset+decompressedLenOffset {
		return V0
	}

	switch binary.BigEndian.Uint32(data[codeOffset+magicOffset:]) {
	case magicV1:
		return V1
	case magicV2:
		return V2
	default:
		return V0
	}
}
