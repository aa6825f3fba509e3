package cartridge

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Table tokens 0x01-0x3b of the V1 format index into this
const oldLookup = "\n 0123456789abcdefghijklmnopqrstuvwxyz!#%(){}[]<>+=/*:;.,~_"

const (
	maxTableToken = 0x3b
	minBackRef    = 0x3c

	maxV1Distance = (0xff-minBackRef)<<4 | 0x0f
	minV1Length   = 2
	maxV1Length   = 0x0f + minV1Length
)

// decoders maps each compression to the function that recovers the source
// text from the code region.
var decoders = [...]func([]byte) ([]byte, error){
	V0: decodeV0,
	V1: decodeV1,
	V2: decodeV2,
}

func toText(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", errInvalidUTF8
	}
	return string(b), nil
}

// copyBack appends length bytes to out starting distance bytes before its
// end. The source may overlap the bytes being appended.
func copyBack(out []byte, distance, length int) ([]byte, error) {
	if distance <= 0 || distance > len(out) {
		return nil, DecodeError(fmt.Sprintf("back-reference distance %d outside %d bytes of output", distance, len(out)))
	}

	start := len(out) - distance
	for i := 0; i < length; i++ {
		out = append(out, out[start+i])
	}
	return out, nil
}

func decodeV0(code []byte) ([]byte, error) {
	if i := bytes.IndexByte(code, 0); i >= 0 {
		return code[:i], nil
	}
	return code, nil
}

func decodeV1(code []byte) ([]byte, error) {
	n := int(binary.BigEndian.Uint16(code[decompressedLenOffset:]))
	out := make([]byte, 0, n+maxV1Length)

	for cursor := headerSize; len(out) < n; {
		if cursor >= len(code) {
			return nil, errTruncated
		}

		switch c := code[cursor]; {
		case c == 0x00:
			// Literal byte follows
			if cursor+1 >= len(code) {
				return nil, errTruncated
			}
			out = append(out, code[cursor+1])
			cursor += 2
		case c <= maxTableToken:
			out = append(out, oldLookup[c-1])
			cursor++
		default:
			if cursor+1 >= len(code) {
				return nil, errTruncated
			}
			next := code[cursor+1]

			distance := int(c-minBackRef)<<4 | int(next&0x0f)
			length := int(next>>4) + minV1Length

			var err error
			if out, err = copyBack(out, distance, length); err != nil {
				return nil, err
			}
			cursor += 2
		}
	}

	// The final back-reference may run past the stated length
	return out[:n], nil
}
