package cartridge

import (
	"encoding/binary"
	"fmt"
)

const (
	maxUnary   = 4
	minV2Match = 3
)

// bitReader reads a byte slice as a stream of bits, least significant bit
// of each byte first.
type bitReader struct {
	b   []byte
	pos int
}

func (r *bitReader) readBit() (uint, error) {
	if r.pos >= len(r.b)<<3 {
		return 0, errTruncated
	}
	bit := uint(r.b[r.pos>>3]>>(uint(r.pos)&7)) & 1
	r.pos++
	return bit, nil
}

// readBits returns the next n bits with the first bit read as the least
// significant.
func (r *bitReader) readBits(n int) (uint, error) {
	var v uint
	for i := 0; i < n; i++ {
		bit, err := r.readBit()
		if err != nil {
			return 0, err
		}
		v |= bit << uint(i)
	}
	return v, nil
}

// moveToFront holds the byte values ordered by most recent use
type moveToFront [mtfSize]byte

func (m *moveToFront) decode(idx int) byte {
	val := m[idx]
	copy(m[1:], m[:idx])
	m[0] = val
	return val
}

// readToken decodes one token from r and appends the bytes it stands for to
// out. The layout follows the published PXA grammar and has not been checked
// against real cartridges; it is the one place to change if the format turns
// out different:
//
//	1 u...u0 index          literal, u is a count of 1 bits selecting a
//	                        4+u bit index into the move-to-front table
//	0 0  offset(15) length  back-reference
//	0 10 offset(10) length  back-reference, or with an offset of 1 a raw
//	                        block of 8 bit bytes terminated by 0
//	0 11 offset(5)  length  back-reference
//
// The length is 3 plus a sum of 3 bit groups, continuing while a group
// is 7.
func readToken(r *bitReader, mtf *moveToFront, out []byte) ([]byte, error) {
	literal, err := r.readBit()
	if err != nil {
		return nil, err
	}

	if literal == 1 {
		unary := 0
		for {
			bit, err := r.readBit()
			if err != nil {
				return nil, err
			}
			if bit == 0 {
				break
			}
			if unary++; unary > maxUnary {
				return nil, DecodeError("literal prefix too long")
			}
		}

		v, err := r.readBits(4 + unary)
		if err != nil {
			return nil, err
		}
		idx := int(v) + ((1<<uint(unary))-1)<<4
		if idx >= mtfSize {
			return nil, DecodeError(fmt.Sprintf("move-to-front index %d out of range", idx))
		}

		return append(out, mtf.decode(idx)), nil
	}

	width := 15
	if bit, err := r.readBit(); err != nil {
		return nil, err
	} else if bit == 1 {
		width = 10
		if bit, err = r.readBit(); err != nil {
			return nil, err
		} else if bit == 1 {
			width = 5
		}
	}

	v, err := r.readBits(width)
	if err != nil {
		return nil, err
	}
	distance := int(v) + 1

	if width == 10 && distance == 1 {
		for {
			c, err := r.readBits(8)
			if err != nil {
				return nil, err
			}
			if c == 0 {
				return out, nil
			}
			out = append(out, byte(c))
		}
	}

	length := minV2Match
	for {
		part, err := r.readBits(3)
		if err != nil {
			return nil, err
		}
		length += int(part)
		if part != 7 {
			break
		}
	}

	return copyBack(out, distance, length)
}

func decodeV2(code []byte) ([]byte, error) {
	n := int(binary.BigEndian.Uint16(code[decompressedLenOffset:]))
	compressedLen := int(binary.BigEndian.Uint16(code[compressedLenOffset:]))

	if compressedLen < compressedStreamOffset || compressedLen > len(code) {
		return nil, FormatError(fmt.Sprintf("compressed length %d out of range", compressedLen))
	}

	var mtf moveToFront
	copy(mtf[:], code[headerSize:compressedStreamOffset])

	r := &bitReader{b: code[compressedStreamOffset:compressedLen]}
	out := make([]byte, 0, n)

	for len(out) < n {
		var err error
		if out, err = readToken(r, &mtf, out); err != nil {
			return nil, err
		}
	}

	return out[:n], nil
}
