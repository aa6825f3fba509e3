/*
Package lz implements the length/distance back-reference search shared by
the cartridge encoders.

A back-reference means "go back Distance bytes from the end of the output
and copy Length bytes". The copy may overlap the bytes it produces, so a
match is allowed to run from the window into the lookahead.
*/
package lz

import (
	"errors"
	"math/bits"
)

const (
	// Separator divides the length and distance of an encoded token
	Separator = ':'

	// MinLength and MinDistance are the smallest match that Compress
	// replaces with a token; anything shorter or nearer stays literal.
	MinLength   = 4
	MinDistance = 4
)

var errZeroValue = errors.New("lz: zero length or distance")

// Match is a back-reference found by FindMatch.
type Match struct {
	Length   int
	Distance int
}

// FindMatch searches window, the bytes already processed, for the longest
// run matching the start of lookahead, the bytes pending compression. Ties
// go to the earliest position in window. It reports false if not even the
// first byte of lookahead occurs in window.
func FindMatch(window, lookahead []byte) (Match, bool) {
	var best Match

	if len(lookahead) == 0 {
		return best, false
	}

	// Bytes at and after len(window) come from lookahead
	at := func(i int) byte {
		if i < len(window) {
			return window[i]
		}
		return lookahead[i-len(window)]
	}

	for start := range window {
		n := 0
		for n < len(lookahead) && at(start+n) == lookahead[n] {
			n++
		}
		if n > best.Length {
			best = Match{Length: n, Distance: len(window) - start}
		}
	}

	return best, best.Length > 0
}

// width returns the number of bytes needed to hold v, rounding its bit
// length up to the next whole byte. Zero still takes one byte.
func width(v uint) int {
	w := (bits.Len(v) + 7) >> 3
	if w == 0 {
		return 1
	}
	return w
}

func appendBigEndian(b []byte, v uint) []byte {
	for i := width(v) - 1; i >= 0; i-- {
		b = append(b, byte(v>>(uint(i)<<3)))
	}
	return b
}

// EncodeToken returns the token for a back-reference: the length and the
// distance, each as the shortest big-endian byte string that holds it,
// separated by Separator.
func EncodeToken(length, distance int) ([]byte, error) {
	if length <= 0 || distance <= 0 {
		return nil, errZeroValue
	}

	b := appendBigEndian(nil, uint(length))
	b = append(b, Separator)
	return appendBigEndian(b, uint(distance)), nil
}

// Compress replaces every sufficiently long and distant repeat in data with
// a token from EncodeToken, copying all other bytes through unchanged.
func Compress(data []byte) []byte {
	out := make([]byte, 0, len(data))

	for i := 0; i < len(data); {
		if m, ok := FindMatch(data[:i], data[i:]); ok && m.Length >= MinLength && m.Distance >= MinDistance {
			token, _ := EncodeToken(m.Length, m.Distance)
			out = append(out, token...)
			i += m.Length
			continue
		}
		out = append(out, data[i])
		i++
	}

	return out
}
