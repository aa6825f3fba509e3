package cartridge

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOldLookup(t *testing.T) {
	assert.Len(t, oldLookup, maxTableToken)
}

func TestV1Tokens(t *testing.T) {
	tables := []struct {
		name  string
		n     uint16
		body  []byte
		wants string
	}{
		{"table", 3, []byte{0x0d, 0x0e, 0x0f}, "abc"},
		{"newline space", 2, []byte{0x01, 0x02}, "\n "},
		{"literal", 3, []byte{0x00, 'X', 0x00, '"', 0x3b}, "X\"_"},
		// Go back 3, copy 3
		{"back-reference", 6, []byte{0x0d, 0x0e, 0x0f, 0x3c, 0x13}, "abcabc"},
		// Go back 1, copy 5, overlapping the output
		{"overlap", 6, []byte{0x0d, 0x3c, 0x31}, "aaaaaa"},
		// Go back 18 (0x3d: 16 + low nibble 2), copy 2
		{"distance", 20, []byte{
			0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13, 0x14, 0x15,
			0x16, 0x17, 0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e,
			0x3d, 0x02,
		}, "abcdefghijklmnopqrab"},
		// Back-reference runs past the decompressed length
		{"truncated run", 4, []byte{0x0d, 0x0e, 0x3c, 0xf2}, "abab"},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			c, err := FromBytes(newData(magicV1, table.n, 0, table.body))
			require.NoError(t, err)
			assert.Equal(t, V1, c.Version())
			assert.Equal(t, table.wants, c.Lua().String())
		})
	}
}

func TestV1BadBackReference(t *testing.T) {
	tables := []struct {
		name string
		body []byte
	}{
		{"empty output", []byte{0x3c, 0x11}},
		{"too far", []byte{0x0d, 0x0e, 0x3c, 0x13}},
		{"zero distance", []byte{0x0d, 0x3c, 0x10}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := FromBytes(newData(magicV1, 10, 0, table.body))
			var de DecodeError
			requireErrorType(t, err, &de)
		})
	}
}

func TestV1Truncated(t *testing.T) {
	_, err := FromBytes(newData(magicV1, 0xffff, 0, nil))
	assert.Equal(t, errTruncated, err)

	// Literal escape in the very last byte of the cartridge
	data := newData(magicV1, 0xffff, 0, nil)
	for i := codeOffset + headerSize; i < Size; i++ {
		data[i] = 0x0d
	}
	data[Size-1] = 0x00
	_, err = FromBytes(data)
	assert.Equal(t, errTruncated, err)
}

func TestV1InvalidUTF8(t *testing.T) {
	_, err := FromBytes(newData(magicV1, 1, 0, []byte{0x00, 0xc3}))
	assert.Equal(t, errInvalidUTF8, err)
}

func TestV1RoundTrip(t *testing.T) {
	tables := []struct {
		name string
		txt  string
	}{
		{"empty", ""},
		{"program", testProgram},
		{"repeated", strings.Repeat(testProgram, 200)},
		{"zero bytes", "a\x00\x00\x00b"},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			data, err := New(table.txt).Bytes(V1)
			require.NoError(t, err)
			assert.Equal(t, V1, Detect(data))

			c, err := FromBytes(data)
			require.NoError(t, err)
			assert.Equal(t, table.txt, c.Lua().String())
		})
	}
}

func TestV1Compresses(t *testing.T) {
	txt := strings.Repeat(testProgram, 200)

	// Too big for V0
	_, err := New(txt).Bytes(V0)
	require.Error(t, err)

	_, err = New(txt).Bytes(V1)
	assert.NoError(t, err)
}

func TestV1EncodeTooLarge(t *testing.T) {
	var fe FormatError

	// Upper case letters need a literal escape each
	r := rand.New(rand.NewSource(1))
	b := make([]byte, 40000)
	for i := range b {
		b[i] = byte('A' + r.Intn(26))
	}
	_, err := New(string(b)).Bytes(V1)
	requireErrorType(t, err, &fe)

	_, err = New(strings.Repeat("a", 0x10000)).Bytes(V1)
	requireErrorType(t, err, &fe)
}
