package lz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeToken(t *testing.T) {
	tables := []struct {
		length, distance int
		want             []byte
	}{
		{256, 20, []byte{1, 0, 58, 20}},
		{1, 1, []byte{1, 58, 1}},
		{255, 255, []byte{255, 58, 255}},
		{0x10000, 2, []byte{1, 0, 0, 58, 2}},
	}

	for _, table := range tables {
		got, err := EncodeToken(table.length, table.distance)
		require.NoError(t, err)
		assert.Equal(t, table.want, got, "%d:%d", table.length, table.distance)
	}
}

func TestEncodeTokenZero(t *testing.T) {
	_, err := EncodeToken(0, 1)
	assert.Error(t, err)
	_, err = EncodeToken(1, 0)
	assert.Error(t, err)
}

func TestFindMatch(t *testing.T) {
	data := []byte{10, 20, 30, 40, 10, 20, 30, 40, 50}

	m, ok := FindMatch(data[:4], data[4:])
	require.True(t, ok)
	assert.Equal(t, Match{Length: 4, Distance: 4}, m)
}

func TestFindMatchLongestEarliest(t *testing.T) {
	window := []byte("abxabcxab")

	m, ok := FindMatch(window, []byte("abcd"))
	require.True(t, ok)
	assert.Equal(t, Match{Length: 3, Distance: 6}, m)

	m, ok = FindMatch(window, []byte("ab"))
	require.True(t, ok)
	assert.Equal(t, Match{Length: 2, Distance: 9}, m)
}

func TestFindMatchOverlap(t *testing.T) {
	m, ok := FindMatch([]byte("a"), []byte("aaaa"))
	require.True(t, ok)
	assert.Equal(t, Match{Length: 4, Distance: 1}, m)
}

func TestFindMatchNone(t *testing.T) {
	_, ok := FindMatch([]byte{1, 2, 3}, []byte{4, 5})
	assert.False(t, ok)

	_, ok = FindMatch(nil, []byte{1})
	assert.False(t, ok)

	_, ok = FindMatch([]byte{1}, nil)
	assert.False(t, ok)
}

func TestCompress(t *testing.T) {
	data := []byte{10, 20, 30, 40, 10, 20, 30, 40, 50}
	assert.Equal(t, []byte{10, 20, 30, 40, 4, 58, 4, 50}, Compress(data))

	// Near repeats are not worth a token
	assert.Equal(t, []byte("abcabcabc"), Compress([]byte("abcabcabc")))
}
