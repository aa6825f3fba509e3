package deco8

import (
	"path/filepath"
	"testing"

	"github.com/bodgit/deco8/cartridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCatalogAdd(t *testing.T) {
	c := newTestCatalog(t)

	id, err := c.Add("b.p8.png", "0000000000000001", cartridge.New("print(\"b\")"))
	require.NoError(t, err)

	// Same hash is recorded only once
	dup, err := c.Add("copy.p8.png", "0000000000000001", cartridge.New("print(\"b\")"))
	require.NoError(t, err)
	assert.Equal(t, id, dup)

	_, err = c.Add("a.p8.png", "0000000000000002", cartridge.New("print(\"a\")"))
	require.NoError(t, err)

	entries, err := c.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.p8.png", entries[0].Path)
	assert.Equal(t, "print(\"a\")", entries[0].Lua)
	assert.Equal(t, "b.p8.png", entries[1].Path)
	assert.Equal(t, cartridge.V0, entries[1].Version)
}

func TestCatalogFindByHash(t *testing.T) {
	c := newTestCatalog(t)

	e, err := c.FindByHash("0000000000000001")
	require.NoError(t, err)
	assert.Nil(t, e)

	id, err := c.Add("a.p8.png", "0000000000000001", cartridge.New(""))
	require.NoError(t, err)

	e, err = c.FindByHash("0000000000000001")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, Entry{ID: id, Hash: "0000000000000001", Path: "a.p8.png", Version: cartridge.V0, Lua: ""}, *e)
}

func TestHashBytes(t *testing.T) {
	assert.Equal(t, "EF46DB3751D8E999", HashBytes(nil))
	assert.Len(t, HashBytes([]byte("cartridge")), 16)
}
