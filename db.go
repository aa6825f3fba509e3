package deco8

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/deco8/cartridge"
	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

// Catalog is a database of decoded cartridges keyed by a hash of the image
// they were read from. The source code is stored zstd compressed.
type Catalog struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Entry is a cartridge recorded in the catalog.
type Entry struct {
	ID      int64
	Hash    string
	Path    string
	Version cartridge.Compression
	Lua     string
}

func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS cartridge (id INTEGER PRIMARY KEY NOT NULL, hash TEXT NOT NULL UNIQUE, path TEXT NOT NULL, version INTEGER NOT NULL, code_len INTEGER NOT NULL, code BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &Catalog{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

func (c *Catalog) Close() error {
	c.dec.Close()
	c.enc.Close()
	return c.db.Close()
}

// Add records the cartridge read from path with the given hash and returns
// its id. A cartridge with the same hash is only recorded once.
func (c *Catalog) Add(path, hash string, cart *cartridge.Cartridge) (int64, error) {
	lua := cart.Lua().String()
	code := c.enc.EncodeAll([]byte(lua), nil)

	if _, err := c.db.Exec("INSERT OR IGNORE INTO cartridge (hash, path, version, code_len, code) VALUES (?, ?, ?, ?, ?)", hash, path, int(cart.Version()), len(lua), code); err != nil {
		return 0, err
	}

	var id int64
	if err := c.db.QueryRow("SELECT id FROM cartridge WHERE hash = ?", hash).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (c *Catalog) scanEntry(row scanner) (*Entry, error) {
	var e Entry
	var version, length int
	var code []byte
	if err := row.Scan(&e.ID, &e.Hash, &e.Path, &version, &length, &code); err != nil {
		return nil, err
	}

	b, err := c.dec.DecodeAll(code, make([]byte, 0, length))
	if err != nil {
		return nil, fmt.Errorf("cartridge %s: %w", e.Hash, err)
	}

	e.Version = cartridge.Compression(version)
	e.Lua = string(b)

	return &e, nil
}

// FindByHash returns the cartridge with the given hash, or nil if there
// isn't one.
func (c *Catalog) FindByHash(hash string) (*Entry, error) {
	e, err := c.scanEntry(c.db.QueryRow("SELECT id, hash, path, version, code_len, code FROM cartridge WHERE hash = ?", hash))
	switch err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return e, nil
	default:
		return nil, err
	}
}

// List returns every cartridge in the catalog ordered by path.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query("SELECT id, hash, path, version, code_len, code FROM cartridge ORDER BY path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := c.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}

	return entries, rows.Err()
}
