/*
Package deco8 is a library for cataloguing fantasy console cartridges
stored as PNG images.
*/
package deco8

import "log"

type Deco8 struct {
	catalog *Catalog
	logger  *log.Logger
}

// New returns a Deco8 using the catalog database in file, creating it if
// necessary.
func New(file string, logger *log.Logger) (*Deco8, error) {
	catalog, err := NewCatalog(file)
	if err != nil {
		return nil, err
	}

	return &Deco8{
		catalog: catalog,
		logger:  logger,
	}, nil
}

// Catalog returns the underlying catalog.
func (d *Deco8) Catalog() *Catalog {
	return d.catalog
}

func (d *Deco8) Close() error {
	return d.catalog.Close()
}
