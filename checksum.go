package deco8

import (
	"fmt"
	"io"
	"os"

	"github.com/bodgit/deco8/cartridge"
	"github.com/cespare/xxhash/v2"
)

func hashString(sum uint64) string {
	return fmt.Sprintf("%016X", sum)
}

// HashBytes returns the hash used to identify a cartridge image in the
// catalog.
func HashBytes(b []byte) string {
	return hashString(xxhash.Sum64(b))
}

// DecodeFile decodes the cartridge image in file and returns it along with
// the hash of the file contents.
func DecodeFile(file string) (*cartridge.Cartridge, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := xxhash.New()
	c, err := cartridge.FromPNG(io.TeeReader(f, h))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", file, err)
	}

	return c, hashString(h.Sum64()), nil
}
