package deco8

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches cartridge images at any depth
const DefaultPattern = "**/*.p8.png"

const scanWorkers = 10

func (d *Deco8) findFiles(ctx context.Context, base, pattern string) (<-chan string, <-chan error, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, nil, doublestar.ErrBadPattern
	}

	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			rel, err := filepath.Rel(base, file)
			if err != nil {
				return err
			}

			if ok, err := doublestar.Match(pattern, filepath.ToSlash(rel)); err != nil || !ok {
				return err
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (d *Deco8) cartridgeWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			c, hash, err := DecodeFile(file)
			if err != nil {
				d.logger.Printf("Skipping %v\n", err)
				continue
			}

			id, err := d.catalog.Add(file, hash, c)
			if err != nil {
				errc <- err
				return
			}
			d.logger.Printf("Added \"%s\" as %d, %s compression\n", file, id, c.Version())
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path decoding every cartridge image whose path relative to it
// matches pattern and adds them to the catalog. Files that fail to decode
// are logged and skipped.
func (d *Deco8) Scan(path, pattern string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := d.findFiles(ctx, dir, pattern)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < scanWorkers; i++ {
		errc, err := d.cartridgeWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
