package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"

	"github.com/gen2brain/tga"
	"github.com/gen2brain/tga/internal/config"
)

// Converter decodes TGA files and writes them in another image format.
type Converter struct {
	enc     Encoder
	opts    *tga.Options
	outDir  string
	workers int
}

// New creates a converter from the runtime configuration.
func New(cfg *config.Config) (*Converter, error) {
	enc, err := NewEncoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Converter{
		enc: enc,
		opts: &tga.Options{
			IgnoreOrigin: cfg.IgnoreOrigin,
			MaxPixels:    cfg.MaxPixels,
		},
		outDir:  cfg.OutDir,
		workers: workers,
	}, nil
}

// Convert converts all paths, running up to the configured number of conversions at once.
// The first failure cancels the conversions that have not started yet and is returned.
// It returns the number of files written.
func (c *Converter) Convert(ctx context.Context, paths []string) (int, error) {
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if _, err := c.ConvertFile(path); err != nil {
				return err
			}

			done.Add(1)

			return nil
		})
	}

	err := g.Wait()

	return int(done.Load()), err
}

// ConvertFile converts a single file and returns the path of the written output.
func (c *Converter) ConvertFile(path string) (string, error) {
	data, err := ReadInput(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	m, err := tga.DecodeBytes(data, c.opts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	out := OutputPath(path, c.outDir, c.enc.Ext())
	if err := c.write(out, m); err != nil {
		return "", fmt.Errorf("%s: %w", out, err)
	}

	log.Printf("%s -> %s (%dx%d)", path, out, m.Width, m.Height)

	return out, nil
}

// write encodes m into the file at path. A partially written file is removed on error.
func (c *Converter) write(path string, m *tga.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			os.Remove(path)
		}
	}()

	w := bufio.NewWriter(f)
	if err := c.enc.Encode(w, m.NRGBA()); err != nil {
		return err
	}

	return w.Flush()
}

// ReadInput reads a whole input file. Files ending in .zst are decompressed with zstd.
func ReadInput(path string) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zst") {
		return os.ReadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return data, nil
}

// OutputPath returns the output file name for an input: the input base name without
// its .zst and .tga extensions, with ext appended, in outDir or next to the input.
func OutputPath(in, outDir, ext string) string {
	base := filepath.Base(in)
	base = trimExt(base, ".zst")
	base = trimExt(base, ".tga")

	dir := outDir
	if dir == "" {
		dir = filepath.Dir(in)
	}

	return filepath.Join(dir, base+ext)
}

// trimExt removes ext from the end of name, ignoring case.
func trimExt(name, ext string) string {
	if len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
		return name[:len(name)-len(ext)]
	}

	return name
}

// IsDecodeError reports whether err was caused by the TGA data itself rather than file access or encoding.
func IsDecodeError(err error) bool {
	for _, target := range []error{
		tga.ErrTruncatedHeader,
		tga.ErrUnsupportedColorMap,
		tga.ErrInvalidDimensions,
		tga.ErrUnsupportedPixelDepth,
		tga.ErrUnsupportedImageType,
		tga.ErrTruncatedPixelData,
		tga.ErrMalformedRLEPacket,
		tga.ErrTooLarge,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
