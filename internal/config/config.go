package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"
)

// Output formats understood by the converter.
var Formats = []string{"png", "bmp", "tiff"}

// DefaultMaxPixels bounds decoded images to 64 Mi pixels (256 MiB of RGBA).
const DefaultMaxPixels = 64 * 1024 * 1024

// Config holds all runtime configuration.
type Config struct {
	OutDir       string
	Format       string
	Workers      int
	MaxPixels    int
	IgnoreOrigin bool
	Inputs       []string
}

// ParseFlags parses flags for the converter binary.
func ParseFlags() *Config {
	cfg, _ := Parse(flag.CommandLine, os.Args[1:])
	return cfg
}

// Parse registers the converter flags on fs and parses args.
// Remaining positional arguments become the input files.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	fs.StringVar(&cfg.OutDir, "out", "", "Output directory (default: next to each input)")
	fs.StringVar(&cfg.Format, "format", "png", "Output format: "+strings.Join(Formats, ", "))
	fs.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "Number of files converted concurrently")
	fs.IntVar(&cfg.MaxPixels, "max-pixels", DefaultMaxPixels, "Reject images with more pixels than this (0 = no limit)")
	fs.BoolVar(&cfg.IgnoreOrigin, "ignore-origin", false, "Keep rows in file order instead of honoring the image origin")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Inputs = fs.Args()

	return cfg, nil
}

// Validate reports configuration errors.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("unknown format %q", c.Format))
	}

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}

	if c.MaxPixels < 0 {
		errs = append(errs, fmt.Errorf("max-pixels must not be negative, got %d", c.MaxPixels))
	}

	if len(c.Inputs) == 0 {
		errs = append(errs, errors.New("no input files"))
	}

	return errors.Join(errs...)
}
