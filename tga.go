package tga

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// Standard error types for TGA decoding.
var (
	ErrTruncatedHeader       = errors.New("truncated header")
	ErrUnsupportedColorMap   = errors.New("unsupported color map")
	ErrInvalidDimensions     = errors.New("invalid dimensions")
	ErrUnsupportedPixelDepth = errors.New("unsupported pixel depth")
	ErrUnsupportedImageType  = errors.New("unsupported image type")
	ErrTruncatedPixelData    = errors.New("truncated pixel data")
	ErrMalformedRLEPacket    = errors.New("malformed RLE packet")
	ErrTooLarge              = errors.New("image too large")
)

// Options specifies decoding parameters.
type Options struct {
	// IgnoreOrigin skips orientation normalization and returns rows in the order they are stored in the file.
	// Most TGA files are stored bottom-up, so the result is usually vertically mirrored.
	IgnoreOrigin bool
	// MaxPixels rejects images whose width*height exceeds this value before the pixel buffer is allocated.
	// Zero means no limit.
	MaxPixels int
}

// Image is a decoded TGA image.
// Pix holds Width*Height*4 bytes in R, G, B, A order, row-major, starting at the top-left pixel.
// Alpha is not premultiplied.
type Image struct {
	Width, Height int
	Pix           []byte
}

// NRGBA returns an [image.NRGBA] sharing the pixel buffer of m.
func (m *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.Pix,
		Stride: m.Width * 4,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}

// Interface to check if a reader knows its remaining length.
type readerWithLen interface {
	Len() int
}

// readAllData reads data from r, pre-allocating if the size is known.
func readAllData(r io.Reader) ([]byte, error) {
	if rl, ok := r.(readerWithLen); ok {
		size := rl.Len()
		if size > 0 {
			data := make([]byte, size)
			_, err := io.ReadFull(r, data)
			if err != nil {
				return nil, fmt.Errorf("failed to read image data: %w", err)
			}

			return data, nil
		}
	}

	// Fallback for readers that don't implement Len() (e.g., network streams, os.File) or were empty.
	return io.ReadAll(r)
}

// DecodeBytes decodes a complete TGA file held in data.
// It accepts an optional Options struct to control decoding parameters.
// Only uncompressed and RLE compressed true-color images with 24 or 32 bits per pixel are supported.
func DecodeBytes(data []byte, opts ...*Options) (*Image, error) {
	d := &decoder{}
	if len(opts) > 0 && opts[0] != nil {
		d.ignoreOrigin = opts[0].IgnoreOrigin
		d.maxPixels = opts[0].MaxPixels
	}

	return d.decode(data)
}

// Decode reads a TGA image from r and returns it as an [image.Image].
// The returned image is always an *image.NRGBA.
func Decode(r io.Reader, opts ...*Options) (image.Image, error) {
	data, err := readAllData(r)
	if err != nil {
		return nil, err
	}

	m, err := DecodeBytes(data, opts...)
	if err != nil {
		return nil, err
	}

	return m.NRGBA(), nil
}

// DecodeConfig returns the color model and dimensions of a TGA image without decoding the pixel data.
// It reads only the fixed-size header, so the image ID and color map fields are not checked for truncation.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var buf [headerSize]byte

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return image.Config{}, fmt.Errorf("%w: %v", ErrTruncatedHeader, err)
		}

		return image.Config{}, err
	}

	h := readHeader(buf[:])

	if err := h.validate(); err != nil {
		return image.Config{}, err
	}

	if err := h.validateFormat(); err != nil {
		return image.Config{}, err
	}

	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

// init registers the TGA format with the standard library's image package.
// TGA has no signature, so the magic strings match the header bytes this package can decode:
// any ID length, no color map, and image type 2 or 10.
func init() {
	decodeWrapper := func(r io.Reader) (image.Image, error) {
		return Decode(r)
	}

	image.RegisterFormat("tga", "?\x00\x02", decodeWrapper, DecodeConfig)
	image.RegisterFormat("tga", "?\x00\x0a", decodeWrapper, DecodeConfig)
}
