package convert

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encoder encodes an image into bytes.
type Encoder interface {
	Encode(w io.Writer, m image.Image) error
	// Ext returns the file extension for the format, including the leading dot.
	Ext() string
}

// NewEncoder returns the encoder for a format name.
func NewEncoder(format string) (Encoder, error) {
	switch format {
	case "png":
		return &PNGEncoder{enc: png.Encoder{CompressionLevel: png.BestSpeed}}, nil
	case "bmp":
		return &BMPEncoder{}, nil
	case "tiff":
		return &TIFFEncoder{Compression: tiff.Deflate}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// PNGEncoder writes PNG files.
type PNGEncoder struct {
	enc png.Encoder
}

func (e *PNGEncoder) Encode(w io.Writer, m image.Image) error {
	return e.enc.Encode(w, m)
}

func (e *PNGEncoder) Ext() string { return ".png" }

// BMPEncoder writes BMP files. Images with transparency are written with 32 bits per pixel.
type BMPEncoder struct{}

func (e *BMPEncoder) Encode(w io.Writer, m image.Image) error {
	return bmp.Encode(w, m)
}

func (e *BMPEncoder) Ext() string { return ".bmp" }

// TIFFEncoder writes TIFF files.
type TIFFEncoder struct {
	Compression tiff.CompressionType
}

func (e *TIFFEncoder) Encode(w io.Writer, m image.Image) error {
	return tiff.Encode(w, m, &tiff.Options{Compression: e.Compression, Predictor: true})
}

func (e *TIFFEncoder) Ext() string { return ".tiff" }
