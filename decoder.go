package tga

import (
	"fmt"
)

// decoder holds the state of a single TGA decode.
type decoder struct {
	data          []byte // Pixel data, starting right after the header, image ID and color map.
	pos           int    // Current position index in data.
	size          int    // Remaining bytes in data.
	header        Header // Parsed file header.
	width, height int    // Dimensions of the image.
	bpp           int    // Bytes per stored pixel (3 or 4).
	pixels        []byte // Decoded RGBA pixels.
	ignoreOrigin  bool   // Whether to keep rows in file order.
	maxPixels     int    // Upper bound on width*height, 0 for none.
}

// errDecode is used for internal panics during the per-pixel decoding path.
type errDecode struct{ error }

// panic triggers an internal panic to signal a decoding error in the hot path.
func (d *decoder) panic(err error) {
	panic(errDecode{err})
}

// maxInt is the largest value of type int on the target platform.
const maxInt = int(^uint(0) >> 1)

// decode parses the header, decodes the pixel data and normalizes the orientation.
// On error no image is returned.
func (d *decoder) decode(data []byte) (*Image, error) {
	h, offset, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if err := h.validateFormat(); err != nil {
		return nil, err
	}

	d.header = h
	d.width = int(h.Width)
	d.height = int(h.Height)
	d.bpp = int(h.PixelDepth) / 8
	d.data = data[offset:]
	d.pos = 0
	d.size = len(d.data)

	// Both dimensions are at most 65535, so the product fits in uint64 on every platform.
	npix := uint64(d.width) * uint64(d.height)
	if d.maxPixels > 0 && npix > uint64(d.maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, d.width, d.height, d.maxPixels)
	}

	if npix*4 > uint64(maxInt) {
		return nil, fmt.Errorf("%w: %dx%d does not fit in memory", ErrTooLarge, d.width, d.height)
	}

	if err := d.checkSize(npix); err != nil {
		return nil, err
	}

	d.pixels = make([]byte, npix*4)

	if err := d.decodePixels(); err != nil {
		d.pixels = nil

		return nil, err
	}

	if !d.ignoreOrigin {
		d.transform()
	}

	return &Image{
		Width:  d.width,
		Height: d.height,
		Pix:    d.pixels,
	}, nil
}

// checkSize rejects pixel data too short to hold npix pixels before the output buffer is allocated.
// Uncompressed data needs npix*bpp bytes. RLE data needs at least one packet per 128 pixels,
// each carrying a header byte and one pixel.
func (d *decoder) checkSize(npix uint64) error {
	bpp := uint64(d.bpp)

	var need uint64
	switch d.header.ImageType {
	case TypeTrueColor:
		need = npix * bpp
	case TypeRLETrueColor:
		need = (npix + 127) / 128 * (1 + bpp)
	}

	if uint64(d.size) < need {
		return fmt.Errorf("%w: %d bytes of pixel data, need at least %d", ErrTruncatedPixelData, d.size, need)
	}

	return nil
}

// decodePixels fills d.pixels from the pixel data in file row order.
// Handles panics from the hot path.
func (d *decoder) decodePixels() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if de, ok := r.(errDecode); ok {
				err = de.error
			} else {
				// Propagate other panics (e.g., runtime errors like index out of bounds)
				panic(r)
			}
		}
	}()

	switch d.header.ImageType {
	case TypeTrueColor:
		d.decodeRaw()
	case TypeRLETrueColor:
		d.decodeRLE()
	default:
		// validateFormat has already rejected every other type.
		return fmt.Errorf("%w: %d", ErrUnsupportedImageType, d.header.ImageType)
	}

	return nil
}

// decodeRaw decodes uncompressed pixel data.
func (d *decoder) decodeRaw() {
	npix := len(d.pixels) / 4
	bgrToRGBA(d.pixels, d.read(npix*d.bpp), d.bpp)
}
