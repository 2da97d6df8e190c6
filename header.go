package tga

import (
	"encoding/binary"
	"fmt"
)

// headerSize is the length of the fixed TGA header.
const headerSize = 18

// Image types defined by the TGA format.
const (
	TypeNoData         = 0
	TypeColorMapped    = 1
	TypeTrueColor      = 2
	TypeGrayscale      = 3
	TypeRLEColorMapped = 9
	TypeRLETrueColor   = 10
	TypeRLEGrayscale   = 11
)

var typeNames = map[uint8]string{
	TypeNoData:         "no image data",
	TypeColorMapped:    "color-mapped",
	TypeTrueColor:      "true-color",
	TypeGrayscale:      "grayscale",
	TypeRLEColorMapped: "RLE color-mapped",
	TypeRLETrueColor:   "RLE true-color",
	TypeRLEGrayscale:   "RLE grayscale",
}

// Image descriptor bits.
const (
	descAlphaMask   = 0x0f
	descRightToLeft = 0x10
	descTopToBottom = 0x20
)

// Header is the fixed 18-byte header at the start of every TGA file.
// Multi-byte fields are stored little-endian.
type Header struct {
	IDLength        uint8  // Length of the image ID field that follows the header.
	ColorMapType    uint8  // 0 if there is no color map, 1 if one is present.
	ImageType       uint8  // Compression and color model, see the Type constants.
	ColorMapOrigin  uint16 // Index of the first color map entry.
	ColorMapLength  uint16 // Number of color map entries.
	ColorMapDepth   uint8  // Bits per color map entry.
	XOrigin         uint16 // Horizontal screen position of the lower-left corner.
	YOrigin         uint16 // Vertical screen position of the lower-left corner.
	Width           uint16 // Image width in pixels.
	Height          uint16 // Image height in pixels.
	PixelDepth      uint8  // Bits per pixel.
	ImageDescriptor uint8  // Alpha depth in bits 0-3, pixel ordering in bits 4-5.
}

// RightToLeft reports whether pixels within a row are stored starting from the right edge.
func (h Header) RightToLeft() bool {
	return h.ImageDescriptor&descRightToLeft != 0
}

// TopToBottom reports whether the first stored row is the top of the image.
func (h Header) TopToBottom() bool {
	return h.ImageDescriptor&descTopToBottom != 0
}

// AlphaBits returns the number of attribute bits per pixel declared by the image descriptor.
func (h Header) AlphaBits() int {
	return int(h.ImageDescriptor & descAlphaMask)
}

// PixelDataOffset returns the byte offset of the pixel data, past the header, the image ID and the color map.
func (h Header) PixelDataOffset() int {
	entrySize := (int(h.ColorMapDepth) + 7) / 8

	return headerSize + int(h.IDLength) + int(h.ColorMapLength)*entrySize
}

// readHeader decodes the header fields from buf, which must hold at least headerSize bytes.
func readHeader(buf []byte) Header {
	return Header{
		IDLength:        buf[0],
		ColorMapType:    buf[1],
		ImageType:       buf[2],
		ColorMapOrigin:  binary.LittleEndian.Uint16(buf[3:5]),
		ColorMapLength:  binary.LittleEndian.Uint16(buf[5:7]),
		ColorMapDepth:   buf[7],
		XOrigin:         binary.LittleEndian.Uint16(buf[8:10]),
		YOrigin:         binary.LittleEndian.Uint16(buf[10:12]),
		Width:           binary.LittleEndian.Uint16(buf[12:14]),
		Height:          binary.LittleEndian.Uint16(buf[14:16]),
		PixelDepth:      buf[16],
		ImageDescriptor: buf[17],
	}
}

// ParseHeader reads the TGA header from data and returns it together with the offset of the pixel data.
// It checks that data is long enough to reach the pixel data, that the image has no color map,
// and that both dimensions are non-zero. The image type and pixel depth are not checked.
func ParseHeader(data []byte) (Header, int, error) {
	if len(data) < headerSize {
		return Header{}, 0, fmt.Errorf("%w: %d bytes, need %d", ErrTruncatedHeader, len(data), headerSize)
	}

	h := readHeader(data)

	offset := h.PixelDataOffset()
	if offset > len(data) {
		return Header{}, 0, fmt.Errorf("%w: pixel data starts at %d, file is %d bytes", ErrTruncatedHeader, offset, len(data))
	}

	if err := h.validate(); err != nil {
		return Header{}, 0, err
	}

	return h, offset, nil
}

// validate checks the fields every decodable image must satisfy.
func (h Header) validate() error {
	if h.ColorMapType == 1 {
		return fmt.Errorf("%w: %d entries of %d bits", ErrUnsupportedColorMap, h.ColorMapLength, h.ColorMapDepth)
	}

	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, h.Width, h.Height)
	}

	return nil
}

// validateFormat checks that the image type and pixel depth are ones the pixel decoder handles.
func (h Header) validateFormat() error {
	switch h.ImageType {
	case TypeTrueColor, TypeRLETrueColor:
	default:
		if name, ok := typeNames[h.ImageType]; ok {
			return fmt.Errorf("%w: %d (%s)", ErrUnsupportedImageType, h.ImageType, name)
		}

		return fmt.Errorf("%w: %d", ErrUnsupportedImageType, h.ImageType)
	}

	if h.PixelDepth != 24 && h.PixelDepth != 32 {
		return fmt.Errorf("%w: %d bits", ErrUnsupportedPixelDepth, h.PixelDepth)
	}

	return nil
}
