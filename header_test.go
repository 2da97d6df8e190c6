package tga

import (
	"errors"
	"testing"
)

// TestParseHeader checks field extraction, including little-endian multi-byte fields.
func TestParseHeader(t *testing.T) {
	data := []byte{
		2, 0, 10,               // ID length, color map type, image type
		0x34, 0x12, 0, 0, 0,    // color map origin, length, depth
		0x10, 0x00, 0x20, 0x01, // x and y origin
		0x2C, 0x01, 0xC8, 0x00, // 300x200
		32, 0x38,
		'h', 'i',
	}

	h, offset, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}

	want := Header{
		IDLength:        2,
		ImageType:       TypeRLETrueColor,
		ColorMapOrigin:  0x1234,
		XOrigin:         0x10,
		YOrigin:         0x120,
		Width:           300,
		Height:          200,
		PixelDepth:      32,
		ImageDescriptor: 0x38,
	}

	if h != want {
		t.Errorf("ParseHeader got %+v, want %+v", h, want)
	}

	if offset != 20 {
		t.Errorf("Expected pixel data offset 20, got %d", offset)
	}

	if !h.TopToBottom() || !h.RightToLeft() || h.AlphaBits() != 8 {
		t.Errorf("Descriptor 0x38 - got top %v, right %v, alpha %d", h.TopToBottom(), h.RightToLeft(), h.AlphaBits())
	}
}

// TestPixelDataOffset checks that color map entries are rounded up to whole bytes.
func TestPixelDataOffset(t *testing.T) {
	testCases := []struct {
		idLength uint8
		length   uint16
		depth    uint8
		want     int
	}{
		{0, 0, 0, 18},
		{5, 0, 24, 23},
		{0, 256, 24, 18 + 768},
		{0, 256, 32, 18 + 1024},
		{0, 16, 15, 18 + 32},
		{1, 3, 16, 18 + 1 + 6},
		{0, 4, 1, 18 + 4},
		{255, 0xFFFF, 32, 18 + 255 + 0xFFFF*4},
	}

	for _, tc := range testCases {
		h := Header{IDLength: tc.idLength, ColorMapLength: tc.length, ColorMapDepth: tc.depth}
		if got := h.PixelDataOffset(); got != tc.want {
			t.Errorf("PixelDataOffset(id %d, %d entries of %d bits) = %d, want %d", tc.idLength, tc.length, tc.depth, got, tc.want)
		}
	}
}

// TestParseHeaderErrors checks the header-level failures.
// Image type and pixel depth are left to the pixel decoder.
func TestParseHeaderErrors(t *testing.T) {
	header := func(mod func(b []byte)) []byte {
		b := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 24, 0}
		mod(b)

		return b
	}

	testCases := []struct {
		name string
		data []byte
		want error
	}{
		{"Short", make([]byte, 17), ErrTruncatedHeader},
		{"IDPastEnd", header(func(b []byte) { b[0] = 1 }), ErrTruncatedHeader},
		{"ColorMap", header(func(b []byte) { b[1] = 1 }), ErrUnsupportedColorMap},
		{"ZeroSize", header(func(b []byte) { b[12], b[14] = 0, 0 }), ErrInvalidDimensions},
		{"Grayscale", header(func(b []byte) { b[2] = TypeGrayscale }), nil},
		{"Depth16", header(func(b []byte) { b[16] = 16 }), nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseHeader(tc.data)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("ParseHeader failed: %v", err)
				}

				return
			}

			if !errors.Is(err, tc.want) {
				t.Fatalf("Got error %v, want %v", err, tc.want)
			}
		})
	}
}
