package tga

import (
	"bytes"
)

// encodeOptions describes how encodeTGA lays out a test file.
type encodeOptions struct {
	depth      int    // 24 or 32.
	descriptor byte   // Image descriptor byte, origin bits decide row and pixel order.
	rle        bool   // Use image type 10 instead of 2.
	id         []byte // Optional image ID field.
}

// encodeTGA builds a TGA file from canonical RGBA pixels (top-left origin, row-major).
// Rows and pixels are written in the order the descriptor declares, so a correct
// decoder must return exactly pix (with alpha forced to 255 for 24-bit output).
func encodeTGA(width, height int, pix []byte, opts encodeOptions) []byte {
	imageType := byte(TypeTrueColor)
	if opts.rle {
		imageType = TypeRLETrueColor
	}

	buf := []byte{
		byte(len(opts.id)), 0, imageType,
		0, 0, 0, 0, 0, // color map specification
		0, 0, 0, 0,    // x and y origin
		byte(width), byte(width >> 8),
		byte(height), byte(height >> 8),
		byte(opts.depth),
		opts.descriptor,
	}
	buf = append(buf, opts.id...)

	topToBottom := opts.descriptor&descTopToBottom != 0
	rightToLeft := opts.descriptor&descRightToLeft != 0

	bpp := opts.depth / 8
	stored := make([][]byte, 0, width*height)

	for fy := 0; fy < height; fy++ {
		y := fy
		if !topToBottom {
			y = height - 1 - fy
		}

		for fx := 0; fx < width; fx++ {
			x := fx
			if rightToLeft {
				x = width - 1 - fx
			}

			p := pix[(y*width+x)*4:]
			px := []byte{p[2], p[1], p[0], p[3]}
			stored = append(stored, px[:bpp])
		}
	}

	if !opts.rle {
		for _, px := range stored {
			buf = append(buf, px...)
		}

		return buf
	}

	return append(buf, packRLE(stored)...)
}

// packRLE greedily packs stored pixels into run-length and raw packets of at most 128 pixels.
func packRLE(px [][]byte) []byte {
	var out []byte

	for i := 0; i < len(px); {
		run := 1
		for i+run < len(px) && run < 128 && bytes.Equal(px[i+run], px[i]) {
			run++
		}

		if run > 1 {
			out = append(out, packetRLE|byte(run-1))
			out = append(out, px[i]...)
			i += run

			continue
		}

		j := i + 1
		for j < len(px) && j-i < 128 && (j+1 >= len(px) || !bytes.Equal(px[j], px[j+1])) {
			j++
		}

		out = append(out, byte(j-i-1))
		for k := i; k < j; k++ {
			out = append(out, px[k]...)
		}

		i = j
	}

	return out
}

// testPixels returns a deterministic RGBA grid with horizontal runs of equal pixels,
// so RLE encoding produces a mix of run-length and raw packets.
// When opaque is true every alpha value is 255.
func testPixels(width, height int, opaque bool) []byte {
	pix := make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			v := x / 3

			if x%7 == 6 {
				v = x * 13
			}

			pix[i] = byte(v*31 + y*17)
			pix[i+1] = byte(v*7 + y*3)
			pix[i+2] = byte(y*59 + 11)
			pix[i+3] = byte(v*45 + 200)

			if opaque {
				pix[i+3] = 0xff
			}
		}
	}

	return pix
}
