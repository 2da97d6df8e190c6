package tga

import "fmt"

// RLE packets
//
// Each packet starts with a header byte. The high bit selects a run-length
// packet (one pixel repeated) or a raw packet (distinct pixels), and the low
// seven bits hold the pixel count minus one.
const (
	packetRLE   = 0x80
	packetCount = 0x7f
)

// decodeRLE decodes run-length encoded pixel data until the output buffer is full.
// A packet that would run past the last pixel is cut short.
func (d *decoder) decodeRLE() {
	dst := d.pixels
	if len(dst) == 0 {
		d.panic(fmt.Errorf("%w: empty output buffer", ErrMalformedRLEPacket))
	}

	var px [4]byte

	for o := 0; o < len(dst); {
		p := d.readByte()
		n := int(p&packetCount) + 1

		if remaining := (len(dst) - o) / 4; n > remaining {
			n = remaining
		}

		if n <= 0 || o%4 != 0 {
			d.panic(fmt.Errorf("%w: output offset %d, count %d", ErrMalformedRLEPacket, o, n))
		}

		if p&packetRLE != 0 {
			bgrToRGBA(px[:], d.read(d.bpp), d.bpp)

			for i := 0; i < n; i++ {
				copy(dst[o:o+4], px[:])
				o += 4
			}

			continue
		}

		bgrToRGBA(dst[o:o+n*4], d.read(n*d.bpp), d.bpp)
		o += n * 4
	}
}
