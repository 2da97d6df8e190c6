package tga

import "fmt"

// Pixel data cursor
//
// Every read checks the remaining length first, so corrupt files fail with
// ErrTruncatedPixelData instead of indexing past the end of the buffer.

// readByte consumes a single byte of pixel data.
func (d *decoder) readByte() byte {
	if d.size <= 0 {
		d.panic(fmt.Errorf("%w: packet header at offset %d", ErrTruncatedPixelData, d.pos))
	}

	b := d.data[d.pos]
	d.pos++
	d.size--

	return b
}

// read consumes n bytes of pixel data and returns them without copying.
func (d *decoder) read(n int) []byte {
	if n < 0 {
		d.panic(fmt.Errorf("%w: negative read of %d bytes at offset %d", ErrMalformedRLEPacket, n, d.pos))
	}

	if d.size < n {
		d.panic(fmt.Errorf("%w: need %d bytes at offset %d, %d left", ErrTruncatedPixelData, n, d.pos, d.size))
	}

	b := d.data[d.pos : d.pos+n : d.pos+n]
	d.pos += n
	d.size -= n

	return b
}
