package tga

// transform reorders the decoded pixels so the first row is the top of the image
// and each row runs left to right, based on the image descriptor origin bits.
// The buffer is modified in place.
func (d *decoder) transform() {
	if !d.header.TopToBottom() {
		flipVertical(d.pixels, d.width, d.height)
	}

	if d.header.RightToLeft() {
		flipHorizontal(d.pixels, d.width, d.height)
	}
}

// flipVertical reverses the order of the rows of an RGBA buffer.
func flipVertical(pix []byte, width, height int) {
	stride := width * 4
	tmp := make([]byte, stride)

	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : top*stride+stride]
		b := pix[bottom*stride : bottom*stride+stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// flipHorizontal reverses the order of the pixels within each row of an RGBA buffer.
func flipHorizontal(pix []byte, width, height int) {
	stride := width * 4

	for y := 0; y < height; y++ {
		row := pix[y*stride : y*stride+stride]

		for l, r := 0, (width-1)*4; l < r; l, r = l+4, r-4 {
			row[l], row[r] = row[r], row[l]
			row[l+1], row[r+1] = row[r+1], row[l+1]
			row[l+2], row[r+2] = row[r+2], row[l+2]
			row[l+3], row[r+3] = row[r+3], row[l+3]
		}
	}
}
