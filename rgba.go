package tga

// bgrToRGBA converts packed BGR (bpp 3) or BGRA (bpp 4) pixels from src into RGBA pixels in dst.
// The number of pixels converted is len(dst)/4. Pixels without alpha become opaque.
func bgrToRGBA(dst, src []byte, bpp int) {
	n := len(dst) / 4

	if bpp == 4 {
		for i := 0; i < n; i++ {
			s := src[i*4 : i*4+4 : i*4+4]
			p := dst[i*4 : i*4+4 : i*4+4]
			p[0] = s[2]
			p[1] = s[1]
			p[2] = s[0]
			p[3] = s[3]
		}

		return
	}

	for i := 0; i < n; i++ {
		s := src[i*3 : i*3+3 : i*3+3]
		p := dst[i*4 : i*4+4 : i*4+4]
		p[0] = s[2]
		p[1] = s[1]
		p[2] = s[0]
		p[3] = 0xff
	}
}
