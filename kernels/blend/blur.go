package blend

// Separable [1 2 1] x [1 2 1] box blur, performed in place with exact
// integer arithmetic. The horizontal pass stores unscaled sums (max 1020)
// in uint16 scratch rows; the vertical pass combines three scratch rows and
// rescales. Pixels outside the image contribute zero. tmp must hold at
// least 3*stride elements.

// blurRowH computes the horizontal sums of one source row into dst:
// dst[x] = src[x-1] + 2*src[x] + src[x+1].
func blurRowH(dst []uint16, src []uint8, w int) {
	for x := 0; x < w; x++ {
		sum := 2 * uint16(src[x])
		if x > 0 {
			sum += uint16(src[x-1])
		}
		if x+1 < w {
			sum += uint16(src[x+1])
		}
		dst[x] = sum
	}
}

// blurRowV combines three horizontal-sum rows into one output row:
// dst[x] = (up[x] + 2*mid[x] + down[x] + 8) >> 4. A nil row contributes
// zero, which handles the image borders.
func blurRowV(dst []uint8, up, mid, down []uint16, w int) {
	for x := 0; x < w; x++ {
		var a, c uint32
		if up != nil {
			a = uint32(up[x])
		}
		if down != nil {
			c = uint32(down[x])
		}
		dst[x] = uint8((a + 2*uint32(mid[x]) + c + 8) >> 4)
	}
}

// BeBlurGeneric is the portable reference blur.
func BeBlurGeneric(buf []uint8, w, h, stride int, tmp []uint16) {
	if w <= 0 || h <= 0 {
		return
	}

	rows := [3][]uint16{
		tmp[0*stride : 0*stride+w],
		tmp[1*stride : 1*stride+w],
		tmp[2*stride : 2*stride+w],
	}

	var prev2, prev1 []uint16
	for y := 0; y < h; y++ {
		cur := rows[y%3]
		blurRowH(cur, buf[y*stride:y*stride+w], w)
		if y > 0 {
			blurRowV(buf[(y-1)*stride:(y-1)*stride+w], prev2, prev1, cur, w)
		}
		prev2, prev1 = prev1, cur
	}
	blurRowV(buf[(h-1)*stride:(h-1)*stride+w], prev2, prev1, nil, w)
}

// BeBlurUnrolled is BeBlurGeneric with both passes unrolled four wide.
// The arithmetic is identical, so outputs are bit-exact.
func BeBlurUnrolled(buf []uint8, w, h, stride int, tmp []uint16) {
	if w <= 0 || h <= 0 {
		return
	}

	rows := [3][]uint16{
		tmp[0*stride : 0*stride+w],
		tmp[1*stride : 1*stride+w],
		tmp[2*stride : 2*stride+w],
	}

	var prev2, prev1 []uint16
	for y := 0; y < h; y++ {
		cur := rows[y%3]
		blurRowH4(cur, buf[y*stride:y*stride+w], w)
		if y > 0 {
			blurRowV4(buf[(y-1)*stride:(y-1)*stride+w], prev2, prev1, cur, w)
		}
		prev2, prev1 = prev1, cur
	}
	blurRowV4(buf[(h-1)*stride:(h-1)*stride+w], prev2, prev1, nil, w)
}

func blurRowH4(dst []uint16, src []uint8, w int) {
	x := 1
	for ; x+4 < w; x += 4 {
		dst[x+0] = uint16(src[x-1]) + 2*uint16(src[x+0]) + uint16(src[x+1])
		dst[x+1] = uint16(src[x+0]) + 2*uint16(src[x+1]) + uint16(src[x+2])
		dst[x+2] = uint16(src[x+1]) + 2*uint16(src[x+2]) + uint16(src[x+3])
		dst[x+3] = uint16(src[x+2]) + 2*uint16(src[x+3]) + uint16(src[x+4])
	}
	// Borders and the tail go through the scalar path.
	blurRowHRange(dst, src, w, x, w)
	blurRowHRange(dst, src, w, 0, 1)
}

func blurRowHRange(dst []uint16, src []uint8, w, from, to int) {
	for x := from; x < to; x++ {
		sum := 2 * uint16(src[x])
		if x > 0 {
			sum += uint16(src[x-1])
		}
		if x+1 < w {
			sum += uint16(src[x+1])
		}
		dst[x] = sum
	}
}

func blurRowV4(dst []uint8, up, mid, down []uint16, w int) {
	if up != nil && down != nil {
		x := 0
		for ; x+4 <= w; x += 4 {
			dst[x+0] = uint8((uint32(up[x+0]) + 2*uint32(mid[x+0]) + uint32(down[x+0]) + 8) >> 4)
			dst[x+1] = uint8((uint32(up[x+1]) + 2*uint32(mid[x+1]) + uint32(down[x+1]) + 8) >> 4)
			dst[x+2] = uint8((uint32(up[x+2]) + 2*uint32(mid[x+2]) + uint32(down[x+2]) + 8) >> 4)
			dst[x+3] = uint8((uint32(up[x+3]) + 2*uint32(mid[x+3]) + uint32(down[x+3]) + 8) >> 4)
		}
		for ; x < w; x++ {
			dst[x] = uint8((uint32(up[x]) + 2*uint32(mid[x]) + uint32(down[x]) + 8) >> 4)
		}
		return
	}
	blurRowV(dst, up, mid, down, w)
}
