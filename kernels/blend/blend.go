// Package blend provides the pixel blending and blur primitives under
// test: a portable reference for each plus specialized variants gated by
// CPU capability flags.
package blend

import "encoding/binary"

func satAdd(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// BlendBitmapsGeneric blends src over dst with per-byte saturating
// addition. This is the portable reference all specialized variants are
// verified against.
func BlendBitmapsGeneric(dst []uint8, dstStride int, src []uint8, srcStride int, w, h int) {
	for y := 0; y < h; y++ {
		d := dst[y*dstStride : y*dstStride+w]
		s := src[y*srcStride : y*srcStride+w]
		for x := range d {
			d[x] = satAdd(d[x], s[x])
		}
	}
}

const hiBits = 0x8080808080808080

// addSat8 performs eight lane-independent saturating byte additions inside
// one 64-bit word. The carry out of each byte is majority(x7, y7, c7),
// where c7 is the carry into the top bit of the 7-bit partial sum.
func addSat8(x, y uint64) uint64 {
	low := (x &^ hiBits) + (y &^ hiBits)
	sum := low ^ ((x ^ y) & hiBits)
	carry := ((x & y) | ((x | y) & low)) & hiBits
	return sum | (carry >> 7 * 0xff)
}

// BlendBitmapsSWAR is BlendBitmapsGeneric vectorized within a 64-bit
// register, eight pixels per step.
func BlendBitmapsSWAR(dst []uint8, dstStride int, src []uint8, srcStride int, w, h int) {
	for y := 0; y < h; y++ {
		d := dst[y*dstStride : y*dstStride+w]
		s := src[y*srcStride : y*srcStride+w]
		x := 0
		for ; x+8 <= w; x += 8 {
			dv := binary.LittleEndian.Uint64(d[x:])
			sv := binary.LittleEndian.Uint64(s[x:])
			binary.LittleEndian.PutUint64(d[x:], addSat8(dv, sv))
		}
		for ; x < w; x++ {
			d[x] = satAdd(d[x], s[x])
		}
	}
}

// BlendBitmapsWide widens the SWAR variant to sixteen pixels per step.
func BlendBitmapsWide(dst []uint8, dstStride int, src []uint8, srcStride int, w, h int) {
	for y := 0; y < h; y++ {
		d := dst[y*dstStride : y*dstStride+w]
		s := src[y*srcStride : y*srcStride+w]
		x := 0
		for ; x+16 <= w; x += 16 {
			d0 := binary.LittleEndian.Uint64(d[x:])
			d1 := binary.LittleEndian.Uint64(d[x+8:])
			s0 := binary.LittleEndian.Uint64(s[x:])
			s1 := binary.LittleEndian.Uint64(s[x+8:])
			binary.LittleEndian.PutUint64(d[x:], addSat8(d0, s0))
			binary.LittleEndian.PutUint64(d[x+8:], addSat8(d1, s1))
		}
		for ; x < w; x++ {
			d[x] = satAdd(d[x], s[x])
		}
	}
}
