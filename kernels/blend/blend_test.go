package blend

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestSatAdd(t *testing.T) {
	tests := []struct {
		a, b, want uint8
	}{
		{0, 0, 0},
		{1, 2, 3},
		{200, 55, 255},
		{200, 56, 255},
		{255, 255, 255},
		{128, 127, 255},
		{128, 128, 255},
	}
	for _, tt := range tests {
		if got := satAdd(tt.a, tt.b); got != tt.want {
			t.Errorf("satAdd(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAddSat8MatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := rng.Uint64()
		y := rng.Uint64()
		got := addSat8(x, y)
		for lane := 0; lane < 8; lane++ {
			xa := uint8(x >> (8 * lane))
			ya := uint8(y >> (8 * lane))
			want := satAdd(xa, ya)
			if g := uint8(got >> (8 * lane)); g != want {
				t.Fatalf("addSat8 lane %d of %#x + %#x = %d, want %d", lane, x, y, g, want)
			}
		}
	}
}

func randBitmap(rng *rand.Rand, n int) []uint8 {
	buf := make([]uint8, n)
	rng.Read(buf)
	return buf
}

func TestBlendVariantsMatchGeneric(t *testing.T) {
	variants := []struct {
		name string
		fn   func(dst []uint8, dstStride int, src []uint8, srcStride int, w, h int)
	}{
		{"swar", BlendBitmapsSWAR},
		{"wide", BlendBitmapsWide},
	}
	sizes := []struct{ w, h, stride int }{
		{1, 1, 1},
		{7, 3, 8},
		{8, 4, 8},
		{15, 2, 16},
		{16, 2, 16},
		{17, 5, 24},
		{61, 8, 64},
		{64, 8, 64},
	}

	rng := rand.New(rand.NewSource(2))
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			for _, sz := range sizes {
				src := randBitmap(rng, sz.stride*sz.h)
				want := randBitmap(rng, sz.stride*sz.h)
				got := make([]uint8, len(want))
				copy(got, want)

				BlendBitmapsGeneric(want, sz.stride, src, sz.stride, sz.w, sz.h)
				v.fn(got, sz.stride, src, sz.stride, sz.w, sz.h)

				if !bytes.Equal(want, got) {
					t.Errorf("%dx%d stride %d: output differs from reference",
						sz.w, sz.h, sz.stride)
				}
			}
		})
	}
}

func TestBlendLeavesPaddingUntouched(t *testing.T) {
	const w, h, stride = 5, 3, 8
	src := make([]uint8, stride*h)
	dst := make([]uint8, stride*h)
	for i := range dst {
		dst[i] = 0x5a
		src[i] = 0xff
	}

	BlendBitmapsSWAR(dst, stride, src, stride, w, h)
	for y := 0; y < h; y++ {
		for x := w; x < stride; x++ {
			if dst[y*stride+x] != 0x5a {
				t.Fatalf("padding byte (%d,%d) overwritten: %#x", x, y, dst[y*stride+x])
			}
		}
		for x := 0; x < w; x++ {
			if dst[y*stride+x] != 0xff {
				t.Fatalf("pixel (%d,%d) = %#x, want saturated 0xff", x, y, dst[y*stride+x])
			}
		}
	}
}

func TestBlendDifferentStrides(t *testing.T) {
	const w, h = 9, 2
	rng := rand.New(rand.NewSource(3))
	src := randBitmap(rng, 16*h)
	dstA := randBitmap(rng, 32*h)
	dstB := make([]uint8, 12*h)
	for y := 0; y < h; y++ {
		copy(dstB[y*12:y*12+w], dstA[y*32:y*32+w])
	}

	BlendBitmapsGeneric(dstA, 32, src, 16, w, h)
	BlendBitmapsWide(dstB, 12, src, 16, w, h)
	for y := 0; y < h; y++ {
		if !bytes.Equal(dstA[y*32:y*32+w], dstB[y*12:y*12+w]) {
			t.Fatalf("row %d differs across strides", y)
		}
	}
}
