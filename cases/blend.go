package cases

import (
	"github.com/cwbudde/kernelcheck/check"
	"github.com/cwbudde/kernelcheck/kernels"
)

const (
	blendStride = 64
	blendWidth  = 61
	blendHeight = 8
)

func randomBitmap(r *check.Runner, n int) []uint8 {
	buf := make([]uint8, n)
	r.RandFill(buf)
	return buf
}

func checkBlendBitmaps(r *check.Runner, ctx check.Context) {
	eng := ctx.(*kernels.Engine)

	if ref, ok := check.Func(r, eng.BlendBitmaps, "blend_bitmaps"); ok {
		// Random width so tail handling past the last full block is hit.
		// The generator is reseeded per version, so every version sees the
		// same size.
		w := 1 + r.RandIntn(blendWidth)
		src := randomBitmap(r, blendStride*blendHeight)
		dstRef := randomBitmap(r, blendStride*blendHeight)
		dstNew := make([]uint8, len(dstRef))
		copy(dstNew, dstRef)

		ref(dstRef, blendStride, src, blendStride, w, blendHeight)
		r.Protect(func() {
			eng.BlendBitmaps(dstNew, blendStride, src, blendStride, w, blendHeight)
		})
		check.Bytes(r, dstRef, blendStride, dstNew, blendStride, w, blendHeight, "dst")

		r.Bench(func() {
			eng.BlendBitmaps(dstNew, blendStride, src, blendStride, blendWidth, blendHeight)
		})
	}
	r.Report("blend_bitmaps")
}

const (
	blurStride = 64
	blurWidth  = 61
	blurHeight = 16
)

func checkBeBlur(r *check.Runner, ctx check.Context) {
	eng := ctx.(*kernels.Engine)

	if ref, ok := check.Func(r, eng.BeBlur, "be_blur"); ok {
		// Random interior with a zero border, matching how the blur is
		// applied to glyph bitmaps with padding around the ink box.
		bufRef := make([]uint8, blurStride*blurHeight)
		for y := 2; y < blurHeight-2; y++ {
			for x := 2; x < blurWidth-2; x++ {
				bufRef[y*blurStride+x] = uint8(r.Rand())
			}
		}
		bufNew := make([]uint8, len(bufRef))
		copy(bufNew, bufRef)
		tmp := make([]uint16, 3*blurStride)

		ref(bufRef, blurWidth, blurHeight, blurStride, tmp)
		for i := range tmp {
			tmp[i] = 0
		}
		r.Protect(func() {
			eng.BeBlur(bufNew, blurWidth, blurHeight, blurStride, tmp)
		})
		check.Bytes(r, bufRef, blurStride, bufNew, blurStride, blurWidth, blurHeight, "buf")

		r.Bench(func() {
			eng.BeBlur(bufNew, blurWidth, blurHeight, blurStride, tmp)
		})
	}
	r.Report("be_blur")
}
