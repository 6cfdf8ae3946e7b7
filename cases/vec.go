package cases

import (
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/kernelcheck/check"
	"github.com/cwbudde/kernelcheck/kernels"
)

const vecLen = 256

// FMA-contracted magnitude differs from the generic rounding by a couple
// of ULP; the external library is held to the same bound.
const magnitudeMaxULP = 3

func randomBlock(r *check.Runner, n int) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = r.RandFloat64()*2 - 1
	}
	return buf
}

func checkVec(r *check.Runner, ctx check.Context) {
	eng := ctx.(*kernels.Engine)

	checkMulBlock(r, eng.MulBlock)
	if eng.Flags != 0 {
		// The standalone vector library ships its own dispatch; cross-check
		// it once per non-generic level against our baseline.
		checkMulBlock(r, vecmath.MulBlock)
	}
	r.Report("mul_block")

	checkMagnitude(r, eng.Magnitude)
	if eng.Flags != 0 {
		checkMagnitude(r, vecmath.Magnitude)
	}
	r.Report("magnitude")

	checkMulBlockInPlace(r, mulBlockInPlaceRef)
	if eng.Flags != 0 {
		checkMulBlockInPlace(r, vecmath.MulBlockInPlace)
	}
	r.Report("mul_block_inplace")

	checkPower(r, powerRef)
	if eng.Flags != 0 {
		checkPower(r, vecmath.Power)
	}
	r.Report("power")
}

// Local references for the library-only primitives without an engine slot.

func mulBlockInPlaceRef(dst, src []float64) {
	for i := range dst {
		dst[i] *= src[i]
	}
}

func powerRef(dst, re, im []float64) {
	for i := range dst {
		dst[i] = re[i]*re[i] + im[i]*im[i]
	}
}

func checkMulBlockInPlace(r *check.Runner, fn func(dst, src []float64)) {
	ref, ok := check.Func(r, fn, "mul_block_inplace")
	if !ok {
		return
	}
	src := randomBlock(r, vecLen)
	want := randomBlock(r, vecLen)
	got := make([]float64, vecLen)
	copy(got, want)

	ref(want, src)
	r.Protect(func() { fn(got, src) })
	check.Float64s(r, want, got, 0, 0, "dst")

	r.Bench(func() { fn(got, src) })
}

func checkPower(r *check.Runner, fn func(dst, re, im []float64)) {
	ref, ok := check.Func(r, fn, "power")
	if !ok {
		return
	}
	re := randomBlock(r, vecLen)
	im := randomBlock(r, vecLen)
	want := make([]float64, vecLen)
	got := make([]float64, vecLen)

	ref(want, re, im)
	r.Protect(func() { fn(got, re, im) })
	check.Float64s(r, want, got, 0, magnitudeMaxULP, "dst")

	r.Bench(func() { fn(got, re, im) })
}

func checkMulBlock(r *check.Runner, fn kernels.MulFunc) {
	ref, ok := check.Func(r, fn, "mul_block")
	if !ok {
		return
	}
	a := randomBlock(r, vecLen)
	b := randomBlock(r, vecLen)
	want := make([]float64, vecLen)
	got := make([]float64, vecLen)

	ref(want, a, b)
	r.Protect(func() { fn(got, a, b) })
	// A single rounded multiply per element has one correct answer.
	check.Float64s(r, want, got, 0, 0, "dst")

	r.Bench(func() { fn(got, a, b) })
}

func checkMagnitude(r *check.Runner, fn kernels.MagnitudeFunc) {
	ref, ok := check.Func(r, fn, "magnitude")
	if !ok {
		return
	}
	re := randomBlock(r, vecLen)
	im := randomBlock(r, vecLen)
	want := make([]float64, vecLen)
	got := make([]float64, vecLen)

	ref(want, re, im)
	r.Protect(func() { fn(got, re, im) })
	check.Float64s(r, want, got, 0, magnitudeMaxULP, "dst")

	r.Bench(func() { fn(got, re, im) })
}
