package cases

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/kernelcheck/check"
	"github.com/cwbudde/kernelcheck/kernels"
)

var fftSizes = []int{64, 256}

// The library transform and the direct DFT round differently; with unit
// inputs the outputs reach magnitude n, so the bound is absolute.
const fftEps = 1e-9

type fftTransform func(out, in []complex128)

// dftDirect is the O(n^2) reference transform, evaluated from a
// precomputed twiddle table so it stays usable under benchmarking.
func dftDirect(out, in []complex128) {
	n := len(in)
	twiddle := make([]complex128, n)
	for j := range twiddle {
		angle := -2 * math.Pi * float64(j) / float64(n)
		twiddle[j] = complex(math.Cos(angle), math.Sin(angle))
	}
	for k := range out {
		var sum complex128
		for t, x := range in {
			sum += x * twiddle[k*t%n]
		}
		out[k] = sum
	}
}

type forwardPlan interface {
	Forward(out, in []complex128) error
}

var fftPlans = map[int]forwardPlan{}

// fftLibrary runs the radix FFT library through cached per-size plans.
// Plan setup and execution only fail for invalid sizes, which the case
// never produces.
func fftLibrary(out, in []complex128) {
	n := len(in)
	plan, ok := fftPlans[n]
	if !ok {
		p, err := algofft.NewPlan64(n)
		if err != nil {
			panic(fmt.Sprintf("fft plan size %d: %v", n, err))
		}
		plan = p
		fftPlans[n] = plan
	}
	if err := plan.Forward(out, in); err != nil {
		panic(fmt.Sprintf("fft forward size %d: %v", n, err))
	}
}

func flattenComplex(v []complex128) []float64 {
	out := make([]float64, 0, 2*len(v))
	for _, c := range v {
		out = append(out, real(c), imag(c))
	}
	return out
}

func checkFFT(r *check.Runner, ctx check.Context) {
	eng := ctx.(*kernels.Engine)

	for _, n := range fftSizes {
		checkFFTSize(r, dftDirect, n)
		if eng.Flags != 0 {
			checkFFTSize(r, fftLibrary, n)
		}
	}
	r.Report("fft")
}

func checkFFTSize(r *check.Runner, fn fftTransform, n int) {
	ref, ok := check.Func(r, fn, "fft_%d", n)
	if !ok {
		return
	}
	in := make([]complex128, n)
	for i := range in {
		in[i] = complex(r.RandFloat64()*2-1, r.RandFloat64()*2-1)
	}
	want := make([]complex128, n)
	got := make([]complex128, n)

	ref(want, in)
	r.Protect(func() { fn(got, in) })
	check.Float64s(r, flattenComplex(want), flattenComplex(got), fftEps, 0, "out")

	r.Bench(func() { fn(got, in) })
}
