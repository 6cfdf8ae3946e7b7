// Package vec provides the element-wise float64 primitives under test.
// The generic versions are the portable references; the unrolled and FMA
// variants stand in for instruction-set-specific code paths.
package vec

import "math"

// MulBlockGeneric performs element-wise multiplication: dst[i] = a[i]*b[i].
// Slices must have equal length. Panics if lengths differ.
func MulBlockGeneric(dst, a, b []float64) {
	if len(a) != len(b) || len(dst) != len(a) {
		panic("vec: slice length mismatch")
	}
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

// MulBlockUnrolled is MulBlockGeneric unrolled four wide. Per-element
// multiplication is exact, so results are bit-identical to the reference.
func MulBlockUnrolled(dst, a, b []float64) {
	if len(a) != len(b) || len(dst) != len(a) {
		panic("vec: slice length mismatch")
	}
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i+0] = a[i+0] * b[i+0]
		dst[i+1] = a[i+1] * b[i+1]
		dst[i+2] = a[i+2] * b[i+2]
		dst[i+3] = a[i+3] * b[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] = a[i] * b[i]
	}
}

// MagnitudeGeneric computes dst[i] = sqrt(re[i]^2 + im[i]^2).
// Slices must have equal length. Panics if lengths differ.
func MagnitudeGeneric(dst, re, im []float64) {
	if len(re) != len(im) || len(dst) != len(re) {
		panic("vec: slice length mismatch")
	}
	for i := range dst {
		dst[i] = math.Sqrt(re[i]*re[i] + im[i]*im[i])
	}
}

// MagnitudeFMA computes the squared sum with a fused multiply-add, the way
// a SIMD implementation would. The single rounding of the FMA can move the
// result by one ULP relative to the reference, so comparisons use a small
// ULP tolerance rather than bit equality.
func MagnitudeFMA(dst, re, im []float64) {
	if len(re) != len(im) || len(dst) != len(re) {
		panic("vec: slice length mismatch")
	}
	for i := range dst {
		dst[i] = math.Sqrt(math.FMA(re[i], re[i], im[i]*im[i]))
	}
}
