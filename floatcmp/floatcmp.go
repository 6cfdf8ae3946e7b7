// Package floatcmp provides tolerance predicates for comparing floating-point
// kernel outputs.
//
// Two notions of closeness are supported and usually combined: bit-pattern
// distance in units in the last place (ULP), which scales with magnitude, and
// an absolute epsilon, which covers results near zero where one ULP is
// vanishingly small. NearULPOrEps accepts a pair if either test passes.
//
// All predicates are pure and stateless. Array variants short-circuit on the
// first mismatching element and return an all-or-nothing verdict.
package floatcmp

import "math"

// NearULP reports whether a and b are within maxULP units in the last place
// of each other. When the signs differ only exact equality qualifies, which
// deliberately makes +0.0 and -0.0 compare equal despite their differing
// sign bits.
func NearULP(a, b float32, maxULP uint) bool {
	x := math.Float32bits(a)
	y := math.Float32bits(b)

	if x>>31 != y>>31 {
		return a == b
	}

	var dist uint32
	if x > y {
		dist = x - y
	} else {
		dist = y - x
	}
	return uint(dist) <= maxULP
}

// NearULPArray applies NearULP elementwise. Slices must have equal length.
func NearULPArray(a, b []float32, maxULP uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !NearULP(a[i], b[i], maxULP) {
			return false
		}
	}
	return true
}

// NearAbsEps reports whether |a-b| < eps.
func NearAbsEps(a, b, eps float32) bool {
	return math.Abs(float64(a)-float64(b)) < float64(eps)
}

// NearAbsEpsArray applies NearAbsEps elementwise. Slices must have equal
// length.
func NearAbsEpsArray(a, b []float32, eps float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !NearAbsEps(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

// NearULPOrEps reports whether a and b pass either the ULP test or the
// epsilon test. The combination is robust across the whole float range:
// the ULP bound governs large magnitudes, the epsilon bound governs values
// near zero.
func NearULPOrEps(a, b, eps float32, maxULP uint) bool {
	return NearULP(a, b, maxULP) || NearAbsEps(a, b, eps)
}

// NearULPOrEpsArray applies NearULPOrEps elementwise. Slices must have equal
// length.
func NearULPOrEpsArray(a, b []float32, eps float32, maxULP uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !NearULPOrEps(a[i], b[i], eps, maxULP) {
			return false
		}
	}
	return true
}

// NearULP64 is NearULP for float64 values.
func NearULP64(a, b float64, maxULP uint) bool {
	x := math.Float64bits(a)
	y := math.Float64bits(b)

	if x>>63 != y>>63 {
		return a == b
	}

	var dist uint64
	if x > y {
		dist = x - y
	} else {
		dist = y - x
	}
	return dist <= uint64(maxULP)
}

// NearULP64Array applies NearULP64 elementwise. Slices must have equal
// length.
func NearULP64Array(a, b []float64, maxULP uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !NearULP64(a[i], b[i], maxULP) {
			return false
		}
	}
	return true
}

// NearAbsEps64 reports whether |a-b| < eps.
func NearAbsEps64(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// NearAbsEps64Array applies NearAbsEps64 elementwise. Slices must have equal
// length.
func NearAbsEps64Array(a, b []float64, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !NearAbsEps64(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

// NearULPOrEps64 is the combined predicate for float64 values.
func NearULPOrEps64(a, b, eps float64, maxULP uint) bool {
	return NearULP64(a, b, maxULP) || NearAbsEps64(a, b, eps)
}

// NearULPOrEps64Array applies NearULPOrEps64 elementwise. Slices must have
// equal length.
func NearULPOrEps64Array(a, b []float64, eps float64, maxULP uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !NearULPOrEps64(a[i], b[i], eps, maxULP) {
			return false
		}
	}
	return true
}
