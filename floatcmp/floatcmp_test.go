package floatcmp

import (
	"math"
	"testing"
)

func TestNearULPSignedZero(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))

	if !NearULP(0, negZero, 0) {
		t.Error("NearULP(+0, -0, 0) = false, want true")
	}
	if !NearULP(negZero, 0, 0) {
		t.Error("NearULP(-0, +0, 0) = false, want true")
	}
}

func TestNearULPDifferingSigns(t *testing.T) {
	// Tiny values straddling zero are one bit-pattern step apart per sign,
	// but sign disagreement demands exact equality.
	tiny := math.Float32frombits(1)
	if NearULP(tiny, -tiny, 1000) {
		t.Error("NearULP accepted values of opposite sign")
	}
}

func TestNearULPNextAfter(t *testing.T) {
	next := math.Nextafter32(1.0, 2.0)

	if NearULP(1.0, next, 0) {
		t.Error("NearULP(1, nextafter(1), 0) = true, want false")
	}
	if !NearULP(1.0, next, 1) {
		t.Error("NearULP(1, nextafter(1), 1) = false, want true")
	}
}

func TestNearULP64NextAfter(t *testing.T) {
	next := math.Nextafter(1.0, 2.0)

	if NearULP64(1.0, next, 0) {
		t.Error("NearULP64(1, nextafter(1), 0) = true, want false")
	}
	if !NearULP64(1.0, next, 1) {
		t.Error("NearULP64(1, nextafter(1), 1) = false, want true")
	}
}

func TestNearULP64SignedZero(t *testing.T) {
	if !NearULP64(0, math.Copysign(0, -1), 0) {
		t.Error("NearULP64(+0, -0, 0) = false, want true")
	}
}

func TestNearAbsEps(t *testing.T) {
	tests := []struct {
		a, b, eps float32
		want      bool
	}{
		{1.0, 1.0005, 0.001, true},
		{1.0, 1.002, 0.001, false},
		{0, 1e-8, 1e-7, true},
		{-1, 1, 0.5, false},
		{2, 2, 1e-12, true},
	}
	for _, tt := range tests {
		if got := NearAbsEps(tt.a, tt.b, tt.eps); got != tt.want {
			t.Errorf("NearAbsEps(%v, %v, %v) = %v, want %v",
				tt.a, tt.b, tt.eps, got, tt.want)
		}
	}
}

func TestNearULPOrEpsCoversBothRegimes(t *testing.T) {
	// Near zero: far apart in ULPs, close in absolute terms.
	a, b := float32(1e-20), float32(3e-20)
	if NearULP(a, b, 4) {
		t.Fatal("test values unexpectedly close in ULPs")
	}
	if !NearULPOrEps(a, b, 1e-10, 4) {
		t.Error("combined predicate rejected near-zero pair")
	}

	// Large magnitude: far apart absolutely, adjacent bit patterns.
	c := float32(1e20)
	d := math.Nextafter32(c, 2e20)
	if NearAbsEps(c, d, 1e-10) {
		t.Fatal("test values unexpectedly close in absolute terms")
	}
	if !NearULPOrEps(c, d, 1e-10, 1) {
		t.Error("combined predicate rejected large-magnitude pair")
	}
}

func TestArrayVariantsShortCircuit(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{1, 2, 3, 4}

	if !NearULPArray(a, b, 0) {
		t.Error("identical arrays not near")
	}

	b[2] = 5
	if NearULPArray(a, b, 0) {
		t.Error("mismatch at index 2 not detected")
	}
	if NearAbsEpsArray(a, b, 0.5) {
		t.Error("epsilon array variant missed mismatch")
	}
	if NearULPOrEps64Array([]float64{1, 2}, []float64{1, 3}, 0.1, 2) {
		t.Error("combined array variant missed mismatch")
	}
}

func TestArrayLengthMismatch(t *testing.T) {
	if NearULPArray([]float32{1}, []float32{1, 2}, 0) {
		t.Error("length mismatch reported as near")
	}
	if NearAbsEps64Array([]float64{1}, nil, 1) {
		t.Error("length mismatch reported as near")
	}
}
