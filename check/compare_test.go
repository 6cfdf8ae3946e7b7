package check

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func compareRunner(verbose bool) (*Runner, *bytes.Buffer) {
	var buf bytes.Buffer
	r := New(Config{Verbose: verbose, Out: &buf, Err: &buf})
	r.cpuFlag = flagFast
	r.cpuSuffix = "fast"
	if _, ok := Func(r, sumUnrolled, "probe"); !ok {
		panic("registration declined")
	}
	return r, &buf
}

func TestBytesEqual(t *testing.T) {
	r, buf := compareRunner(false)
	a := []uint8{1, 2, 3, 4, 5, 6, 7, 8}
	b := []uint8{1, 2, 3, 4, 5, 6, 7, 8}

	if Bytes(r, a, 4, b, 4, 4, 2, "dst") {
		t.Fatal("equal buffers reported as mismatch")
	}
	if r.numFailed != 0 || buf.Len() != 0 {
		t.Fatalf("failed=%d output=%q", r.numFailed, buf.String())
	}
}

func TestBytesMismatchRecorded(t *testing.T) {
	r, buf := compareRunner(false)
	a := []uint8{1, 2, 3, 4}
	b := []uint8{1, 2, 9, 4}

	if !Bytes(r, a, 4, b, 4, 4, 1, "dst") {
		t.Fatal("mismatch not detected")
	}
	if r.numFailed != 1 {
		t.Fatalf("numFailed = %d, want 1", r.numFailed)
	}
	log := buf.String()
	if !strings.Contains(log, "probe_fast") {
		t.Errorf("failure not attributed: %q", log)
	}
	if !strings.Contains(log, "dst: ref ") {
		t.Errorf("missing digest line: %q", log)
	}
}

func TestBytesStridePaddingIgnored(t *testing.T) {
	r, _ := compareRunner(false)
	// 2x2 region; the padding bytes differ but sit outside the region.
	a := []uint8{1, 2, 0xaa, 0xbb, 3, 4, 0xcc, 0xdd}
	b := []uint8{1, 2, 0x11, 0x22, 3, 4, 0x33, 0x44}

	if Bytes(r, a, 4, b, 4, 2, 2, "dst") {
		t.Fatal("padding difference reported as mismatch")
	}
}

func TestBytesDifferentStrides(t *testing.T) {
	r, _ := compareRunner(false)
	a := []uint8{1, 2, 3, 4}
	b := []uint8{1, 2, 0, 0, 3, 4, 0, 0}

	if Bytes(r, a, 2, b, 4, 2, 2, "dst") {
		t.Fatal("stride-normalized buffers reported as mismatch")
	}
}

func TestBytesVerboseDump(t *testing.T) {
	r, buf := compareRunner(true)
	a := []uint8{0x10, 0x20, 0x30, 0x40}
	b := []uint8{0x10, 0xff, 0x30, 0x40}

	Bytes(r, a, 4, b, 4, 4, 1, "dst")
	log := buf.String()
	if !strings.Contains(log, "dst:") {
		t.Fatalf("missing dump header: %q", log)
	}
	if !strings.Contains(log, ".x..") {
		t.Errorf("missing mismatch mask: %q", log)
	}
	if !strings.Contains(log, "ff") {
		t.Errorf("missing hex values: %q", log)
	}
}

func TestUint16sMismatch(t *testing.T) {
	r, _ := compareRunner(false)
	a := []uint16{1, 2, 3}
	b := []uint16{1, 0x8000, 3}

	if !Uint16s(r, a, 3, b, 3, 3, 1, "dst") {
		t.Fatal("mismatch not detected")
	}
}

func TestFloat64sWithinTolerance(t *testing.T) {
	r, _ := compareRunner(false)
	a := []float64{1.0, -2.5, 1e-300}
	b := make([]float64, len(a))
	copy(b, a)

	if Float64s(r, a, b, 0, 0, "dst") {
		t.Fatal("identical slices reported as mismatch")
	}

	// One ULP off passes with maxULP 1 and fails exact comparison.
	c := []float64{math.Nextafter(1.0, 2), -2.5, 1e-300}
	if Float64s(r, a, c, 0, 1, "dst") {
		t.Fatal("1-ULP difference rejected with maxULP 1")
	}
}

func TestFloat64sMismatchRecorded(t *testing.T) {
	r, buf := compareRunner(false)
	a := []float64{1.0, 2.0}
	b := []float64{1.0, 2.125}

	if !Float64s(r, a, b, 1e-9, 2, "dst") {
		t.Fatal("mismatch not detected")
	}
	if r.numFailed != 1 {
		t.Fatalf("numFailed = %d, want 1", r.numFailed)
	}
	if !strings.Contains(buf.String(), "probe_fast") {
		t.Errorf("failure not attributed: %q", buf.String())
	}
}

func TestDigest2DCoversRegionOnly(t *testing.T) {
	a := []uint8{1, 2, 0xaa, 0, 3, 4, 0xbb, 0}
	b := []uint8{1, 2, 0xcc, 0, 3, 4, 0xdd, 0}

	if digest2D(a, 4, 2, 2) != digest2D(b, 4, 2, 2) {
		t.Error("digest covers padding bytes")
	}
	b[5] = 9
	if digest2D(a, 4, 2, 2) == digest2D(b, 4, 2, 2) {
		t.Error("digest misses in-region change")
	}
}
