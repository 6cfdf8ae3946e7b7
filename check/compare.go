package check

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/crypto/blake2b"

	"github.com/cwbudde/kernelcheck/floatcmp"
)

// Row-major strided buffer comparison. On mismatch the failure is recorded
// against the current version with the caller's source location; verbose
// mode additionally dumps both buffers side by side with a per-element
// mismatch mask, non-verbose mode prints short content digests so distinct
// failures can be told apart across runs.

type element interface {
	~uint8 | ~uint16 | ~int16 | ~int32
}

// Bytes compares two strided byte buffers of w x h elements and reports
// whether they mismatched. ref is the baseline, got the output under test.
func Bytes(r *Runner, ref []uint8, refStride int, got []uint8, gotStride int, w, h int, name string) bool {
	return compare2D(r, ref, refStride, got, gotStride, w, h, name, "%02x")
}

// Uint16s compares two strided uint16 buffers.
func Uint16s(r *Runner, ref []uint16, refStride int, got []uint16, gotStride int, w, h int, name string) bool {
	return compare2D(r, ref, refStride, got, gotStride, w, h, name, "%04x")
}

// Int16s compares two strided int16 buffers.
func Int16s(r *Runner, ref []int16, refStride int, got []int16, gotStride int, w, h int, name string) bool {
	return compare2D(r, ref, refStride, got, gotStride, w, h, name, "%6d")
}

// Int32s compares two strided int32 buffers.
func Int32s(r *Runner, ref []int32, refStride int, got []int32, gotStride int, w, h int, name string) bool {
	return compare2D(r, ref, refStride, got, gotStride, w, h, name, "%9d")
}

func compare2D[E element](r *Runner, ref []E, refStride int, got []E, gotStride int, w, h int, name, format string) bool {
	mismatch := false
	for y := 0; y < h && !mismatch; y++ {
		refRow := ref[y*refStride : y*refStride+w]
		gotRow := got[y*gotStride : y*gotStride+w]
		for x := range refRow {
			if refRow[x] != gotRow[x] {
				mismatch = true
				break
			}
		}
	}
	if !mismatch {
		return false
	}

	if !r.Fail("%s", callerLocation(3)) {
		fmt.Fprintf(r.err, "   %s: ref %s, got %s\n",
			name, digest2D(ref, refStride, w, h), digest2D(got, gotStride, w, h))
		return true
	}

	fmt.Fprintf(r.err, "%s:\n", name)
	for y := 0; y < h; y++ {
		refRow := ref[y*refStride : y*refStride+w]
		gotRow := got[y*gotStride : y*gotStride+w]
		for x := range refRow {
			fmt.Fprintf(r.err, " "+format, refRow[x])
		}
		fmt.Fprint(r.err, "    ")
		for x := range gotRow {
			fmt.Fprintf(r.err, " "+format, gotRow[x])
		}
		fmt.Fprint(r.err, "    ")
		for x := range refRow {
			if refRow[x] != gotRow[x] {
				fmt.Fprint(r.err, "x")
			} else {
				fmt.Fprint(r.err, ".")
			}
		}
		fmt.Fprintln(r.err)
	}
	return true
}

// Float64s compares two float64 slices with the combined epsilon/ULP
// predicate and reports whether they mismatched. Exact comparison is
// requested with eps 0 and maxULP 0.
func Float64s(r *Runner, ref, got []float64, eps float64, maxULP uint, name string) bool {
	if floatcmp.NearULPOrEps64Array(ref, got, eps, maxULP) {
		return false
	}

	if !r.Fail("%s", callerLocation(2)) {
		return true
	}

	fmt.Fprintf(r.err, "%s:\n", name)
	n := len(ref)
	if len(got) < n {
		n = len(got)
	}
	for i := 0; i < n; i++ {
		marker := " "
		if !floatcmp.NearULPOrEps64(ref[i], got[i], eps, maxULP) {
			marker = "x"
		}
		fmt.Fprintf(r.err, " [%4d] %s ref %-24v got %-24v\n", i, marker, ref[i], got[i])
	}
	return true
}

// callerLocation formats the file:line of the test case that invoked the
// comparison helper, skip frames up the stack.
func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// digest2D fingerprints the compared region of a buffer. Six bytes of
// BLAKE2b are plenty to distinguish outputs in a report line.
func digest2D[E element](buf []E, stride, w, h int) string {
	h2, err := blake2b.New256(nil)
	if err != nil {
		return "?"
	}
	var scratch [4]byte
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			binary.LittleEndian.PutUint32(scratch[:], uint32(buf[y*stride+x]))
			h2.Write(scratch[:])
		}
	}
	return hex.EncodeToString(h2.Sum(nil)[:6])
}
