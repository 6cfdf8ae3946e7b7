package check

import (
	"fmt"
	"slices"
	"time"
)

// The benchmark engine reports per-version throughput in tenths of a tick
// ("deci-ticks"; one tick is a nanosecond of the monotonic clock). The cost
// of reading the clock itself is measured once and subtracted, and the
// benchmark loop runs four calls per sample, so the reported figure is
// (10*ticks/iterations - overhead) / 4.

const (
	benchRuns    = 1000
	benchUnroll  = 4
	nopSamples   = 10000
	nopKeepFrom  = nopSamples / 4
	nopKeepTo    = nopSamples - nopSamples/4
	nopKeepCount = nopKeepTo - nopKeepFrom
)

var tickEpoch = time.Now()

// readTicks returns a monotonic timestamp in nanoseconds.
func readTicks() uint64 {
	return uint64(time.Since(tickEpoch))
}

// measureNopTime estimates the overhead of one readTicks call in tenths of
// a tick. It samples back-to-back reads, sorts the deltas and averages the
// middle two quartiles so scheduler noise and cache effects in the tails do
// not skew the estimate.
func measureNopTime() int {
	nops := make([]uint64, nopSamples)
	for i := range nops {
		t := readTicks()
		nops[i] = readTicks() - t
	}

	slices.Sort(nops)
	var sum uint64
	for _, v := range nops[nopKeepFrom:nopKeepTo] {
		sum += v
	}
	return int(10 * sum / nopKeepCount)
}

// ShouldBench reports whether the function currently under test should be
// benchmarked. Benchmarking stops for the remainder of the run as soon as
// any comparison fails; timing numbers for broken code are worse than none.
func (r *Runner) ShouldBench() bool {
	return r.numFailed == 0 && r.curFunc != nil &&
		r.matchesBenchPattern(r.curFunc.name)
}

// Bench times fn against the current implementation version. Each sample
// covers four back-to-back calls; samples that exceed four times the
// running mean are discarded as scheduling outliers.
func (r *Runner) Bench(fn func()) {
	if !r.ShouldBench() {
		return
	}

	var sum uint64
	count := 0
	for i := 0; i < benchRuns; i++ {
		t := readTicks()
		fn()
		fn()
		fn()
		fn()
		t = readTicks() - t
		if i > 0 && t*uint64(count) <= sum*4 {
			sum += t
			count++
		}
	}
	r.UpdateBench(count, sum)
}

// UpdateBench accumulates a raw measurement onto the current version.
// Exposed for test cases that run their own timing loops.
func (r *Runner) UpdateBench(iterations int, ticks uint64) {
	if r.curVersion == nil {
		return
	}
	r.curVersion.iterations += iterations
	r.curVersion.ticks += ticks
}

// deciTicks converts a version's accumulators into the reported unit.
func (r *Runner) deciTicks(v *funcVersion) int {
	if v.iterations == 0 {
		return 0
	}
	d := (int(10*v.ticks/uint64(v.iterations)) - r.nopTime) / benchUnroll
	if d < 0 {
		d = 0
	}
	return d
}

// benchRelevant reports whether f earns a line in the benchmark table:
// functions with only an untimed generic version are skipped unless C-only
// benchmarking was requested.
func (r *Runner) benchRelevant(f *funcNode) bool {
	return r.cfg.BenchC || f.versions.cpu != 0 || f.versions.next != nil
}

// printBenchs walks the registry in sorted order and prints one line per
// version with at least one measured iteration.
func (r *Runner) printBenchs() {
	fmt.Fprintf(r.out, "nop: %d.%d\n", r.nopTime/10, r.nopTime%10)
	walkInOrder(r.funcs, func(f *funcNode) {
		if !r.benchRelevant(f) {
			return
		}
		for v := &f.versions; v != nil; v = v.next {
			if v.iterations == 0 {
				continue
			}
			d := r.deciTicks(v)
			fmt.Fprintf(r.out, "%s_%s: %d.%d\n",
				f.name, v.suffix, d/10, d%10)
		}
	})
}
