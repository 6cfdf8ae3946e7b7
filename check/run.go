package check

import (
	"fmt"

	"github.com/cwbudde/kernelcheck/internal/cpu"
)

// Host is the capability-flag supplier and context factory the driver runs
// against. The production implementation lives in the kernels package; tests
// substitute fakes to exercise arbitrary capability ladders.
type Host interface {
	// Levels returns the capability levels to iterate after the generic
	// pass, weakest first. Flags are applied cumulatively.
	Levels() []cpu.Level

	// SetActive installs mask as the active capability set and returns the
	// effective set, which may be smaller on hosts lacking some flags.
	SetActive(mask cpu.Flags) cpu.Flags

	// OpenContext resolves the kernel entry points for the active set. The
	// context is closed after the level's pass completes.
	OpenContext() (Context, error)
}

// Context is a per-level processing context handed to every test case.
type Context interface {
	Close() error
}

// Case is one pluggable test case. Func registers the case's kernels via
// Func/Bytes/Float64s and friends; ctx carries the entry points resolved
// for the level being run.
type Case struct {
	Name string
	Func func(r *Runner, ctx Context)
}

// Run executes every case once per supported capability level and returns
// the process exit code: 0 when everything passed (or a listing was
// requested), 1 otherwise.
func (r *Runner) Run(cases []Case) int {
	if r.cfg.Host == nil {
		fmt.Fprintln(r.err, "kernelcheck: no host configured")
		return 1
	}

	if !r.cfg.ListFunctions {
		fmt.Fprintf(r.err, "kernelcheck: using random seed %d\n", r.cfg.Seed)
	}

	// The generic level always runs first, unconditionally.
	if !r.checkLevel(cpu.Level{}, cases) {
		return 1
	}

	if r.cfg.ListFunctions {
		r.printFunctions()
		return 0
	}

	for _, lv := range r.cfg.Host.Levels() {
		if !r.checkLevel(lv, cases) {
			return 1
		}
	}

	return r.report()
}

// checkLevel ORs the level's flag into the active set and re-runs the test
// cases, but only when the effective capability set actually changed; a
// flag the host lacks would otherwise repeat the previous level's work.
func (r *Runner) checkLevel(lv cpu.Level, cases []Case) bool {
	old := r.cpuFlag
	eff := r.cfg.Host.SetActive(old | lv.Flag)
	r.cpuFlag = eff

	if lv.Flag != 0 && eff == old {
		return true
	}

	r.cpuSuffix = lv.Suffix
	if lv.Flag == 0 {
		r.cpuSuffix = "c"
	}

	ctx, err := r.cfg.Host.OpenContext()
	if err != nil {
		fmt.Fprintf(r.err, "kernelcheck: opening context failed: %v\n", err)
		return false
	}
	defer ctx.Close()

	r.cpuName = lv.Name
	for _, c := range cases {
		if r.cfg.TestName != "" && c.Name != r.cfg.TestName {
			continue
		}
		r.rng.Seed(r.cfg.Seed)
		r.testName = c.Name
		c.Func(r, ctx)
	}
	return true
}

// report prints the aggregate outcome and, when requested and earned, the
// benchmark table, then writes the optional JSON and history exports.
func (r *Runner) report() int {
	ret := 0
	switch {
	case r.numChecked == 0:
		fmt.Fprintln(r.err, "kernelcheck: no tests to perform")
	case r.numFailed > 0:
		fmt.Fprintf(r.err, "kernelcheck: %d of %d tests have failed\n",
			r.numFailed, r.numChecked)
		ret = 1
	default:
		fmt.Fprintf(r.err, "kernelcheck: all %d tests passed\n", r.numChecked)
		if r.cfg.Bench && r.hasBenchResults() {
			r.nopTime = measureNopTime()
			r.printBenchs()
		}
	}

	if err := r.export(); err != nil {
		fmt.Fprintf(r.err, "kernelcheck: %v\n", err)
		ret = 1
	}
	return ret
}

func (r *Runner) hasBenchResults() bool {
	found := false
	walkInOrder(r.funcs, func(f *funcNode) {
		for v := &f.versions; v != nil; v = v.next {
			if v.iterations > 0 {
				found = true
			}
		}
	})
	return found
}
