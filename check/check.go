// Package check is the verification engine for interchangeable kernel
// implementations.
//
// For every capability level supported by the host, the driver re-runs each
// registered test case. A test case registers the kernel entry points it
// wants verified; the registry deduplicates implementations that already ran
// at an earlier level and hands back the best known-good baseline to compare
// against. Comparison mismatches and runtime faults are recorded against the
// implementation under test and the suite keeps going; the final report and
// exit code aggregate everything.
package check

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/cwbudde/kernelcheck/internal/cpu"
	"github.com/cwbudde/kernelcheck/internal/xrand"
)

// Config selects what a Runner does. The zero value runs all test cases at
// every supported capability level with no benchmarking.
type Config struct {
	// Seed drives the input generator. Every implementation variant of a
	// primitive sees the identical input sequence derived from it.
	Seed uint32

	// TestName, when non-empty, restricts the run to the named test case.
	TestName string

	// Bench enables benchmarking of functions whose name starts with
	// BenchPattern (empty pattern matches everything).
	Bench        bool
	BenchPattern string

	// BenchC additionally benchmarks functions that only have a generic
	// implementation.
	BenchC bool

	// Verbose prints full buffer dumps on comparison failures.
	Verbose bool

	// ListFunctions records registered names without running comparisons
	// and prints them sorted.
	ListFunctions bool

	// JSONPath, when non-empty, receives a machine-readable result report.
	JSONPath string

	// HistoryPath, when non-empty, names a SQLite database benchmark
	// results are appended to for regression tracking.
	HistoryPath string

	// Host supplies capability levels and per-level kernel contexts.
	Host Host

	// Out and Err default to os.Stdout and os.Stderr.
	Out io.Writer
	Err io.Writer
}

// Runner owns all state of one verification run: the function registry, the
// input generator, the current capability level and the pass/fail counters.
// A Runner is single-threaded; test cases are invoked sequentially and must
// not retain it.
type Runner struct {
	cfg Config
	out io.Writer
	err io.Writer

	funcs      *funcNode
	curFunc    *funcNode
	curVersion *funcVersion

	rng *xrand.Source

	cpuFlag   cpu.Flags
	cpuSuffix string // report suffix of the current level
	cpuName   string // pending level header, printed once on first output
	testName  string

	numChecked int
	numFailed  int
	nopTime    int

	prevChecked int
	prevFailed  int
	maxNameLen  int

	useColor bool
}

// New returns a Runner for cfg.
func New(cfg Config) *Runner {
	r := &Runner{
		cfg: cfg,
		out: cfg.Out,
		err: cfg.Err,
		rng: xrand.New(cfg.Seed),
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.err == nil {
		r.err = os.Stderr
		r.useColor = stderrSupportsColor()
	}
	return r
}

// stderrSupportsColor mirrors the usual TERM/tty probe: color only when
// stderr is a character device and the terminal is not "dumb".
func stderrSupportsColor() bool {
	if term := os.Getenv("TERM"); term == "" || term == "dumb" {
		return false
	}
	info, err := os.Stderr.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

const (
	colorRed    = 1
	colorGreen  = 2
	colorYellow = 3
)

func (r *Runner) colorf(color int, format string, args ...any) {
	if r.useColor {
		fmt.Fprintf(r.err, "\x1b[0;3%dm", color)
	}
	fmt.Fprintf(r.err, format, args...)
	if r.useColor {
		fmt.Fprint(r.err, "\x1b[0m")
	}
}

// Func decides whether fn needs to be tested under the current capability
// level. It returns the reference implementation to compare against and
// true when fn should be exercised; false when fn was already tested at an
// earlier level, when listing is active, or when the invocation is
// malformed (nil function or empty name).
//
// The reference is the most recently registered version of the same name
// that is still passing, so a failed specialized implementation never
// becomes the baseline for a later one. Registering also reseeds the input
// generator, which guarantees every variant the identical input sequence.
func Func[F any](r *Runner, fn F, format string, args ...any) (F, bool) {
	ref, ok := r.checkFunc(fn, fmt.Sprintf(format, args...))
	if !ok {
		var zero F
		return zero, false
	}
	rf, ok := ref.(F)
	if !ok {
		panic(fmt.Sprintf("check: mismatched signatures registered under %q", r.curFunc.name))
	}
	return rf, true
}

func (r *Runner) checkFunc(fn any, name string) (any, bool) {
	v := reflect.ValueOf(fn)
	if name == "" || v.Kind() != reflect.Func || v.IsNil() {
		return nil, false
	}
	ptr := v.Pointer()

	r.curFunc = getFunc(&r.funcs, name)

	if r.cfg.ListFunctions {
		// Record names without running tests.
		return nil, false
	}

	r.funcs.color = 1

	ver := &r.curFunc.versions
	ref := fn

	if ver.fn != nil {
		var prev *funcVersion
		for ; ver != nil; ver = ver.next {
			// Identical code was already exercised at a previous level.
			if ver.ptr == ptr {
				return nil, false
			}
			if ver.ok {
				ref = ver.fn
			}
			prev = ver
		}
		ver = &funcVersion{}
		prev.next = ver
	}

	ver.fn = fn
	ver.ptr = ptr
	ver.ok = true
	ver.cpu = r.cpuFlag
	ver.suffix = r.cpuSuffix
	r.curVersion = ver

	r.rng.Seed(r.cfg.Seed)

	if r.cpuFlag != 0 || r.cfg.BenchC {
		r.numChecked++
	}

	return ref, true
}

// Fail records a failure against the implementation currently under test
// and reports whether the caller should print a verbose dump. Failures only
// count against specialized versions that were still passing; the generic
// reference is expected to be correct, and an already-failed version is not
// penalized twice.
func (r *Runner) Fail(format string, args ...any) bool {
	v := r.curVersion
	if v != nil && v.cpu != 0 && v.ok {
		r.printCPUName()
		fmt.Fprintf(r.err, "   %s_%s (", r.curFunc.name, v.suffix)
		fmt.Fprintf(r.err, format, args...)
		fmt.Fprintln(r.err, ")")

		v.ok = false
		r.numFailed++
	}
	return r.cfg.Verbose
}

// Rand returns the next 31-bit value from the deterministic input
// generator.
func (r *Runner) Rand() uint32 {
	return r.rng.Uint32()
}

// RandIntn returns a deterministic value in [0, n).
func (r *Runner) RandIntn(n int) int {
	return r.rng.Intn(n)
}

// RandFill overwrites buf with deterministic random bytes.
func (r *Runner) RandFill(buf []byte) {
	r.rng.Fill(buf)
}

// RandFloat64 returns a deterministic value in [0, 1).
func (r *Runner) RandFloat64() float64 {
	return r.rng.Float64()
}

// ActiveFlags returns the capability mask of the level currently running.
func (r *Runner) ActiveFlags() cpu.Flags {
	return r.cpuFlag
}

// Report prints one OK/FAILED line covering everything checked since the
// previous Report call. During the generic pass it only measures name
// lengths so later output lines up vertically.
func (r *Runner) Report(format string, args ...any) {
	name := fmt.Sprintf(format, args...)

	if r.numChecked > r.prevChecked {
		r.printCPUName()
		pad := r.maxNameLen - len(r.testName) - len(name)
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(r.err, " - %s.%s%*s", r.testName, name, pad+2, "[")
		if r.numFailed == r.prevFailed {
			r.colorf(colorGreen, "OK")
		} else {
			r.colorf(colorRed, "FAILED")
		}
		fmt.Fprintln(r.err, "]")

		r.prevChecked = r.numChecked
		r.prevFailed = r.numFailed
	} else if r.cpuFlag == 0 {
		if n := len(r.testName) + len(name); n > r.maxNameLen {
			r.maxNameLen = n
		}
	}
}

// printCPUName prints the current capability level header, once.
func (r *Runner) printCPUName() {
	if r.cpuName != "" {
		r.colorf(colorYellow, "%s:\n", r.cpuName)
		r.cpuName = ""
	}
}

func (r *Runner) printFunctions() {
	walkInOrder(r.funcs, func(f *funcNode) {
		fmt.Fprintln(r.out, f.name)
	})
}

// matchesBenchPattern reports whether name falls under the configured
// benchmark prefix.
func (r *Runner) matchesBenchPattern(name string) bool {
	return r.cfg.Bench && strings.HasPrefix(name, r.cfg.BenchPattern)
}
