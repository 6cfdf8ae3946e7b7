// Command kernelcheck verifies and benchmarks the interchangeable kernel
// implementations against their generic references, once per capability
// level supported by the host CPU.
//
// Usage:
//
//	kernelcheck [options] [seed]
//
// Without a seed the run is randomized from the clock; the seed is printed
// so failures can be reproduced.
//
// Examples:
//
//	kernelcheck 1630243
//	kernelcheck --test=vecmath
//	kernelcheck --bench
//	kernelcheck --bench=mul_block --bench-c
//	kernelcheck --json=results.json --history=bench.db
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/kernelcheck/cases"
	"github.com/cwbudde/kernelcheck/check"
	"github.com/cwbudde/kernelcheck/kernels"
)

func usage(out *os.File) {
	fmt.Fprintf(out, "Usage: kernelcheck [options] [seed]\n\n")
	fmt.Fprintf(out, "Verifies and benchmarks kernel implementations per CPU capability level.\n\n")
	fmt.Fprintf(out, "Options:\n")
	fmt.Fprintf(out, "  --test=<name>       run only the named test case\n")
	fmt.Fprintf(out, "  --bench[=<prefix>]  benchmark functions (optionally matching prefix)\n")
	fmt.Fprintf(out, "  --bench-c           also benchmark generic-only functions\n")
	fmt.Fprintf(out, "  --list-functions    print registered function names and exit\n")
	fmt.Fprintf(out, "  --list-tests        print test case names and exit\n")
	fmt.Fprintf(out, "  --json=<path>       write a machine-readable result report\n")
	fmt.Fprintf(out, "  --history=<path>    append benchmark results to a SQLite database\n")
	fmt.Fprintf(out, "  -v, --verbose       dump buffers on comparison failures\n")
	fmt.Fprintf(out, "  -h, --help          show this help\n")
}

// parseArgs is hand-rolled because --bench takes an optional value
// (--bench and --bench=prefix), which the flag package cannot express.
func parseArgs(cfg *check.Config, args []string) (listTests bool, err error) {
	seedSet := false
	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			usage(os.Stdout)
			os.Exit(0)
		case arg == "-v" || arg == "--verbose":
			cfg.Verbose = true
		case arg == "--bench":
			cfg.Bench = true
		case strings.HasPrefix(arg, "--bench="):
			cfg.Bench = true
			cfg.BenchPattern = arg[len("--bench="):]
		case arg == "--bench-c":
			cfg.BenchC = true
		case arg == "--list-functions":
			cfg.ListFunctions = true
		case arg == "--list-tests":
			listTests = true
		case strings.HasPrefix(arg, "--test="):
			cfg.TestName = arg[len("--test="):]
		case strings.HasPrefix(arg, "--json="):
			cfg.JSONPath = arg[len("--json="):]
		case strings.HasPrefix(arg, "--history="):
			cfg.HistoryPath = arg[len("--history="):]
		case strings.HasPrefix(arg, "-"):
			return false, fmt.Errorf("unknown option %q", arg)
		case !seedSet:
			seed, perr := strconv.ParseUint(arg, 10, 32)
			if perr != nil {
				return false, fmt.Errorf("invalid seed %q", arg)
			}
			cfg.Seed = uint32(seed)
			seedSet = true
		default:
			return false, fmt.Errorf("unexpected argument %q", arg)
		}
	}
	if !seedSet {
		cfg.Seed = uint32(time.Now().UnixNano())
	}
	return listTests, nil
}

func run(args []string) int {
	cfg := check.Config{Host: kernels.Host{}}
	listTests, err := parseArgs(&cfg, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kernelcheck: %v\n", err)
		usage(os.Stderr)
		return 2
	}

	if listTests {
		for _, c := range cases.List {
			fmt.Println(c.Name)
		}
		return 0
	}

	return check.New(cfg).Run(cases.List)
}

func main() {
	os.Exit(run(os.Args[1:]))
}
