//go:build arm64

package cpu

import "golang.org/x/sys/cpu"

// detectFlags reports NEON on arm64. ASIMD is mandatory on ARMv8, but the
// x/sys probe is consulted anyway so exotic environments degrade to the
// generic level instead of lying.
func detectFlags() Flags {
	var f Flags
	if cpu.ARM64.HasASIMD {
		f |= NEON
	}
	return f
}

// Levels returns the capability levels to iterate on arm64.
func Levels() []Level {
	return []Level{
		{"NEON", "neon", NEON},
	}
}
