//go:build amd64

package cpu

import "golang.org/x/sys/cpu"

// detectFlags queries CPUID through golang.org/x/sys/cpu. SSE2 is part of
// the x86-64 baseline but is still reported as a flag so the driver has a
// first non-generic level to step through.
func detectFlags() Flags {
	var f Flags
	if cpu.X86.HasSSE2 {
		f |= SSE2
	}
	if cpu.X86.HasAVX2 {
		f |= AVX2
	}
	if cpu.X86.HasAVX512 {
		f |= AVX512
	}
	return f
}

// Levels returns the capability levels to iterate on amd64, weakest first.
func Levels() []Level {
	return []Level{
		{"SSE2", "sse2", SSE2},
		{"AVX2", "avx2", AVX2},
		{"AVX-512", "avx512", AVX512},
	}
}
