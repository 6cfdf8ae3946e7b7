// Package cpu supplies the capability flags that gate kernel implementation
// selection.
//
// A capability level is a bitmask of instruction-set extensions. Levels are
// cumulative: the verification driver starts from the generic level (mask 0)
// and ORs one flag at a time, so a kernel registered for AVX2 is only reached
// after the SSE2-level pass has already run.
//
// Detection is performed lazily on the first query and cached. The detected
// set can be overridden with ForceSupported for tests.
package cpu

import "sync"

// Flags is a bitmask of instruction-set extensions.
type Flags uint32

const (
	// SSE2 is the x86-64 baseline vector extension.
	SSE2 Flags = 1 << iota

	// AVX2 covers 256-bit integer and float vector operations.
	AVX2

	// AVX512 covers the 512-bit foundation subset.
	AVX512

	// NEON is ARM Advanced SIMD, mandatory on arm64.
	NEON
)

// Level pairs a capability flag with its display name and the short suffix
// appended to function names in reports ("blend_bitmaps_avx2"). The driver
// iterates levels in ascending order, applying each flag cumulatively.
type Level struct {
	Name   string
	Suffix string
	Flag   Flags
}

var (
	detectOnce sync.Once
	detected   Flags

	forcedMu sync.RWMutex
	forced   *Flags

	activeMu sync.RWMutex
	active   Flags
)

// Supported returns the capability flags available on the host. The result
// is detected once and cached; ForceSupported overrides it.
func Supported() Flags {
	forcedMu.RLock()
	f := forced
	forcedMu.RUnlock()
	if f != nil {
		return *f
	}

	detectOnce.Do(func() {
		detected = detectFlags()
	})
	return detected
}

// SetActive restricts the active capability set to mask, intersected with
// what the host actually supports, and returns the effective set. Kernel
// resolution consults the active set, so this is how the driver steps
// through capability levels.
func SetActive(mask Flags) Flags {
	eff := mask & Supported()
	activeMu.Lock()
	active = eff
	activeMu.Unlock()
	return eff
}

// Active returns the capability set most recently installed by SetActive.
func Active() Flags {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return active
}

// ForceSupported overrides hardware detection with mask. Intended for tests.
func ForceSupported(mask Flags) {
	forcedMu.Lock()
	defer forcedMu.Unlock()
	m := mask
	forced = &m
}

// ResetDetection clears any forced flags and the detection cache. Intended
// for tests.
func ResetDetection() {
	forcedMu.Lock()
	forced = nil
	forcedMu.Unlock()

	detectOnce = sync.Once{}
	detected = 0
}
