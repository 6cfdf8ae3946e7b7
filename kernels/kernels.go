// Package kernels resolves the pixel and vector primitives under test into
// an Engine, the per-capability-level entry point table handed to test
// cases.
//
// Implementation variants live in subpackages (blend, vec) and register
// themselves with the Global registry via init functions, gated by the
// capability flag they require. Resolution picks, per entry point, the
// highest-priority variant whose flag is covered by the active capability
// mask.
package kernels

import (
	"errors"
	"slices"

	"github.com/cwbudde/kernelcheck/check"
	"github.com/cwbudde/kernelcheck/internal/cpu"
)

// BlendFunc blends src over dst with saturating byte addition, row-major
// with independent strides.
type BlendFunc func(dst []uint8, dstStride int, src []uint8, srcStride int, w, h int)

// BlurFunc applies the separable [1 2 1]/16 box blur in place. tmp must
// hold at least 3*stride elements.
type BlurFunc func(buf []uint8, w, h, stride int, tmp []uint16)

// MulFunc performs element-wise multiplication: dst[i] = a[i] * b[i].
type MulFunc func(dst, a, b []float64)

// MagnitudeFunc computes dst[i] = sqrt(re[i]^2 + im[i]^2).
type MagnitudeFunc func(dst, re, im []float64)

// Engine is the entry point table resolved for one capability level.
type Engine struct {
	Flags cpu.Flags

	BlendBitmaps BlendFunc
	BeBlur       BlurFunc
	MulBlock     MulFunc
	Magnitude    MagnitudeFunc
}

// Close implements check.Context. Engines hold no external resources.
func (e *Engine) Close() error { return nil }

// OpEntry is one registered implementation variant. Only the entry points
// the variant actually provides need to be populated.
type OpEntry struct {
	// Name identifies the variant in tests and logs ("generic", "swar", ...).
	Name string

	// Flag is the capability required to use this variant; 0 means generic.
	Flag cpu.Flags

	// Priority orders selection among compatible variants, higher wins.
	// Generic implementations use 0.
	Priority int

	BlendBitmaps BlendFunc
	BeBlur       BlurFunc
	MulBlock     MulFunc
	Magnitude    MagnitudeFunc
}

// OpRegistry collects implementation variants and resolves engines.
type OpRegistry struct {
	entries []OpEntry
	sorted  bool
}

// Global is the registry the arch subpackages register into.
var Global = &OpRegistry{}

// Register adds a variant. Called from subpackage init functions.
func (r *OpRegistry) Register(e OpEntry) {
	r.entries = append(r.entries, e)
	r.sorted = false
}

// Entries returns a copy of the registered variants, for tests.
func (r *OpRegistry) Entries() []OpEntry {
	out := make([]OpEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// sortByPriority orders entries by descending priority, keeping the
// registration order among equals.
func (r *OpRegistry) sortByPriority() {
	slices.SortStableFunc(r.entries, func(a, b OpEntry) int {
		return b.Priority - a.Priority
	})
}

func (e *OpEntry) compatible(mask cpu.Flags) bool {
	return e.Flag&mask == e.Flag
}

// Resolve builds the entry point table for mask. Each slot takes the
// highest-priority compatible variant that provides it, independently of
// the other slots.
func (r *OpRegistry) Resolve(mask cpu.Flags) Engine {
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}

	eng := Engine{Flags: mask}
	for i := range r.entries {
		e := &r.entries[i]
		if !e.compatible(mask) {
			continue
		}
		if eng.BlendBitmaps == nil && e.BlendBitmaps != nil {
			eng.BlendBitmaps = e.BlendBitmaps
		}
		if eng.BeBlur == nil && e.BeBlur != nil {
			eng.BeBlur = e.BeBlur
		}
		if eng.MulBlock == nil && e.MulBlock != nil {
			eng.MulBlock = e.MulBlock
		}
		if eng.Magnitude == nil && e.Magnitude != nil {
			eng.Magnitude = e.Magnitude
		}
	}
	return eng
}

// NewEngine resolves an Engine for mask. Every entry point must at least
// have a generic fallback; a hole means a registration bug.
func NewEngine(mask cpu.Flags) (*Engine, error) {
	eng := Global.Resolve(mask)
	if eng.BlendBitmaps == nil || eng.BeBlur == nil ||
		eng.MulBlock == nil || eng.Magnitude == nil {
		return nil, errors.New("kernels: missing generic implementation (subpackage not linked in?)")
	}
	return &eng, nil
}

// Host adapts the cpu package and engine resolution to the check.Host
// contract.
type Host struct{}

// Levels returns the host architecture's capability ladder.
func (Host) Levels() []cpu.Level { return cpu.Levels() }

// SetActive installs the active capability set.
func (Host) SetActive(mask cpu.Flags) cpu.Flags { return cpu.SetActive(mask) }

// OpenContext resolves an Engine for the active capability set.
func (Host) OpenContext() (check.Context, error) {
	return NewEngine(cpu.Active())
}
