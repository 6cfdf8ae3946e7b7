// Package cases contains the per-primitive test cases run by the
// verification driver. Each case registers its kernel entry points with the
// check registry, feeds all variants identical deterministic inputs and
// compares outputs against the best verified baseline.
package cases

import (
	"github.com/cwbudde/kernelcheck/check"

	// Linked for their registry side effects: the engine resolves entry
	// points these packages register.
	_ "github.com/cwbudde/kernelcheck/kernels/blend"
	_ "github.com/cwbudde/kernelcheck/kernels/vec"
)

// List is the test-case table, in execution order.
var List = []check.Case{
	{Name: "be_blur", Func: checkBeBlur},
	{Name: "blend_bitmaps", Func: checkBlendBitmaps},
	{Name: "fft", Func: checkFFT},
	{Name: "vecmath", Func: checkVec},
}
