package vec

import (
	"github.com/cwbudde/kernelcheck/internal/cpu"
	"github.com/cwbudde/kernelcheck/kernels"
)

func init() {
	kernels.Global.Register(kernels.OpEntry{
		Name:      "generic",
		Flag:      0,
		Priority:  0,
		MulBlock:  MulBlockGeneric,
		Magnitude: MagnitudeGeneric,
	})
	kernels.Global.Register(kernels.OpEntry{
		Name:     "unrolled",
		Flag:     cpu.SSE2,
		Priority: 10,
		MulBlock: MulBlockUnrolled,
	})
	kernels.Global.Register(kernels.OpEntry{
		Name:      "unrolled",
		Flag:      cpu.NEON,
		Priority:  10,
		MulBlock:  MulBlockUnrolled,
		Magnitude: MagnitudeFMA,
	})
	kernels.Global.Register(kernels.OpEntry{
		Name:      "fma",
		Flag:      cpu.AVX2,
		Priority:  20,
		MulBlock:  MulBlockUnrolled,
		Magnitude: MagnitudeFMA,
	})
}
