package blend

import (
	"github.com/cwbudde/kernelcheck/internal/cpu"
	"github.com/cwbudde/kernelcheck/kernels"
)

func init() {
	kernels.Global.Register(kernels.OpEntry{
		Name:         "generic",
		Flag:         0,
		Priority:     0,
		BlendBitmaps: BlendBitmapsGeneric,
		BeBlur:       BeBlurGeneric,
	})
	kernels.Global.Register(kernels.OpEntry{
		Name:         "swar",
		Flag:         cpu.SSE2,
		Priority:     10,
		BlendBitmaps: BlendBitmapsSWAR,
	})
	kernels.Global.Register(kernels.OpEntry{
		Name:         "swar",
		Flag:         cpu.NEON,
		Priority:     10,
		BlendBitmaps: BlendBitmapsSWAR,
		BeBlur:       BeBlurUnrolled,
	})
	kernels.Global.Register(kernels.OpEntry{
		Name:         "wide",
		Flag:         cpu.AVX2,
		Priority:     20,
		BlendBitmaps: BlendBitmapsWide,
		BeBlur:       BeBlurUnrolled,
	})
}
