package cpu

import "testing"

func TestSetActiveIntersectsSupported(t *testing.T) {
	defer ResetDetection()
	ForceSupported(SSE2 | AVX2)

	if eff := SetActive(SSE2 | AVX2 | AVX512 | NEON); eff != SSE2|AVX2 {
		t.Errorf("SetActive = %#x, want %#x", eff, SSE2|AVX2)
	}
	if Active() != SSE2|AVX2 {
		t.Errorf("Active() = %#x, want %#x", Active(), SSE2|AVX2)
	}

	if eff := SetActive(0); eff != 0 {
		t.Errorf("SetActive(0) = %#x, want 0", eff)
	}
}

func TestForceSupportedOverridesDetection(t *testing.T) {
	defer ResetDetection()

	ForceSupported(NEON)
	if Supported() != NEON {
		t.Errorf("Supported() = %#x, want NEON", Supported())
	}

	ResetDetection()
	if Supported()&NEON != 0 && Supported()&SSE2 != 0 {
		t.Error("detection cache not cleared")
	}
}

func TestLevelsAreSupportedSubsetOrdered(t *testing.T) {
	// Levels must carry ascending flag values so cumulative ORing walks
	// from weakest to strongest extension.
	prev := Flags(0)
	for _, lv := range Levels() {
		if lv.Flag <= prev {
			t.Errorf("level %s out of order (flag %#x after %#x)", lv.Name, lv.Flag, prev)
		}
		if lv.Name == "" || lv.Suffix == "" {
			t.Errorf("level %#x has empty name or suffix", lv.Flag)
		}
		prev = lv.Flag
	}
}
