// Package xrand implements the xor128 pseudo-random generator used to feed
// synthetic inputs to kernels under test.
//
// The generator is fully deterministic for a given seed, which is what makes
// bit-exact comparison of interchangeable kernel implementations possible:
// every implementation variant of a primitive is fed the identical input
// sequence by reseeding before each registration.
//
// Algorithm: xor128 from Marsaglia, George (July 2003). "Xorshift RNGs".
// Journal of Statistical Software. 8 (14). doi:10.18637/jss.v008.i14.
package xrand

// Source is a seedable xor128 generator. The zero value is not usable;
// construct with New or call Seed first.
type Source struct {
	s [4]uint32
}

// New returns a Source seeded with seed.
func New(seed uint32) *Source {
	src := &Source{}
	src.Seed(seed)
	return src
}

// Seed resets the generator state. The expansion of the 32-bit seed into the
// 128-bit state mixes the seed and its complement so that nearby seeds do not
// produce overlapping sequences.
func (src *Source) Seed(seed uint32) {
	src.s[0] = seed
	src.s[1] = (seed & 0xffff0000) | (^seed & 0x0000ffff)
	src.s[2] = (^seed & 0xffff0000) | (seed & 0x0000ffff)
	src.s[3] = ^seed
}

// Uint32 returns the next value in the sequence. Only 31 bits are random;
// the top bit is always zero, so the result is also a valid non-negative
// int32.
func (src *Source) Uint32() uint32 {
	x := src.s[0]
	t := x ^ (x << 11)

	src.s[0] = src.s[1]
	src.s[1] = src.s[2]
	src.s[2] = src.s[3]
	w := src.s[3]

	w = (w ^ (w >> 19)) ^ (t ^ (t >> 8))
	src.s[3] = w

	return w >> 1
}

// Intn returns a value in [0, n). Panics if n <= 0.
func (src *Source) Intn(n int) int {
	if n <= 0 {
		panic("xrand: Intn with non-positive n")
	}
	return int(src.Uint32()) % n
}

// Float64 returns a value in [0, 1).
func (src *Source) Float64() float64 {
	return float64(src.Uint32()) / (1 << 31)
}

// Fill overwrites buf with random bytes.
func (src *Source) Fill(buf []byte) {
	for i := range buf {
		buf[i] = byte(src.Uint32())
	}
}
