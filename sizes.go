package fftbench

// validationSizes spans small, non-power-of-two, and large lengths so
// that every backend code path (mixed radix, padding, edge sizes) is
// exercised. Real transforms skip n=16, which is below the minimum real
// transform length of the candidate backend.
var validationSizes = []int{
	16, 32, 64, 96, 128, 160, 192, 256, 288, 384, 480, 512,
	576, 640, 800, 864, 1024, 2048, 2592, 4000, 4096, 12000, 36864,
}

// benchmarkSizesNonPow2 are the lengths measured with --non-pow2.
var benchmarkSizesNonPow2 = []int{
	96, 160, 192, 384, 480, 640, 768, 800, 2400, 9216,
}

// ValidationSizes returns the fixed correctness-test size catalogue.
func ValidationSizes() []int {
	out := make([]int, len(validationSizes))
	copy(out, validationSizes)

	return out
}

// BenchmarkSizesPow2 returns the power-of-two benchmark catalogue,
// 2^1 through 2^20.
func BenchmarkSizesPow2() []int {
	out := make([]int, 0, 20)
	for k := 1; k <= 20; k++ {
		out = append(out, 1<<k)
	}

	return out
}

// BenchmarkSizesNonPow2 returns the non-power-of-two benchmark catalogue.
func BenchmarkSizesNonPow2() []int {
	out := make([]int, len(benchmarkSizesNonPow2))
	copy(out, benchmarkSizesNonPow2)

	return out
}

// Log2 returns the integer base-2 logarithm of n (the position of the
// most significant set bit).
func Log2(n int) int {
	r := 0
	for n > 1 {
		n >>= 1
		r++
	}

	return r
}

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPow2 returns the smallest power of two >= n.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
