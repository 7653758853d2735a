// Package align provides cache-line aligned float32 allocation for
// transform sample buffers.
package align

import "unsafe"

// Boundary is the alignment of allocated buffers in bytes. 64 bytes
// covers SSE/AVX/NEON vector loads and a full cache line.
const Boundary = 64

// Float32 allocates an n-element float32 slice whose first element sits
// on a Boundary-aligned address. The returned byte slice is the backing
// allocation; callers that retain the float slice beyond the current
// frame should retain the backing alongside it.
func Float32(n int) ([]float32, []byte) {
	if n <= 0 {
		return nil, nil
	}

	backing := make([]byte, n*4+Boundary)
	addr := uintptr(unsafe.Pointer(&backing[0]))
	off := 0

	if rem := addr % Boundary; rem != 0 {
		off = int(Boundary - rem)
	}

	buf := unsafe.Slice((*float32)(unsafe.Pointer(&backing[off])), n)

	return buf, backing
}

// Complex64 allocates an n-element complex64 slice aligned like Float32.
func Complex64(n int) ([]complex64, []byte) {
	if n <= 0 {
		return nil, nil
	}

	backing := make([]byte, n*8+Boundary)
	addr := uintptr(unsafe.Pointer(&backing[0]))
	off := 0

	if rem := addr % Boundary; rem != 0 {
		off = int(Boundary - rem)
	}

	buf := unsafe.Slice((*complex64)(unsafe.Pointer(&backing[off])), n)

	return buf, backing
}
