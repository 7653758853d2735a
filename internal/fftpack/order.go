package fftpack

// ShiftToCanonical converts a real half spectrum in place from the
// FFTPACK ordering [X0, Re X1, Im X1, ..., Re X(n/2)] to the canonical
// packed ordering [X0, X(n/2), Re X1, Im X1, ...].
func ShiftToCanonical(x []float32) {
	n := len(x)
	if n < 2 {
		return
	}

	nyq := x[n-1]
	for k := n - 2; k >= 1; k-- {
		x[k+1] = x[k]
	}
	x[1] = nyq
}

// ShiftFromCanonical is the inverse of ShiftToCanonical.
func ShiftFromCanonical(x []float32) {
	n := len(x)
	if n < 2 {
		return
	}

	nyq := x[1]
	for k := 1; k <= n-2; k++ {
		x[k] = x[k+1]
	}
	x[n-1] = nyq
}
