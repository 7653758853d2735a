// Package fftpack implements the trusted reference transform used as the
// correctness oracle. It follows the classic FFTPACK contract: setup
// precomputes a workspace for one transform length, forward and backward
// transforms run in place on interleaved float32 data, and backward
// transforms are unnormalized (backward(forward(x)) == n*x).
//
// Real forward transforms emit the FFTPACK half-spectrum ordering
// [X0, Re X1, Im X1, ..., Re X(n/2)]; converting that to the canonical
// packed ordering is the caller's job.
package fftpack

import (
	"errors"
	"math"
)

// Work holds the precomputed tables and scratch for one transform length.
type Work struct {
	n       int
	real    bool
	factors []int
	twiddle []complex64
	a, b    []complex64
}

// ErrBadLength is returned for lengths the reference transform cannot
// process.
var ErrBadLength = errors.New("fftpack: invalid transform length")

// NewComplex prepares a workspace for length-n complex transforms.
func NewComplex(n int) (*Work, error) {
	if n < 1 {
		return nil, ErrBadLength
	}

	return newWork(n, false), nil
}

// NewReal prepares a workspace for length-n real transforms. The length
// must be even so that the packed half spectrum has a distinct Nyquist
// bin.
func NewReal(n int) (*Work, error) {
	if n < 2 || n%2 != 0 {
		return nil, ErrBadLength
	}

	return newWork(n, true), nil
}

func newWork(n int, isReal bool) *Work {
	twiddle := make([]complex64, n)
	for k := 0; k < n; k++ {
		angle := -2.0 * math.Pi * float64(k) / float64(n)
		twiddle[k] = complex(float32(math.Cos(angle)), float32(math.Sin(angle)))
	}

	return &Work{
		n:       n,
		real:    isReal,
		factors: factorize(n),
		twiddle: twiddle,
		a:       make([]complex64, n),
		b:       make([]complex64, n),
	}
}

// N returns the transform length.
func (w *Work) N() int {
	return w.n
}

// Forward transforms x in place. Complex workspaces expect 2*n floats of
// interleaved data; real workspaces expect n floats and produce the
// FFTPACK half-spectrum ordering.
func (w *Work) Forward(x []float32) {
	if w.real {
		w.realForward(x)
		return
	}

	w.complexTransform(x, false)
}

// Backward runs the unnormalized inverse of Forward in place.
func (w *Work) Backward(x []float32) {
	if w.real {
		w.realBackward(x)
		return
	}

	w.complexTransform(x, true)
}

func (w *Work) complexTransform(x []float32, inverse bool) {
	n := w.n
	for k := 0; k < n; k++ {
		w.a[k] = complex(x[2*k], x[2*k+1])
	}

	w.recurse(w.b, w.a, n, 1, 0, inverse)

	for k := 0; k < n; k++ {
		x[2*k] = real(w.b[k])
		x[2*k+1] = imag(w.b[k])
	}
}

func (w *Work) realForward(x []float32) {
	n := w.n
	for k := 0; k < n; k++ {
		w.a[k] = complex(x[k], 0)
	}

	w.recurse(w.b, w.a, n, 1, 0, false)

	x[0] = real(w.b[0])
	for k := 1; k < n/2; k++ {
		x[2*k-1] = real(w.b[k])
		x[2*k] = imag(w.b[k])
	}
	x[n-1] = real(w.b[n/2])
}

func (w *Work) realBackward(x []float32) {
	n := w.n

	// Rebuild the full Hermitian spectrum from the packed half spectrum.
	w.a[0] = complex(x[0], 0)
	for k := 1; k < n/2; k++ {
		w.a[k] = complex(x[2*k-1], x[2*k])
	}
	w.a[n/2] = complex(x[n-1], 0)
	for k := n/2 + 1; k < n; k++ {
		c := w.a[n-k]
		w.a[k] = complex(real(c), -imag(c))
	}

	w.recurse(w.b, w.a, n, 1, 0, true)

	for k := 0; k < n; k++ {
		x[k] = real(w.b[k])
	}
}

// root returns the twiddle factor W_n^idx, conjugated for inverse
// transforms. idx must already be reduced modulo n.
func (w *Work) root(idx int, inverse bool) complex64 {
	t := w.twiddle[idx]
	if inverse {
		return complex(real(t), -imag(t))
	}

	return t
}

// recurse computes an out-of-place decimation-in-time transform of
// length n from the strided view src[0], src[stride], ... into the
// contiguous dst. fi indexes the next factor to split off.
func (w *Work) recurse(dst, src []complex64, n, stride, fi int, inverse bool) {
	if n == 1 {
		dst[0] = src[0]
		return
	}

	p := w.factors[fi]
	m := n / p

	for q := 0; q < p; q++ {
		w.recurse(dst[q*m:(q+1)*m], src[q*stride:], m, stride*p, fi+1, inverse)
	}

	rootStride := w.n / n

	if p == 2 {
		for k := 0; k < m; k++ {
			t0 := dst[k]
			t1 := dst[m+k] * w.root(k*rootStride, inverse)
			dst[k] = t0 + t1
			dst[m+k] = t0 - t1
		}

		return
	}

	// Generic small-prime butterfly: X[j*m+k] = sum_q t_q * W_p^(q*j).
	var tbuf [7]complex64

	t := tbuf[:]
	if p > len(tbuf) {
		t = make([]complex64, p)
	}

	pStride := w.n / p

	for k := 0; k < m; k++ {
		for q := 0; q < p; q++ {
			idx := (q * k * rootStride) % w.n
			t[q] = dst[q*m+k] * w.root(idx, inverse)
		}

		for j := 0; j < p; j++ {
			acc := t[0]
			for q := 1; q < p; q++ {
				acc += t[q] * w.root((q*j%p)*pStride, inverse)
			}

			dst[j*m+k] = acc
		}
	}
}

// factorize splits n into small prime factors, twos first.
func factorize(n int) []int {
	var factors []int

	for n%2 == 0 {
		factors = append(factors, 2)
		n /= 2
	}

	for p := 3; p*p <= n; p += 2 {
		for n%p == 0 {
			factors = append(factors, p)
			n /= p
		}
	}

	if n > 1 {
		factors = append(factors, n)
	}

	return factors
}
