// Package packfft implements the packed power-of-two float32 FFT that
// serves as the candidate backend of the harness. It mirrors the SIMD
// transform family it stands in for: spectra are produced either in a
// block-interleaved native layout (cheapest) or in the canonical packed
// ordering, real transforms pack DC and Nyquist into the first
// coefficient pair, and backward transforms are unnormalized.
//
// Canonical packed ordering: complex spectra are the n bins in natural
// order; real spectra are [X0, X(n/2), Re X1, Im X1, ..., Im X(n/2-1)].
package packfft

import (
	"errors"
	"math"
)

// Minimum supported transform lengths. The native layout splits the
// coefficient pairs into four interleaved blocks, so at least 16 pairs
// are required.
const (
	MinComplex = 16
	MinReal    = 32
)

// ErrUnsupported is returned for lengths that are not a power of two or
// fall below the kind's minimum.
var ErrUnsupported = errors.New("packfft: unsupported transform length")

// Plan holds the precomputed tables for one transform length and kind.
type Plan struct {
	n     int
	cplx  bool
	pairs int // coefficient pairs: n for complex, n/2 for real

	twiddle []complex64 // W_pairs^k for the complex core
	bitrev  []int
	weight  []complex64 // real split weights e^(-2*pi*i*k/n), k = 0..n/2
	perm    []int       // native position -> canonical pair

	ca, cb []complex64
	stage  []float32
}

// NewPlan prepares a plan for length n. cplx selects complex transforms.
func NewPlan(n int, cplx bool) (*Plan, error) {
	min := MinReal
	if cplx {
		min = MinComplex
	}

	if n < min || n&(n-1) != 0 {
		return nil, ErrUnsupported
	}

	pairs := n
	if !cplx {
		pairs = n / 2
	}

	p := &Plan{
		n:       n,
		cplx:    cplx,
		pairs:   pairs,
		twiddle: computeTwiddles(pairs),
		bitrev:  computeBitrev(pairs),
		perm:    computePerm(pairs),
		ca:      make([]complex64, pairs),
		cb:      make([]complex64, pairs),
		stage:   make([]float32, 2*pairs),
	}

	if !cplx {
		p.weight = make([]complex64, n/2+1)
		for k := range p.weight {
			angle := -2.0 * math.Pi * float64(k) / float64(n)
			p.weight[k] = complex(float32(math.Cos(angle)), float32(math.Sin(angle)))
		}
	}

	return p, nil
}

// N returns the transform length.
func (p *Plan) N() int {
	return p.n
}

// Floats returns the number of float32 values in one sample buffer.
func (p *Plan) Floats() int {
	return 2 * p.pairs
}

func computeTwiddles(m int) []complex64 {
	twiddle := make([]complex64, m)
	for k := 0; k < m; k++ {
		angle := -2.0 * math.Pi * float64(k) / float64(m)
		twiddle[k] = complex(float32(math.Cos(angle)), float32(math.Sin(angle)))
	}

	return twiddle
}

func computeBitrev(m int) []int {
	bits := 0
	for v := m; v > 1; v >>= 1 {
		bits++
	}

	bitrev := make([]int, m)
	for i := 0; i < m; i++ {
		r := 0
		v := i

		for b := 0; b < bits; b++ {
			r = (r << 1) | (v & 1)
			v >>= 1
		}

		bitrev[i] = r
	}

	return bitrev
}

// computePerm builds the native layout: the pairs are regrouped into
// four blocks, block b holding the canonical pairs congruent to b mod 4.
// Pair 0 stays at native position 0, which the packed real convolution
// relies on.
func computePerm(pairs int) []int {
	quarter := pairs / 4

	perm := make([]int, pairs)
	for j := 0; j < pairs; j++ {
		perm[j] = (j%quarter)*4 + j/quarter
	}

	return perm
}

// fft runs the iterative radix-2 core out of place. dst and src must not
// overlap.
func (p *Plan) fft(dst, src []complex64, inverse bool) {
	m := p.pairs
	for i, j := range p.bitrev {
		dst[i] = src[j]
	}

	for size := 2; size <= m; size <<= 1 {
		half := size / 2
		step := m / size

		for start := 0; start < m; start += size {
			for k := 0; k < half; k++ {
				tw := p.twiddle[k*step]
				if inverse {
					tw = complex(real(tw), -imag(tw))
				}

				a := dst[start+k]
				b := dst[start+k+half] * tw
				dst[start+k] = a + b
				dst[start+k+half] = a - b
			}
		}
	}
}

// TransformOrdered runs one transform with canonical-order coefficients.
// dst and src may alias. scratch is unused by the ordered path and may
// be nil.
func (p *Plan) TransformOrdered(dst, src, scratch []float32, forward bool) {
	_ = scratch

	if p.cplx {
		p.complexTransform(dst, src, forward)
		return
	}

	if forward {
		p.realForward(dst, src)
		return
	}

	p.realBackward(dst, src)
}

// Transform runs one transform with native-order coefficients. dst and
// src may alias. scratch must hold Floats() values or be nil.
func (p *Plan) Transform(dst, src, scratch []float32, forward bool) {
	stage := p.stage
	if len(scratch) >= 2*p.pairs {
		stage = scratch[:2*p.pairs]
	}

	if forward {
		p.TransformOrdered(stage, src, nil, true)
		p.scatter(dst, stage)

		return
	}

	p.gather(stage, src)
	p.TransformOrdered(dst, stage, nil, false)
}

// Reorder converts a spectrum between orderings: toCanonical maps native
// to canonical, otherwise canonical to native. dst and src must not
// overlap.
func (p *Plan) Reorder(dst, src []float32, toCanonical bool) {
	if toCanonical {
		p.gather(dst, src)
		return
	}

	p.scatter(dst, src)
}

// scatter writes a canonical spectrum into the native layout.
func (p *Plan) scatter(dst, canonical []float32) {
	for j, k := range p.perm {
		dst[2*j] = canonical[2*k]
		dst[2*j+1] = canonical[2*k+1]
	}
}

// gather reads a native spectrum into the canonical layout.
func (p *Plan) gather(dst, native []float32) {
	for j, k := range p.perm {
		dst[2*k] = native[2*j]
		dst[2*k+1] = native[2*j+1]
	}
}

// ConvolveAccumulate accumulates the pointwise product of the
// native-order spectra a and b into acc, scaled by scaling. For real
// transforms the first pair packs the purely real DC and Nyquist bins,
// which multiply component-wise.
func (p *Plan) ConvolveAccumulate(a, b, acc []float32, scaling float32) {
	start := 0
	if !p.cplx {
		acc[0] += a[0] * b[0] * scaling
		acc[1] += a[1] * b[1] * scaling
		start = 1
	}

	for j := start; j < p.pairs; j++ {
		ar, ai := a[2*j], a[2*j+1]
		br, bi := b[2*j], b[2*j+1]
		acc[2*j] += (ar*br - ai*bi) * scaling
		acc[2*j+1] += (ar*bi + ai*br) * scaling
	}
}

func (p *Plan) complexTransform(dst, src []float32, forward bool) {
	n := p.n
	for k := 0; k < n; k++ {
		p.ca[k] = complex(src[2*k], src[2*k+1])
	}

	p.fft(p.cb, p.ca, !forward)

	for k := 0; k < n; k++ {
		dst[2*k] = real(p.cb[k])
		dst[2*k+1] = imag(p.cb[k])
	}
}

// realForward computes the packed half spectrum of n real samples via a
// half-size complex transform followed by the split step.
func (p *Plan) realForward(dst, src []float32) {
	m := p.pairs

	for j := 0; j < m; j++ {
		p.ca[j] = complex(src[2*j], src[2*j+1])
	}

	p.fft(p.cb, p.ca, false)

	z0 := p.cb[0]
	dst[0] = real(z0) + imag(z0)
	dst[1] = real(z0) - imag(z0)

	for k := 1; k < m; k++ {
		zk := p.cb[k]
		zm := p.cb[m-k]
		zmc := complex(real(zm), -imag(zm))

		e := (zk + zmc) * 0.5
		o := (zk - zmc) * complex(0, -0.5)
		x := e + p.weight[k]*o

		dst[2*k] = real(x)
		dst[2*k+1] = imag(x)
	}
}

// realBackward runs the unnormalized inverse of realForward.
func (p *Plan) realBackward(dst, src []float32) {
	m := p.pairs

	x := func(k int) complex64 {
		switch k {
		case 0:
			return complex(src[0], 0)
		case m:
			return complex(src[1], 0)
		default:
			return complex(src[2*k], src[2*k+1])
		}
	}

	for k := 0; k < m; k++ {
		xk := x(k)
		xm := x(m - k)
		xmc := complex(real(xm), -imag(xm))

		e := (xk + xmc) * 0.5
		wo := (xk - xmc) * 0.5
		w := p.weight[k]
		o := complex(real(w), -imag(w)) * wo

		p.ca[k] = e + complex(0, 1)*o
	}

	p.fft(p.cb, p.ca, true)

	for j := 0; j < m; j++ {
		dst[2*j] = 2 * real(p.cb[j])
		dst[2*j+1] = 2 * imag(p.cb[j])
	}
}
