// Package dft registers a naive direct DFT backend. It is slow by
// construction but supports arbitrary even lengths up to a cap, which
// makes it a useful cross-check on mixed-radix sizes and exercises the
// harness's skip path above the cap.
package dft

import (
	"math"

	"github.com/cwbudde/fftbench"
)

// maxSize caps the quadratic transform at a length where a measurement
// window still completes promptly.
const maxSize = 2048

func init() {
	fftbench.Register(fftbench.Descriptor{
		Name:      "dft",
		Display:   "DirectDFT",
		New:       newSetup,
		Supported: supported,
	})
}

func supported(n int, kind fftbench.Kind) (int, bool) {
	if n < 2 || n > maxSize {
		return 0, false
	}

	if kind == fftbench.KindReal && n%2 != 0 {
		return 0, false
	}

	return n, true
}

func newSetup(n int, kind fftbench.Kind, _ fftbench.Options) (fftbench.Setup, error) {
	if _, ok := supported(n, kind); !ok {
		return nil, fftbench.ErrUnsupportedSize
	}

	tw := make([]complex128, n)
	for k := 0; k < n; k++ {
		angle := -2.0 * math.Pi * float64(k) / float64(n)
		tw[k] = complex(math.Cos(angle), math.Sin(angle))
	}

	return &setup{
		n:    n,
		kind: kind,
		tw:   tw,
		za:   make([]complex128, n),
		zb:   make([]complex128, n),
	}, nil
}

type setup struct {
	n    int
	kind fftbench.Kind
	tw   []complex128
	za   []complex128
	zb   []complex128
}

func (s *setup) Len() int {
	return s.n
}

func (s *setup) Kind() fftbench.Kind {
	return s.kind
}

// Transform evaluates the DFT sum directly. The native ordering of this
// backend is already the canonical packing, so TransformOrdered is the
// same operation.
func (s *setup) Transform(dst, src, _ []float32, dir fftbench.Direction) {
	if s.kind == fftbench.KindComplex {
		s.complexTransform(dst, src, dir)
		return
	}

	if dir == fftbench.Forward {
		s.realForward(dst, src)
	} else {
		s.realBackward(dst, src)
	}
}

func (s *setup) TransformOrdered(dst, src, scratch []float32, dir fftbench.Direction) {
	s.Transform(dst, src, scratch, dir)
}

func (s *setup) Destroy() {
	s.tw = nil
	s.za = nil
	s.zb = nil
}

// evaluate computes zb[k] = sum_j za[j] * W^(jk) for k in [0, bins),
// conjugating the twiddles for inverse transforms.
func (s *setup) evaluate(bins int, inverse bool) {
	n := s.n

	for k := 0; k < bins; k++ {
		var acc complex128

		for j := 0; j < n; j++ {
			w := s.tw[(j*k)%n]
			if inverse {
				w = complex(real(w), -imag(w))
			}

			acc += s.za[j] * w
		}

		s.zb[k] = acc
	}
}

func (s *setup) complexTransform(dst, src []float32, dir fftbench.Direction) {
	n := s.n
	for k := 0; k < n; k++ {
		s.za[k] = complex(float64(src[2*k]), float64(src[2*k+1]))
	}

	s.evaluate(n, dir == fftbench.Backward)

	for k := 0; k < n; k++ {
		dst[2*k] = float32(real(s.zb[k]))
		dst[2*k+1] = float32(imag(s.zb[k]))
	}
}

func (s *setup) realForward(dst, src []float32) {
	n := s.n
	for k := 0; k < n; k++ {
		s.za[k] = complex(float64(src[k]), 0)
	}

	s.evaluate(n/2+1, false)

	dst[0] = float32(real(s.zb[0]))
	dst[1] = float32(real(s.zb[n/2]))

	for k := 1; k < n/2; k++ {
		dst[2*k] = float32(real(s.zb[k]))
		dst[2*k+1] = float32(imag(s.zb[k]))
	}
}

func (s *setup) realBackward(dst, src []float32) {
	n := s.n

	s.za[0] = complex(float64(src[0]), 0)
	s.za[n/2] = complex(float64(src[1]), 0)

	for k := 1; k < n/2; k++ {
		s.za[k] = complex(float64(src[2*k]), float64(src[2*k+1]))
		s.za[n-k] = complex(float64(src[2*k]), -float64(src[2*k+1]))
	}

	s.evaluate(n, true)

	for k := 0; k < n; k++ {
		dst[k] = float32(real(s.zb[k]))
	}
}
