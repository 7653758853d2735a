// Package fftpack registers the reference FFTPACK-equivalent transform
// as a benchmarkable backend. It doubles as the trusted oracle wrapper:
// its native ordering is the FFTPACK half-spectrum layout, with reorder
// and ordered entry points converting to the canonical packing.
package fftpack

import (
	"github.com/cwbudde/fftbench"
	ref "github.com/cwbudde/fftbench/internal/fftpack"
)

func init() {
	fftbench.Register(fftbench.Descriptor{
		Name:      "fftpack",
		Display:   "FFTPack",
		Reference: true,
		New:       newSetup,
		Supported: supported,
	})
}

func supported(n int, kind fftbench.Kind) (int, bool) {
	if n < 2 {
		return 0, false
	}

	if kind == fftbench.KindReal && n%2 != 0 {
		return 0, false
	}

	return n, true
}

func newSetup(n int, kind fftbench.Kind, _ fftbench.Options) (fftbench.Setup, error) {
	var (
		w   *ref.Work
		err error
	)

	if kind == fftbench.KindComplex {
		w, err = ref.NewComplex(n)
	} else {
		w, err = ref.NewReal(n)
	}

	if err != nil {
		return nil, fftbench.ErrUnsupportedSize
	}

	return &setup{w: w, n: n, kind: kind}, nil
}

type setup struct {
	w    *ref.Work
	n    int
	kind fftbench.Kind
}

func (s *setup) Len() int {
	return s.n
}

func (s *setup) Kind() fftbench.Kind {
	return s.kind
}

func (s *setup) floats() int {
	return s.n * s.kind.FloatsPer()
}

// Transform runs the in-place FFTPACK transform, copying src into dst
// first when the buffers differ.
func (s *setup) Transform(dst, src, _ []float32, dir fftbench.Direction) {
	nf := s.floats()
	if &dst[0] != &src[0] {
		copy(dst[:nf], src[:nf])
	}

	if dir == fftbench.Forward {
		s.w.Forward(dst[:nf])
	} else {
		s.w.Backward(dst[:nf])
	}
}

// TransformOrdered transforms with canonical-order coefficients. For
// real transforms that means shifting between the FFTPACK layout and
// the packed DC/Nyquist layout around the in-place transform.
func (s *setup) TransformOrdered(dst, src, scratch []float32, dir fftbench.Direction) {
	nf := s.floats()

	if dir == fftbench.Forward {
		s.Transform(dst, src, scratch, dir)

		if s.kind == fftbench.KindReal {
			ref.ShiftToCanonical(dst[:nf])
		}

		return
	}

	if &dst[0] != &src[0] {
		copy(dst[:nf], src[:nf])
	}

	if s.kind == fftbench.KindReal {
		ref.ShiftFromCanonical(dst[:nf])
	}

	s.w.Backward(dst[:nf])
}

// Reorder converts spectra between the FFTPACK layout and the canonical
// packing. Complex spectra are already canonical.
func (s *setup) Reorder(dst, src []float32, dir fftbench.Direction) {
	nf := s.floats()
	copy(dst[:nf], src[:nf])

	if s.kind != fftbench.KindReal {
		return
	}

	if dir == fftbench.Forward {
		ref.ShiftToCanonical(dst[:nf])
	} else {
		ref.ShiftFromCanonical(dst[:nf])
	}
}

func (s *setup) Destroy() {
	s.w = nil
}
