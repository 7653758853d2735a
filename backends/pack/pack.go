// Package pack registers the packed power-of-two FFT backend, the
// candidate implementation the harness exists to test. It is registered
// twice: "pack" measures the canonical-order entry point, "pack-u" the
// cheaper native-order one.
package pack

import (
	"github.com/cwbudde/fftbench"
	"github.com/cwbudde/fftbench/internal/packfft"
)

func init() {
	fftbench.Register(fftbench.Descriptor{
		Name:      "pack",
		Display:   "PackFFT",
		Candidate: true,
		Baseline:  true,
		Ordered:   true,
		New:       newSetup,
		Supported: supported,
	})

	fftbench.Register(fftbench.Descriptor{
		Name:      "pack-u",
		Display:   "PackFFT-U",
		BenchOnly: true,
		New:       newSetup,
		Supported: supported,
	})
}

func supported(n int, kind fftbench.Kind) (int, bool) {
	min := packfft.MinReal
	if kind == fftbench.KindComplex {
		min = packfft.MinComplex
	}

	if n < min {
		n = min
	}

	return fftbench.NextPow2(n), true
}

func newSetup(n int, kind fftbench.Kind, opts fftbench.Options) (fftbench.Setup, error) {
	plan, err := packfft.NewPlan(n, kind == fftbench.KindComplex)
	if err != nil {
		return nil, fftbench.ErrUnsupportedSize
	}

	s := &setup{plan: plan, kind: kind}

	if opts.FullEffort {
		s.warm()
	}

	return s, nil
}

type setup struct {
	plan *packfft.Plan
	kind fftbench.Kind
}

// warm runs a few round trips through both entry points so that tables
// and caches are hot before the first measured call.
func (s *setup) warm() {
	buf := make([]float32, s.plan.Floats())
	for k := range buf {
		buf[k] = float32(k%7) - 3
	}

	for r := 0; r < 2; r++ {
		s.plan.Transform(buf, buf, nil, true)
		s.plan.Transform(buf, buf, nil, false)
		s.plan.TransformOrdered(buf, buf, nil, true)
		s.plan.TransformOrdered(buf, buf, nil, false)
	}
}

func (s *setup) Len() int {
	return s.plan.N()
}

func (s *setup) Kind() fftbench.Kind {
	return s.kind
}

func (s *setup) Transform(dst, src, scratch []float32, dir fftbench.Direction) {
	s.plan.Transform(dst, src, scratch, dir == fftbench.Forward)
}

func (s *setup) TransformOrdered(dst, src, scratch []float32, dir fftbench.Direction) {
	s.plan.TransformOrdered(dst, src, scratch, dir == fftbench.Forward)
}

func (s *setup) Reorder(dst, src []float32, dir fftbench.Direction) {
	s.plan.Reorder(dst, src, dir == fftbench.Forward)
}

func (s *setup) ConvolveAccumulate(a, b, acc []float32, scaling float32) {
	s.plan.ConvolveAccumulate(a, b, acc, scaling)
}

func (s *setup) Destroy() {
	s.plan = nil
}
