package fftbench

import "github.com/cwbudde/fftbench/internal/fftpack"

// oracleSpectrum computes the reference forward spectrum of in with the
// trusted FFTPACK-equivalent transform and converts it from the oracle's
// native ordering to the canonical packed ordering used for
// cross-backend comparison.
func oracleSpectrum(kind Kind, n int, in []float32) ([]float32, error) {
	ref := make([]float32, n*kind.FloatsPer())
	copy(ref, in)

	var (
		w   *fftpack.Work
		err error
	)

	if kind == KindComplex {
		w, err = fftpack.NewComplex(n)
	} else {
		w, err = fftpack.NewReal(n)
	}

	if err != nil {
		return nil, err
	}

	w.Forward(ref)

	if kind == KindReal {
		fftpack.ShiftToCanonical(ref)
	}

	return ref, nil
}
