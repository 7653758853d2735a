package fftbench

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/cwbudde/fftbench/internal/align"
)

// Numeric tolerances, relative to the largest reference magnitude.
const (
	transformTolerance = 1e-3
	convolveTolerance  = 1e-5
)

// Validate runs the correctness validation engine for every registered
// backend (alias descriptors excluded) over the fixed size catalogue.
// It returns the first failure; a failure is fatal for the run.
func (h *Harness) Validate(kind Kind) error {
	if len(h.Backends) == 0 {
		return ErrNoBackends
	}

	for _, d := range h.Backends {
		if d.BenchOnly {
			continue
		}

		if err := h.ValidateBackend(d, kind, ValidationSizes()); err != nil {
			return err
		}
	}

	return nil
}

// ValidateBackend drives one backend through forward, inverse, reorder,
// and convolution round trips for each size and compares the results
// against the reference oracle. Sizes the backend cannot set up are
// skipped with a diagnostic. Real transforms skip n=16, which is below
// the minimum real transform length under test.
func (h *Harness) ValidateBackend(d Descriptor, kind Kind, sizes []int) error {
	rng := rand.New(rand.NewSource(h.Seed))

	for _, n := range sizes {
		if n == 16 && kind == KindReal {
			continue
		}

		if err := h.validateSize(rng, d, kind, n); err != nil {
			return err
		}
	}

	return nil
}

func (h *Harness) validateSize(rng *rand.Rand, d Descriptor, kind Kind, n int) error {
	s, err := d.New(n, kind, h.Opts)
	if err != nil {
		if errors.Is(err, ErrUnsupportedSize) {
			h.Log.WithFields(map[string]any{
				"backend": d.Name, "kind": kind.String(), "n": n,
			}).Info("skipping unsupported size")

			return nil
		}

		return errors.Wrapf(err, "fftbench: backend %q setup failed for n=%d", d.Name, n)
	}
	defer s.Destroy()

	reorderer, hasReorder := s.(Reorderer)
	ordered, hasOrdered := s.(OrderedTransformer)
	convolver, hasConvolve := s.(Convolver)

	nfloat := n * kind.FloatsPer()

	in, _ := align.Float32(nfloat)
	out, _ := align.Float32(nfloat)
	tmp, _ := align.Float32(nfloat)
	tmp2, _ := align.Float32(nfloat)

	for k := range in {
		in[k] = rng.Float32()*2 - 1
	}

	ref, err := oracleSpectrum(kind, n, in)
	if err != nil {
		return errors.Wrapf(err, "fftbench: reference transform failed for n=%d", n)
	}

	refMax := maxAbs(ref)

	fail := func(stage string, magnitude, limit float64) error {
		return &ValidationError{
			Backend: d.Name, Size: n, Kind: kind,
			Stage: stage, Magnitude: magnitude, Limit: limit,
		}
	}

	for pass := 0; pass < 2; pass++ {
		haveCanonical := false

		if pass == 0 {
			// Native ordering: forward with separate buffers, then the
			// same transform in place must be bit-identical.
			s.Transform(tmp, in, nil, Forward)
			copy(tmp2, tmp)
			copy(tmp, in)
			s.Transform(tmp, tmp, nil, Forward)

			if diff, bad := bitDiff(tmp, tmp2); bad {
				return fail("forward aliasing", diff, 0)
			}

			if hasReorder {
				// Reordering forward then backward must be an exact
				// involution pair.
				reorderer.Reorder(out, tmp, Forward)
				reorderer.Reorder(tmp, out, Backward)

				if diff, bad := bitDiff(tmp, tmp2); bad {
					return fail("reorder involution", diff, 0)
				}

				reorderer.Reorder(out, tmp, Forward)
				haveCanonical = true
			}
		} else {
			if !hasOrdered {
				continue
			}

			// Canonical ordering: same aliasing check through the
			// ordered entry point.
			ordered.TransformOrdered(tmp, in, nil, Forward)
			copy(tmp2, tmp)
			copy(tmp, in)
			ordered.TransformOrdered(tmp, tmp, nil, Forward)

			if diff, bad := bitDiff(tmp, tmp2); bad {
				return fail("forward aliasing", diff, 0)
			}

			copy(out, tmp)
			haveCanonical = true
		}

		if haveCanonical {
			for k := range out {
				d := math.Abs(float64(ref[k] - out[k]))
				if !(d < transformTolerance*refMax) {
					return fail("forward", d, transformTolerance*refMax)
				}
			}
		}

		// Inverse round trip: backward-transform the forward result
		// (tmp holds it in this pass's ordering), check aliasing, scale
		// by 1/n, and compare with the original input.
		if pass == 0 {
			s.Transform(out, tmp, nil, Backward)
		} else {
			ordered.TransformOrdered(out, tmp, nil, Backward)
		}

		copy(tmp2, out)
		copy(out, tmp)

		if pass == 0 {
			s.Transform(out, out, nil, Backward)
		} else {
			ordered.TransformOrdered(out, out, nil, Backward)
		}

		if diff, bad := bitDiff(out, tmp2); bad {
			return fail("inverse aliasing", diff, 0)
		}

		scale := 1 / float32(n)
		for k := range out {
			out[k] *= scale
		}

		for k := range out {
			d := math.Abs(float64(in[k] - out[k]))
			if d > transformTolerance*refMax {
				return fail("inverse", d, transformTolerance*refMax)
			}
		}

		// Convolution identity: the packed-spectrum self-convolution
		// must match a direct complex squaring of the reordered
		// spectrum, with the special real/imaginary packing at pair 0.
		if hasReorder && hasConvolve {
			reorderer.Reorder(tmp, ref, Forward)

			for k := range out {
				out[k] = 0
			}

			convolver.ConvolveAccumulate(ref, ref, out, 1.0)
			reorderer.Reorder(tmp2, out, Forward)

			for k := 0; k < nfloat; k += 2 {
				ar, ai := tmp[k], tmp[k+1]
				if kind == KindComplex || k > 0 {
					tmp[k] = ar*ar - ai*ai
					tmp[k+1] = 2 * ar * ai
				} else {
					tmp[0] = ar * ar
					tmp[1] = ai * ai
				}
			}

			var convErr, convMax float64

			for k := range tmp {
				d := math.Abs(float64(tmp[k] - tmp2[k]))
				e := math.Abs(float64(tmp[k]))

				if d > convErr {
					convErr = d
				}

				if e > convMax {
					convMax = e
				}
			}

			if convErr > convolveTolerance*convMax {
				return fail("convolution", convErr, convolveTolerance*convMax)
			}
		}
	}

	h.Log.WithFields(map[string]any{
		"backend": d.Name, "kind": kind.String(), "n": n,
	}).Debug("validation OK")

	return nil
}

func maxAbs(x []float32) float64 {
	m := 0.0
	for _, v := range x {
		if a := math.Abs(float64(v)); a > m {
			m = a
		}
	}

	return m
}

// bitDiff reports whether a and b differ anywhere and the largest
// absolute difference. Used for bit-exactness checks, where any
// mismatch (including NaN) is a failure.
func bitDiff(a, b []float32) (float64, bool) {
	m := 0.0
	mismatch := false

	for k := range a {
		if a[k] != b[k] {
			mismatch = true

			if d := math.Abs(float64(a[k] - b[k])); d > m {
				m = d
			}
		}
	}

	return m, mismatch
}
