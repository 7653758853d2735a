package packfft

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
)

func dftComplex(in []float32, inverse bool) []complex128 {
	n := len(in) / 2
	sign := -2.0

	if inverse {
		sign = 2.0
	}

	out := make([]complex128, n)

	for k := 0; k < n; k++ {
		var acc complex128

		for j := 0; j < n; j++ {
			angle := sign * math.Pi * float64(j*k) / float64(n)
			w := complex(math.Cos(angle), math.Sin(angle))
			acc += complex(float64(in[2*j]), float64(in[2*j+1])) * w
		}

		out[k] = acc
	}

	return out
}

func randomFloats(t *testing.T, n int, seed int64) []float32 {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))

	x := make([]float32, n)
	for k := range x {
		x[k] = rng.Float32()*2 - 1
	}

	return x
}

func maxMagnitude(bins []complex128) float64 {
	m := 0.0
	for _, v := range bins {
		v := v
		if a := math.Hypot(real(v), imag(v)); a > m {
			m = a
		}
	}

	return m
}

func assertClose(t *testing.T, got, want, tol float64, what string, k int) {
	t.Helper()

	if d := math.Abs(got - want); d > tol {
		t.Fatalf("%s mismatch at %d: got %g, want %g (diff %g, tol %g)", what, k, got, want, d, tol)
	}
}

func TestOrderedComplexMatchesDFT(t *testing.T) {
	t.Parallel()

	for _, n := range []int{16, 32, 64, 128, 256} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()

			p, err := NewPlan(n, true)
			if err != nil {
				t.Fatalf("NewPlan(%d, cplx): %v", n, err)
			}

			src := randomFloats(t, 2*n, int64(n))
			want := dftComplex(src, false)
			tol := 1e-4*maxMagnitude(want) + 1e-6

			dst := make([]float32, 2*n)
			p.TransformOrdered(dst, src, nil, true)

			for k := 0; k < n; k++ {
				assertClose(t, float64(dst[2*k]), real(want[k]), tol, "re", k)
				assertClose(t, float64(dst[2*k+1]), imag(want[k]), tol, "im", k)
			}
		})
	}
}

func TestOrderedRealPackedLayout(t *testing.T) {
	t.Parallel()

	for _, n := range []int{32, 64, 128, 512} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()

			p, err := NewPlan(n, false)
			if err != nil {
				t.Fatalf("NewPlan(%d, real): %v", n, err)
			}

			src := randomFloats(t, n, int64(n))

			interleaved := make([]float32, 2*n)
			for k := 0; k < n; k++ {
				interleaved[2*k] = src[k]
			}

			want := dftComplex(interleaved, false)
			tol := 1e-4*maxMagnitude(want) + 1e-6

			dst := make([]float32, n)
			p.TransformOrdered(dst, src, nil, true)

			assertClose(t, float64(dst[0]), real(want[0]), tol, "dc", 0)
			assertClose(t, float64(dst[1]), real(want[n/2]), tol, "nyquist", 1)

			for k := 1; k < n/2; k++ {
				assertClose(t, float64(dst[2*k]), real(want[k]), tol, "re", k)
				assertClose(t, float64(dst[2*k+1]), imag(want[k]), tol, "im", k)
			}
		})
	}
}

func TestRoundTripScalesByN(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		n    int
		cplx bool
	}{
		{32, false}, {128, false}, {1024, false},
		{16, true}, {64, true}, {1024, true},
	} {
		tc := tc
		t.Run(fmt.Sprintf("n=%d/cplx=%v", tc.n, tc.cplx), func(t *testing.T) {
			t.Parallel()

			p, err := NewPlan(tc.n, tc.cplx)
			if err != nil {
				t.Fatalf("NewPlan: %v", err)
			}

			nf := p.Floats()
			scale := float64(tc.n)
			tol := 1e-4 * scale

			for _, ordered := range []bool{true, false} {
				ordered := ordered
				src := randomFloats(t, nf, int64(tc.n))
				spec := make([]float32, nf)
				back := make([]float32, nf)

				if ordered {
					p.TransformOrdered(spec, src, nil, true)
					p.TransformOrdered(back, spec, nil, false)
				} else {
					p.Transform(spec, src, nil, true)
					p.Transform(back, spec, nil, false)
				}

				for k := range back {
					assertClose(t, float64(back[k]), scale*float64(src[k]), tol, "roundtrip", k)
				}
			}
		})
	}
}

func TestNativePermutation(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		n    int
		cplx bool
	}{{64, true}, {128, false}} {
		tc := tc
		t.Run(fmt.Sprintf("n=%d/cplx=%v", tc.n, tc.cplx), func(t *testing.T) {
			t.Parallel()

			p, err := NewPlan(tc.n, tc.cplx)
			if err != nil {
				t.Fatalf("NewPlan: %v", err)
			}

			if p.perm[0] != 0 {
				t.Fatalf("pair 0 moved to native position of %d", p.perm[0])
			}

			seen := make([]bool, p.pairs)
			for _, k := range p.perm {
				if k < 0 || k >= p.pairs || seen[k] {
					t.Fatalf("perm is not a bijection: duplicate or out-of-range target %d", k)
				}

				seen[k] = true
			}
		})
	}
}

func TestNativeMatchesOrderedAfterReorder(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		n    int
		cplx bool
	}{{64, true}, {64, false}, {256, true}, {256, false}} {
		tc := tc
		t.Run(fmt.Sprintf("n=%d/cplx=%v", tc.n, tc.cplx), func(t *testing.T) {
			t.Parallel()

			p, err := NewPlan(tc.n, tc.cplx)
			if err != nil {
				t.Fatalf("NewPlan: %v", err)
			}

			nf := p.Floats()
			src := randomFloats(t, nf, 3)

			native := make([]float32, nf)
			canonical := make([]float32, nf)
			ordered := make([]float32, nf)

			p.Transform(native, src, nil, true)
			p.Reorder(canonical, native, true)
			p.TransformOrdered(ordered, src, nil, true)

			for k := range ordered {
				if canonical[k] != ordered[k] {
					t.Fatalf("reordered native spectrum differs at %d: got %g, want %g", k, canonical[k], ordered[k])
				}
			}
		})
	}
}

func TestReorderInvolution(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		n    int
		cplx bool
	}{{64, true}, {128, false}} {
		tc := tc
		t.Run(fmt.Sprintf("n=%d/cplx=%v", tc.n, tc.cplx), func(t *testing.T) {
			t.Parallel()

			p, err := NewPlan(tc.n, tc.cplx)
			if err != nil {
				t.Fatalf("NewPlan: %v", err)
			}

			nf := p.Floats()
			src := randomFloats(t, nf, 5)

			fwd := make([]float32, nf)
			back := make([]float32, nf)

			p.Reorder(fwd, src, true)
			p.Reorder(back, fwd, false)

			for k := range back {
				if back[k] != src[k] {
					t.Fatalf("involution not exact at %d: got %g, want %g", k, back[k], src[k])
				}
			}
		})
	}
}

func TestTransformAliasing(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		n    int
		cplx bool
	}{{64, true}, {64, false}} {
		tc := tc
		t.Run(fmt.Sprintf("n=%d/cplx=%v", tc.n, tc.cplx), func(t *testing.T) {
			t.Parallel()

			p, err := NewPlan(tc.n, tc.cplx)
			if err != nil {
				t.Fatalf("NewPlan: %v", err)
			}

			nf := p.Floats()
			src := randomFloats(t, nf, 9)

			separate := make([]float32, nf)
			p.Transform(separate, src, nil, true)

			inPlace := append([]float32(nil), src...)
			p.Transform(inPlace, inPlace, nil, true)

			for k := range separate {
				if separate[k] != inPlace[k] {
					t.Fatalf("in-place transform differs at %d: got %g, want %g", k, inPlace[k], separate[k])
				}
			}
		})
	}
}

func TestConvolveAccumulate(t *testing.T) {
	t.Parallel()

	t.Run("complex", func(t *testing.T) {
		t.Parallel()

		p, err := NewPlan(16, true)
		if err != nil {
			t.Fatalf("NewPlan: %v", err)
		}

		a := randomFloats(t, p.Floats(), 1)
		b := randomFloats(t, p.Floats(), 2)
		acc := make([]float32, p.Floats())

		p.ConvolveAccumulate(a, b, acc, 2.0)

		for j := 0; j < p.pairs; j++ {
			ar, ai := a[2*j], a[2*j+1]
			br, bi := b[2*j], b[2*j+1]

			wantRe := (ar*br - ai*bi) * 2
			wantIm := (ar*bi + ai*br) * 2

			assertClose(t, float64(acc[2*j]), float64(wantRe), 1e-6, "re", j)
			assertClose(t, float64(acc[2*j+1]), float64(wantIm), 1e-6, "im", j)
		}
	})

	t.Run("real packed pair 0", func(t *testing.T) {
		t.Parallel()

		p, err := NewPlan(32, false)
		if err != nil {
			t.Fatalf("NewPlan: %v", err)
		}

		a := randomFloats(t, p.Floats(), 3)
		acc := make([]float32, p.Floats())

		p.ConvolveAccumulate(a, a, acc, 1.0)

		// DC and Nyquist are purely real and multiply component-wise.
		assertClose(t, float64(acc[0]), float64(a[0]*a[0]), 1e-6, "dc", 0)
		assertClose(t, float64(acc[1]), float64(a[1]*a[1]), 1e-6, "nyquist", 1)

		for j := 1; j < p.pairs; j++ {
			ar, ai := a[2*j], a[2*j+1]
			assertClose(t, float64(acc[2*j]), float64(ar*ar-ai*ai), 1e-6, "re", j)
			assertClose(t, float64(acc[2*j+1]), float64(2*ar*ai), 1e-6, "im", j)
		}
	})
}

func TestNewPlanRejectsUnsupported(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		n    int
		cplx bool
	}{
		{8, true},   // below complex minimum
		{16, false}, // below real minimum
		{48, true},  // not a power of two
		{96, false}, // not a power of two
		{0, true},
		{-64, false},
	} {
		tc := tc
		if _, err := NewPlan(tc.n, tc.cplx); err != ErrUnsupported {
			t.Fatalf("NewPlan(%d, cplx=%v): got %v, want ErrUnsupported", tc.n, tc.cplx, err)
		}
	}
}
