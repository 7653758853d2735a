package fftbench

import (
	"math"

	"github.com/pkg/errors"

	"github.com/cwbudde/fftbench/internal/align"
	"github.com/cwbudde/fftbench/internal/clock"
)

// sentinelValue is written just past a backend's working buffer and
// asserted after every transform call to detect out-of-bounds writes.
const sentinelValue float32 = 12345.0

// BenchmarkSize measures every compiled-in backend at the nominal
// length n for the given kind and returns one matrix row, including the
// aggregated relative metrics. Backends that cannot process n are
// skipped and left at the not-applicable sentinel. A sentinel
// corruption is returned as a fatal SentinelError.
func (h *Harness) BenchmarkSize(n int, kind Kind, iterCal float64) (Row, error) {
	row := Row{Size: n, Kind: kind, Cells: make([]Cell, len(h.Backends))}

	if len(h.Backends) == 0 {
		return row, ErrNoBackends
	}

	_, stepIter := IterationBudget(n, iterCal)

	for i, d := range h.Backends {
		cell, err := h.benchBackend(d, n, kind, stepIter)
		if err != nil {
			return row, err
		}

		row.Cells[i] = cell
	}

	aggregateRelatives(&row, h.Backends)

	return row, nil
}

func (h *Harness) benchBackend(d Descriptor, n int, kind Kind, stepIter int) (Cell, error) {
	var cell Cell

	// Backends measure non-native lengths at their next supported size,
	// but throughput is normalized to the requested n below so that
	// columns stay comparable at the same nominal length.
	workN, ok := n, true
	if d.Supported != nil {
		workN, ok = d.Supported(n, kind)
	}

	if !ok {
		h.Log.WithFields(map[string]any{
			"backend": d.Name, "kind": kind.String(), "n": n,
		}).Info("skipping unsupported size")

		return cell, nil
	}

	nmax := workN * kind.FloatsPer()

	x, _ := align.Float32(nmax + 1)
	y, _ := align.Float32(nmax + 2)
	z, _ := align.Float32(nmax)

	// Deterministic sparse ramp: a handful of nonzero samples so the
	// spectrum is nontrivial without risking overflow at large n.
	stride := nmax / 16
	if nmax < 32 {
		stride = 4
	}

	for k := 0; k < nmax; k += stride {
		x[k] = sqrtRamp(k)
	}

	x[nmax] = sentinelValue

	guard := func() error {
		if x[nmax] != sentinelValue {
			return &SentinelError{Backend: d.Name, Size: n, Kind: kind, Got: x[nmax]}
		}

		return nil
	}

	te := clock.Now()

	s, err := d.New(workN, kind, h.Opts)
	if err != nil {
		if errors.Is(err, ErrUnsupportedSize) {
			h.Log.WithFields(map[string]any{
				"backend": d.Name, "kind": kind.String(), "n": workN,
			}).Info("skipping unsupported size")

			return cell, nil
		}

		return cell, errors.Wrapf(err, "fftbench: backend %q setup failed for n=%d", d.Name, workN)
	}
	defer s.Destroy()

	call := s.Transform
	if d.Ordered {
		if o, okO := s.(OrderedTransformer); okO {
			call = o.TransformOrdered
		}
	}

	src := x[:nmax]

	iter := 0
	t0 := clock.Now()
	tstop := t0 + benchDuration

	var t1 float64

	for {
		for si := 0; si < stepIter; si++ {
			if err := guard(); err != nil {
				return cell, err
			}

			call(z, src, y, Forward)

			if err := guard(); err != nil {
				return cell, err
			}

			call(z, src, y, Backward)

			if err := guard(); err != nil {
				return cell, err
			}

			iter++
		}

		t1 = clock.Now()
		if t1 >= tstop {
			break
		}
	}

	elapsed := t1 - t0

	// Split-radix operation-count model, normalized to the requested n
	// even when the working size was rounded up.
	complexFactor := 2.5
	if kind == KindComplex {
		complexFactor = 5.0
	}

	flops := float64(iter*2) * complexFactor * float64(n) * math.Log2(float64(n))

	cell.Measured = true
	cell.SetMetric(MetricPrepMS, (t0-te)*1e3)
	cell.SetMetric(MetricIterations, float64(iter))
	cell.SetMetric(MetricMFlops, flops/1e6/(elapsed+1e-16))
	cell.SetMetric(MetricDurationSec, elapsed)
	cell.SetMetric(MetricPerCallNS, elapsed/2/float64(iter)*1e9)

	return cell, nil
}

// sqrtRamp is the deterministic nonzero input pattern sqrt(k+1).
func sqrtRamp(k int) float32 {
	return float32(math.Sqrt(float64(k + 1)))
}
