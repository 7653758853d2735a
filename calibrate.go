package fftbench

import (
	"github.com/pkg/errors"

	"github.com/cwbudde/fftbench/internal/align"
	"github.com/cwbudde/fftbench/internal/clock"
)

const (
	// calibrationSize is the fixed reference length at which the
	// candidate backend's raw iteration rate is measured.
	calibrationSize = 512
	// calibrationDuration is the calibration wall-clock budget in
	// seconds.
	calibrationDuration = 0.250
	// calibrationBlock is the number of round trips between clock reads
	// during calibration.
	calibrationBlock = 512

	// benchDuration is the measurement window per backend in seconds.
	benchDuration = 0.150
)

// Calibrate measures the candidate backend's iteration rate at the
// reference size and returns it normalized under the O(N log N) cost
// model: iterations * N * log2(N) per second. The constant is computed
// once per transform kind and lets the benchmark engine size its loops
// for any other length without per-backend tuning.
func (h *Harness) Calibrate(kind Kind) (float64, error) {
	var cand *Descriptor

	for i := range h.Backends {
		if h.Backends[i].Candidate && !h.Backends[i].BenchOnly {
			cand = &h.Backends[i]
			break
		}
	}

	if cand == nil {
		return 0, ErrNoCandidate
	}

	s, err := cand.New(calibrationSize, kind, h.Opts)
	if err != nil {
		return 0, errors.Wrapf(err, "fftbench: candidate %q cannot calibrate at n=%d", cand.Name, calibrationSize)
	}
	defer s.Destroy()

	nfloat := s.Len() * kind.FloatsPer()

	x, _ := align.Float32(nfloat)
	y, _ := align.Float32(nfloat)
	z, _ := align.Float32(nfloat)

	for k := range x {
		x[k] = sqrtRamp(k)
	}

	iter := 0
	t0 := clock.Now()
	tstop := t0 + calibrationDuration

	var t1 float64

	for {
		for cb := 0; cb < calibrationBlock; cb++ {
			s.Transform(z, x, y, Forward)
			s.Transform(z, x, y, Backward)
			iter++
		}

		t1 = clock.Now()
		if t1 >= tstop {
			break
		}
	}

	elapsed := t1 - t0
	if elapsed <= 0 {
		return 0, errors.Errorf("fftbench: calibration clock did not advance (n=%d, %s)", calibrationSize, kind)
	}

	normalized := float64(iter) * float64(calibrationSize*Log2(calibrationSize))

	return normalized / elapsed, nil
}

// IterationBudget converts the calibration constant into the iteration
// target for a length-n measurement window and the step granularity at
// which the benchmark loop samples the clock (about 1% of the target,
// minimum 1).
func IterationBudget(n int, iterCal float64) (maxIter, stepIter int) {
	numIter := benchDuration * iterCal / float64(Log2(n)*n)

	stepIter = int(0.01 * numIter)
	if stepIter < 1 {
		stepIter = 1
	}

	maxIter = int(numIter)
	if maxIter < 1 {
		maxIter = 1
	}

	return maxIter, stepIter
}
