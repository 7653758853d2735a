package fftbench

import (
	"testing"

	"github.com/pkg/errors"
)

// oobSetup simulates a backend that writes one float past its declared
// working buffer on every call.
type oobSetup struct {
	n    int
	kind Kind
}

func (s *oobSetup) Len() int   { return s.n }
func (s *oobSetup) Kind() Kind { return s.kind }
func (s *oobSetup) Destroy()   {}

func (s *oobSetup) Transform(dst, src, _ []float32, _ Direction) {
	ext := src[:len(src)+1]
	ext[len(src)] = -1

	copy(dst, src)
}

func TestBenchmarkSizeMeasuresBackends(t *testing.T) {
	t.Parallel()

	baseline := stubDescriptor("base", 1)
	baseline.Baseline = true

	h := &Harness{
		Backends: []Descriptor{baseline, stubDescriptor("other", 1)},
		Log:      testLogger(),
		Seed:     1,
	}

	row, err := h.BenchmarkSize(64, KindReal, 1000)
	if err != nil {
		t.Fatalf("BenchmarkSize: %v", err)
	}

	for i, d := range h.Backends {
		c := &row.Cells[i]

		if !c.Measured {
			t.Fatalf("backend %q not measured", d.Name)
		}

		if c.Metric(MetricIterations) < 1 {
			t.Fatalf("backend %q recorded no iterations", d.Name)
		}

		if c.Metric(MetricPerCallNS) <= 0 || c.Metric(MetricMFlops) <= 0 {
			t.Fatalf("backend %q has non-positive timing metrics: %+v", d.Name, c)
		}
	}

	base := row.Cells[0].Metric(MetricRelBaseline)
	if base != 1 {
		t.Fatalf("baseline relative to itself is %g, want 1", base)
	}

	for i := range row.Cells {
		if rel := row.Cells[i].Metric(MetricRelFastest); rel < 1 {
			t.Fatalf("relative-to-fastest below 1 for %q: %g", h.Backends[i].Name, rel)
		}
	}
}

func TestBenchmarkSizeSkipsUnsupported(t *testing.T) {
	t.Parallel()

	skipped := stubDescriptor("skipped", 1)
	skipped.Supported = func(int, Kind) (int, bool) { return 0, false }

	h := &Harness{
		Backends: []Descriptor{stubDescriptor("stub", 1), skipped},
		Log:      testLogger(),
		Seed:     1,
	}

	row, err := h.BenchmarkSize(64, KindComplex, 1000)
	if err != nil {
		t.Fatalf("BenchmarkSize: %v", err)
	}

	if !row.Cells[0].Measured {
		t.Fatal("supported backend not measured")
	}

	if row.Cells[1].Measured {
		t.Fatal("unsupported backend was measured")
	}
}

func TestBenchmarkSizeDetectsGuardCorruption(t *testing.T) {
	t.Parallel()

	h := &Harness{
		Backends: []Descriptor{{
			Name: "oob",
			New: func(n int, kind Kind, _ Options) (Setup, error) {
				return &oobSetup{n: n, kind: kind}, nil
			},
		}},
		Log:  testLogger(),
		Seed: 1,
	}

	_, err := h.BenchmarkSize(64, KindReal, 1000)
	if err == nil {
		t.Fatal("guard corruption went undetected")
	}

	var serr *SentinelError
	if !errors.As(err, &serr) {
		t.Fatalf("got %T (%v), want *SentinelError", err, err)
	}

	if serr.Backend != "oob" || serr.Size != 64 {
		t.Fatalf("wrong failure origin: %+v", serr)
	}
}

func TestBenchmarkSizeRequiresBackends(t *testing.T) {
	t.Parallel()

	h := &Harness{Log: testLogger(), Seed: 1}

	if _, err := h.BenchmarkSize(64, KindReal, 1000); !errors.Is(err, ErrNoBackends) {
		t.Fatalf("got %v, want ErrNoBackends", err)
	}
}

func TestIterationBudget(t *testing.T) {
	t.Parallel()

	// Larger transforms get fewer iterations under the N log N model.
	prev := int(1 << 62)
	for _, n := range []int{64, 512, 4096, 1 << 20} {
		maxIter, stepIter := IterationBudget(n, 1e9)

		if maxIter < 1 || stepIter < 1 {
			t.Fatalf("budget for n=%d below minimum: max=%d step=%d", n, maxIter, stepIter)
		}

		if maxIter > prev {
			t.Fatalf("budget grew with n at n=%d: %d > %d", n, maxIter, prev)
		}

		if stepIter > maxIter {
			t.Fatalf("step %d exceeds budget %d at n=%d", stepIter, maxIter, n)
		}

		prev = maxIter
	}

	// A tiny calibration constant still yields a runnable budget.
	maxIter, stepIter := IterationBudget(1<<20, 1)
	if maxIter != 1 || stepIter != 1 {
		t.Fatalf("minimum budget violated: max=%d step=%d", maxIter, stepIter)
	}
}

func TestAggregateRelatives(t *testing.T) {
	t.Parallel()

	backends := []Descriptor{{Name: "fast"}, {Name: "base", Baseline: true}, {Name: "skipped"}}

	row := Row{Size: 64, Kind: KindReal, Cells: make([]Cell, 3)}
	row.Cells[0].Measured = true
	row.Cells[0].SetMetric(MetricPerCallNS, 100)
	row.Cells[1].Measured = true
	row.Cells[1].SetMetric(MetricPerCallNS, 200)

	aggregateRelatives(&row, backends)

	if got := row.Cells[0].Metric(MetricRelFastest); got != 1 {
		t.Fatalf("fastest relative-to-fastest: got %g, want 1", got)
	}

	if got := row.Cells[1].Metric(MetricRelFastest); got != 2 {
		t.Fatalf("slow relative-to-fastest: got %g, want 2", got)
	}

	if got := row.Cells[0].Metric(MetricRelBaseline); got != 0.5 {
		t.Fatalf("fastest relative-to-baseline: got %g, want 0.5", got)
	}

	if got := row.Cells[1].Metric(MetricRelBaseline); got != 1 {
		t.Fatalf("baseline relative-to-baseline: got %g, want 1", got)
	}

	if row.Cells[2].Metric(MetricRelFastest) != 0 || row.Cells[2].Metric(MetricRelBaseline) != 0 {
		t.Fatal("unmeasured cell picked up relative metrics")
	}
}

func TestCalibrateRequiresCandidate(t *testing.T) {
	t.Parallel()

	h := &Harness{
		Backends: []Descriptor{stubDescriptor("stub", 1)},
		Log:      testLogger(),
		Seed:     1,
	}

	if _, err := h.Calibrate(KindReal); !errors.Is(err, ErrNoCandidate) {
		t.Fatalf("got %v, want ErrNoCandidate", err)
	}
}

func TestCalibrateWithStubCandidate(t *testing.T) {
	t.Parallel()

	cand := stubDescriptor("cand", 1)
	cand.Candidate = true

	h := &Harness{
		Backends: []Descriptor{cand},
		Log:      testLogger(),
		Seed:     1,
	}

	iterCal, err := h.Calibrate(KindComplex)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}

	if iterCal <= 0 {
		t.Fatalf("calibration constant not positive: %g", iterCal)
	}
}
