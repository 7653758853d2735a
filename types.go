package fftbench

// Kind selects between real and interleaved-complex transforms.
type Kind int

const (
	// KindReal transforms n real samples into a packed half spectrum.
	KindReal Kind = iota
	// KindComplex transforms n interleaved-complex samples.
	KindComplex
)

// String returns the lowercase kind name used in file names and logs.
func (k Kind) String() string {
	if k == KindComplex {
		return "cplx"
	}

	return "real"
}

// Label returns the uppercase kind tag used in failure reports.
func (k Kind) Label() string {
	if k == KindComplex {
		return "CPLX"
	}

	return "REAL"
}

// FloatsPer returns the number of float32 values per sample: 1 for real
// data, 2 for interleaved-complex data.
func (k Kind) FloatsPer() int {
	if k == KindComplex {
		return 2
	}

	return 1
}

// Direction selects forward or backward transforms and reorders.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}

	return "forward"
}

// MetricKind indexes one column family of the measurement matrix.
type MetricKind int

const (
	// MetricPrepMS is the backend setup time in milliseconds.
	MetricPrepMS MetricKind = iota
	// MetricPerCallNS is the time for a single transform in nanoseconds.
	MetricPerCallNS
	// MetricRelFastest is the per-call time relative to the fastest backend.
	MetricRelFastest
	// MetricRelBaseline is the per-call time relative to the baseline backend.
	MetricRelBaseline
	// MetricIterations is the number of round trips completed in the window.
	MetricIterations
	// MetricMFlops is the derived throughput in MFlops.
	MetricMFlops
	// MetricDurationSec is the total duration of the timed loop in seconds.
	MetricDurationSec

	numMetrics
)

// NumMetrics is the number of metric kinds recorded per measurement cell.
const NumMetrics = int(numMetrics)

// AllMetrics lists every metric kind in matrix order.
func AllMetrics() []MetricKind {
	out := make([]MetricKind, NumMetrics)
	for i := range out {
		out[i] = MetricKind(i)
	}

	return out
}

func (m MetricKind) String() string {
	switch m {
	case MetricPrepMS:
		return "preparation in ms"
	case MetricPerCallNS:
		return "time per fft in ns"
	case MetricRelFastest:
		return "relative to fastest"
	case MetricRelBaseline:
		return "relative to baseline"
	case MetricIterations:
		return "measured_num_iters"
	case MetricMFlops:
		return "mflops"
	case MetricDurationSec:
		return "test duration in sec"
	default:
		return "unknown"
	}
}

// FilePart returns the metric's fragment of exported CSV file names.
func (m MetricKind) FilePart() string {
	switch m {
	case MetricPrepMS:
		return "1-preparation-in-ms"
	case MetricPerCallNS:
		return "2-timePerFft-in-ns"
	case MetricRelFastest:
		return "3-rel-fastest"
	case MetricRelBaseline:
		return "4-rel-baseline"
	case MetricIterations:
		return "5-num-iter"
	case MetricMFlops:
		return "6-mflops"
	case MetricDurationSec:
		return "7-duration-in-sec"
	default:
		return "unknown"
	}
}

// Saved reports whether the metric belongs to the default CSV export set.
func (m MetricKind) Saved() bool {
	switch m {
	case MetricPrepMS, MetricRelBaseline, MetricIterations, MetricMFlops, MetricDurationSec:
		return true
	default:
		return false
	}
}
