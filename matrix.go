package fftbench

// Cell is one backend's measurement for a given size and kind. A cell is
// populated only when the backend is compiled in and supports the size;
// otherwise it stays at the zero "not applicable" sentinel.
type Cell struct {
	Measured bool

	metrics [NumMetrics]float64
}

// Metric returns the recorded value for m, or 0 when unmeasured.
func (c *Cell) Metric(m MetricKind) float64 {
	return c.metrics[m]
}

// SetMetric records a value for m.
func (c *Cell) SetMetric(m MetricKind, v float64) {
	c.metrics[m] = v
}

// Row holds the measurements of every backend for one size and kind.
type Row struct {
	Size  int
	Kind  Kind
	Cells []Cell
}

// Matrix is the full measurement record of a run, indexed by transform
// kind, size, and backend. It persists for the whole run so that the
// reporting layer can export cross-size metrics.
type Matrix struct {
	Backends []Descriptor
	Sizes    []int

	rows map[Kind][]Row
}

// NewMatrix creates an empty matrix for the given backend snapshot and
// size catalogue.
func NewMatrix(backends []Descriptor, sizes []int) *Matrix {
	m := &Matrix{
		Backends: backends,
		Sizes:    sizes,
		rows:     make(map[Kind][]Row),
	}

	for _, kind := range []Kind{KindReal, KindComplex} {
		rows := make([]Row, len(sizes))
		for i, n := range sizes {
			rows[i] = Row{Size: n, Kind: kind, Cells: make([]Cell, len(backends))}
		}

		m.rows[kind] = rows
	}

	return m
}

// SetRow stores the measurements for one size and kind.
func (m *Matrix) SetRow(kind Kind, sizeIdx int, row Row) {
	m.rows[kind][sizeIdx] = row
}

// Row returns the measurements for one size and kind.
func (m *Matrix) Row(kind Kind, sizeIdx int) *Row {
	return &m.rows[kind][sizeIdx]
}
