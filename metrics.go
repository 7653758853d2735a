package fftbench

// aggregateRelatives fills in the two relative columns of a measured
// row: per-call time against the fastest measured backend and against
// the baseline backend. Backends with zero or unmeasured time are
// excluded from both and stay at the not-applicable sentinel.
func aggregateRelatives(row *Row, backends []Descriptor) {
	tFastest := 0.0
	tBaseline := 0.0

	for i := range row.Cells {
		c := &row.Cells[i]
		if !c.Measured {
			continue
		}

		t := c.Metric(MetricPerCallNS)
		if t <= 0 {
			continue
		}

		if tFastest == 0 || t < tFastest {
			tFastest = t
		}

		if backends[i].Baseline {
			tBaseline = t
		}
	}

	for i := range row.Cells {
		c := &row.Cells[i]
		if !c.Measured {
			continue
		}

		t := c.Metric(MetricPerCallNS)
		if t <= 0 {
			continue
		}

		if tFastest > 0 {
			c.SetMetric(MetricRelFastest, t/tFastest)
		}

		if tBaseline > 0 {
			c.SetMetric(MetricRelBaseline, t/tBaseline)
		}
	}
}
