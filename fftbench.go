// Package fftbench validates interchangeable FFT backends against a
// trusted reference transform and produces directly comparable
// throughput measurements across backends and transform sizes.
//
// The harness runs strictly single-threaded: one backend is measured to
// completion before the next begins, and one size is fully processed
// before the next, so that cache and scheduler interference cannot skew
// the comparison.
package fftbench

import "github.com/sirupsen/logrus"

// Harness carries the immutable per-run configuration consumed by the
// validation, calibration, and benchmark engines: the backend snapshot,
// tuning options, and the diagnostics logger.
type Harness struct {
	Backends []Descriptor
	Opts     Options
	Log      logrus.FieldLogger

	// Seed feeds the deterministic input generator of the validation
	// engine.
	Seed int64
}

// NewHarness snapshots reg and returns a harness. A nil log falls back
// to the logrus standard logger.
func NewHarness(reg *Registry, opts Options, log logrus.FieldLogger) *Harness {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Harness{
		Backends: reg.Snapshot(),
		Opts:     opts,
		Log:      log,
		Seed:     1,
	}
}
