package fftbench

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by backends and engines.
var (
	// ErrUnsupportedSize is returned by a backend's setup when it cannot
	// process the requested transform length natively. Consumers skip the
	// backend for that size instead of aborting the run.
	ErrUnsupportedSize = errors.New("fftbench: unsupported transform size")

	// ErrNoBackends is returned when an engine is given an empty registry
	// snapshot.
	ErrNoBackends = errors.New("fftbench: no backends registered")

	// ErrNoCandidate is returned when calibration finds no backend marked
	// as the candidate under test.
	ErrNoCandidate = errors.New("fftbench: no candidate backend registered")
)

// ValidationError reports a numeric correctness failure: the backend's
// output diverged from the reference oracle beyond tolerance, or an
// aliasing / reordering check was not bit-exact. It is fatal; the run
// stops at the first occurrence.
type ValidationError struct {
	Backend   string
	Size      int
	Kind      Kind
	Stage     string
	Magnitude float64
	Limit     float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("fftbench: %s %s mismatch for backend %q at n=%d (err=%g, limit=%g)",
		e.Kind.Label(), e.Stage, e.Backend, e.Size, e.Magnitude, e.Limit)
}

// SentinelError reports a memory-safety failure: a backend wrote past its
// declared working buffer, detected through a corrupted guard value. It is
// fatal; the run stops at the first occurrence.
type SentinelError struct {
	Backend string
	Size    int
	Kind    Kind
	Got     float32
}

func (e *SentinelError) Error() string {
	return fmt.Sprintf("fftbench: backend %q corrupted the guard value at n=%d (%s): got %g, want %g",
		e.Backend, e.Size, e.Kind.Label(), e.Got, sentinelValue)
}
