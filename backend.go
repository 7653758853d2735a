package fftbench

import "sync"

// Setup is one backend instance bound to a transform length and kind.
// It is owned exclusively by the engine invocation that created it and
// must be destroyed on every exit path.
type Setup interface {
	// Len returns the working transform length. It may exceed the
	// requested length when the backend rounded the size up to its next
	// supported value.
	Len() int
	Kind() Kind

	// Transform runs one transform in the backend's native coefficient
	// ordering. dst and src may alias; the result must be identical
	// either way. scratch may be nil, in which case the setup uses its
	// own workspace. Backward transforms are unnormalized: chaining a
	// forward and a backward transform scales the input by Len().
	Transform(dst, src, scratch []float32, dir Direction)

	Destroy()
}

// OrderedTransformer is implemented by setups whose native ordering
// differs from the canonical one and that offer a canonical-order entry
// point. Its absence disables the canonical-ordering validation pass.
type OrderedTransformer interface {
	TransformOrdered(dst, src, scratch []float32, dir Direction)
}

// Reorderer converts spectra between native and canonical coefficient
// ordering. Forward maps native to canonical, Backward maps canonical
// back to native; the two must form an exact involution pair.
type Reorderer interface {
	Reorder(dst, src []float32, dir Direction)
}

// Convolver accumulates the pointwise product of two native-order
// spectra into acc, scaled by scaling. For real transforms the packed
// DC/Nyquist pair carries only real energy and is multiplied
// component-wise.
type Convolver interface {
	ConvolveAccumulate(a, b, acc []float32, scaling float32)
}

// Options carries external tuning hints consumed by backend setups.
type Options struct {
	// FullEffort enables expensive backend auto-tuning during setup.
	FullEffort bool
}

// Descriptor describes one registered backend. The engines receive an
// immutable snapshot of descriptors; they never consult the registry
// mid-run.
type Descriptor struct {
	// Name is the registry key, used in CSV headers.
	Name string
	// Display is the human-readable table heading.
	Display string

	// Candidate marks the system under test. Calibration runs on the
	// candidate's native transform.
	Candidate bool
	// Baseline marks the denominator of the relative-to-baseline metric.
	Baseline bool
	// Reference marks the trusted oracle wrapper. It is benchmarked like
	// any other backend but is never the system under test.
	Reference bool
	// Ordered makes the benchmark engine time the canonical-order entry
	// point instead of the native one.
	Ordered bool
	// BenchOnly excludes the descriptor from validation. Used by alias
	// descriptors that measure a second entry point of a backend whose
	// correctness is already covered.
	BenchOnly bool

	// New creates a setup for the exact length n, or ErrUnsupportedSize.
	New func(n int, kind Kind, opts Options) (Setup, error)
	// Supported reports the working length the backend would use to
	// measure a nominal length n, rounding up where needed, and whether
	// the backend can process n at all.
	Supported func(n int, kind Kind) (int, bool)
}

// Registry holds the set of compiled-in backends. Backend packages
// register themselves from init when their dependencies are available.
type Registry struct {
	mu       sync.RWMutex
	backends []Descriptor
}

// Register appends a backend descriptor.
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	r.backends = append(r.backends, d)
	r.mu.Unlock()
}

// Snapshot returns a copy of the registered descriptors. Later
// registrations do not affect the returned slice.
func (r *Registry) Snapshot() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, len(r.backends))
	copy(out, r.backends)

	return out
}

// DefaultRegistry is the registry populated by the backend packages.
var DefaultRegistry = &Registry{}

// Register adds a descriptor to the default registry.
func Register(d Descriptor) {
	DefaultRegistry.Register(d)
}
