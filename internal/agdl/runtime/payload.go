// Package runtime implements the transformer base contract (C6): the
// Payload tagged-variant type that flows across ports, the Transformer
// interface every node obeys, and a Base struct concrete nodes embed to get
// the port bookkeeping (ready_inputs tracking, child notification) for
// free.
//
// This is the Go re-architecture of the original's "dynamic attribute
// assignment on a base class with per-instance state dictionaries"
// (Standard/transformer.py): ports are explicit maps from a symbolic tag to
// a Payload, and "null" is an explicit Suppressed variant rather than an
// absent map entry, per the redesign notes.
package runtime

// Kind classifies the concrete type carried by a Payload.
type Kind int

const (
	// KindSuppressed is the null sentinel: "do not propagate this output on
	// this cycle". A child waiting on a Suppressed output is not notified
	// and remains un-ready.
	KindSuppressed Kind = iota

	// KindInt carries a single integer (counts, sample rates, lengths).
	KindInt

	// KindBool carries a single boolean (handshake signals like READY,
	// FINISHED, FINAL_INPUT, INPUT_CONSUMED).
	KindBool

	// KindFloats carries a real-valued sample/coefficient buffer.
	KindFloats

	// KindComplex carries a complex-valued buffer (FFT output).
	KindComplex

	// KindString carries a string (filenames, enum-like config values such
	// as FILTER_TYPE).
	KindString

	// KindOpaque carries any other Go value a node chooses to pass to
	// itself or to a node it trusts structurally; the scheduler never
	// inspects it.
	KindOpaque
)

// Payload is the tagged variant that flows across every port. A node reads
// the Kind it expects and raises agdlerrors.RuntimeCompute on mismatch.
type Payload struct {
	Kind    Kind
	Int     int
	Bool    bool
	Floats  []float64
	Complex []complex128
	Str     string
	Opaque  interface{}
}

// Suppressed is the shared null-sentinel value. Assign it to an output tag
// within Compute to suppress propagation to children on this cycle.
var Suppressed = Payload{Kind: KindSuppressed}

// IsSuppressed reports whether p is the null sentinel.
func (p Payload) IsSuppressed() bool {
	return p.Kind == KindSuppressed
}

// Int64 constructs an integer Payload.
func Int64(v int) Payload { return Payload{Kind: KindInt, Int: v} }

// BoolVal constructs a boolean Payload.
func BoolVal(v bool) Payload { return Payload{Kind: KindBool, Bool: v} }

// Floats64 constructs a real-valued buffer Payload.
func Floats64(v []float64) Payload { return Payload{Kind: KindFloats, Floats: v} }

// ComplexBuf constructs a complex-valued buffer Payload.
func ComplexBuf(v []complex128) Payload { return Payload{Kind: KindComplex, Complex: v} }

// StringVal constructs a string Payload.
func StringVal(v string) Payload { return Payload{Kind: KindString, Str: v} }

// OpaqueVal constructs a Payload wrapping an arbitrary Go value.
func OpaqueVal(v interface{}) Payload { return Payload{Kind: KindOpaque, Opaque: v} }
