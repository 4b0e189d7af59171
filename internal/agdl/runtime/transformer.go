package runtime

// Transformer is the abstract contract every processing node obeys:
// typed ports addressed by tag, readiness tracking, and the
// parent-to-child notification protocol. It is the Go re-expression of
// Standard/transformer.py's base class, generalized from a per-instance
// attribute dictionary to an explicit interface.
type Transformer interface {
	// Name returns the instance name the linker assigned to this node.
	Name() string

	// SetName is called exactly once by the linker at graph-build time.
	SetName(name string)

	// Initialize is called exactly once by the linker, with the config
	// dictionary built from the transformer's AGDL configs block. Concrete
	// nodes that need no configuration may rely on Base's no-op default.
	Initialize(configs map[string]Payload) error

	// Compute is invoked by the scheduler each time ReadyToExecute is true.
	// It reads the current input ports and populates the output ports.
	Compute() error

	// Close releases any resource the node holds open (e.g. an output file
	// handle). It is invoked once the scheduler has no further use for the
	// node. Concrete nodes that hold no resources may rely on Base's no-op
	// default.
	Close() error

	// SetInput stores value under tag and marks that input ready. It is a
	// silent no-op if tag was never declared via Base.DeclareInput
	// (forward compatibility: an edge may connect a port a newer
	// definition has since removed).
	SetInput(tag string, value Payload)

	// GetOutput returns the current value of output tag, or Suppressed if
	// the tag has never been set.
	GetOutput(tag string) Payload

	// AddChild registers a downstream node that should be notified of this
	// node's outputs. portMap maps this node's output tag to the child's
	// input tag.
	AddChild(child Transformer, portMap map[string]string)

	// ReadyToExecute reports whether every declared input has been set
	// since the last reset.
	ReadyToExecute() bool

	// ResetReadyInputs clears input readiness flags. Base's default clears
	// all of them; some nodes override this to preserve specific flags (the
	// splitter clears only READY, keeping INPUT_DATA ready).
	ResetReadyInputs()

	// NotifyChildren propagates this node's non-suppressed outputs to
	// every registered child's matching input tags, then returns the
	// children that became ready to execute as a result, resetting each
	// one's readiness flags in turn.
	NotifyChildren() []Transformer
}
