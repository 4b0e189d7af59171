// Package registry implements the process-wide transformer class registry
// (C4): a mapping from AGDL class name (e.g. "AudioSplitter") to a factory
// that constructs a fresh runtime.Transformer. It is grounded on the
// original's TRANSFORMERS map in Graph/graph_generator.py, which played the
// same role of binding an AGDL class name to a constructible
// implementation, and on the teacher's function-name registration pattern
// in internal/tunascript-old/tunascript.go (inter.fn["ADD"] = Function{...}).
package registry

import (
	"github.com/soundgraph/agdl/internal/agdl/runtime"
	"github.com/soundgraph/agdl/internal/util"
)

// Factory constructs a freshly allocated, not-yet-initialized runtime
// transformer for one AGDL class.
type Factory func() runtime.Transformer

// Registry is a read-only-after-setup mapping from AGDL class name to a
// Factory. The zero value is usable; New returns an empty one, and
// nodes.Register populates a registry with the built-in node set.
type Registry struct {
	factories map[string]Factory
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds className to the registry. Registering the same class name
// twice overwrites the previous factory; this is intended for tests that
// need to substitute a fake node and is not used by the standard registry
// set up at startup.
func (r *Registry) Register(className string, factory Factory) {
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[className] = factory
}

// Lookup returns the factory registered for className and whether it was
// found.
func (r *Registry) Lookup(className string) (Factory, bool) {
	f, ok := r.factories[className]
	return f, ok
}

// KnownNames returns every registered class name, alphabetized, for use in
// diagnostics (e.g. "did you mean one of: ...").
func (r *Registry) KnownNames() string {
	names := util.NewStringSet()
	for name := range r.factories {
		names.Add(name)
	}
	return names.StringOrdered()
}
