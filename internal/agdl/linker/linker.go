// Package linker implements the graph linker (C5): it walks a parsed
// ast.Graph, assigns deterministic instance names, constructs and
// initializes one runtime.Transformer per AST transformer via the
// registry, computes producer->consumer bindings by matching signal names,
// and identifies root nodes.
//
// The instance-naming and binding algorithm is grounded directly on
// Graph/graph_generator.py's GraphGenerator.initialize_transformer_names,
// compute_graph_links, and print_graph_links.
package linker

import (
	"fmt"
	"sort"

	"github.com/soundgraph/agdl/internal/agdl/ast"
	"github.com/soundgraph/agdl/internal/agdl/registry"
	"github.com/soundgraph/agdl/internal/agdl/runtime"
	"github.com/soundgraph/agdl/internal/agdlerrors"
	"github.com/soundgraph/agdl/internal/util"
)

// Instance is one linked runtime transformer together with the instance
// name the linker assigned it.
type Instance struct {
	Name        string
	Transformer runtime.Transformer
}

// LinkedGraph is the output of Link: every instance in declaration order
// plus the subset that are roots.
type LinkedGraph struct {
	Instances []Instance
	Roots     []Instance
}

// tagWithConsumer pairs an input tag with the instance that declared it,
// mirroring the original's TagWithTFM namedtuple.
type tagWithConsumer struct {
	tag      string
	instance *Instance
}

// Link builds a runtime graph from a parsed ast.Graph. reg supplies the
// factory for each AGDL class name.
func Link(g ast.Graph, reg *registry.Registry) (LinkedGraph, error) {
	instances := make([]Instance, len(g.Transformers))
	classCounts := make(map[string]int)

	// Step 1: instance naming, construction, and initialization.
	for i, tfm := range g.Transformers {
		factory, ok := reg.Lookup(tfm.ClassName)
		if !ok {
			return LinkedGraph{}, agdlerrors.UnknownTransformer(tfm.ClassName, reg.KnownNames())
		}

		registryName := registryNameOf(tfm.ClassName)
		classCounts[registryName]++
		instanceName := registryName
		if n := classCounts[registryName]; n > 1 {
			instanceName = fmt.Sprintf("%s%d", registryName, n)
		}

		node := factory()
		node.SetName(instanceName)

		configs, err := configDict(tfm.Content.Configs)
		if err != nil {
			return LinkedGraph{}, err
		}
		if err := node.Initialize(configs); err != nil {
			return LinkedGraph{}, fmt.Errorf("%s: initialize: %w", instanceName, err)
		}

		instances[i] = Instance{Name: instanceName, Transformer: node}
	}

	// Step 2: input index — signal name -> consumers declaring it.
	inputIndex := make(map[string][]tagWithConsumer)
	for i, tfm := range g.Transformers {
		if tfm.Content.Inputs == nil {
			continue
		}
		for _, link := range tfm.Content.Inputs.Links {
			inputIndex[link.Name] = append(inputIndex[link.Name], tagWithConsumer{
				tag:      link.Tag,
				instance: &instances[i],
			})
		}
	}

	// Step 3: binding emission — one binding per shared signal, exactly as
	// the original's print_graph_links emits one addChild call per
	// (output link, consuming transformer) pair rather than merging
	// multiple shared signals between the same producer/consumer into a
	// single call.
	for i, tfm := range g.Transformers {
		if tfm.Content.Outputs == nil {
			continue
		}
		producer := &instances[i]
		for _, link := range tfm.Content.Outputs.Links {
			consumers, ok := inputIndex[link.Name]
			if !ok {
				continue
			}
			for _, c := range consumers {
				producer.Transformer.AddChild(c.instance.Transformer, map[string]string{link.Tag: c.tag})
			}
		}
	}

	// Step 4: root identification — a transformer with no inputs block.
	var roots []Instance
	for i, tfm := range g.Transformers {
		if tfm.Content.Inputs == nil {
			roots = append(roots, instances[i])
		}
	}

	return LinkedGraph{Instances: instances, Roots: roots}, nil
}

// registryNameOf derives the base instance-name stem for a class: the
// class name lower-cased. This mirrors the original TRANSFORMERS map, which
// bound each class to a lower-case module-ish name; since this Go runtime
// has no per-class custom stem table, the class name itself lower-cased is
// used, which is equivalent for every standard node name in spec.md's
// examples (AudioSplitter -> audiosplitter, WavReader -> wavreader, ...).
func registryNameOf(className string) string {
	out := make([]rune, 0, len(className))
	for _, r := range className {
		out = append(out, toLowerRune(r))
	}
	return string(out)
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}

// configDict builds a tag->Payload dictionary from a configs IOC: NUMBER
// links become integers, FILE links pass their quoted text through
// verbatim, and NAME links pass their text through as a string value. The
// consuming node's Initialize decides how to interpret each one.
func configDict(configs *ast.IOC) (map[string]runtime.Payload, error) {
	out := make(map[string]runtime.Payload)
	if configs == nil {
		return out, nil
	}
	for _, link := range configs.Links {
		switch link.Kind {
		case ast.ValueNumber:
			out[link.Tag] = runtime.Int64(link.Num)
		case ast.ValueFile:
			out[link.Tag] = runtime.StringVal(link.File)
		case ast.ValueName:
			out[link.Tag] = runtime.StringVal(link.Name)
		}
	}
	return out, nil
}

// DanglingInputs returns, for diagnostics only, every (class name, tag,
// signal) input whose signal name is never produced by any transformer's
// outputs. Per spec.md §4.5, this is not a link-time error: a dangling
// input simply means the node will never become ready at runtime. Callers
// may use this to emit an early warning before running the scheduler.
func DanglingInputs(g ast.Graph) []string {
	produced := util.NewStringSet()
	for _, tfm := range g.Transformers {
		if tfm.Content.Outputs == nil {
			continue
		}
		for _, link := range tfm.Content.Outputs.Links {
			produced.Add(link.Name)
		}
	}

	var dangling []string
	for _, tfm := range g.Transformers {
		if tfm.Content.Inputs == nil {
			continue
		}
		for _, link := range tfm.Content.Inputs.Links {
			if !produced.Has(link.Name) {
				dangling = append(dangling, fmt.Sprintf("%s.<%s> (signal %q)", tfm.ClassName, link.Tag, link.Name))
			}
		}
	}
	sort.Strings(dangling)
	return dangling
}

// DanglingInputsSummary renders DanglingInputs as a single oxford-comma-
// joined sentence fragment suitable for a one-line warning, rather than the
// raw per-entry slice.
func DanglingInputsSummary(g ast.Graph) string {
	return util.MakeTextList(DanglingInputs(g))
}
