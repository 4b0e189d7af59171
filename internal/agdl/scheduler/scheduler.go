// Package scheduler implements the cycle-stepped BFS graph runner (C7): it
// drives a linked runtime graph to completion by repeatedly computing the
// current frontier, notifying children, and collecting the next frontier,
// terminating when the frontier empties. This is the Go re-expression of
// Graph/audio_graph.py's AudioGraph.run loop, generalized with an optional
// maximum-cycle safety valve the original did not have and a configurable
// interval for its periodic progress diagnostics.
package scheduler

import (
	"context"

	"github.com/google/uuid"

	"github.com/soundgraph/agdl/internal/agdl/linker"
	"github.com/soundgraph/agdl/internal/agdl/runtime"
	"github.com/soundgraph/agdl/internal/agdlerrors"
	"github.com/soundgraph/agdl/internal/diag"
)

// Options configures a Run. The zero value runs with no cycle cap and no
// progress diagnostics.
type Options struct {
	// MaxCycles caps the number of scheduler cycles. Zero means unbounded;
	// a positive value raises agdlerrors.NonTerminating if the frontier has
	// not emptied by then. This is the "optional cycle-count safety valve"
	// supplementing the original, which trusted every graph to terminate.
	MaxCycles int

	// ProgressEvery, if positive, logs a progress diagnostic every N
	// cycles via internal/diag.
	ProgressEvery int
}

// Result reports how a Run concluded.
type Result struct {
	RunID  string
	Cycles int
}

// Run executes a linked graph to completion. The frontier starts at every
// root instance (one with no inputs block, per the linker), each of which
// has its readiness reset as it enters, the same way NotifyChildren resets
// a child it adds to the next frontier. On each cycle Run computes every
// node currently in the frontier, then collects the next frontier from each
// computed node's NotifyChildren. The run ends, "emergently", the first
// cycle the next frontier is empty.
func Run(ctx context.Context, lg linker.LinkedGraph, opts Options) (Result, error) {
	runID := uuid.NewString()
	log := diag.ModuleLogger(runID)

	frontier := make([]runtime.Transformer, len(lg.Roots))
	for i, r := range lg.Roots {
		frontier[i] = r.Transformer
		r.Transformer.ResetReadyInputs()
	}

	cycle := 0
	for len(frontier) > 0 {
		select {
		case <-ctx.Done():
			return Result{RunID: runID, Cycles: cycle}, ctx.Err()
		default:
		}

		cycle++
		if opts.MaxCycles > 0 && cycle > opts.MaxCycles {
			return Result{RunID: runID, Cycles: cycle - 1}, agdlerrors.NonTerminating(opts.MaxCycles)
		}
		if opts.ProgressEvery > 0 && cycle%opts.ProgressEvery == 0 {
			log.Info("still running", "cycle", cycle, "frontier", len(frontier))
		}

		var next []runtime.Transformer
		for _, node := range frontier {
			if err := node.Compute(); err != nil {
				return Result{RunID: runID, Cycles: cycle}, agdlerrors.RuntimeCompute(node.Name(), cycle, err)
			}
			next = append(next, node.NotifyChildren()...)
		}
		frontier = next
	}

	log.Info("completed graph execution", "cycles", cycle)
	return Result{RunID: runID, Cycles: cycle}, nil
}

// Close calls Close on every linked instance, collecting the first error
// encountered but still attempting every node, mirroring the original's
// best-effort teardown in AudioGraph.close.
func Close(lg linker.LinkedGraph) error {
	var first error
	for _, inst := range lg.Instances {
		if err := inst.Transformer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
