package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundgraph/agdl/internal/agdl/linker"
	"github.com/soundgraph/agdl/internal/agdl/runtime"
	"github.com/soundgraph/agdl/internal/agdlerrors"
)

// counterNode notifies itself on each cycle until it has produced a fixed
// number of values, then emits Suppressed, which starves its own input and
// ends the run — the same self-feedback shape the splitter/merger
// handshake uses, reduced to its simplest form.
type counterNode struct {
	runtime.Base
	remaining int
	computes  int
}

func newCounter(remaining int) *counterNode {
	n := &counterNode{Base: runtime.NewBase(), remaining: remaining}
	n.DeclareInput("IN", true)
	n.AddChild(n, map[string]string{"OUT": "IN"})
	return n
}

func (n *counterNode) Compute() error {
	n.computes++
	n.remaining--
	if n.remaining < 0 {
		n.SetOutput("OUT", runtime.Suppressed)
		return nil
	}
	n.SetOutput("OUT", runtime.Int64(n.remaining))
	return nil
}

func Test_Run_TerminatesWhenFrontierEmpties(t *testing.T) {
	root := newCounter(2)

	lg := linker.LinkedGraph{
		Instances: []linker.Instance{{Name: "root", Transformer: root}},
		Roots:     []linker.Instance{{Name: "root", Transformer: root}},
	}

	result, err := Run(context.Background(), lg, Options{})
	require.NoError(t, err)

	// Two cycles produce a value and re-notify itself (remaining 1, then
	// 0); the third emits Suppressed, which skips SetInput and leaves IN
	// not-ready since the prior reset already cleared it, starving the
	// frontier.
	assert.Equal(t, 3, result.Cycles)
	assert.Equal(t, 3, root.computes)
}

type alwaysReadyNode struct {
	runtime.Base
}

func newAlwaysReady() *alwaysReadyNode {
	n := &alwaysReadyNode{Base: runtime.NewBase()}
	return n
}

func (n *alwaysReadyNode) Compute() error { return nil }

func Test_Run_MaxCyclesRaisesNonTerminating(t *testing.T) {
	root := newAlwaysReady()
	root.AddChild(root, map[string]string{})

	lg := linker.LinkedGraph{
		Instances: []linker.Instance{{Name: "root", Transformer: root}},
		Roots:     []linker.Instance{{Name: "root", Transformer: root}},
	}

	_, err := Run(context.Background(), lg, Options{MaxCycles: 5})
	require.Error(t, err)

	var agErr *agdlerrors.Error
	require.ErrorAs(t, err, &agErr)
	assert.Equal(t, agdlerrors.KindNonTerminating, agErr.Kind())
}

type failingNode struct {
	runtime.Base
}

func newFailing() *failingNode { return &failingNode{Base: runtime.NewBase()} }

func (n *failingNode) Compute() error {
	return assert.AnError
}

func Test_Run_ComputeErrorWrapsAsRuntimeCompute(t *testing.T) {
	root := newFailing()
	lg := linker.LinkedGraph{
		Instances: []linker.Instance{{Name: "bad", Transformer: root}},
		Roots:     []linker.Instance{{Name: "bad", Transformer: root}},
	}
	root.SetName("bad")

	_, err := Run(context.Background(), lg, Options{})
	require.Error(t, err)

	var agErr *agdlerrors.Error
	require.ErrorAs(t, err, &agErr)
	assert.Equal(t, agdlerrors.KindRuntimeCompute, agErr.Kind())
}

func Test_Run_NoRootsCompletesImmediately(t *testing.T) {
	lg := linker.LinkedGraph{}
	result, err := Run(context.Background(), lg, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Cycles)
}

func Test_Close_CallsCloseOnEveryInstance(t *testing.T) {
	a := newAlwaysReady()
	b := newAlwaysReady()
	lg := linker.LinkedGraph{
		Instances: []linker.Instance{{Name: "a", Transformer: a}, {Name: "b", Transformer: b}},
	}
	assert.NoError(t, Close(lg))
}
