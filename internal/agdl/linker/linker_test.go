package linker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundgraph/agdl/internal/agdl/ast"
	"github.com/soundgraph/agdl/internal/agdl/registry"
	"github.com/soundgraph/agdl/internal/agdl/runtime"
)

// fakeNode is a bare-bones transformer used only to exercise the linker's
// naming and binding logic in isolation from any real DSP node.
type fakeNode struct {
	runtime.Base
	initConfigs map[string]runtime.Payload
}

// newFakeFactory returns a factory for fake nodes that declare the given
// input tags, the way a real node's constructor declares its ports (Base
// drops SetInput on an undeclared tag).
func newFakeFactory(inputs ...string) registry.Factory {
	return func() runtime.Transformer {
		n := &fakeNode{Base: runtime.NewBase()}
		for _, tag := range inputs {
			n.DeclareInput(tag, false)
		}
		return n
	}
}

func (n *fakeNode) Initialize(configs map[string]runtime.Payload) error {
	n.initConfigs = configs
	return nil
}

func (n *fakeNode) Compute() error { return nil }

func newTestRegistry() *registry.Registry {
	reg := registry.New()
	reg.Register("WavReader", newFakeFactory())
	reg.Register("WavWriter", newFakeFactory("SR", "BUF"))
	reg.Register("FIRFilter", newFakeFactory("IN"))
	reg.Register("Vibrato", newFakeFactory("IN"))
	return reg
}

func link(t *testing.T, g ast.Graph) LinkedGraph {
	t.Helper()
	lg, err := Link(g, newTestRegistry())
	require.NoError(t, err)
	return lg
}

// Test_Link_InstanceNaming_IsClassStemPlusOccurrenceCounter covers Testable
// Property #3: repeated classes get a numeric suffix starting at the second
// occurrence, and the first occurrence carries no suffix.
func Test_Link_InstanceNaming_IsClassStemPlusOccurrenceCounter(t *testing.T) {
	g := ast.Graph{}.
		Append(ast.Transformer{ClassName: "Vibrato"}).
		Append(ast.Transformer{ClassName: "Vibrato"}).
		Append(ast.Transformer{ClassName: "Vibrato"})

	lg := link(t, g)

	require.Len(t, lg.Instances, 3)
	assert.Equal(t, "vibrato", lg.Instances[0].Name)
	assert.Equal(t, "vibrato2", lg.Instances[1].Name)
	assert.Equal(t, "vibrato3", lg.Instances[2].Name)
}

// Test_Link_TwoNodeGraph_BindsBothSharedSignals covers spec.md §8 scenario
// (b): a WavReader feeding both SAMPLING_RATE and DATA into a WavWriter
// must produce a binding call per shared signal, not one merged call.
func Test_Link_TwoNodeGraph_BindsBothSharedSignals(t *testing.T) {
	g := ast.Graph{}.
		Append(ast.Transformer{
			ClassName: "WavReader",
			Content: ast.TFMContent{
				Outputs: &ast.IOC{Links: []ast.Link{
					ast.NewNameLink("SR", "sampling_rate", 0, 0),
					ast.NewNameLink("BUF", "data", 0, 0),
				}},
			},
		}).
		Append(ast.Transformer{
			ClassName: "WavWriter",
			Content: ast.TFMContent{
				Inputs: &ast.IOC{Links: []ast.Link{
					ast.NewNameLink("SR", "sampling_rate", 0, 0),
					ast.NewNameLink("BUF", "data", 0, 0),
				}},
			},
		})

	lg := link(t, g)

	require.Len(t, lg.Instances, 2)
	reader := lg.Instances[0].Transformer
	writer := lg.Instances[1].Transformer

	// Both shared signals must be wired: feeding the reader's outputs and
	// notifying should make the writer ready in a single pass.
	reader.(*fakeNode).SetOutput("SR", runtime.Int64(44100))
	reader.(*fakeNode).SetOutput("BUF", runtime.Floats64([]float64{1, 2}))

	ready := reader.NotifyChildren()
	require.Len(t, ready, 1)
	assert.Same(t, writer, ready[0])
}

// Test_Link_FanOut_OneProducerNotifiesEveryConsumer.
func Test_Link_FanOut_OneProducerNotifiesEveryConsumer(t *testing.T) {
	g := ast.Graph{}.
		Append(ast.Transformer{
			ClassName: "WavReader",
			Content: ast.TFMContent{
				Outputs: &ast.IOC{Links: []ast.Link{ast.NewNameLink("BUF", "data", 0, 0)}},
			},
		}).
		Append(ast.Transformer{
			ClassName: "Vibrato",
			Content: ast.TFMContent{
				Inputs: &ast.IOC{Links: []ast.Link{ast.NewNameLink("IN", "data", 0, 0)}},
			},
		}).
		Append(ast.Transformer{
			ClassName: "FIRFilter",
			Content: ast.TFMContent{
				Inputs: &ast.IOC{Links: []ast.Link{ast.NewNameLink("IN", "data", 0, 0)}},
			},
		})

	lg := link(t, g)
	reader := lg.Instances[0].Transformer.(*fakeNode)
	reader.SetOutput("BUF", runtime.Floats64([]float64{1}))

	ready := reader.NotifyChildren()
	assert.Len(t, ready, 2)
}

// Test_Link_FanIn_LastProducerWinsOnSharedInputTag.
func Test_Link_FanIn_LastProducerWinsOnSharedInputTag(t *testing.T) {
	g := ast.Graph{}.
		Append(ast.Transformer{
			ClassName: "WavReader",
			Content: ast.TFMContent{
				Outputs: &ast.IOC{Links: []ast.Link{ast.NewNameLink("A", "shared", 0, 0)}},
			},
		}).
		Append(ast.Transformer{
			ClassName: "FIRFilter",
			Content: ast.TFMContent{
				Outputs: &ast.IOC{Links: []ast.Link{ast.NewNameLink("B", "shared", 0, 0)}},
			},
		}).
		Append(ast.Transformer{
			ClassName: "Vibrato",
			Content: ast.TFMContent{
				Inputs: &ast.IOC{Links: []ast.Link{ast.NewNameLink("IN", "shared", 0, 0)}},
			},
		})

	lg := link(t, g)
	first := lg.Instances[0].Transformer.(*fakeNode)
	second := lg.Instances[1].Transformer.(*fakeNode)
	sink := lg.Instances[2].Transformer.(*fakeNode)

	first.SetOutput("A", runtime.Int64(1))
	first.NotifyChildren()
	second.SetOutput("B", runtime.Int64(2))
	ready := second.NotifyChildren()

	require.Len(t, ready, 1)
	assert.Equal(t, runtime.Int64(2), sink.Input("IN"))
}

// Test_Link_RootIdentification_IsAbsenceOfInputsBlock covers Testable
// Property #7.
func Test_Link_RootIdentification_IsAbsenceOfInputsBlock(t *testing.T) {
	g := ast.Graph{}.
		Append(ast.Transformer{ClassName: "WavReader"}).
		Append(ast.Transformer{
			ClassName: "WavWriter",
			Content: ast.TFMContent{
				Inputs: &ast.IOC{Links: []ast.Link{ast.NewNameLink("IN", "data", 0, 0)}},
			},
		})

	lg := link(t, g)

	require.Len(t, lg.Roots, 1)
	assert.Equal(t, "wavreader", lg.Roots[0].Name)
}

func Test_Link_UnknownClassNameIsLinkError(t *testing.T) {
	g := ast.Graph{}.Append(ast.Transformer{ClassName: "NoSuchThing"})
	_, err := Link(g, newTestRegistry())
	require.Error(t, err)
}

func Test_Link_ConfigsPassNumbersAndFilesThrough(t *testing.T) {
	g := ast.Graph{}.Append(ast.Transformer{
		ClassName: "FIRFilter",
		Content: ast.TFMContent{
			Configs: &ast.IOC{Links: []ast.Link{
				ast.NewNumberLink("TAPS", 64, 0, 0),
				ast.NewFileLink("COEFFS", `"coeffs.bin"`, 0, 0),
			}},
		},
	})

	lg := link(t, g)
	node := lg.Instances[0].Transformer.(*fakeNode)

	require.NotNil(t, node.initConfigs)
	assert.Equal(t, runtime.Int64(64), node.initConfigs["TAPS"])
	assert.Equal(t, runtime.StringVal(`"coeffs.bin"`), node.initConfigs["COEFFS"])
}

func Test_DanglingInputs_ReportsUnproducedSignals(t *testing.T) {
	g := ast.Graph{}.Append(ast.Transformer{
		ClassName: "WavWriter",
		Content: ast.TFMContent{
			Inputs: &ast.IOC{Links: []ast.Link{ast.NewNameLink("IN", "nobody_makes_this", 0, 0)}},
		},
	})

	dangling := DanglingInputs(g)
	require.Len(t, dangling, 1)
	assert.Contains(t, dangling[0], "nobody_makes_this")
}
