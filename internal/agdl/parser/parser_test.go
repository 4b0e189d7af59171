package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundgraph/agdl/internal/agdl/ast"
)

func Test_Parse_MinimalTransformer(t *testing.T) {
	src := `WavReader { outputs { <SAMPLING_RATE> sr <DATA> d } configs { <FILENAME> "in.wav" } }`

	g, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, g.Transformers, 1)

	tfm := g.Transformers[0]
	assert.Equal(t, "WavReader", tfm.ClassName)
	assert.Nil(t, tfm.Content.Inputs)
	require.NotNil(t, tfm.Content.Outputs)
	assert.Equal(t, []ast.Link{
		ast.NewNameLink("SAMPLING_RATE", "sr", tfm.Content.Outputs.Links[0].Line, tfm.Content.Outputs.Links[0].Col),
		ast.NewNameLink("DATA", "d", tfm.Content.Outputs.Links[1].Line, tfm.Content.Outputs.Links[1].Col),
	}, tfm.Content.Outputs.Links)

	require.NotNil(t, tfm.Content.Configs)
	require.Len(t, tfm.Content.Configs.Links, 1)
	assert.Equal(t, "FILENAME", tfm.Content.Configs.Links[0].Tag)
	assert.Equal(t, `"in.wav"`, tfm.Content.Configs.Links[0].File)
}

func Test_Parse_TwoNodeGraph(t *testing.T) {
	src := `
	WavReader { outputs { <SAMPLING_RATE> sr <DATA> d } configs { <FILENAME> "in.wav" } }
	WavWriter { inputs { <DATA> d <SAMPLING_RATE> sr } configs { <FILENAME> "out.wav" } }
	`

	g, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, g.Transformers, 2)
	assert.Equal(t, "WavReader", g.Transformers[0].ClassName)
	assert.Equal(t, "WavWriter", g.Transformers[1].ClassName)
	assert.NotNil(t, g.Transformers[1].Content.Inputs)
	assert.Len(t, g.Transformers[1].Content.Inputs.Links, 2)
}

func Test_Parse_ConfigLinkAcceptsNumber(t *testing.T) {
	src := `AudioSplitter {
		inputs { <INPUT_DATA> input_data <READY> process_next }
		outputs { <OUTPUT_DATA> output_data <FINISHED> finished }
		configs { <SPLIT_LENGTH> 80 <SPLIT_OFFSET> 40 }
	}`

	g, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, g.Transformers, 1)

	configs := g.Transformers[0].Content.Configs
	require.NotNil(t, configs)
	assert.Equal(t, 80, configs.Links[0].Num)
	assert.Equal(t, 40, configs.Links[1].Num)
}

func Test_Parse_LexErrorPropagates(t *testing.T) {
	_, err := Parse(`Foo { configs { <X> @ } }`)
	assert.Error(t, err)
}

func Test_Parse_MissingClosingBraceIsSyntaxError(t *testing.T) {
	_, err := Parse(`WavReader { outputs { <DATA> d }`)
	assert.Error(t, err)
}

func Test_Parse_EmptyIOCBlockIsSyntaxError(t *testing.T) {
	// Each present block requires at least one link; an immediate "}" is
	// rejected because ioBlock always parses one link rule first.
	_, err := Parse(`WavReader { outputs {  } }`)
	assert.Error(t, err)
}

func Test_Parse_MalformedTagIsSyntaxError(t *testing.T) {
	_, err := Parse(`WavReader { outputs { <sr> sr } }`)
	assert.Error(t, err)
}

func Test_Parse_Determinism(t *testing.T) {
	src := `WavReader { outputs { <SAMPLING_RATE> sr <DATA> d } configs { <FILENAME> "in.wav" } }`

	g1, err := Parse(src)
	require.NoError(t, err)
	g2, err := Parse(src)
	require.NoError(t, err)

	assert.Equal(t, g1, g2)
}
