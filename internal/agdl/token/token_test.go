package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Lexer_BasicTokens(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []Token
	}{
		{
			name:  "name with underscore",
			input: "my_signal",
			expect: []Token{
				{Kind: KindName, Text: "my_signal", Line: 1, Col: 1},
			},
		},
		{
			name:  "tag-shaped name",
			input: "DATA",
			expect: []Token{
				{Kind: KindName, Text: "DATA", Line: 1, Col: 1},
			},
		},
		{
			name:  "number",
			input: "1024",
			expect: []Token{
				{Kind: KindNumber, Text: "1024", Line: 1, Col: 1},
			},
		},
		{
			name:  "file literal includes quotes",
			input: `"in.wav"`,
			expect: []Token{
				{Kind: KindFile, Text: `"in.wav"`, Line: 1, Col: 1},
			},
		},
		{
			name:  "brackets",
			input: "<{}>",
			expect: []Token{
				{Kind: KindBracket, Text: "<", Line: 1, Col: 1},
				{Kind: KindBracket, Text: "{", Line: 1, Col: 2},
				{Kind: KindBracket, Text: "}", Line: 1, Col: 3},
				{Kind: KindBracket, Text: ">", Line: 1, Col: 4},
			},
		},
		{
			name:  "whitespace including newlines skipped",
			input: "A\n  B\t\tC",
			expect: []Token{
				{Kind: KindName, Text: "A", Line: 1, Col: 1},
				{Kind: KindName, Text: "B", Line: 2, Col: 3},
				{Kind: KindName, Text: "C", Line: 2, Col: 7},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lex, err := New(tc.input)
			require.NoError(t, err)

			var got []Token
			for !lex.InspectEOF() {
				got = append(got, lex.Current())
				require.NoError(t, lex.advance())
			}

			assert.Equal(t, tc.expect, got)
		})
	}
}

func Test_Lexer_EmptySourceIsImmediateEOF(t *testing.T) {
	lex, err := New("")
	require.NoError(t, err)
	assert.True(t, lex.InspectEOF())
}

func Test_Lexer_InvalidCharacter(t *testing.T) {
	_, err := New("@")
	require.Error(t, err)
}

func Test_Lexer_UnterminatedFileLiteral(t *testing.T) {
	_, err := New(`"unterminated`)
	require.Error(t, err)
}

func Test_Lexer_ConsumeTag_RequiresAllCaps(t *testing.T) {
	lex, err := New("notATag")
	require.NoError(t, err)

	_, err = lex.ConsumeTag()
	assert.Error(t, err)
}

func Test_Lexer_ConsumeTag_AcceptsAllCaps(t *testing.T) {
	lex, err := New("SAMPLING_RATE")
	require.NoError(t, err)

	tag, err := lex.ConsumeTag()
	require.NoError(t, err)
	assert.Equal(t, "SAMPLING_RATE", tag)
}

func Test_Lexer_Consume_Mismatch(t *testing.T) {
	lex, err := New("inputs")
	require.NoError(t, err)

	err = lex.Consume("outputs")
	assert.Error(t, err)
}

func Test_Lexer_ConsumeFile_StripsNothingKeepsQuotes(t *testing.T) {
	lex, err := New(`"testdata/horn_F.wav"`)
	require.NoError(t, err)

	file, err := lex.ConsumeFile()
	require.NoError(t, err)
	assert.Equal(t, `"testdata/horn_F.wav"`, file)
}

func Test_LexPrintRoundTrip(t *testing.T) {
	// Property 1: re-concatenating tokens with single spaces re-lexes to
	// the identical token sequence (ignoring position info).
	input := `WavReader { outputs { <SAMPLING_RATE> sr <DATA> d } configs { <FILENAME> "in.wav" } }`

	first, err := New(input)
	require.NoError(t, err)

	var texts []string
	for !first.InspectEOF() {
		texts = append(texts, first.Current().Text)
		require.NoError(t, first.advance())
	}

	rejoined := ""
	for i, tx := range texts {
		if i > 0 {
			rejoined += " "
		}
		rejoined += tx
	}

	second, err := New(rejoined)
	require.NoError(t, err)

	var texts2 []string
	for !second.InspectEOF() {
		texts2 = append(texts2, second.Current().Text)
		require.NoError(t, second.advance())
	}

	assert.Equal(t, texts, texts2)
}
