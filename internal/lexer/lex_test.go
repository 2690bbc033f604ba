package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeSimpleNode(t *testing.T) {
	strs := NewStrings()
	toks, err := New("text 'x'\n", strs).Tokenize()
	require.NoError(t, err)

	require.True(t, len(toks) >= 4)
	assert.Equal(t, KindIndent, toks[0].Kind)
	assert.Equal(t, 0, toks[0].Indent)
	assert.Equal(t, KindIdent, toks[1].Kind)
	assert.Equal(t, "text", strs.Lookup(toks[1].Str))
	assert.Equal(t, KindString, toks[2].Kind)
	assert.Equal(t, "x", strs.Lookup(toks[2].Str))
}

func TestTokenizeIndentLevels(t *testing.T) {
	strs := NewStrings()
	src := "vstack\n    text 'a'\n    text 'b'\n"
	toks, err := New(src, strs).Tokenize()
	require.NoError(t, err)

	var indents []int
	for _, tok := range toks {
		if tok.Kind == KindIndent {
			indents = append(indents, tok.Indent)
		}
	}
	assert.Equal(t, []int{0, 4, 4}, indents)
}

func TestTokenizeTabNormalisation(t *testing.T) {
	strs := NewStrings()
	toks, err := New("vstack\n\ttext 'a'\n", strs).Tokenize()
	require.NoError(t, err)

	var second Token
	count := 0
	for _, tok := range toks {
		if tok.Kind == KindIndent {
			count++
			if count == 2 {
				second = tok
			}
		}
	}
	assert.Equal(t, tabWidth, second.Indent)
}

func TestTokenizeKeywordsAndOperators(t *testing.T) {
	strs := NewStrings()
	src := "if state.flag && !state.other\n"
	toks, err := New(src, strs).Tokenize()
	require.NoError(t, err)

	var ops []Operator
	for _, tok := range toks {
		if tok.Kind == KindOperator {
			ops = append(ops, tok.Op)
		}
	}
	assert.Equal(t, []Operator{OpDot, OpAnd, OpNot, OpDot}, ops)
	assert.Equal(t, KindKeyword, toks[1].Kind)
	assert.Equal(t, "if", strs.Lookup(toks[1].Str))
}

func TestTokenizeBlankLinesAreSkipped(t *testing.T) {
	strs := NewStrings()
	src := "text 'a'\n\n\ntext 'b'\n"
	toks, err := New(src, strs).Tokenize()
	require.NoError(t, err)

	var indentCount int
	for _, tok := range toks {
		if tok.Kind == KindIndent {
			indentCount++
		}
	}
	assert.Equal(t, 2, indentCount)
}

func TestUnterminatedStringIsError(t *testing.T) {
	strs := NewStrings()
	_, err := New("text 'unterminated\n", strs).Tokenize()
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Line)
}

func TestComponentAndSlotTokens(t *testing.T) {
	strs := NewStrings()
	toks, err := New("@button\n    $default\n", strs).Tokenize()
	require.NoError(t, err)

	assert.Equal(t, KindComponentRef, toks[1].Kind)
	// toks[2] is the ident "button", toks[3] the newline and toks[4] the
	// second line's Indent
	assert.Equal(t, KindSlot, toks[5].Kind)
}
