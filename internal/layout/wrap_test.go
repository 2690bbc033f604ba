package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWordsPreservesSpacing(t *testing.T) {
	words := SplitWords("hello world again")
	assert.Equal(t, []string{"hello ", "world ", "again"}, words)
}

func TestSplitWordsEmpty(t *testing.T) {
	assert.Nil(t, SplitWords(""))
}

func TestWrapWordsFitsOnOneLine(t *testing.T) {
	lines, size := WrapWords(SplitWords("hi there"), 20, 5)
	assert.Equal(t, []string{"hi there"}, lines)
	assert.Equal(t, uint16(8), size.Width)
	assert.Equal(t, uint16(1), size.Height)
}

func TestWrapWordsBreaksOnWordBoundary(t *testing.T) {
	lines, _ := WrapWords(SplitWords("one two three"), 8, 10)
	assert.Equal(t, []string{"one two ", "three"}, lines)
}

func TestWrapWordsBreaksOversizedWordMidCluster(t *testing.T) {
	lines, size := WrapWords([]string{"abcdefghij"}, 4, 10)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, lines)
	assert.Equal(t, uint16(4), size.Width)
	assert.Equal(t, uint16(3), size.Height)
}

func TestWrapWordsClampsToMaxHeight(t *testing.T) {
	lines, size := WrapWords(SplitWords("one two three four"), 4, 2)
	assert.Len(t, lines, 2)
	assert.Equal(t, uint16(2), size.Height)
}

func TestWrapWordsZeroWidthReturnsEmpty(t *testing.T) {
	lines, size := WrapWords(SplitWords("hello"), 0, 10)
	assert.Nil(t, lines)
	assert.Equal(t, uint16(0), size.Width)
}
