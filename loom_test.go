package loom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomtui/loom"
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/testing/harness"
)

func TestCompileSimpleText(t *testing.T) {
	prog, err := loom.Compile("text 'hello'\n", nil)
	require.NoError(t, err)
	require.NotNil(t, prog)

	root, ok := prog.Arena.Get(prog.Arena.Root())
	require.True(t, ok)
	assert.Equal(t, "text", root.Ident)
}

func TestCompileNestedStack(t *testing.T) {
	src := "vstack\n    text 'a'\n    text 'b'\n"
	prog, err := loom.Compile(src, nil)
	require.NoError(t, err)

	root, ok := prog.Arena.Get(prog.Arena.Root())
	require.True(t, ok)
	assert.Equal(t, "vstack", root.Ident)
	assert.Len(t, root.Children, 2)
}

func TestCompileRejectsEmptyTemplate(t *testing.T) {
	_, err := loom.Compile("", nil)
	assert.Error(t, err)
}

func TestCompileRejectsInvalidIndentation(t *testing.T) {
	src := "vstack\n    text 'a'\n    text 'b'\n  text 'c'\n"
	_, err := loom.Compile(src, nil)
	assert.Error(t, err)
}

func TestCompileResolvesLetGlobal(t *testing.T) {
	src := "let greeting = 'hi'\ntext greeting\n"
	prog, err := loom.Compile(src, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", prog.Globals["greeting"])
}

func TestProgramQueryFindsWidgetsByTag(t *testing.T) {
	src := "vstack\n    text 'a'\n    text 'b'\n"
	prog, err := loom.Compile(src, nil)
	require.NoError(t, err)

	texts := prog.Query().ByTag("text")
	assert.Len(t, texts, 2)
}

func TestProgramRuntimeSizesToBackend(t *testing.T) {
	prog, err := loom.Compile("text 'hi'\n", nil)
	require.NoError(t, err)

	be := harness.NewFakeBackend(geom.Size{Width: 40, Height: 10})
	rt := prog.Runtime(be)
	require.NotNil(t, rt)
	assert.Same(t, prog.Arena, rt.Arena)
}

func TestProgramTicksAndRendersText(t *testing.T) {
	h, err := harness.New("text 'hello'\n", 20, 3)
	require.NoError(t, err)

	h.Tick()
	assert.Contains(t, h.Snapshot(), "hello")
}
