package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopLIFO(t *testing.T) {
	s := New()
	s.PushState(1)
	s.PushBinding("item", Binding{Index: 0})
	assert.Equal(t, 2, s.Len())

	b, ok := s.LookupBinding("item")
	require.True(t, ok)
	assert.Equal(t, 0, b.Index)

	s.Pop()
	assert.Equal(t, 1, s.Len())
	_, ok = s.LookupBinding("item")
	assert.False(t, ok)
}

func TestLookupBindingPrefersInnermost(t *testing.T) {
	s := New()
	s.PushBinding("item", Binding{Index: 1})
	s.PushBinding("item", Binding{Index: 2})

	b, ok := s.LookupBinding("item")
	require.True(t, ok)
	assert.Equal(t, 2, b.Index)
}

func TestCurrentStateWalksUpPastBindingFrames(t *testing.T) {
	s := New()
	s.PushState(7)
	s.PushBinding("x", Binding{Index: 0})

	id, ok := s.CurrentState()
	require.True(t, ok)
	assert.Equal(t, StateId(7), id)
}

func TestPopOnEmptyScopePanics(t *testing.T) {
	s := New()
	assert.Panics(t, func() { s.Pop() })
}
