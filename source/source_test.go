package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringPeekDoesNotConsume(t *testing.T) {
	s := NewString("ab")
	r, ok := s.Peek()
	require.True(t, ok)
	require.Equal(t, 'a', r)

	r, ok = s.Read()
	require.True(t, ok)
	require.Equal(t, 'a', r)

	r, ok = s.Read()
	require.True(t, ok)
	require.Equal(t, 'b', r)

	_, ok = s.Read()
	require.False(t, ok)
}

func TestStringHandlesUnicode(t *testing.T) {
	s := NewString("héllo")
	var got []rune
	for {
		r, ok := s.Read()
		if !ok {
			break
		}
		got = append(got, r)
	}
	require.Equal(t, []rune("héllo"), got)
}

func TestReaderMatchesStringBehavior(t *testing.T) {
	s := NewReader(strings.NewReader("xy"))
	r, ok := s.Peek()
	require.True(t, ok)
	require.Equal(t, 'x', r)

	r, ok = s.Peek() // repeated peek must not advance
	require.True(t, ok)
	require.Equal(t, 'x', r)

	r, ok = s.Read()
	require.True(t, ok)
	require.Equal(t, 'x', r)

	r, ok = s.Read()
	require.True(t, ok)
	require.Equal(t, 'y', r)

	_, ok = s.Read()
	require.False(t, ok)
}
