package canonhash_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/nodeql/internal/canonhash"
	"github.com/aledsdavies/nodeql/parser"
)

func TestHashIsStableAcrossIdenticalParses(t *testing.T) {
	src := "service\r\n   port:int:8080\r\n"
	a, err := parser.ParseString(src)
	require.NoError(t, err)
	b, err := parser.ParseString(src)
	require.NoError(t, err)

	ha, err := canonhash.Hash(a)
	require.NoError(t, err)
	hb, err := canonhash.Hash(b)
	require.NoError(t, err)
	require.Equal(t, ha, hb)
}

func TestHashDiffersOnValueChange(t *testing.T) {
	a, err := parser.ParseString("port:int:8080\r\n")
	require.NoError(t, err)
	b, err := parser.ParseString("port:int:9090\r\n")
	require.NoError(t, err)

	ha, err := canonhash.Hash(a)
	require.NoError(t, err)
	hb, err := canonhash.Hash(b)
	require.NoError(t, err)
	require.NotEqual(t, ha, hb)
}

func TestHashHexUsesBlake2bPrefix(t *testing.T) {
	root, err := parser.ParseString("a\r\n")
	require.NoError(t, err)
	hex, err := canonhash.HashHex(root)
	require.NoError(t, err)
	require.Contains(t, hex, "blake2b:")
}
