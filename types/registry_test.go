package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/nodeql/tree"
)

func TestBuiltinIntRoundTrip(t *testing.T) {
	r := newGlobalRegistry()
	v, err := r.Parse("int32", "-17")
	require.NoError(t, err)
	require.Equal(t, tree.KindInt, v.Kind)
	require.Equal(t, int64(-17), v.Int)

	lexeme, err := r.Serialize("int32", v)
	require.NoError(t, err)
	require.Equal(t, "-17", lexeme)
}

func TestUnknownTypeSuggestsClosest(t *testing.T) {
	r := newGlobalRegistry()
	_, err := r.Parse("itn32", "5")
	require.Error(t, err)
	require.Contains(t, err.Error(), "int32")
}

func TestDurationRoundTrip(t *testing.T) {
	r := newGlobalRegistry()
	v, err := r.Parse("duration", "1h30m")
	require.NoError(t, err)
	lexeme, err := r.Serialize("duration", v)
	require.NoError(t, err)
	require.Equal(t, "1h30m", lexeme)
}

func TestDurationRejectsOutOfOrderUnits(t *testing.T) {
	r := newGlobalRegistry()
	_, err := r.Parse("duration", "30m1h")
	require.Error(t, err)
}

func TestSemverNormalizesPrefix(t *testing.T) {
	r := newGlobalRegistry()
	v, err := r.Parse("semver", "1.2.3")
	require.NoError(t, err)
	lexeme, err := r.Serialize("semver", v)
	require.NoError(t, err)
	require.Equal(t, "1.2.3", lexeme)
}

func TestRegisterOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Register("custom",
		func(lexeme string) (tree.Value, error) { return tree.String("first"), nil },
		func(v tree.Value) (string, error) { return v.Str, nil },
	)
	r.Register("custom",
		func(lexeme string) (tree.Value, error) { return tree.String("second"), nil },
		func(v tree.Value) (string, error) { return v.Str, nil },
	)
	v, err := r.Parse("custom", "x")
	require.NoError(t, err)
	require.Equal(t, "second", v.Str)
}
