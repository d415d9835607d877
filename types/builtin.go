package types

import (
	"strconv"

	"github.com/aledsdavies/nodeql/tree"
)

// newGlobalRegistry builds the registry backing Global(), seeded with
// the built-in types named in spec §6.2: integer widths, floating-point,
// boolean, plus the supplemented duration.go/semver.go types. "node" and
// "x" are special-cased directly by the parser (spec §4.2) and are not
// registry entries — there is no free-standing parser for them that
// makes sense outside the context of a parser already mid-document.
func newGlobalRegistry() *Registry {
	r := NewRegistry()
	registerIntWidth(r, "int", 64)
	registerIntWidth(r, "int8", 8)
	registerIntWidth(r, "int16", 16)
	registerIntWidth(r, "int32", 32)
	registerIntWidth(r, "int64", 64)
	registerFloatWidth(r, "float32", 32)
	registerFloatWidth(r, "float64", 64)

	r.Register("bool",
		func(lexeme string) (tree.Value, error) {
			b, err := strconv.ParseBool(lexeme)
			if err != nil {
				return tree.Value{}, err
			}
			return tree.Bool(b), nil
		},
		func(v tree.Value) (string, error) {
			return strconv.FormatBool(v.Bool), nil
		},
	)

	registerDuration(r)
	registerSemver(r)
	return r
}

func registerIntWidth(r *Registry, name string, bits int) {
	r.Register(name,
		func(lexeme string) (tree.Value, error) {
			n, err := strconv.ParseInt(lexeme, 10, bits)
			if err != nil {
				return tree.Value{}, err
			}
			return tree.Int(name, n), nil
		},
		func(v tree.Value) (string, error) {
			return strconv.FormatInt(v.Int, 10), nil
		},
	)
}

func registerFloatWidth(r *Registry, name string, bits int) {
	r.Register(name,
		func(lexeme string) (tree.Value, error) {
			f, err := strconv.ParseFloat(lexeme, bits)
			if err != nil {
				return tree.Value{}, err
			}
			return tree.Float(name, f), nil
		},
		func(v tree.Value) (string, error) {
			return strconv.FormatFloat(v.Float, 'g', -1, bits), nil
		},
	)
}

// ParseString parses a bare/quoted lexeme as the unnamed default string
// type — there is no registry entry for it since it is never named in a
// "<type>:" prefix.
func ParseString(lexeme string) tree.Value {
	return tree.String(lexeme)
}
