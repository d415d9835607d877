package types

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/aledsdavies/nodeql/tree"
)

// registerSemver wires golang.org/x/mod/semver as the "semver" built-in
// type, grounded on the "semver" format validator in
// _examples/opal-lang-opal/core/types/validation.go (which accepts the
// version with or without its mandatory "v" prefix). The canonical form
// is stored, and Serialize emits the normalized string semver.Canonical
// produces with its leading "v" removed ("1.2" serializes as "1.2.0").
func registerSemver(r *Registry) {
	r.Register("semver",
		func(lexeme string) (tree.Value, error) {
			v := lexeme
			if !strings.HasPrefix(v, "v") {
				v = "v" + v
			}
			if !semver.IsValid(v) {
				return tree.Value{}, fmt.Errorf("semver: %q is not a valid semantic version", lexeme)
			}
			return tree.Host("semver", semver.Canonical(v)), nil
		},
		func(v tree.Value) (string, error) {
			s, ok := v.Host.(string)
			if !ok {
				return "", fmt.Errorf("semver: value is not a host semver string")
			}
			return strings.TrimPrefix(s, "v"), nil
		},
	)
}
