package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aledsdavies/nodeql/tree"
)

// Duration units, descending, matching the grammar this is reduced from
// (_examples/opal-lang-opal/core/types/duration.go): component+, each
// component a non-negative integer followed by one of these units, units
// strictly descending and non-repeating. Arithmetic/normalization-on-
// overflow are out of scope here — this type only needs to parse a
// lexeme to a nanosecond count and serialize it back out in canonical
// descending-unit form, for use as a node value (e.g. "timeout:duration:1h30m").
var durationUnits = []struct {
	suffix string
	nanos  int64
}{
	{"y", 365 * 24 * 3600 * 1_000_000_000},
	{"w", 7 * 24 * 3600 * 1_000_000_000},
	{"d", 24 * 3600 * 1_000_000_000},
	{"h", 3600 * 1_000_000_000},
	{"m", 60 * 1_000_000_000},
	{"s", 1_000_000_000},
	{"ms", 1_000_000},
	{"us", 1_000},
	{"ns", 1},
}

func registerDuration(r *Registry) {
	r.Register("duration", parseDuration, serializeDuration)
}

func parseDuration(lexeme string) (tree.Value, error) {
	if lexeme == "" {
		return tree.Value{}, fmt.Errorf("duration: empty value")
	}

	rest := lexeme
	var total int64
	lastUnit := -1
	for rest != "" {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 {
			return tree.Value{}, fmt.Errorf("duration: expected digits in %q", lexeme)
		}
		n, err := strconv.ParseInt(rest[:i], 10, 64)
		if err != nil {
			return tree.Value{}, fmt.Errorf("duration: %w", err)
		}
		rest = rest[i:]

		unitIdx, unitLen := matchUnit(rest)
		if unitIdx < 0 {
			return tree.Value{}, fmt.Errorf("duration: expected a unit after %d in %q", n, lexeme)
		}
		if unitIdx <= lastUnit {
			return tree.Value{}, fmt.Errorf("duration: units must be strictly descending and non-repeating in %q", lexeme)
		}
		lastUnit = unitIdx
		total += n * durationUnits[unitIdx].nanos
		rest = rest[unitLen:]
	}

	return tree.Int("duration", total), nil
}

func matchUnit(s string) (idx, length int) {
	// "m" is a prefix of "ms", so every unit in the table is tried and
	// the longest matching suffix wins; "1ms" is milliseconds, not one
	// minute followed by a stray "s".
	best := -1
	bestLen := 0
	for i, u := range durationUnits {
		if strings.HasPrefix(s, u.suffix) && len(u.suffix) > bestLen {
			best = i
			bestLen = len(u.suffix)
		}
	}
	return best, bestLen
}

func serializeDuration(v tree.Value) (string, error) {
	remaining := v.Int
	if remaining == 0 {
		return "0s", nil
	}
	var b strings.Builder
	for _, u := range durationUnits {
		if remaining < u.nanos {
			continue
		}
		n := remaining / u.nanos
		remaining -= n * u.nanos
		fmt.Fprintf(&b, "%d%s", n, u.suffix)
	}
	return b.String(), nil
}
