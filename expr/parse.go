package expr

import (
	"strings"

	"github.com/aledsdavies/nodeql/internal/nqerr"
	"github.com/aledsdavies/nodeql/tree"
)

// rawToken is one "/"-delimited segment of an expression source string,
// before classification (spec §4.3.1), together with whether it was
// written as a quoted string (which skips the classification cascade
// entirely and goes straight to Name-equals, per §4.3.2 "quoted-name").
type rawToken struct {
	text   string
	quoted bool
}

// splitTokens splits source on unquoted '/' (spec §4.3.1), honoring
// double-quoted segments that may themselves embed '/'. A quoted segment
// supports \" to embed a literal quote; nothing else is unescaped here,
// the classifier receives the raw content.
func splitTokens(source string) ([]rawToken, error) {
	var tokens []rawToken
	runes := []rune(source)
	i := 0
	start := 0
	var cur strings.Builder
	quoted := false
	inQuotes := false

	flush := func() {
		tokens = append(tokens, rawToken{text: cur.String(), quoted: quoted})
		cur.Reset()
		quoted = false
		inQuotes = false
	}

	for i < len(runes) {
		r := runes[i]
		switch {
		case inQuotes:
			if r == '\\' && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteByte('"')
				i += 2
				continue
			}
			if r == '"' {
				inQuotes = false
				i++
				continue
			}
			cur.WriteRune(r)
			i++
		case r == '"' && cur.Len() == 0 && !quoted:
			quoted = true
			inQuotes = true
			i++
		case r == '/':
			flush()
			i++
			start = i
		default:
			cur.WriteRune(r)
			i++
		}
	}
	if inQuotes {
		return nil, nqerr.ExprSyntax(source, "unterminated quoted token starting at position %d", start)
	}
	flush()
	return tokens, nil
}

// Parse compiles an expression source string into a tree.Expression
// (spec §4.3.1–§4.3.4), resolving custom iterator tokens against reg. A
// leading empty token (an expression starting with "/") denotes the
// explicit Root iterator.
func Parse(source string, reg *Registry) (*tree.Expression, error) {
	if reg == nil {
		reg = Global()
	}

	raws, err := splitTokens(source)
	if err != nil {
		return nil, err
	}

	iterators := make([]tree.Iterator, 0, len(raws))
	canonicalParts := make([]string, 0, len(raws))

	if len(raws) > 0 && !raws[0].quoted && raws[0].text == "" {
		iterators = append(iterators, IteratorFunc(rootIterator))
		canonicalParts = append(canonicalParts, "")
		raws = raws[1:]
	}

	for _, raw := range raws {
		c, err := classify(raw, reg)
		if err != nil {
			return nil, err
		}
		iterators = append(iterators, c.iter)
		canonicalParts = append(canonicalParts, c.canonical)
	}

	return &tree.Expression{
		Source:    strings.Join(canonicalParts, "/"),
		Iterators: iterators,
	}, nil
}
