package expr

import (
	"strconv"
	"strings"

	"github.com/aledsdavies/nodeql/internal/nqerr"
	"github.com/aledsdavies/nodeql/tree"
)

// classified is one parsed iterator token: the iterator it produced, and
// the canonical text it should render as (spec §6.4 — quoting stripped
// when unnecessary).
type classified struct {
	iter      tree.Iterator
	canonical string
}

// classify turns one raw (possibly quoted) expression token into an
// iterator, following the tie-break cascade of spec §4.3.2: escape,
// quoted-name, slice, equals, integer, signed, named, deref, dot
// variants, wildcards, custom static, custom dynamic, literal name.
func classify(raw rawToken, reg *Registry) (classified, error) {
	if raw.quoted {
		return classified{nameEqualsIterator(raw.text), canonicalizeLiteralName(raw.text, reg)}, nil
	}

	content := raw.text

	if strings.HasPrefix(content, `\`) {
		literal := content[1:]
		return classified{nameEqualsIterator(literal), canonicalizeLiteralName(literal, reg)}, nil
	}

	if content == "" {
		return classified{}, nqerr.ExprSyntax(content, "empty iterator token")
	}

	if strings.HasPrefix(content, "[") {
		start, count, err := parseSlice(content)
		if err != nil {
			return classified{}, err
		}
		return classified{sliceIterator(start, count), content}, nil
	}

	if strings.HasPrefix(content, "=") {
		literal := content[1:]
		return classified{valueEqualsIterator(literal), content}, nil
	}

	if isAllDigits(content) {
		n, err := strconv.Atoi(content)
		if err != nil {
			return classified{}, nqerr.ExprSyntax(content, "integer token out of range: %v", err)
		}
		return classified{nthChildIterator(n), content}, nil
	}

	if offset, ok := matchSigned(content); ok {
		return classified{siblingOffsetIterator(offset), content}, nil
	}

	if strings.HasPrefix(content, "@") {
		return classified{namedAncestorIterator(content[1:]), content}, nil
	}

	if content == "#" {
		return classified{IteratorFunc(derefIterator), content}, nil
	}

	if content == ".." {
		return classified{IteratorFunc(rootOfIdentityIterator), content}, nil
	}
	if content == "." {
		return classified{IteratorFunc(parentIterator), content}, nil
	}

	if content == "**" {
		return classified{IteratorFunc(descendantsIterator), content}, nil
	}
	if content == "*" {
		return classified{IteratorFunc(childrenIterator), content}, nil
	}

	if fn, ok := reg.lookupStatic(content); ok {
		return classified{fn, content}, nil
	}
	if fn, ok, err := reg.lookupDynamic(content); err != nil {
		return classified{}, err
	} else if ok {
		return classified{fn, content}, nil
	}

	return classified{nameEqualsIterator(content), canonicalizeLiteralName(content, reg)}, nil
}

// parseSlice parses "[A,B]" into a zero-based start and count (spec
// §4.3.2 "Slice").
func parseSlice(content string) (start, count int, err error) {
	if !strings.HasSuffix(content, "]") {
		return 0, 0, nqerr.ExprSyntax(content, "slice token must end with ']'")
	}
	inner := content[1 : len(content)-1]
	parts := strings.Split(inner, ",")
	if len(parts) != 2 {
		return 0, 0, nqerr.ExprSyntax(content, "slice token must have the form [A,B]")
	}
	start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	count, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || start < 0 || count < 0 {
		return 0, 0, nqerr.ExprSyntax(content, "slice bounds must be non-negative integers")
	}
	return start, count, nil
}

// matchSigned recognizes "-", "+", "-N", "+N" (N >= 1); any other use of
// a leading +/- falls through to later classification (e.g. a registered
// custom iterator, or finally a literal name).
func matchSigned(content string) (offset int, ok bool) {
	if content == "-" {
		return -1, true
	}
	if content == "+" {
		return 1, true
	}
	if len(content) < 2 {
		return 0, false
	}
	sign := content[0]
	if sign != '+' && sign != '-' {
		return 0, false
	}
	rest := content[1:]
	if !isAllDigits(rest) {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	if sign == '-' {
		return -n, true
	}
	return n, true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isSpecialBare reports whether content, used unquoted and unescaped,
// would classify as anything other than a plain literal name — i.e.
// whether quoting/escaping it is necessary to preserve Name-equals
// semantics.
func isSpecialBare(content string, reg *Registry) bool {
	if content == "" {
		return true
	}
	if strings.HasPrefix(content, `\`) {
		return true
	}
	if strings.HasPrefix(content, "[") {
		return true
	}
	if strings.HasPrefix(content, "=") {
		return true
	}
	if isAllDigits(content) {
		return true
	}
	if _, ok := matchSigned(content); ok {
		return true
	}
	if strings.HasPrefix(content, "@") {
		return true
	}
	if content == "#" || content == "." || content == ".." || content == "*" || content == "**" {
		return true
	}
	if _, ok := reg.lookupStatic(content); ok {
		return true
	}
	if fn, ok, _ := reg.lookupDynamic(content); ok && fn != nil {
		return true
	}
	return false
}

// canonicalizeLiteralName renders literal as its canonical token form: a
// bare word when safe, a backslash escape when it would otherwise
// misclassify, or a quoted string when it embeds '/' (the one thing
// escaping cannot express, since splitting on '/' happens before
// backslash is recognized).
func canonicalizeLiteralName(literal string, reg *Registry) string {
	if literal == "" || strings.Contains(literal, "/") || strings.Contains(literal, `"`) {
		return quoteToken(literal)
	}
	if isSpecialBare(literal, reg) {
		return `\` + literal
	}
	return literal
}

func quoteToken(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' {
			b.WriteString(`\"`)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
