package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/nodeql/source"
)

func tokenize(t *testing.T, input string) []Token {
	t.Helper()
	l := New(source.NewString(input), nil)
	var toks []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestIndentMustBeMultipleOfThree(t *testing.T) {
	l := New(source.NewString("  bad\r\nfoo\r\n"), nil)
	_, err := l.Next()
	require.Error(t, err)
}

func TestTrailingPartialIndentAtEOFIsAllowed(t *testing.T) {
	toks := tokenize(t, "foo\r\n  ")
	last := toks[len(toks)-1]
	require.Equal(t, EOF, last.Type)
}

func TestEmbeddedSlashInName(t *testing.T) {
	toks := tokenize(t, "how/dy\r\n")
	require.Equal(t, LITERAL, toks[0].Type)
	require.Equal(t, "how/dy", toks[0].Text)
}

func TestLineCommentStripped(t *testing.T) {
	// A comment only starts a token at a position that itself starts a
	// new token (spec §6.3) — here, right after the newline.
	toks := tokenize(t, "foo\r\n// a comment\r\nbar\r\n")
	var names []string
	for _, tok := range toks {
		if tok.Type == LITERAL {
			names = append(names, tok.Text)
		}
	}
	if diff := cmp.Diff([]string{"foo", "bar"}, names); diff != "" {
		t.Errorf("literal mismatch (-want +got):\n%s", diff)
	}
}

func TestBlockCommentDoesNotNest(t *testing.T) {
	// "/* /* */" closes at the first "*/"; the trailing "*/" then
	// becomes its own literal, matching spec §9's non-nesting decision.
	toks := tokenize(t, "/* /* */*/\r\n")
	require.Equal(t, LITERAL, toks[0].Type)
	require.Equal(t, "*/", toks[0].Text)
}

func TestQuotedStringEscapes(t *testing.T) {
	toks := tokenize(t, `"a\nb\tc\"d"` + "\r\n")
	require.Equal(t, LITERAL, toks[0].Type)
	require.Equal(t, "a\nb\tc\"d", toks[0].Text)
}

func TestMultilineStringDoublesQuote(t *testing.T) {
	toks := tokenize(t, `@"line one""quoted""` + "\r\nline two\"" + "\r\n")
	require.Equal(t, LITERAL, toks[0].Type)
	require.Equal(t, "line one\"quoted\"\r\nline two", toks[0].Text)
}

func TestAtSignNotFollowedByQuoteBecomesLiteralWithNextChar(t *testing.T) {
	// spec §4.1: if the character after '@' isn't '"', both '@' and that
	// character are ordinary buffer content — even ':' or '/', which would
	// otherwise start a structural token.
	toks := tokenize(t, "@:foo\r\n")
	require.Equal(t, LITERAL, toks[0].Type)
	require.Equal(t, "@:foo", toks[0].Text)
	require.Equal(t, NEWLINE, toks[1].Type)
}

func TestCarriageReturnWithoutLineFeedErrors(t *testing.T) {
	l := New(source.NewString("foo\rbar"), nil)
	_, err := l.Next() // the LITERAL "foo"
	require.NoError(t, err)
	_, err = l.Next() // the bad lone \r
	require.Error(t, err)
}
