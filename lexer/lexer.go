// Package lexer implements C1: a character source is turned into a lazy
// stream of structural and literal tokens (spec §4.1). The tokenizer
// normalizes CR/LF to "\r\n", expands multi-line and quoted string
// literals, strips comments, and groups runs of spaces into INDENT
// tokens whose width must be a multiple of three.
package lexer

import (
	"log/slog"
	"strings"

	"github.com/aledsdavies/nodeql/internal/nqerr"
	"github.com/aledsdavies/nodeql/source"
)

// Lexer pulls runes from a source.Source and emits Tokens one at a time.
// Mirrors the teacher's rune-accumulation-buffer lexer shape, reduced to
// the single LanguageMode this grammar needs (no mode-switching required
// here).
type Lexer struct {
	src    source.Source
	line   int
	column int
	logger *slog.Logger

	buf strings.Builder

	// queue holds tokens already produced but not yet returned, for rules
	// that must flush a pending LITERAL before emitting a structural
	// token (e.g. COLON immediately after an accumulated name).
	queue []Token
	done  bool
}

// New constructs a Lexer over src. A nil logger defaults to slog.Default().
func New(src source.Source, logger *slog.Logger) *Lexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lexer{src: src, line: 1, column: 1, logger: logger}
}

func (l *Lexer) peek() (rune, bool) {
	return l.src.Peek()
}

func (l *Lexer) advance() (rune, bool) {
	r, ok := l.src.Read()
	if !ok {
		return 0, false
	}
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r, true
}

// Next returns the next token, or an EOF token once the source and any
// trailing flush are exhausted. Subsequent calls after EOF keep
// returning EOF tokens rather than erroring, matching a typical Go
// scanner/iterator idiom.
func (l *Lexer) Next() (Token, error) {
	if len(l.queue) > 0 {
		t := l.queue[0]
		l.queue = l.queue[1:]
		return t, nil
	}
	if l.done {
		return Token{Type: EOF, Line: l.line, Column: l.column}, nil
	}
	return l.scan()
}

func (l *Lexer) push(t Token) {
	l.queue = append(l.queue, t)
}

// flushLiteral, if the buffer is non-empty, converts it into a pending
// LITERAL token (queued) and resets the buffer; it reports whether it
// flushed anything.
func (l *Lexer) flushLiteral(startLine, startCol int) bool {
	if l.buf.Len() == 0 {
		return false
	}
	l.push(Token{Type: LITERAL, Text: l.buf.String(), Line: startLine, Column: startCol})
	l.buf.Reset()
	return true
}

func (l *Lexer) scan() (Token, error) {
	startLine, startCol := l.line, l.column

	for {
		r, ok := l.peek()
		if !ok {
			l.done = true
			if l.flushLiteral(startLine, startCol) {
				return l.Next()
			}
			return Token{Type: EOF, Line: l.line, Column: l.column}, nil
		}

		switch r {
		case ':':
			if l.flushLiteral(startLine, startCol) {
				l.advance()
				l.push(Token{Type: COLON, Line: l.line, Column: l.column - 1})
				return l.Next()
			}
			l.advance()
			return Token{Type: COLON, Line: l.line, Column: l.column - 1}, nil

		case '@':
			if l.buf.Len() == 0 {
				line, col := l.line, l.column
				l.advance()
				if next, ok := l.peek(); ok && next == '"' {
					l.advance()
					s, err := l.readMultilineString()
					if err != nil {
						return Token{}, err
					}
					return Token{Type: LITERAL, Text: s, Quoted: true, Line: line, Column: col}, nil
				}
				// Not a multi-line string opener: '@' and the character
				// following it are both ordinary buffer content (spec §4.1),
				// even if that character would otherwise start a structural
				// token (':', '/', a quote, a digit, ...).
				l.buf.WriteRune('@')
				if next, ok := l.advance(); ok {
					l.buf.WriteRune(next)
				}
				continue
			}
			l.advance()
			l.buf.WriteRune('@')

		case '"':
			if l.buf.Len() == 0 {
				line, col := l.line, l.column
				l.advance()
				s, err := l.readQuotedString('"')
				if err != nil {
					return Token{}, err
				}
				return Token{Type: LITERAL, Text: s, Quoted: true, Line: line, Column: col}, nil
			}
			l.advance()
			l.buf.WriteRune('"')

		case '\'':
			if l.buf.Len() == 0 {
				line, col := l.line, l.column
				l.advance()
				s, err := l.readQuotedString('\'')
				if err != nil {
					return Token{}, err
				}
				return Token{Type: LITERAL, Text: s, Quoted: true, Line: line, Column: col}, nil
			}
			l.advance()
			l.buf.WriteRune('\'')

		case '\r':
			if l.buf.Len() == 0 {
				line, col := l.line, l.column
				l.advance()
				next, ok := l.peek()
				if !ok || next != '\n' {
					return Token{}, nqerr.Lex(line, col, "carriage return not followed by line feed")
				}
				l.advance()
				return Token{Type: NEWLINE, Text: "\r\n", Line: line, Column: col}, nil
			}
			if l.flushLiteral(startLine, startCol) {
				return l.Next()
			}

		case '\n':
			if l.buf.Len() == 0 {
				line, col := l.line, l.column
				l.advance()
				return Token{Type: NEWLINE, Text: "\r\n", Line: line, Column: col}, nil
			}
			if l.flushLiteral(startLine, startCol) {
				return l.Next()
			}

		case '/':
			if l.buf.Len() == 0 {
				line, col := l.line, l.column
				l.advance()
				next, hasNext := l.peek()
				if hasNext && next == '/' {
					l.advance()
					for {
						c, ok := l.peek()
						if !ok || c == '\n' {
							break
						}
						l.advance()
					}
					startLine, startCol = l.line, l.column
					continue
				}
				if hasNext && next == '*' {
					l.advance()
					if err := l.skipBlockComment(line, col); err != nil {
						return Token{}, err
					}
					startLine, startCol = l.line, l.column
					continue
				}
				l.buf.WriteRune('/')
				continue
			}
			l.advance()
			l.buf.WriteRune('/')

		case ' ':
			if l.buf.Len() != 0 {
				l.advance()
				l.buf.WriteRune(' ')
				continue
			}
			line, col := l.line, l.column
			width := 0
			for {
				c, ok := l.peek()
				if !ok || c != ' ' {
					break
				}
				l.advance()
				width++
			}
			_, hasMore := l.peek()
			if width%3 != 0 && hasMore {
				return Token{}, nqerr.Lex(line, col, "indentation width %d is not a multiple of 3", width)
			}
			return Token{Type: INDENT, Width: width, Line: line, Column: col}, nil

		default:
			l.advance()
			l.buf.WriteRune(r)
		}
	}
}

// readMultilineString implements §4.1.1: read until a terminating '"'
// that is not doubled; "" inside denotes a literal '"'. CR/LF pass
// through verbatim; no other escape processing.
func (l *Lexer) readMultilineString() (string, error) {
	var b strings.Builder
	for {
		r, ok := l.advance()
		if !ok {
			return "", nqerr.Lex(l.line, l.column, "unterminated multi-line string")
		}
		if r == '"' {
			next, ok := l.peek()
			if ok && next == '"' {
				l.advance()
				b.WriteByte('"')
				continue
			}
			return b.String(), nil
		}
		b.WriteRune(r)
	}
}

// readQuotedString implements §4.1.2: a single-line literal delimited by
// quote, supporting \\, \<quote>, \n, \r, \t, and \xHHHH escapes.
func (l *Lexer) readQuotedString(quote rune) (string, error) {
	var b strings.Builder
	for {
		r, ok := l.advance()
		if !ok {
			return "", nqerr.Lex(l.line, l.column, "unterminated string literal")
		}
		if r == quote {
			return b.String(), nil
		}
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		esc, ok := l.advance()
		if !ok {
			return "", nqerr.Lex(l.line, l.column, "unterminated escape sequence")
		}
		switch esc {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'x':
			cp := rune(0)
			for i := 0; i < 4; i++ {
				d, ok := l.advance()
				if !ok {
					return "", nqerr.Lex(l.line, l.column, "unterminated \\x escape")
				}
				v, ok := hexDigit(d)
				if !ok {
					return "", nqerr.Lex(l.line, l.column, "invalid hex digit %q in \\x escape", d)
				}
				cp = cp*16 + rune(v)
			}
			b.WriteRune(cp)
		default:
			return "", nqerr.Lex(l.line, l.column, "unknown escape sequence \\%c", esc)
		}
	}
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

// skipBlockComment consumes up to and including the closing "*/";
// comments do not nest (spec §9 open question (c)).
func (l *Lexer) skipBlockComment(line, col int) error {
	for {
		r, ok := l.advance()
		if !ok {
			return nqerr.Lex(line, col, "unterminated block comment")
		}
		if r == '*' {
			if next, ok := l.peek(); ok && next == '/' {
				l.advance()
				return nil
			}
		}
	}
}
