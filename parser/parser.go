// Package parser implements C2: token stream to rooted tree, maintaining
// an implicit ancestry stack keyed by indentation depth (spec §4.2).
package parser

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/aledsdavies/nodeql/expr"
	"github.com/aledsdavies/nodeql/internal/nqerr"
	"github.com/aledsdavies/nodeql/lexer"
	"github.com/aledsdavies/nodeql/source"
	"github.com/aledsdavies/nodeql/tree"
	"github.com/aledsdavies/nodeql/types"
)

// Parser builds a tree.Node from a lexer.Lexer's token stream.
type Parser struct {
	lex    *lexer.Lexer
	logger *slog.Logger
	types  *types.Registry
	iters  *expr.Registry

	tok     lexer.Token
	tokErr  error
	primed  bool
	pending []*tree.Node // ancestry stack; pending[0] is the root
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger overrides the default slog.Default() logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// WithTypeRegistry overrides the process-wide types.Global() registry.
func WithTypeRegistry(r *types.Registry) Option {
	return func(p *Parser) { p.types = r }
}

// WithIteratorRegistry overrides the process-wide expr.Global() registry,
// used when a node's value is the "x" expression type.
func WithIteratorRegistry(r *expr.Registry) Option {
	return func(p *Parser) { p.iters = r }
}

// New constructs a Parser reading tokens from lex.
func New(lex *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{lex: lex, logger: slog.Default(), types: types.Global(), iters: expr.Global()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ParseString is a convenience entry point that parses s as indented-tree
// source and returns its synthetic root.
func ParseString(s string, opts ...Option) (*tree.Node, error) {
	p := New(lexer.New(source.NewString(s), nil), opts...)
	return p.Parse()
}

func (p *Parser) next() (lexer.Token, error) {
	if p.primed {
		t, err := p.tok, p.tokErr
		p.primed = false
		return t, err
	}
	return p.lex.Next()
}

func (p *Parser) peek() (lexer.Token, error) {
	if !p.primed {
		p.tok, p.tokErr = p.lex.Next()
		p.primed = true
	}
	return p.tok, p.tokErr
}

// Parse consumes the entire token stream and returns the synthetic root
// node (spec §4.2). Blank lines are ignored; EOF closes all pending
// scopes.
func (p *Parser) Parse() (*tree.Node, error) {
	root := tree.NewRoot()
	p.pending = []*tree.Node{root}

	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Type == lexer.EOF {
			return root, nil
		}
		if err := p.parseLine(); err != nil {
			return nil, err
		}
	}
}

// parseLine consumes one logical line: optional INDENT, a name, an
// optional ":value", and the terminating NEWLINE or EOF.
func (p *Parser) parseLine() error {
	depth := 0
	t, err := p.peek()
	if err != nil {
		return err
	}
	if t.Type == lexer.INDENT {
		depth = t.Width / 3
		if _, err := p.next(); err != nil {
			return err
		}
	}

	t, err = p.peek()
	if err != nil {
		return err
	}

	// A blank line is an INDENT (or nothing) immediately followed by
	// NEWLINE or EOF.
	if t.Type == lexer.NEWLINE {
		_, _ = p.next()
		return nil
	}
	if t.Type == lexer.EOF {
		return nil
	}

	if depth > len(p.pending)-1 {
		return nqerr.Struct(t.Line, t.Column, "indentation jumps from depth %d to depth %d", len(p.pending)-2, depth)
	}

	name := ""
	if t.Type == lexer.LITERAL {
		if err := requireQuotedIfBare(t); err != nil {
			return err
		}
		name = t.Text
		if _, err := p.next(); err != nil {
			return err
		}
		t, err = p.peek()
		if err != nil {
			return err
		}
	}

	node := tree.New(name)

	if t.Type == lexer.COLON {
		if _, err := p.next(); err != nil {
			return err
		}
		if err := p.parseValue(node); err != nil {
			return err
		}
		t, err = p.peek()
		if err != nil {
			return err
		}
	}

	if t.Type != lexer.NEWLINE && t.Type != lexer.EOF {
		return nqerr.Struct(t.Line, t.Column, "unexpected token after node %q", name)
	}
	if t.Type == lexer.NEWLINE {
		if _, err := p.next(); err != nil {
			return err
		}
	}

	parent := p.pending[depth]
	parent.AppendChild(node)
	p.pending = append(p.pending[:depth+1], node)

	return nil
}

// parseValue implements spec §4.2 step 3: a value spec is either a bare
// lexeme (the unnamed string type) or "<type>:<lexeme>".
func (p *Parser) parseValue(node *tree.Node) error {
	t, err := p.peek()
	if err != nil {
		return err
	}
	if t.Type != lexer.LITERAL {
		return nqerr.Struct(t.Line, t.Column, "expected a value after ':'")
	}
	if err := requireQuotedIfBare(t); err != nil {
		return err
	}
	first := t.Text
	if _, err := p.next(); err != nil {
		return err
	}

	t2, err := p.peek()
	if err != nil {
		return err
	}
	if t2.Type != lexer.COLON {
		node.SetValue(tree.String(first))
		return nil
	}
	// "<type>:<lexeme>" form.
	if _, err := p.next(); err != nil {
		return err
	}
	t3, err := p.peek()
	if err != nil {
		return err
	}
	if t3.Type != lexer.LITERAL {
		return nqerr.Struct(t3.Line, t3.Column, "expected a lexeme after type %q", first)
	}
	if err := requireQuotedIfBare(t3); err != nil {
		return err
	}
	lexeme := t3.Text
	if _, err := p.next(); err != nil {
		return err
	}

	return p.setTypedValue(node, first, lexeme, t3)
}

func (p *Parser) setTypedValue(node *tree.Node, typeName, lexeme string, at lexer.Token) error {
	switch typeName {
	case "node":
		sub, err := ParseString(lexeme, WithLogger(p.logger), WithTypeRegistry(p.types), WithIteratorRegistry(p.iters))
		if err != nil {
			return err
		}
		node.SetValue(tree.NodeRef(sub))
		return nil
	case "x":
		e, err := expr.Parse(lexeme, p.iters)
		if err != nil {
			return err
		}
		node.SetValue(tree.ExprValue(e))
		return nil
	default:
		v, err := p.types.Parse(typeName, lexeme)
		if err != nil {
			return err
		}
		node.SetValue(v)
		return nil
	}
}

// requireQuotedIfBare enforces spec §4.2 step 2: a LITERAL containing
// whitespace or ':' must have come from a quoted token reader, never from
// a bare accumulated run.
func requireQuotedIfBare(t lexer.Token) error {
	if t.Quoted {
		return nil
	}
	if strings.ContainsRune(t.Text, ':') || strings.IndexFunc(t.Text, unicode.IsSpace) >= 0 {
		return nqerr.Struct(t.Line, t.Column, "bare literal %q contains whitespace or ':' — it must be quoted", t.Text)
	}
	return nil
}
