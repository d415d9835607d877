// Package expr implements C3: parsing a "/"-separated expression string
// into an ordered pipeline of iterators (spec §4.3.1, §4.3.2). The
// pipeline is evaluated against an identity node by tree.Expression's
// Evaluate and EvaluateDocument (spec §4.3.3).
package expr

import (
	"strconv"

	"github.com/aledsdavies/nodeql/tree"
)

// IteratorFunc adapts a plain function to tree.Iterator — the shape both
// built-in iterators and registered custom iterators (§4.3.4) share.
type IteratorFunc func(identity *tree.Node, input []*tree.Node) []*tree.Node

func (f IteratorFunc) Apply(identity *tree.Node, input []*tree.Node) []*tree.Node {
	return f(identity, input)
}

func rootIterator(identity *tree.Node, input []*tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, n := range input {
		out = append(out, n.Root())
	}
	return out
}

func childrenIterator(identity *tree.Node, input []*tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, n := range input {
		out = append(out, n.Children...)
	}
	return out
}

func descendantsIterator(identity *tree.Node, input []*tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, n := range input {
		out = append(out, n.Descendants()...)
	}
	return out
}

func parentIterator(identity *tree.Node, input []*tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, n := range input {
		if n.Parent != nil {
			out = append(out, n.Parent)
		}
	}
	return out
}

func rootOfIdentityIterator(identity *tree.Node, input []*tree.Node) []*tree.Node {
	return []*tree.Node{identity.Root()}
}

// derefIterator implements "#": a node reference yields the referenced
// node; an expression value re-evaluates with the HOLDING node (the node
// whose value it is) as identity, per spec §9 open question (b) — not
// the pipeline's original identity.
func derefIterator(identity *tree.Node, input []*tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, n := range input {
		if !n.HasValue {
			continue
		}
		switch n.Value.Kind {
		case tree.KindNode:
			if n.Value.Node != nil {
				out = append(out, n.Value.Node)
			}
		case tree.KindExpr:
			if n.Value.Expr != nil {
				out = append(out, n.Value.Expr.Evaluate(n)...)
			}
		}
	}
	return out
}

func siblingOffsetIterator(offset int) IteratorFunc {
	return func(identity *tree.Node, input []*tree.Node) []*tree.Node {
		var out []*tree.Node
		for _, n := range input {
			if sib, ok := n.SiblingOffset(offset); ok {
				out = append(out, sib)
			}
		}
		return out
	}
}

func nthChildIterator(n int) IteratorFunc {
	return func(identity *tree.Node, input []*tree.Node) []*tree.Node {
		var out []*tree.Node
		for _, node := range input {
			if c, ok := node.ChildAt(n); ok {
				out = append(out, c)
			}
		}
		return out
	}
}

func namedAncestorIterator(name string) IteratorFunc {
	return func(identity *tree.Node, input []*tree.Node) []*tree.Node {
		var out []*tree.Node
		for _, n := range input {
			if a, ok := n.Ancestor(name); ok {
				out = append(out, a)
			}
		}
		return out
	}
}

// sliceIterator operates on the whole input sequence as a flat list
// (spec §4.3.2 "[A,B] — Slice"), not per-node like the others.
func sliceIterator(start, count int) IteratorFunc {
	return func(identity *tree.Node, input []*tree.Node) []*tree.Node {
		if start < 0 || start > len(input) {
			return nil
		}
		end := start + count
		if end > len(input) {
			end = len(input)
		}
		if end < start {
			return nil
		}
		out := make([]*tree.Node, end-start)
		copy(out, input[start:end])
		return out
	}
}

func nameEqualsIterator(name string) IteratorFunc {
	return func(identity *tree.Node, input []*tree.Node) []*tree.Node {
		var out []*tree.Node
		for _, n := range input {
			if n.Name == name {
				out = append(out, n)
			}
		}
		return out
	}
}

// valueEqualsIterator implements "=value" (spec §4.3.2): the literal's
// inferred type (integer, then boolean, else string) governs the
// comparison; a node whose own value converts to that type and equals
// the literal is kept.
func valueEqualsIterator(literal string) IteratorFunc {
	wantInt, intOK := parseInt(literal)
	wantBool, boolOK := parseBool(literal)

	return func(identity *tree.Node, input []*tree.Node) []*tree.Node {
		var out []*tree.Node
		for _, n := range input {
			if !n.HasValue {
				continue
			}
			if valueMatches(n.Value, literal, wantInt, intOK, wantBool, boolOK) {
				out = append(out, n)
			}
		}
		return out
	}
}

func valueMatches(v tree.Value, literal string, wantInt int64, intOK bool, wantBool bool, boolOK bool) bool {
	switch v.Kind {
	case tree.KindInt:
		return intOK && v.Int == wantInt
	case tree.KindBool:
		return boolOK && v.Bool == wantBool
	case tree.KindFloat:
		f, err := strconv.ParseFloat(literal, 64)
		return err == nil && f == v.Float
	case tree.KindString:
		if intOK {
			n, ok := parseInt(v.Str)
			return ok && n == wantInt
		}
		if boolOK {
			b, ok := parseBool(v.Str)
			return ok && b == wantBool
		}
		return v.Str == literal
	default:
		return false
	}
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

func parseBool(s string) (bool, bool) {
	b, err := strconv.ParseBool(s)
	return b, err == nil
}
