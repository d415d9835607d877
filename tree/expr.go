package tree

import (
	"golang.org/x/crypto/blake2b"
)

// Iterator is one link in an expression pipeline: a function from an
// input node sequence to an output node sequence, parameterized by the
// identity node the whole expression was launched from (spec §3, §4.3).
// Implementations live in package expr; Expression only needs to hold
// and replay them, which is why the interface is declared here rather
// than there — it breaks what would otherwise be an import cycle between
// the type registry (Value needs Expression) and the iterator engine
// (Expression needs Iterator).
type Iterator interface {
	// Apply consumes input (the previous iterator's output, or a single-
	// element slice containing identity for the first iterator) and
	// returns this iterator's output sequence.
	Apply(identity *Node, input []*Node) []*Node
}

// Expression owns its canonical source string and the non-empty ordered
// pipeline of iterators parsed from it (spec §3). Two expressions are
// equal iff their canonical source strings are equal; Hash derives from
// that same string.
type Expression struct {
	Source    string
	Iterators []Iterator
}

// Evaluate runs the pipeline starting from [identity], threading identity
// unchanged through every iterator (spec §4.3.3).
func (e *Expression) Evaluate(identity *Node) []*Node {
	seq := []*Node{identity}
	for _, it := range e.Iterators {
		seq = it.Apply(identity, seq)
	}
	return seq
}

// EvaluateDocument evaluates the pipeline against a whole parsed document.
// The parser's synthetic root (empty name, no parent — see NewRoot) can
// never be matched by a name-equals token, so a query "from root" that
// starts with a literal name would always come up empty under the plain
// Evaluate fold. The document-level fold instead starts from root's own
// children — the document's real top-level nodes — while root itself
// remains the identity passed to every iterator, so ".." resolves to it
// (spec §8 scenario 1).
func (e *Expression) EvaluateDocument(root *Node) []*Node {
	seq := root.Children
	for _, it := range e.Iterators {
		seq = it.Apply(root, seq)
	}
	return seq
}

// Equal reports whether two expressions have the same canonical source.
func (e *Expression) Equal(other *Expression) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Source == other.Source
}

// Hash returns a blake2b-256 digest of the canonical source string, the
// hash spec §3 requires to "derive from that string".
func (e *Expression) Hash() [32]byte {
	return blake2b.Sum256([]byte(e.Source))
}

func (e *Expression) String() string {
	return e.Source
}
