// Package canonhash computes a structural hash of a tree.Node subtree:
// canonicalize to a CBOR-stable intermediate form, then hash that with
// BLAKE2b-256. Grounded on the two-pass canonicalize-then-hash shape of
// _examples/opal-lang-opal/core/planfmt/canonical.go, which canonicalizes
// a Plan to CBOR before hashing it with the same library pairing.
package canonhash

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/aledsdavies/nodeql/tree"
)

// canonicalNode is the CBOR-stable projection of a tree.Node: Hash
// encodes it with cbor's canonical options, which sort the field keys,
// so two structurally identical subtrees always encode to the same
// bytes regardless of how they were built.
type canonicalNode struct {
	Name     string
	HasValue bool
	Kind     int
	TypeName string
	Str      string
	Int      int64
	Bool     bool
	Float    float64
	Node     *canonicalNode
	Expr     string
	Host     string
	Children []canonicalNode
}

func canonicalize(n *tree.Node) canonicalNode {
	cn := canonicalNode{Name: n.Name, HasValue: n.HasValue}
	if n.HasValue {
		v := n.Value
		cn.Kind = int(v.Kind)
		cn.TypeName = v.TypeName
		cn.Str = v.Str
		cn.Int = v.Int
		cn.Bool = v.Bool
		cn.Float = v.Float
		if v.Kind == tree.KindNode && v.Node != nil {
			sub := canonicalize(v.Node)
			cn.Node = &sub
		}
		if v.Kind == tree.KindExpr && v.Expr != nil {
			cn.Expr = v.Expr.Source
		}
		if v.Kind == tree.KindHost {
			cn.Host = fmt.Sprintf("%v", v.Host)
		}
	}
	cn.Children = make([]canonicalNode, len(n.Children))
	for i, c := range n.Children {
		cn.Children[i] = canonicalize(c)
	}
	return cn
}

// Hash returns the BLAKE2b-256 structural hash of n and its subtree.
// Two nodes hash equal iff their names, values, and children are
// recursively equal — independent of pointer identity.
func Hash(n *tree.Node) ([32]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return [32]byte{}, fmt.Errorf("canonhash: building cbor encode mode: %w", err)
	}
	payload, err := encMode.Marshal(canonicalize(n))
	if err != nil {
		return [32]byte{}, fmt.Errorf("canonhash: encoding canonical form: %w", err)
	}
	return blake2b.Sum256(payload), nil
}

// HashHex returns Hash rendered as "blake2b:<hex>", matching the display
// form used for the teacher's plan hashes.
func HashHex(n *tree.Node) (string, error) {
	h, err := Hash(n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("blake2b:%x", h), nil
}
