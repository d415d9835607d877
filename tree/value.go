package tree

// Kind identifies which arm of Value's tagged union is populated.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindFloat
	KindNode
	KindExpr
	KindHost // host-registered type; TypeName + Host hold the payload
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindNode:
		return "node"
	case KindExpr:
		return "x"
	case KindHost:
		return "host"
	default:
		return "unknown"
	}
}

// Value is the dynamically-typed domain a Node's value ranges over: a
// string, an integer, a boolean, a float, a reference to another node, a
// parsed expression, or an opaque host-registered type (spec §3).
//
// TypeName records the registry key the value was parsed under (empty for
// the unnamed default string type), so Serialize can round-trip "<type>:"
// prefixes without re-inferring the kind.
type Value struct {
	Kind     Kind
	TypeName string

	Str   string
	Int   int64
	Bool  bool
	Float float64
	Node  *Node
	Expr  *Expression

	// Host holds the payload for KindHost values; its concrete type is
	// whatever the registering type's parser returned.
	Host any
}

// String returns the default string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Int returns an int64 value tagged with the given registered type name
// (e.g. "int", "int32").
func Int(typeName string, v int64) Value { return Value{Kind: KindInt, TypeName: typeName, Int: v} }

// Bool returns a boolean value.
func Bool(v bool) Value { return Value{Kind: KindBool, TypeName: "bool", Bool: v} }

// Float returns a floating-point value tagged with the given registered
// type name (e.g. "float32", "float64").
func Float(typeName string, v float64) Value { return Value{Kind: KindFloat, TypeName: typeName, Float: v} }

// NodeRef returns a value holding a reference to another node.
func NodeRef(n *Node) Value { return Value{Kind: KindNode, TypeName: "node", Node: n} }

// ExprValue returns a value holding a parsed expression.
func ExprValue(e *Expression) Value { return Value{Kind: KindExpr, TypeName: "x", Expr: e} }

// Host returns an opaque host-registered value.
func Host(typeName string, v any) Value { return Value{Kind: KindHost, TypeName: typeName, Host: v} }

// IsZero reports whether v is the zero Value (no value spec was present
// on the node).
func (v Value) IsZero() bool {
	return v.Kind == KindString && v.TypeName == "" && v.Str == "" && v.Node == nil && v.Expr == nil && v.Host == nil
}
