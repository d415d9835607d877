package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/nodeql/expr"
	"github.com/aledsdavies/nodeql/parser"
	"github.com/aledsdavies/nodeql/tree"
)

func mustParseDoc(t *testing.T, src string) *tree.Node {
	t.Helper()
	root, err := parser.ParseString(src)
	require.NoError(t, err)
	return root
}

func names(nodes []*tree.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestNameEqualsThenChildrenThenNameEqualsFromDocumentRoot(t *testing.T) {
	// spec §8 scenario 1: a leading literal name in a document-level query
	// matches against the document's top-level nodes, not the parser's
	// synthetic (nameless) root — hence EvaluateDocument, not Evaluate.
	root := mustParseDoc(t, "foo\r\n   bar\r\n   xxx\r\n   bar\r\n")
	e, err := expr.Parse("foo/*/bar", expr.NewRegistry())
	require.NoError(t, err)
	got := e.EvaluateDocument(root)
	require.Equal(t, []string{"bar", "bar"}, names(got))
}

func TestRootOfIdentityThenDescendants(t *testing.T) {
	root := mustParseDoc(t, "a\r\n   b\r\n      c\r\n")
	a := root.Children[0]
	b := a.Children[0]
	e, err := expr.Parse("../0/**", expr.NewRegistry())
	require.NoError(t, err)
	got := e.Evaluate(b)
	// "../0" = root of identity, then its 0th child (a); "**" = a and all
	// its descendants in depth-first pre-order.
	require.Equal(t, []string{"a", "b", "c"}, names(got))
}

func TestEmbeddedSlashNameToken(t *testing.T) {
	root := mustParseDoc(t, "how/dy\r\n")
	e, err := expr.Parse(`*/"how/dy"`, expr.NewRegistry())
	require.NoError(t, err)
	got := e.Evaluate(root)
	require.Equal(t, []string{"how/dy"}, names(got))
}

func TestLeadingSlashIsRoot(t *testing.T) {
	root := mustParseDoc(t, "a\r\n   b\r\n")
	b := root.Children[0].Children[0]
	e, err := expr.Parse("/*", expr.NewRegistry())
	require.NoError(t, err)
	got := e.Evaluate(b)
	require.Equal(t, []string{"a"}, names(got))
}

func TestNthChildOutOfRangeIsEmpty(t *testing.T) {
	root := mustParseDoc(t, "a\r\nb\r\n")
	e, err := expr.Parse("99", expr.NewRegistry())
	require.NoError(t, err)
	got := e.Evaluate(root)
	require.Empty(t, got)
}

func TestSliceIteratorOperatesOnFlatInput(t *testing.T) {
	root := mustParseDoc(t, "a\r\nb\r\nc\r\nd\r\n")
	e, err := expr.Parse("*/[1,2]", expr.NewRegistry())
	require.NoError(t, err)
	got := e.Evaluate(root)
	require.Equal(t, []string{"b", "c"}, names(got))
}

func TestValueEqualsInfersIntThenString(t *testing.T) {
	root := mustParseDoc(t, "count:int:5\r\nname:hi\r\n")
	e, err := expr.Parse("*/=5", expr.NewRegistry())
	require.NoError(t, err)
	got := e.Evaluate(root)
	require.Equal(t, []string{"count"}, names(got))

	e2, err := expr.Parse("*/=hi", expr.NewRegistry())
	require.NoError(t, err)
	got2 := e2.Evaluate(root)
	require.Equal(t, []string{"name"}, names(got2))
}

func TestNameEscapeDisambiguatesDigits(t *testing.T) {
	root := mustParseDoc(t, `"5"`+"\r\n")
	e, err := expr.Parse(`*/\5`, expr.NewRegistry())
	require.NoError(t, err)
	got := e.Evaluate(root)
	require.Equal(t, []string{"5"}, names(got))
}

func TestNamedAncestor(t *testing.T) {
	root := mustParseDoc(t, "service\r\n   port\r\n")
	port := root.Children[0].Children[0]
	e, err := expr.Parse("@service", expr.NewRegistry())
	require.NoError(t, err)
	got := e.Evaluate(port)
	require.Equal(t, []string{"service"}, names(got))
}

func TestCustomStaticIterator(t *testing.T) {
	reg := expr.NewRegistry()
	reg.RegisterStatic("evens", expr.IteratorFunc(func(identity *tree.Node, input []*tree.Node) []*tree.Node {
		var out []*tree.Node
		for i, n := range input {
			if i%2 == 0 {
				out = append(out, n)
			}
		}
		return out
	}))
	root := mustParseDoc(t, "a\r\nb\r\nc\r\nd\r\n")
	e, err := expr.Parse("*/evens", reg)
	require.NoError(t, err)
	got := e.Evaluate(root)
	require.Equal(t, []string{"a", "c"}, names(got))
}

func TestCustomDynamicIteratorCollisionRejected(t *testing.T) {
	reg := expr.NewRegistry()
	err := reg.RegisterDynamic('*', func(token string) (expr.IteratorFunc, error) { return nil, nil })
	require.Error(t, err)
}

func TestCustomDynamicIterator(t *testing.T) {
	reg := expr.NewRegistry()
	err := reg.RegisterDynamic('%', func(token string) (expr.IteratorFunc, error) {
		return func(identity *tree.Node, input []*tree.Node) []*tree.Node {
			return input
		}, nil
	})
	require.NoError(t, err)

	root := mustParseDoc(t, "a\r\n")
	e, err := expr.Parse("*/%3", reg)
	require.NoError(t, err)
	got := e.Evaluate(root)
	require.Equal(t, []string{"a"}, names(got))
}

func TestCanonicalFormStripsUnnecessaryQuoting(t *testing.T) {
	e, err := expr.Parse(`*/"bar"`, expr.NewRegistry())
	require.NoError(t, err)
	require.Equal(t, "*/bar", e.Source)
}

func TestCanonicalFormKeepsQuotingForEmbeddedSlash(t *testing.T) {
	e, err := expr.Parse(`*/"how/dy"`, expr.NewRegistry())
	require.NoError(t, err)
	require.Equal(t, `*/"how/dy"`, e.Source)
}
