package tree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSerializePlainChildren(t *testing.T) {
	root := NewRoot()
	a := New("alpha")
	b := New("beta")
	root.AppendChild(a)
	root.AppendChild(b)

	got, err := Serialize(root, nil)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	want := "alpha\r\nbeta\r\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Serialize mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeNestedIndentation(t *testing.T) {
	root := NewRoot()
	parent := New("service")
	child := New("port")
	child.SetValue(Int("int", 8080))
	root.AppendChild(parent)
	parent.AppendChild(child)

	got, err := Serialize(root, nil)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !strings.Contains(got, "service\r\n   port:int:8080\r\n") {
		t.Errorf("expected nested indentation in output, got %q", got)
	}
}

func TestSerializeBareSafeVsQuotedNames(t *testing.T) {
	root := NewRoot()
	safe := New("hello")
	unsafe := New("hi there")
	root.AppendChild(safe)
	root.AppendChild(unsafe)

	got, err := Serialize(root, nil)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !strings.Contains(got, "hello\r\n") {
		t.Errorf("expected bare name to stay unquoted, got %q", got)
	}
	if !strings.Contains(got, `"hi there"`) {
		t.Errorf("expected space-containing name to be quoted, got %q", got)
	}
}

func TestSerializeHostTypeRequiresSerializer(t *testing.T) {
	root := NewRoot()
	n := New("secret")
	n.SetValue(Host("custom", 42))
	root.AppendChild(n)

	if _, err := Serialize(root, nil); err == nil {
		t.Fatal("expected an error serializing a host value without a HostSerializer")
	}

	host := func(v Value) (string, error) {
		return "ok", nil
	}
	got, err := Serialize(root, host)
	if err != nil {
		t.Fatalf("Serialize with host serializer: %v", err)
	}
	if !strings.Contains(got, "secret:custom:ok\r\n") {
		t.Errorf("expected host-serialized lexeme in output, got %q", got)
	}
}
