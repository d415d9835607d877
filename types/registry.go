// Package types implements the process-wide type registry (spec §6.2): a
// name → (parser, serializer) map defining the typed-value namespace a
// node's "<type>:<lexeme>" value spec is resolved against.
package types

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aledsdavies/nodeql/internal/nqerr"
	"github.com/aledsdavies/nodeql/internal/suggest"
	"github.com/aledsdavies/nodeql/tree"
)

// Parser turns a lexeme into a typed Value.
type Parser func(lexeme string) (tree.Value, error)

// Serializer turns a typed Value back into its lexeme.
type Serializer func(v tree.Value) (string, error)

// entry pairs a registered type's parser and serializer.
type entry struct {
	parse     Parser
	serialize Serializer
}

// Registry is a process-wide, append-only name → (parse, serialize) map,
// grounded on the teacher's decorator registry
// (runtime/decorators/registry.go): a single mutex-guarded map plus a
// package-level global instance, generalized to type registration
// instead of decorator registration.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry constructs an empty registry, pre-seeded with nothing —
// callers normally use Global, which carries the built-ins (builtin.go).
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds name to the registry. Re-registering an existing name
// overwrites it — the registry is append-only in the sense that entries
// are never implicitly removed, not that names are immutable once set;
// this matches how the built-ins and host registrations share one map.
func (r *Registry) Register(name string, parse Parser, serialize Serializer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = entry{parse: parse, serialize: serialize}
}

// Parse resolves name and parses lexeme under it. A TypeError carries a
// fuzzy-matched suggestion among the registry's known names when name is
// not found.
func (r *Registry) Parse(name, lexeme string) (tree.Value, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	names := r.namesLocked()
	r.mu.RUnlock()

	if !ok {
		err := nqerr.TypeErr(name, "unknown type %q", name)
		if best, found := suggest.Closest(name, names); found {
			err = err.WithSuggestion(best)
		}
		return tree.Value{}, err
	}
	v, err := e.parse(lexeme)
	if err != nil {
		return tree.Value{}, nqerr.TypeErr(lexeme, "%s: %v", name, err)
	}
	return v, nil
}

// Serialize resolves name and serializes v under it.
func (r *Registry) Serialize(name string, v tree.Value) (string, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown type %q", name)
	}
	return e.serialize(v)
}

// Names returns every registered type name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var global = newGlobalRegistry()

// Global returns the process-wide registry, pre-populated with the
// built-in types (string is the unnamed default and is never looked up
// by name; int/bool/float widths, duration, semver are named entries).
func Global() *Registry {
	return global
}
