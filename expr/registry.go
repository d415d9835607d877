package expr

import (
	"sort"
	"sync"

	"github.com/aledsdavies/nodeql/internal/nqerr"
)

// DynamicFactory builds an IteratorFunc from the full raw token text
// (e.g. "%3" for a leading-'%' dynamic iterator), per spec §4.3.4.
type DynamicFactory func(token string) (IteratorFunc, error)

// Registry is the process-wide, append-only pair of iterator registries
// from spec §4.3.4: an exact-match static token map and a leading-
// character dynamic prefix map. Grounded on the same mutex-guarded-map
// pattern as types.Registry (itself grounded on the teacher's decorator
// registry) — generalized here to iterator registration.
type Registry struct {
	mu      sync.RWMutex
	static  map[string]IteratorFunc
	dynamic map[rune]DynamicFactory
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{static: make(map[string]IteratorFunc), dynamic: make(map[rune]DynamicFactory)}
}

// builtinTriggers are the leading characters/tokens the classifier's
// built-in cascade already owns; a dynamic prefix colliding with one of
// them would never be reached, so registration rejects it (spec §4.3.4:
// "the leading character must not collide with any built-in
// classification trigger; on collision, the built-in wins").
var builtinTriggers = map[rune]bool{
	'\\': true, '"': true, '[': true, '=': true,
	'+': true, '-': true, '@': true, '#': true,
	'.': true, '*': true,
}

func isBuiltinTrigger(r rune) bool {
	if builtinTriggers[r] {
		return true
	}
	return r >= '0' && r <= '9'
}

// RegisterStatic adds an exact-match custom iterator under token.
func (r *Registry) RegisterStatic(token string, fn IteratorFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.static[token] = fn
}

// RegisterDynamic adds a leading-character custom iterator factory. It
// returns an ExpressionSyntaxError if prefix collides with a built-in
// classification trigger.
func (r *Registry) RegisterDynamic(prefix rune, factory DynamicFactory) error {
	if isBuiltinTrigger(prefix) {
		return nqerr.ExprSyntax(string(prefix), "dynamic iterator prefix %q collides with a built-in token", string(prefix))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dynamic[prefix] = factory
	return nil
}

func (r *Registry) lookupStatic(token string) (IteratorFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.static[token]
	return fn, ok
}

func (r *Registry) lookupDynamic(token string) (IteratorFunc, bool, error) {
	if token == "" {
		return nil, false, nil
	}
	leading := []rune(token)[0]
	r.mu.RLock()
	factory, ok := r.dynamic[leading]
	r.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	fn, err := factory(token)
	if err != nil {
		return nil, false, err
	}
	return fn, true, nil
}

// Names returns every registered static token and dynamic prefix,
// sorted. Expression parsing does not call it: an unmatched token
// becomes a literal name, and no suggestion is produced for it.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.static)+len(r.dynamic))
	for k := range r.static {
		names = append(names, k)
	}
	for k := range r.dynamic {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

var global = NewRegistry()

// Global returns the process-wide custom-iterator registry.
func Global() *Registry {
	return global
}
