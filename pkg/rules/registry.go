package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in rule type identifiers.
const (
	TypeLength  = "length"
	TypeMatch   = "match"
	TypePattern = "pattern"
	TypeRange   = "range"
	TypeRequire = "require"
	TypeSchema  = "schema"
)

// Factory builds a Rule from its config.
type Factory func(cfg Config) (Rule, error)

// Registry maps rule type tags to factories. Tags are matched case
// insensitively.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry constructs a registry with the built-in rules registered.
func NewRegistry() *Registry {
	reg := &Registry{factories: make(map[string]Factory)}
	reg.Register(TypeLength, newLength)
	reg.Register(TypeMatch, newMatch)
	reg.Register(TypePattern, newPattern)
	reg.Register(TypeRange, newRange)
	reg.Register(TypeRequire, newRequire)
	reg.Register(TypeSchema, newSchema)
	return reg
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, factory Factory) {
	if r == nil || factory == nil {
		return
	}
	key := normalizeType(name)
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[key] = factory
}

// Build constructs the rule described by cfg.
func (r *Registry) Build(cfg Config) (Rule, error) {
	key := normalizeType(cfg.Type)
	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, cfg.Type)
	}
	return factory(cfg)
}

// Types lists the registered tags in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalizeType(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
