package fields

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Factory instantiates a field for cfg.
type Factory func(ctx *Context, cfg *model.FieldConfig) Field

// Registry maps field type tags to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[model.FieldType]Factory
}

// NewRegistry returns a registry holding the built-in field types.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[model.FieldType]Factory)}
	input := func(ctx *Context, cfg *model.FieldConfig) Field { return NewInput(ctx, cfg) }
	for _, t := range []model.FieldType{
		model.FieldTypeText,
		model.FieldTypeTextarea,
		model.FieldTypeNumber,
		model.FieldTypeCheckbox,
		model.FieldTypeDate,
		model.FieldTypeHidden,
	} {
		r.Register(t, input)
	}
	r.Register(model.FieldTypeGroup, func(ctx *Context, cfg *model.FieldConfig) Field { return NewGroup(ctx, cfg) })
	r.Register(model.FieldTypeList, func(ctx *Context, cfg *model.FieldConfig) Field { return NewList(ctx, cfg) })
	r.Register(model.FieldTypeVariant, func(ctx *Context, cfg *model.FieldConfig) Field { return NewVariant(ctx, cfg) })
	return r
}

// Register binds factory to the type tag, replacing any previous binding.
func (r *Registry) Register(t model.FieldType, factory Factory) {
	t = normalizeType(t)
	if t == "" || factory == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[t] = factory
}

// Has reports whether t is registered.
func (r *Registry) Has(t model.FieldType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[normalizeType(t)]
	return ok
}

// New instantiates the field described by cfg.
func (r *Registry) New(ctx *Context, cfg *model.FieldConfig) (Field, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrUnknownType)
	}
	r.mu.RLock()
	factory, ok := r.factories[normalizeType(cfg.Type)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, cfg.Type)
	}
	return factory(ctx, cfg), nil
}

// Types lists registered type tags in lexical order.
func (r *Registry) Types() []model.FieldType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.FieldType, 0, len(r.factories))
	for t := range r.factories {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func normalizeType(t model.FieldType) model.FieldType {
	return model.FieldType(strings.ToLower(strings.TrimSpace(string(t))))
}
