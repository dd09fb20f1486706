// Package editor drives a field tree against a data snapshot. It owns the
// upstream data, runs the bounded render loop and exposes the structural
// operations of the tree by full key.
//
// An Editor is not safe for concurrent use. Callers that receive data from
// other goroutines (file watchers, network clients) must funnel updates into
// the goroutine that owns the editor.
package editor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/fields"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/value"
)

// ErrFieldNotFound is returned when no field resolves from a full key.
var ErrFieldNotFound = errors.New("editor: field not found")

// Editor binds configuration, upstream data and field state.
type Editor struct {
	cfg       config
	logger    *zap.Logger
	ctx       *fields.Context
	configs   []*model.FieldConfig
	root      *fields.Fields
	data      any
	nodes     []fields.Node
	clean     bool
	valid     bool
	rendering bool
	pending   bool
	batching  int
	metrics   *metrics
}

// New builds an editor for data. When configs is nil the configuration is
// guessed from data. The editor renders once before returning.
func New(data any, configs []*model.FieldConfig, opts ...Option) (*Editor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	e := &Editor{
		cfg:    cfg,
		logger: cfg.logger,
		data:   value.Clone(data),
		clean:  true,
		valid:  true,
	}
	if cfg.registry != nil {
		m := newMetrics()
		if err := m.register(cfg.registry); err != nil {
			return nil, fmt.Errorf("editor: register metrics: %w", err)
		}
		e.metrics = m
	}
	e.ctx = fields.NewContext(
		fields.WithLogger(cfg.logger),
		fields.WithTypes(cfg.types),
		fields.WithRules(cfg.rules),
		fields.WithGuesser(cfg.guesser),
		fields.WithRenderHook(e.requestRender),
	)
	e.build(configs)
	e.Render()
	return e, nil
}

func (e *Editor) build(configs []*model.FieldConfig) {
	if configs == nil {
		configs = e.ctx.Guesser().Guess(e.data)
		e.logger.Debug("guessed field configuration", zap.Int("fields", len(configs)))
	}
	e.configs = configs
	e.root = fields.NewFields(e.ctx, configs, "")
}

func (e *Editor) requestRender() {
	e.pending = true
	if e.rendering || e.batching > 0 {
		return
	}
	e.Render()
}

// batch runs fn with render requests deferred, then renders once.
func (e *Editor) batch(fn func() error) error {
	e.batching++
	err := fn()
	e.batching--
	if e.batching == 0 && e.pending && !e.rendering {
		e.Render()
	}
	return err
}

// Render reconciles the tree against the current data. A pass that requests
// another render, or flips the editor's clean or valid state, is followed by
// another pass, up to the configured limit. Render listeners run once the
// tree settles; a render they request starts another pass.
func (e *Editor) Render() []fields.Node {
	if e.rendering {
		e.pending = true
		return e.nodes
	}
	e.rendering = true
	defer func() { e.rendering = false }()

	passes, settled, notified := 0, true, false
	for {
		passes++
		notified = false
		e.pending = false
		wasClean, wasValid := e.clean, e.valid
		e.nodes = e.root.Render(e.data)
		e.clean = e.root.IsClean()
		e.valid = e.root.IsValid()
		if !e.pending && e.clean == wasClean && e.valid == wasValid {
			e.notify()
			notified = true
			if !e.pending {
				break
			}
		}
		if passes >= e.cfg.maxPasses {
			settled = false
			e.logger.Warn("render did not settle",
				zap.Int("passes", passes),
				zap.Bool("clean", e.clean),
				zap.Bool("valid", e.valid),
			)
			break
		}
	}
	e.pending = false
	e.metrics.observe(passes, settled, e.clean, e.valid)
	if !notified {
		e.notify()
	}
	return e.nodes
}

func (e *Editor) notify() {
	for _, fn := range e.cfg.onRender {
		fn(e.nodes)
	}
}

// Nodes returns the nodes of the last render.
func (e *Editor) Nodes() []fields.Node { return e.nodes }

// Context exposes the field context shared by the tree.
func (e *Editor) Context() *fields.Context { return e.ctx }

// Root returns the top level field collection.
func (e *Editor) Root() *fields.Fields { return e.root }

// Configs returns the active field configuration.
func (e *Editor) Configs() []*model.FieldConfig { return e.configs }

// Data returns a copy of the upstream data.
func (e *Editor) Data() any { return value.Clone(e.data) }

// Value returns a copy of the edited value.
func (e *Editor) Value() any { return value.Clone(e.root.Value()) }

// IsClean reports whether the edited value equals upstream data.
func (e *Editor) IsClean() bool { return e.clean }

// IsValid reports whether no field holds validation results.
func (e *Editor) IsValid() bool { return e.valid }

// OnRender registers fn to receive the nodes of every render.
func (e *Editor) OnRender(fn func([]fields.Node)) {
	if fn != nil {
		e.cfg.onRender = append(e.cfg.onRender, fn)
	}
}

// SetData replaces the upstream data and renders. Clean fields follow the
// new data; edits in progress are kept.
func (e *Editor) SetData(data any) {
	e.data = value.Clone(data)
	e.Render()
}

// Reset rebuilds the field tree from configs, dropping every edit. A nil
// configs guesses the configuration from the current data.
func (e *Editor) Reset(configs []*model.FieldConfig) {
	e.ctx.FireUnlock()
	e.build(configs)
	e.Render()
}

// Field resolves a field by its full dotted key. List items are addressed by
// index, as in links.0.url.
func (e *Editor) Field(fullKey string) (fields.Field, error) {
	field := e.root.Find(fullKey)
	if field == nil {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, fullKey)
	}
	return field, nil
}

// List resolves a list field.
func (e *Editor) List(fullKey string) (*fields.List, error) {
	return lookup[*fields.List](e, fullKey)
}

// Group resolves a group field.
func (e *Editor) Group(fullKey string) (*fields.Group, error) {
	return lookup[*fields.Group](e, fullKey)
}

// Variant resolves a variant field.
func (e *Editor) Variant(fullKey string) (*fields.Variant, error) {
	return lookup[*fields.Variant](e, fullKey)
}

func lookup[T fields.Field](e *Editor, fullKey string) (T, error) {
	var zero T
	field, err := e.Field(fullKey)
	if err != nil {
		return zero, err
	}
	typed, ok := field.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is a %s field", ErrFieldNotFound, fullKey, field.Type())
	}
	return typed, nil
}

// SetValue edits the field at fullKey.
func (e *Editor) SetValue(fullKey string, v any) error {
	field, err := e.Field(fullKey)
	if err != nil {
		return err
	}
	return e.batch(func() error {
		field.SetValue(v)
		return nil
	})
}

// Blur marks zone of the field at fullKey as visited, enabling its
// validation.
func (e *Editor) Blur(fullKey, zone string) error {
	field, err := e.Field(fullKey)
	if err != nil {
		return err
	}
	return e.batch(func() error {
		field.Blur(zone)
		return nil
	})
}

// ForceValidate toggles validation of every field regardless of focus.
func (e *Editor) ForceValidate(force bool) {
	e.ctx.SetForceValidate(force)
	e.Render()
}

// Unlock fires the structural unlock signal, releasing the locks taken by
// list deletes and reorders, and renders.
func (e *Editor) Unlock() int {
	n := e.ctx.FireUnlock()
	e.Render()
	return n
}

// Commit adopts the edited value as the new upstream data, releases
// structural locks and renders. It returns the committed data.
func (e *Editor) Commit() any {
	e.data = value.Clone(e.root.Value())
	e.ctx.FireUnlock()
	e.Render()
	return value.Clone(e.data)
}

// AddItem appends an item to the list at fullKey.
func (e *Editor) AddItem(fullKey string) (*fields.Item, error) {
	list, err := e.List(fullKey)
	if err != nil {
		return nil, err
	}
	var item *fields.Item
	err = e.batch(func() error {
		var addErr error
		item, addErr = list.Add()
		return addErr
	})
	return item, err
}

// DeleteItem removes the item at index from the list at fullKey.
func (e *Editor) DeleteItem(fullKey string, index int) error {
	list, err := e.List(fullKey)
	if err != nil {
		return err
	}
	return e.batch(func() error { return list.Delete(index) })
}

// SortItems moves an item of the list at fullKey.
func (e *Editor) SortItems(fullKey string, from, to int) error {
	list, err := e.List(fullKey)
	if err != nil {
		return err
	}
	return e.batch(func() error { return list.Sort(from, to) })
}

// SetVariant switches the variant at fullKey.
func (e *Editor) SetVariant(fullKey, name string) error {
	variant, err := e.Variant(fullKey)
	if err != nil {
		return err
	}
	return e.batch(func() error { return variant.SetVariant(name) })
}

// Expand opens the group at fullKey.
func (e *Editor) Expand(fullKey string) error {
	group, err := e.Group(fullKey)
	if err != nil {
		return err
	}
	return e.batch(group.Expand)
}
