package fields

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/autofields"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/rules"
	"github.com/goliatone/go-formstate/pkg/validation"
	"github.com/goliatone/go-formstate/pkg/value"
)

// Base implements the reconciliation algorithm shared by every field type.
// Concrete types embed it and register themselves as self so overridden
// methods (Value, IsClean, UpdateOriginal, Node) dispatch to them.
type Base struct {
	self       Field
	ctx        *Context
	cfg        *model.FieldConfig
	rules      *rules.RuleSet
	validation *validation.Validation
	original   any
	current    any
	locked     bool
	blurred    map[string]bool
	normalize  func(any) any
}

func (b *Base) init(self Field, ctx *Context, cfg *model.FieldConfig) {
	if ctx == nil {
		ctx = NewContext()
	}
	if cfg == nil {
		cfg = &model.FieldConfig{Type: model.FieldTypeText}
	}
	b.self = self
	b.ctx = ctx
	b.cfg = cfg
	b.blurred = make(map[string]bool)
	b.rules = rules.NewRuleSet(cfg.Validation, ctx.Rules(), ctx.Logger().With(zap.String("field", cfg.FullKey())))
	if b.normalize == nil {
		b.normalize = value.Clone
	}
}

func (b *Base) Config() *model.FieldConfig { return b.cfg }
func (b *Base) Key() string { return b.cfg.Key }
func (b *Base) FullKey() string { return b.cfg.FullKey() }
func (b *Base) Type() model.FieldType { return b.cfg.Type }
func (b *Base) OriginalValue() any { return b.original }
func (b *Base) IsLocked() bool { return b.locked }
func (b *Base) Lock() { b.locked = true }
func (b *Base) Unlock() { b.locked = false }
func (b *Base) Rules() *rules.RuleSet { return b.rules }
func (b *Base) IsDataFormatValid() bool { return true }

func (b *Base) Validation() *validation.Validation { return b.validation }

// UpdateOriginal reads the field's value from data and, while the field is
// clean, carries it over to the current value.
func (b *Base) UpdateOriginal(data any) {
	wasClean, ok := b.beginUpdate(data)
	if !ok {
		return
	}
	b.finishUpdate(wasClean)
}

// beginUpdate runs the first half of reconciliation. It reports the clean
// state observed before the original value changed and false when the field
// is locked and must not reconcile.
func (b *Base) beginUpdate(data any) (bool, bool) {
	b.validation = nil
	if b.locked {
		return false, false
	}
	raw, _ := value.Get(data, b.cfg.Key)
	next := b.normalize(raw)
	wasClean := b.self.IsClean()
	b.original = next
	if wasClean {
		b.current = b.normalize(next)
		if b.current == nil {
			b.current = value.Clone(b.cfg.Default)
		}
	}
	return wasClean, true
}

func (b *Base) finishUpdate(wasClean bool) {
	if wasClean != b.self.IsClean() {
		b.ctx.RequestRender()
	}
}

// Validate runs each zone whose validation is enabled, either because the
// context forces it or because the zone was blurred.
func (b *Base) Validate() {
	if b.rules.Len() == 0 {
		return
	}
	force := b.ctx.ForceValidate()
	current := b.self.Value()
	for _, zone := range b.rules.Zones() {
		if !force && !b.blurred[zone] {
			continue
		}
		if b.validation == nil {
			b.validation = validation.New(b.rules)
		}
		b.validation.Validate(rules.ZoneValue(current, zone), zone)
	}
}

// Render reconciles against data, validates and returns the node.
func (b *Base) Render(data any) Node {
	b.self.UpdateOriginal(data)
	b.self.Validate()
	return b.self.Node()
}

func (b *Base) Value() any { return b.current }

func (b *Base) SetValue(v any) {
	b.current = b.normalize(v)
	b.ctx.RequestRender()
}

func (b *Base) IsClean() bool {
	if b.locked {
		return false
	}
	return value.Equal(b.current, b.original)
}

func (b *Base) IsValid() bool {
	return !b.validation.HasAnyResults(validation.AnyZone, rules.LevelError)
}

func (b *Base) IsRequired() bool {
	for _, zone := range b.rules.Zones() {
		if b.rules.IsRequired(zone) {
			return true
		}
	}
	return false
}

// Blur enables validation for zone, the default zone when empty.
func (b *Base) Blur(zone string) {
	if zone == "" {
		zone = rules.DefaultZone
	}
	if b.blurred[zone] {
		return
	}
	b.blurred[zone] = true
	b.ctx.RequestRender()
}

func (b *Base) Node() Node {
	return b.node()
}

func (b *Base) node() Node {
	n := Node{
		Key:      b.cfg.Key,
		FullKey:  b.cfg.FullKey(),
		Type:     b.cfg.Type,
		Label:    b.label(),
		Help:     SanitizeHelp(b.cfg.Help),
		Value:    b.self.Value(),
		Clean:    b.self.IsClean(),
		Valid:    b.self.IsValid(),
		Locked:   b.locked,
		Required: b.self.IsRequired(),
		Messages: b.validation.All(),
	}
	if !b.self.IsDataFormatValid() {
		n.Placeholder = CannotEditMessage
	}
	return n
}

func (b *Base) label() string {
	if b.cfg.Label != "" {
		return b.cfg.Label
	}
	return autofields.Label(b.cfg.Key)
}
