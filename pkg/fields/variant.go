package fields

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/value"
)

// Variant edits an object whose shape is chosen by the discriminator stored
// under model.VariantKey. The active variant is the explicit selection, else
// the upstream discriminator, else the configured default.
type Variant struct {
	Base
	selected string
	active   string
	nested   *Fields
}

// NewVariant constructs a variant field for cfg.
func NewVariant(ctx *Context, cfg *model.FieldConfig) *Variant {
	v := &Variant{}
	v.init(v, ctx, cfg)
	return v
}

// Variant returns the active variant name.
func (v *Variant) Variant() string { return v.active }

// Nested returns the fields of the active variant.
func (v *Variant) Nested() *Fields { return v.nested }

// Variants lists the configured variant names in lexical order.
func (v *Variant) Variants() []string {
	names := make([]string, 0, len(v.cfg.Variants))
	for name := range v.cfg.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanSwitch reports whether the active variant can be replaced without
// discarding edits.
func (v *Variant) CanSwitch() bool {
	return v.nested == nil || v.nested.IsClean()
}

// SetVariant selects name as the active variant.
func (v *Variant) SetVariant(name string) error {
	if _, ok := v.cfg.Variants[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	if name == v.active {
		return nil
	}
	if !v.CanSwitch() {
		return ErrVariantDirty
	}
	v.selected = name
	v.sync()
	v.ctx.RequestRender()
	return nil
}

func (v *Variant) originalDiscriminator() (string, bool) {
	m, ok := value.AsMap(v.original)
	if !ok {
		return "", false
	}
	name, ok := m[model.VariantKey].(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

func (v *Variant) resolve() string {
	if v.selected != "" {
		return v.selected
	}
	if name, ok := v.originalDiscriminator(); ok {
		return name
	}
	return v.cfg.DefaultVariant
}

// sync makes the nested collection match the resolved variant and
// reconciles it.
func (v *Variant) sync() {
	name := v.resolve()
	if name == v.active && v.nested == nil {
		return
	}
	if name != v.active {
		v.active = name
		v.nested = nil
		if name == "" {
			return
		}
		variant, ok := v.cfg.Variants[name]
		if !ok || variant == nil {
			v.ctx.Logger().Error("unknown variant",
				zap.String("key", v.FullKey()),
				zap.String("variant", name),
			)
			return
		}
		v.nested = NewFields(v.ctx, variant.Fields, v.FullKey())
		if v.locked {
			v.nested.Lock()
		}
	}
	v.nested.UpdateOriginal(v.original, true)
}

func (v *Variant) UpdateOriginal(data any) {
	wasClean, ok := v.beginUpdate(data)
	if !ok {
		return
	}
	if v.IsDataFormatValid() {
		v.sync()
	}
	v.finishUpdate(wasClean)
}

// IsDataFormatValid requires the variant's data to be an object or absent.
func (v *Variant) IsDataFormatValid() bool {
	if v.original == nil {
		return true
	}
	_, ok := value.AsMap(v.original)
	return ok
}

// IsClean treats a variant differing from the upstream discriminator as an
// edit, as is any explicit selection when upstream has none.
func (v *Variant) IsClean() bool {
	if v.locked {
		return false
	}
	if !v.IsDataFormatValid() {
		return true
	}
	if name, ok := v.originalDiscriminator(); ok {
		if name != v.active {
			return false
		}
	} else if v.selected != "" {
		return false
	}
	return v.nested == nil || v.nested.IsClean()
}

func (v *Variant) IsValid() bool {
	if !v.Base.IsValid() {
		return false
	}
	return v.nested == nil || v.nested.IsValid()
}

// Value merges the active variant's fields over the upstream object. The
// discriminator is written when upstream carries one or a variant was
// selected explicitly; a variant resolved only from DefaultVariant leaves
// the value untagged so data without a discriminator round trips unchanged.
func (v *Variant) Value() any {
	if !v.IsDataFormatValid() {
		return v.original
	}
	_, upstream := v.originalDiscriminator()
	tagged := v.active != "" && (upstream || v.selected != "")
	if v.nested == nil && !tagged {
		return v.original
	}
	out, ok := value.AsMap(value.Clone(v.original))
	if !ok || out == nil {
		out = make(map[string]any)
	}
	if v.nested != nil {
		if m, ok := value.AsMap(v.nested.Value()); ok {
			for k, nested := range m {
				out[k] = nested
			}
		}
	}
	if tagged {
		out[model.VariantKey] = v.active
	}
	if len(out) == 0 && v.original == nil {
		return nil
	}
	return out
}

// SetValue selects the variant named by the discriminator in val, when
// configured, and distributes val over its fields.
func (v *Variant) SetValue(val any) {
	if m, ok := value.AsMap(val); ok {
		if name, ok := m[model.VariantKey].(string); ok {
			if _, known := v.cfg.Variants[name]; known {
				v.selected = name
			}
		}
	}
	v.sync()
	if v.nested != nil {
		v.nested.SetValue(val)
	}
	v.ctx.RequestRender()
}

func (v *Variant) Lock() {
	v.Base.Lock()
	if v.nested != nil {
		v.nested.Lock()
	}
}

func (v *Variant) Unlock() {
	v.Base.Unlock()
	if v.nested != nil {
		v.nested.Unlock()
	}
}

func (v *Variant) Node() Node {
	n := v.node()
	n.Variant = v.active
	n.Variants = v.Variants()
	n.Expanded = true
	if v.nested != nil && v.IsDataFormatValid() {
		n.Children = v.nested.Nodes()
	}
	return n
}

func (v *Variant) find(path string) Field {
	if v.nested == nil {
		return nil
	}
	return v.nested.Find(path)
}

func (v *Variant) rekey() {
	if v.nested != nil {
		v.nested.setParentKey(v.FullKey())
	}
}
