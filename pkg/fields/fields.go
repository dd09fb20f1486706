package fields

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/value"
)

// Fields is an ordered collection of sibling fields sharing one parent data
// object. It aggregates their value, clean and valid state.
type Fields struct {
	ctx       *Context
	parentKey string
	fields    []Field
	original  any
}

// NewFields instantiates configs under parentKey. Entries with an unknown
// type are logged and skipped; construction never fails.
func NewFields(ctx *Context, configs []*model.FieldConfig, parentKey string) *Fields {
	if ctx == nil {
		ctx = NewContext()
	}
	fs := &Fields{ctx: ctx, parentKey: parentKey}
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		c := cfg.Clone()
		c.ParentKey = parentKey
		field, err := ctx.Types().New(ctx, c)
		if err != nil {
			ctx.Logger().Error("skipping field",
				zap.String("key", c.FullKey()),
				zap.String("type", string(c.Type)),
				zap.Error(err),
			)
			continue
		}
		fs.fields = append(fs.fields, field)
	}
	return fs
}

// Fields returns the instantiated fields in configuration order.
func (fs *Fields) Fields() []Field { return append([]Field(nil), fs.fields...) }

// Len counts the instantiated fields.
func (fs *Fields) Len() int { return len(fs.fields) }

// ParentKey returns the dotted prefix shared by the collection.
func (fs *Fields) ParentKey() string { return fs.parentKey }

// Original returns the last parent data snapshot.
func (fs *Fields) Original() any { return fs.original }

// IsSimple reports whether the collection is a single key-less field, whose
// value stands for the whole parent value.
func (fs *Fields) IsSimple() bool {
	return len(fs.fields) == 1 && fs.fields[0].Key() == ""
}

// UpdateOriginal stores data as the parent snapshot. With deep it also
// reconciles and validates every field, which composites use to keep their
// nested state in step on each pass.
func (fs *Fields) UpdateOriginal(data any, deep bool) {
	fs.original = data
	if !deep {
		return
	}
	for _, field := range fs.fields {
		field.UpdateOriginal(data)
		field.Validate()
	}
}

// Render reconciles every field against data and returns their nodes.
func (fs *Fields) Render(data any) []Node {
	fs.UpdateOriginal(data, false)
	nodes := make([]Node, 0, len(fs.fields))
	for _, field := range fs.fields {
		nodes = append(nodes, field.Render(data))
	}
	return nodes
}

// Nodes returns the current nodes without reconciling.
func (fs *Fields) Nodes() []Node {
	nodes := make([]Node, 0, len(fs.fields))
	for _, field := range fs.fields {
		nodes = append(nodes, field.Node())
	}
	return nodes
}

// Value assembles the parent value from the original snapshot overlaid with
// every field's current value. Keys absent upstream stay absent while their
// field holds nil.
func (fs *Fields) Value() any {
	if fs.IsSimple() {
		return fs.fields[0].Value()
	}
	out, ok := value.AsMap(value.Clone(fs.original))
	if !ok || out == nil {
		out = make(map[string]any)
	}
	for _, field := range fs.fields {
		v := field.Value()
		if field.Key() == "" {
			if m, ok := value.AsMap(v); ok {
				for k, nested := range m {
					out[k] = nested
				}
			}
			continue
		}
		if v == nil {
			if _, present := value.Get(fs.original, field.Key()); !present {
				continue
			}
		}
		if err := value.Set(out, field.Key(), v); err != nil {
			fs.ctx.Logger().Warn("cannot assign field value",
				zap.String("key", field.FullKey()),
				zap.Error(err),
			)
		}
	}
	return out
}

// SetValue distributes v over the fields by key.
func (fs *Fields) SetValue(v any) {
	for _, field := range fs.fields {
		if field.Key() == "" {
			field.SetValue(v)
			continue
		}
		sub, _ := value.Get(v, field.Key())
		field.SetValue(sub)
	}
}

// GuessDefaultValue returns the seed value of a new item built from this
// collection.
func (fs *Fields) GuessDefaultValue() any {
	if len(fs.fields) > 1 {
		return map[string]any{}
	}
	return ""
}

// IsClean reports whether every field is clean.
func (fs *Fields) IsClean() bool {
	for _, field := range fs.fields {
		if !field.IsClean() {
			return false
		}
	}
	return true
}

// IsValid reports whether every field is valid.
func (fs *Fields) IsValid() bool {
	for _, field := range fs.fields {
		if !field.IsValid() {
			return false
		}
	}
	return true
}

// IsLocked reports whether any field is locked.
func (fs *Fields) IsLocked() bool {
	for _, field := range fs.fields {
		if field.IsLocked() {
			return true
		}
	}
	return false
}

// Lock locks every field.
func (fs *Fields) Lock() {
	for _, field := range fs.fields {
		field.Lock()
	}
}

// Unlock unlocks every field.
func (fs *Fields) Unlock() {
	for _, field := range fs.fields {
		field.Unlock()
	}
}

// Blur blurs the default zone of every field.
func (fs *Fields) Blur() {
	for _, field := range fs.fields {
		field.Blur("")
	}
}

// Find resolves a dotted path relative to the collection, descending into
// composites. List items are addressed by index.
func (fs *Fields) Find(path string) Field {
	path = strings.TrimSpace(path)
	if path == "" {
		if fs.IsSimple() {
			return fs.fields[0]
		}
		return nil
	}
	for _, field := range fs.fields {
		key := field.Key()
		if key == "" {
			if c, ok := field.(container); ok {
				if found := c.find(path); found != nil {
					return found
				}
			}
			continue
		}
		if path == key {
			return field
		}
		if rest, ok := strings.CutPrefix(path, key+"."); ok {
			if c, ok := field.(container); ok {
				if found := c.find(rest); found != nil {
					return found
				}
			}
		}
	}
	return nil
}

// setParentKey moves the collection under a new prefix, which happens when
// list items change position.
func (fs *Fields) setParentKey(parentKey string) {
	fs.parentKey = parentKey
	for _, field := range fs.fields {
		field.Config().ParentKey = parentKey
		if c, ok := field.(container); ok {
			c.rekey()
		}
	}
}
