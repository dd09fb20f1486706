package openapi

import (
	"context"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/autofields"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/rules"
)

// Option configures a Converter.
type Option func(*Converter)

// WithTextareaThreshold sets the maxLength above which strings edit as
// textareas.
func WithTextareaThreshold(n int) Option {
	return func(c *Converter) {
		if n > 0 {
			c.threshold = n
		}
	}
}

// Converter maps OpenAPI schemas to field configuration.
type Converter struct {
	threshold int
}

// NewConverter constructs a Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{threshold: autofields.TextareaThreshold}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// FieldsFromSchema converts the component schema name of doc.
func FieldsFromSchema(doc *openapi3.T, name string, opts ...Option) ([]*model.FieldConfig, error) {
	return NewConverter(opts...).FromComponent(doc, name)
}

// FieldsFromData loads raw and converts its component schema name.
func FieldsFromData(ctx context.Context, raw []byte, name string, opts ...Option) ([]*model.FieldConfig, error) {
	doc, err := Load(ctx, raw)
	if err != nil {
		return nil, err
	}
	return FieldsFromSchema(doc, name, opts...)
}

// FromComponent converts the component schema name of doc.
func (c *Converter) FromComponent(doc *openapi3.T, name string) ([]*model.FieldConfig, error) {
	ref, err := lookupSchema(doc, name)
	if err != nil {
		return nil, err
	}
	return c.Fields(ref), nil
}

// Fields converts an object schema into one config per property, in sorted
// property order. Any other schema yields a single key-less field editing
// the whole value.
func (c *Converter) Fields(ref *openapi3.SchemaRef) []*model.FieldConfig {
	if ref == nil || ref.Value == nil {
		return nil
	}
	src := ref.Value
	if schemaType(src) == openapi3.TypeObject || len(src.Properties) > 0 {
		return c.properties(src)
	}
	return []*model.FieldConfig{c.field("", src, false)}
}

func (c *Converter) properties(src *openapi3.Schema) []*model.FieldConfig {
	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}

	out := make([]*model.FieldConfig, 0, len(names))
	for _, name := range names {
		prop := src.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		out = append(out, c.field(name, prop.Value, required[name]))
	}
	return out
}

func (c *Converter) field(key string, src *openapi3.Schema, required bool) *model.FieldConfig {
	cfg := &model.FieldConfig{
		Key:     key,
		Label:   strings.TrimSpace(src.Title),
		Help:    strings.TrimSpace(src.Description),
		Default: src.Default,
	}
	if cfg.Label == "" && key != "" {
		cfg.Label = autofields.Label(key)
	}

	var checks []rules.Config
	if required {
		checks = append(checks, rules.Config{Type: rules.TypeRequire})
	}

	switch schemaType(src) {
	case openapi3.TypeObject:
		cfg.Type = model.FieldTypeGroup
		cfg.Fields = c.properties(src)
	case openapi3.TypeArray:
		cfg.Type = model.FieldTypeList
		if src.Items != nil {
			cfg.Fields = c.Fields(src.Items)
		}
		if check, ok := lengthCheck(src.MinItems, src.MaxItems); ok {
			checks = append(checks, check)
		}
	case openapi3.TypeNumber, openapi3.TypeInteger:
		cfg.Type = model.FieldTypeNumber
		if src.Min != nil || src.Max != nil {
			checks = append(checks, rules.Config{Type: rules.TypeRange, Min: src.Min, Max: src.Max})
		}
	case openapi3.TypeBoolean:
		cfg.Type = model.FieldTypeCheckbox
	default:
		cfg.Type = model.FieldTypeText
		switch {
		case src.Format == "date" || src.Format == "date-time":
			cfg.Type = model.FieldTypeDate
		case src.MaxLength != nil && int(*src.MaxLength) > c.threshold:
			cfg.Type = model.FieldTypeTextarea
		}
		if check, ok := lengthCheck(src.MinLength, src.MaxLength); ok {
			checks = append(checks, check)
		}
		if src.Pattern != "" {
			checks = append(checks, rules.Config{Type: rules.TypePattern, Pattern: src.Pattern})
		}
	}

	if len(src.Enum) > 0 {
		checks = append(checks, rules.Config{Type: rules.TypeMatch, Allow: append([]any(nil), src.Enum...)})
	}
	if len(checks) > 0 {
		cfg.Validation = rules.Flat(checks...)
	}
	return cfg
}

func lengthCheck(lo uint64, hi *uint64) (rules.Config, bool) {
	if lo == 0 && hi == nil {
		return rules.Config{}, false
	}
	check := rules.Config{Type: rules.TypeLength}
	if lo > 0 {
		check.Min = rules.Float(float64(lo))
	}
	if hi != nil {
		check.Max = rules.Float(float64(*hi))
	}
	return check, true
}

// schemaType returns the first non-null type of src, inferring object and
// array from properties and items when the type is omitted.
func schemaType(src *openapi3.Schema) string {
	if src.Type != nil {
		for _, t := range src.Type.Slice() {
			if t != "null" {
				return t
			}
		}
	}
	switch {
	case len(src.Properties) > 0:
		return openapi3.TypeObject
	case src.Items != nil:
		return openapi3.TypeArray
	}
	return ""
}
