package model

import (
	"strings"

	"github.com/goliatone/go-formstate/pkg/rules"
)

// FieldType is the discriminator selecting which field implementation is
// instantiated for a config entry.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDate     FieldType = "date"
	FieldTypeHidden   FieldType = "hidden"
	FieldTypeList     FieldType = "list"
	FieldTypeGroup    FieldType = "group"
	FieldTypeVariant  FieldType = "variant"
)

// VariantKey is the data key holding a variant discriminator.
const VariantKey = "_variant"

// FieldConfig describes one field.
type FieldConfig struct {
	Key        string         `json:"key,omitempty" yaml:"key,omitempty"`
	Type       FieldType      `json:"type" yaml:"type"`
	Label      string         `json:"label,omitempty" yaml:"label,omitempty"`
	Default    any            `json:"default,omitempty" yaml:"default,omitempty"`
	Help       string         `json:"help,omitempty" yaml:"help,omitempty"`
	Validation *rules.Spec    `json:"validation,omitempty" yaml:"validation,omitempty"`
	Fields     []*FieldConfig `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Expanded opens a group on construction.
	Expanded bool `json:"expanded,omitempty" yaml:"expanded,omitempty"`

	Variants       map[string]*VariantConfig `json:"variants,omitempty" yaml:"variants,omitempty"`
	DefaultVariant string                    `json:"defaultVariant,omitempty" yaml:"defaultVariant,omitempty"`

	ParentKey string `json:"-" yaml:"-"`
	IsGuessed bool   `json:"-" yaml:"-"`
}

// VariantConfig is one branch of a variant field.
type VariantConfig struct {
	Label  string         `json:"label,omitempty" yaml:"label,omitempty"`
	Fields []*FieldConfig `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// FullKey joins ParentKey and Key with a dot.
func (c *FieldConfig) FullKey() string {
	if c == nil {
		return ""
	}
	return JoinKey(c.ParentKey, c.Key)
}

// Clone returns a deep copy of the config tree. Default values are shared.
func (c *FieldConfig) Clone() *FieldConfig {
	if c == nil {
		return nil
	}
	out := *c
	out.Fields = CloneAll(c.Fields)
	if len(c.Variants) > 0 {
		out.Variants = make(map[string]*VariantConfig, len(c.Variants))
		for name, variant := range c.Variants {
			if variant == nil {
				continue
			}
			out.Variants[name] = &VariantConfig{Label: variant.Label, Fields: CloneAll(variant.Fields)}
		}
	}
	return &out
}

// CloneAll deep copies a list of configs.
func CloneAll(cfgs []*FieldConfig) []*FieldConfig {
	if cfgs == nil {
		return nil
	}
	out := make([]*FieldConfig, 0, len(cfgs))
	for _, cfg := range cfgs {
		out = append(out, cfg.Clone())
	}
	return out
}

// JoinKey joins two dotted key fragments, skipping empty ones.
func JoinKey(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}
