package fields

import (
	"errors"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/rules"
	"github.com/goliatone/go-formstate/pkg/validation"
)

var (
	ErrUnknownType      = errors.New("fields: unknown field type")
	ErrAddNotAllowed    = errors.New("fields: adding an item is not allowed")
	ErrRemoveNotAllowed = errors.New("fields: removing an item is not allowed")
	ErrIndexOutOfRange  = errors.New("fields: item index out of range")
	ErrUnknownVariant   = errors.New("fields: unknown variant")
	ErrVariantDirty     = errors.New("fields: cannot switch variant with unsaved changes")
	ErrDataFormat       = errors.New("fields: data has an unexpected format")
)

// Field is the contract every field type implements.
type Field interface {
	Config() *model.FieldConfig
	Key() string
	FullKey() string
	Type() model.FieldType

	// UpdateOriginal reconciles the field against the parent data snapshot.
	UpdateOriginal(data any)
	// Validate runs the rules of every zone the validation policy allows.
	Validate()
	// Render reconciles, validates and returns the field node.
	Render(data any) Node
	// Node returns the field node without reconciling.
	Node() Node

	Value() any
	SetValue(v any)
	OriginalValue() any

	IsClean() bool
	IsValid() bool
	IsLocked() bool
	Lock()
	Unlock()

	// Blur records that zone lost focus, enabling its validation.
	Blur(zone string)
	Validation() *validation.Validation
	Rules() *rules.RuleSet
	IsRequired() bool
	IsDataFormatValid() bool
}

// container is implemented by composite fields holding nested fields.
type container interface {
	find(path string) Field
	rekey()
}

// Node is the renderable description of one field after a pass. The
// rendering layer turns nodes into markup or prompts.
type Node struct {
	Key         string              `json:"key,omitempty"`
	FullKey     string              `json:"fullKey,omitempty"`
	Type        model.FieldType     `json:"type"`
	Label       string              `json:"label,omitempty"`
	Help        string              `json:"help,omitempty"`
	Value       any                 `json:"value,omitempty"`
	Clean       bool                `json:"clean"`
	Valid       bool                `json:"valid"`
	Locked      bool                `json:"locked,omitempty"`
	Required    bool                `json:"required,omitempty"`
	Messages    []validation.Result `json:"messages,omitempty"`
	Placeholder string              `json:"placeholder,omitempty"`

	ID          string   `json:"id,omitempty"`
	Expanded    bool     `json:"expanded,omitempty"`
	Variant     string   `json:"variant,omitempty"`
	Variants    []string `json:"variants,omitempty"`
	AllowAdd    bool     `json:"allowAdd,omitempty"`
	AllowRemove bool     `json:"allowRemove,omitempty"`

	Children []Node `json:"children,omitempty"`
}

// NodeTypeItem marks list item nodes.
const NodeTypeItem model.FieldType = "item"

// CannotEditMessage is the placeholder shown for fields whose data does not
// have the expected shape.
const CannotEditMessage = "This value cannot be edited here."
