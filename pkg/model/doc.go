// Package model defines the declarative configuration tree consumed by the
// field engine. A FieldConfig names the data key a field edits, the field
// type used to instantiate it, presentation attributes (label, help), the
// default value and validation rules. Composite types extend it: lists and
// groups carry nested Fields, variants carry a Variants map keyed by the
// discriminator stored under `_variant` in the data.
//
// ParentKey and IsGuessed are assigned by the engine and never read from
// configuration documents.
package model
