// Package formstate is the top level entry point: it loads field
// configuration and data from files or OpenAPI documents and returns an
// editor reconciling the two.
package formstate

import (
	"context"
	"io"

	"github.com/goliatone/go-formstate/pkg/editor"
	"github.com/goliatone/go-formstate/pkg/fields"
	"github.com/goliatone/go-formstate/pkg/loader"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/report"
)

// Editor aliases editor.Editor for callers that only import the root package.
type Editor = editor.Editor

// Option aliases editor.Option.
type Option = editor.Option

// FieldConfig aliases model.FieldConfig.
type FieldConfig = model.FieldConfig

// Node aliases fields.Node, the render output of every field.
type Node = fields.Node

// New builds an editor over data. A nil configs slice guesses the
// configuration from data.
func New(data any, configs []*FieldConfig, options ...Option) (*Editor, error) {
	return editor.New(data, configs, options...)
}

// Open loads a data file and, when configPath is not empty, a configuration
// document whose ignore settings also drive guessing.
func Open(dataPath, configPath string, options ...Option) (*Editor, error) {
	data, err := loader.LoadData(dataPath)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		return editor.New(data, nil, options...)
	}
	doc, err := loader.LoadFile(configPath)
	if err != nil {
		return nil, err
	}
	guesser, err := doc.Guesser()
	if err != nil {
		return nil, err
	}
	options = append([]Option{editor.WithGuesser(guesser)}, options...)
	var configs []*FieldConfig
	if len(doc.Fields) > 0 {
		configs = doc.Fields
	}
	return editor.New(data, configs, options...)
}

// FromOpenAPI builds an editor over data with the configuration derived from
// the named component schema of an OpenAPI document.
func FromOpenAPI(ctx context.Context, data any, spec []byte, schema string, options ...Option) (*Editor, error) {
	configs, err := openapi.FieldsFromData(ctx, spec, schema)
	if err != nil {
		return nil, err
	}
	return editor.New(data, configs, options...)
}

// WriteReport renders the default status report of e to w.
func WriteReport(w io.Writer, e *Editor) error {
	r, err := report.New()
	if err != nil {
		return err
	}
	_, err = r.Render(e.Nodes(), e.IsClean(), e.IsValid(), w)
	return err
}
