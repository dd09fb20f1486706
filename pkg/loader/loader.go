// Package loader reads field configuration documents and data snapshots
// from JSON or YAML sources.
package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/autofields"
	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrEmptyDocument is returned for sources holding only whitespace.
var ErrEmptyDocument = errors.New("loader: empty document")

// Document is a field configuration file. A document may also be written as
// a bare list of fields.
type Document struct {
	Fields        []*model.FieldConfig `json:"fields" yaml:"fields"`
	Ignore        []string             `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	IgnorePattern string               `json:"ignorePattern,omitempty" yaml:"ignorePattern,omitempty"`

	// Source names where the document was read from.
	Source string `json:"-" yaml:"-"`
}

// Guesser builds a configuration guesser honoring the document's ignore
// settings.
func (d *Document) Guesser(opts ...autofields.Option) (*autofields.Guesser, error) {
	all := make([]autofields.Option, 0, len(opts)+2)
	if d != nil {
		if len(d.Ignore) > 0 {
			all = append(all, autofields.WithIgnore(d.Ignore...))
		}
		if pattern := strings.TrimSpace(d.IgnorePattern); pattern != "" {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, errors.Wrapf(err, "loader: %s ignorePattern", d.Source)
			}
			all = append(all, autofields.WithIgnorePattern(re))
		}
	}
	all = append(all, opts...)
	return autofields.New(all...), nil
}

// Parse decodes a JSON or YAML configuration document.
func Parse(data []byte, source string) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.Wrapf(ErrEmptyDocument, "loader: %s", source)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil {
		return finish(&doc, source), nil
	}
	var list []*model.FieldConfig
	if err := json.Unmarshal(data, &list); err == nil {
		return finish(&Document{Fields: list}, source), nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrapf(err, "loader: parse %s: invalid JSON or YAML", source)
	}
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&list); err != nil {
			return nil, errors.Wrapf(err, "loader: decode %s", source)
		}
		return finish(&Document{Fields: list}, source), nil
	case yaml.MappingNode:
		if err := root.Decode(&doc); err != nil {
			return nil, errors.Wrapf(err, "loader: decode %s", source)
		}
		return finish(&doc, source), nil
	default:
		return nil, errors.Errorf("loader: %s: expected a mapping or a list of fields", source)
	}
}

func finish(doc *Document, source string) *Document {
	doc.Source = source
	compact := doc.Fields[:0]
	for _, cfg := range doc.Fields {
		if cfg != nil {
			compact = append(compact, cfg)
		}
	}
	doc.Fields = compact
	return doc
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loader: read %s", path)
	}
	return Parse(data, path)
}

// LoadFS reads and parses the document at path within fsys.
func LoadFS(fsys fs.FS, path string) (*Document, error) {
	if fsys == nil {
		return nil, errors.New("loader: nil filesystem")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "loader: read %s", path)
	}
	return Parse(data, path)
}

// LoadAll parses every JSON or YAML document found in fsys, keyed by path.
func LoadAll(fsys fs.FS) (map[string]*Document, error) {
	docs := make(map[string]*Document)
	if fsys == nil {
		return docs, nil
	}
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocumentFile(path) {
			return nil
		}
		doc, err := LoadFS(fsys, path)
		if err != nil {
			return err
		}
		docs[path] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// MarshalYAML encodes doc as YAML.
func MarshalYAML(doc *Document) ([]byte, error) {
	if doc == nil {
		doc = &Document{}
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "loader: encode document")
	}
	return out, nil
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
