package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ParseData decodes a JSON or YAML data snapshot. An empty source decodes
// to nil.
func ParseData(data []byte, source string) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err == nil {
		return out, nil
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrapf(err, "loader: parse data %s", source)
	}
	return out, nil
}

// LoadData reads the data snapshot at path.
func LoadData(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loader: read %s", path)
	}
	return ParseData(data, path)
}

// MarshalData encodes v as YAML for .yaml and .yml paths and as indented
// JSON otherwise.
func MarshalData(v any, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "loader: encode yaml")
		}
		return out, nil
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "loader: encode json")
		}
		return append(out, '\n'), nil
	}
}

// WriteData encodes v by the extension of path and writes it.
func WriteData(path string, v any) error {
	out, err := MarshalData(v, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.Wrapf(err, "loader: write %s", path)
	}
	return nil
}
