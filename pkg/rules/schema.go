package rules

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/goliatone/go-formstate/pkg/value"
)

// Schema validates a value against an inline JSON Schema document.
type Schema struct {
	ruleBase
	schema *gojsonschema.Schema
}

func newSchema(cfg Config) (Rule, error) {
	base, err := newRuleBase(cfg)
	if err != nil {
		return nil, err
	}
	if len(cfg.Schema) == 0 {
		return nil, fmt.Errorf("%w: schema is empty", ErrInvalidRule)
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(cfg.Schema))
	if err != nil {
		return nil, fmt.Errorf("%w: compile schema: %v", ErrInvalidRule, err)
	}
	return &Schema{ruleBase: base, schema: compiled}, nil
}

func (r *Schema) Validate(v any) string {
	if value.IsEmpty(v) {
		return ""
	}
	result, err := r.schema.Validate(gojsonschema.NewGoLoader(v))
	if err != nil {
		return r.fail("", "Value does not match the expected structure.")
	}
	if result.Valid() {
		return ""
	}
	descriptions := make([]string, 0, len(result.Errors()))
	for _, issue := range result.Errors() {
		descriptions = append(descriptions, issue.String())
	}
	return r.fail("", strings.Join(descriptions, "; "))
}
