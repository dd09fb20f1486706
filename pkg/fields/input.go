package fields

import (
	"regexp"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/value"
)

// Input is a leaf field editing a single scalar: text, textarea, number,
// checkbox, date and hidden values all share it.
type Input struct {
	Base
}

// NewInput constructs a leaf field for cfg.
func NewInput(ctx *Context, cfg *model.FieldConfig) *Input {
	in := &Input{}
	if cfg != nil && cfg.Type == model.FieldTypeDate {
		in.normalize = normalizeDate
	}
	in.init(in, ctx, cfg)
	return in
}

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// normalizeDate keeps the calendar date of timestamps like
// 2024-03-01T10:00:00Z so they compare equal to the edited YYYY-MM-DD form.
func normalizeDate(v any) any {
	s, ok := v.(string)
	if !ok {
		return value.Clone(v)
	}
	if len(s) > 10 && datePrefix.MatchString(s) {
		return s[:10]
	}
	return s
}
