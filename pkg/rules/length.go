package rules

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/value"
)

// Length bounds the trimmed length of a string or the element count of a
// list. Empty values pass; pair with Require for mandatory fields.
type Length struct {
	ruleBase
	min, max               *int
	minMessage, maxMessage string
}

func newLength(cfg Config) (Rule, error) {
	base, err := newRuleBase(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Min == nil && cfg.Max == nil {
		return nil, fmt.Errorf("%w: length requires min or max", ErrInvalidRule)
	}
	lo, err := intBound("min", cfg.Min)
	if err != nil {
		return nil, err
	}
	hi, err := intBound("max", cfg.Max)
	if err != nil {
		return nil, err
	}
	return &Length{
		ruleBase:   base,
		min:        lo,
		max:        hi,
		minMessage: cfg.MinMessage,
		maxMessage: cfg.MaxMessage,
	}, nil
}

func (r *Length) Validate(v any) string {
	n, isList, ok := measureLength(v)
	if !ok || n == 0 {
		return ""
	}
	unit := "characters"
	if isList {
		unit = "items"
	}
	if r.min != nil && n < *r.min {
		return r.fail(r.minMessage, fmt.Sprintf("Must contain at least %d %s.", *r.min, unit))
	}
	if r.max != nil && n > *r.max {
		return r.fail(r.maxMessage, fmt.Sprintf("Must contain at most %d %s.", *r.max, unit))
	}
	return ""
}

func (r *Length) AllowAdd(v any) bool {
	if r.max == nil {
		return true
	}
	n, _ := value.Len(v)
	return n < *r.max
}

func (r *Length) AllowRemove(v any) bool {
	if r.min == nil {
		return true
	}
	n, _ := value.Len(v)
	return n > *r.min
}

func measureLength(v any) (int, bool, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(strings.TrimSpace(s)), false, true
	}
	if n, ok := value.Len(v); ok {
		return n, true, true
	}
	return 0, false, false
}

// intBound converts a configured bound, rejecting fractions and negatives.
func intBound(name string, f *float64) (*int, error) {
	if f == nil {
		return nil, nil
	}
	if math.IsNaN(*f) || math.IsInf(*f, 0) || *f != math.Trunc(*f) || *f < 0 {
		return nil, fmt.Errorf("%w: length %s must be a whole number, got %v", ErrInvalidRule, name, *f)
	}
	n := int(*f)
	return &n, nil
}
