package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/value"
)

// Range bounds a numeric value (strings are parsed) or the element count of a
// list. Empty values pass; values that are not numeric fail.
type Range struct {
	ruleBase
	min, max               *float64
	minMessage, maxMessage string
}

func newRange(cfg Config) (Rule, error) {
	base, err := newRuleBase(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Min == nil && cfg.Max == nil {
		return nil, fmt.Errorf("%w: range requires min or max", ErrInvalidRule)
	}
	return &Range{
		ruleBase:   base,
		min:        cfg.Min,
		max:        cfg.Max,
		minMessage: cfg.MinMessage,
		maxMessage: cfg.MaxMessage,
	}, nil
}

func (r *Range) Validate(v any) string {
	if value.IsEmpty(v) {
		return ""
	}
	n, ok := r.measure(v)
	if !ok {
		return r.fail("", "Must be a number.")
	}
	if r.min != nil && n < *r.min {
		return r.fail(r.minMessage, fmt.Sprintf("Must be at least %s.", formatBound(*r.min)))
	}
	if r.max != nil && n > *r.max {
		return r.fail(r.maxMessage, fmt.Sprintf("Must be at most %s.", formatBound(*r.max)))
	}
	return ""
}

func (r *Range) AllowAdd(v any) bool {
	if r.max == nil {
		return true
	}
	n, ok := value.Len(v)
	return !ok || float64(n) < *r.max
}

func (r *Range) AllowRemove(v any) bool {
	if r.min == nil {
		return true
	}
	n, ok := value.Len(v)
	return !ok || float64(n) > *r.min
}

func (r *Range) measure(v any) (float64, bool) {
	if n, ok := value.Len(v); ok {
		return float64(n), true
	}
	return toNumber(v)
}

func toNumber(v any) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
