package rules

import (
	"fmt"
	"regexp"

	"github.com/goliatone/go-formstate/pkg/value"
)

// Pattern matches the string form of a value against one expression.
type Pattern struct {
	ruleBase
	re *regexp.Regexp
}

func newPattern(cfg Config) (Rule, error) {
	base, err := newRuleBase(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Pattern == "" {
		return nil, fmt.Errorf("%w: pattern is empty", ErrInvalidRule)
	}
	re, err := regexp.Compile(cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return &Pattern{ruleBase: base, re: re}, nil
}

func (r *Pattern) Validate(v any) string {
	if value.IsEmpty(v) {
		return ""
	}
	if !r.re.MatchString(stringOf(v)) {
		return r.fail("", "Invalid format.")
	}
	return ""
}
