package rules

import (
	"fmt"
	"regexp"

	"github.com/goliatone/go-formstate/pkg/value"
)

// Match checks a value against an allow-list and/or a deny-list. Literal
// entries compare canonically; pattern entries match the string form.
type Match struct {
	ruleBase
	allow, deny                 []any
	allowPatterns, denyPatterns []*regexp.Regexp
	allowMessage, denyMessage   string
}

func newMatch(cfg Config) (Rule, error) {
	base, err := newRuleBase(cfg)
	if err != nil {
		return nil, err
	}
	if len(cfg.Allow)+len(cfg.Deny)+len(cfg.AllowPatterns)+len(cfg.DenyPatterns) == 0 {
		return nil, fmt.Errorf("%w: match requires allow or deny entries", ErrInvalidRule)
	}
	allowPatterns, err := compileAll(cfg.AllowPatterns)
	if err != nil {
		return nil, err
	}
	denyPatterns, err := compileAll(cfg.DenyPatterns)
	if err != nil {
		return nil, err
	}
	return &Match{
		ruleBase:      base,
		allow:         cfg.Allow,
		deny:          cfg.Deny,
		allowPatterns: allowPatterns,
		denyPatterns:  denyPatterns,
		allowMessage:  cfg.AllowMessage,
		denyMessage:   cfg.DenyMessage,
	}, nil
}

func (r *Match) Validate(v any) string {
	if value.IsEmpty(v) {
		return ""
	}
	if len(r.allow)+len(r.allowPatterns) > 0 && !matches(v, r.allow, r.allowPatterns) {
		return r.fail(r.allowMessage, "This value is not allowed.")
	}
	if matches(v, r.deny, r.denyPatterns) {
		return r.fail(r.denyMessage, "This value is not allowed.")
	}
	return ""
}

func matches(v any, literals []any, patterns []*regexp.Regexp) bool {
	for _, literal := range literals {
		if value.Equal(v, literal) {
			return true
		}
	}
	if len(patterns) == 0 {
		return false
	}
	s := stringOf(v)
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		out = append(out, re)
	}
	return out, nil
}
