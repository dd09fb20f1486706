package rules

import (
	"strings"

	"github.com/goliatone/go-formstate/pkg/value"
)

// Require fails when the value is absent or blank. Configured alternatives
// are extra strings that also count as empty (for example "-" or "n/a").
type Require struct {
	ruleBase
	alternatives map[string]struct{}
}

func newRequire(cfg Config) (Rule, error) {
	base, err := newRuleBase(cfg)
	if err != nil {
		return nil, err
	}
	alts := make(map[string]struct{}, len(cfg.Alternatives))
	for _, alt := range cfg.Alternatives {
		alts[strings.TrimSpace(alt)] = struct{}{}
	}
	return &Require{ruleBase: base, alternatives: alts}, nil
}

func (r *Require) Validate(v any) string {
	if r.isEmpty(v) {
		return r.fail("", "This field is required.")
	}
	return ""
}

func (r *Require) IsRequired() bool { return true }

// AllowRemove refuses to remove the last remaining item.
func (r *Require) AllowRemove(v any) bool {
	n, ok := value.Len(v)
	return !ok || n > 1
}

func (r *Require) isEmpty(v any) bool {
	if value.IsEmpty(v) {
		return true
	}
	if s, ok := v.(string); ok {
		_, alt := r.alternatives[strings.TrimSpace(s)]
		return alt
	}
	return false
}
