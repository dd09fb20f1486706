// Package rules implements the validation predicates attached to fields.
//
// A Rule validates one value and answers list gating questions (may an item
// be added or removed). Rules are built from declarative Config entries by a
// Registry and grouped per field into a RuleSet, partitioned by zone so that
// composite fields can validate sub-parts independently.
package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/value"
)

var (
	// ErrUnknownRule is returned when a rule config names an unregistered type.
	ErrUnknownRule = errors.New("rules: unknown rule type")
	// ErrInvalidRule is returned when a rule config cannot be compiled.
	ErrInvalidRule = errors.New("rules: invalid rule config")
)

// Level is the severity attached to a validation result. Levels are ordered:
// info < warning < error.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	default:
		return "error"
	}
}

// ParseLevel converts a config string into a Level. An empty string maps to
// LevelError.
func ParseLevel(raw string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "error":
		return LevelError, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "info":
		return LevelInfo, nil
	default:
		return LevelError, fmt.Errorf("%w: unknown level %q", ErrInvalidRule, raw)
	}
}

// Rule is a single validation predicate.
type Rule interface {
	// Validate returns a failure message, or "" when value passes.
	Validate(value any) string
	// AllowAdd reports whether a list holding value may grow.
	AllowAdd(value any) bool
	// AllowRemove reports whether a list holding value may shrink.
	AllowRemove(value any) bool
	// IsRequired reports whether the rule makes the field mandatory.
	IsRequired() bool
	Level() Level
}

type ruleBase struct {
	level   Level
	message string
}

func newRuleBase(cfg Config) (ruleBase, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return ruleBase{}, err
	}
	return ruleBase{level: level, message: strings.TrimSpace(cfg.Message)}, nil
}

func (b ruleBase) Level() Level { return b.level }
func (b ruleBase) IsRequired() bool { return false }
func (b ruleBase) AllowAdd(_ any) bool { return true }
func (b ruleBase) AllowRemove(_ any) bool { return true }

// fail picks the first non-empty message: the bound specific one, the rule
// level one, then the built-in default.
func (b ruleBase) fail(specific, fallback string) string {
	if msg := strings.TrimSpace(specific); msg != "" {
		return msg
	}
	if b.message != "" {
		return b.message
	}
	return fallback
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func stringOf(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	case int, int64, float64, float32, bool:
		return fmt.Sprint(typed)
	default:
		return value.Canonical(v)
	}
}
