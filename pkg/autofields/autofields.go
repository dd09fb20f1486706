// Package autofields infers a field configuration tree from sample data when
// no explicit configuration is supplied.
package autofields

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/value"
)

// TextareaThreshold is the string length above which a textarea is guessed.
const TextareaThreshold = 75

// Option configures a Guesser.
type Option func(*Guesser)

// WithIgnore skips keys equal to any of names. A name matches either the
// last key segment or the full dotted key.
func WithIgnore(names ...string) Option {
	return func(g *Guesser) {
		for _, name := range names {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				g.ignore[trimmed] = struct{}{}
			}
		}
	}
}

// WithIgnorePattern skips keys whose last segment or full dotted key matches
// re.
func WithIgnorePattern(re *regexp.Regexp) Option {
	return func(g *Guesser) {
		g.ignorePattern = re
	}
}

// WithTextareaThreshold overrides TextareaThreshold.
func WithTextareaThreshold(n int) Option {
	return func(g *Guesser) {
		if n > 0 {
			g.threshold = n
		}
	}
}

// Guesser is stateless apart from its ignore settings and safe to share.
type Guesser struct {
	ignore        map[string]struct{}
	ignorePattern *regexp.Regexp
	threshold     int
}

// New constructs a Guesser.
func New(opts ...Option) *Guesser {
	g := &Guesser{ignore: make(map[string]struct{}), threshold: TextareaThreshold}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Guess infers one config per leaf of data. Objects are flattened into dotted
// keys, in sorted key order. A non-object sample yields a single key-less
// field that edits the whole value.
func (g *Guesser) Guess(data any) []*model.FieldConfig {
	if obj, ok := value.AsMap(data); ok {
		return g.guessObject("", obj)
	}
	return []*model.FieldConfig{g.GuessField("", data)}
}

// GuessField infers the config of a single non-object value stored at key.
// Object values are not flattened here; they are guessed as text fields.
func (g *Guesser) GuessField(key string, v any) *model.FieldConfig {
	cfg := &model.FieldConfig{
		Key:       key,
		Label:     Label(key),
		IsGuessed: true,
	}
	switch typed := v.(type) {
	case nil:
		cfg.Type = model.FieldTypeText
	case string:
		cfg.Type = model.FieldTypeText
		if utf8.RuneCountInString(typed) > g.threshold {
			cfg.Type = model.FieldTypeTextarea
		}
	case bool:
		cfg.Type = model.FieldTypeCheckbox
	case int, int32, int64, float32, float64, uint, uint64:
		cfg.Type = model.FieldTypeNumber
	default:
		if items, ok := value.AsSlice(v); ok {
			cfg.Type = model.FieldTypeList
			if len(items) > 0 {
				cfg.Fields = g.Guess(items[0])
			}
			return cfg
		}
		cfg.Type = model.FieldTypeText
	}
	return cfg
}

func (g *Guesser) guessObject(prefix string, obj map[string]any) []*model.FieldConfig {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []*model.FieldConfig
	for _, key := range keys {
		full := model.JoinKey(prefix, key)
		if g.ignored(key, full) {
			continue
		}
		if nested, ok := value.AsMap(obj[key]); ok {
			out = append(out, g.guessObject(full, nested)...)
			continue
		}
		out = append(out, g.GuessField(full, obj[key]))
	}
	return out
}

func (g *Guesser) ignored(key, full string) bool {
	if _, ok := g.ignore[key]; ok {
		return true
	}
	if _, ok := g.ignore[full]; ok {
		return true
	}
	if g.ignorePattern != nil {
		return g.ignorePattern.MatchString(key) || g.ignorePattern.MatchString(full)
	}
	return false
}
