package autofields

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formstate/pkg/model"
)

func TestGuessField_Labels(t *testing.T) {
	cfg := New().GuessField("foo.bar", "x")

	if cfg.Label != "Foo Bar" {
		t.Fatalf("label = %q, want %q", cfg.Label, "Foo Bar")
	}
	if cfg.Type != model.FieldTypeText {
		t.Fatalf("type = %q, want text", cfg.Type)
	}
	if !cfg.IsGuessed {
		t.Fatalf("guessed configs must be marked")
	}
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"foo.bar":       "Foo Bar",
		"first_name":    "First Name",
		"meta-data.seo": "Meta Data Seo",
		"alreadyUpper":  "AlreadyUpper",
		"":              "",
		"__x__":         "X",
	}
	for in, want := range cases {
		if got := Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGuessField_Types(t *testing.T) {
	g := New()

	if got := g.GuessField("body", strings.Repeat("a", 76)).Type; got != model.FieldTypeTextarea {
		t.Fatalf("long string guessed as %q", got)
	}
	if got := g.GuessField("body", strings.Repeat("a", 75)).Type; got != model.FieldTypeText {
		t.Fatalf("threshold string guessed as %q", got)
	}
	if got := g.GuessField("x", nil).Type; got != model.FieldTypeText {
		t.Fatalf("nil guessed as %q", got)
	}
	if got := g.GuessField("n", 3.0).Type; got != model.FieldTypeNumber {
		t.Fatalf("number guessed as %q", got)
	}
	if got := g.GuessField("b", true).Type; got != model.FieldTypeCheckbox {
		t.Fatalf("bool guessed as %q", got)
	}
}

func TestGuessField_ListInfersItems(t *testing.T) {
	cfg := New().GuessField("links", []any{
		map[string]any{"url": "https://x", "title": "X"},
	})

	want := &model.FieldConfig{
		Key:       "links",
		Type:      model.FieldTypeList,
		Label:     "Links",
		IsGuessed: true,
		Fields: []*model.FieldConfig{
			{Key: "title", Type: model.FieldTypeText, Label: "Title", IsGuessed: true},
			{Key: "url", Type: model.FieldTypeText, Label: "Url", IsGuessed: true},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	empty := New().GuessField("tags", []any{})
	if empty.Type != model.FieldTypeList || len(empty.Fields) != 0 {
		t.Fatalf("empty list should infer no sub-fields, got %+v", empty)
	}

	scalars := New().GuessField("tags", []any{"a"})
	if len(scalars.Fields) != 1 || scalars.Fields[0].Key != "" {
		t.Fatalf("scalar list should infer one key-less field, got %+v", scalars.Fields)
	}
}

func TestGuess_FlattensObjectsAndIgnores(t *testing.T) {
	g := New(WithIgnore("id", "meta.internal"), WithIgnorePattern(regexp.MustCompile(`^_`)))
	data := map[string]any{
		"id":    1,
		"_rev":  "3",
		"title": "Hello",
		"meta": map[string]any{
			"seo":      map[string]any{"title": "t"},
			"internal": true,
			"id":       "nested ids are ignored too",
		},
	}

	got := g.Guess(data)
	var keys []string
	for _, cfg := range got {
		keys = append(keys, cfg.Key)
	}
	want := []string{"meta.seo.title", "title"}
	if diff := cmp.Diff(want, keys, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	for _, cfg := range got {
		if cfg.Type == model.FieldTypeGroup {
			t.Fatalf("auto inference must not produce groups")
		}
	}
}
