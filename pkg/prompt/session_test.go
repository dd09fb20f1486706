package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/editor"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/rules"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func sessionConfigs() []*model.FieldConfig {
	return []*model.FieldConfig{
		{Key: "title", Type: model.FieldTypeText, Validation: rules.Flat(rules.Config{Type: rules.TypeRequire})},
		{Key: "views", Type: model.FieldTypeNumber},
		{Key: "featured", Type: model.FieldTypeCheckbox},
		{Key: "status", Type: model.FieldTypeText, Validation: rules.Flat(rules.Config{Type: rules.TypeMatch, Allow: []any{"draft", "live"}})},
		{
			Key:        "tags",
			Type:       model.FieldTypeList,
			Validation: rules.Flat(rules.Config{Type: rules.TypeLength, Max: rules.Float(2)}),
			Fields:     []*model.FieldConfig{{Type: model.FieldTypeText}},
		},
		{
			Key:  "block",
			Type: model.FieldTypeVariant,
			Variants: map[string]*model.VariantConfig{
				"image": {Label: "Image", Fields: []*model.FieldConfig{{Key: "src", Type: model.FieldTypeText}}},
				"text":  {Label: "Text", Fields: []*model.FieldConfig{{Key: "body", Type: model.FieldTypeTextarea}}},
			},
		},
		{Key: "id", Type: model.FieldTypeHidden},
	}
}

func sessionData() map[string]any {
	return map[string]any{
		"id":       "p1",
		"title":    "",
		"views":    1,
		"featured": false,
		"status":   "draft",
		"tags":     []any{"x"},
		"block":    map[string]any{"_variant": "image", "src": "a.png"},
	}
}

func TestSession_Run(t *testing.T) {
	e, err := editor.New(sessionData(), sessionConfigs())
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	driver := &stubDriver{
		inputs:    []string{"", "Hello", "42", "x", "y", "b.png"},
		selectIdx: []int{1, 0},
		confirm:   []bool{true, true},
	}
	s, err := NewSession(e, WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := map[string]any{
		"id":       "p1",
		"title":    "Hello",
		"views":    42,
		"featured": true,
		"status":   "live",
		"tags":     []any{"x", "y"},
		"block":    map[string]any{"_variant": "image", "src": "b.png"},
	}
	if diff := cmp.Diff(want, e.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if got := s.Edits(); got != 7 {
		t.Fatalf("edits = %d, want 7", got)
	}
	if driver.inputPos != len(driver.inputs) {
		t.Fatalf("inputs consumed = %d, want %d", driver.inputPos, len(driver.inputs))
	}
	if driver.infoMessages[0] != "! This field is required." {
		t.Fatalf("first info = %q", driver.infoMessages[0])
	}
	if !e.IsValid() {
		t.Fatalf("expected editor to be valid")
	}
}

func TestSession_GivesUpAfterMaxAttempts(t *testing.T) {
	e, err := editor.New(map[string]any{"title": ""}, []*model.FieldConfig{
		{Key: "title", Type: model.FieldTypeText, Validation: rules.Flat(rules.Config{Type: rules.TypeRequire})},
	})
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	driver := &stubDriver{inputs: []string{"", ""}}
	s, err := NewSession(e, WithPromptDriver(driver), WithMaxAttempts(2))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if e.IsValid() {
		t.Fatalf("expected editor to stay invalid")
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("info messages = %v", driver.infoMessages)
	}
}

type abortingDriver struct{ stubDriver }

func (a *abortingDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func TestSession_PropagatesAbort(t *testing.T) {
	e, err := editor.New(map[string]any{"title": "x"}, nil)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	s, err := NewSession(e, WithPromptDriver(&abortingDriver{}))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := s.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestNewSession_RequiresEditor(t *testing.T) {
	if _, err := NewSession(nil); !errors.Is(err, ErrNoEditor) {
		t.Fatalf("expected ErrNoEditor, got %v", err)
	}
}

func TestParseNumber(t *testing.T) {
	cases := map[string]any{
		"42":   42,
		"4.5":  4.5,
		" ":    nil,
		"four": "four",
	}
	for in, want := range cases {
		if got := parseNumber(in); got != want {
			t.Errorf("parseNumber(%q) = %v, want %v", in, got, want)
		}
	}
}
