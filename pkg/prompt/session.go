package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/autofields"
	"github.com/goliatone/go-formstate/pkg/editor"
	"github.com/goliatone/go-formstate/pkg/fields"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/rules"
)

// Session walks an editor's field tree and prompts for every editable
// field. Edits go straight into the editor; callers commit or write the
// resulting value.
type Session struct {
	editor      *editor.Editor
	driver      PromptDriver
	logger      *zap.Logger
	theme       Theme
	maxAttempts int
	edits       int
}

// NewSession prepares a session over e. Without WithPromptDriver the session
// prompts on the terminal through survey.
func NewSession(e *editor.Editor, opts ...Option) (*Session, error) {
	if e == nil {
		return nil, ErrNoEditor
	}
	s := &Session{
		editor:      e,
		logger:      zap.NewNop(),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Edits counts the fields whose value the session changed.
func (s *Session) Edits() int { return s.edits }

// Run prompts every top level field in order.
func (s *Session) Run(ctx context.Context) error {
	for _, field := range s.editor.Root().Fields() {
		if err := s.visit(ctx, field); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) visit(ctx context.Context, field fields.Field) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if field.Type() == model.FieldTypeHidden || field.IsLocked() {
		return nil
	}
	if !field.IsDataFormatValid() {
		return s.info(ctx, fmt.Sprintf("%s: %s", label(field), fields.CannotEditMessage))
	}
	switch typed := field.(type) {
	case *fields.Group:
		return s.visitGroup(ctx, typed)
	case *fields.List:
		return s.visitList(ctx, typed)
	case *fields.Variant:
		return s.visitVariant(ctx, typed)
	default:
		return s.visitLeaf(ctx, field)
	}
}

func (s *Session) visitAll(ctx context.Context, fs *fields.Fields) error {
	if fs == nil {
		return nil
	}
	for _, field := range fs.Fields() {
		if err := s.visit(ctx, field); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) visitGroup(ctx context.Context, group *fields.Group) error {
	if err := group.Expand(); err != nil {
		return s.info(ctx, fmt.Sprintf("%s: %v", label(group), err))
	}
	if err := s.info(ctx, label(group)); err != nil {
		return err
	}
	return s.visitAll(ctx, group.Nested())
}

func (s *Session) visitVariant(ctx context.Context, variant *fields.Variant) error {
	names := variant.Variants()
	if len(names) > 0 {
		options := make([]string, len(names))
		for i, name := range names {
			options[i] = variantLabel(variant.Config(), name)
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      label(variant),
			Options:      options,
			DefaultIndex: indexOf(names, variant.Variant()),
			Help:         variant.Config().Help,
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(names) && names[idx] != variant.Variant() {
			if err := variant.SetVariant(names[idx]); err != nil {
				if !errors.Is(err, fields.ErrVariantDirty) {
					return err
				}
				if err := s.info(ctx, s.theme.ErrorPrefix+err.Error()); err != nil {
					return err
				}
			} else {
				s.edits++
			}
		}
	}
	return s.visitAll(ctx, variant.Nested())
}

func (s *Session) visitList(ctx context.Context, list *fields.List) error {
	for i, item := range list.Items() {
		if err := list.Expand(i); err != nil {
			return err
		}
		if err := s.info(ctx, fmt.Sprintf("%s #%d", label(list), i+1)); err != nil {
			return err
		}
		if err := s.visitAll(ctx, item.Fields()); err != nil {
			return err
		}
	}
	for list.AllowAdd() {
		more, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add %s item?", label(list)),
		})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		item, err := list.Add()
		if err != nil {
			return err
		}
		s.edits++
		if err := s.visitAll(ctx, item.Fields()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) visitLeaf(ctx context.Context, field fields.Field) error {
	for attempt := 1; ; attempt++ {
		answer, changed, err := s.ask(ctx, field)
		if err != nil {
			return err
		}
		if changed {
			field.SetValue(answer)
			s.edits++
		}
		field.Blur("")
		if field.IsValid() {
			return nil
		}
		for _, result := range field.Validation().All() {
			if err := s.info(ctx, s.theme.ErrorPrefix+result.Message); err != nil {
				return err
			}
		}
		if attempt >= s.maxAttempts {
			s.logger.Warn("leaving invalid field",
				zap.String("key", field.FullKey()),
				zap.Int("attempts", attempt),
			)
			return nil
		}
	}
}

// ask prompts for field and reports the new value and whether it differs
// from the current one.
func (s *Session) ask(ctx context.Context, field fields.Field) (any, bool, error) {
	current := field.Value()
	message := label(field)
	help := field.Config().Help

	if field.Type() == model.FieldTypeCheckbox {
		def, _ := current.(bool)
		out, err := s.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def, Help: help})
		if err != nil {
			return nil, false, err
		}
		return out, out != def, nil
	}

	def := display(current)
	if options := allowList(field.Config()); len(options) > 0 {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: indexOf(options, def),
			Help:         help,
		})
		if err != nil {
			return nil, false, err
		}
		if idx < 0 || idx >= len(options) || options[idx] == def {
			return current, false, nil
		}
		return options[idx], true, nil
	}

	var (
		out string
		err error
	)
	if field.Type() == model.FieldTypeTextarea {
		out, err = s.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: def, Help: help})
	} else {
		out, err = s.driver.Input(ctx, InputConfig{Message: message, Default: def, Help: help})
	}
	if err != nil {
		return nil, false, err
	}
	if out == def {
		return current, false, nil
	}
	if field.Type() == model.FieldTypeNumber {
		return parseNumber(out), true, nil
	}
	return out, true, nil
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func label(field fields.Field) string {
	if l := field.Config().Label; l != "" {
		return l
	}
	if key := field.Key(); key != "" {
		return autofields.Label(key)
	}
	return string(field.Type())
}

func variantLabel(cfg *model.FieldConfig, name string) string {
	if v := cfg.Variants[name]; v != nil && v.Label != "" {
		return v.Label
	}
	return name
}

// allowList returns the literal options of a match rule in the default zone.
func allowList(cfg *model.FieldConfig) []string {
	if cfg.Validation.IsZero() {
		return nil
	}
	for _, check := range cfg.Validation.Zone(rules.DefaultZone) {
		if !strings.EqualFold(check.Type, rules.TypeMatch) || len(check.Allow) == 0 {
			continue
		}
		options := make([]string, 0, len(check.Allow))
		for _, allowed := range check.Allow {
			options = append(options, display(allowed))
		}
		return options
	}
	return nil
}

func display(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}

func parseNumber(s string) any {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return s
}
