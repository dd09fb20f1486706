package openapi

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/rules"
)

const petstore = `
openapi: 3.0.3
info:
  title: Pages
  version: 1.0.0
paths: {}
components:
  schemas:
    Page:
      type: object
      required: [title]
      properties:
        title:
          type: string
          title: Page title
          minLength: 3
          maxLength: 60
        summary:
          type: string
          description: Shown in listings
          maxLength: 400
        published:
          type: string
          format: date
        views:
          type: integer
          minimum: 0
        featured:
          type: boolean
        status:
          type: string
          enum: [draft, live]
        slug:
          type: string
          pattern: "^[a-z-]+$"
        author:
          type: object
          properties:
            name:
              type: string
        tags:
          type: array
          maxItems: 5
          items:
            type: string
`

func loadPages(t *testing.T) []*model.FieldConfig {
	t.Helper()
	cfgs, err := FieldsFromData(context.Background(), []byte(petstore), "Page")
	require.NoError(t, err)
	return cfgs
}

func TestFieldsFromSchema_TypesInSortedOrder(t *testing.T) {
	cfgs := loadPages(t)

	var keys []string
	types := map[string]model.FieldType{}
	for _, cfg := range cfgs {
		keys = append(keys, cfg.Key)
		types[cfg.Key] = cfg.Type
	}
	wantKeys := []string{"author", "featured", "published", "slug", "status", "summary", "tags", "title", "views"}
	if diff := cmp.Diff(wantKeys, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	want := map[string]model.FieldType{
		"author":    model.FieldTypeGroup,
		"featured":  model.FieldTypeCheckbox,
		"published": model.FieldTypeDate,
		"slug":      model.FieldTypeText,
		"status":    model.FieldTypeText,
		"summary":   model.FieldTypeTextarea,
		"tags":      model.FieldTypeList,
		"title":     model.FieldTypeText,
		"views":     model.FieldTypeNumber,
	}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsFromSchema_Rules(t *testing.T) {
	byKey := map[string]*model.FieldConfig{}
	for _, cfg := range loadPages(t) {
		byKey[cfg.Key] = cfg
	}

	title := byKey["title"]
	assert.Equal(t, "Page title", title.Label)
	checks := title.Validation.Zone(rules.DefaultZone)
	require.Len(t, checks, 2)
	assert.Equal(t, rules.TypeRequire, checks[0].Type)
	assert.Equal(t, rules.TypeLength, checks[1].Type)
	assert.Equal(t, 3.0, *checks[1].Min)
	assert.Equal(t, 60.0, *checks[1].Max)

	assert.Equal(t, "Shown in listings", byKey["summary"].Help)
	assert.Equal(t, rules.TypeRange, byKey["views"].Validation.Zone(rules.DefaultZone)[0].Type)
	assert.Equal(t, []any{"draft", "live"}, byKey["status"].Validation.Zone(rules.DefaultZone)[0].Allow)
	assert.Equal(t, "^[a-z-]+$", byKey["slug"].Validation.Zone(rules.DefaultZone)[0].Pattern)
	assert.Nil(t, byKey["featured"].Validation)

	tags := byKey["tags"]
	require.Len(t, tags.Fields, 1)
	assert.Equal(t, "", tags.Fields[0].Key)
	assert.Equal(t, 5.0, *tags.Validation.Zone(rules.DefaultZone)[0].Max)

	require.Len(t, byKey["author"].Fields, 1)
	assert.Equal(t, "name", byKey["author"].Fields[0].Key)
}

func TestFieldsFromSchema_Builds(t *testing.T) {
	for _, cfg := range loadPages(t) {
		if cfg.Validation.IsZero() {
			continue
		}
		set := rules.NewRuleSet(cfg.Validation, rules.NewRegistry(), nil)
		assert.Equal(t, len(cfg.Validation.Zone(rules.DefaultZone)), set.Len(), cfg.Key)
	}
}

func TestFieldsFromSchema_NotFound(t *testing.T) {
	doc, err := Load(context.Background(), []byte(petstore))
	require.NoError(t, err)

	assert.Equal(t, []string{"Page"}, SchemaNames(doc))
	_, err = FieldsFromSchema(doc, "Missing")
	assert.True(t, errors.Is(err, ErrSchemaNotFound))
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{"api/openapi.yaml": {Data: []byte(petstore)}}
	doc, err := LoadFS(context.Background(), fsys, "api/openapi.yaml")
	require.NoError(t, err)
	assert.Len(t, SchemaNames(doc), 1)

	_, err = Load(context.Background(), nil)
	assert.Error(t, err)
}

func TestTextareaThresholdOption(t *testing.T) {
	doc, err := Load(context.Background(), []byte(petstore))
	require.NoError(t, err)
	cfgs, err := FieldsFromSchema(doc, "Page", WithTextareaThreshold(500))
	require.NoError(t, err)
	for _, cfg := range cfgs {
		if cfg.Key == "summary" {
			assert.Equal(t, model.FieldTypeText, cfg.Type)
		}
	}
}
