package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFullKey(t *testing.T) {
	cases := []struct {
		parent, key, want string
	}{
		{"", "title", "title"},
		{"items.0", "title", "items.0.title"},
		{"items.0", "", "items.0"},
		{"", "", ""},
	}
	for _, tc := range cases {
		cfg := &FieldConfig{Key: tc.key, ParentKey: tc.parent}
		if got := cfg.FullKey(); got != tc.want {
			t.Errorf("FullKey(%q, %q) = %q, want %q", tc.parent, tc.key, got, tc.want)
		}
	}
}

func TestClone_IsDeep(t *testing.T) {
	src := &FieldConfig{
		Key:  "body",
		Type: FieldTypeVariant,
		Variants: map[string]*VariantConfig{
			"image": {Label: "Image", Fields: []*FieldConfig{{Key: "src", Type: FieldTypeText}}},
		},
		Fields: []*FieldConfig{{Key: "x", Type: FieldTypeText}},
	}

	cloned := src.Clone()
	cloned.Variants["image"].Fields[0].Key = "url"
	cloned.Fields[0].Label = "X"

	if src.Variants["image"].Fields[0].Key != "src" || src.Fields[0].Label != "" {
		t.Fatalf("clone shares nested configs with source")
	}
	if diff := cmp.Diff(src.Variants["image"].Label, cloned.Variants["image"].Label); diff != "" {
		t.Fatalf("label mismatch (-want +got):\n%s", diff)
	}
}
