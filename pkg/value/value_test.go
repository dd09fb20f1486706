package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEqual_IgnoresKeyOrder(t *testing.T) {
	a := map[string]any{"a": 1, "b": []any{"x", map[string]any{"k": true, "j": nil}}}
	b := map[string]any{"b": []any{"x", map[string]any{"j": nil, "k": true}}, "a": 1.0}

	if !Equal(a, b) {
		t.Fatalf("expected maps to compare equal: %s vs %s", Canonical(a), Canonical(b))
	}
	if Equal([]any{"a", "b"}, []any{"b", "a"}) {
		t.Fatalf("expected slice order to matter")
	}
	if Equal(nil, "") {
		t.Fatalf("expected nil and empty string to differ")
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	src := map[string]any{"list": []any{map[string]any{"name": "a"}}}
	cloned := Clone(src).(map[string]any)
	cloned["list"].([]any)[0].(map[string]any)["name"] = "b"

	if got := src["list"].([]any)[0].(map[string]any)["name"]; got != "a" {
		t.Fatalf("clone aliased source, got %v", got)
	}
}

func TestIsEmpty(t *testing.T) {
	cases := map[string]struct {
		in   any
		want bool
	}{
		"nil":         {nil, true},
		"blank":       {"  \t", true},
		"string":      {"x", false},
		"empty slice": {[]any{}, true},
		"slice":       {[]any{"a"}, false},
		"empty map":   {map[string]any{}, true},
		"typed slice": {[]string{}, true},
		"zero":        {0, false},
		"false":       {false, false},
	}
	for name, tc := range cases {
		if got := IsEmpty(tc.in); got != tc.want {
			t.Errorf("%s: IsEmpty(%#v) = %v, want %v", name, tc.in, got, tc.want)
		}
	}
}

func TestGetSet_DottedPaths(t *testing.T) {
	root := map[string]any{
		"meta": map[string]any{"title": "x"},
		"tags": []any{"a", map[string]any{"name": "b"}},
	}

	if got, ok := Get(root, "meta.title"); !ok || got != "x" {
		t.Fatalf("get meta.title = %v (ok=%v)", got, ok)
	}
	if got, ok := Get(root, "tags.1.name"); !ok || got != "b" {
		t.Fatalf("get tags.1.name = %v (ok=%v)", got, ok)
	}
	if _, ok := Get(root, "missing.path"); ok {
		t.Fatalf("expected missing path to fail")
	}
	if got, ok := Get(root, ""); !ok || !Equal(got, root) {
		t.Fatalf("empty path should resolve to root")
	}

	if err := Set(root, "meta.author.name", "ann"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := Set(root, "tags.0", "z"); err != nil {
		t.Fatalf("set index: %v", err)
	}
	want := map[string]any{
		"meta": map[string]any{"title": "x", "author": map[string]any{"name": "ann"}},
		"tags": []any{"z", map[string]any{"name": "b"}},
	}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("root mismatch (-want +got):\n%s", diff)
	}
	if err := Set(root, "tags.9", "x"); err == nil {
		t.Fatalf("expected out of range error")
	}
}
