package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/rules"
)

func mustRule(t *testing.T, cfg rules.Config) rules.Rule {
	t.Helper()
	rule, err := rules.NewRegistry().Build(cfg)
	if err != nil {
		t.Fatalf("build rule: %v", err)
	}
	return rule
}

func TestValidate_CollectsEveryFailure(t *testing.T) {
	set := &rules.RuleSet{}
	set.Add(rules.DefaultZone, mustRule(t, rules.Config{Type: rules.TypeLength, Min: rules.Float(5)}))
	set.Add(rules.DefaultZone, mustRule(t, rules.Config{Type: rules.TypePattern, Pattern: `^\d+$`, Level: "warning"}))

	v := New(set)
	got := v.Validate("abc", rules.DefaultZone)

	want := []Result{
		{Message: "Must contain at least 5 characters.", Level: rules.LevelError},
		{Message: "Invalid format.", Level: rules.LevelWarning},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}

	if again := v.Validate("12345", rules.DefaultZone); len(again) != 0 {
		t.Fatalf("expected zone results to be replaced, got %v", again)
	}
	if v.HasAnyResults(AnyZone, rules.LevelError) {
		t.Fatalf("expected no results after passing value")
	}
}

func TestHasAnyResults_LevelAggregation(t *testing.T) {
	set := &rules.RuleSet{}
	set.Add("en", mustRule(t, rules.Config{Type: rules.TypeRequire, Level: "info"}))
	set.Add("fr", mustRule(t, rules.Config{Type: rules.TypeRequire, Level: "warning"}))

	v := New(set)
	v.Validate(nil, "en")
	v.Validate(nil, "fr")

	if !v.HasAnyResults("en", rules.LevelWarning) {
		t.Fatalf("warning check must count info results")
	}
	if !v.HasAnyResults("fr", rules.LevelWarning) {
		t.Fatalf("warning check must count warning results")
	}
	if v.HasAnyResults("fr", rules.LevelInfo) {
		t.Fatalf("info check must not count warning results")
	}
	if !v.HasAnyResults(AnyZone, rules.LevelInfo) {
		t.Fatalf("any-zone info check should see the en result")
	}
	if v.HasAnyResults("de", rules.LevelError) {
		t.Fatalf("unknown zone holds no results")
	}
	if diff := cmp.Diff([]string{"en", "fr"}, v.Zones()); diff != "" {
		t.Fatalf("zones mismatch (-want +got):\n%s", diff)
	}
	if len(v.All()) != 2 {
		t.Fatalf("expected two results, got %v", v.All())
	}
}

func TestNilValidation(t *testing.T) {
	var v *Validation
	if v.HasAnyResults(AnyZone, rules.LevelError) {
		t.Fatalf("nil validation holds no results")
	}
	if v.Results(rules.DefaultZone) != nil {
		t.Fatalf("nil validation returns nil results")
	}
}
