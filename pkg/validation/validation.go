// Package validation holds the per-field outcome of running a rule set.
package validation

import (
	"github.com/goliatone/go-formstate/pkg/rules"
)

// AnyZone selects every zone in HasAnyResults.
const AnyZone = ""

// Result is one failing rule.
type Result struct {
	Message string      `json:"message"`
	Level   rules.Level `json:"level"`
}

// Validation stores the results of each zone of one field. A field keeps a
// Validation only for the duration of one reconciliation pass.
type Validation struct {
	rules   *rules.RuleSet
	results map[string][]Result
	order   []string
}

// New prepares an empty Validation bound to set.
func New(set *rules.RuleSet) *Validation {
	return &Validation{rules: set, results: make(map[string][]Result)}
}

// Validate runs every rule of zone against value, in order, replacing any
// previous results of that zone. Every failing rule contributes a result.
func (v *Validation) Validate(value any, zone string) []Result {
	if zone == "" {
		zone = rules.DefaultZone
	}
	var results []Result
	for _, rule := range v.rules.Rules(zone) {
		if msg := rule.Validate(value); msg != "" {
			results = append(results, Result{Message: msg, Level: rule.Level()})
		}
	}
	if _, seen := v.results[zone]; !seen {
		v.order = append(v.order, zone)
	}
	v.results[zone] = results
	return results
}

// Results returns the results recorded for zone.
func (v *Validation) Results(zone string) []Result {
	if v == nil {
		return nil
	}
	return v.results[zone]
}

// All returns the results of every zone in validation order.
func (v *Validation) All() []Result {
	if v == nil {
		return nil
	}
	var out []Result
	for _, zone := range v.order {
		out = append(out, v.results[zone]...)
	}
	return out
}

// Zones lists the zones validated so far.
func (v *Validation) Zones() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.order...)
}

// HasAnyResults reports whether zone (or every zone for AnyZone) holds a
// result at maxLevel or below. Checking at LevelWarning counts info and
// warning results; checking at LevelInfo counts info results only.
func (v *Validation) HasAnyResults(zone string, maxLevel rules.Level) bool {
	if v == nil {
		return false
	}
	check := func(results []Result) bool {
		for _, result := range results {
			if result.Level <= maxLevel {
				return true
			}
		}
		return false
	}
	if zone != AnyZone {
		return check(v.results[zone])
	}
	for _, results := range v.results {
		if check(results) {
			return true
		}
	}
	return false
}
