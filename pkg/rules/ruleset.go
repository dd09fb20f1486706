package rules

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/value"
)

// DefaultZone holds the rules of simple fields, which validate their whole
// value.
const DefaultZone = "default"

// RuleSet is the ordered, zone partitioned collection of rules attached to
// one field.
type RuleSet struct {
	zones map[string][]Rule
	order []string
}

// NewRuleSet builds every rule declared by spec. Rules that cannot be built
// are logged and skipped; the remaining rules still apply.
func NewRuleSet(spec *Spec, reg *Registry, logger *zap.Logger) *RuleSet {
	set := &RuleSet{zones: make(map[string][]Rule)}
	if spec.IsZero() {
		return set
	}
	if reg == nil {
		reg = NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, zone := range spec.Zones() {
		for _, cfg := range spec.Zone(zone) {
			rule, err := reg.Build(cfg)
			if err != nil {
				logger.Error("skipping validation rule",
					zap.String("zone", zone),
					zap.String("type", cfg.Type),
					zap.Error(err),
				)
				continue
			}
			set.Add(zone, rule)
		}
	}
	return set
}

// Add appends rule to zone.
func (s *RuleSet) Add(zone string, rule Rule) {
	if rule == nil {
		return
	}
	if zone == "" {
		zone = DefaultZone
	}
	if s.zones == nil {
		s.zones = make(map[string][]Rule)
	}
	if _, ok := s.zones[zone]; !ok {
		s.order = append(s.order, zone)
	}
	s.zones[zone] = append(s.zones[zone], rule)
}

// Zones lists zones holding at least one rule, in declaration order.
func (s *RuleSet) Zones() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Rules returns the rules of zone in order.
func (s *RuleSet) Rules(zone string) []Rule {
	if s == nil {
		return nil
	}
	return s.zones[zone]
}

// Len counts rules across zones.
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, rules := range s.zones {
		n += len(rules)
	}
	return n
}

// IsRequired reports whether any rule of zone makes it mandatory.
func (s *RuleSet) IsRequired(zone string) bool {
	for _, rule := range s.Rules(zone) {
		if rule.IsRequired() {
			return true
		}
	}
	return false
}

// AllowAdd reports whether every rule permits growing v.
func (s *RuleSet) AllowAdd(v any) bool {
	if s == nil {
		return true
	}
	for _, zone := range s.order {
		zv := ZoneValue(v, zone)
		for _, rule := range s.zones[zone] {
			if !rule.AllowAdd(zv) {
				return false
			}
		}
	}
	return true
}

// AllowRemove reports whether every rule permits shrinking v.
func (s *RuleSet) AllowRemove(v any) bool {
	if s == nil {
		return true
	}
	for _, zone := range s.order {
		zv := ZoneValue(v, zone)
		for _, rule := range s.zones[zone] {
			if !rule.AllowRemove(zv) {
				return false
			}
		}
	}
	return true
}

// ZoneValue selects the part of v validated by zone: the whole value for the
// default zone, the value at the zone key otherwise.
func ZoneValue(v any, zone string) any {
	if zone == "" || zone == DefaultZone {
		return v
	}
	sub, _ := value.Get(v, zone)
	return sub
}
