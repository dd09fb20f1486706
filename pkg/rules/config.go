package rules

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Config is the declarative form of a rule. Only the attributes relevant to
// Type are read.
type Config struct {
	Type    string `json:"type" yaml:"type"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// length, range
	Min        *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max        *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MinMessage string   `json:"minMessage,omitempty" yaml:"minMessage,omitempty"`
	MaxMessage string   `json:"maxMessage,omitempty" yaml:"maxMessage,omitempty"`

	// match
	Allow         []any    `json:"allow,omitempty" yaml:"allow,omitempty"`
	Deny          []any    `json:"deny,omitempty" yaml:"deny,omitempty"`
	AllowPatterns []string `json:"allowPatterns,omitempty" yaml:"allowPatterns,omitempty"`
	DenyPatterns  []string `json:"denyPatterns,omitempty" yaml:"denyPatterns,omitempty"`
	AllowMessage  string   `json:"allowMessage,omitempty" yaml:"allowMessage,omitempty"`
	DenyMessage   string   `json:"denyMessage,omitempty" yaml:"denyMessage,omitempty"`

	// pattern
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// require: extra strings treated as empty
	Alternatives []string `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`

	// schema
	Schema map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Float is a convenience for populating Min/Max.
func Float(f float64) *float64 { return &f }

// Spec is the validation attribute of a field config. It decodes from either
// a list of rule configs (all in DefaultZone) or a mapping of zone key to
// list, in JSON and YAML.
type Spec struct {
	zones map[string][]Config
	order []string
}

// Flat builds a Spec holding cfgs in the default zone.
func Flat(cfgs ...Config) *Spec {
	s := &Spec{}
	for _, cfg := range cfgs {
		s.Add(DefaultZone, cfg)
	}
	return s
}

// Add appends cfg to zone.
func (s *Spec) Add(zone string, cfg Config) {
	if zone == "" {
		zone = DefaultZone
	}
	if s.zones == nil {
		s.zones = make(map[string][]Config)
	}
	if _, ok := s.zones[zone]; !ok {
		s.order = append(s.order, zone)
	}
	s.zones[zone] = append(s.zones[zone], cfg)
}

// Zones lists zone keys in declaration order.
func (s *Spec) Zones() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Zone returns the configs declared for zone.
func (s *Spec) Zone(zone string) []Config {
	if s == nil {
		return nil
	}
	return s.zones[zone]
}

// IsZero reports whether the spec declares no rules. yaml.v3 consults it for
// omitempty.
func (s *Spec) IsZero() bool {
	if s == nil {
		return true
	}
	for _, cfgs := range s.zones {
		if len(cfgs) > 0 {
			return false
		}
	}
	return true
}

func (s *Spec) isFlat() bool {
	return len(s.order) == 0 || (len(s.order) == 1 && s.order[0] == DefaultZone)
}

func (s *Spec) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	*s = Spec{}
	switch {
	case trimmed == "" || trimmed == "null":
		return nil
	case strings.HasPrefix(trimmed, "["):
		var list []Config
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("rules: decode rule list: %w", err)
		}
		for _, cfg := range list {
			s.Add(DefaultZone, cfg)
		}
		return nil
	case strings.HasPrefix(trimmed, "{"):
		var zoned map[string][]Config
		if err := json.Unmarshal(data, &zoned); err != nil {
			return fmt.Errorf("rules: decode zoned rules: %w", err)
		}
		keys := make([]string, 0, len(zoned))
		for key := range zoned {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, cfg := range zoned[key] {
				s.Add(key, cfg)
			}
		}
		return nil
	default:
		return fmt.Errorf("rules: validation must be a list or a mapping")
	}
}

func (s Spec) MarshalJSON() ([]byte, error) {
	if s.isFlat() {
		list := s.zones[DefaultZone]
		if list == nil {
			list = []Config{}
		}
		return json.Marshal(list)
	}
	return json.Marshal(s.zones)
}

func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	*s = Spec{}
	switch node.Kind {
	case yaml.SequenceNode:
		var list []Config
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("rules: decode rule list: %w", err)
		}
		for _, cfg := range list {
			s.Add(DefaultZone, cfg)
		}
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			zone := node.Content[i].Value
			var list []Config
			if err := node.Content[i+1].Decode(&list); err != nil {
				return fmt.Errorf("rules: decode zone %q: %w", zone, err)
			}
			for _, cfg := range list {
				s.Add(zone, cfg)
			}
		}
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
	}
	return fmt.Errorf("rules: validation must be a list or a mapping (line %d)", node.Line)
}

func (s Spec) MarshalYAML() (any, error) {
	if s.isFlat() {
		return s.zones[DefaultZone], nil
	}
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, zone := range s.order {
		var child yaml.Node
		if err := child.Encode(s.zones[zone]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: zone}, &child)
	}
	return node, nil
}
