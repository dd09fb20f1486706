package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"
)

func TestSpec_DecodeFlatAndZoned(t *testing.T) {
	var flat Spec
	require.NoError(t, json.Unmarshal([]byte(`[{"type":"require"},{"type":"length","max":3}]`), &flat))
	assert.Equal(t, []string{DefaultZone}, flat.Zones())
	assert.Len(t, flat.Zone(DefaultZone), 2)

	var zoned Spec
	require.NoError(t, json.Unmarshal([]byte(`{"fr":[{"type":"require"}],"en":[{"type":"require"}]}`), &zoned))
	assert.Equal(t, []string{"en", "fr"}, zoned.Zones())

	var fromYAML Spec
	src := "fr:\n  - type: require\nen:\n  - type: length\n    min: 2\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &fromYAML))
	assert.Equal(t, []string{"fr", "en"}, fromYAML.Zones())
	assert.Equal(t, 2.0, *fromYAML.Zone("en")[0].Min)

	var bad Spec
	assert.Error(t, json.Unmarshal([]byte(`"require"`), &bad))
}

func TestSpec_RoundTrip(t *testing.T) {
	spec := Flat(Config{Type: TypeRequire})
	data, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"require"}]`, string(data))

	out, err := yaml.Marshal(struct {
		Validation *Spec `yaml:"validation,omitempty"`
	}{Validation: &Spec{}})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(out))
}

func TestNewRuleSet_SkipsUnknownRules(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	spec := Flat(
		Config{Type: TypeRequire},
		Config{Type: "bogus"},
		Config{Type: TypeLength, Max: Float(2)},
	)

	set := NewRuleSet(spec, NewRegistry(), zap.New(core))

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.IsRequired(DefaultZone))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "bogus", logs.All()[0].ContextMap()["type"])
}

func TestRuleSet_GatingIsConjunction(t *testing.T) {
	set := &RuleSet{}
	set.Add(DefaultZone, build(t, Config{Type: TypeLength, Max: Float(3)}))
	set.Add(DefaultZone, build(t, Config{Type: TypeRange, Max: Float(2)}))

	assert.True(t, set.AllowAdd([]any{"a"}))
	assert.False(t, set.AllowAdd([]any{"a", "b"}), "range denies even though length allows")
	assert.True(t, set.AllowRemove([]any{}))
}

func TestZoneValue(t *testing.T) {
	v := map[string]any{"en": "hello", "fr": ""}
	assert.Equal(t, v, ZoneValue(v, DefaultZone))
	assert.Equal(t, "hello", ZoneValue(v, "en"))
	assert.Nil(t, ZoneValue(v, "de"))
}
