package editor

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/autofields"
	"github.com/goliatone/go-formstate/pkg/fields"
	"github.com/goliatone/go-formstate/pkg/rules"
)

// DefaultMaxPasses bounds the render loop.
const DefaultMaxPasses = 8

// Option configures an Editor.
type Option func(*config)

type config struct {
	logger    *zap.Logger
	types     *fields.Registry
	rules     *rules.Registry
	guesser   *autofields.Guesser
	registry  prometheus.Registerer
	maxPasses int
	onRender  []func([]fields.Node)
}

func defaultConfig() config {
	return config{
		logger:    zap.NewNop(),
		maxPasses: DefaultMaxPasses,
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTypes overrides the field type registry.
func WithTypes(reg *fields.Registry) Option {
	return func(c *config) {
		c.types = reg
	}
}

// WithRules overrides the validation rule registry.
func WithRules(reg *rules.Registry) Option {
	return func(c *config) {
		c.rules = reg
	}
}

// WithGuesser sets the guesser used when no configuration is supplied.
func WithGuesser(g *autofields.Guesser) Option {
	return func(c *config) {
		c.guesser = g
	}
}

// WithMetrics registers render metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// WithMaxPasses bounds how many reconciliation passes one render may run.
func WithMaxPasses(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxPasses = n
		}
	}
}

// WithRenderListener registers fn to receive the nodes of every render.
func WithRenderListener(fn func([]fields.Node)) Option {
	return func(c *config) {
		if fn != nil {
			c.onRender = append(c.onRender, fn)
		}
	}
}
