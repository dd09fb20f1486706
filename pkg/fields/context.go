package fields

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/autofields"
	"github.com/goliatone/go-formstate/pkg/rules"
)

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the logger used for recoverable configuration errors.
func WithLogger(logger *zap.Logger) ContextOption {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTypes sets the field type registry.
func WithTypes(types *Registry) ContextOption {
	return func(c *Context) {
		if types != nil {
			c.types = types
		}
	}
}

// WithRules sets the rule registry.
func WithRules(reg *rules.Registry) ContextOption {
	return func(c *Context) {
		if reg != nil {
			c.rules = reg
		}
	}
}

// WithGuesser sets the guesser used by lists without item configuration.
func WithGuesser(g *autofields.Guesser) ContextOption {
	return func(c *Context) {
		if g != nil {
			c.guesser = g
		}
	}
}

// WithRenderHook registers the callback invoked whenever a field requests a
// render pass.
func WithRenderHook(fn func()) ContextOption {
	return func(c *Context) {
		c.onRender = fn
	}
}

// Context carries the editor level collaborators shared by every field of one
// tree: registries, the logger, the render request callback, the structural
// unlock subscription and the force-validate flag.
type Context struct {
	logger        *zap.Logger
	types         *Registry
	rules         *rules.Registry
	guesser       *autofields.Guesser
	onRender      func()
	unlockers     []func()
	forceValidate bool
}

// NewContext constructs a Context with default registries and a no-op
// logger.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		logger:  zap.NewNop(),
		types:   NewRegistry(),
		rules:   rules.NewRegistry(),
		guesser: autofields.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Logger returns the context logger.
func (c *Context) Logger() *zap.Logger { return c.logger }

// Types returns the field type registry.
func (c *Context) Types() *Registry { return c.types }

// Rules returns the rule registry.
func (c *Context) Rules() *rules.Registry { return c.rules }

// Guesser returns the configuration guesser.
func (c *Context) Guesser() *autofields.Guesser { return c.guesser }

// RequestRender asks the owner for a render pass. Without a hook it is a
// no-op.
func (c *Context) RequestRender() {
	if c.onRender != nil {
		c.onRender()
	}
}

// OnUnlock subscribes fn to the next structural unlock signal. Handlers run
// once.
func (c *Context) OnUnlock(fn func()) {
	if fn != nil {
		c.unlockers = append(c.unlockers, fn)
	}
}

// PendingUnlocks counts handlers waiting for the unlock signal.
func (c *Context) PendingUnlocks() int { return len(c.unlockers) }

// FireUnlock runs every pending unlock handler in subscription order and
// clears the queue. All handlers complete before FireUnlock returns, so no
// render can observe a partially unlocked set of items.
func (c *Context) FireUnlock() int {
	handlers := c.unlockers
	c.unlockers = nil
	for _, fn := range handlers {
		fn()
	}
	return len(handlers)
}

// SetForceValidate makes every field validate regardless of focus history,
// typically after a submit attempt.
func (c *Context) SetForceValidate(force bool) { c.forceValidate = force }

// ForceValidate reports the force-validate flag.
func (c *Context) ForceValidate() bool { return c.forceValidate }
