package fields

import (
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/value"
)

// Group edits a nested object through its own field collection. The nested
// collection is built on first expansion; until then the group reports
// clean and valid.
type Group struct {
	Base
	nested   *Fields
	expanded bool
}

// NewGroup constructs a group field for cfg.
func NewGroup(ctx *Context, cfg *model.FieldConfig) *Group {
	g := &Group{}
	g.init(g, ctx, cfg)
	g.expanded = g.cfg.Expanded
	return g
}

// Nested returns the nested collection, nil before the first expansion.
func (g *Group) Nested() *Fields { return g.nested }

// IsExpanded reports whether the group is open.
func (g *Group) IsExpanded() bool { return g.expanded }

// Expand opens the group, instantiating its nested fields on first use.
func (g *Group) Expand() error {
	if !g.IsDataFormatValid() {
		return ErrDataFormat
	}
	g.ensureNested()
	if !g.expanded {
		g.expanded = true
		g.ctx.RequestRender()
	}
	return nil
}

// Collapse closes the group. Nested state is kept.
func (g *Group) Collapse() {
	if g.expanded {
		g.expanded = false
		g.ctx.RequestRender()
	}
}

func (g *Group) ensureNested() {
	if g.nested != nil {
		return
	}
	g.nested = NewFields(g.ctx, g.cfg.Fields, g.FullKey())
	if g.locked {
		g.nested.Lock()
	}
	g.nested.UpdateOriginal(g.original, true)
}

func (g *Group) UpdateOriginal(data any) {
	wasClean, ok := g.beginUpdate(data)
	if !ok {
		return
	}
	if g.IsDataFormatValid() {
		if g.expanded {
			g.ensureNested()
		}
		if g.nested != nil {
			g.nested.UpdateOriginal(g.original, true)
		}
	}
	g.finishUpdate(wasClean)
}

// IsDataFormatValid requires the group's data to be an object or absent.
func (g *Group) IsDataFormatValid() bool {
	if g.original == nil {
		return true
	}
	_, ok := value.AsMap(g.original)
	return ok
}

func (g *Group) Value() any {
	if g.nested == nil || !g.IsDataFormatValid() {
		return g.original
	}
	nv := g.nested.Value()
	if g.nested.IsSimple() {
		return nv
	}
	out, ok := value.AsMap(value.Clone(g.original))
	if !ok || out == nil {
		out = make(map[string]any)
	}
	if m, ok := value.AsMap(nv); ok {
		for k, v := range m {
			out[k] = v
		}
	}
	if len(out) == 0 && g.original == nil {
		return nil
	}
	return out
}

func (g *Group) SetValue(v any) {
	g.ensureNested()
	g.nested.SetValue(v)
	g.ctx.RequestRender()
}

func (g *Group) IsClean() bool {
	if g.locked {
		return false
	}
	if g.nested == nil || !g.IsDataFormatValid() {
		return true
	}
	return g.nested.IsClean()
}

func (g *Group) IsValid() bool {
	if !g.Base.IsValid() {
		return false
	}
	return g.nested == nil || g.nested.IsValid()
}

func (g *Group) Lock() {
	g.Base.Lock()
	if g.nested != nil {
		g.nested.Lock()
	}
}

func (g *Group) Unlock() {
	g.Base.Unlock()
	if g.nested != nil {
		g.nested.Unlock()
	}
}

func (g *Group) Node() Node {
	n := g.node()
	n.Expanded = g.expanded
	if g.expanded && g.nested != nil && g.IsDataFormatValid() {
		n.Children = g.nested.Nodes()
	}
	return n
}

func (g *Group) find(path string) Field {
	if !g.IsDataFormatValid() {
		return nil
	}
	g.ensureNested()
	return g.nested.Find(path)
}

func (g *Group) rekey() {
	if g.nested != nil {
		g.nested.setParentKey(g.FullKey())
	}
}
