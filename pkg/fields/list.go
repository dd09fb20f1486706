package fields

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/value"
)

// Item is one entry of a List. Its ID stays stable across reorders so a
// rendering layer can track it.
type Item struct {
	id       string
	fields   *Fields
	expanded bool
	seed     any
}

// ID returns the stable item identifier.
func (i *Item) ID() string { return i.id }

// Fields returns the item's field collection.
func (i *Item) Fields() *Fields { return i.fields }

// IsExpanded reports whether the item is open.
func (i *Item) IsExpanded() bool { return i.expanded }

// Value returns the item's current value.
func (i *Item) Value() any { return i.fields.Value() }

// List edits an array. Each element is an Item holding a fresh Fields
// collection built from the list's item configuration.
type List struct {
	Base
	items []*Item

	// shifted is set while item positions no longer line up with upstream
	// after a delete or sort. Items then reconcile against their own
	// snapshots until upstream matches the list again.
	shifted bool
}

// NewList constructs a list field for cfg.
func NewList(ctx *Context, cfg *model.FieldConfig) *List {
	l := &List{}
	l.normalize = normalizeList
	l.init(l, ctx, cfg)
	return l
}

func normalizeList(v any) any {
	if v == nil {
		return nil
	}
	if items, ok := value.AsSlice(v); ok {
		return value.Clone(items)
	}
	return value.Clone(v)
}

// Items returns the items in display order.
func (l *List) Items() []*Item { return append([]*Item(nil), l.items...) }

// Len counts the items.
func (l *List) Len() int { return len(l.items) }

// IsDataFormatValid requires the list's data to be an array or absent.
func (l *List) IsDataFormatValid() bool {
	if l.original == nil {
		return true
	}
	_, ok := value.AsSlice(l.original)
	return ok
}

func (l *List) originalItems() []any {
	items, _ := value.AsSlice(l.original)
	return items
}

// itemConfigs returns the item configuration, guessing it from the first
// upstream element when none was configured. A guessed configuration is
// stored so later items share it.
func (l *List) itemConfigs() []*model.FieldConfig {
	if len(l.cfg.Fields) > 0 {
		return l.cfg.Fields
	}
	var sample any = ""
	if items := l.originalItems(); len(items) > 0 {
		sample = items[0]
	}
	l.cfg.Fields = l.ctx.Guesser().Guess(sample)
	l.cfg.IsGuessed = true
	return l.cfg.Fields
}

func (l *List) itemKey(index int) string {
	return model.JoinKey(l.FullKey(), strconv.Itoa(index))
}

func (l *List) newItem(index int) *Item {
	return &Item{
		id:     uuid.NewString(),
		fields: NewFields(l.ctx, l.itemConfigs(), l.itemKey(index)),
	}
}

func (l *List) resize(n int) {
	for len(l.items) < n {
		l.items = append(l.items, l.newItem(len(l.items)))
	}
	if len(l.items) > n {
		l.items = l.items[:n]
	}
}

func (l *List) UpdateOriginal(data any) {
	wasClean, ok := l.beginUpdate(data)
	if !ok {
		return
	}
	if l.IsDataFormatValid() {
		upstream := l.originalItems()
		if l.shifted && l.matchesOriginal() {
			l.shifted = false
		}
		if wasClean {
			l.resize(len(upstream))
		}
		for i, item := range l.items {
			switch {
			case l.shifted:
				item.fields.UpdateOriginal(item.fields.Original(), true)
			case i < len(upstream):
				item.fields.UpdateOriginal(upstream[i], true)
			default:
				item.fields.UpdateOriginal(item.seed, true)
			}
		}
	}
	l.finishUpdate(wasClean)
}

func (l *List) Value() any {
	if !l.IsDataFormatValid() {
		return l.original
	}
	if len(l.items) == 0 {
		if l.original == nil {
			return nil
		}
		return []any{}
	}
	out := make([]any, 0, len(l.items))
	for _, item := range l.items {
		out = append(out, item.fields.Value())
	}
	return out
}

// SetValue replaces the items with one item per element of v.
func (l *List) SetValue(v any) {
	items, _ := value.AsSlice(v)
	start := len(l.items)
	l.resize(len(items))
	for i := start; i < len(l.items); i++ {
		l.items[i].seed = l.items[i].fields.GuessDefaultValue()
	}
	for i, item := range l.items {
		item.fields.SetValue(items[i])
	}
	l.ctx.RequestRender()
}

// IsClean requires the item count to match upstream and every item to be
// clean. After a delete or sort the item values must also equal upstream
// position by position.
func (l *List) IsClean() bool {
	if l.locked {
		return false
	}
	if !l.IsDataFormatValid() {
		return true
	}
	if len(l.items) != len(l.originalItems()) {
		return false
	}
	if l.shifted && !l.matchesOriginal() {
		return false
	}
	for _, item := range l.items {
		if !item.fields.IsClean() {
			return false
		}
	}
	return true
}

func (l *List) IsValid() bool {
	if !l.Base.IsValid() {
		return false
	}
	for _, item := range l.items {
		if !item.fields.IsValid() {
			return false
		}
	}
	return true
}

// Lock locks the list and every item.
func (l *List) Lock() {
	l.Base.Lock()
	for _, item := range l.items {
		item.fields.Lock()
	}
}

// Unlock unlocks the list and every item.
func (l *List) Unlock() {
	l.Base.Unlock()
	for _, item := range l.items {
		item.fields.Unlock()
	}
}

// AllowAdd reports whether every rule permits one more item.
func (l *List) AllowAdd() bool {
	return l.IsDataFormatValid() && l.rules.AllowAdd(l.Value())
}

// AllowRemove reports whether every rule permits removing an item.
func (l *List) AllowRemove() bool {
	return l.IsDataFormatValid() && l.rules.AllowRemove(l.Value())
}

// Add appends a new, expanded item seeded with an empty value.
func (l *List) Add() (*Item, error) {
	if !l.IsDataFormatValid() {
		return nil, ErrDataFormat
	}
	if !l.AllowAdd() {
		return nil, ErrAddNotAllowed
	}
	item := l.newItem(len(l.items))
	item.seed = item.fields.GuessDefaultValue()
	item.fields.UpdateOriginal(item.seed, true)
	item.expanded = true
	l.items = append(l.items, item)
	l.ctx.RequestRender()
	return item, nil
}

// Delete removes the item at index. Items after it and the list itself stay
// locked until the next unlock signal, so upstream data still describing the
// old positions cannot overwrite them.
func (l *List) Delete(index int) error {
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if !l.AllowRemove() {
		return ErrRemoveNotAllowed
	}
	downstream := append([]*Item(nil), l.items[index+1:]...)
	for _, item := range downstream {
		item.fields.Lock()
	}
	l.Base.Lock()
	l.items = append(l.items[:index], l.items[index+1:]...)
	l.rekey()
	l.shifted = !l.matchesOriginal()
	l.ctx.OnUnlock(func() {
		for _, item := range downstream {
			item.fields.Unlock()
		}
		l.Base.Unlock()
	})
	l.ctx.RequestRender()
	return nil
}

// Sort moves the item at from to position to, shifting the items between.
// Every item in the affected range is locked until the next unlock signal,
// unless the new order already matches upstream, in which case the locks are
// released at once.
func (l *List) Sort(from, to int) error {
	if from == to {
		return nil
	}
	if from < 0 || from >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, from)
	}
	if to < 0 || to >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, to)
	}
	moved := l.items[from]
	if from < to {
		copy(l.items[from:to], l.items[from+1:to+1])
	} else {
		copy(l.items[to+1:from+1], l.items[to:from])
	}
	l.items[to] = moved

	lo, hi := min(from, to), max(from, to)
	affected := append([]*Item(nil), l.items[lo:hi+1]...)
	for _, item := range affected {
		item.fields.Lock()
	}
	l.Base.Lock()
	l.rekey()

	release := func() {
		for _, item := range affected {
			item.fields.Unlock()
		}
		l.Base.Unlock()
	}
	l.shifted = !l.matchesOriginal()
	if !l.shifted {
		release()
	} else {
		l.ctx.OnUnlock(release)
	}
	l.ctx.RequestRender()
	return nil
}

// matchesOriginal reports whether the item values equal the upstream array
// element by element.
func (l *List) matchesOriginal() bool {
	upstream := l.originalItems()
	if len(upstream) != len(l.items) {
		return false
	}
	for i, item := range l.items {
		if !value.Equal(item.fields.Value(), upstream[i]) {
			return false
		}
	}
	return true
}

// Expand opens the item at index.
func (l *List) Expand(index int) error {
	return l.setExpanded(index, true)
}

// Collapse closes the item at index.
func (l *List) Collapse(index int) error {
	return l.setExpanded(index, false)
}

func (l *List) setExpanded(index int, expanded bool) error {
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if l.items[index].expanded != expanded {
		l.items[index].expanded = expanded
		l.ctx.RequestRender()
	}
	return nil
}

func (l *List) Node() Node {
	n := l.node()
	n.AllowAdd = l.AllowAdd()
	n.AllowRemove = l.AllowRemove()
	if !l.IsDataFormatValid() {
		return n
	}
	for i, item := range l.items {
		child := Node{
			FullKey:  l.itemKey(i),
			Type:     NodeTypeItem,
			Label:    fmt.Sprintf("%s #%d", n.Label, i+1),
			Value:    item.fields.Value(),
			Clean:    item.fields.IsClean(),
			Valid:    item.fields.IsValid(),
			Locked:   item.fields.IsLocked(),
			ID:       item.id,
			Expanded: item.expanded,
		}
		if item.expanded {
			child.Children = item.fields.Nodes()
		}
		n.Children = append(n.Children, child)
	}
	return n
}

func (l *List) find(path string) Field {
	head, rest, _ := strings.Cut(path, ".")
	index, err := strconv.Atoi(head)
	if err != nil || index < 0 || index >= len(l.items) {
		return nil
	}
	return l.items[index].fields.Find(rest)
}

func (l *List) rekey() {
	for i, item := range l.items {
		item.fields.setParentKey(l.itemKey(i))
	}
}
