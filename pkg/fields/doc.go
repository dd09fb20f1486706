// Package fields is the reconciliation and validation engine behind the
// editor. Every configured field tracks two values: the original value last
// observed upstream and the current, editable value. On each render pass a
// field re-reads its original value from the data snapshot and refreshes the
// current value only while the two are still equal, so edits in progress are
// never clobbered by upstream changes. Locking suspends that refresh while a
// list reorders or removes items.
//
// Composite fields (Group, List, Variant) own nested Fields collections and
// derive value, clean and valid state from them. Fields are not safe for
// concurrent use; drive them from a single goroutine, as the editor does.
package fields
