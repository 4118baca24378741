// Package ledger tracks which line items are included in the final resume.
package ledger

import (
	"github.com/jonathan/resume-finalizer/internal/types"
)

// Ledger maps line-item keys to their inclusion state. It is the source of
// truth for the derived final resume. The ledger itself stores plain
// booleans; mutual exclusivity between sides is enforced by the Toggle
// operation, not by the map.
type Ledger struct {
	selected map[string]bool
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{selected: make(map[string]bool)}
}

// Selected reports the inclusion state of a key.
func (l *Ledger) Selected(key string) bool {
	return l.selected[key]
}

// Set writes a key's state without touching its mirror. Used by removal
// coordination, which must clear a specific key and nothing else.
func (l *Ledger) Set(key string, selected bool) {
	l.selected[key] = selected
}

// Toggle sets a key's state. Selecting a key additionally force-clears its
// positional mirror on the opposite side, so at most one of the pair is
// selected at a time. The mirror pairing is index-based (see
// types.MirrorKey) and tolerates keys with no counterpart.
func (l *Ledger) Toggle(key string, selected bool) {
	l.selected[key] = selected
	if !selected {
		return
	}
	if mirror, err := types.MirrorKey(key); err == nil {
		l.selected[mirror] = false
	}
}

// AreAllSelected reports whether keys is non-empty and every key is
// selected.
func (l *Ledger) AreAllSelected(keys []string) bool {
	if len(keys) == 0 {
		return false
	}
	for _, key := range keys {
		if !l.selected[key] {
			return false
		}
	}
	return true
}

// SelectAllForSide bulk-updates one side given that side's keys and the
// opposite side's keys. If the side is already fully selected the call is
// a clear: every key on both sides goes false. Otherwise the side's keys
// all go true and the opposite side's all go false. The update is applied
// as a single pass so callers observe it atomically.
func (l *Ledger) SelectAllForSide(sideKeys, oppositeKeys []string) {
	if l.AreAllSelected(sideKeys) {
		for _, key := range sideKeys {
			l.selected[key] = false
		}
		for _, key := range oppositeKeys {
			l.selected[key] = false
		}
		return
	}

	for _, key := range sideKeys {
		l.selected[key] = true
	}
	for _, key := range oppositeKeys {
		l.selected[key] = false
	}
}

// AnySelected reports whether any key at all is selected.
func (l *Ledger) AnySelected() bool {
	for _, selected := range l.selected {
		if selected {
			return true
		}
	}
	return false
}

// Reset drops all state, as when a new payload replaces the documents.
func (l *Ledger) Reset() {
	l.selected = make(map[string]bool)
}

// Snapshot returns a copy of the current key states for API responses.
func (l *Ledger) Snapshot() map[string]bool {
	snapshot := make(map[string]bool, len(l.selected))
	for key, selected := range l.selected {
		snapshot[key] = selected
	}
	return snapshot
}
