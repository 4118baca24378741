// Package reconcile derives the displayed final resume from the two
// normalized documents, the selection ledger, and any saved manual edit.
package reconcile

import (
	"github.com/jonathan/resume-finalizer/internal/ledger"
	"github.com/jonathan/resume-finalizer/internal/types"
)

// Mode tells which lifecycle the final document is in.
type Mode string

// Final document lifecycles.
const (
	// ModeDerived means the document was recomputed from the ledger and is
	// ephemeral.
	ModeDerived Mode = "derived"
	// ModeOverride means a manually saved resume is authoritative and
	// ledger-driven recomputation is suspended.
	ModeOverride Mode = "override"
)

// Result is the outcome of a reconciliation.
type Result struct {
	Mode Mode                 `json:"mode"`
	Doc  *types.FinalDocument `json:"doc"`
}

// SnapshotStore receives best-effort summary snapshots for other pages to
// read. Writes may be dropped; they are a convenience cache, not part of
// the authoritative model.
type SnapshotStore interface {
	PutSummary(lines []string)
}

// Reconcile computes the final document.
//
// A non-empty saved resume short-circuits everything (override mode).
// With nothing selected the result is empty, and the enhanced document's
// summary section is published to the snapshot store as a side effect of
// that exact state. Otherwise sections follow the enhanced document's
// order, with selected original-side items before selected enhanced-side
// items and within-side order preserved; sections with no selected items
// are omitted. Given identical inputs the computation is pure apart from
// the snapshot write.
func Reconcile(original, enhanced *types.NormalizedDocument, led *ledger.Ledger, saved *types.FinalDocument, store SnapshotStore) Result {
	if saved != nil && !saved.IsEmpty() {
		return Result{Mode: ModeOverride, Doc: saved}
	}

	if !led.AnySelected() {
		if store != nil {
			if lines := summaryLines(enhanced); len(lines) > 0 {
				store.PutSummary(lines)
			}
		}
		return Result{Mode: ModeDerived, Doc: types.NewFinalDocument()}
	}

	doc := types.NewFinalDocument()
	for _, name := range enhanced.Order {
		for _, item := range original.Items(name) {
			if led.Selected(item.Key) {
				doc.Append(name, types.FinalItem{Content: item.Content, Source: types.SourceOriginal})
			}
		}
		for _, item := range enhanced.Items(name) {
			if led.Selected(item.Key) {
				doc.Append(name, types.FinalItem{Content: item.Content, Source: types.SourceEnhanced})
			}
		}
	}
	return Result{Mode: ModeDerived, Doc: doc}
}

// summarySections are the enhanced-document section names (normalized to
// lowercase alphanumerics) whose content doubles as the cross-page summary.
var summarySections = map[string]bool{
	"summary":             true,
	"profileoverview":     true,
	"professionalsummary": true,
	"profilesummary":      true,
}

func summaryLines(enhanced *types.NormalizedDocument) []string {
	for _, name := range enhanced.Order {
		if !summarySections[foldSectionName(name)] {
			continue
		}
		items := enhanced.Items(name)
		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, item.Content)
		}
		return lines
	}
	return nil
}

func foldSectionName(name string) string {
	folded := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			folded = append(folded, r)
		case r >= 'A' && r <= 'Z':
			folded = append(folded, r+('a'-'A'))
		}
	}
	return string(folded)
}
