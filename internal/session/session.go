package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-finalizer/internal/editing"
	"github.com/jonathan/resume-finalizer/internal/ledger"
	"github.com/jonathan/resume-finalizer/internal/normalize"
	"github.com/jonathan/resume-finalizer/internal/reconcile"
	"github.com/jonathan/resume-finalizer/internal/types"
)

// Session is one preview session. The mutex serializes operations the way
// UI callback dispatch did in the source system: each handler runs to
// completion before the next touches the document.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	createdAt time.Time

	original *types.NormalizedDocument
	enhanced *types.NormalizedDocument
	ledger   *ledger.Ledger
	overlay  *editing.Overlay
	saved    *types.FinalDocument

	snapshots reconcile.SnapshotStore
}

// New creates a session around a raw payload. ErrNoContent is returned
// when neither side normalizes to any content.
func New(payload *types.RawPayload, snapshots reconcile.SnapshotStore) (*Session, error) {
	s := &Session{
		id:        uuid.New(),
		createdAt: time.Now(),
		ledger:    ledger.New(),
		overlay:   editing.NewOverlay(),
		snapshots: snapshots,
	}
	if err := s.LoadPayload(payload); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// LoadPayload replaces both documents wholesale, as when a new enhancement
// run arrives. The ledger, the saved resume, and any edit in progress are
// all reset.
func (s *Session) LoadPayload(payload *types.RawPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, enhanced := normalize.Payload(payload)
	if original.IsEmpty() && enhanced.IsEmpty() {
		return ErrNoContent
	}

	s.original = original
	s.enhanced = enhanced
	s.ledger.Reset()
	s.saved = nil
	if s.overlay.Editing() {
		_ = s.overlay.Cancel()
	}
	return nil
}

// Toggle flips one line item's inclusion and returns the resulting final
// document. In derived mode the document is recomputed; in override mode
// the mutation is mirrored into the saved resume instead (override
// stickiness).
func (s *Session) Toggle(key string, selected bool) (reconcile.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	side, section, index, err := types.ParseKey(key)
	if err != nil {
		return reconcile.Result{}, err
	}
	item, ok := s.lineItem(side, section, index)
	if !ok {
		return reconcile.Result{}, ErrUnknownKey
	}

	wasSelected := s.ledger.Selected(key)
	mirrorKey, _ := types.MirrorKey(key)
	mirrorWasSelected := s.ledger.Selected(mirrorKey)

	s.ledger.Toggle(key, selected)

	if s.overrideActive() {
		switch {
		case selected && !wasSelected:
			if mirrorWasSelected {
				if mirrorItem, ok := s.lineItem(side.Opposite(), section, index); ok {
					s.removeFromSaved(section, mirrorItem.Content)
				}
			}
			s.saved.Append(section, types.FinalItem{Content: item.Content, Source: types.Source(side)})
		case !selected && wasSelected:
			s.removeFromSaved(section, item.Content)
		}
		s.dropSavedIfEmpty()
	}

	return s.resultLocked(), nil
}

// SelectAll bulk-selects one side, or clears everything when that side is
// already fully selected. The ledger update and the final document update
// are observed as one operation.
func (s *Session) SelectAll(side types.Side) (reconcile.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sideDoc, oppositeDoc := s.docFor(side), s.docFor(side.Opposite())
	sideKeys, oppositeKeys := sideDoc.Keys(), oppositeDoc.Keys()

	var before map[string]bool
	if s.overrideActive() {
		before = s.ledger.Snapshot()
	}

	s.ledger.SelectAllForSide(sideKeys, oppositeKeys)

	if before != nil {
		// Mirror every transition into the saved resume: deselected items
		// drop out of it, newly selected items append in document order.
		s.mirrorTransitions(oppositeDoc, before, false)
		s.mirrorTransitions(sideDoc, before, false)
		s.mirrorTransitions(sideDoc, before, true)
		s.dropSavedIfEmpty()
	}

	return s.resultLocked(), nil
}

// AreAllSelected reports whether every key of a side is selected.
func (s *Session) AreAllSelected(side types.Side) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.AreAllSelected(s.docFor(side).Keys())
}

// Final returns the current authoritative final document.
func (s *Session) Final() reconcile.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultLocked()
}

// reconcileLocked must be called with the lock held.
func (s *Session) reconcileLocked() reconcile.Result {
	return reconcile.Reconcile(s.original, s.enhanced, s.ledger, s.saved, s.snapshots)
}

// resultLocked reconciles and clones the document, so callers may read it
// after the lock is released. In override mode the reconciler hands back
// the live saved resume, which later toggles mutate in place; returning it
// directly would race with encoders running outside the lock.
func (s *Session) resultLocked() reconcile.Result {
	result := s.reconcileLocked()
	result.Doc = result.Doc.Clone()
	return result
}

func (s *Session) docFor(side types.Side) *types.NormalizedDocument {
	if side == types.SideOriginal {
		return s.original
	}
	return s.enhanced
}

func (s *Session) lineItem(side types.Side, section string, index int) (types.LineItem, bool) {
	items := s.docFor(side).Items(section)
	if index < 0 || index >= len(items) {
		return types.LineItem{}, false
	}
	return items[index], true
}

func (s *Session) overrideActive() bool {
	return s.saved != nil && !s.saved.IsEmpty()
}

func (s *Session) removeFromSaved(section, content string) {
	for i, item := range s.saved.Items(section) {
		if item.Content == content {
			s.saved.RemoveItem(section, i)
			return
		}
	}
}

func (s *Session) dropSavedIfEmpty() {
	if s.saved != nil && s.saved.IsEmpty() {
		s.saved = nil
	}
}

// mirrorTransitions applies one side's ledger transitions to the saved
// resume in document order. With selectedNow true it appends items that
// just became selected; with false it removes items that just became
// deselected.
func (s *Session) mirrorTransitions(doc *types.NormalizedDocument, before map[string]bool, selectedNow bool) {
	if s.saved == nil {
		return
	}
	for _, name := range doc.Order {
		for _, item := range doc.Sections[name] {
			was := before[item.Key]
			now := s.ledger.Selected(item.Key)
			if was == now || now != selectedNow {
				continue
			}
			if selectedNow {
				side, _, _, err := types.ParseKey(item.Key)
				if err != nil {
					continue
				}
				s.saved.Append(name, types.FinalItem{Content: item.Content, Source: types.Source(side)})
			} else {
				s.removeFromSaved(name, item.Content)
			}
		}
	}
}
