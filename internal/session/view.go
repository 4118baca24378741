package session

import (
	"github.com/google/uuid"

	"github.com/jonathan/resume-finalizer/internal/reconcile"
	"github.com/jonathan/resume-finalizer/internal/types"
)

// View is a consistent snapshot of a session for API responses.
type View struct {
	ID                  uuid.UUID                 `json:"id"`
	Original            *types.NormalizedDocument `json:"original"`
	Enhanced            *types.NormalizedDocument `json:"enhanced"`
	Ledger              map[string]bool           `json:"ledger"`
	Final               reconcile.Result          `json:"final"`
	Editing             bool                      `json:"editing"`
	Dirty               bool                      `json:"dirty"`
	Scratch             *types.FinalDocument      `json:"scratch,omitempty"`
	AllOriginalSelected bool                      `json:"all_original_selected"`
	AllEnhancedSelected bool                      `json:"all_enhanced_selected"`
}

// View captures the whole session state in one locked pass.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The final document and scratch buffer are cloned because later
	// operations mutate them in place; the normalized documents are only
	// ever replaced wholesale, so they are safe to share.
	return View{
		ID:                  s.id,
		Original:            s.original,
		Enhanced:            s.enhanced,
		Ledger:              s.ledger.Snapshot(),
		Final:               s.resultLocked(),
		Editing:             s.overlay.Editing(),
		Dirty:               s.overlay.Dirty(),
		Scratch:             s.overlay.Scratch().Clone(),
		AllOriginalSelected: s.ledger.AreAllSelected(s.original.Keys()),
		AllEnhancedSelected: s.ledger.AreAllSelected(s.enhanced.Keys()),
	}
}
