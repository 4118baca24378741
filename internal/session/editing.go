package session

import (
	"github.com/jonathan/resume-finalizer/internal/editing"
	"github.com/jonathan/resume-finalizer/internal/reconcile"
)

// BeginEdit enters the editing state over a deep copy of the currently
// displayed final document.
func (s *Session) BeginEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay.Begin(s.reconcileLocked().Doc)
}

// EditContent replaces the text of one line in the scratch buffer.
func (s *Session) EditContent(section string, index int, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay.EditContent(section, index, content)
}

// AddLine appends an empty user-added line to a scratch section.
func (s *Session) AddLine(section string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay.AddLine(section)
}

// RemoveLine removes a line from the scratch buffer, clearing any ledger
// keys whose source content matches and mirroring the removal into a
// pre-existing saved resume.
func (s *Session) RemoveLine(section string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.overlay.RemoveLine(section, index, s.editEnv())
	s.dropSavedIfEmpty()
	return err
}

// AddSection creates a new user-added section in the scratch buffer.
func (s *Session) AddSection(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay.AddSection(name)
}

// RemoveSection removes a non-canonical section with per-line coordination.
func (s *Session) RemoveSection(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.overlay.RemoveSection(name, s.editEnv())
	s.dropSavedIfEmpty()
	return err
}

// SaveEdit installs the scratch buffer as the saved resume, entering
// override mode (or dropping back to derived mode if the buffer emptied),
// and returns the now-authoritative final document.
func (s *Session) SaveEdit() (reconcile.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.overlay.Save()
	if err != nil {
		return reconcile.Result{}, err
	}
	s.saved = saved
	s.dropSavedIfEmpty()
	return s.resultLocked(), nil
}

// CancelEdit discards the scratch buffer without touching the saved resume.
func (s *Session) CancelEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay.Cancel()
}

// Editing reports whether an edit is in progress.
func (s *Session) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay.Editing()
}

// Dirty reports whether unsaved edits exist.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay.Dirty()
}

// editEnv must be called with the lock held.
func (s *Session) editEnv() editing.Env {
	return editing.Env{
		Original: s.original,
		Enhanced: s.enhanced,
		Ledger:   s.ledger,
		Saved:    s.saved,
	}
}
