// Package editing implements the manual edit overlay: direct user edits to
// the final resume, applied to a scratch buffer until saved or cancelled.
package editing

import (
	"errors"
	"strings"

	"github.com/jonathan/resume-finalizer/internal/ledger"
	"github.com/jonathan/resume-finalizer/internal/types"
)

// State of the overlay's viewing/editing machine.
type State string

// Overlay states. Saving or cancelling always returns to viewing.
const (
	StateViewing State = "viewing"
	StateEditing State = "editing"
)

// Overlay errors.
var (
	ErrAlreadyEditing   = errors.New("an edit is already in progress")
	ErrNotEditing       = errors.New("no edit in progress")
	ErrEmptySectionName = errors.New("section name must be non-empty")
	ErrSectionExists    = errors.New("section already exists")
	ErrCanonicalSection = errors.New("sections in the canonical ordering cannot be removed")
	ErrNoSuchLine       = errors.New("no line at that position")
	ErrNoSuchSection    = errors.New("no such section")
)

// Env gives removal operations access to the collaborators that must stay
// consistent with the scratch buffer: the normalized source documents, the
// selection ledger, and the saved resume when override mode is active.
type Env struct {
	Original *types.NormalizedDocument
	Enhanced *types.NormalizedDocument
	Ledger   *ledger.Ledger
	Saved    *types.FinalDocument
}

// Overlay is the manual edit state machine. All mutations act on a deep
// copy of the displayed document and set a dirty flag; nothing escapes the
// scratch buffer until Save.
type Overlay struct {
	state   State
	scratch *types.FinalDocument
	dirty   bool
}

// NewOverlay returns an overlay in the viewing state.
func NewOverlay() *Overlay {
	return &Overlay{state: StateViewing}
}

// State returns the current state.
func (o *Overlay) State() State {
	return o.state
}

// Editing reports whether an edit is in progress.
func (o *Overlay) Editing() bool {
	return o.state == StateEditing
}

// Dirty reports whether unsaved modifications exist. Exports must be
// rejected while this is true.
func (o *Overlay) Dirty() bool {
	return o.dirty
}

// Scratch exposes the working copy for display while editing.
func (o *Overlay) Scratch() *types.FinalDocument {
	return o.scratch
}

// Begin enters the editing state with a deep copy of the currently
// displayed final document.
func (o *Overlay) Begin(displayed *types.FinalDocument) error {
	if o.state == StateEditing {
		return ErrAlreadyEditing
	}
	o.scratch = displayed.Clone()
	if o.scratch == nil {
		o.scratch = types.NewFinalDocument()
	}
	o.state = StateEditing
	o.dirty = false
	return nil
}

// EditContent replaces the text at a position, preserving the source tag.
func (o *Overlay) EditContent(section string, index int, content string) error {
	if o.state != StateEditing {
		return ErrNotEditing
	}
	items := o.scratch.Items(section)
	if index < 0 || index >= len(items) {
		return ErrNoSuchLine
	}
	o.scratch.SetContent(section, index, content)
	o.dirty = true
	return nil
}

// AddLine appends an empty user-added line to a section.
func (o *Overlay) AddLine(section string) error {
	if o.state != StateEditing {
		return ErrNotEditing
	}
	if !o.scratch.HasSection(section) {
		return ErrNoSuchSection
	}
	o.scratch.Append(section, types.FinalItem{Content: "", Source: types.SourceUserAdded})
	o.dirty = true
	return nil
}

// RemoveLine removes a line with the three coordinated effects the removal
// contract requires: the scratch buffer loses the line (and the section,
// if it empties), any source item whose content exactly matches the
// removed text has its ledger key force-cleared so the side-by-side
// checkboxes stay consistent, and a pre-existing saved resume receives the
// same removal so override mode and scratch do not diverge.
func (o *Overlay) RemoveLine(section string, index int, env Env) error {
	if o.state != StateEditing {
		return ErrNotEditing
	}
	removed, ok := o.scratch.RemoveItem(section, index)
	if !ok {
		return ErrNoSuchLine
	}
	o.dirty = true
	propagateRemoval(section, removed.Content, env)
	return nil
}

// RemoveSection removes a whole section, applying the same three-way
// coordination to every line in it. Sections belonging to the canonical
// (enhanced-document) ordering are not removable; only user-added or
// original-only sections are.
func (o *Overlay) RemoveSection(section string, env Env) error {
	if o.state != StateEditing {
		return ErrNotEditing
	}
	if !o.scratch.HasSection(section) {
		return ErrNoSuchSection
	}
	for _, name := range env.Enhanced.Order {
		if name == section {
			return ErrCanonicalSection
		}
	}

	items := o.scratch.Items(section)
	contents := make([]string, len(items))
	for i, item := range items {
		contents[i] = item.Content
	}

	o.scratch.RemoveSection(section)
	o.dirty = true
	for _, content := range contents {
		propagateRemoval(section, content, env)
	}
	return nil
}

// AddSection creates a new section holding one empty user-added line.
func (o *Overlay) AddSection(name string) error {
	if o.state != StateEditing {
		return ErrNotEditing
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptySectionName
	}
	if o.scratch.HasSection(trimmed) {
		return ErrSectionExists
	}
	o.scratch.Append(trimmed, types.FinalItem{Content: "", Source: types.SourceUserAdded})
	o.dirty = true
	return nil
}

// Save hands the scratch buffer to the caller as the new saved resume and
// returns to viewing. The caller installs it as the override document.
func (o *Overlay) Save() (*types.FinalDocument, error) {
	if o.state != StateEditing {
		return nil, ErrNotEditing
	}
	saved := o.scratch
	o.scratch = nil
	o.dirty = false
	o.state = StateViewing
	return saved, nil
}

// Cancel discards the scratch buffer and returns to viewing.
func (o *Overlay) Cancel() error {
	if o.state != StateEditing {
		return ErrNotEditing
	}
	o.scratch = nil
	o.dirty = false
	o.state = StateViewing
	return nil
}

// propagateRemoval applies the ledger and saved-resume effects for one
// removed line.
func propagateRemoval(section, content string, env Env) {
	clearMatchingKeys(env.Original, content, env.Ledger)
	clearMatchingKeys(env.Enhanced, content, env.Ledger)

	if env.Saved == nil {
		return
	}
	for i, item := range env.Saved.Items(section) {
		if item.Content == content {
			env.Saved.RemoveItem(section, i)
			break
		}
	}
}

func clearMatchingKeys(doc *types.NormalizedDocument, content string, led *ledger.Ledger) {
	if doc == nil || led == nil {
		return
	}
	for _, name := range doc.Order {
		for _, item := range doc.Sections[name] {
			if item.Content == content {
				led.Set(item.Key, false)
			}
		}
	}
}
