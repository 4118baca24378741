// Package session holds per-user preview state: the normalized documents,
// the selection ledger, the manual edit overlay, and the saved final
// resume, with every operation running to completion under one lock.
package session

import (
	"errors"
	"fmt"
)

// Operation-boundary errors; the server maps these onto the user-facing
// alert categories.
var (
	// ErrNoContent means neither document has any usable content, or an
	// export was attempted over an empty final resume.
	ErrNoContent = errors.New("no resume data available")
	// ErrUnsavedEdits rejects exports while the edit overlay is dirty.
	ErrUnsavedEdits = errors.New("unsaved edits must be saved or cancelled before downloading")
	// ErrUnknownKey means a toggle referenced a key outside both documents.
	ErrUnknownKey = errors.New("unknown line item key")
	// ErrUnknownFormat means an export asked for an unsupported format.
	ErrUnknownFormat = errors.New("unknown export format")
)

// NotEligibleError blocks an export with the collaborator's message.
type NotEligibleError struct {
	Message string
}

func (e *NotEligibleError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("not eligible for download: %s", e.Message)
	}
	return "not eligible for download"
}
