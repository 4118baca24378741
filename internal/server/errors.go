// Package server provides the HTTP REST API for the resume finalizer.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-finalizer/internal/editing"
	"github.com/jonathan/resume-finalizer/internal/eligibility"
	"github.com/jonathan/resume-finalizer/internal/export"
	"github.com/jonathan/resume-finalizer/internal/schemas"
	"github.com/jonathan/resume-finalizer/internal/session"
)

// HTTPStatus maps engine errors onto the user-facing alert categories:
// malformed payloads and bad edits are client errors, unsaved-edit and
// eligibility conflicts block the action, generation failures are server
// errors. Nothing here is fatal; every response returns the client to the
// viewing state.
func HTTPStatus(err error) int {
	var validationErr *schemas.ValidationError
	var notEligible *session.NotEligibleError
	var eligibilityErr *eligibility.Error
	var exportErr *export.Error

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNoContent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrUnsavedEdits):
		return http.StatusConflict
	case errors.Is(err, session.ErrUnknownKey),
		errors.Is(err, session.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.As(err, &notEligible):
		return http.StatusForbidden
	case errors.As(err, &eligibilityErr):
		// The collaborator was unreachable or timed out; retryable.
		return http.StatusServiceUnavailable
	case errors.Is(err, editing.ErrAlreadyEditing),
		errors.Is(err, editing.ErrNotEditing),
		errors.Is(err, editing.ErrCanonicalSection),
		errors.Is(err, editing.ErrSectionExists):
		return http.StatusConflict
	case errors.Is(err, editing.ErrEmptySectionName),
		errors.Is(err, editing.ErrNoSuchLine),
		errors.Is(err, editing.ErrNoSuchSection):
		return http.StatusBadRequest
	case errors.As(err, &exportErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
