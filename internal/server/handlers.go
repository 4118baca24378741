package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-finalizer/internal/schemas"
	"github.com/jonathan/resume-finalizer/internal/session"
	"github.com/jonathan/resume-finalizer/internal/types"
)

// maxPayloadBytes bounds the raw resume payload size.
const maxPayloadBytes = 4 << 20

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := schemas.ValidatePayload(body); err != nil {
		s.engineError(w, err)
		return
	}

	var payload types.RawPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid payload JSON: "+err.Error())
		return
	}

	sess, err := s.sessions.Create(&payload)
	if err != nil {
		s.engineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, sess.View())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}
	s.sessions.Delete(id)
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req types.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if _, err := sess.Toggle(req.Key, req.Selected); err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req types.SelectAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if _, err := sess.SelectAll(req.Side); err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleFinal(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Final())
}

func (s *Server) handleSummarySnapshot(w http.ResponseWriter, _ *http.Request) {
	lines, found := s.snapshots.Summary()
	if !found {
		s.errorResponse(w, http.StatusNotFound, "No summary snapshot available")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string][]string{"summary": lines})
}

// loadSession resolves the {id} path value to a live session, writing the
// error response itself when it can't.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return nil, false
	}
	sess, found := s.sessions.Get(id)
	if !found {
		s.errorResponse(w, http.StatusNotFound, "Session not found or expired")
		return nil, false
	}
	return sess, true
}
