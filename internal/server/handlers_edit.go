package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-finalizer/internal/types"
)

// ---------------------------------------------------------------------
// Manual edit overlay handlers
// ---------------------------------------------------------------------

func (s *Server) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if err := sess.BeginEdit(); err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleEditContent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req types.EditContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := sess.EditContent(req.Section, req.Index, req.Content); err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleAddLine(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req types.AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := sess.AddLine(req.Section); err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleRemoveLine(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req types.RemoveLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := sess.RemoveLine(req.Section, req.Index); err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req types.AddSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := sess.AddSection(req.Name); err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req types.RemoveSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := sess.RemoveSection(req.Name); err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleSaveEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if _, err := sess.SaveEdit(); err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if err := sess.CancelEdit(); err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}
