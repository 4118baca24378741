package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-finalizer/internal/export"
	"github.com/jonathan/resume-finalizer/internal/session"
	"github.com/jonathan/resume-finalizer/internal/types"
)

// uploadTimeout bounds the background post-export upload.
const uploadTimeout = 30 * time.Second

type exportedFile struct {
	Name string `json:"name"`
	MIME string `json:"mime"`
	Data []byte `json:"data"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req types.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	// Eligibility gates file generation entirely.
	if s.eligibility != nil {
		result, err := s.eligibility.Check(r.Context(), req.UserID)
		if err != nil {
			s.engineError(w, err)
			return
		}
		if !result.IsEligible {
			s.engineError(w, &session.NotEligibleError{Message: result.Message})
			return
		}
	}

	files, err := sess.Export(r.Context(), req.Format)
	if err != nil {
		log.Printf("[export] generation failed for session %s: %v", sess.ID(), err)
		s.engineError(w, err)
		return
	}

	// The download succeeds from here on; uploads are fire-and-forget.
	for _, file := range files {
		go s.uploadExport(req.UserID, file)
	}

	if len(files) == 1 {
		file := files[0]
		w.Header().Set("Content-Type", file.MIME)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Data); err != nil {
			log.Printf("[export] failed to write response for %s: %v", file.Name, err)
		}
		return
	}

	manifest := make([]exportedFile, 0, len(files))
	for _, file := range files {
		manifest = append(manifest, exportedFile{Name: file.Name, MIME: file.MIME, Data: file.Data})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"files": manifest})
}

// uploadExport persists a generated file. The user already has their
// download, so failures are logged and never surfaced.
func (s *Server) uploadExport(userID uuid.UUID, file *export.File) {
	if s.db == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	if _, err := s.db.SaveExportFile(ctx, userID, file.Name, file.MIME, file.Data); err != nil {
		log.Printf("[export] upload of %s for user %s failed: %v", file.Name, userID, err)
		return
	}
	log.Printf("[export] uploaded %s for user %s", file.Name, userID)
}
