package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-finalizer/internal/config"
	"github.com/jonathan/resume-finalizer/internal/db"
	"github.com/jonathan/resume-finalizer/internal/eligibility"
	"github.com/jonathan/resume-finalizer/internal/reconcile"
	"github.com/jonathan/resume-finalizer/internal/session"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	sessions    *session.Manager
	snapshots   *reconcile.CacheStore
	eligibility eligibility.Checker
	db          *db.DB
}

// New creates a new server instance. The database is optional: without a
// DatabaseURL the server skips post-export uploads. Without an
// EligibilityURL every export is treated as eligible.
func New(cfg *config.Config) (*Server, error) {
	s := &Server{
		snapshots: reconcile.NewCacheStore(cfg.SessionTTL),
	}
	s.sessions = session.NewManager(cfg.SessionTTL, s.snapshots)

	if cfg.EligibilityURL != "" {
		s.eligibility = eligibility.NewClient(cfg.EligibilityURL, cfg.EligibilityTimeout)
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)

	mux.HandleFunc("POST /sessions/{id}/toggle", s.handleToggle)
	mux.HandleFunc("POST /sessions/{id}/select-all", s.handleSelectAll)
	mux.HandleFunc("GET /sessions/{id}/final", s.handleFinal)

	mux.HandleFunc("POST /sessions/{id}/edit", s.handleBeginEdit)
	mux.HandleFunc("POST /sessions/{id}/edit/content", s.handleEditContent)
	mux.HandleFunc("POST /sessions/{id}/edit/lines", s.handleAddLine)
	mux.HandleFunc("DELETE /sessions/{id}/edit/lines", s.handleRemoveLine)
	mux.HandleFunc("POST /sessions/{id}/edit/sections", s.handleAddSection)
	mux.HandleFunc("DELETE /sessions/{id}/edit/sections", s.handleRemoveSection)
	mux.HandleFunc("POST /sessions/{id}/edit/save", s.handleSaveEdit)
	mux.HandleFunc("POST /sessions/{id}/edit/cancel", s.handleCancelEdit)

	mux.HandleFunc("POST /sessions/{id}/export", s.handleExport)
	mux.HandleFunc("GET /summary-snapshot", s.handleSummarySnapshot)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// engineError converts an engine error into its alert category response.
func (s *Server) engineError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
