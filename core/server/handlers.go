package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/adalundhe/aw/core/summary"
	"github.com/adalundhe/aw/core/worklog"
	"github.com/google/uuid"
)

// worklogResponse is the payload for GET /api/worklog.
type worklogResponse struct {
	Entries    []worklog.Entry `json:"entries"`
	Total      int             `json:"total"`
	Categories []string        `json:"categories"`
	Projects   []string        `json:"projects"`
}

type summaryRequest struct {
	DaysBack    int    `json:"daysBack"`
	Category    string `json:"category"`
	ProjectName string `json:"projectName"`
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/worklog", s.withAuth(s.handleWorklog))
	mux.HandleFunc("/api/summary", s.withAuth(s.handleSummary))
	mux.HandleFunc("/", s.handleNotFound)
	return s.logRequests(s.withCORS(mux))
}

// =============================================================================
// Middleware
// =============================================================================

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// withCORS sets permissive CORS headers on every response and short-circuits
// preflight requests without auth.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		next(w, r)
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
}

func (s *Server) handleWorklog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	store, err := worklog.Open(s.opts.DBPath)
	if err != nil {
		s.logger.Error("open store", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Store unavailable"})
		return
	}
	defer store.Close()

	q := r.URL.Query()
	filter := worklog.Filter{
		Limit:       intParam(q.Get("limit"), worklog.DefaultLimit),
		Offset:      intParam(q.Get("offset"), 0),
		Category:    q.Get("category"),
		ProjectName: q.Get("projectName"),
		SessionID:   q.Get("sessionId"),
		DaysBack:    intParam(q.Get("daysBack"), 0),
	}

	result, err := store.Query(r.Context(), filter)
	if err != nil {
		s.logger.Error("query entries", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Query failed"})
		return
	}
	categories, err := store.DistinctCategories(r.Context())
	if err != nil {
		s.logger.Error("distinct categories", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Query failed"})
		return
	}
	projects, err := store.DistinctProjects(r.Context())
	if err != nil {
		s.logger.Error("distinct projects", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Query failed"})
		return
	}

	writeJSON(w, http.StatusOK, worklogResponse{
		Entries:    result.Entries,
		Total:      result.Total,
		Categories: categories,
		Projects:   projects,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	req := summaryRequest{DaysBack: 7}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if req.DaysBack <= 0 {
		req.DaysBack = 7
	}

	store, err := worklog.Open(s.opts.DBPath)
	if err != nil {
		s.logger.Error("open store", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Store unavailable"})
		return
	}
	defer store.Close()

	result, err := summary.New(store, s.opts.Provider).Summarize(r.Context(), summary.Options{
		DaysBack:    req.DaysBack,
		Category:    req.Category,
		ProjectName: req.ProjectName,
	})
	if err != nil {
		s.logger.Error("summarize", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Summary generation failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
