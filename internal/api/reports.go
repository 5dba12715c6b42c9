// Package api exposes the report service to its UI layer: a JSON HTTP
// API for the mobile client and an MCP surface mirroring the same
// operations.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bogo-app/bogo/internal/draftcache"
	"github.com/bogo-app/bogo/internal/keywords"
	"github.com/bogo-app/bogo/internal/recordstore"
	"github.com/bogo-app/bogo/internal/report"
	"github.com/bogo-app/bogo/internal/reports"
	"github.com/bogo-app/bogo/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// TemplateLister abstracts template reads for the API layer.
// Implemented by storage.Store.
type TemplateLister interface {
	ListTemplates() ([]storage.Template, error)
}

// Deps holds the collaborators the HTTP handlers close over.
type Deps struct {
	Reports   *reports.Service
	Drafts    *draftcache.Manager
	Extractor *keywords.Extractor
	Templates TemplateLister
	Token     string           // optional; empty disables bearer auth
	Now       func() time.Time // defaults to time.Now
}

// NewHandler returns the HTTP handler for the report API.
func NewHandler(deps Deps) http.Handler {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	r := chi.NewRouter()
	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}

		r.Get("/reports", handleListReports(deps))
		r.Post("/reports", handleCreateReport(deps))
		r.Get("/reports/today", handleToday(deps))
		r.Get("/reports/{id}", handleGetReport(deps))
		r.Patch("/reports/{id}", handleUpdateReport(deps))
		r.Delete("/reports/{id}", handleArchiveReport(deps))
		r.Get("/reports/{id}/share", handleShareReport(deps))

		r.Get("/draft", handleGetDraft(deps))
		r.Patch("/draft", handlePatchDraft(deps))
		r.Delete("/draft", handleClearDraft(deps))
		r.Post("/submit", handleSubmit(deps))
		r.Get("/submitted", handleGetSubmitted(deps))
		r.Delete("/submitted", handleClearSubmitted(deps))

		r.Get("/templates", handleListTemplates(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleListReports(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Reports.List(r.Context())
		if err != nil {
			writeDomainError(w, err, "failed to list reports")
			return
		}
		if list == nil {
			list = []report.Report{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

type createReportRequest struct {
	Type     report.Type    `json:"type"`
	Session  report.Session `json:"session,omitempty"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Keywords []string       `json:"keywords"`
	Status   report.Status  `json:"status,omitempty"`
}

func handleCreateReport(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req createReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Type == "" || req.Title == "" || req.Content == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "type, title and content are required")
			return
		}

		draft := report.Draft{
			Type:    req.Type,
			Session: req.Session,
			Title:   req.Title,
			Content: req.Content,
		}
		created, err := deps.Reports.Create(r.Context(), draft, req.Keywords, req.Status)
		if err != nil {
			writeDomainError(w, err, "failed to create report")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleToday(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := deps.Reports.Today(r.Context(), deps.Now())
		if err != nil {
			writeDomainError(w, err, "failed to load today status")
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func handleGetReport(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rec, err := deps.Reports.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, err, "failed to get report")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleUpdateReport(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		id := chi.URLParam(r, "id")
		var fields report.Fields
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		updated, err := deps.Reports.Update(r.Context(), id, fields)
		if err != nil {
			writeDomainError(w, err, "failed to update report")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleArchiveReport(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := deps.Reports.Archive(r.Context(), id); err != nil {
			writeDomainError(w, err, "failed to archive report")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func handleShareReport(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rec, err := deps.Reports.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, err, "failed to get report")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"id":   rec.ID,
			"text": report.ShareText(rec),
		})
	}
}

func handleListTemplates(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templates, err := deps.Templates.ListTemplates()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list templates: %v", err)
			return
		}
		if templates == nil {
			templates = []storage.Template{}
		}
		writeJSON(w, http.StatusOK, templates)
	}
}

// writeDomainError maps domain errors onto the HTTP taxonomy:
// validation → 400 before any store call, not-found → 404, anything
// else → 500 with a logged diagnostic and no automatic retry.
func writeDomainError(w http.ResponseWriter, err error, logMsg string) {
	var verr *report.ValidationError
	if errors.As(err, &verr) {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%s", verr.Message)
		return
	}
	if errors.Is(err, recordstore.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "report not found")
		return
	}
	slog.Error(logMsg, "error", err)
	httpError(w, http.StatusInternalServerError, "api_error", "%s: %v", logMsg, err)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
