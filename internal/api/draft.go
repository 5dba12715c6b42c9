package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bogo-app/bogo/internal/draftcache"
	"github.com/bogo-app/bogo/internal/keywords"
	"github.com/bogo-app/bogo/internal/report"
	"github.com/bogo-app/bogo/internal/schedule"
)

func handleGetDraft(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Drafts.Draft())
	}
}

func handlePatchDraft(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var patch draftcache.DraftPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		merged, err := deps.Drafts.SetDraft(patch)
		if err != nil {
			slog.Error("failed to save draft", "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save draft: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, merged)
	}
}

func handleClearDraft(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Drafts.ClearDraft(); err != nil {
			slog.Error("failed to clear draft", "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "failed to clear draft: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}

// handleSubmit runs the full submission flow: validate the cached
// draft, derive the session slot if the draft has none, extract
// keywords, create the record, then clear the draft and hand the record
// to the confirmation/share slot.
func handleSubmit(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := deps.Drafts.Draft()
		if draft.Type == report.TypeDaily && draft.Session == "" {
			draft.Session = schedule.ActiveSession(deps.Now())
		}
		if err := report.ValidateDraft(draft); err != nil {
			writeDomainError(w, err, "invalid draft")
			return
		}

		kws, err := deps.Extractor.ExtractAsync(r.Context(), draft.Content, keywords.DefaultMaxKeywords)
		if err != nil {
			// Client navigated away mid-extraction; nothing was written.
			return
		}

		created, err := deps.Reports.Create(r.Context(), draft, kws, report.StatusSubmitted)
		if err != nil {
			writeDomainError(w, err, "failed to submit report")
			return
		}

		// The record exists in the store at this point. Failures to
		// update local slots are logged, not surfaced as a submit error.
		if err := deps.Drafts.ClearDraft(); err != nil {
			slog.Warn("submitted but failed to clear draft", "error", err)
		}
		if err := deps.Drafts.SetSubmittedReport(created); err != nil {
			slog.Warn("submitted but failed to store submitted slot", "error", err)
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func handleGetSubmitted(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := deps.Drafts.SubmittedReport()
		if rec == nil {
			httpError(w, http.StatusNotFound, "not_found", "no submitted report")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleClearSubmitted(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Drafts.ClearSubmittedReport(); err != nil {
			slog.Error("failed to clear submitted slot", "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "failed to clear submitted report: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
