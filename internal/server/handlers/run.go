package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lans/llm-answer-watcher/internal/logging"
	"github.com/lans/llm-answer-watcher/internal/version"
	"github.com/lans/llm-answer-watcher/internal/watcher/resolve"
	"github.com/lans/llm-answer-watcher/internal/watcher/runner"
	"github.com/lans/llm-answer-watcher/internal/watcher/schema"
)

type runRequest struct {
	APIKeys    map[string]string `json:"api_keys"`
	YAMLConfig string            `json:"yaml_config"`
}

// RunWatcherHandler resolves a submitted config and hands it to the job
// runner. Validation problems come back with full detail; anything past
// resolution is opaque to the caller.
func RunWatcherHandler(jobs runner.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req runRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		raw, err := schema.Parse([]byte(req.YAMLConfig))
		if err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}

		cfg, err := resolve.Resolve(raw, req.APIKeys)
		if err != nil {
			var valErr *schema.ValidationError
			var keyErr *resolve.MissingKeyError
			if errors.As(err, &valErr) || errors.As(err, &keyErr) {
				writeDetail(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Printf("❌ [%s] Config resolution failed: %v", logging.GetRequestID(r.Context()), err)
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		runID, err := jobs.RunAll(r.Context(), cfg)
		if err != nil {
			log.Printf("❌ [%s] Failed to start watcher run: %v", logging.GetRequestID(r.Context()), err)
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"run_id": runID})
	}
}

// ResultsHandler reports the recorded state of a run.
func ResultsHandler(jobs *runner.RecordingRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID := chi.URLParam(r, "runID")

		run, err := jobs.FindRun(runID)
		if err != nil {
			log.Printf("❌ Run lookup failed for %s: %v", runID, err)
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if run == nil {
			writeDetail(w, http.StatusNotFound, "Run not found")
			return
		}

		writeJSON(w, http.StatusOK, run)
	}
}

// RootHandler identifies the service.
func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "LLM Answer Watcher API",
			"version": version.Version,
		})
	}
}
