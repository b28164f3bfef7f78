package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lendguard/riskengine/internal/domain"
	"github.com/lendguard/riskengine/internal/ingestion"
	"github.com/lendguard/riskengine/internal/repository"
	"github.com/lendguard/riskengine/internal/review"
	"github.com/lendguard/riskengine/internal/scoring"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	scoringSvc     *scoring.Service
	ingestionSvc   *ingestion.Service
	assessmentRepo *repository.AssessmentRepo
	auth           *Auth
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writePipelineError maps the core failure taxonomy to HTTP statuses. The
// message keeps the stage prefix so callers can tell where scoring failed.
func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientData):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidRecord), errors.Is(err, domain.ErrFeatureShape):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrModelUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

// --- Home / Health ---

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Loan risk decisioning service running",
	})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"model_loaded": true,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

// --- Login ---

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form: "+err.Error())
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, role, err := h.auth.Login(username, password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
		"role":         role,
	})
}

// --- Predict ---

func (h *Handlers) Predict(w http.ResponseWriter, r *http.Request) {
	var fv domain.FeatureVector
	if err := json.NewDecoder(r.Body).Decode(&fv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	mode, err := scoring.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	assessment, err := h.scoringSvc.ScoreVector(&fv, mode)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

// --- PredictAll ---

func (h *Handlers) PredictAll(w http.ResponseWriter, r *http.Request) {
	mode, err := scoring.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.scoringSvc.ScoreAll(mode)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// --- Officer views ---

func (h *Handlers) Analytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.scoringSvc.Analyze()
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handlers) TopRisky(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 10)
	risky, err := h.scoringSvc.TopRisky(limit)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_cases": len(risky),
		"cases":       risky,
	})
}

func (h *Handlers) NeedOfficer(w http.ResponseWriter, r *http.Request) {
	cases, err := h.scoringSvc.NeedOfficer()
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_cases": len(cases),
		"cases":       cases,
	})
}

// RiskHistory serves a borrower's persisted assessment trail, oldest first.
// When nothing is persisted yet it answers with a live model snapshot so
// officers are never left without a view.
func (h *Handlers) RiskHistory(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := strconv.Atoi(chi.URLParam(r, "borrowerID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "borrower id must be an integer")
		return
	}

	history, err := h.assessmentRepo.ListByBorrower(borrowerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(history) == 0 {
		snapshot, err := h.scoringSvc.Snapshot(borrowerID, scoring.ModeDiscrete)
		if err != nil {
			writePipelineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"borrower_id": borrowerID,
			"source":      "MODEL_SNAPSHOT",
			"history":     []domain.RiskAssessment{*snapshot},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"borrower_id": borrowerID,
		"source":      "DB_HISTORY",
		"history":     history,
	})
}

// ReviewQueue lists persisted escalations with the simulated officer
// decision attached.
func (h *Handlers) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 100)
	escalated, err := h.assessmentRepo.ListByAction(domain.ActionEscalateToOfficer, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	entries := make([]map[string]any, 0, len(escalated))
	for i := range escalated {
		outcome := review.Review(&escalated[i])
		entries = append(entries, map[string]any{
			"assessment":     escalated[i],
			"human_decision": outcome.HumanDecision,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_cases": len(entries),
		"cases":       entries,
	})
}

// --- Saved assessments ---

func (h *Handlers) ListAssessments(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 100)
	assessments, err := h.assessmentRepo.ListAll(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, assessments)
}

// --- Ledger ingestion ---

func (h *Handlers) IngestLedger(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read file: "+err.Error())
		return
	}

	result, err := h.ingestionSvc.IngestLedger(data)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
