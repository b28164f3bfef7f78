package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lendguard/riskengine/internal/ingestion"
	"github.com/lendguard/riskengine/internal/repository"
	"github.com/lendguard/riskengine/internal/scoring"
)

// NewRouter creates the Chi router with all API routes mounted. Officer
// routes sit behind the role gate; ADMIN tokens pass everywhere.
func NewRouter(
	scoringSvc *scoring.Service,
	ingestionSvc *ingestion.Service,
	assessmentRepo *repository.AssessmentRepo,
	auth *Auth,
) http.Handler {
	h := &Handlers{
		scoringSvc:     scoringSvc,
		ingestionSvc:   ingestionSvc,
		assessmentRepo: assessmentRepo,
		auth:           auth,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/", h.Home)
	r.Get("/health", h.Health)
	r.Post("/login", h.Login)

	r.Route("/api/v1", func(r chi.Router) {
		// Scoring.
		r.Post("/predict", h.Predict)
		r.Post("/predict_all", h.PredictAll)

		// Ledger.
		r.Post("/ledger/ingest", h.IngestLedger)

		// Saved assessments.
		r.Get("/assessments", h.ListAssessments)

		// Officer-only views.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(RoleOfficer))
			r.Get("/analytics", h.Analytics)
			r.Get("/top_risky", h.TopRisky)
			r.Get("/need_officer", h.NeedOfficer)
			r.Get("/review_queue", h.ReviewQueue)
			r.Get("/risk_history/{borrowerID}", h.RiskHistory)
		})
	})

	return r
}
