package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/lendguard/riskengine/internal/api"
	"github.com/lendguard/riskengine/internal/config"
	"github.com/lendguard/riskengine/internal/decision"
	"github.com/lendguard/riskengine/internal/ingestion"
	"github.com/lendguard/riskengine/internal/model"
	"github.com/lendguard/riskengine/internal/repository"
	"github.com/lendguard/riskengine/internal/scoring"
)

func main() {
	cfg := config.FromEnv()

	log.Printf("Initializing database at %s", cfg.DBPath)
	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init DB: %v", err)
	}
	defer db.Close()

	// The classifier artifact is loaded once and shared read-only. A missing
	// or corrupt artifact is fatal here, not per request.
	classifier, err := model.Load(cfg.ModelPath)
	if err != nil {
		log.Fatalf("Failed to load model artifact (run cmd/train first): %v", err)
	}
	log.Printf("Loaded model artifact from %s (classes: %v)", cfg.ModelPath, classifier.Labels)

	// Create repositories.
	ledgerRepo := repository.NewLedgerRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)

	// Create services.
	engine := decision.NewEngine()
	scoringSvc := scoring.NewService(ledgerRepo, assessmentRepo, classifier, engine)
	ingestionSvc := ingestion.NewService(ledgerRepo)

	// Seed the payment ledger if DB is empty.
	count, err := ledgerRepo.Count()
	if err != nil {
		log.Fatalf("Failed to count payments: %v", err)
	}
	if count == 0 {
		log.Println("Database is empty, seeding ledger from testdata...")
		if err := seedLedger(ingestionSvc, cfg.LedgerPath); err != nil {
			log.Printf("WARNING: Failed to seed ledger: %v", err)
		}
	} else {
		log.Printf("Database already has %d payment rows, skipping seed", count)
	}

	auth, err := buildAuth(cfg)
	if err != nil {
		log.Fatalf("Failed to build auth: %v", err)
	}

	// Create router.
	router := api.NewRouter(scoringSvc, ingestionSvc, assessmentRepo, auth)

	log.Printf("Lendguard Loan Risk Decisioning Service")
	log.Printf("Listening on http://localhost:%s", cfg.Port)
	log.Printf("API base: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("")
	log.Printf("Endpoints:")
	log.Printf("  POST   /login")
	log.Printf("  POST   /api/v1/predict")
	log.Printf("  POST   /api/v1/predict_all")
	log.Printf("  POST   /api/v1/ledger/ingest")
	log.Printf("  GET    /api/v1/assessments")
	log.Printf("  GET    /api/v1/analytics          (officer)")
	log.Printf("  GET    /api/v1/top_risky          (officer)")
	log.Printf("  GET    /api/v1/need_officer       (officer)")
	log.Printf("  GET    /api/v1/review_queue       (officer)")
	log.Printf("  GET    /api/v1/risk_history/{id}  (officer)")

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func buildAuth(cfg *config.Config) (*api.Auth, error) {
	admin, err := api.NewUser("admin", cfg.AdminPassword, api.RoleAdmin)
	if err != nil {
		return nil, err
	}
	officer, err := api.NewUser("officer", cfg.OfficerPassword, api.RoleOfficer)
	if err != nil {
		return nil, err
	}
	return api.NewAuth(cfg.JWTSecret, []api.User{admin, officer}), nil
}

func seedLedger(svc *ingestion.Service, ledgerPath string) error {
	// Try multiple possible locations for the ledger file.
	candidates := []string{ledgerPath}

	// Also try to find relative to the executable.
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		candidates = append(candidates,
			filepath.Join(dir, ledgerPath),
			filepath.Join(dir, "..", "..", ledgerPath),
		)
	}

	var data []byte
	var loadErr error
	for _, path := range candidates {
		data, loadErr = os.ReadFile(path)
		if loadErr == nil {
			log.Printf("Loaded ledger from %s", path)
			break
		}
	}
	if loadErr != nil {
		return fmt.Errorf("could not find ledger csv in any candidate path: %w", loadErr)
	}

	result, err := svc.IngestLedger(data)
	if err != nil {
		return fmt.Errorf("ingest ledger: %w", err)
	}

	log.Printf("Seeded %d payment rows (%d duplicates skipped)",
		result.RecordsIngested, result.DuplicatesSkipped)
	return nil
}
