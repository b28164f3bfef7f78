// Package scoring wires the risk pipeline end to end: ledger rows are
// aggregated into features, classified, routed to an action with an
// explanation, persisted, and handed to the simulated officer review.
package scoring

import (
	"fmt"
	"log"

	"github.com/lendguard/riskengine/internal/decision"
	"github.com/lendguard/riskengine/internal/domain"
	"github.com/lendguard/riskengine/internal/features"
	"github.com/lendguard/riskengine/internal/model"
	"github.com/lendguard/riskengine/internal/repository"
	"github.com/lendguard/riskengine/internal/review"
)

// Mode selects the decision strategy for a scoring call. Discrete routes on
// the predicted class and carries the class confidence as risk_score;
// continuous routes on the HIGH-class probability and carries that instead.
type Mode string

const (
	ModeDiscrete   Mode = "discrete"
	ModeContinuous Mode = "continuous"
)

// ParseMode maps a caller-supplied mode string, defaulting to discrete.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(ModeDiscrete):
		return ModeDiscrete, nil
	case string(ModeContinuous):
		return ModeContinuous, nil
	default:
		return "", fmt.Errorf("unknown scoring mode %q", s)
	}
}

// Service runs the scoring pipeline. The classifier is injected so tests can
// substitute a fake; it is read-only shared state, safe across concurrent
// calls.
type Service struct {
	ledgerRepo     *repository.LedgerRepo
	assessmentRepo *repository.AssessmentRepo
	classifier     model.Classifier
	engine         *decision.Engine
}

func NewService(
	ledgerRepo *repository.LedgerRepo,
	assessmentRepo *repository.AssessmentRepo,
	classifier model.Classifier,
	engine *decision.Engine,
) *Service {
	return &Service{
		ledgerRepo:     ledgerRepo,
		assessmentRepo: assessmentRepo,
		classifier:     classifier,
		engine:         engine,
	}
}

// ScoreVector scores an externally supplied feature vector and persists the
// assessment.
func (s *Service) ScoreVector(fv *domain.FeatureVector, mode Mode) (*domain.RiskAssessment, error) {
	assessment, err := s.assess(fv, mode)
	if err != nil {
		return nil, err
	}
	if err := s.assessmentRepo.Insert(assessment); err != nil {
		return nil, fmt.Errorf("persist assessment: %w", err)
	}
	return assessment, nil
}

// ScoreBorrower recomputes a borrower's features from the stored ledger,
// scores them, and persists the assessment.
func (s *Service) ScoreBorrower(borrowerID int, mode Mode) (*domain.RiskAssessment, error) {
	fv, err := s.FeaturesFor(borrowerID)
	if err != nil {
		return nil, err
	}
	return s.ScoreVector(fv, mode)
}

// Snapshot scores a borrower without persisting anything. Used when a caller
// wants the model's current view, e.g. the history fallback.
func (s *Service) Snapshot(borrowerID int, mode Mode) (*domain.RiskAssessment, error) {
	fv, err := s.FeaturesFor(borrowerID)
	if err != nil {
		return nil, err
	}
	return s.assess(fv, mode)
}

// FeaturesFor aggregates a borrower's stored ledger into a feature vector.
func (s *Service) FeaturesFor(borrowerID int) (*domain.FeatureVector, error) {
	records, err := s.ledgerRepo.GetByBorrower(borrowerID)
	if err != nil {
		return nil, fmt.Errorf("load ledger for borrower %d: %w", borrowerID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("borrower %d: %w", borrowerID, domain.ErrInsufficientData)
	}
	return features.Aggregate(records)
}

// assess runs classify → decide → explain for one vector. Every failure
// names its pipeline stage; misrouting is safety-relevant, so callers must
// be able to tell an aggregation fault from a classification fault.
func (s *Service) assess(fv *domain.FeatureVector, mode Mode) (*domain.RiskAssessment, error) {
	if err := fv.Validate(); err != nil {
		return nil, fmt.Errorf("validate features: %w", err)
	}

	level, confidence, err := s.classifier.Predict(fv)
	if err != nil {
		return nil, fmt.Errorf("classify borrower %d: %w", fv.BorrowerID, err)
	}

	var score float64
	var action domain.Action
	switch mode {
	case ModeContinuous:
		score, err = s.classifier.ScoreHigh(fv)
		if err != nil {
			return nil, fmt.Errorf("classify borrower %d: %w", fv.BorrowerID, err)
		}
		action = s.engine.DecideByScore(score)
	default:
		score = confidence
		action = s.engine.DecideByLevel(level)
	}

	return s.engine.Assess(fv, level, score, action, string(mode)), nil
}

// BatchResult summarises a full portfolio scoring run.
type BatchResult struct {
	TotalBorrowers int                     `json:"total_borrowers"`
	Escalations    int                     `json:"escalations"`
	Results        []BatchRow              `json:"results"`
	ReviewCounts   map[string]int          `json:"review_counts"`
	Assessments    []domain.RiskAssessment `json:"-"`
}

// BatchRow is one borrower's outcome inside a batch run, including the
// simulated officer decision.
type BatchRow struct {
	BorrowerID        int                   `json:"borrower_id"`
	RiskLevel         domain.RiskLevel      `json:"risk_level"`
	RiskScore         float64               `json:"risk_score"`
	RecommendedAction domain.Action         `json:"recommended_action"`
	HumanDecision     domain.ReviewDecision `json:"human_decision"`
}

// ScoreAll scores every borrower in the ledger and persists each assessment.
// Borrowers are independent; a failure on one aborts the run rather than
// silently skipping a case.
func (s *Service) ScoreAll(mode Mode) (*BatchResult, error) {
	ids, err := s.ledgerRepo.BorrowerIDs()
	if err != nil {
		return nil, fmt.Errorf("list borrowers: %w", err)
	}

	result := &BatchResult{ReviewCounts: make(map[string]int)}
	for _, id := range ids {
		assessment, err := s.ScoreBorrower(id, mode)
		if err != nil {
			return nil, fmt.Errorf("score borrower %d: %w", id, err)
		}

		outcome := review.Review(assessment)
		if assessment.RecommendedAction == domain.ActionEscalateToOfficer {
			result.Escalations++
		}
		result.ReviewCounts[string(outcome.HumanDecision)]++
		result.Results = append(result.Results, BatchRow{
			BorrowerID:        assessment.BorrowerID,
			RiskLevel:         assessment.RiskLevel,
			RiskScore:         assessment.RiskScore,
			RecommendedAction: assessment.RecommendedAction,
			HumanDecision:     outcome.HumanDecision,
		})
		result.Assessments = append(result.Assessments, *assessment)
	}
	result.TotalBorrowers = len(result.Results)

	log.Printf("[scoring] Batch run (%s): %d borrowers, %d escalations",
		mode, result.TotalBorrowers, result.Escalations)

	return result, nil
}
