// Package decision maps classifier output to a recommended action and a
// human-readable justification.
package decision

import (
	"time"

	"github.com/google/uuid"

	"github.com/lendguard/riskengine/internal/domain"
)

// Continuous-strategy thresholds. Intervals are half-open; a boundary value
// belongs to the upper bucket.
const (
	reminderThreshold    = 0.30
	restructureThreshold = 0.70
	escalateThreshold    = 0.85
)

// Engine turns (risk level or risk score, raw signals) into an action plus
// explanation. Pure and stateless; both decision strategies the system has
// grown are kept as explicit named entrypoints so callers choose one rather
// than inherit whichever happened to ship last.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// DecideByLevel is the discrete strategy: the action is a function of the
// predicted risk level alone.
func (e *Engine) DecideByLevel(level domain.RiskLevel) domain.Action {
	switch level {
	case domain.RiskHigh:
		return domain.ActionEscalateToOfficer
	case domain.RiskMedium:
		return domain.ActionMonitor
	default:
		return domain.ActionContinueNormal
	}
}

// DecideByScore is the continuous strategy: the action is a function of the
// HIGH-class probability.
func (e *Engine) DecideByScore(score float64) domain.Action {
	switch {
	case score < reminderThreshold:
		return domain.ActionMonitor
	case score < restructureThreshold:
		return domain.ActionSendReminder
	case score < escalateThreshold:
		return domain.ActionRecommendRestructure
	default:
		return domain.ActionEscalateToOfficer
	}
}

// Assess assembles a full RiskAssessment record from classifier output and
// the underlying feature vector. mode names the strategy that produced the
// action ("discrete" or "continuous") so readers of the persisted record
// know how to read risk_score.
func (e *Engine) Assess(fv *domain.FeatureVector, level domain.RiskLevel, score float64, action domain.Action, mode string) *domain.RiskAssessment {
	return &domain.RiskAssessment{
		ID:                uuid.NewString(),
		BorrowerID:        fv.BorrowerID,
		RiskLevel:         level,
		RiskScore:         score,
		RecommendedAction: action,
		Explanation:       e.Explain(fv, action, score),
		Mode:              mode,
		Timestamp:         time.Now().UTC(),
	}
}
