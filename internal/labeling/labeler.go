// Package labeling holds the rule-based bootstrap labeler used to produce
// ground-truth risk levels for classifier training. It is a fixed, auditable
// heuristic and is never consulted at serving time; the runtime classifier is
// a fitted approximation of it, kept separate so model drift stays visible.
package labeling

import "github.com/lendguard/riskengine/internal/domain"

// High-signal thresholds. Two or more signals mean HIGH risk.
const (
	missedEMIThreshold = 3
	maxDelayThreshold  = 60.0
	emiRatioThreshold  = 0.9
)

// Label assigns a risk level to a feature vector by counting strong distress
// signals. Deterministic and total over all valid vectors.
func Label(fv *domain.FeatureVector) domain.RiskLevel {
	highSignals := 0

	if fv.MissedEMICount >= missedEMIThreshold {
		highSignals++
	}
	if fv.MaxDelayDays >= maxDelayThreshold {
		highSignals++
	}
	if fv.EMIIncomeRatio >= emiRatioThreshold {
		highSignals++
	}

	switch {
	case highSignals >= 2:
		return domain.RiskHigh
	case highSignals == 1:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
