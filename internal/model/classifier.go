// Package model holds the trained risk classifier and its on-disk artifact.
package model

import "github.com/lendguard/riskengine/internal/domain"

// Classifier is the capability contract the scoring pipeline depends on. Any
// statistical model satisfying it can serve; the reference implementation is
// LogisticModel. Implementations are read-only after construction and safe
// for concurrent use.
type Classifier interface {
	// Predict returns the most likely risk level for the vector together
	// with the probability mass assigned to that level. The confidence is
	// the max over the class simplex, not a calibrated correctness
	// probability.
	Predict(fv *domain.FeatureVector) (domain.RiskLevel, float64, error)

	// ScoreHigh returns the probability assigned to the HIGH class. This is
	// the continuous risk score the threshold-based decision strategy
	// consumes; it is a different quantity from the Predict confidence.
	ScoreHigh(fv *domain.FeatureVector) (float64, error)
}
