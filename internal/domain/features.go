package domain

import "fmt"

// FeatureColumns is the feature schema the classifier is trained against.
// Order matters: model artifacts record this schema and refuse to score
// vectors that do not match it.
var FeatureColumns = []string{
	"missed_emi_count",
	"avg_delay_days",
	"max_delay_days",
	"emi_income_ratio",
}

// FeatureVector is the fixed per-borrower aggregate derived from the payment
// ledger. Immutable once computed; recomputed from scratch when the ledger
// changes.
type FeatureVector struct {
	BorrowerID     int     `json:"borrower_id"`
	MissedEMICount int     `json:"missed_emi_count"`
	AvgDelayDays   float64 `json:"avg_delay_days"`
	MaxDelayDays   float64 `json:"max_delay_days"`
	EMIIncomeRatio float64 `json:"emi_income_ratio"`
}

// Values returns the vector in FeatureColumns order.
func (fv *FeatureVector) Values() []float64 {
	return []float64{
		float64(fv.MissedEMICount),
		fv.AvgDelayDays,
		fv.MaxDelayDays,
		fv.EMIIncomeRatio,
	}
}

// Validate enforces the inbound API bounds. Ratios above 1.0 are legitimate
// (EMI exceeding income) and are accepted up to 2.0.
func (fv *FeatureVector) Validate() error {
	if fv.MissedEMICount < 0 || fv.MissedEMICount > 60 {
		return fmt.Errorf("%w: missed_emi_count %d out of [0,60]", ErrInvalidRecord, fv.MissedEMICount)
	}
	if fv.AvgDelayDays < 0 || fv.AvgDelayDays > 365 {
		return fmt.Errorf("%w: avg_delay_days %.2f out of [0,365]", ErrInvalidRecord, fv.AvgDelayDays)
	}
	if fv.MaxDelayDays < 0 || fv.MaxDelayDays > 365 {
		return fmt.Errorf("%w: max_delay_days %.2f out of [0,365]", ErrInvalidRecord, fv.MaxDelayDays)
	}
	if fv.MaxDelayDays < fv.AvgDelayDays {
		return fmt.Errorf("%w: max_delay_days %.2f below avg_delay_days %.2f", ErrInvalidRecord, fv.MaxDelayDays, fv.AvgDelayDays)
	}
	if fv.EMIIncomeRatio < 0 || fv.EMIIncomeRatio > 2 {
		return fmt.Errorf("%w: emi_income_ratio %.2f out of [0,2]", ErrInvalidRecord, fv.EMIIncomeRatio)
	}
	return nil
}
