package features

import (
	"fmt"

	"github.com/lendguard/riskengine/internal/domain"
)

// Aggregate collapses one borrower's payment ledger into a FeatureVector.
// The input must be non-empty and belong to a single borrower; rows are
// expected in period order but the aggregates do not depend on it.
//
// emi_income_ratio is the mean of per-period emi/income ratios, not
// mean(emi)/mean(income). Income can drop mid-history and the per-period
// ratio is what captures that pressure.
func Aggregate(records []domain.PaymentRecord) (*domain.FeatureVector, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("aggregate features: %w", domain.ErrInsufficientData)
	}

	borrowerID := records[0].BorrowerID
	missed := 0
	var delaySum, maxDelay, ratioSum float64

	for i, rec := range records {
		if rec.Income <= 0 {
			return nil, fmt.Errorf("aggregate features: row %d borrower %d: income %.2f: %w",
				i, rec.BorrowerID, rec.Income, domain.ErrInvalidRecord)
		}
		if rec.DelayDays < 0 {
			return nil, fmt.Errorf("aggregate features: row %d borrower %d: negative delay_days %.2f: %w",
				i, rec.BorrowerID, rec.DelayDays, domain.ErrInvalidRecord)
		}
		if !rec.Paid {
			missed++
		}
		delaySum += rec.DelayDays
		if rec.DelayDays > maxDelay {
			maxDelay = rec.DelayDays
		}
		ratioSum += rec.EMIAmount / rec.Income
	}

	n := float64(len(records))
	return &domain.FeatureVector{
		BorrowerID:     borrowerID,
		MissedEMICount: missed,
		AvgDelayDays:   delaySum / n,
		MaxDelayDays:   maxDelay,
		EMIIncomeRatio: ratioSum / n,
	}, nil
}
