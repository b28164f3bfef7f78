package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/lendguard/riskengine/internal/domain"
)

// PortfolioSummary is the officer-facing analytics view over the current
// model's predictions for every borrower on file. Read-only: nothing here is
// persisted.
type PortfolioSummary struct {
	TotalCustomers    int                `json:"total_customers"`
	SummaryCounts     map[string]int     `json:"summary_counts"`
	Percentage        map[string]float64 `json:"percentage"`
	AverageConfidence float64            `json:"average_confidence"`
}

// RiskyBorrower is one entry in the top-risky listing.
type RiskyBorrower struct {
	BorrowerID     int              `json:"borrower_id"`
	RiskLevel      domain.RiskLevel `json:"risk_level"`
	Confidence     float64          `json:"confidence"`
	MissedEMICount int              `json:"missed_emi_count"`
	MaxDelayDays   float64          `json:"max_delay_days"`
	EMIIncomeRatio float64          `json:"emi_income_ratio"`
}

// Analyze classifies every borrower and returns level counts, percentages,
// and the mean prediction confidence.
func (s *Service) Analyze() (*PortfolioSummary, error) {
	predictions, err := s.predictAll()
	if err != nil {
		return nil, err
	}

	summary := &PortfolioSummary{
		TotalCustomers: len(predictions),
		SummaryCounts:  make(map[string]int),
		Percentage:     make(map[string]float64),
	}
	if len(predictions) == 0 {
		return summary, nil
	}

	var confidenceSum float64
	for _, p := range predictions {
		summary.SummaryCounts[string(p.RiskLevel)]++
		confidenceSum += p.Confidence
	}
	for level, count := range summary.SummaryCounts {
		pct := float64(count) / float64(len(predictions)) * 100
		summary.Percentage[level] = math.Round(pct*100) / 100
	}
	summary.AverageConfidence = math.Round(confidenceSum/float64(len(predictions))*1000) / 1000

	return summary, nil
}

// TopRisky returns the HIGH-risk borrowers with the strongest model
// confidence, capped at limit.
func (s *Service) TopRisky(limit int) ([]RiskyBorrower, error) {
	high, err := s.highRiskBorrowers()
	if err != nil {
		return nil, err
	}

	sort.Slice(high, func(i, j int) bool {
		return high[i].Confidence > high[j].Confidence
	})
	if limit > 0 && len(high) > limit {
		high = high[:limit]
	}
	return high, nil
}

// NeedOfficer returns every borrower the model currently classifies HIGH,
// i.e. the cases that would land on an officer's desk.
func (s *Service) NeedOfficer() ([]RiskyBorrower, error) {
	return s.highRiskBorrowers()
}

func (s *Service) highRiskBorrowers() ([]RiskyBorrower, error) {
	predictions, err := s.predictAll()
	if err != nil {
		return nil, err
	}

	var high []RiskyBorrower
	for _, p := range predictions {
		if p.RiskLevel == domain.RiskHigh {
			high = append(high, p)
		}
	}
	return high, nil
}

func (s *Service) predictAll() ([]RiskyBorrower, error) {
	ids, err := s.ledgerRepo.BorrowerIDs()
	if err != nil {
		return nil, fmt.Errorf("list borrowers: %w", err)
	}

	var predictions []RiskyBorrower
	for _, id := range ids {
		fv, err := s.FeaturesFor(id)
		if err != nil {
			return nil, err
		}
		level, confidence, err := s.classifier.Predict(fv)
		if err != nil {
			return nil, fmt.Errorf("classify borrower %d: %w", id, err)
		}
		predictions = append(predictions, RiskyBorrower{
			BorrowerID:     id,
			RiskLevel:      level,
			Confidence:     confidence,
			MissedEMICount: fv.MissedEMICount,
			MaxDelayDays:   fv.MaxDelayDays,
			EMIIncomeRatio: fv.EMIIncomeRatio,
		})
	}
	return predictions, nil
}
