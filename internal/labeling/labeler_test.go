package labeling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lendguard/riskengine/internal/domain"
)

func vector(missed int, avgDelay, maxDelay, ratio float64) *domain.FeatureVector {
	return &domain.FeatureVector{
		BorrowerID:     1,
		MissedEMICount: missed,
		AvgDelayDays:   avgDelay,
		MaxDelayDays:   maxDelay,
		EMIIncomeRatio: ratio,
	}
}

func TestLabelSignalCounting(t *testing.T) {
	tests := []struct {
		name string
		fv   *domain.FeatureVector
		want domain.RiskLevel
	}{
		{"no signals", vector(0, 0, 0, 0.25), domain.RiskLow},
		{"missed only", vector(3, 10, 20, 0.3), domain.RiskMedium},
		{"delay only", vector(0, 30, 60, 0.3), domain.RiskMedium},
		{"ratio only", vector(0, 0, 0, 0.9), domain.RiskMedium},
		{"missed and delay", vector(3, 40, 60, 0.3), domain.RiskHigh},
		{"missed and ratio", vector(4, 0, 10, 0.95), domain.RiskHigh},
		{"delay and ratio", vector(0, 45, 75, 1.1), domain.RiskHigh},
		{"all three", vector(4, 45, 80, 0.95), domain.RiskHigh},
		{"just below thresholds", vector(2, 50, 59, 0.89), domain.RiskLow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Label(tc.fv))
		})
	}
}

func TestLabelTwoSignalsIndependentOfThird(t *testing.T) {
	// missed>=3 and maxDelay>=60 force HIGH whatever the ratio is.
	for _, ratio := range []float64{0, 0.5, 0.89, 0.9, 1.5, 2.0} {
		assert.Equal(t, domain.RiskHigh, Label(vector(3, 30, 60, ratio)),
			"ratio %.2f", ratio)
	}
}

func TestLabelDeterministic(t *testing.T) {
	fv := vector(1, 12, 35, 0.7)
	first := Label(fv)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Label(fv))
	}
}
