package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lendguard/riskengine/internal/domain"
)

func TestDecideByLevel(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, domain.ActionEscalateToOfficer, e.DecideByLevel(domain.RiskHigh))
	assert.Equal(t, domain.ActionMonitor, e.DecideByLevel(domain.RiskMedium))
	assert.Equal(t, domain.ActionContinueNormal, e.DecideByLevel(domain.RiskLow))
}

func TestDecideByScoreBuckets(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		score float64
		want  domain.Action
	}{
		{0.0, domain.ActionMonitor},
		{0.29, domain.ActionMonitor},
		{0.30, domain.ActionSendReminder}, // boundary goes up
		{0.50, domain.ActionSendReminder},
		{0.69, domain.ActionSendReminder},
		{0.70, domain.ActionRecommendRestructure}, // boundary goes up
		{0.72, domain.ActionRecommendRestructure},
		{0.84, domain.ActionRecommendRestructure},
		{0.85, domain.ActionEscalateToOfficer}, // boundary goes up
		{0.95, domain.ActionEscalateToOfficer},
		{1.0, domain.ActionEscalateToOfficer},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, e.DecideByScore(tc.score), "score %.2f", tc.score)
	}
}

func TestExplainEscalationOrdering(t *testing.T) {
	e := NewEngine()
	fv := &domain.FeatureVector{
		BorrowerID:     2,
		MissedEMICount: 4,
		AvgDelayDays:   45,
		MaxDelayDays:   80,
		EMIIncomeRatio: 0.95,
	}

	got := e.Explain(fv, domain.ActionEscalateToOfficer, 0.91)

	assert.Equal(t,
		"Decision made because high risk score (0.91), 4 missed EMIs, high EMI burden, severe payment delay (80 days)",
		got)
}

func TestExplainEMIExceedsIncome(t *testing.T) {
	e := NewEngine()
	fv := &domain.FeatureVector{
		MissedEMICount: 2,
		MaxDelayDays:   70,
		EMIIncomeRatio: 1.2,
	}

	got := e.Explain(fv, domain.ActionEscalateToOfficer, 0.88)

	assert.Equal(t,
		"Decision made because high risk score (0.88), 2 missed EMIs, EMI exceeds income, severe payment delay (70 days)",
		got)
}

func TestExplainNonEscalation(t *testing.T) {
	e := NewEngine()
	fv := &domain.FeatureVector{
		MissedEMICount: 1,
		MaxDelayDays:   35,
		EMIIncomeRatio: 0.4,
	}

	got := e.Explain(fv, domain.ActionMonitor, 0.2)
	assert.Equal(t, "Decision made because 1 missed EMIs, occasional payment delays", got)
}

func TestExplainNoIndicatorsFallback(t *testing.T) {
	e := NewEngine()
	fv := &domain.FeatureVector{
		MissedEMICount: 0,
		MaxDelayDays:   10,
		EMIIncomeRatio: 0.3,
	}

	got := e.Explain(fv, domain.ActionMonitor, 0.15)
	assert.Equal(t, "Decision made because no significant risk indicators", got)
}

func TestAssessBuildsRecord(t *testing.T) {
	e := NewEngine()
	fv := &domain.FeatureVector{BorrowerID: 11, MissedEMICount: 4, MaxDelayDays: 80, EMIIncomeRatio: 0.95}

	a := e.Assess(fv, domain.RiskHigh, 0.92, domain.ActionEscalateToOfficer, "discrete")

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, 11, a.BorrowerID)
	assert.Equal(t, domain.RiskHigh, a.RiskLevel)
	assert.Equal(t, 0.92, a.RiskScore)
	assert.Equal(t, domain.ActionEscalateToOfficer, a.RecommendedAction)
	assert.Equal(t, "discrete", a.Mode)
	assert.Contains(t, a.Explanation, "high risk score (0.92)")
	assert.False(t, a.Timestamp.IsZero())
}
