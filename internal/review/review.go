// Package review simulates the loan officer sign-off layered on top of the
// decision engine. Outcomes are derived on demand and never written back.
package review

import "github.com/lendguard/riskengine/internal/domain"

// confirmEscalationScore is the score at or above which the officer confirms
// an escalation. Below it the officer downgrades the case to monitoring.
const confirmEscalationScore = 0.9

// Review applies the officer override policy to an assessment. Total over
// all valid assessments and deterministic.
func Review(a *domain.RiskAssessment) domain.HumanReviewOutcome {
	outcome := domain.HumanReviewOutcome{
		AssessmentID: a.ID,
		BorrowerID:   a.BorrowerID,
	}

	if a.RecommendedAction != domain.ActionEscalateToOfficer {
		outcome.HumanDecision = domain.ReviewAutoApproved
		return outcome
	}

	if a.RiskScore >= confirmEscalationScore {
		outcome.HumanDecision = domain.ReviewApprovedEscalation
	} else {
		outcome.HumanDecision = domain.ReviewApprovedWithMonitoring
	}
	return outcome
}
