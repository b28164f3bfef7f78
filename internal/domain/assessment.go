package domain

import "time"

// RiskLevel is the coarse three-way default-risk classification.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskLevels lists every valid level. Used to validate artifact label
// mappings at load time.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// Action is the recommended follow-up for a scored borrower. The string
// values are wire-stable; existing callers match on them verbatim.
type Action string

const (
	ActionContinueNormal       Action = "CONTINUE_NORMAL"
	ActionMonitor              Action = "MONITOR"
	ActionSendReminder         Action = "SEND_REMINDER"
	ActionRecommendRestructure Action = "RECOMMEND_RESTRUCTURE"
	ActionEscalateToOfficer    Action = "ESCALATE_TO_OFFICER"
)

// RiskAssessment is one scoring event. Persisted append-only: records are
// inserted and read back, never updated or deleted.
//
// RiskScore carries the confidence of the predicted class when the discrete
// strategy produced the assessment, or the HIGH-class probability when the
// continuous strategy did. The two are distinct quantities; Mode records
// which one applies.
type RiskAssessment struct {
	ID                string    `json:"id"`
	BorrowerID        int       `json:"borrower_id"`
	RiskLevel         RiskLevel `json:"risk_level"`
	RiskScore         float64   `json:"risk_score"`
	RecommendedAction Action    `json:"recommended_action"`
	Explanation       string    `json:"explanation"`
	Mode              string    `json:"mode"`
	Timestamp         time.Time `json:"timestamp"`
}

// ReviewDecision is the simulated officer sign-off on an assessment.
type ReviewDecision string

const (
	ReviewAutoApproved           ReviewDecision = "AUTO_APPROVED"
	ReviewApprovedWithMonitoring ReviewDecision = "APPROVED_WITH_MONITORING"
	ReviewApprovedEscalation     ReviewDecision = "APPROVED_ESCALATION"
)

// HumanReviewOutcome pairs an assessment with the officer decision derived
// from it. Derived on demand, never persisted, and never feeds back into the
// assessment.
type HumanReviewOutcome struct {
	AssessmentID  string         `json:"assessment_id"`
	BorrowerID    int            `json:"borrower_id"`
	HumanDecision ReviewDecision `json:"human_decision"`
}
