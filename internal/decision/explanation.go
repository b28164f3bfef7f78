package decision

import (
	"fmt"
	"strings"

	"github.com/lendguard/riskengine/internal/domain"
)

// Thresholds for the explanation fragments. severeDelayDays matches the
// labeler's HIGH signal; occasionalDelayDays is the softer note used on
// non-escalation paths.
const (
	severeDelayDays     = 60.0
	occasionalDelayDays = 30.0
	highBurdenRatio     = 0.6
)

const explanationPrefix = "Decision made because "

// Explain builds the one-sentence justification for an action. Fragments are
// appended in a fixed order so officers always read the score first on
// escalations, then missed payments, then burden, then delays.
func (e *Engine) Explain(fv *domain.FeatureVector, action domain.Action, score float64) string {
	var reasons []string

	if action == domain.ActionEscalateToOfficer {
		reasons = append(reasons, fmt.Sprintf("high risk score (%.2f)", score))

		if fv.MissedEMICount > 0 {
			reasons = append(reasons, fmt.Sprintf("%d missed EMIs", fv.MissedEMICount))
		}
		if fv.EMIIncomeRatio > 1 {
			reasons = append(reasons, "EMI exceeds income")
		} else if fv.EMIIncomeRatio > highBurdenRatio {
			reasons = append(reasons, "high EMI burden")
		}
		if fv.MaxDelayDays >= severeDelayDays {
			reasons = append(reasons, fmt.Sprintf("severe payment delay (%d days)", int(fv.MaxDelayDays)))
		}
	} else {
		if fv.MissedEMICount > 0 {
			reasons = append(reasons, fmt.Sprintf("%d missed EMIs", fv.MissedEMICount))
		}
		if fv.MaxDelayDays >= occasionalDelayDays {
			reasons = append(reasons, "occasional payment delays")
		}
	}

	// A clean history on a non-escalation path produces no fragments; emit a
	// defined sentence instead of a dangling join.
	if len(reasons) == 0 {
		return explanationPrefix + "no significant risk indicators"
	}

	return explanationPrefix + strings.Join(reasons, ", ")
}
