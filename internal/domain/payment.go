package domain

// PaymentRecord is one row of a borrower's monthly repayment ledger, as
// produced by the external ledger source. Records are immutable.
type PaymentRecord struct {
	BorrowerID  int     `json:"borrower_id"`
	PeriodIndex int     `json:"period_index"`
	Income      float64 `json:"income"`
	EMIAmount   float64 `json:"emi_amount"`
	Paid        bool    `json:"paid"`
	DelayDays   float64 `json:"delay_days"`
}
