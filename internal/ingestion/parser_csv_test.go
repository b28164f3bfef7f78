package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendguard/riskengine/internal/domain"
)

const sampleCSV = `borrower_id,month,income,emi,paid,delay_days
1,1,30000,9000,1,0
1,2,30000,9000,0,70
2,1,21000,8000,true,12
`

func TestParseLedgerCSV(t *testing.T) {
	records, err := ParseLedgerCSV([]byte(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, domain.PaymentRecord{
		BorrowerID: 1, PeriodIndex: 1, Income: 30000, EMIAmount: 9000, Paid: true, DelayDays: 0,
	}, records[0])
	assert.False(t, records[1].Paid)
	assert.Equal(t, 70.0, records[1].DelayDays)
	assert.True(t, records[2].Paid, "true/false spelling accepted")
}

func TestParseLedgerCSVRejectsShortHeader(t *testing.T) {
	_, err := ParseLedgerCSV([]byte("borrower_id,month,income\n1,1,30000\n"))
	assert.ErrorContains(t, err, "expected 6 columns")
}

func TestParseLedgerCSVRejectsBadPaid(t *testing.T) {
	csv := "borrower_id,month,income,emi,paid,delay_days\n1,1,30000,9000,maybe,0\n"
	_, err := ParseLedgerCSV([]byte(csv))
	assert.ErrorContains(t, err, "line 2 paid")
}

func TestParseLedgerCSVRejectsNonPositiveIncome(t *testing.T) {
	csv := "borrower_id,month,income,emi,paid,delay_days\n1,1,0,9000,1,0\n"
	_, err := ParseLedgerCSV([]byte(csv))
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
}
