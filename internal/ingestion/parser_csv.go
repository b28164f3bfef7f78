package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lendguard/riskengine/internal/domain"
)

// ParseLedgerCSV parses the loan ledger export format.
//
// Expected header:
//
//	borrower_id,month,income,emi,paid,delay_days
//
// paid accepts 0/1 as well as true/false.
func ParseLedgerCSV(data []byte) ([]domain.PaymentRecord, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 6 {
		return nil, fmt.Errorf("expected 6 columns, got %d", len(header))
	}

	var records []domain.PaymentRecord
	lineNum := 1

	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if len(row) < 6 {
			continue
		}

		borrowerID, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d borrower_id: %w", lineNum, err)
		}
		period, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d month: %w", lineNum, err)
		}
		income, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d income: %w", lineNum, err)
		}
		emi, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d emi: %w", lineNum, err)
		}
		paid, err := parsePaid(strings.TrimSpace(row[4]))
		if err != nil {
			return nil, fmt.Errorf("line %d paid: %w", lineNum, err)
		}
		delay, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d delay_days: %w", lineNum, err)
		}

		if income <= 0 {
			return nil, fmt.Errorf("line %d: income %.2f: %w", lineNum, income, domain.ErrInvalidRecord)
		}
		if delay < 0 {
			return nil, fmt.Errorf("line %d: delay_days %.2f: %w", lineNum, delay, domain.ErrInvalidRecord)
		}

		records = append(records, domain.PaymentRecord{
			BorrowerID:  borrowerID,
			PeriodIndex: period,
			Income:      income,
			EMIAmount:   emi,
			Paid:        paid,
			DelayDays:   delay,
		})
	}

	return records, nil
}

func parsePaid(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized value %q", s)
	}
}
