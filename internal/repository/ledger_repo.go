package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lendguard/riskengine/internal/domain"
)

// LedgerRepo stores the raw borrower payment ledger.
type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// BulkInsert loads payment records in one transaction, ignoring rows already
// present (same borrower and period). Returns the number of new rows.
func (r *LedgerRepo) BulkInsert(records []domain.PaymentRecord) (int, error) {
	inserted := 0
	sqlTx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	stmt, err := sqlTx.Prepare(
		`INSERT OR IGNORE INTO payments
		(borrower_id, period_index, income, emi_amount, paid, delay_days)
		VALUES (?,?,?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		res, err := stmt.Exec(
			rec.BorrowerID, rec.PeriodIndex, rec.Income, rec.EMIAmount,
			boolToInt(rec.Paid), rec.DelayDays,
		)
		if err != nil {
			return inserted, fmt.Errorf("insert row %d: %w", i, err)
		}
		ra, _ := res.RowsAffected()
		inserted += int(ra)
	}

	if err := sqlTx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func (r *LedgerRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM payments").Scan(&count)
	return count, err
}

// GetByBorrower returns one borrower's ledger in period order.
func (r *LedgerRepo) GetByBorrower(borrowerID int) ([]domain.PaymentRecord, error) {
	rows, err := r.db.Query(
		`SELECT borrower_id, period_index, income, emi_amount, paid, delay_days
		 FROM payments WHERE borrower_id = ? ORDER BY period_index`,
		borrowerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var records []domain.PaymentRecord
	for rows.Next() {
		var rec domain.PaymentRecord
		var paid int
		if err := rows.Scan(&rec.BorrowerID, &rec.PeriodIndex, &rec.Income,
			&rec.EMIAmount, &paid, &rec.DelayDays); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		rec.Paid = paid != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

// BorrowerIDs returns every distinct borrower in the ledger, ascending.
func (r *LedgerRepo) BorrowerIDs() ([]int, error) {
	rows, err := r.db.Query("SELECT DISTINCT borrower_id FROM payments ORDER BY borrower_id")
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FileExistsByHash reports whether a ledger file with this content hash has
// already been ingested.
func (r *LedgerRepo) FileExistsByHash(hash string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM ledger_files WHERE file_hash = ?", hash).Scan(&count)
	return count > 0, err
}

// RecordFile remembers an ingested ledger file for idempotency.
func (r *LedgerRepo) RecordFile(hash string, recordCount int) error {
	_, err := r.db.Exec(
		"INSERT OR IGNORE INTO ledger_files (file_hash, record_count, ingested_at) VALUES (?,?,?)",
		hash, recordCount, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record file: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
