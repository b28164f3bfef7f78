package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lendguard/riskengine/internal/domain"
)

// AssessmentRepo stores scoring events. The table is append-only: this repo
// exposes inserts and ordered reads, nothing updates or deletes a row, so
// the history behind an officer decision can always be replayed.
type AssessmentRepo struct {
	db *sql.DB
}

func NewAssessmentRepo(db *sql.DB) *AssessmentRepo {
	return &AssessmentRepo{db: db}
}

func (r *AssessmentRepo) Insert(a *domain.RiskAssessment) error {
	_, err := r.db.Exec(
		`INSERT INTO risk_records
		(id, borrower_id, risk_level, risk_score, recommended_action, explanation, mode, timestamp)
		VALUES (?,?,?,?,?,?,?,?)`,
		a.ID, a.BorrowerID, string(a.RiskLevel), a.RiskScore,
		string(a.RecommendedAction), a.Explanation, a.Mode,
		a.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert risk record: %w", err)
	}
	return nil
}

func (r *AssessmentRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM risk_records").Scan(&count)
	return count, err
}

// ListByBorrower returns a borrower's scoring history, oldest first.
func (r *AssessmentRepo) ListByBorrower(borrowerID int) ([]domain.RiskAssessment, error) {
	rows, err := r.db.Query(
		selectColumns+" FROM risk_records WHERE borrower_id = ? ORDER BY timestamp",
		borrowerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return collectAssessments(rows)
}

// ListAll returns recent assessments, newest first.
func (r *AssessmentRepo) ListAll(limit int) ([]domain.RiskAssessment, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(
		selectColumns+" FROM risk_records ORDER BY timestamp DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return collectAssessments(rows)
}

// ListByAction returns assessments that recommended the given action, newest
// first. Used for the officer review queue.
func (r *AssessmentRepo) ListByAction(action domain.Action, limit int) ([]domain.RiskAssessment, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(
		selectColumns+" FROM risk_records WHERE recommended_action = ? ORDER BY timestamp DESC LIMIT ?",
		string(action), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return collectAssessments(rows)
}

const selectColumns = `SELECT id, borrower_id, risk_level, risk_score,
	recommended_action, explanation, mode, timestamp`

func collectAssessments(rows *sql.Rows) ([]domain.RiskAssessment, error) {
	defer rows.Close()

	var result []domain.RiskAssessment
	for rows.Next() {
		var a domain.RiskAssessment
		var level, action, ts string
		if err := rows.Scan(&a.ID, &a.BorrowerID, &level, &a.RiskScore,
			&action, &a.Explanation, &a.Mode, &ts); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		a.RiskLevel = domain.RiskLevel(level)
		a.RecommendedAction = domain.Action(action)
		a.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		result = append(result, a)
	}
	return result, rows.Err()
}
