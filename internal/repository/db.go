package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens (or creates) a SQLite database at the given path and ensures
// all required tables exist. Pass ":memory:" for an in-memory database.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS payments (
			borrower_id INTEGER NOT NULL,
			period_index INTEGER NOT NULL,
			income REAL NOT NULL,
			emi_amount REAL NOT NULL,
			paid INTEGER NOT NULL,
			delay_days REAL NOT NULL,
			PRIMARY KEY (borrower_id, period_index)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_borrower ON payments(borrower_id)`,

		`CREATE TABLE IF NOT EXISTS ledger_files (
			file_hash TEXT PRIMARY KEY,
			record_count INTEGER NOT NULL,
			ingested_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS risk_records (
			id TEXT PRIMARY KEY,
			borrower_id INTEGER NOT NULL,
			risk_level TEXT NOT NULL,
			risk_score REAL NOT NULL,
			recommended_action TEXT NOT NULL,
			explanation TEXT NOT NULL,
			mode TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_risk_records_borrower ON risk_records(borrower_id)`,
		`CREATE INDEX IF NOT EXISTS idx_risk_records_timestamp ON risk_records(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_risk_records_action ON risk_records(recommended_action)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}

	return nil
}
