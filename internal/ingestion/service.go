package ingestion

import (
	"crypto/sha256"
	"fmt"
	"log"

	"github.com/lendguard/riskengine/internal/repository"
)

// IngestResult is returned from a successful ledger ingestion.
type IngestResult struct {
	RecordsIngested   int  `json:"records_ingested"`
	DuplicatesSkipped int  `json:"duplicates_skipped"`
	AlreadyIngested   bool `json:"already_ingested"`
}

// Service handles ingestion of borrower payment ledgers. Features are
// derived at scoring time from whatever the ledger holds, so ingestion only
// needs to land rows; nothing incremental is maintained.
type Service struct {
	ledgerRepo *repository.LedgerRepo
}

func NewService(ledgerRepo *repository.LedgerRepo) *Service {
	return &Service{ledgerRepo: ledgerRepo}
}

// IngestLedger parses a ledger CSV and stores the payment rows. Re-ingesting
// the same file is a no-op, keyed by content hash.
func (s *Service) IngestLedger(data []byte) (*IngestResult, error) {
	hash := fmt.Sprintf("%x", sha256.Sum256(data))
	exists, err := s.ledgerRepo.FileExistsByHash(hash)
	if err != nil {
		return nil, fmt.Errorf("check hash: %w", err)
	}
	if exists {
		return &IngestResult{AlreadyIngested: true}, nil
	}

	records, err := ParseLedgerCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}

	inserted, err := s.ledgerRepo.BulkInsert(records)
	if err != nil {
		return nil, fmt.Errorf("insert payments: %w", err)
	}

	if err := s.ledgerRepo.RecordFile(hash, len(records)); err != nil {
		return nil, err
	}

	log.Printf("[ingestion] Ingested ledger: %d rows (%d new)", len(records), inserted)

	return &IngestResult{
		RecordsIngested:   inserted,
		DuplicatesSkipped: len(records) - inserted,
	}, nil
}
