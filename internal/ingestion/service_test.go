package ingestion

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendguard/riskengine/internal/repository"
)

func testService(t *testing.T) (*Service, *repository.LedgerRepo) {
	t.Helper()
	db, err := repository.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewLedgerRepo(db)
	return NewService(repo), repo
}

func TestIngestLedger(t *testing.T) {
	svc, repo := testService(t)

	result, err := svc.IngestLedger([]byte(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, result.RecordsIngested)
	assert.Equal(t, 0, result.DuplicatesSkipped)
	assert.False(t, result.AlreadyIngested)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestIngestLedgerIdempotentByHash(t *testing.T) {
	svc, repo := testService(t)

	_, err := svc.IngestLedger([]byte(sampleCSV))
	require.NoError(t, err)

	result, err := svc.IngestLedger([]byte(sampleCSV))
	require.NoError(t, err)
	assert.True(t, result.AlreadyIngested)
	assert.Equal(t, 0, result.RecordsIngested)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count, "no duplicate rows on re-ingest")
}

func TestIngestLedgerRejectsMalformedFile(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.IngestLedger([]byte("not,a,ledger\n1,2,3\n"))
	assert.Error(t, err)
}
