package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Connection {
	t.Helper()
	conn, err := Open(filepath.Join(t.TempDir(), "postings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "postings.db")

	conn, err := Open(path)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, path, conn.Path())
}

func TestPostingHistoryRecordAndList(t *testing.T) {
	history := NewPostingHistory(openTestDB(t))

	require.NoError(t, history.Record(Posting{
		RunID:          "run-1",
		Workflow:       "daily",
		ClientCode:     "430001",
		Amount:         "1234.56",
		DocDate:        "05.03.2026",
		Action:         "FACTURA",
		DocumentNumber: "1400000123",
		Status:         StatusPostingApplied,
	}))
	require.NoError(t, history.Record(Posting{
		RunID:      "run-1",
		Workflow:   "daily",
		ClientCode: "430002",
		Amount:     "80.00",
		DocDate:    "05.03.2026",
		Action:     "TODO",
		Status:     StatusPostingNotApplied,
		Detail:     "expected screen not reached",
	}))
	require.NoError(t, history.Record(Posting{
		RunID:          "run-2",
		Workflow:       "promissory",
		ClientCode:     "430003",
		Amount:         "10000.00",
		DocDate:        "06.03.2026",
		DocumentNumber: "1400000124",
		Status:         StatusPostingApplied,
	}))

	recent, err := history.ListRecent(10)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	run1, err := history.ListByRun("run-1")
	require.NoError(t, err)
	require.Len(t, run1, 2)
	assert.Equal(t, "430001", run1[0].ClientCode)
	assert.Equal(t, StatusPostingApplied, run1[0].Status)
	assert.Equal(t, "430002", run1[1].ClientCode)
	assert.Equal(t, "expected screen not reached", run1[1].Detail)
	assert.False(t, run1[0].RecordedAt.IsZero())
}

func TestPostingHistoryListRecentLimit(t *testing.T) {
	history := NewPostingHistory(openTestDB(t))

	for i := 0; i < 5; i++ {
		require.NoError(t, history.Record(Posting{
			RunID:      "run-1",
			Workflow:   "daily",
			ClientCode: "430001",
			Amount:     "1.00",
			DocDate:    "05.03.2026",
			Status:     StatusPostingApplied,
		}))
	}

	recent, err := history.ListRecent(3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}

func TestPostingHistoryCountByStatus(t *testing.T) {
	history := NewPostingHistory(openTestDB(t))

	statuses := []PostingStatus{
		StatusPostingApplied,
		StatusPostingApplied,
		StatusPostingNotApplied,
	}
	for _, status := range statuses {
		require.NoError(t, history.Record(Posting{
			RunID:      "run-1",
			Workflow:   "batch",
			ClientCode: "430001",
			Amount:     "1.00",
			DocDate:    "05.03.2026",
			Status:     status,
		}))
	}

	counts, err := history.CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, counts[StatusPostingApplied])
	assert.Equal(t, 1, counts[StatusPostingNotApplied])
}

func TestPostingHistoryFindByDocument(t *testing.T) {
	history := NewPostingHistory(openTestDB(t))

	require.NoError(t, history.Record(Posting{
		RunID:          "run-1",
		Workflow:       "daily",
		ClientCode:     "430001",
		Amount:         "1234.56",
		DocDate:        "05.03.2026",
		DocumentNumber: "1400000123",
		Status:         StatusPostingApplied,
	}))

	found, err := history.FindByDocument("1400000123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "430001", found.ClientCode)

	missing, err := history.FindByDocument("9999999999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
