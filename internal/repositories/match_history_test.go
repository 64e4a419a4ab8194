package repositories

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"talentsift/cv-matcher/internal/models"
)

// Hand-written schema so the composite unique constraint is pinned down
// explicitly; it must keep matching the column list in BulkUpsert's
// OnConflict clause.
const matchHistoryDDL = `
CREATE TABLE match_history (
	id TEXT PRIMARY KEY,
	candidate_id TEXT NOT NULL,
	job_id TEXT NOT NULL,
	provider TEXT NOT NULL DEFAULT 'gemini',
	cv_file_id TEXT NOT NULL,
	score INTEGER,
	label TEXT,
	breakdown TEXT,
	reasons TEXT,
	raw_response TEXT,
	created_at DATETIME,
	updated_at DATETIME,
	CONSTRAINT idx_match_history_key UNIQUE (candidate_id, job_id, provider, cv_file_id)
);`

func newHistoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(matchHistoryDDL).Error)

	return db
}

func historyRecord(candidateID, jobID, cvFileID uuid.UUID, score int) models.MatchHistory {
	return models.MatchHistory{
		ID:          uuid.New(),
		CandidateID: candidateID,
		JobID:       jobID,
		Provider:    "gemini",
		CVFileID:    cvFileID,
		Score:       score,
		Label:       models.LabelForScore(score),
		Breakdown:   datatypes.NewJSONType(models.ScoreBreakdown{Skills: score}),
		Reasons:     datatypes.NewJSONSlice([]string{"reason"}),
	}
}

func TestBulkUpsertSameTupleUpdatesInPlace(t *testing.T) {
	repo := NewMatchHistoryRepository(newHistoryTestDB(t))

	candidateID := uuid.New()
	jobID := uuid.New()
	cvFileID := uuid.New()

	first := historyRecord(candidateID, jobID, cvFileID, 60)
	require.NoError(t, repo.BulkUpsert([]models.MatchHistory{first}))

	// Re-scoring the same CV revision must overwrite, not append.
	require.NoError(t, repo.BulkUpsert([]models.MatchHistory{
		historyRecord(candidateID, jobID, cvFileID, 80),
	}))

	records, err := repo.FindByCandidate(candidateID)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, first.ID, records[0].ID)
	assert.Equal(t, 80, records[0].Score)
	assert.Equal(t, models.LabelSuitable, records[0].Label)
}

func TestBulkUpsertNewCVFileAppendsRow(t *testing.T) {
	repo := NewMatchHistoryRepository(newHistoryTestDB(t))

	candidateID := uuid.New()
	jobID := uuid.New()

	require.NoError(t, repo.BulkUpsert([]models.MatchHistory{
		historyRecord(candidateID, jobID, uuid.New(), 60),
	}))
	// A new CV revision is a new tuple: both runs stay on record.
	require.NoError(t, repo.BulkUpsert([]models.MatchHistory{
		historyRecord(candidateID, jobID, uuid.New(), 70),
	}))

	records, err := repo.FindByCandidate(candidateID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestBulkUpsertEmptyIsNoOp(t *testing.T) {
	repo := NewMatchHistoryRepository(newHistoryTestDB(t))

	assert.NoError(t, repo.BulkUpsert(nil))
	assert.NoError(t, repo.BulkUpsert([]models.MatchHistory{}))
}

func TestDeleteByCandidateRemovesAllRows(t *testing.T) {
	repo := NewMatchHistoryRepository(newHistoryTestDB(t))

	candidateID := uuid.New()
	other := uuid.New()

	require.NoError(t, repo.BulkUpsert([]models.MatchHistory{
		historyRecord(candidateID, uuid.New(), uuid.New(), 60),
		historyRecord(candidateID, uuid.New(), uuid.New(), 70),
		historyRecord(other, uuid.New(), uuid.New(), 50),
	}))

	require.NoError(t, repo.DeleteByCandidate(candidateID))

	records, err := repo.FindByCandidate(candidateID)
	require.NoError(t, err)
	assert.Empty(t, records)

	kept, err := repo.FindByCandidate(other)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
