package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentsift/cv-matcher/internal/models"
)

func TestBestMatchOfNilAndEmpty(t *testing.T) {
	assert.Nil(t, bestMatchOf(nil))
	assert.Nil(t, bestMatchOf(&models.MatchResult{}))
}

func TestBestMatchOfPrefersDeclaredBest(t *testing.T) {
	best := "job-2"
	result := &models.MatchResult{
		Matches: []models.JobMatch{
			{JobID: "job-1", JobTitle: "A", Score: 90},
			{JobID: "job-2", JobTitle: "B", Score: 70},
		},
		BestJobID: &best,
	}

	m := bestMatchOf(result)
	require.NotNil(t, m)
	assert.Equal(t, "job-2", m.JobID)
}

func TestBestMatchOfFallsBackToHighestScore(t *testing.T) {
	stale := "job-gone"
	result := &models.MatchResult{
		Matches: []models.JobMatch{
			{JobID: "job-1", Score: 60},
			{JobID: "job-2", Score: 85},
		},
		BestJobID: &stale,
	}

	m := bestMatchOf(result)
	require.NotNil(t, m)
	assert.Equal(t, "job-2", m.JobID)
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, 50.0, percentOf(1, 2))
	assert.Equal(t, 33.33, percentOf(1, 3))
	assert.Equal(t, 66.67, percentOf(2, 3))
	assert.Equal(t, 100.0, percentOf(3, 3))
	assert.Equal(t, 0.0, percentOf(0, 5))
}
