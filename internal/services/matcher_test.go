package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentsift/cv-matcher/internal/models"
)

type stubGemini struct {
	response    string
	err         error
	calls       int
	lastPayload string
}

func (s *stubGemini) GenerateJSON(ctx context.Context, instruction, payload string) (string, error) {
	return s.response, s.err
}

func (s *stubGemini) GenerateJSONWithRetry(ctx context.Context, instruction, payload string, maxRetries int) (string, error) {
	s.calls++
	s.lastPayload = payload
	return s.response, s.err
}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

type stubJobRepo struct {
	active []models.Job
	err    error
}

func (s *stubJobRepo) Create(*models.Job) error { return errors.New("not implemented") }

func (s *stubJobRepo) FindAll(string) ([]models.Job, error) { return s.active, s.err }

func (s *stubJobRepo) FindActive() ([]models.Job, error) { return s.active, s.err }

func (s *stubJobRepo) FindByID(uuid.UUID) (*models.Job, error) {
	return nil, errors.New("not implemented")
}

func (s *stubJobRepo) Update(*models.Job) error { return errors.New("not implemented") }

func (s *stubJobRepo) Delete(uuid.UUID) error { return errors.New("not implemented") }

func (s *stubJobRepo) LastCodeWithPrefix(string) (string, error) { return "", nil }

type stubHistoryRepo struct {
	records []models.MatchHistory
	err     error
}

func (s *stubHistoryRepo) BulkUpsert(records []models.MatchHistory) error {
	s.records = append(s.records, records...)
	return s.err
}

func (s *stubHistoryRepo) FindByCandidate(uuid.UUID) ([]models.MatchHistory, error) {
	return s.records, nil
}

func (s *stubHistoryRepo) DeleteByCandidate(uuid.UUID) error { return nil }

func newTestMatcher(jobs *stubJobRepo, history *stubHistoryRepo, gemini *stubGemini) *matcherService {
	ms := NewMatcherService(jobs, history, gemini, "gemini", 3).(*matcherService)
	ms.now = func() time.Time { return fixedNow }
	return ms
}

func TestMatchCandidateToJobsEndToEnd(t *testing.T) {
	jobID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	jobs := &stubJobRepo{active: []models.Job{{
		ID:    jobID,
		Code:  "JD-BE-001",
		Title: "Senior Backend Developer",
		Level: models.LevelSenior,
	}}}
	history := &stubHistoryRepo{}
	gemini := &stubGemini{response: fmt.Sprintf(`{
		"candidateSummary": {
			"mainSkills": ["Go", "Postgres"],
			"mainDomains": ["Backend"],
			"seniority": "Mid",
			"confidence": "Medium"
		},
		"matches": [{
			"jobId": "%s",
			"jobCode": "JD-BE-001",
			"jobTitle": "Senior Backend Developer",
			"score": 80,
			"label": "Suitable",
			"reasons": ["solid backend experience"],
			"breakdown": {"skills": 85, "experience": 75, "education": 60, "languages": 50}
		}],
		"bestJobId": "%s",
		"disclaimer": "screening aid"
	}`, jobID, jobID)}

	matcher := newTestMatcher(jobs, history, gemini)

	candidate := &models.Candidate{
		ID:             uuid.New(),
		FullName:       "Nguyen Van A",
		ExperienceText: "Backend Developer, Jun 2022 - Dec 2023 at A. Jan 2024 - Present at B.",
	}
	cvFileID := uuid.New()

	result, err := matcher.MatchCandidateToJobs(context.Background(), candidate, candidate.ExperienceText, cvFileID)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, gemini.calls)
	assert.Contains(t, gemini.lastPayload, "JD-BE-001")

	// 34 months of merged experience keeps the candidate at Mid; the Senior
	// job level costs the fixed distance-1 penalty.
	assert.Equal(t, models.SeniorityMid, result.CandidateSummary.Seniority)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 74, result.Matches[0].Score)
	assert.Equal(t, models.LabelPotential, result.Matches[0].Label)

	require.NotNil(t, result.BestJobID)
	assert.Equal(t, jobID.String(), *result.BestJobID)
	assert.Equal(t, "screening aid", result.Disclaimer)

	// One history row per match, keyed to this candidate and CV revision.
	require.Len(t, history.records, 1)
	rec := history.records[0]
	assert.Equal(t, candidate.ID, rec.CandidateID)
	assert.Equal(t, jobID, rec.JobID)
	assert.Equal(t, "gemini", rec.Provider)
	assert.Equal(t, cvFileID, rec.CVFileID)
	assert.Equal(t, 74, rec.Score)
	assert.Equal(t, models.LabelPotential, rec.Label)
}

func TestMatchCandidateToJobsNoActiveJobs(t *testing.T) {
	jobs := &stubJobRepo{}
	history := &stubHistoryRepo{}
	gemini := &stubGemini{response: `{}`}

	matcher := newTestMatcher(jobs, history, gemini)

	result, err := matcher.MatchCandidateToJobs(context.Background(), &models.Candidate{ID: uuid.New()}, "some text", uuid.New())
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, gemini.calls)
	assert.Empty(t, history.records)
}

func TestMatchCandidateToJobsUnparsableProviderOutput(t *testing.T) {
	jobs := &stubJobRepo{active: []models.Job{{ID: uuid.New(), Code: "JD-BE-001", Title: "Backend"}}}
	history := &stubHistoryRepo{}
	gemini := &stubGemini{response: "I am sorry, I cannot produce JSON today."}

	matcher := newTestMatcher(jobs, history, gemini)

	candidate := &models.Candidate{
		ID:             uuid.New(),
		ExperienceText: "Senior engineer, 5+ years of experience at a company",
	}

	result, err := matcher.MatchCandidateToJobs(context.Background(), candidate, candidate.ExperienceText, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.ParseError)
	assert.Empty(t, result.Matches)
	assert.Nil(t, result.BestJobID)
	assert.NotEmpty(t, result.Disclaimer)
	// The heuristic hint survives into the fallback summary.
	assert.Equal(t, models.SenioritySenior, result.CandidateSummary.Seniority)
	assert.Empty(t, history.records)
}

func TestMatchCandidateToJobsProviderError(t *testing.T) {
	jobs := &stubJobRepo{active: []models.Job{{ID: uuid.New(), Code: "JD-BE-001", Title: "Backend"}}}
	history := &stubHistoryRepo{}
	gemini := &stubGemini{err: errors.New("rate limited")}

	matcher := newTestMatcher(jobs, history, gemini)

	result, err := matcher.MatchCandidateToJobs(context.Background(), &models.Candidate{ID: uuid.New()}, "text", uuid.New())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Contains(t, result.ParseError, "rate limited")
	assert.Empty(t, result.Matches)
}

func TestMatchCandidateToJobsNoHistoryWithoutCVFile(t *testing.T) {
	jobID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	jobs := &stubJobRepo{active: []models.Job{{ID: jobID, Code: "JD-BE-001", Title: "Backend"}}}
	history := &stubHistoryRepo{}
	gemini := &stubGemini{response: fmt.Sprintf(
		`{"candidateSummary":{"seniority":"Mid"},"matches":[{"jobId":"%s","score":70}]}`, jobID)}

	matcher := newTestMatcher(jobs, history, gemini)

	result, err := matcher.MatchCandidateToJobs(context.Background(), &models.Candidate{ID: uuid.New()}, "text", uuid.Nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Matches, 1)

	assert.Empty(t, history.records)
}

func TestMatchCandidateToJobsHistoryFailureDoesNotFailScoring(t *testing.T) {
	jobID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	jobs := &stubJobRepo{active: []models.Job{{ID: jobID, Code: "JD-BE-001", Title: "Backend"}}}
	history := &stubHistoryRepo{err: errors.New("db down")}
	gemini := &stubGemini{response: fmt.Sprintf(
		`{"candidateSummary":{"seniority":"Mid"},"matches":[{"jobId":"%s","score":70}]}`, jobID)}

	matcher := newTestMatcher(jobs, history, gemini)

	result, err := matcher.MatchCandidateToJobs(context.Background(), &models.Candidate{ID: uuid.New()}, "text", uuid.New())
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Matches, 1)
}
