package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"talentsift/cv-matcher/internal/models"
	"talentsift/cv-matcher/internal/repositories"
)

// MatcherService scores one candidate against every active job posting.
// This is the single public seam of the scoring pipeline.
type MatcherService interface {
	// MatchCandidateToJobs returns nil (and no error) when there are no
	// active jobs to score against.
	MatchCandidateToJobs(ctx context.Context, candidate *models.Candidate, rawText string, cvFileID uuid.UUID) (*models.MatchResult, error)
}

type matcherService struct {
	jobRepo     repositories.JobRepository
	historyRepo repositories.MatchHistoryRepository
	gemini      GeminiService
	prompt      *PromptBuilder
	provider    string
	maxRetries  int

	// now is injectable so "present" date tokens resolve deterministically in tests.
	now func() time.Time
}

func NewMatcherService(
	jobRepo repositories.JobRepository,
	historyRepo repositories.MatchHistoryRepository,
	gemini GeminiService,
	provider string,
	maxRetries int,
) MatcherService {
	if provider == "" {
		provider = "gemini"
	}
	return &matcherService{
		jobRepo:     jobRepo,
		historyRepo: historyRepo,
		gemini:      gemini,
		prompt:      NewPromptBuilder(),
		provider:    provider,
		maxRetries:  maxRetries,
		now:         time.Now,
	}
}

// MatchCandidateToJobs implements MatcherService. The pipeline is sequential:
// normalization and heuristics, one provider call, local normalization, one
// history write. History failures never fail the scoring response.
func (s *matcherService) MatchCandidateToJobs(ctx context.Context, candidate *models.Candidate, rawText string, cvFileID uuid.UUID) (*models.MatchResult, error) {
	raw := NormalizeInline(rawText)

	// Prefer the experience section for heuristics so education dates do not
	// inflate the estimate.
	heuristicText := candidate.ExperienceText
	if strings.TrimSpace(heuristicText) == "" {
		heuristicText = raw
	}

	signals := DetectSignals(heuristicText)
	months, hasMonths := EstimateExperienceMonths(heuristicText, s.now())

	cv := s.buildCVData(candidate, raw, signals, months, hasMonths)

	jobs, err := s.jobRepo.FindActive()
	if err != nil {
		return nil, fmt.Errorf("failed to load active jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	payload, err := s.prompt.BuildMatchPayload(cv, jobs)
	if err != nil {
		return nil, err
	}

	instruction := s.prompt.BuildSystemInstruction()

	parsed := s.requestScores(ctx, instruction, payload, cv)
	result := normalizeAndEnforceResult(parsed, cv, jobs)
	if result == nil {
		return nil, nil
	}

	s.recordHistory(candidate.ID, cvFileID, result)

	return result, nil
}

func (s *matcherService) buildCVData(candidate *models.Candidate, raw string, signals Signals, months int, hasMonths bool) *CVData {
	cv := &CVData{
		Name:  candidate.FullName,
		Email: candidate.Email,
		Phone: candidate.Phone,

		SkillsText:     strings.Join(candidate.Skills, ", "),
		ExperienceText: candidate.ExperienceText,
		EducationText:  candidate.EducationText,
		LanguagesText:  strings.Join(candidate.Languages, ", "),
		RawText:        raw,

		Signals:             signals,
		SeniorityHint:       DeriveSeniorityHint(signals, months, hasMonths),
		SeniorityConfidence: SeniorityHintConfidence(signals, months, hasMonths),
	}

	if hasMonths {
		years := YearsFromMonths(months)
		cv.MonthsOfExperience = &months
		cv.YearsOfExperience = &years
	}

	return cv
}

// requestScores performs the provider call and converts any non-success
// outcome into the minimal valid fallback object instead of an error. The
// provider is fundamentally untrusted; its output only enters the system
// through this parse step and the normalizer.
func (s *matcherService) requestScores(ctx context.Context, instruction, payload string, cv *CVData) map[string]any {
	raw, err := s.gemini.GenerateJSONWithRetry(ctx, instruction, payload, s.maxRetries)
	if err != nil {
		log.Printf("⚠️ Scoring provider call failed: %v\n", err)
		return s.fallbackResult(cv, err.Error())
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("⚠️ Scoring provider returned unparsable output: %v\n", err)
		return s.fallbackResult(cv, err.Error())
	}

	return parsed
}

func (s *matcherService) fallbackResult(cv *CVData, parseErr string) map[string]any {
	return map[string]any{
		"candidateSummary": map[string]any{
			"mainSkills":  []any{},
			"mainDomains": []any{},
			"seniority":   string(cv.SeniorityHint),
			"confidence":  string(cv.SeniorityConfidence),
		},
		"matches":     []any{},
		"bestJobId":   nil,
		"disclaimer":  defaultDisclaimer,
		"_parseError": parseErr,
	}
}

// recordHistory upserts one audit row per match entry. Recording partial or
// unattributable results would pollute history, so missing ids or empty
// matches make this a no-op. Failures are logged and swallowed: the scoring
// result is worth more to the caller than its audit trail.
func (s *matcherService) recordHistory(candidateID, cvFileID uuid.UUID, result *models.MatchResult) {
	if candidateID == uuid.Nil || cvFileID == uuid.Nil || len(result.Matches) == 0 {
		return
	}

	records := make([]models.MatchHistory, 0, len(result.Matches))
	for _, m := range result.Matches {
		jobID, err := uuid.Parse(m.JobID)
		if err != nil {
			continue
		}

		records = append(records, models.MatchHistory{
			CandidateID: candidateID,
			JobID:       jobID,
			Provider:    s.provider,
			CVFileID:    cvFileID,
			Score:       m.Score,
			Label:       m.Label,
			Breakdown:   datatypes.NewJSONType(m.Breakdown),
			Reasons:     datatypes.NewJSONSlice(m.Reasons),
			RawResponse: datatypes.NewJSONType(result),
		})
	}

	if err := s.historyRepo.BulkUpsert(records); err != nil {
		log.Printf("⚠️ Failed to record match history: %v\n", err)
	}
}
