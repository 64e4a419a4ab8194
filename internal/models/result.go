package models

import "time"

// CandidateRow is the light projection served to the candidates list view.
type CandidateRow struct {
	CandidateID string     `json:"candidate_id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	BestJobID   string     `json:"best_job_id,omitempty"`
	BestJob     string     `json:"best_job"`
	MatchScore  int        `json:"match_score"`
	Status      MatchLabel `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UploadMatchResponse is returned for a single processed CV.
type UploadMatchResponse struct {
	CVFile      *CVFile      `json:"cv_file"`
	Candidate   *Candidate   `json:"candidate"`
	MatchResult *MatchResult `json:"match_result"`
}

// BatchUploadItem reports per-file success or failure in a batch upload.
type BatchUploadItem struct {
	OK       bool   `json:"ok"`
	FileName string `json:"file_name"`
	Message  string `json:"message,omitempty"`

	CVFile      *CVFile      `json:"cv_file,omitempty"`
	Candidate   *Candidate   `json:"candidate,omitempty"`
	MatchResult *MatchResult `json:"match_result,omitempty"`
}

type BatchUploadResponse struct {
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
	Results []BatchUploadItem `json:"results"`
}

type JobRequest struct {
	Title              string `json:"title"`
	Level              string `json:"level"`
	Type               string `json:"type"`
	SkillsRequired     string `json:"skills_required"`
	ExperienceRequired string `json:"experience_required"`
	EducationRequired  string `json:"education_required"`
	Description        string `json:"description"`
	IsActive           *bool  `json:"is_active"`
}

// ReportSummary aggregates classification outcomes over all candidates.
type ReportSummary struct {
	TotalCV          int     `json:"total_cv"`
	Suitable         int     `json:"suitable"`
	Potential        int     `json:"potential"`
	NotFit           int     `json:"not_fit"`
	SuitablePercent  float64 `json:"suitable_percent"`
	PotentialPercent float64 `json:"potential_percent"`
	NotFitPercent    float64 `json:"not_fit_percent"`
}

// SimilarCandidate is one nearest-neighbour hit from the profile index.
type SimilarCandidate struct {
	CandidateID string  `json:"candidate_id"`
	FullName    string  `json:"full_name"`
	Score       float32 `json:"score"`
}
