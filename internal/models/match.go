package models

// CandidateSummary is the provider's (post-normalization) view of the candidate.
type CandidateSummary struct {
	MainSkills  []string            `json:"mainSkills"`
	MainDomains []string            `json:"mainDomains"`
	Seniority   Seniority           `json:"seniority"`
	Confidence  SeniorityConfidence `json:"confidence"`
}

type ScoreBreakdown struct {
	Skills     int `json:"skills"`
	Experience int `json:"experience"`
	Education  int `json:"education"`
	Languages  int `json:"languages"`
}

// JobMatch is one (candidate, job) scoring entry. Every entry in a finalized
// MatchResult resolves to a known job posting; the label always equals
// LabelForScore(Score).
type JobMatch struct {
	JobID     string         `json:"jobId"`
	JobCode   string         `json:"jobCode"`
	JobTitle  string         `json:"jobTitle"`
	Score     int            `json:"score"`
	Label     MatchLabel     `json:"label"`
	Reasons   []string       `json:"reasons"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// MatchResult is the normalized outcome of one scoring run. It is stored as a
// JSON document on the candidate and overwritten on every re-run; durable
// history lives in MatchHistory rows.
type MatchResult struct {
	CandidateSummary CandidateSummary `json:"candidateSummary"`
	Matches          []JobMatch       `json:"matches"`
	BestJobID        *string          `json:"bestJobId"`
	Disclaimer       string           `json:"disclaimer"`

	// ParseError carries a diagnostic marker when the provider returned
	// unparsable output. It never changes the response shape.
	ParseError string `json:"_parseError,omitempty"`
}
