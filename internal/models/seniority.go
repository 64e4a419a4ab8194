package models

// Seniority is the closed set of candidate tiers used across heuristics,
// provider payloads and the normalizer.
type Seniority string

const (
	SeniorityIntern  Seniority = "Intern"
	SeniorityFresher Seniority = "Fresher"
	SeniorityJunior  Seniority = "Junior"
	SeniorityMid     Seniority = "Mid"
	SenioritySenior  Seniority = "Senior"
	SeniorityLead    Seniority = "Lead"
	SeniorityUnknown Seniority = "Unknown"
)

// ParseSeniority maps a free-form provider value onto the closed enum.
// Anything unrecognized becomes Unknown.
func ParseSeniority(s string) Seniority {
	switch Seniority(s) {
	case SeniorityIntern, SeniorityFresher, SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead, SeniorityUnknown:
		return Seniority(s)
	}
	return SeniorityUnknown
}

// Order positions a tier on the fixed ladder used for level-mismatch distance.
// Unknown sits at the Junior slot.
func (s Seniority) Order() int {
	switch s {
	case SeniorityIntern:
		return 1
	case SeniorityFresher:
		return 2
	case SeniorityJunior:
		return 3
	case SeniorityMid:
		return 4
	case SenioritySenior:
		return 5
	case SeniorityLead:
		return 6
	default:
		return 3
	}
}

type SeniorityConfidence string

const (
	ConfidenceLow    SeniorityConfidence = "Low"
	ConfidenceMedium SeniorityConfidence = "Medium"
	ConfidenceHigh   SeniorityConfidence = "High"
)

func ParseConfidence(s string) (SeniorityConfidence, bool) {
	switch SeniorityConfidence(s) {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return SeniorityConfidence(s), true
	}
	return "", false
}

// MatchLabel is always derived from the final score, never taken from the provider.
type MatchLabel string

const (
	LabelSuitable  MatchLabel = "Suitable"
	LabelPotential MatchLabel = "Potential"
	LabelNotFit    MatchLabel = "NotFit"
)

// LabelForScore applies the fixed thresholds (>=75 Suitable, >=50 Potential).
func LabelForScore(score int) MatchLabel {
	if score >= 75 {
		return LabelSuitable
	}
	if score >= 50 {
		return LabelPotential
	}
	return LabelNotFit
}

// JobLevel is the catalog-side level attribute. Empty means unspecified.
type JobLevel string

const (
	LevelIntern  JobLevel = "Intern"
	LevelJunior  JobLevel = "Junior"
	LevelMiddle  JobLevel = "Middle"
	LevelSenior  JobLevel = "Senior"
	LevelManager JobLevel = "Manager"
	LevelNone    JobLevel = ""
)

// RequiredSeniority maps a job level to the tier the posting expects.
// The second return is false for unspecified levels, which incur no penalty.
func (l JobLevel) RequiredSeniority() (Seniority, bool) {
	switch l {
	case LevelIntern:
		return SeniorityIntern, true
	case LevelJunior:
		return SeniorityJunior, true
	case LevelMiddle:
		return SeniorityMid, true
	case LevelSenior:
		return SenioritySenior, true
	case LevelManager:
		return SeniorityLead, true
	}
	return "", false
}
