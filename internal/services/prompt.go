package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"talentsift/cv-matcher/internal/models"
)

// CVData is the structured candidate input assembled for one scoring run.
// Months/years are nil when experience could not be estimated.
type CVData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	SkillsText     string `json:"-"`
	ExperienceText string `json:"-"`
	EducationText  string `json:"-"`
	LanguagesText  string `json:"-"`
	RawText        string `json:"-"`

	SeniorityHint       models.Seniority           `json:"seniorityHint"`
	SeniorityConfidence models.SeniorityConfidence `json:"seniorityConfidence"`
	YearsOfExperience   *float64                   `json:"yearsOfExperience"`
	MonthsOfExperience  *int                       `json:"monthsOfExperience"`
	Signals             Signals                    `json:"signals"`
}

type payloadCV struct {
	CVData
	StructuredText string `json:"structuredText"`
}

type payloadJob struct {
	ID                 string `json:"id"`
	Code               string `json:"code"`
	Title              string `json:"title"`
	Level              string `json:"level"`
	Type               string `json:"type"`
	SkillsRequired     string `json:"skillsRequired"`
	ExperienceRequired string `json:"experienceRequired"`
	EducationRequired  string `json:"educationRequired"`
	Description        string `json:"description"`
}

type matchPayload struct {
	CV   payloadCV    `json:"cv"`
	Jobs []payloadJob `json:"jobs"`
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSystemInstruction returns the fixed scoring contract sent with every
// request: output schema, enums, level mapping, and the anti-over-level rules
// the normalizer re-applies afterwards anyway.
func (pb *PromptBuilder) BuildSystemInstruction() string {
	return strings.TrimSpace(`
You are an AI system matching a candidate CV against job descriptions (JDs) for HR screening.

PRINCIPLES:
- Return ONLY JSON conforming to the schema below, no extra text.
- Score fit 0-100 for the CV against each JD.
- Output must be stable and consistent across runs.

ENUMS:
- candidateSummary.seniority: Intern | Fresher | Junior | Mid | Senior | Lead | Unknown
- label: Suitable | Potential | NotFit

SENIORITY:
- Prefer cv.seniorityHint when it is not Unknown.
- If cv.seniorityHint is Unknown, infer it from the CV (experience/skills) and timeline data.

ANTI-OVER-LEVEL CONSTRAINTS:
- If signals.isStudent or signals.isIntern is true, candidateSummary.seniority must NOT be Senior/Lead
  unless monthsOfExperience >= 48.
- If signals.leaderStudentContext is true (leadership inside a club/school), candidateSummary.seniority
  is capped at Mid (Senior only if monthsOfExperience >= 48).
- Use "Lead" only with evidence of management in a company setting plus sufficient duration (prefer months).

SCORING:
- skills: match on primary skills
- experience: match on experience / projects
- education: match on education / major
- languages: match on foreign languages (when the JD requires them)
- The total score is a weighted blend and must be explainable.

LEVEL MAPPING (JD level -> required seniority):
- Intern -> Intern
- Junior -> Junior
- Middle -> Mid
- Senior -> Senior
- Manager -> Lead

If the candidate's seniority is far from the JD level, reduce the score.

EVERY MATCH MUST CARRY (exactly as given in the input jobs[]):
- jobId
- jobCode
- jobTitle

RETURN JSON:
{
  "candidateSummary": {
    "mainSkills": ["string"],
    "mainDomains": ["string"],
    "seniority": "Intern|Fresher|Junior|Mid|Senior|Lead|Unknown",
    "confidence": "Low|Medium|High"
  },
  "matches": [
    {
      "jobId": "JD id",
      "jobCode": "JD code",
      "jobTitle": "JD title",
      "score": 0-100,
      "label": "Suitable|Potential|NotFit",
      "reasons": ["..."],
      "breakdown": {
        "skills": 0-100,
        "experience": 0-100,
        "education": 0-100,
        "languages": 0-100
      }
    }
  ],
  "bestJobId": "best matching id or null",
  "disclaimer": "string"
}
`)
}

// BuildStructuredCVText flattens the candidate profile plus computed hints
// into the single-line text block embedded in the payload.
func (pb *PromptBuilder) BuildStructuredCVText(cv *CVData) string {
	years := "N/A"
	if cv.YearsOfExperience != nil {
		years = fmt.Sprintf("%.1f", *cv.YearsOfExperience)
	}
	months := "N/A"
	if cv.MonthsOfExperience != nil {
		months = fmt.Sprintf("%d", *cv.MonthsOfExperience)
	}

	signalsJSON, _ := json.Marshal(cv.Signals)

	parts := []string{
		fmt.Sprintf("CANDIDATE: %s | %s | %s", cv.Name, cv.Email, cv.Phone),
		fmt.Sprintf("SENIORITY_HINT: %s | CONFIDENCE: %s | YEARS: %s | MONTHS: %s",
			cv.SeniorityHint, cv.SeniorityConfidence, years, months),
		fmt.Sprintf("SIGNALS: %s", signalsJSON),
		"",
		fmt.Sprintf("SKILLS: %s", cv.SkillsText),
		fmt.Sprintf("EXPERIENCE: %s", cv.ExperienceText),
		fmt.Sprintf("EDUCATION: %s", cv.EducationText),
		fmt.Sprintf("LANGUAGES: %s", cv.LanguagesText),
		"",
		fmt.Sprintf("RAW_TEXT: %s", cv.RawText),
	}

	return NormalizeInline(strings.Join(parts, "\n"))
}

// BuildMatchPayload assembles the JSON payload of candidate profile plus all
// active job postings. Pure data assembly; no network call happens here.
func (pb *PromptBuilder) BuildMatchPayload(cv *CVData, jobs []models.Job) (string, error) {
	payload := matchPayload{
		CV: payloadCV{
			CVData:         *cv,
			StructuredText: pb.BuildStructuredCVText(cv),
		},
		Jobs: make([]payloadJob, 0, len(jobs)),
	}

	for _, j := range jobs {
		payload.Jobs = append(payload.Jobs, payloadJob{
			ID:                 j.ID.String(),
			Code:               j.Code,
			Title:              j.Title,
			Level:              string(j.Level),
			Type:               j.Type,
			SkillsRequired:     j.SkillsRequired,
			ExperienceRequired: j.ExperienceRequired,
			EducationRequired:  j.EducationRequired,
			Description:        j.Description,
		})
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal match payload: %w", err)
	}

	return string(data), nil
}
