package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"talentsift/cv-matcher/internal/models"
)

// defaultDisclaimer is attached whenever the provider omits one.
const defaultDisclaimer = "This AI result supports initial CV screening based on CV content only; " +
	"it does not replace direct human evaluation (interview and probation)."

// normalizeAndEnforceResult is the trust boundary between the provider's raw
// output and the rest of the system: it sanitizes the declared seniority,
// re-applies the anti-over-level rules, drops match entries that do not
// resolve to a known posting, clamps all scores, applies the level-mismatch
// penalty, recomputes labels, sorts, and fills bestJobId/disclaimer defaults.
// No malformed input may make it fail; every field has a safe default.
func normalizeAndEnforceResult(raw map[string]any, cv *CVData, jobs []models.Job) *models.MatchResult {
	if raw == nil {
		return nil
	}

	jobsByID := make(map[string]*models.Job, len(jobs))
	jobsByCode := make(map[string]*models.Job, len(jobs))
	for i := range jobs {
		jobsByID[jobs[i].ID.String()] = &jobs[i]
		jobsByCode[jobs[i].Code] = &jobs[i]
	}

	result := &models.MatchResult{
		CandidateSummary: enforceSeniority(asMap(raw["candidateSummary"]), cv),
		Disclaimer:       asString(raw["disclaimer"]),
		ParseError:       asString(raw["_parseError"]),
	}

	candSeniority := result.CandidateSummary.Seniority

	for _, entry := range asSlice(raw["matches"]) {
		m := asMap(entry)
		if m == nil {
			continue
		}

		job := resolveJob(m, jobsByID, jobsByCode)
		if job == nil {
			// Unmapped entries are dropped; they must never surface as
			// "undefined" job titles downstream.
			continue
		}

		score := clampScore(m["score"])
		score = applyLevelPenalty(score, candSeniority, job.Level)

		result.Matches = append(result.Matches, models.JobMatch{
			JobID:     job.ID.String(),
			JobCode:   job.Code,
			JobTitle:  job.Title,
			Score:     score,
			Label:     models.LabelForScore(score),
			Reasons:   asStringSlice(m["reasons"]),
			Breakdown: coerceBreakdown(m["breakdown"]),
		})
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Score > result.Matches[j].Score
	})

	result.BestJobID = pickBestJobID(asString(raw["bestJobId"]), result.Matches)

	if result.Disclaimer == "" {
		result.Disclaimer = defaultDisclaimer
	}

	return result
}

// enforceSeniority sanitizes the provider's declared seniority against the
// closed enum, falls back to the computed hint, and applies the hard
// anti-over-level overrides. These are post-hoc corrections, not hints: the
// provider cannot be trusted to honor its own instructions.
func enforceSeniority(summary map[string]any, cv *CVData) models.CandidateSummary {
	out := models.CandidateSummary{
		MainSkills:  asStringSlice(summary["mainSkills"]),
		MainDomains: asStringSlice(summary["mainDomains"]),
		Seniority:   models.ParseSeniority(asString(summary["seniority"])),
	}
	if out.MainSkills == nil {
		out.MainSkills = []string{}
	}
	if out.MainDomains == nil {
		out.MainDomains = []string{}
	}

	if out.Seniority == models.SeniorityUnknown && cv.SeniorityHint != "" {
		out.Seniority = cv.SeniorityHint
	}

	if conf, ok := models.ParseConfidence(asString(summary["confidence"])); ok {
		out.Confidence = conf
	} else {
		out.Confidence = cv.SeniorityConfidence
	}

	enoughMonths := cv.MonthsOfExperience != nil && *cv.MonthsOfExperience >= 48

	if (cv.Signals.IsStudent || cv.Signals.IsIntern) && out.Seniority == models.SeniorityLead && !enoughMonths {
		out.Seniority = models.SeniorityMid
	}

	if cv.Signals.LeaderStudentContext && out.Seniority == models.SeniorityLead && !enoughMonths {
		out.Seniority = models.SeniorityMid
	}

	return out
}

// resolveJob reconciles a match entry against the catalog, by id first, then
// by code. Returns nil when the entry cannot be mapped.
func resolveJob(m map[string]any, byID, byCode map[string]*models.Job) *models.Job {
	if id := asString(m["jobId"]); id != "" {
		if job, ok := byID[id]; ok {
			return job
		}
	}
	if code := asString(m["jobCode"]); code != "" {
		if job, ok := byCode[code]; ok {
			return job
		}
	}
	return nil
}

// applyLevelPenalty subtracts the fixed mismatch penalty between the
// candidate tier and the tier the job level requires. Providers are observed
// to go easy on mismatched levels, so this always runs backend-side.
func applyLevelPenalty(score int, candidate models.Seniority, level models.JobLevel) int {
	required, ok := level.RequiredSeniority()
	if !ok {
		return score
	}

	dist := seniorityDistance(candidate, required)

	penalty := 0
	switch {
	case dist == 1:
		penalty = 6
	case dist == 2:
		penalty = 14
	case dist >= 3:
		penalty = 24
	}

	return clampInt(score - penalty)
}

func seniorityDistance(a, b models.Seniority) int {
	d := a.Order() - b.Order()
	if d < 0 {
		d = -d
	}
	return d
}

// pickBestJobID keeps the provider's choice only when it references a
// surviving match; otherwise the highest-scoring match wins. Nil when there
// are no matches at all.
func pickBestJobID(declared string, matches []models.JobMatch) *string {
	if len(matches) == 0 {
		return nil
	}

	if declared != "" {
		for _, m := range matches {
			if m.JobID == declared {
				return &m.JobID
			}
		}
	}

	return &matches[0].JobID
}

func coerceBreakdown(v any) models.ScoreBreakdown {
	m := asMap(v)
	if m == nil {
		return models.ScoreBreakdown{}
	}
	return models.ScoreBreakdown{
		Skills:     clampScore(m["skills"]),
		Experience: clampScore(m["experience"]),
		Education:  clampScore(m["education"]),
		Languages:  clampScore(m["languages"]),
	}
}

// clampScore coerces any JSON value to an integer score in [0,100].
// Non-numeric values become 0.
func clampScore(v any) int {
	switch n := v.(type) {
	case float64:
		return clampInt(int(math.Round(n)))
	case int:
		return clampInt(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return clampInt(int(math.Round(f)))
		}
	}
	return 0
}

func clampInt(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case fmt.Stringer:
		return s.String()
	}
	return ""
}

func asStringSlice(v any) []string {
	items := asSlice(v)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
