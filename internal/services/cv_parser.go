package services

import (
	"regexp"
	"strings"
)

// ParsedProfile is the structured candidate data extracted from raw CV text.
type ParsedProfile struct {
	FullName string
	Email    string
	Phone    string

	Skills    []string
	Languages []string

	SkillsText     string
	ExperienceText string
	EducationText  string
	LanguagesText  string
	OtherText      string
}

// CVParserService derives a candidate profile from extracted document text.
// Pure text heuristics; best effort on every field.
type CVParserService interface {
	ParseProfile(rawText string) *ParsedProfile
}

type cvParserService struct{}

func NewCVParserService() CVParserService {
	return &cvParserService{}
}

const (
	maxSkills    = 40
	maxLanguages = 10
)

var (
	reEmail = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	// VN mobile formats plus a generic international shape
	rePhone = regexp.MustCompile(`(\+?\s?84\s?)?(0\d{9,10})|(\+?\d{1,3}[\s.\-]?\d{2,4}[\s.\-]?\d{3,4}[\s.\-]?\d{3,4})`)

	reHasLetter  = regexp.MustCompile(`[a-zA-ZÀ-ỹ]`)
	reNameSymbol = regexp.MustCompile(`[@/\\|]`)
	reHasDigit   = regexp.MustCompile(`\d`)
)

var nameBannedWords = []string{
	"curriculum vitae", "cv", "resume",
	"software engineer", "frontend", "backend", "fullstack",
	"data analyst", "developer", "engineer",
	"profile", "contact", "thông tin",
}

var sectionHeadings = map[string][]string{
	"skills": {
		"skills", "technical skills", "kỹ năng", "kỹ năng chuyên môn",
		"skill", "core skills", "tools", "technologies",
	},
	"experience": {
		"experience", "work experience", "employment", "work history",
		"kinh nghiệm", "kinh nghiệm làm việc", "dự án", "projects", "project",
	},
	"education": {
		"education", "học vấn", "trình độ học vấn", "academic",
		"qualification", "certifications", "certification", "chứng chỉ",
	},
	"languages": {
		"languages", "language", "ngoại ngữ", "ngôn ngữ",
	},
}

var skillKeywords = []string{
	// web
	"javascript", "typescript", "react", "next.js", "nextjs", "angular", "vue",
	"html", "css", "scss", "tailwind", "node.js", "nodejs", "express", "nestjs",
	// languages & backend
	"golang", "java", "c#", ".net", "php", "laravel", "spring",
	// db
	"mongodb", "mysql", "postgresql", "mssql", "redis",
	// tools
	"git", "docker", "kubernetes", "ci/cd", "jenkins",
	// cloud
	"aws", "gcp", "azure",
	// data
	"python", "pandas", "numpy", "sql", "power bi", "tableau", "excel",
	// security
	"owasp", "burp", "nmap", "wireshark",
}

var skillDisplayNames = map[string]string{
	"nodejs": "Node.js",
	"nextjs": "Next.js",
	"golang": "Go",
}

var languageRules = []struct {
	name string
	re   *regexp.Regexp
}{
	{"English", regexp.MustCompile(`\benglish\b|tiếng anh|toeic|ielts`)},
	{"Korean", regexp.MustCompile(`\bkorean\b|tiếng hàn|topik`)},
	{"Japanese", regexp.MustCompile(`\bjapanese\b|tiếng nhật|jlpt`)},
	{"Chinese", regexp.MustCompile(`\bchinese\b|tiếng trung|hsk`)},
	{"Vietnamese", regexp.MustCompile(`\bvietnamese\b|tiếng việt`)},
}

// ParseProfile implements CVParserService.
func (p *cvParserService) ParseProfile(rawText string) *ParsedProfile {
	sections := splitSections(rawText)

	profile := &ParsedProfile{
		FullName: extractName(rawText),
		Email:    extractEmail(rawText),
		Phone:    extractPhone(rawText),

		SkillsText:     sections["skills"],
		ExperienceText: sections["experience"],
		EducationText:  sections["education"],
		LanguagesText:  sections["languages"],
		OtherText:      sections["other"],
	}

	profile.Skills = extractSkills(profile.SkillsText, rawText)
	profile.Languages = extractLanguages(profile.LanguagesText, rawText)

	return profile
}

func extractEmail(text string) string {
	return strings.TrimSpace(reEmail.FindString(text))
}

func extractPhone(text string) string {
	match := rePhone.FindString(text)
	if match == "" {
		return ""
	}
	return NormalizeInline(match)
}

// extractName looks at the top lines: short, letters only, no contact data,
// none of the generic title words. Falls back to a placeholder.
func extractName(text string) string {
	lines := nonEmptyLines(text)
	if len(lines) > 8 {
		lines = lines[:8]
	}

	for _, line := range lines {
		lower := strings.ToLower(line)

		if len(lower) < 3 || len(line) > 45 {
			continue
		}
		if reEmail.MatchString(line) || rePhone.MatchString(line) {
			continue
		}

		banned := false
		for _, b := range nameBannedWords {
			if strings.Contains(lower, b) {
				banned = true
				break
			}
		}
		if banned {
			continue
		}

		if reHasLetter.MatchString(line) && !reNameSymbol.MatchString(line) && !reHasDigit.MatchString(line) {
			return strings.TrimSpace(line)
		}
	}

	return "Candidate from CV"
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitSections assigns lines to skills/experience/education/languages
// buckets based on EN/VI heading detection; everything before the first
// recognized heading lands in "other".
func splitSections(text string) map[string]string {
	buckets := map[string][]string{
		"skills":     nil,
		"experience": nil,
		"education":  nil,
		"languages":  nil,
		"other":      nil,
	}

	current := "other"
	for _, line := range nonEmptyLines(text) {
		if key := detectHeadingKey(strings.ToLower(line)); key != "" {
			current = key
			continue
		}
		buckets[current] = append(buckets[current], line)
	}

	out := make(map[string]string, len(buckets))
	for key, lines := range buckets {
		out[key] = NormalizeBlocks(strings.Join(lines, "\n"))
	}
	return out
}

// detectHeadingKey treats a short line that matches a known heading
// (optionally followed by punctuation) as a section marker.
func detectHeadingKey(lineLower string) string {
	line := strings.TrimSpace(lineLower)
	if len(line) > 60 {
		return ""
	}

	for key, headings := range sectionHeadings {
		for _, h := range headings {
			if line == h {
				return key
			}
			pattern := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(h) + `(\s*[:\-|/•].*)?$`)
			if pattern.MatchString(line) {
				return key
			}
		}
	}
	return ""
}

// extractSkills combines a curated keyword scan over the whole document with
// a comma/bullet harvest of the skills section, capped at maxSkills.
func extractSkills(skillsText, wholeText string) []string {
	found := make([]string, 0, maxSkills)
	seen := make(map[string]bool)

	add := func(skill string) {
		if len(found) >= maxSkills || seen[strings.ToLower(skill)] {
			return
		}
		seen[strings.ToLower(skill)] = true
		found = append(found, skill)
	}

	source := strings.ToLower(skillsText + "\n" + wholeText)
	for _, k := range skillKeywords {
		pattern := regexp.MustCompile(`(?i)(^|[^a-z0-9])` + regexp.QuoteMeta(k) + `($|[^a-z0-9])`)
		if pattern.MatchString(source) {
			add(displaySkillName(k))
		}
	}

	if skillsText != "" {
		for _, part := range strings.FieldsFunc(skillsText, func(r rune) bool {
			return r == ',' || r == '•' || r == '|' || r == '·' || r == '\n'
		}) {
			part = strings.TrimSpace(part)
			if len(part) < 2 || len(part) > 30 {
				continue
			}
			if strings.Contains(part, "@") {
				continue
			}
			if !reHasLetter.MatchString(part) {
				continue
			}
			// skip harvested fragments that are whole sentences
			if len(strings.Fields(part)) > 4 {
				continue
			}
			add(part)
		}
	}

	return found
}

func displaySkillName(k string) string {
	if name, ok := skillDisplayNames[strings.ToLower(k)]; ok {
		return name
	}
	return k
}

func extractLanguages(languagesText, wholeText string) []string {
	t := strings.ToLower(languagesText + "\n" + wholeText)

	var langs []string
	for _, rule := range languageRules {
		if len(langs) >= maxLanguages {
			break
		}
		if rule.re.MatchString(t) {
			langs = append(langs, rule.name)
		}
	}
	return langs
}
