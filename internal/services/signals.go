package services

import (
	"regexp"
	"strings"
)

// Signals are lexical cues detected on normalized CV text. They carry no
// identity and are recomputed on every scoring run.
type Signals struct {
	IsStudent bool `json:"isStudent"`
	IsIntern  bool `json:"isIntern"`
	IsFresher bool `json:"isFresher"`

	HasStudentContext bool `json:"hasStudentContext"`
	HasWorkContext    bool `json:"hasWorkContext"`

	HasLeaderKeywords  bool `json:"hasLeaderKeywords"`
	HasManagerKeywords bool `json:"hasManagerKeywords"`

	// Leader keywords appearing only in a school/club context. Keeps a
	// university club "team leader" from counting as managerial work.
	LeaderStudentContext bool `json:"leaderStudentContext"`

	HasSeniorKeywords bool `json:"hasSeniorKeywords"`
	HasJuniorKeywords bool `json:"hasJuniorKeywords"`
}

var (
	reStudent = regexp.MustCompile(`\bstudent\b|sinh viên|đang học|undergraduate|đại học|university|college`)
	reIntern  = regexp.MustCompile(`\bintern(ship)?\b|thực tập|\btt\b`)
	reFresher = regexp.MustCompile(`\bfresher\b|mới tốt nghiệp|new graduate|fresh graduate`)

	reStudentContext = regexp.MustCompile(`clb|câu lạc bộ|đoàn|hội|tân sinh viên|khoa|trường|campus|student organization|đội tình nguyện|văn phòng khoa`)
	reWorkContext    = regexp.MustCompile(`company|công ty|doanh nghiệp|khách hàng|client|kpi|doanh thu|revenue|full[-\s]?time|part[-\s]?time|nhân viên|phòng ban|báo cáo cho|report to|stakeholder`)

	reLeader  = regexp.MustCompile(`\b(team lead|leader|lead|manager|supervisor|head of|tech lead|project lead)\b|trưởng nhóm|quản lý|trưởng bộ phận|giám sát`)
	reManager = regexp.MustCompile(`\b(manager|head of|supervisor)\b|trưởng bộ phận|quản lý|giám sát`)

	reSeniorKw = regexp.MustCompile(`\bsenior\b|\bsr\b|sr\.`)
	reJuniorKw = regexp.MustCompile(`\bjunior\b|\bjr\b|jr\.`)
)

// DetectSignals scans text for English and Vietnamese cues. Absence of
// matches yields all-false flags, which is a valid result, not an error.
func DetectSignals(text string) Signals {
	t := strings.ToLower(text)

	sig := Signals{
		IsStudent: reStudent.MatchString(t),
		IsIntern:  reIntern.MatchString(t),
		IsFresher: reFresher.MatchString(t),

		HasStudentContext: reStudentContext.MatchString(t),
		HasWorkContext:    reWorkContext.MatchString(t),

		HasLeaderKeywords:  reLeader.MatchString(t),
		HasManagerKeywords: reManager.MatchString(t),

		HasSeniorKeywords: reSeniorKw.MatchString(t),
		HasJuniorKeywords: reJuniorKw.MatchString(t),
	}

	sig.LeaderStudentContext = sig.HasLeaderKeywords && sig.HasStudentContext && !sig.HasWorkContext

	return sig
}
