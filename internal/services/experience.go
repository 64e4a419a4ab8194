package services

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Duration estimates are capped so a stray date token cannot produce a
// multi-century career.
const maxExperienceMonths = 600

var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

var (
	reDateRange = regexp.MustCompile(`(\b(?:\d{1,2}[/-]\d{4}|[a-z]{3,9}\s+\d{4}|\d{4})\b)\s*-\s*(\b(?:\d{1,2}[/-]\d{4}|[a-z]{3,9}\s+\d{4}|present|now|current|hiện tại|\d{4})\b)`)

	reMonthNameYear = regexp.MustCompile(`\b([a-z]{3,9})\b\W+(\d{4})`)
	reMonthSlash    = regexp.MustCompile(`(\d{1,2})\s*[/-]\s*(\d{4})`)
	reBareYear      = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	rePresent       = regexp.MustCompile(`present|now|current|hiện tại|nay`)

	reYearSpan   = regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*(years?|năm)`)
	reYearPlus   = regexp.MustCompile(`(\d+)\s*\+\s*(years?|năm)`)
	reYearOver   = regexp.MustCompile(`hơn\s*(\d+)\s*năm`)
	reYearSingle = regexp.MustCompile(`(\d+)\s*(years?|năm)`)
)

type yearMonth struct {
	year  int
	month int
}

// index maps a year/month onto a flat month axis for interval arithmetic.
func (ym yearMonth) index() int {
	return ym.year*12 + (ym.month - 1)
}

type monthRange struct {
	start int
	end   int
}

// parseYearMonth resolves one date token: "jun 2025", "06/2025", bare "2023"
// (treated as January), or a present-tense marker resolved against now.
func parseYearMonth(token string, now time.Time) (yearMonth, bool) {
	s := strings.ToLower(strings.TrimSpace(token))

	if m := reMonthNameYear.FindStringSubmatch(s); m != nil {
		if mm, ok := monthNames[m[1]]; ok {
			if yy, err := strconv.Atoi(m[2]); err == nil && yy > 0 {
				return yearMonth{year: yy, month: mm}, true
			}
		}
	}

	if m := reMonthSlash.FindStringSubmatch(s); m != nil {
		mm, _ := strconv.Atoi(m[1])
		yy, _ := strconv.Atoi(m[2])
		if mm >= 1 && mm <= 12 && yy >= 1970 {
			return yearMonth{year: yy, month: mm}, true
		}
	}

	if m := reBareYear.FindStringSubmatch(s); m != nil {
		yy, _ := strconv.Atoi(m[1])
		return yearMonth{year: yy, month: 1}, true
	}

	if rePresent.MatchString(s) {
		return yearMonth{year: now.Year(), month: int(now.Month())}, true
	}

	return yearMonth{}, false
}

// mergeMonthRanges collapses overlapping or back-to-back (gap <= 1 month)
// intervals so concurrent positions are not double-counted.
func mergeMonthRanges(ranges []monthRange) []monthRange {
	if len(ranges) == 0 {
		return nil
	}

	valid := make([]monthRange, 0, len(ranges))
	for _, r := range ranges {
		if r.end >= r.start {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	sort.Slice(valid, func(i, j int) bool { return valid[i].start < valid[j].start })

	merged := []monthRange{valid[0]}
	for _, cur := range valid[1:] {
		last := &merged[len(merged)-1]
		if cur.start <= last.end+1 {
			if cur.end > last.end {
				last.end = cur.end
			}
		} else {
			merged = append(merged, cur)
		}
	}

	return merged
}

// EstimateExperienceMonths scans free text for date ranges and, failing that,
// year-count phrases, and returns the total months of experience. The second
// return is false when nothing usable was found.
func EstimateExperienceMonths(text string, now time.Time) (int, bool) {
	// En/em dashes behave like hyphens in CV date ranges.
	t := strings.NewReplacer("–", "-", "—", "-").Replace(text)
	lower := strings.ToLower(t)

	var ranges []monthRange
	for _, m := range reDateRange.FindAllStringSubmatch(lower, -1) {
		from, okFrom := parseYearMonth(m[1], now)
		to, okTo := parseYearMonth(m[2], now)
		if okFrom && okTo {
			ranges = append(ranges, monthRange{start: from.index(), end: to.index()})
		}
	}

	months := 0
	if len(ranges) > 0 {
		for _, r := range mergeMonthRanges(ranges) {
			months += r.end - r.start + 1
		}
	} else {
		months = estimateMonthsFromYearPhrases(lower)
	}

	if months <= 0 {
		return 0, false
	}
	if months > maxExperienceMonths {
		months = maxExperienceMonths
	}

	return months, true
}

func estimateMonthsFromYearPhrases(lower string) int {
	if m := reYearSpan.FindStringSubmatch(lower); m != nil {
		a, errA := strconv.Atoi(m[1])
		b, errB := strconv.Atoi(m[2])
		if errA == nil && errB == nil {
			return int(math.Round(float64(a+b)/2)) * 12
		}
	}

	if m := reYearPlus.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n * 12
		}
	}

	if m := reYearOver.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n * 12
		}
	}

	if m := reYearSingle.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n * 12
		}
	}

	return 0
}

// YearsFromMonths converts to years rounded to one decimal.
func YearsFromMonths(months int) float64 {
	if months <= 0 {
		return 0
	}
	return math.Round(float64(months)/12*10) / 10
}
