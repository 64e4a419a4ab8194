package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

func TestEstimateExperienceMonthsSingleRange(t *testing.T) {
	months, ok := EstimateExperienceMonths("Backend Developer, Jun 2022 - Dec 2023", fixedNow)

	assert.True(t, ok)
	assert.Equal(t, 19, months)
}

func TestEstimateExperienceMonthsSlashFormat(t *testing.T) {
	months, ok := EstimateExperienceMonths("06/2022 - 12/2023", fixedNow)

	assert.True(t, ok)
	assert.Equal(t, 19, months)
}

func TestEstimateExperienceMonthsBareYears(t *testing.T) {
	// Bare years are treated as January of that year.
	months, ok := EstimateExperienceMonths("Worked there 2019 - 2022", fixedNow)

	assert.True(t, ok)
	assert.Equal(t, 37, months)
}

func TestEstimateExperienceMonthsPresentWithDash(t *testing.T) {
	// En dash, resolved against the injected clock.
	months, ok := EstimateExperienceMonths("Jan 2024 – Present", fixedNow)

	assert.True(t, ok)
	assert.Equal(t, 15, months)
}

func TestEstimateExperienceMonthsOverlapNotDoubleCounted(t *testing.T) {
	text := "Company A: Jan 2020 - Jun 2021\nCompany B: Sep 2020 - Jan 2022"

	months, ok := EstimateExperienceMonths(text, fixedNow)

	assert.True(t, ok)
	// Union Jan 2020 .. Jan 2022, not 18 + 17.
	assert.Equal(t, 25, months)
}

func TestEstimateExperienceMonthsAdjacentRangesMerge(t *testing.T) {
	text := "Jun 2022 - Dec 2023 at A. Jan 2024 - Present at B."

	months, ok := EstimateExperienceMonths(text, fixedNow)

	assert.True(t, ok)
	// Dec 2023 to Jan 2024 is back to back, so one continuous stretch.
	assert.Equal(t, 34, months)
}

func TestEstimateExperienceMonthsYearPhraseFallbacks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"span averages", "3-5 years of experience", 48},
		{"plus", "5+ years building APIs", 60},
		{"vietnamese over", "hơn 3 năm kinh nghiệm", 36},
		{"single", "2 years of experience", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			months, ok := EstimateExperienceMonths(tt.text, fixedNow)
			assert.True(t, ok)
			assert.Equal(t, tt.want, months)
		})
	}
}

func TestEstimateExperienceMonthsNothingFound(t *testing.T) {
	months, ok := EstimateExperienceMonths("Passionate developer who loves clean code", fixedNow)

	assert.False(t, ok)
	assert.Equal(t, 0, months)
}

func TestEstimateExperienceMonthsCapped(t *testing.T) {
	months, ok := EstimateExperienceMonths("1950 - 2099", fixedNow)

	assert.True(t, ok)
	assert.Equal(t, 600, months)
}

func TestYearsFromMonths(t *testing.T) {
	assert.Equal(t, 0.0, YearsFromMonths(0))
	assert.Equal(t, 1.0, YearsFromMonths(12))
	assert.Equal(t, 2.8, YearsFromMonths(34))
	assert.Equal(t, 1.6, YearsFromMonths(19))
}
