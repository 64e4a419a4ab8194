package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelForScoreThresholds(t *testing.T) {
	assert.Equal(t, LabelSuitable, LabelForScore(100))
	assert.Equal(t, LabelSuitable, LabelForScore(75))
	assert.Equal(t, LabelPotential, LabelForScore(74))
	assert.Equal(t, LabelPotential, LabelForScore(50))
	assert.Equal(t, LabelNotFit, LabelForScore(49))
	assert.Equal(t, LabelNotFit, LabelForScore(0))
}

func TestParseSeniority(t *testing.T) {
	assert.Equal(t, SenioritySenior, ParseSeniority("Senior"))
	assert.Equal(t, SeniorityUnknown, ParseSeniority("senior"))
	assert.Equal(t, SeniorityUnknown, ParseSeniority("Rockstar"))
	assert.Equal(t, SeniorityUnknown, ParseSeniority(""))
}

func TestSeniorityOrderLadder(t *testing.T) {
	ladder := []Seniority{SeniorityIntern, SeniorityFresher, SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead}
	for i := 1; i < len(ladder); i++ {
		assert.Greater(t, ladder[i].Order(), ladder[i-1].Order())
	}

	// Unknown sits at the Junior slot so mismatch penalties stay moderate.
	assert.Equal(t, SeniorityJunior.Order(), SeniorityUnknown.Order())
}

func TestJobLevelRequiredSeniority(t *testing.T) {
	tests := []struct {
		level JobLevel
		want  Seniority
		ok    bool
	}{
		{LevelIntern, SeniorityIntern, true},
		{LevelJunior, SeniorityJunior, true},
		{LevelMiddle, SeniorityMid, true},
		{LevelSenior, SenioritySenior, true},
		{LevelManager, SeniorityLead, true},
		{LevelNone, "", false},
		{"Weird", "", false},
	}

	for _, tt := range tests {
		got, ok := tt.level.RequiredSeniority()
		assert.Equal(t, tt.ok, ok, "level=%q", tt.level)
		assert.Equal(t, tt.want, got, "level=%q", tt.level)
	}
}

func TestParseConfidence(t *testing.T) {
	got, ok := ParseConfidence("High")
	assert.True(t, ok)
	assert.Equal(t, ConfidenceHigh, got)

	_, ok = ParseConfidence("very high")
	assert.False(t, ok)
}
