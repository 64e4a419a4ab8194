package handlers

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentsift/cv-matcher/internal/models"
)

type stubJobRepo struct {
	lastCode string
	created  []*models.Job
}

func (s *stubJobRepo) Create(job *models.Job) error {
	s.created = append(s.created, job)
	return nil
}

func (s *stubJobRepo) FindAll(string) ([]models.Job, error) { return nil, nil }

func (s *stubJobRepo) FindActive() ([]models.Job, error) { return nil, nil }

func (s *stubJobRepo) FindByID(uuid.UUID) (*models.Job, error) {
	return nil, errors.New("not implemented")
}

func (s *stubJobRepo) Update(*models.Job) error { return errors.New("not implemented") }

func (s *stubJobRepo) Delete(uuid.UUID) error { return errors.New("not implemented") }

func (s *stubJobRepo) LastCodeWithPrefix(string) (string, error) { return s.lastCode, nil }

func TestCodePrefixFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Backend Developer", "BD"},
		{"Senior Backend Engineer", "SBE"},
		{"Full Stack Web Developer Pro", "FSW"},
		{"", "JOB"},
		{"123 456", "JOB"},
		// Blocklisted initials fall back to the neutral prefix.
		{"Sales Executive Xpert", "JOB"},
		{"data analyst", "DA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, codePrefixFromTitle(tt.title), "title=%q", tt.title)
	}
}

func TestNextJobCodeFirstInPrefix(t *testing.T) {
	h := NewJobHandler(&stubJobRepo{})

	code, err := h.nextJobCode("Backend Developer")
	require.NoError(t, err)
	assert.Equal(t, "JD-BD-001", code)
}

func TestNextJobCodeContinuesSequence(t *testing.T) {
	h := NewJobHandler(&stubJobRepo{lastCode: "JD-BD-041"})

	code, err := h.nextJobCode("Backend Developer")
	require.NoError(t, err)
	assert.Equal(t, "JD-BD-042", code)
}

func TestNextJobCodeBeyondThreeDigits(t *testing.T) {
	h := NewJobHandler(&stubJobRepo{lastCode: "JD-BD-1000"})

	code, err := h.nextJobCode("Backend Developer")
	require.NoError(t, err)
	assert.Equal(t, "JD-BD-1001", code)
}

func TestNormalizeJobLevel(t *testing.T) {
	tests := []struct {
		in   string
		want models.JobLevel
	}{
		{"Intern", models.LevelIntern},
		{"internship", models.LevelIntern},
		{"junior", models.LevelJunior},
		{"fresher", models.LevelJunior},
		{"MID", models.LevelMiddle},
		{"middle", models.LevelMiddle},
		{"Senior", models.LevelSenior},
		{"lead", models.LevelManager},
		{"Manager", models.LevelManager},
		{"", models.LevelNone},
		{"whatever", models.LevelNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeJobLevel(tt.in), "level=%q", tt.in)
	}
}
