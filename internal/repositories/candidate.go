package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"talentsift/cv-matcher/internal/models"
)

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindAll() ([]models.Candidate, error)
	FindByID(id uuid.UUID) (*models.Candidate, error)
	UpdateMatchResult(id uuid.UUID, result *models.MatchResult) error
	Delete(id uuid.UUID) error
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create implements CandidateRepository.
func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

// FindAll returns a light projection for the list view; rawText is omitted.
func (r *candidateRepository) FindAll() ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.
		Select("id", "full_name", "email", "match_result", "created_at").
		Order("created_at DESC").
		Find(&candidates).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	return candidates, nil
}

// FindByID implements CandidateRepository.
func (r *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("id = ?", id).First(&candidate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("candidate not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}

	return &candidate, nil
}

// UpdateMatchResult overwrites the candidate's embedded match result.
// Last write wins when concurrent re-scores race; history rows keep the trail.
func (r *candidateRepository) UpdateMatchResult(id uuid.UUID, result *models.MatchResult) error {
	res := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Update("match_result", datatypes.NewJSONType(result))

	if res.Error != nil {
		return fmt.Errorf("failed to update match result: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}

	return nil
}

// Delete implements CandidateRepository.
func (r *candidateRepository) Delete(id uuid.UUID) error {
	res := r.db.Where("id = ?", id).Delete(&models.Candidate{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete candidate: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}

	return nil
}
