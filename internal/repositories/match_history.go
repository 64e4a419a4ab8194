package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"talentsift/cv-matcher/internal/models"
)

type MatchHistoryRepository interface {
	BulkUpsert(records []models.MatchHistory) error
	FindByCandidate(candidateID uuid.UUID) ([]models.MatchHistory, error)
	DeleteByCandidate(candidateID uuid.UUID) error
}

type matchHistoryRepository struct {
	db *gorm.DB
}

func NewMatchHistoryRepository(db *gorm.DB) MatchHistoryRepository {
	return &matchHistoryRepository{db: db}
}

// BulkUpsert writes one row per match entry, keyed by
// (candidate_id, job_id, provider, cv_file_id). Re-scoring the same CV
// revision updates the existing rows instead of appending new ones.
func (r *matchHistoryRepository) BulkUpsert(records []models.MatchHistory) error {
	if len(records) == 0 {
		return nil
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "candidate_id"},
			{Name: "job_id"},
			{Name: "provider"},
			{Name: "cv_file_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "label", "breakdown", "reasons", "raw_response", "updated_at",
		}),
	}).Create(&records).Error

	if err != nil {
		return fmt.Errorf("failed to upsert match history: %w", err)
	}

	return nil
}

// FindByCandidate implements MatchHistoryRepository.
func (r *matchHistoryRepository) FindByCandidate(candidateID uuid.UUID) ([]models.MatchHistory, error) {
	var records []models.MatchHistory
	err := r.db.
		Where("candidate_id = ?", candidateID).
		Order("updated_at DESC").
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list match history: %w", err)
	}

	return records, nil
}

// DeleteByCandidate implements MatchHistoryRepository.
func (r *matchHistoryRepository) DeleteByCandidate(candidateID uuid.UUID) error {
	if err := r.db.Where("candidate_id = ?", candidateID).Delete(&models.MatchHistory{}).Error; err != nil {
		return fmt.Errorf("failed to delete match history: %w", err)
	}

	return nil
}
