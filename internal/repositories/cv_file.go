package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talentsift/cv-matcher/internal/models"
)

type CVFileRepository interface {
	Create(file *models.CVFile) error
	FindByID(id uuid.UUID) (*models.CVFile, error)
	Delete(id uuid.UUID) error
}

type cvFileRepository struct {
	db *gorm.DB
}

func NewCVFileRepository(db *gorm.DB) CVFileRepository {
	return &cvFileRepository{db: db}
}

// Create implements CVFileRepository.
func (r *cvFileRepository) Create(file *models.CVFile) error {
	if err := r.db.Create(file).Error; err != nil {
		return fmt.Errorf("failed to create cv file record: %w", err)
	}

	return nil
}

// FindByID implements CVFileRepository.
func (r *cvFileRepository) FindByID(id uuid.UUID) (*models.CVFile, error) {
	var file models.CVFile
	if err := r.db.Where("id = ?", id).First(&file).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cv file not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find cv file: %w", err)
	}

	return &file, nil
}

// Delete implements CVFileRepository.
func (r *cvFileRepository) Delete(id uuid.UUID) error {
	if err := r.db.Where("id = ?", id).Delete(&models.CVFile{}).Error; err != nil {
		return fmt.Errorf("failed to delete cv file record: %w", err)
	}

	return nil
}
