package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talentsift/cv-matcher/internal/models"
)

type JobRepository interface {
	Create(job *models.Job) error
	FindAll(keyword string) ([]models.Job, error)
	FindActive() ([]models.Job, error)
	FindByID(id uuid.UUID) (*models.Job, error)
	Update(job *models.Job) error
	Delete(id uuid.UUID) error
	LastCodeWithPrefix(prefix string) (string, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(job *models.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// FindAll lists postings, optionally filtered by a code/title keyword.
func (r *jobRepository) FindAll(keyword string) ([]models.Job, error) {
	query := r.db.Order("created_at DESC")
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("code ILIKE ? OR title ILIKE ?", like, like)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// FindActive returns the catalog a scoring run matches against.
func (r *jobRepository) FindActive() ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.Where("is_active = ?", true).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}

	return jobs, nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	return &job, nil
}

// Update implements JobRepository. The code column is immutable and never updated.
func (r *jobRepository) Update(job *models.Job) error {
	res := r.db.Model(&models.Job{}).
		Where("id = ?", job.ID).
		Omit("code", "created_at").
		Select("title", "level", "type", "skills_required", "experience_required",
			"education_required", "description", "is_active", "updated_at").
		Updates(job)

	if res.Error != nil {
		return fmt.Errorf("failed to update job: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("job not found")
	}

	return nil
}

// Delete implements JobRepository.
func (r *jobRepository) Delete(id uuid.UUID) error {
	res := r.db.Where("id = ?", id).Delete(&models.Job{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete job: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("job not found")
	}

	return nil
}

// LastCodeWithPrefix returns the highest generated code for a prefix,
// or empty string when none exists yet. Longer codes carry a larger numeric
// suffix, so length sorts before the lexicographic tie-break; plain
// "ORDER BY code DESC" would rank 999 above 1000.
func (r *jobRepository) LastCodeWithPrefix(prefix string) (string, error) {
	var job models.Job
	err := r.db.
		Where("code LIKE ?", prefix+"%").
		Order("length(code) DESC, code DESC").
		First(&job).Error

	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to find last job code: %w", err)
	}

	return job.Code, nil
}
