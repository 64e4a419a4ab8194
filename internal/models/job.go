package models

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code  string    `gorm:"type:text;not null;uniqueIndex" json:"code"`
	Title string    `gorm:"type:text;not null" json:"title"`

	Level JobLevel `gorm:"type:text;default:''" json:"level"`
	Type  string   `gorm:"type:text;default:''" json:"type"`

	SkillsRequired     string `gorm:"type:text" json:"skills_required"`
	ExperienceRequired string `gorm:"type:text" json:"experience_required"`
	EducationRequired  string `gorm:"type:text" json:"education_required"`
	Description        string `gorm:"type:text" json:"description"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}
