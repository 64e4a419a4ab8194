package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Candidate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"type:text" json:"full_name"`
	Email    string    `gorm:"type:text;index" json:"email"`
	Phone    string    `gorm:"type:text" json:"phone"`

	// Inputs for the matching pipeline, extracted once per uploaded document.
	Skills         datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"skills"`
	Languages      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"languages"`
	ExperienceText string                      `gorm:"type:text" json:"experience_text"`
	EducationText  string                      `gorm:"type:text" json:"education_text"`
	RawText        string                      `gorm:"type:text" json:"raw_text,omitempty"`

	CVFileID uuid.UUID `gorm:"type:uuid" json:"cv_file_id"`

	// Latest scoring outcome; overwritten on each re-run.
	MatchResult datatypes.JSONType[*MatchResult] `gorm:"type:jsonb" json:"match_result"`

	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}
