package models

import (
	"time"

	"github.com/google/uuid"
)

// CVFile is one uploaded document revision. Its id is part of the
// match-history dedup key.
type CVFile struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename     string    `gorm:"type:text" json:"filename"`
	OriginalName string    `gorm:"type:text" json:"original_name"`
	MimeType     string    `gorm:"type:text" json:"mime_type"`
	Size         int64     `gorm:"type:bigint" json:"size"`
	FilePath     string    `gorm:"type:text" json:"file_path"`
	CreatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (f *CVFile) TableName() string {
	return "cv_files"
}
