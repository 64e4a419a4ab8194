package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MatchHistory is the durable audit trail: one row per
// (candidate, job, provider, cv file) tuple, upserted on re-scoring so the
// row reflects the latest run for that CV revision.
type MatchHistory struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_history_key" json:"candidate_id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_history_key" json:"job_id"`
	Provider    string    `gorm:"type:text;not null;default:'gemini';uniqueIndex:idx_match_history_key" json:"provider"`
	CVFileID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_history_key" json:"cv_file_id"`

	Score int        `gorm:"type:int" json:"score"`
	Label MatchLabel `gorm:"type:text" json:"label"`

	Breakdown datatypes.JSONType[ScoreBreakdown] `gorm:"type:jsonb" json:"breakdown"`
	Reasons   datatypes.JSONSlice[string]        `gorm:"type:jsonb" json:"reasons"`

	// Full normalized provider response, kept for audit and debugging.
	RawResponse datatypes.JSONType[*MatchResult] `gorm:"type:jsonb" json:"raw_response"`

	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (m *MatchHistory) TableName() string {
	return "match_history"
}
