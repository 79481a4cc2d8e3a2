package model

import "time"

// StudySet stores one generated practice set as the raw JSON payload returned
// by the model (already validated). Write-once per generation.
type StudySet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SubjectID uint      `gorm:"not null;index" json:"subject_id"`
	Data      string    `gorm:"type:text;not null" json:"data"`
	CreatedAt time.Time `json:"created_at"`
}
