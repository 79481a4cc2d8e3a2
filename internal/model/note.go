package model

import "time"

// Note holds the extracted plain text of one uploaded file. Notes are
// append-only: created on successful upload, never updated.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SubjectID uint      `gorm:"not null;index" json:"subject_id"`
	Filename  string    `gorm:"size:256;not null" json:"filename"`
	Content   string    `gorm:"type:longtext;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
