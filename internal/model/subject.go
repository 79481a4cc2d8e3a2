package model

import "time"

// Subject is the scope unit for grounding: notes, conversation turns and study
// sets all belong to exactly one subject. The (user, name) pair is unique so
// repeated upserts can never create duplicates.
type Subject struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_subject_user_name" json:"user_id"`
	Name      string    `gorm:"size:128;not null;uniqueIndex:idx_subject_user_name" json:"name"`
	ChatTitle string    `gorm:"size:64" json:"chat_title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Notes []Note `gorm:"constraint:OnDelete:CASCADE" json:"notes,omitempty"`
}
