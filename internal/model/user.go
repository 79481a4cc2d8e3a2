package model

import "time"

// User mirrors an identity-provider account. ExternalID is the stable id the
// provider issues; this service never stores credentials of its own.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID string    `gorm:"size:64;not null;uniqueIndex" json:"external_id"`
	Email      string    `gorm:"size:128" json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
