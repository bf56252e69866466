package models

import "time"

// Member represents a registered chat account.
type Member struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email        *string   `json:"email" gorm:"uniqueIndex;size:254"`
	PasswordHash string    `json:"-" gorm:"column:password;size:128;not null"` // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// EmailValue returns the member's email or an empty string when none is set.
func (m *Member) EmailValue() string {
	if m.Email == nil {
		return ""
	}
	return *m.Email
}
