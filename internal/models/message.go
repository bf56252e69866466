package models

import "time"

// MaxMessageLength is the longest message text accepted, in characters.
const MaxMessageLength = 5000

// Message is a single chat message. Messages are immutable once posted.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	AuthorID  uint      `json:"-" gorm:"not null;index"`
	Author    Member    `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
