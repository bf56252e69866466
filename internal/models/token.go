package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TokenKeyBytes is the amount of random entropy behind every token key.
const TokenKeyBytes = 32

// AuthToken is an opaque bearer token owned by a member.
type AuthToken struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"uniqueIndex;size:64;not null"`
	MemberID  uint      `json:"-" gorm:"not null;index"`
	Member    Member    `json:"-" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// GenerateTokenKey returns a 64 character lowercase hex key.
func GenerateTokenKey() (string, error) {
	buf := make([]byte, TokenKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// BeforeCreate fills in the key when the caller did not provide one.
func (t *AuthToken) BeforeCreate(tx *gorm.DB) error {
	if t.Key != "" {
		return nil
	}
	key, err := GenerateTokenKey()
	if err != nil {
		return err
	}
	t.Key = key
	return nil
}
