package repositories

import "chatroom/internal/models"

// TokenRepository defines the interface for auth token data access.
type TokenRepository interface {
	GetByKey(key string) (*models.AuthToken, error)
	Rotate(memberID uint) (*models.AuthToken, error)
	Delete(id uint) error
}
