package repositories

import (
	"errors"
	"fmt"

	"chatroom/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMTokenRepository is a GORM implementation of TokenRepository.
type GORMTokenRepository struct {
	db *gorm.DB
}

// NewGORMTokenRepository creates a new instance of GORMTokenRepository.
func NewGORMTokenRepository(db *gorm.DB) *GORMTokenRepository {
	return &GORMTokenRepository{
		db: db,
	}
}

// GetByKey retrieves a token by key with its owning member preloaded.
func (r *GORMTokenRepository) GetByKey(key string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.Preload("Member").First(&token, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}

// Rotate deletes every token of the member and issues a fresh one, atomically.
func (r *GORMTokenRepository) Rotate(memberID uint) (*models.AuthToken, error) {
	token := &models.AuthToken{MemberID: memberID}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", memberID).Delete(&models.AuthToken{}).Error; err != nil {
			return fmt.Errorf("failed to delete tokens of member %d: %w", memberID, err)
		}
		if err := tx.Omit(clause.Associations).Create(token).Error; err != nil {
			return fmt.Errorf("failed to create token for member %d: %w", memberID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Delete removes a single token by ID.
func (r *GORMTokenRepository) Delete(id uint) error {
	res := r.db.Delete(&models.AuthToken{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("token with ID %d for deletion: %w", id, ErrNotFound)
	}
	return nil
}
