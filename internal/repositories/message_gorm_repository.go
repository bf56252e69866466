package repositories

import (
	"fmt"

	"chatroom/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	db *gorm.DB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB) *GORMMessageRepository {
	return &GORMMessageRepository{
		db: db,
	}
}

// Create inserts the message. The Author association is never written.
func (r *GORMMessageRepository) Create(message *models.Message) error {
	if err := r.db.Omit(clause.Associations).Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// Count returns the total number of messages.
func (r *GORMMessageRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Message{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// List returns a window of messages, oldest first, with authors preloaded.
func (r *GORMMessageRepository) List(limit, offset int) ([]models.Message, error) {
	messages := make([]models.Message, 0, limit)
	err := r.db.Preload("Author").
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
