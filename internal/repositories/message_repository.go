package repositories

import "chatroom/internal/models"

// MessageRepository defines the interface for message data access.
type MessageRepository interface {
	Create(message *models.Message) error
	Count() (int64, error)
	List(limit, offset int) ([]models.Message, error)
}
