package services

import (
	"fmt"

	"chatroom/internal/models"
	"chatroom/internal/repositories"

	"github.com/sirupsen/logrus"
)

// DefaultPageSize is used when the client does not ask for a limit.
const DefaultPageSize = 100

// MessagePage is a window of messages plus the total number of messages.
type MessagePage struct {
	Count    int64
	Messages []models.Message
}

// MessageService handles business logic related to chat messages.
type MessageService struct {
	repo        repositories.MessageRepository
	maxPageSize int
	publisher   EventPublisher
	log         logrus.FieldLogger
}

// NewMessageService creates a new MessageService. publisher may be nil.
func NewMessageService(repo repositories.MessageRepository, maxPageSize int, publisher EventPublisher, log logrus.FieldLogger) *MessageService {
	return &MessageService{
		repo:        repo,
		maxPageSize: maxPageSize,
		publisher:   publisher,
		log:         log.WithField("component", "messages"),
	}
}

// ClampWindow bounds limit to [0, maxPageSize] and offset to >= 0.
func (s *MessageService) ClampWindow(limit, offset int) (int, int) {
	if limit < 0 {
		limit = 0
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// List returns messages oldest first. Count is the total regardless of the window.
func (s *MessageService) List(limit, offset int) (*MessagePage, error) {
	limit, offset = s.ClampWindow(limit, offset)

	count, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	page := &MessagePage{Count: count, Messages: []models.Message{}}
	if limit == 0 || int64(offset) >= count {
		return page, nil
	}

	messages, err := s.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	page.Messages = messages
	return page, nil
}

// Create stores a message authored by author. text must already be validated.
func (s *MessageService) Create(author *models.Member, text string) (*models.Message, error) {
	message := &models.Message{
		Text:     text,
		AuthorID: author.ID,
	}
	if err := s.repo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}
	message.Author = *author

	s.log.WithFields(logrus.Fields{"message_id": message.ID, "member_id": author.ID}).Info("message posted")
	publish(s.publisher, s.log, EventMessageCreated, map[string]interface{}{
		"message_id": message.ID,
		"author_id":  author.ID,
		"created_at": message.CreatedAt,
	})
	return message, nil
}
