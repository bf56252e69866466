package services_test

import (
	"errors"
	"testing"

	"chatroom/internal/logger"
	"chatroom/internal/models"
	"chatroom/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMessageService_ClampWindow(t *testing.T) {
	service := services.NewMessageService(new(MockMessageRepository), 50, nil, logger.Discard())

	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{10, 5, 10, 5},
		{-1, 0, 0, 0},
		{500, 0, 50, 0},
		{10, -7, 10, 0},
		{50, 3, 50, 3},
	}
	for _, tc := range tests {
		limit, offset := service.ClampWindow(tc.limit, tc.offset)
		assert.Equal(t, tc.wantLimit, limit, "limit for %d", tc.limit)
		assert.Equal(t, tc.wantOffset, offset, "offset for %d", tc.offset)
	}
}

func TestMessageService_List(t *testing.T) {
	repo := new(MockMessageRepository)
	service := services.NewMessageService(repo, 1000, nil, logger.Discard())

	messages := []models.Message{{ID: 2, Text: "b"}, {ID: 3, Text: "c"}}
	repo.On("Count").Return(int64(3), nil)
	repo.On("List", 2, 1).Return(messages, nil).Once()

	page, err := service.List(2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	assert.Equal(t, messages, page.Messages)

	// Offset beyond the end skips the query.
	page, err = service.List(10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	assert.Empty(t, page.Messages)

	// So does a zero limit.
	page, err = service.List(0, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Messages)

	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestMessageService_ListCountFailure(t *testing.T) {
	repo := new(MockMessageRepository)
	service := services.NewMessageService(repo, 1000, nil, logger.Discard())
	repo.On("Count").Return(int64(0), errors.New("db down")).Once()

	_, err := service.List(10, 0)
	assert.Error(t, err)
}

func TestMessageService_Create(t *testing.T) {
	repo := new(MockMessageRepository)
	pub := new(MockPublisher)
	service := services.NewMessageService(repo, 1000, pub, logger.Discard())
	author := &models.Member{ID: 8, Username: "alice"}

	repo.On("Create", mock.MatchedBy(func(m *models.Message) bool {
		return m.AuthorID == 8 && m.Text == "hello"
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Message).ID = 99
	}).Return(nil).Once()
	// Publishing failures never fail the request.
	pub.On("Publish", services.EventMessageCreated, mock.Anything).Return(errors.New("broker down")).Once()

	msg, err := service.Create(author, "hello")
	require.NoError(t, err)
	assert.Equal(t, uint(99), msg.ID)
	assert.Equal(t, "alice", msg.Author.Username)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestMessageService_CreateFailure(t *testing.T) {
	repo := new(MockMessageRepository)
	pub := new(MockPublisher)
	service := services.NewMessageService(repo, 1000, pub, logger.Discard())

	repo.On("Create", mock.Anything).Return(errors.New("disk full")).Once()

	_, err := service.Create(&models.Member{ID: 1}, "hello")
	assert.Error(t, err)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
