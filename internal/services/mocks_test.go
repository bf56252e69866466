package services_test

import (
	"chatroom/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockMemberRepository is a mock implementation of repositories.MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) CreateWithToken(member *models.Member, token *models.AuthToken) error {
	args := m.Called(member, token)
	return args.Error(0)
}

func (m *MockMemberRepository) GetByID(id uint) (*models.Member, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByUsername(username string) (*models.Member, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) UsernameTaken(username string, excludeID uint) (bool, error) {
	args := m.Called(username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) EmailTaken(email string, excludeID uint) (bool, error) {
	args := m.Called(email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) Update(member *models.Member) error {
	args := m.Called(member)
	return args.Error(0)
}

// MockTokenRepository is a mock implementation of repositories.TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) GetByKey(key string) (*models.AuthToken, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthToken), args.Error(1)
}

func (m *MockTokenRepository) Rotate(memberID uint) (*models.AuthToken, error) {
	args := m.Called(memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthToken), args.Error(1)
}

func (m *MockTokenRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockMessageRepository is a mock implementation of repositories.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(message *models.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) List(limit, offset int) ([]models.Message, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(eventType string, payload interface{}) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}
