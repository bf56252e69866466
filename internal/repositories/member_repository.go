package repositories

import "chatroom/internal/models"

// MemberRepository defines the interface for member data access.
type MemberRepository interface {
	CreateWithToken(member *models.Member, token *models.AuthToken) error
	GetByID(id uint) (*models.Member, error)
	GetByUsername(username string) (*models.Member, error)
	UsernameTaken(username string, excludeID uint) (bool, error)
	EmailTaken(email string, excludeID uint) (bool, error)
	Update(member *models.Member) error
}
