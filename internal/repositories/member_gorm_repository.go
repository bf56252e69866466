package repositories

import (
	"errors"
	"fmt"

	"chatroom/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMMemberRepository is a GORM implementation of MemberRepository.
type GORMMemberRepository struct {
	db *gorm.DB
}

// NewGORMMemberRepository creates a new instance of GORMMemberRepository.
func NewGORMMemberRepository(db *gorm.DB) *GORMMemberRepository {
	return &GORMMemberRepository{
		db: db,
	}
}

// CreateWithToken inserts the member and its first token in one transaction.
// token.MemberID is set from the newly assigned member ID.
func (r *GORMMemberRepository) CreateWithToken(member *models.Member, token *models.AuthToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return wrapWriteError("failed to create member", err)
		}
		token.MemberID = member.ID
		if err := tx.Omit(clause.Associations).Create(token).Error; err != nil {
			return fmt.Errorf("failed to create token for member %d: %w", member.ID, err)
		}
		return nil
	})
}

// GetByID retrieves a member by ID.
func (r *GORMMemberRepository) GetByID(id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get member by ID %d: %w", id, err)
	}
	return &member, nil
}

// GetByUsername retrieves a member by exact username.
func (r *GORMMemberRepository) GetByUsername(username string) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member with username %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get member by username %s: %w", username, err)
	}
	return &member, nil
}

// UsernameTaken reports whether another member already uses username.
// A zero excludeID checks against every member.
func (r *GORMMemberRepository) UsernameTaken(username string, excludeID uint) (bool, error) {
	return r.exists("username = ?", username, excludeID)
}

// EmailTaken reports whether another member already uses email.
func (r *GORMMemberRepository) EmailTaken(email string, excludeID uint) (bool, error) {
	return r.exists("email = ?", email, excludeID)
}

func (r *GORMMemberRepository) exists(cond string, value string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.Member{}).Where(cond, value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check member uniqueness: %w", err)
	}
	return count > 0, nil
}

// Update persists the member's username and email.
func (r *GORMMemberRepository) Update(member *models.Member) error {
	res := r.db.Model(member).Select("Username", "Email").Updates(member)
	if res.Error != nil {
		return wrapWriteError("failed to update member", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("member with ID %d for update: %w", member.ID, ErrNotFound)
	}
	return nil
}
