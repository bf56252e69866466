package services

import (
	"errors"
	"fmt"

	"chatroom/internal/models"
	"chatroom/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ProfileUpdate is a partial profile change. Nil fields are left untouched
// unless ClearEmail is set.
type ProfileUpdate struct {
	Username   *string
	Email      *string
	ClearEmail bool
}

// ProfileService reads and updates the caller's own member record.
type ProfileService struct {
	memberRepo repositories.MemberRepository
	log        logrus.FieldLogger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(memberRepo repositories.MemberRepository, log logrus.FieldLogger) *ProfileService {
	return &ProfileService{
		memberRepo: memberRepo,
		log:        log.WithField("component", "profile"),
	}
}

// Update applies the supplied fields to member after checking uniqueness
// against every other member. member itself is not modified on failure.
func (s *ProfileService) Update(member *models.Member, upd ProfileUpdate) (*models.Member, error) {
	verr, err := checkUniqueness(s.memberRepo, upd.Username, upd.Email, member.ID)
	if err != nil {
		return nil, err
	}
	if !verr.Empty() {
		return nil, verr
	}

	updated := *member
	if upd.Username != nil {
		updated.Username = *upd.Username
	}
	if upd.Email != nil {
		email := *upd.Email
		updated.Email = &email
	} else if upd.ClearEmail {
		updated.Email = nil
	}

	if err := s.memberRepo.Update(&updated); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, duplicateError(s.memberRepo, upd.Username, upd.Email, member.ID)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	s.log.WithField("member_id", updated.ID).Info("profile updated")
	return &updated, nil
}
