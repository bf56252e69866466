package services

import (
	"errors"
	"fmt"
	"strings"

	"chatroom/internal/models"
	"chatroom/internal/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// TokenKeyword is the Authorization scheme accepted by Resolve.
const TokenKeyword = "Token"

// Identity is the authenticated caller: the member and the exact token presented.
type Identity struct {
	Member *models.Member
	Token  *models.AuthToken
}

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService handles registration, login, logout and token resolution.
type AuthService struct {
	memberRepo repositories.MemberRepository
	tokenRepo  repositories.TokenRepository
	bcryptCost int
	publisher  EventPublisher
	log        logrus.FieldLogger
}

// NewAuthService creates a new AuthService. publisher may be nil.
func NewAuthService(memberRepo repositories.MemberRepository, tokenRepo repositories.TokenRepository,
	bcryptCost int, publisher EventPublisher, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		memberRepo: memberRepo,
		tokenRepo:  tokenRepo,
		bcryptCost: bcryptCost,
		publisher:  publisher,
		log:        log.WithField("component", "auth"),
	}
}

// Register creates a member and its first token.
func (s *AuthService) Register(in RegisterInput) (*models.Member, *models.AuthToken, error) {
	verr, err := checkUniqueness(s.memberRepo, &in.Username, &in.Email, 0)
	if err != nil {
		return nil, nil, err
	}
	if !verr.Empty() {
		return nil, nil, verr
	}

	hashed, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			verr := NewValidationError()
			verr.Add("password", "This password is too long.")
			return nil, nil, verr
		}
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	email := in.Email
	member := &models.Member{
		Username:     in.Username,
		Email:        &email,
		PasswordHash: hashed,
	}
	token := &models.AuthToken{}
	if err := s.memberRepo.CreateWithToken(member, token); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, nil, duplicateError(s.memberRepo, &in.Username, &in.Email, 0)
		}
		return nil, nil, fmt.Errorf("failed to register member: %w", err)
	}

	s.log.WithFields(logrus.Fields{"member_id": member.ID, "username": member.Username}).Info("member registered")
	publish(s.publisher, s.log, EventMemberRegistered, map[string]interface{}{
		"member_id": member.ID,
		"username":  member.Username,
	})
	return member, token, nil
}

// Login checks credentials and rotates the member's token.
func (s *AuthService) Login(username, password string) (*models.Member, *models.AuthToken, error) {
	member, err := s.memberRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrUnknownMember
		}
		return nil, nil, fmt.Errorf("failed to look up member: %w", err)
	}

	if !CheckPassword(member.PasswordHash, password) {
		return nil, nil, ErrWrongPassword
	}

	token, err := s.tokenRepo.Rotate(member.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue token: %w", err)
	}
	s.log.WithField("member_id", member.ID).Info("member logged in")
	return member, token, nil
}

// Logout deletes exactly the token that authenticated the request.
func (s *AuthService) Logout(id *Identity) error {
	if id == nil || id.Token == nil {
		return ErrNoCredentials
	}
	if err := s.tokenRepo.Delete(id.Token.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Revoked concurrently; the outcome is the same.
			return nil
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	s.log.WithField("member_id", id.Token.MemberID).Info("member logged out")
	return nil
}

// Resolve maps an Authorization header value to an identity.
// It returns (nil, nil) when no Token credential is present.
func (s *AuthService) Resolve(header string) (*Identity, error) {
	if header == "" {
		return nil, nil
	}
	parts := strings.Fields(header)
	if len(parts) == 0 {
		return nil, nil
	}
	if !strings.EqualFold(parts[0], TokenKeyword) {
		return nil, nil
	}
	switch {
	case len(parts) == 1:
		return nil, ErrNoCredentials
	case len(parts) > 2:
		return nil, ErrTokenHasSpaces
	}

	token, err := s.tokenRepo.GetByKey(parts[1])
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	return &Identity{Member: &token.Member, Token: token}, nil
}

// checkUniqueness checks username and email independently. Nil fields are skipped.
func checkUniqueness(repo repositories.MemberRepository, username, email *string, excludeID uint) (*ValidationError, error) {
	verr := NewValidationError()
	if username != nil {
		taken, err := repo.UsernameTaken(*username, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			verr.Add("username", msgUsernameTaken)
		}
	}
	if email != nil {
		taken, err := repo.EmailTaken(*email, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			verr.Add("email", msgEmailTaken)
		}
	}
	return verr, nil
}

// duplicateError explains a unique-index violation raised by the store after the
// application-level check passed.
func duplicateError(repo repositories.MemberRepository, username, email *string, excludeID uint) error {
	verr, err := checkUniqueness(repo, username, email, excludeID)
	if err != nil {
		return err
	}
	if verr.Empty() {
		verr.Add("non_field_errors", "A user with that username or email already exists.")
	}
	return verr
}
