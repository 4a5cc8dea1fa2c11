package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nkiryanov/guestbook/internal/apperrors"
	"github.com/nkiryanov/guestbook/internal/models"
)

const minPasswordLen = 5

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

type UserRepo interface {
	// Create user
	// Has to return apperrors.ErrUserAlreadyExists if name or email is taken
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// Get user by email or access token
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByToken(ctx context.Context, token string) (models.User, error)
}

type Service struct {
	hasher   PasswordHasher
	userRepo UserRepo
}

func NewService(hasher PasswordHasher, userRepo UserRepo) *Service {
	if hasher == nil {
		hasher = DefaultHasher
	}

	return &Service{
		hasher:   hasher,
		userRepo: userRepo,
	}
}

// Register creates a user with a hashed password and a freshly issued access token
// The plaintext password is never stored anywhere
func (s *Service) Register(ctx context.Context, name string, email string, password string) (models.User, error) {
	var user models.User

	verr := apperrors.NewValidationError()
	if name == "" {
		verr.Add("name", "This field is required")
	}
	if email == "" {
		verr.Add("email", "This field is required")
	}
	if len(password) < minPasswordLen {
		verr.Add("password", fmt.Sprintf("Value is too short (minimum %d)", minPasswordLen))
	}
	if verr.HasErrors() {
		return user, verr
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return user, fmt.Errorf("can't use this as password, Err: %w", err)
	}

	token, err := NewAccessToken()
	if err != nil {
		return user, err
	}

	user, err = s.userRepo.CreateUser(ctx, models.User{
		ID:           uuid.New(),
		CreatedAt:    time.Now(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		AccessToken:  token,
	})
	if err != nil {
		return user, err
	}

	return user, nil
}

// Login looks the user up by email and checks the password
// Both unknown email and wrong password fail with the same
// apperrors.ErrUserNotFound so registered emails can not be probed
func (s *Service) Login(ctx context.Context, email string, password string) (models.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return models.User{}, err
	}

	// Compare runs on the empty hash too, so both failure paths end up
	// with the same error
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return models.User{}, apperrors.ErrUserNotFound
	}

	return user, nil
}

// UserByToken resolves an access token to its user, exact match only
func (s *Service) UserByToken(ctx context.Context, token string) (models.User, error) {
	return s.userRepo.GetUserByToken(ctx, token)
}
