package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"promptvault/internal/models"
	"promptvault/internal/repository"
)

// ErrUserNotFound is returned when an operation requires a synced user and
// none exists for the external identity. The usual cause is a session that
// outlived its identity webhook; signing out and back in resyncs it.
var ErrUserNotFound = errors.New("user not found, sign out and sign back in")

// UserService syncs users from identity provider webhook events. It is the
// only writer of User rows.
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// UpsertByExternalID creates or updates the user for an identity event and
// returns the internal id. A new user gets an empty settings row in the
// same transaction. Repeated identical calls are idempotent.
func (s *UserService) UpsertByExternalID(ctx context.Context, externalID, email, name string, imageURL *string) (uuid.UUID, error) {
	user, err := s.users.FindByExternalID(ctx, externalID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fmt.Errorf("find user: %w", err)
	}

	if user != nil {
		user.Email = email
		user.Name = name
		user.ImageURL = imageURL
		if err := s.users.Update(ctx, user); err != nil {
			return uuid.Nil, fmt.Errorf("update user: %w", err)
		}
		return user.ID, nil
	}

	user = &models.User{
		ID:         uuid.New(),
		ExternalID: externalID,
		Email:      email,
		Name:       name,
		ImageURL:   imageURL,
	}
	if err := s.users.CreateWithSettings(ctx, user); err != nil {
		return uuid.Nil, fmt.Errorf("create user: %w", err)
	}
	return user.ID, nil
}

// FindByExternalID returns the user, or nil without error when no user
// exists. Callers decide whether absence is a problem.
func (s *UserService) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	user, err := s.users.FindByExternalID(ctx, externalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// DeleteByExternalID removes the user together with all owned prompts and
// settings. Deleting an unknown identity is a no-op.
func (s *UserService) DeleteByExternalID(ctx context.Context, externalID string) error {
	user, err := s.FindByExternalID(ctx, externalID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	if err := s.users.DeleteCascade(ctx, user); err != nil {
		return fmt.Errorf("cascade delete user: %w", err)
	}
	return nil
}
