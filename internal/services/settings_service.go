package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"promptvault/internal/models"
	"promptvault/internal/repository"
	"promptvault/internal/secrets"
)

// SettingsService stores per-user settings. The API key is run through the
// secrets codec before it touches the database and the plaintext is never
// logged.
type SettingsService struct {
	settings repository.SettingsRepository
	codec    *secrets.Codec
}

func NewSettingsService(settings repository.SettingsRepository, codec *secrets.Codec) *SettingsService {
	return &SettingsService{settings: settings, codec: codec}
}

// Get returns the settings row, or nil without error when none exists.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	settings, err := s.settings.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find settings: %w", err)
	}
	return settings, nil
}

// SetAPIKey encodes and stores the key. The settings row normally exists
// already (created with the user); creating it here covers rows lost to
// partial syncs.
func (s *SettingsService) SetAPIKey(ctx context.Context, userID uuid.UUID, plaintext string) error {
	encoded := s.codec.Encode(plaintext)

	settings, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if settings == nil {
		settings = &models.UserSettings{
			ID:           uuid.New(),
			UserID:       userID,
			OpenAIAPIKey: &encoded,
		}
		if err := s.settings.Create(ctx, settings); err != nil {
			return fmt.Errorf("create settings: %w", err)
		}
		return nil
	}

	settings.OpenAIAPIKey = &encoded
	if err := s.settings.Save(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// HasAPIKey reports whether a non-empty key is stored, without decoding it.
func (s *SettingsService) HasAPIKey(ctx context.Context, userID uuid.UUID) (bool, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return settings != nil && settings.OpenAIAPIKey != nil && *settings.OpenAIAPIKey != "", nil
}

// GetAPIKeyPlaintext decodes the stored key. An empty string without error
// means no key is stored.
func (s *SettingsService) GetAPIKeyPlaintext(ctx context.Context, userID uuid.UUID) (string, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if settings == nil || settings.OpenAIAPIKey == nil || *settings.OpenAIAPIKey == "" {
		return "", nil
	}
	plaintext, err := s.codec.Decode(*settings.OpenAIAPIKey)
	if err != nil {
		return "", fmt.Errorf("decode api key: %w", err)
	}
	return plaintext, nil
}

// ClearAPIKey removes the stored key but leaves the settings row in place.
// Clearing when no row exists is a no-op.
func (s *SettingsService) ClearAPIKey(ctx context.Context, userID uuid.UUID) error {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if settings == nil {
		return nil
	}
	settings.OpenAIAPIKey = nil
	if err := s.settings.Save(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
