package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"promptvault/internal/models"
)

// SettingsRepository defines user settings persistence operations.
type SettingsRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error)
	Create(ctx context.Context, settings *models.UserSettings) error
	Save(ctx context.Context, settings *models.UserSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := r.db.WithContext(ctx).Scopes(OwnedBy(userID)).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Create(ctx context.Context, settings *models.UserSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.UserSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
