package repository

import (
	"context"

	"gorm.io/gorm"

	"promptvault/internal/models"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)
	CreateWithSettings(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	DeleteCascade(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByExternalID finds a user by the external identity id.
func (r *userRepository) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateWithSettings inserts a user together with its empty settings row.
// Both rows exist afterwards or neither does.
func (r *userRepository) CreateWithSettings(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		settings := models.UserSettings{UserID: user.ID}
		return tx.Create(&settings).Error
	})
}

// Update updates an existing user record.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// DeleteCascade removes the user's prompts, settings and the user row in
// one transaction so other callers never observe a partial cascade.
func (r *userRepository) DeleteCascade(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(OwnedBy(user.ID)).Delete(&models.Prompt{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(OwnedBy(user.ID)).Delete(&models.UserSettings{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
