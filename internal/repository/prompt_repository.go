package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"promptvault/internal/models"
)

// PromptRepository defines prompt persistence operations.
type PromptRepository interface {
	Create(ctx context.Context, prompt *models.Prompt) error
	Save(ctx context.Context, prompt *models.Prompt) error
	Delete(ctx context.Context, prompt *models.Prompt) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Prompt, error)
	ListByOwner(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.Prompt, error)
	ListFavorited(ctx context.Context, userID uuid.UUID) ([]models.Prompt, error)
}

type promptRepository struct {
	db *gorm.DB
}

// NewPromptRepository creates a new prompt repository.
func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	return r.db.WithContext(ctx).Create(prompt).Error
}

func (r *promptRepository) Save(ctx context.Context, prompt *models.Prompt) error {
	return r.db.WithContext(ctx).Save(prompt).Error
}

func (r *promptRepository) Delete(ctx context.Context, prompt *models.Prompt) error {
	return r.db.WithContext(ctx).Delete(prompt).Error
}

func (r *promptRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&prompt).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}

// ListByOwner returns the full ordered candidate set for a listing
// operation. Slicing happens in the pagination package; the creation
// timestamp order is tie-broken by id so cursors stay deterministic.
func (r *promptRepository) ListByOwner(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.Prompt, error) {
	var prompts []models.Prompt
	q := filter.apply(r.db.WithContext(ctx).Scopes(OwnedBy(userID)))
	if err := q.Order("created_at DESC, id DESC").Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

func (r *promptRepository) ListFavorited(ctx context.Context, userID uuid.UUID) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.WithContext(ctx).Scopes(OwnedBy(userID)).
		Where("is_favorited = ?", true).
		Order("created_at DESC, id DESC").
		Find(&prompts).Error
	if err != nil {
		return nil, err
	}
	return prompts, nil
}
