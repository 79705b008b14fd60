package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"promptvault/internal/models"
	"promptvault/internal/pagination"
	"promptvault/internal/repository"
)

var (
	ErrPromptNotFound = errors.New("prompt not found")
	ErrNotOwner       = errors.New("you do not own this prompt")
)

// CategoryAll is the sentinel filter value that selects every category.
const CategoryAll = "all"

// PromptService owns the prompt collection. Every operation is keyed by
// the caller's external identity id; mutations and single-record reads go
// through the ownership guard first, without exception.
type PromptService struct {
	users   repository.UserRepository
	prompts repository.PromptRepository
}

func NewPromptService(users repository.UserRepository, prompts repository.PromptRepository) *PromptService {
	return &PromptService{users: users, prompts: prompts}
}

// resolve maps an external identity id to its user row, nil when unknown.
func (s *PromptService) resolve(ctx context.Context, externalID string) (*models.User, error) {
	user, err := s.users.FindByExternalID(ctx, externalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}

// authorize is the ownership guard: it resolves the claimed identity,
// loads the prompt and verifies ownership, returning the loaded prompt so
// callers skip a second lookup.
func (s *PromptService) authorize(ctx context.Context, promptID uuid.UUID, externalID string) (*models.Prompt, error) {
	user, err := s.resolve(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	prompt, err := s.prompts.FindByID(ctx, promptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPromptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find prompt: %w", err)
	}

	if prompt.UserID != user.ID {
		return nil, ErrNotOwner
	}
	return prompt, nil
}

// Create inserts a prompt owned by the caller and returns its id. Title
// and text are trimmed; new prompts start unfavorited.
func (s *PromptService) Create(ctx context.Context, externalID, title, promptText, category string) (uuid.UUID, error) {
	user, err := s.resolve(ctx, externalID)
	if err != nil {
		return uuid.Nil, err
	}
	if user == nil {
		return uuid.Nil, ErrUserNotFound
	}

	prompt := &models.Prompt{
		ID:         uuid.New(),
		UserID:     user.ID,
		Title:      strings.TrimSpace(title),
		PromptText: strings.TrimSpace(promptText),
		Category:   category,
	}
	if err := s.prompts.Create(ctx, prompt); err != nil {
		return uuid.Nil, fmt.Errorf("create prompt: %w", err)
	}
	return prompt.ID, nil
}

// Update patches title, text and category. Owner and favorited flag are
// untouched.
func (s *PromptService) Update(ctx context.Context, promptID uuid.UUID, externalID, title, promptText, category string) (*models.Prompt, error) {
	prompt, err := s.authorize(ctx, promptID, externalID)
	if err != nil {
		return nil, err
	}

	prompt.Title = strings.TrimSpace(title)
	prompt.PromptText = strings.TrimSpace(promptText)
	prompt.Category = category
	if err := s.prompts.Save(ctx, prompt); err != nil {
		return nil, fmt.Errorf("update prompt: %w", err)
	}
	return prompt, nil
}

// ToggleFavorite flips the favorited flag and returns the new value.
func (s *PromptService) ToggleFavorite(ctx context.Context, promptID uuid.UUID, externalID string) (bool, error) {
	prompt, err := s.authorize(ctx, promptID, externalID)
	if err != nil {
		return false, err
	}

	prompt.IsFavorited = !prompt.IsFavorited
	if err := s.prompts.Save(ctx, prompt); err != nil {
		return false, fmt.Errorf("update prompt: %w", err)
	}
	return prompt.IsFavorited, nil
}

// Delete removes the prompt permanently. There is no recovery window.
func (s *PromptService) Delete(ctx context.Context, promptID uuid.UUID, externalID string) error {
	prompt, err := s.authorize(ctx, promptID, externalID)
	if err != nil {
		return err
	}
	if err := s.prompts.Delete(ctx, prompt); err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	return nil
}

// GetByID returns a single prompt after the ownership check.
func (s *PromptService) GetByID(ctx context.Context, promptID uuid.UUID, externalID string) (*models.Prompt, error) {
	return s.authorize(ctx, promptID, externalID)
}

// ListFavorited returns the caller's favorited prompts, newest first. An
// unknown identity yields an empty list, not an error.
func (s *PromptService) ListFavorited(ctx context.Context, externalID string) ([]models.Prompt, error) {
	user, err := s.resolve(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []models.Prompt{}, nil
	}
	prompts, err := s.prompts.ListFavorited(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return prompts, nil
}

// List pages through the caller's prompts, optionally narrowed to one
// category ("all" or empty selects everything). The full candidate set is
// materialized newest-first and sliced by the requested strategy. An
// unknown identity yields an empty result.
func (s *PromptService) List(ctx context.Context, externalID, category string, params pagination.Params) (pagination.Result[models.Prompt], error) {
	user, err := s.resolve(ctx, externalID)
	if err != nil {
		return pagination.Result[models.Prompt]{}, err
	}
	if user == nil {
		return pagination.Paginate([]models.Prompt{}, params, promptID), nil
	}

	filter := repository.FilterAll()
	if category != "" && category != CategoryAll {
		filter = repository.FilterByCategory(category)
	}

	candidates, err := s.prompts.ListByOwner(ctx, user.ID, filter)
	if err != nil {
		return pagination.Result[models.Prompt]{}, fmt.Errorf("list prompts: %w", err)
	}
	return pagination.Paginate(candidates, params, promptID), nil
}

func promptID(p models.Prompt) string {
	return p.ID.String()
}
