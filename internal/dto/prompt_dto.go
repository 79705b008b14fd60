package dto

import (
	"github.com/google/uuid"

	"promptvault/internal/models"
)

type CreatePromptRequest struct {
	Title      string `json:"title"`
	PromptText string `json:"prompt_text"`
	Category   string `json:"category"`
}

type UpdatePromptRequest struct {
	Title      string `json:"title"`
	PromptText string `json:"prompt_text"`
	Category   string `json:"category"`
}

type CreatePromptResponse struct {
	ID uuid.UUID `json:"id"`
}

type ToggleFavoriteResponse struct {
	IsFavorited bool `json:"is_favorited"`
}

type DeletePromptResponse struct {
	Message string `json:"message"`
}

// PromptListResponse carries one page plus the metadata of whichever
// pagination strategy produced it. Page-number fields and cursor fields
// are mutually exclusive in practice; the zero values mark the unused set.
type PromptListResponse struct {
	Prompts     []models.Prompt `json:"prompts"`
	Total       int             `json:"total"`
	TotalPages  int             `json:"total_pages,omitempty"`
	CurrentPage int             `json:"current_page,omitempty"`
	HasMore     bool            `json:"has_more"`
	NextCursor  string          `json:"next_cursor,omitempty"`
}

type FavoritesResponse struct {
	Prompts []models.Prompt `json:"prompts"`
	Total   int             `json:"total"`
}
