package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"promptvault/internal/dto"
	"promptvault/internal/identity"
	"promptvault/internal/models"
	"promptvault/internal/pagination"
	"promptvault/internal/services"
)

type PromptHandler struct {
	service *services.PromptService
}

func NewPromptHandler(service *services.PromptService) *PromptHandler {
	return &PromptHandler{service: service}
}

func (h *PromptHandler) Create(c *fiber.Ctx) error {
	externalID, err := identity.ExternalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	id, err := h.service.Create(c.Context(), externalID, req.Title, req.PromptText, req.Category)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create prompt",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreatePromptResponse{ID: id})
}

// List pages through the caller's prompts. A cursor query parameter (or
// strategy=cursor) selects cursor pagination; otherwise page numbers are
// used with out-of-range values clamped.
func (h *PromptHandler) List(c *fiber.Ctx) error {
	externalID, err := identity.ExternalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(pagination.DefaultLimit)))
	if limit <= 0 || limit > 100 {
		limit = pagination.DefaultLimit
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))

	params := pagination.Params{
		Strategy: pagination.StrategyPage,
		Page:     page,
		Cursor:   c.Query("cursor"),
		Limit:    limit,
	}
	if params.Cursor != "" || c.Query("strategy") == string(pagination.StrategyCursor) {
		params.Strategy = pagination.StrategyCursor
	}

	result, err := h.service.List(c.Context(), externalID, c.Query("category"), params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch prompts",
		})
	}

	items := result.Items
	if items == nil {
		items = []models.Prompt{}
	}
	return c.JSON(dto.PromptListResponse{
		Prompts:     items,
		Total:       result.Total,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
		HasMore:     result.HasMore,
		NextCursor:  result.NextCursor,
	})
}

func (h *PromptHandler) Favorites(c *fiber.Ctx) error {
	externalID, err := identity.ExternalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	prompts, err := h.service.ListFavorited(c.Context(), externalID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch favorites",
		})
	}

	return c.JSON(dto.FavoritesResponse{Prompts: prompts, Total: len(prompts)})
}

func (h *PromptHandler) Get(c *fiber.Ctx) error {
	externalID, err := identity.ExternalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	promptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid prompt ID",
		})
	}

	prompt, err := h.service.GetByID(c.Context(), promptID, externalID)
	if err != nil {
		return promptErrorResponse(c, err, "Failed to fetch prompt")
	}
	return c.JSON(prompt)
}

func (h *PromptHandler) Update(c *fiber.Ctx) error {
	externalID, err := identity.ExternalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	promptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid prompt ID",
		})
	}

	var req dto.UpdatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	prompt, err := h.service.Update(c.Context(), promptID, externalID, req.Title, req.PromptText, req.Category)
	if err != nil {
		return promptErrorResponse(c, err, "Failed to update prompt")
	}
	return c.JSON(prompt)
}

func (h *PromptHandler) ToggleFavorite(c *fiber.Ctx) error {
	externalID, err := identity.ExternalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	promptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid prompt ID",
		})
	}

	favorited, err := h.service.ToggleFavorite(c.Context(), promptID, externalID)
	if err != nil {
		return promptErrorResponse(c, err, "Failed to toggle favorite")
	}
	return c.JSON(dto.ToggleFavoriteResponse{IsFavorited: favorited})
}

func (h *PromptHandler) Delete(c *fiber.Ctx) error {
	externalID, err := identity.ExternalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	promptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid prompt ID",
		})
	}

	if err := h.service.Delete(c.Context(), promptID, externalID); err != nil {
		return promptErrorResponse(c, err, "Failed to delete prompt")
	}
	return c.JSON(dto.DeletePromptResponse{Message: "Prompt deleted successfully"})
}

// promptErrorResponse maps guard errors to their HTTP status.
func promptErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, services.ErrPromptNotFound) || errors.Is(err, services.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	if errors.Is(err, services.ErrNotOwner) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback,
	})
}
