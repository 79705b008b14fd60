package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"promptvault/internal/dto"
	"promptvault/internal/identity"
	"promptvault/internal/services"
)

type GenerationHandler struct {
	service *services.GenerationService
}

func NewGenerationHandler(service *services.GenerationService) *GenerationHandler {
	return &GenerationHandler{service: service}
}

// Generate proxies one completion call with the caller's stored API key.
// Upstream failures carry distinguishing messages so the client can route
// the user to corrective action; nothing is retried here.
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	externalID, err := identity.ExternalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	text, err := h.service.Generate(c.Context(), externalID, services.GenerateMode(req.Mode), req.Category, req.ExistingText, req.IdeaText)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidMode),
			errors.Is(err, services.ErrMissingExistingText),
			errors.Is(err, services.ErrMissingIdeaText),
			errors.Is(err, services.ErrAPIKeyMissing),
			errors.Is(err, services.ErrAPIKeyInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			slog.Error("prompt generation failed", "action", "generate", "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to generate prompt. Please try again.",
			})
		}
	}

	return c.JSON(dto.GenerateResponse{Success: true, Text: text})
}
