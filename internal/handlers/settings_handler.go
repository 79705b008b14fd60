package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"promptvault/internal/dto"
	"promptvault/internal/identity"
	"promptvault/internal/services"
)

type SettingsHandler struct {
	userService     *services.UserService
	settingsService *services.SettingsService
}

func NewSettingsHandler(userService *services.UserService, settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{userService: userService, settingsService: settingsService}
}

// Get reports whether the caller has an API key stored. The key itself
// never leaves the server.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	externalID, err := identity.ExternalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.userService.FindByExternalID(c.Context(), externalID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch settings",
		})
	}
	if user == nil {
		return c.JSON(dto.SettingsResponse{HasAPIKey: false})
	}

	settings, err := h.settingsService.Get(c.Context(), user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch settings",
		})
	}

	resp := dto.SettingsResponse{}
	if settings != nil {
		resp.HasAPIKey = settings.OpenAIAPIKey != nil && *settings.OpenAIAPIKey != ""
		resp.UpdatedAt = settings.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return c.JSON(resp)
}

func (h *SettingsHandler) SetAPIKey(c *fiber.Ctx) error {
	externalID, err := identity.ExternalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SetAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "api_key is required",
		})
	}

	user, err := h.userService.FindByExternalID(c.Context(), externalID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save API key",
		})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrUserNotFound.Error(),
		})
	}

	if err := h.settingsService.SetAPIKey(c.Context(), user.ID, apiKey); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save API key",
		})
	}
	return c.JSON(dto.SettingsMessageResponse{Message: "API key saved"})
}

func (h *SettingsHandler) ClearAPIKey(c *fiber.Ctx) error {
	externalID, err := identity.ExternalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.userService.FindByExternalID(c.Context(), externalID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to clear API key",
		})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrUserNotFound.Error(),
		})
	}

	if err := h.settingsService.ClearAPIKey(c.Context(), user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to clear API key",
		})
	}
	return c.JSON(dto.SettingsMessageResponse{Message: "API key removed"})
}
