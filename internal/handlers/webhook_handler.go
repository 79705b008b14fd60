package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"promptvault/internal/dto"
	"promptvault/internal/services"
)

// WebhookHandler receives identity lifecycle events from the auth
// provider. These events are the only writers of user records.
type WebhookHandler struct {
	userService *services.UserService
	secret      string
}

func NewWebhookHandler(userService *services.UserService, secret string) *WebhookHandler {
	return &WebhookHandler{userService: userService, secret: secret}
}

// HandleIdentityEvent verifies the webhook signature, then syncs or
// removes the user. Unknown event types are acknowledged and ignored.
func (h *WebhookHandler) HandleIdentityEvent(c *fiber.Ctx) error {
	if h.secret == "" {
		slog.Error("webhook secret not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhook secret not configured",
		})
	}

	msgID := c.Get("svix-id")
	timestamp := c.Get("svix-timestamp")
	signatures := c.Get("svix-signature")
	if msgID == "" || timestamp == "" || signatures == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing webhook signature headers",
		})
	}

	if !verifySignature(h.secret, msgID, timestamp, c.Body(), signatures) {
		slog.Warn("webhook signature verification failed", "msg_id", msgID)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhook verification failed",
		})
	}

	var event dto.IdentityWebhookEvent
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook payload",
		})
	}

	switch event.Type {
	case "user.created", "user.updated":
		email := ""
		if len(event.Data.EmailAddresses) > 0 {
			email = event.Data.EmailAddresses[0].EmailAddress
		}
		name := strings.TrimSpace(strings.TrimSpace(event.Data.FirstName) + " " + strings.TrimSpace(event.Data.LastName))
		var imageURL *string
		if event.Data.ImageURL != "" {
			imageURL = &event.Data.ImageURL
		}

		if _, err := h.userService.UpsertByExternalID(c.Context(), event.Data.ID, email, name, imageURL); err != nil {
			slog.Error("user sync failed", "event_type", event.Type, "external_id", event.Data.ID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to process webhook event",
			})
		}
		slog.Info("user synced", "event_type", event.Type, "external_id", event.Data.ID)

	case "user.deleted":
		if err := h.userService.DeleteByExternalID(c.Context(), event.Data.ID); err != nil {
			slog.Error("user delete failed", "external_id", event.Data.ID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to process webhook event",
			})
		}
		slog.Info("user deleted", "external_id", event.Data.ID)
	}

	return c.JSON(fiber.Map{"received": true})
}

// verifySignature checks the svix signature scheme: HMAC-SHA256 over
// "<id>.<timestamp>.<body>" with the base64 secret, matched against any of
// the space-separated "v1,<sig>" entries in the signature header.
func verifySignature(secret, msgID, timestamp string, body []byte, signatures string) bool {
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID + "." + timestamp + "."))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, entry := range strings.Split(signatures, " ") {
		parts := strings.SplitN(entry, ",", 2)
		if len(parts) != 2 || parts[0] != "v1" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(expected)) == 1 {
			return true
		}
	}
	return false
}
