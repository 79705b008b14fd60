package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"

	"promptvault/internal/config"
	"promptvault/internal/dto"
)

// JWTProtected verifies provider-issued session tokens against the
// identity provider's JWK Set. The subject claim carries the external
// identity id used by every downstream operation.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		JWKSetURLs: []string{cfg.ClerkJWKSURL},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}
