package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"promptvault/internal/config"
	"promptvault/internal/handlers"
	"promptvault/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	webhookHandler *handlers.WebhookHandler,
	promptHandler *handlers.PromptHandler,
	settingsHandler *handlers.SettingsHandler,
	generationHandler *handlers.GenerationHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Identity webhooks — signature-verified, no JWT
	webhooks := api.Group("/webhooks")
	webhooks.Post("/clerk", webhookHandler.HandleIdentityEvent)

	// Prompts (JWT required). Static /favorites route registered before
	// the :id routes so it is not captured as an id.
	prompts := api.Group("/prompts", middleware.JWTProtected(cfg))
	prompts.Get("/favorites", promptHandler.Favorites)
	prompts.Post("/", promptHandler.Create)
	prompts.Get("/", promptHandler.List)
	prompts.Get("/:id", promptHandler.Get)
	prompts.Put("/:id", promptHandler.Update)
	prompts.Post("/:id/favorite", promptHandler.ToggleFavorite)
	prompts.Delete("/:id", promptHandler.Delete)

	// Settings (JWT required)
	settings := api.Group("/settings", middleware.JWTProtected(cfg))
	settings.Get("/", settingsHandler.Get)
	settings.Put("/api-key", settingsHandler.SetAPIKey)
	settings.Delete("/api-key", settingsHandler.ClearAPIKey)

	// Generation — stricter limit, each call hits the upstream API
	generate := api.Group("/generate", middleware.JWTProtected(cfg))
	generate.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	generate.Post("/", generationHandler.Generate)
}
