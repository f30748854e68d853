package routes

import (
	"time"

	"github.com/ArtemFray/berlin-cleanup-app/internal/config"
	"github.com/ArtemFray/berlin-cleanup-app/internal/handlers"
	"github.com/ArtemFray/berlin-cleanup-app/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	notificationHandler *handlers.NotificationHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
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

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Events — listing and detail are public, mutations are admin-only
	api.Get("/events", eventHandler.List)
	api.Get("/events/:id", eventHandler.Get)
	api.Post("/events", middleware.JWTProtected(cfg), middleware.AdminRequired(db), eventHandler.Create)
	api.Patch("/events/:id", middleware.JWTProtected(cfg), middleware.AdminRequired(db), eventHandler.Update)
	api.Delete("/events/:id", middleware.JWTProtected(cfg), middleware.AdminRequired(db), eventHandler.Delete)

	// Registrations and attendance
	api.Post("/events/:id/register", middleware.JWTProtected(cfg), eventHandler.Register)
	api.Delete("/events/:id/register", middleware.JWTProtected(cfg), eventHandler.Unregister)
	api.Post("/events/:id/attendance", middleware.JWTProtected(cfg), middleware.AdminRequired(db), eventHandler.MarkAttendance)

	// Gamification
	api.Get("/leaderboard", userHandler.Leaderboard)
	api.Get("/users/:id", userHandler.Profile)

	// Notifications
	api.Post("/notifications/send", middleware.JWTProtected(cfg), middleware.AdminRequired(db), notificationHandler.Send)
	api.Get("/notifications", middleware.JWTProtected(cfg), notificationHandler.Inbox)
	api.Post("/notifications/:id/read", middleware.JWTProtected(cfg), notificationHandler.MarkRead)
	api.Post("/notifications/subscribe", middleware.JWTProtected(cfg), notificationHandler.Subscribe)
}
