package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nac-jewellers-backup/vendorAPI/internal/api/handlers"
	"github.com/nac-jewellers-backup/vendorAPI/internal/middleware"
	"github.com/nac-jewellers-backup/vendorAPI/internal/models"
)

type Router struct {
	app            *fiber.App
	authHandler    *handlers.AuthHandler
	recordHandlers []*handlers.RecordHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	rateLimit      middleware.RateLimitConfig
}

func NewRouter(
	app *fiber.App,
	authHandler *handlers.AuthHandler,
	recordHandlers []*handlers.RecordHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	rateLimit middleware.RateLimitConfig,
) *Router {
	return &Router{
		app:            app,
		authHandler:    authHandler,
		recordHandlers: recordHandlers,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		rateLimit:      rateLimit,
	}
}

func (r *Router) SetupRoutes() {
	r.app.All("/health", r.authHandler.Health)

	// Public routes
	limited := r.rateLimiter.RateLimit(r.rateLimit)
	r.app.Post("/login", limited, r.authHandler.Login)
	r.app.Post("/verify", limited, r.authHandler.Verify)
	r.app.Post("/forgot_password", limited, r.authHandler.ForgotPassword)

	// Protected routes. The middleware is attached per route so unknown
	// paths still reach the fallback below.
	authenticate := r.authMiddleware.Authenticate()
	r.app.Post("/change_password", authenticate, r.authHandler.ChangePassword)
	for _, h := range r.recordHandlers {
		name := h.Entity().Payload
		r.app.Post("/list_"+name, authenticate, h.List)
		r.app.Post("/get_"+name, authenticate, h.Get)
		r.app.Post("/add_"+name, authenticate, h.Add)
		r.app.Post("/edit_"+name, authenticate, h.Edit)
		r.app.Post("/delete_"+name, authenticate, h.Delete)
	}

	r.app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(models.Response{
			Status:  models.StatusFailure,
			Message: "Method not found in NAC Vendor Backend Service",
		})
	})
}

// ErrorHandler answers errors escaping a handler, panics included once
// recovered, with the service error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(models.Response{
		Status:  models.StatusError,
		Message: "Error in running NAC Vendor Backend Service",
	})
}
