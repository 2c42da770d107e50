package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nac-jewellers-backup/vendorAPI/internal/auth"
	"github.com/nac-jewellers-backup/vendorAPI/internal/models"
	"github.com/rs/zerolog"
)

// LocalsIdentity is the fiber.Ctx locals key holding the caller's auth.Identity.
const LocalsIdentity = "identity"

type AuthMiddleware struct {
	auth *auth.Authenticator
	log  zerolog.Logger
}

func NewAuthMiddleware(authenticator *auth.Authenticator, log zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		auth: authenticator,
		log:  log,
	}
}

type sessionEnvelope struct {
	Session *auth.Session `json:"session"`
}

// Authenticate validates the session carried in the JSON body before the
// route runs. Every failure answers the same 403 so callers cannot tell a
// bad token from an identity mismatch.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body sessionEnvelope
		if err := c.App().Config().JSONDecoder(c.Body(), &body); err != nil {
			m.log.Debug().Err(err).Str("path", c.Path()).Msg("unreadable session")
			return Unauthorized(c)
		}

		if err := m.auth.ValidateSession(body.Session); err != nil {
			m.log.Debug().Str("reason", err.Error()).Str("path", c.Path()).Msg("session rejected")
			return Unauthorized(c)
		}

		c.Locals(LocalsIdentity, body.Session.User)
		return c.Next()
	}
}

func Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(models.Response{
		Status:  models.StatusFailure,
		Message: "Unauthorized",
	})
}
