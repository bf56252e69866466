package middleware

import (
	"errors"

	"chatroom/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type identityKey struct{}

// Resolver turns an Authorization header into an identity.
type Resolver interface {
	Resolve(header string) (*services.Identity, error)
}

// TokenAuth resolves the "Token <key>" credential of every request.
// Anonymous requests pass through; a malformed or unknown token is rejected.
func TokenAuth(resolver Resolver, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := resolver.Resolve(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			var authErr *services.AuthError
			if errors.As(err, &authErr) {
				return unauthorized(c, authErr.Detail)
			}
			log.WithError(err).Error("token resolution failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail": "Internal server error",
			})
		}
		if id != nil {
			c.Locals(identityKey{}, id)
		}
		return c.Next()
	}
}

// AuthRequired rejects requests that carry no resolved identity.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IdentityFrom(c) == nil {
			return unauthorized(c, "Authentication credentials were not provided.")
		}
		return c.Next()
	}
}

// IdentityFrom returns the identity resolved for this request, or nil for anonymous.
func IdentityFrom(c *fiber.Ctx) *services.Identity {
	id, _ := c.Locals(identityKey{}).(*services.Identity)
	return id
}

func unauthorized(c *fiber.Ctx, detail string) error {
	c.Set(fiber.HeaderWWWAuthenticate, services.TokenKeyword)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": detail,
	})
}
