package middleware

import (
	"context"
	"strings"

	"teslo/internal/apperrors"
	"teslo/internal/models"
	"teslo/internal/response"

	"github.com/gofiber/fiber/v2"
)

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthRequired is a Fiber middleware that resolves the bearer token to an
// active user and stores it in the request.
func AuthRequired(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return response.Error(c, apperrors.Unauthorized("Authorization header is required"))
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "") {
			return response.Error(c, apperrors.Unauthorized("Authorization header format must be 'Bearer <token>'"))
		}

		user, err := auth.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			return response.Error(c, err)
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}
