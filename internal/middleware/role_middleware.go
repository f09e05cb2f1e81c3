package middleware

import (
	"fmt"
	"strings"

	"teslo/internal/apperrors"
	"teslo/internal/response"

	"github.com/gofiber/fiber/v2"
)

// RoleRequired lets the request through when the authenticated user holds
// one of roles. With no roles any authenticated user passes. It must run
// after AuthRequired.
func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return response.Error(c, err)
		}
		if len(roles) == 0 || user.HasRole(roles...) {
			return c.Next()
		}
		return response.Error(c, apperrors.Forbidden(
			fmt.Sprintf("User %s need a valid role: [%s]", user.FullName, strings.Join(roles, ", ")),
		))
	}
}
