package middleware

import (
	"fmt"

	"teslo/internal/apperrors"
	"teslo/internal/models"

	"github.com/gofiber/fiber/v2"
)

const userKey = "user"

// CurrentUser returns the user stored by AuthRequired.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(userKey).(*models.User)
	if !ok || user == nil {
		return nil, apperrors.Internal("User not found in request", nil)
	}
	return user, nil
}

// UserField returns one field of the current user by its JSON name.
func UserField(c *fiber.Ctx, name string) (interface{}, error) {
	user, err := CurrentUser(c)
	if err != nil {
		return nil, err
	}
	v, ok := user.Field(name)
	if !ok {
		return nil, apperrors.Internal(fmt.Sprintf("User field %s does not exist", name), nil)
	}
	return v, nil
}

// UserFields projects the current user onto the given field names.
func UserFields(c *fiber.Ctx, names ...string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(names))
	for _, name := range names {
		v, err := UserField(c, name)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}
