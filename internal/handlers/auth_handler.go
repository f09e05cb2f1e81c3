package handlers

import (
	"teslo/internal/apperrors"
	"teslo/internal/dto"
	"teslo/internal/middleware"
	"teslo/internal/response"
	"teslo/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	loginLimit  fiber.Handler
}

// NewAuthHandler creates a new AuthHandler. loginLimit may be nil.
func NewAuthHandler(authService *services.AuthService, loginLimit fiber.Handler) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		loginLimit:  loginLimit,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	if h.loginLimit != nil {
		authRoutes.Post("/login", h.loginLimit, h.HandleLogin)
	} else {
		authRoutes.Post("/login", h.HandleLogin)
	}

	guarded := authRoutes.Group("", middleware.AuthRequired(h.authService))
	guarded.Get("/token-login", h.HandleTokenLogin)
	guarded.Get("/private", h.HandlePrivate)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in dto.CreateUserDTO
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, apperrors.Validation("Invalid request body"))
	}

	resp, err := h.authService.Register(c.UserContext(), in)
	if err != nil {
		return response.Error(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var in dto.LoginUserDTO
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, apperrors.Validation("Invalid request body"))
	}

	resp, err := h.authService.Login(c.UserContext(), in)
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(resp)
}

// HandleTokenLogin re-issues a token for the authenticated user.
func (h *AuthHandler) HandleTokenLogin(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	resp, err := h.authService.TokenLogin(user)
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(resp)
}

// HandlePrivate is a guarded probe echoing the caller.
func (h *AuthHandler) HandlePrivate(c *fiber.Ctx) error {
	user, err := middleware.UserFields(c, "id", "email", "fullName")
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(fiber.Map{
		"ok":   true,
		"msg":  "Hello from a private route",
		"user": user,
	})
}
