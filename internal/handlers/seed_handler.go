package handlers

import (
	"teslo/internal/response"
	"teslo/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SeedHandler exposes the demo data reset.
type SeedHandler struct {
	service *services.SeedService
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(service *services.SeedService) *SeedHandler {
	return &SeedHandler{
		service: service,
	}
}

// RegisterRoutes registers the seed route with the Fiber app.
func (h *SeedHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/seed", h.HandleSeed)
}

// HandleSeed wipes and reloads the demo data.
func (h *SeedHandler) HandleSeed(c *fiber.Ctx) error {
	if err := h.service.Run(c.UserContext()); err != nil {
		return response.Error(c, err)
	}
	return c.JSON(fiber.Map{"message": "SEED EXECUTED"})
}
