package handlers

import (
	"fmt"

	"teslo/internal/apperrors"
	"teslo/internal/dto"
	"teslo/internal/middleware"
	"teslo/internal/models"
	"teslo/internal/response"
	"teslo/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	auth    middleware.Authenticator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, auth middleware.Authenticator) *ProductHandler {
	return &ProductHandler{
		service: service,
		auth:    auth,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:term", h.HandleGetProduct)

	authRequired := middleware.AuthRequired(h.auth)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)
	productRoutes.Post("/", authRequired, h.HandleCreateProduct)
	productRoutes.Patch("/:id", authRequired, adminOnly, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", authRequired, adminOnly, h.HandleDeleteProduct)
}

// HandleGetProducts returns one page of products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	page, err := dto.ParsePagination(c)
	if err != nil {
		return response.Error(c, err)
	}

	products, err := h.service.FindAll(c.UserContext(), page)
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct looks a product up by id, title or slug.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.FindOne(c.UserContext(), c.Params("term"))
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product owned by the caller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var in dto.CreateProductDTO
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, apperrors.Validation("Invalid request body"))
	}

	product, err := h.service.Create(c.UserContext(), in, user)
	if err != nil {
		return response.Error(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := uuidParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	var in dto.UpdateProductDTO
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, apperrors.Validation("Invalid request body"))
	}

	product, err := h.service.Update(c.UserContext(), id, in)
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product and its images.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := uuidParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.service.Remove(c.UserContext(), id); err != nil {
		return response.Error(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", id),
	})
}

func uuidParam(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if !dto.IsUUID(id) {
		return "", apperrors.Validation("Validation failed (uuid is expected)")
	}
	return id, nil
}
