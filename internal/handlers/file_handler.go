package handlers

import (
	"teslo/internal/apperrors"
	"teslo/internal/response"
	"teslo/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FileHandler handles product image uploads and downloads.
type FileHandler struct {
	service *services.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(service *services.FileService) *FileHandler {
	return &FileHandler{
		service: service,
	}
}

// RegisterRoutes registers the file routes with the Fiber app.
func (h *FileHandler) RegisterRoutes(router fiber.Router) {
	fileRoutes := router.Group("/files")
	fileRoutes.Post("/product", h.HandleUploadProductImage)
	fileRoutes.Get("/product/:imageName", h.HandleGetProductImage)
}

// HandleUploadProductImage stores the multipart "file" field.
func (h *FileHandler) HandleUploadProductImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, apperrors.Validation("Make sure that the file is an image"))
	}

	name, err := h.service.NewImageName(fh.Filename)
	if err != nil {
		return response.Error(c, err)
	}

	if err := c.SaveFile(fh, h.service.Path(name)); err != nil {
		zap.L().Error("failed to save upload", zap.String("name", name), zap.Error(err))
		return response.Error(c, apperrors.Internal(apperrors.InternalMessage, err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"secureUrl": h.service.SecureURL(name),
	})
}

// HandleGetProductImage streams a stored image.
func (h *FileHandler) HandleGetProductImage(c *fiber.Ctx) error {
	path, err := h.service.ImagePath(c.Params("imageName"))
	if err != nil {
		return response.Error(c, err)
	}
	return c.SendFile(path)
}
