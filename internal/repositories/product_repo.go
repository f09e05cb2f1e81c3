package repositories

import (
	"context"
	"errors"

	"teslo/internal/models"
)

// ErrNotFound is wrapped by every lookup that matched no row.
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	FindAll(ctx context.Context, limit, offset int) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindByTitleOrSlug(ctx context.Context, term string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update saves product. When replaceImages is set the stored images are
	// swapped for product.Images in the same transaction.
	Update(ctx context.Context, product *models.Product, replaceImages bool) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
