package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teslo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("User")
}

// FindAll returns one page of products in the database's natural order.
func (r *GORMProductRepository) FindAll(ctx context.Context, limit, offset int) ([]models.Product, error) {
	products := []models.Product{}
	err := withRelations(r.db.WithContext(ctx)).
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product by its ID.
func (r *GORMProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := withRelations(r.db.WithContext(ctx)).Take(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// FindByTitleOrSlug matches the title case-insensitively or the slug in
// lower case.
func (r *GORMProductRepository) FindByTitleOrSlug(ctx context.Context, term string) (*models.Product, error) {
	var product models.Product
	err := withRelations(r.db.WithContext(ctx)).
		Where("UPPER(title) = ? OR slug = ?", strings.ToUpper(term), strings.ToLower(term)).
		Take(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with title or slug %s: %w", term, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by term %s: %w", term, err)
	}
	return &product, nil
}

// Create inserts the product and its images in one transaction.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.NormalizeSlug()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		return insertImages(tx, product)
	})
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes every column of product. Nothing is kept when any step fails.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product, replaceImages bool) error {
	product.NormalizeSlug()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceImages {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			if err := insertImages(tx, product); err != nil {
				return err
			}
		}

		res := tx.Model(product).Omit(clause.Associations).Select("*").Updates(product)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes the product's images and then the product.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// DeleteAll removes every image and product.
func (r *GORMProductRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete all products: %w", err)
	}
	return nil
}

func insertImages(tx *gorm.DB, product *models.Product) error {
	if len(product.Images) == 0 {
		return nil
	}
	for i := range product.Images {
		product.Images[i].ID = 0
		product.Images[i].ProductID = product.ID
	}
	return tx.Create(&product.Images).Error
}
