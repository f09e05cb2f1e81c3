package services

import (
	"context"
	"errors"
	"time"

	"teslo/internal/apperrors"
	"teslo/internal/dto"
	"teslo/internal/models"
	"teslo/internal/repositories"

	"go.uber.org/zap"
)

// Pagination defaults for FindAll.
const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// EventPublisher receives product lifecycle events after a write commits.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// Create stores a product owned by owner together with its images.
func (s *ProductService) Create(ctx context.Context, in dto.CreateProductDTO, owner *models.User) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	product := in.ToModel(owner)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, handleDBError("create product", err)
	}

	s.publish(models.ProductCreated, product)
	return dto.NewProductResponse(product), nil
}

// FindAll returns one page of products.
func (s *ProductService) FindAll(ctx context.Context, page dto.PaginationDTO) ([]*dto.ProductResponse, error) {
	products, err := s.repo.FindAll(ctx, page.LimitOr(DefaultLimit), page.OffsetOr(DefaultOffset))
	if err != nil {
		return nil, handleDBError("find products", err)
	}

	resp := make([]*dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, dto.NewProductResponse(&products[i]))
	}
	return resp, nil
}

// FindOne looks term up as an id when it is a UUID, then as a title or slug.
func (s *ProductService) FindOne(ctx context.Context, term string) (*dto.ProductResponse, error) {
	product, err := s.findEntity(ctx, term)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

func (s *ProductService) findEntity(ctx context.Context, term string) (*models.Product, error) {
	if dto.IsUUID(term) {
		product, err := s.repo.FindByID(ctx, term)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, handleDBError("find product", err)
		}
	}

	product, err := s.repo.FindByTitleOrSlug(ctx, term)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Product with ID or slug '%s' not found", term)
		}
		return nil, handleDBError("find product", err)
	}
	return product, nil
}

// Update merges in into the stored product. When images are present the
// whole image set is replaced.
func (s *ProductService) Update(ctx context.Context, id string, in dto.UpdateProductDTO) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Product with id: %s not found", id)
		}
		return nil, handleDBError("update product", err)
	}

	replaceImages := in.ApplyTo(product)
	if err := s.repo.Update(ctx, product, replaceImages); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Product with id: %s not found", id)
		}
		return nil, handleDBError("update product", err)
	}

	s.publish(models.ProductUpdated, product)
	return dto.NewProductResponse(product), nil
}

// Remove deletes the product with the given id and its images. Titles and
// slugs are not accepted.
func (s *ProductService) Remove(ctx context.Context, id string) error {
	if !dto.IsUUID(id) {
		return apperrors.NotFound("Product with id: %s not found", id)
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("Product with id: %s not found", id)
		}
		return handleDBError("delete product", err)
	}

	if err := s.repo.Delete(ctx, product.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("Product with id: %s not found", id)
		}
		return handleDBError("delete product", err)
	}

	s.publish(models.ProductDeleted, product)
	return nil
}

// DeleteAllProducts wipes every product and image.
func (s *ProductService) DeleteAllProducts(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return handleDBError("delete all products", err)
	}
	return nil
}

func (s *ProductService) publish(eventType string, p *models.Product) {
	if s.publisher == nil {
		return
	}

	event := models.ProductEvent{
		Type:       eventType,
		ProductID:  p.ID,
		Slug:       p.Slug,
		OccurredAt: time.Now().UTC(),
	}
	if p.UserID != nil {
		event.UserID = *p.UserID
	}

	if err := s.publisher.PublishProductEvent(event); err != nil {
		zap.L().Warn("failed to publish product event",
			zap.String("type", eventType),
			zap.String("product_id", p.ID),
			zap.Error(err),
		)
	}
}
