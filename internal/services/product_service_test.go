package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"teslo/internal/apperrors"
	"teslo/internal/dto"
	"teslo/internal/models"
	"teslo/internal/services"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const productID = "0c5d8cc3-455e-4829-a833-19e3d81ae4a6"

func intPtr(v int) *int { return &v }

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	owner := &models.User{ID: "owner-1", Email: "owner@example.com", FullName: "Owner"}
	in := dto.CreateProductDTO{
		Title:  "Kids Tee",
		Sizes:  []string{"S"},
		Gender: "kid",
		Images: []string{"1.jpg"},
	}

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Title == "Kids Tee" && *p.UserID == "owner-1" && len(p.Images) == 1
	})).Run(func(args mock.Arguments) {
		p := args.Get(1).(*models.Product)
		p.ID = productID
		p.NormalizeSlug()
	}).Return(nil).Once()
	publisher.On("PublishProductEvent", mock.MatchedBy(func(e models.ProductEvent) bool {
		return e.Type == models.ProductCreated && e.ProductID == productID && e.Slug == "kids_tee" && e.UserID == "owner-1"
	})).Return(nil).Once()

	resp, err := service.Create(ctx, in, owner)
	require.NoError(t, err)
	assert.Equal(t, productID, resp.ID)
	assert.Equal(t, []string{"1.jpg"}, resp.Images)
	assert.Equal(t, "owner@example.com", resp.User.Email)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_Create_Errors(t *testing.T) {
	ctx := context.Background()
	in := dto.CreateProductDTO{Title: "Kids Tee", Sizes: []string{"S"}, Gender: "kid"}

	t.Run("unique violation", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)
		pgErr := &pgconn.PgError{Code: "23505", Detail: "Key (title)=(Kids Tee) already exists."}
		mockRepo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("failed to create product: %w", pgErr)).Once()

		_, err := service.Create(ctx, in, nil)
		appErr := assertKind(t, err, apperrors.KindConflict)
		assert.Equal(t, "Key (title)=(Kids Tee) already exists.", appErr.Message)
	})

	t.Run("unexpected", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)
		mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("disk full")).Once()

		_, err := service.Create(ctx, in, nil)
		appErr := assertKind(t, err, apperrors.KindInternal)
		assert.Equal(t, apperrors.InternalMessage, appErr.Message)
	})

	t.Run("publish failure is ignored", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		publisher := new(MockPublisher)
		service := services.NewProductService(mockRepo, publisher)
		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		publisher.On("PublishProductEvent", mock.Anything).Return(errors.New("broker down")).Once()

		_, err := service.Create(ctx, in, nil)
		assert.NoError(t, err)
		publisher.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)

		_, err := service.Create(ctx, dto.CreateProductDTO{Title: "x"}, nil)
		assertKind(t, err, apperrors.KindValidation)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProductService_FindAll(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	products := []models.Product{
		{ID: "1", Title: "A", Images: []models.ProductImage{{URL: "a.jpg"}}},
		{ID: "2", Title: "B"},
	}

	mockRepo.On("FindAll", ctx, services.DefaultLimit, services.DefaultOffset).Return(products, nil).Once()
	resp, err := service.FindAll(ctx, dto.PaginationDTO{})
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, []string{"a.jpg"}, resp[0].Images)
	assert.Equal(t, []string{}, resp[1].Images)

	mockRepo.On("FindAll", ctx, 1, 1).Return(products[1:], nil).Once()
	resp, err = service.FindAll(ctx, dto.PaginationDTO{Limit: intPtr(1), Offset: intPtr(1)})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "2", resp[0].ID)

	mockRepo.AssertExpectations(t)
}

func TestProductService_FindOne(t *testing.T) {
	ctx := context.Background()
	product := &models.Product{ID: productID, Title: "Kids Tee", Slug: "kids_tee"}

	t.Run("by id", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)
		mockRepo.On("FindByID", ctx, productID).Return(product, nil).Once()

		resp, err := service.FindOne(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, productID, resp.ID)
		mockRepo.AssertNotCalled(t, "FindByTitleOrSlug", mock.Anything, mock.Anything)
	})

	t.Run("uuid falls back to title or slug", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)
		mockRepo.On("FindByID", ctx, productID).Return(nil, notFound("product")).Once()
		mockRepo.On("FindByTitleOrSlug", ctx, productID).Return(nil, notFound("product")).Once()

		_, err := service.FindOne(ctx, productID)
		appErr := assertKind(t, err, apperrors.KindNotFound)
		assert.Equal(t, fmt.Sprintf("Product with ID or slug '%s' not found", productID), appErr.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("by title or slug", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)
		mockRepo.On("FindByTitleOrSlug", ctx, "KIDS tee").Return(product, nil).Once()

		resp, err := service.FindOne(ctx, "KIDS tee")
		require.NoError(t, err)
		assert.Equal(t, "kids_tee", resp.Slug)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown term", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)
		mockRepo.On("FindByTitleOrSlug", ctx, "nope").Return(nil, notFound("product")).Once()

		_, err := service.FindOne(ctx, "nope")
		appErr := assertKind(t, err, apperrors.KindNotFound)
		assert.Equal(t, "Product with ID or slug 'nope' not found", appErr.Message)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces images", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		publisher := new(MockPublisher)
		service := services.NewProductService(mockRepo, publisher)

		stored := &models.Product{
			ID:     productID,
			Title:  "Tee",
			Price:  10,
			Images: []models.ProductImage{{ID: 1, URL: "old.jpg", ProductID: productID}},
		}
		images := []string{"new.jpg"}
		price := 25.0

		mockRepo.On("FindByID", ctx, productID).Return(stored, nil).Once()
		mockRepo.On("Update", ctx, stored, true).Return(nil).Once()
		publisher.On("PublishProductEvent", mock.MatchedBy(func(e models.ProductEvent) bool {
			return e.Type == models.ProductUpdated && e.ProductID == productID
		})).Return(nil).Once()

		resp, err := service.Update(ctx, productID, dto.UpdateProductDTO{Price: &price, Images: &images})
		require.NoError(t, err)
		assert.Equal(t, 25.0, resp.Price)
		assert.Equal(t, "Tee", resp.Title)
		assert.Equal(t, []string{"new.jpg"}, resp.Images)
		mockRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("keeps images", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)
		stored := &models.Product{ID: productID, Title: "Tee", Images: []models.ProductImage{{URL: "keep.jpg"}}}
		stock := 3

		mockRepo.On("FindByID", ctx, productID).Return(stored, nil).Once()
		mockRepo.On("Update", ctx, stored, false).Return(nil).Once()

		resp, err := service.Update(ctx, productID, dto.UpdateProductDTO{Stock: &stock})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Stock)
		assert.Equal(t, []string{"keep.jpg"}, resp.Images)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)
		mockRepo.On("FindByID", ctx, productID).Return(nil, notFound("product")).Once()

		_, err := service.Update(ctx, productID, dto.UpdateProductDTO{})
		appErr := assertKind(t, err, apperrors.KindNotFound)
		assert.Equal(t, fmt.Sprintf("Product with id: %s not found", productID), appErr.Message)
	})

	t.Run("conflict after rollback", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)
		stored := &models.Product{ID: productID, Title: "Tee"}
		title := "Taken"

		mockRepo.On("FindByID", ctx, productID).Return(stored, nil).Once()
		mockRepo.On("Update", ctx, stored, false).Return(&pgconn.PgError{Code: "23505", Message: "duplicate key"}).Once()

		_, err := service.Update(ctx, productID, dto.UpdateProductDTO{Title: &title})
		appErr := assertKind(t, err, apperrors.KindConflict)
		assert.Equal(t, "duplicate key", appErr.Message)
	})
}

func TestProductService_Remove(t *testing.T) {
	ctx := context.Background()
	ownerID := "owner-1"
	product := &models.Product{ID: productID, Slug: "tee", UserID: &ownerID}

	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	mockRepo.On("FindByID", ctx, productID).Return(product, nil).Once()
	mockRepo.On("Delete", ctx, productID).Return(nil).Once()
	publisher.On("PublishProductEvent", mock.MatchedBy(func(e models.ProductEvent) bool {
		return e.Type == models.ProductDeleted && e.UserID == ownerID
	})).Return(nil).Once()
	require.NoError(t, service.Remove(ctx, productID))

	mockRepo.On("FindByID", ctx, productID).Return(nil, notFound("product")).Once()
	assertKind(t, service.Remove(ctx, productID), apperrors.KindNotFound)

	mockRepo.On("FindByID", ctx, productID).Return(nil, errors.New("conn reset")).Once()
	assertKind(t, service.Remove(ctx, productID), apperrors.KindInternal)

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "FindByTitleOrSlug", mock.Anything, mock.Anything)
	publisher.AssertExpectations(t)
}

func TestProductService_Remove_RejectsSlugAndTitle(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	for _, term := range []string{"blue_tee", "Blue Tee"} {
		err := service.Remove(ctx, term)
		appErr := assertKind(t, err, apperrors.KindNotFound)
		assert.Equal(t, "Product with id: "+term+" not found", appErr.Message)
	}

	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "FindByTitleOrSlug", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductService_DeleteAllProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("DeleteAll", ctx).Return(nil).Once()
	assert.NoError(t, service.DeleteAllProducts(ctx))

	mockRepo.On("DeleteAll", ctx).Return(errors.New("locked")).Once()
	assertKind(t, service.DeleteAllProducts(ctx), apperrors.KindInternal)
	mockRepo.AssertExpectations(t)
}
