package services

import (
	"context"

	"teslo/internal/apperrors"
	"teslo/internal/dto"
	"teslo/internal/models"
	"teslo/internal/repositories"

	"go.uber.org/zap"
)

type seedUser struct {
	email    string
	fullName string
	password string
	roles    models.StringList
}

var seedUsers = []seedUser{
	{email: "test1@google.com", fullName: "Test One", password: "Abc123", roles: models.StringList{models.RoleAdmin}},
	{email: "test2@google.com", fullName: "Test Two", password: "Abc123", roles: models.StringList{models.RoleUser, models.RoleSuperUser}},
}

func ptr[T any](v T) *T { return &v }

var seedProducts = []dto.CreateProductDTO{
	{
		Title:       "Men's Chill Crew Neck Sweatshirt",
		Description: ptr("Introducing the Tesla Chill Collection. The Men's Chill Crew Neck Sweatshirt has a premium, heavyweight exterior and soft fleece interior."),
		Price:       ptr(75.0),
		Stock:       ptr(7),
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      "men",
		Tags:        []string{"sweatshirt"},
		Images:      []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
	},
	{
		Title:       "Men's Quilted Shirt Jacket",
		Description: ptr("The Men's Quilted Shirt Jacket features a uniquely fit, quilted design for warmth and mobility in cold weather seasons."),
		Price:       ptr(200.0),
		Stock:       ptr(5),
		Sizes:       []string{"XS", "S", "M", "XL", "XXL"},
		Gender:      "men",
		Tags:        []string{"jacket"},
		Images:      []string{"1740507-00-A_0_2000.jpg", "1740507-00-A_1.jpg"},
	},
	{
		Title:       "Women's Raven Slouchy Crew Sweatshirt",
		Description: ptr("Introducing the Tesla Raven Collection. The Women's Raven Slouchy Crew Sweatshirt has a premium, relaxed silhouette."),
		Price:       ptr(110.0),
		Stock:       ptr(9),
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      "women",
		Tags:        []string{"sweatshirt"},
		Images:      []string{"1740260-00-A_0_2000.jpg", "1740260-00-A_1.jpg"},
	},
	{
		Title:       "Kids Cybertruck Long Sleeve Tee",
		Description: ptr("The Kids Cybertruck Long Sleeve Tee features a graffiti-style illustration of our Cybertruck design."),
		Price:       ptr(30.0),
		Stock:       ptr(10),
		Sizes:       []string{"XS", "S", "M"},
		Gender:      "kid",
		Tags:        []string{"shirt"},
		Images:      []string{"1742694-00-A_1_2000.jpg", "1742694-00-A_2.jpg"},
	},
	{
		Title:       "Tesla Snowboard",
		Description: ptr("Designed for every snowboarding discipline, the Tesla Snowboard has a sintered base and carbon inlays."),
		Price:       ptr(480.0),
		Stock:       ptr(3),
		Sizes:       []string{"L"},
		Gender:      "unisex",
		Tags:        []string{"sports"},
		Images:      []string{"1741411-00-A_0_2000.jpg"},
	},
}

// SeedService resets the database to a known demo state.
type SeedService struct {
	userRepo       repositories.UserRepository
	productService *ProductService
}

// NewSeedService creates a new SeedService.
func NewSeedService(userRepo repositories.UserRepository, productService *ProductService) *SeedService {
	return &SeedService{
		userRepo:       userRepo,
		productService: productService,
	}
}

// Run wipes products and users, then inserts the demo users and the demo
// products owned by the first (admin) user.
func (s *SeedService) Run(ctx context.Context) error {
	if err := s.productService.DeleteAllProducts(ctx); err != nil {
		return err
	}
	if err := s.userRepo.DeleteAll(ctx); err != nil {
		return handleDBError("delete all users", err)
	}

	users := make([]*models.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		hashed, err := HashPassword(su.password)
		if err != nil {
			return apperrors.Internal(apperrors.InternalMessage, err)
		}
		user := &models.User{
			Email:    su.email,
			Password: hashed,
			FullName: su.fullName,
			IsActive: true,
			Roles:    su.roles,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return handleDBError("seed user", err)
		}
		users = append(users, user)
	}

	admin := users[0]
	for _, p := range seedProducts {
		in := p
		in.Sizes = append([]string(nil), p.Sizes...)
		in.Tags = append([]string(nil), p.Tags...)
		in.Images = append([]string(nil), p.Images...)
		if _, err := s.productService.Create(ctx, in, admin); err != nil {
			return err
		}
	}

	zap.L().Info("seed executed", zap.Int("users", len(users)), zap.Int("products", len(seedProducts)))
	return nil
}
