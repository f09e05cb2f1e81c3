//go:build integration

package repositories_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"teslo/internal/apperrors"
	"teslo/internal/database"
	"teslo/internal/models"
	"teslo/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

type PostgresIntegrationTestSuite struct {
	suite.Suite
	ctx      context.Context
	pgc      *postgres.PostgresContainer
	db       *gorm.DB
	products *repositories.GORMProductRepository
	users    *repositories.GORMUserRepository
}

func (s *PostgresIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	pgc, err := postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("teslo-test"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}
	s.pgc = pgc

	connStr, err := pgc.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := database.Open(database.DriverPostgres, connStr, false)
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))
	s.db = db

	s.products = repositories.NewGORMProductRepository(db)
	s.users = repositories.NewGORMUserRepository(db)
}

func (s *PostgresIntegrationTestSuite) TearDownSuite() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
	if err := s.pgc.Terminate(s.ctx); err != nil {
		log.Fatalf("failed to terminate pg container: %s", err)
	}
}

func (s *PostgresIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.products.DeleteAll(s.ctx))
	s.Require().NoError(s.users.DeleteAll(s.ctx))
}

func (s *PostgresIntegrationTestSuite) TestProduct_ArraysRoundTrip() {
	p := &models.Product{
		Title:  "Women's Raven Slouchy Beanie",
		Sizes:  models.StringList{"XS", "S"},
		Gender: models.GenderWomen,
		Tags:   models.StringList{"hats", "winter"},
		Images: []models.ProductImage{{URL: "1.jpg"}, {URL: "2.jpg"}},
	}
	s.Require().NoError(s.products.Create(s.ctx, p))

	got, err := s.products.FindByTitleOrSlug(s.ctx, "womens_raven_slouchy_beanie")
	s.Require().NoError(err)
	assert.Equal(s.T(), models.StringList{"XS", "S"}, got.Sizes)
	assert.Equal(s.T(), models.StringList{"hats", "winter"}, got.Tags)
	assert.Equal(s.T(), []string{"1.jpg", "2.jpg"}, got.ImageURLs())
}

func (s *PostgresIntegrationTestSuite) TestProduct_DuplicateCarriesDetail() {
	first := &models.Product{Title: "Tee", Sizes: models.StringList{"S"}, Gender: models.GenderMen}
	s.Require().NoError(s.products.Create(s.ctx, first))

	dup := &models.Product{Title: "Tee", Slug: "another", Sizes: models.StringList{"S"}, Gender: models.GenderMen}
	err := apperrors.FromDB(s.products.Create(s.ctx, dup))

	appErr, ok := apperrors.As(err)
	s.Require().True(ok)
	assert.Equal(s.T(), apperrors.KindConflict, appErr.Kind)
	assert.Contains(s.T(), appErr.Message, "(title)=(Tee) already exists")
}

func (s *PostgresIntegrationTestSuite) TestUser_CreateAndFindByEmail() {
	user := &models.User{Email: "integration@test.com", Password: "hash", FullName: "Integration"}
	s.Require().NoError(s.users.Create(s.ctx, user))

	found, err := s.users.GetByEmail(s.ctx, "integration@test.com")
	s.Require().NoError(err)
	assert.Equal(s.T(), user.ID, found.ID)
	assert.Equal(s.T(), models.StringList{models.RoleUser}, found.Roles)

	_, err = s.users.GetByEmail(s.ctx, "nonexistent@test.com")
	assert.ErrorIs(s.T(), err, repositories.ErrNotFound)
}

func TestPostgresIntegration(t *testing.T) {
	if os.Getenv("DOCKER_HOST") == "" {
		t.Skip("Docker is not available, skipping integration test.")
	}
	suite.Run(t, new(PostgresIntegrationTestSuite))
}
