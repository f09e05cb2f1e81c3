package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teslo/internal/apperrors"
	"teslo/internal/dto"
	"teslo/internal/models"
	"teslo/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is used when no expiry is configured.
const DefaultTokenTTL = 2 * time.Hour

const invalidTokenMessage = "Token not valid"

// Claims is the JWT payload. Only the user id is carried.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// HashPassword hashes a plain password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Register creates an active user with the "user" role and signs a token for it.
func (s *AuthService) Register(ctx context.Context, in dto.CreateUserDTO) (*dto.AuthResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.Conflict(fmt.Sprintf("Key (email)=(%s) already exists.", in.Email))
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return nil, handleDBError("register", err)
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Internal(apperrors.InternalMessage, err)
	}

	user := &models.User{
		Email:    in.Email,
		Password: hashed,
		FullName: in.FullName,
		IsActive: true,
		Roles:    models.StringList{models.RoleUser},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, handleDBError("register", err)
	}

	return s.TokenLogin(user)
}

// Login checks the credentials and signs a token.
func (s *AuthService) Login(ctx context.Context, in dto.LoginUserDTO) (*dto.AuthResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Unauthorized("Credentials are not valid (email)")
		}
		return nil, handleDBError("login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, apperrors.Unauthorized("Credentials are not valid (password)")
	}

	return s.TokenLogin(user)
}

// TokenLogin issues a fresh token for an already authenticated user.
func (s *AuthService) TokenLogin(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, apperrors.Internal(apperrors.InternalMessage, err)
	}
	return &dto.AuthResponse{User: user, Token: token}, nil
}

// GenerateToken signs an HS256 token for userID.
func (s *AuthService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, apperrors.Unauthorized(invalidTokenMessage)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Unauthorized(invalidTokenMessage)
		}
		return nil, handleDBError("authenticate", err)
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized("User is inactive, talk with an admin")
	}
	return user, nil
}
